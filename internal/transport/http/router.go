package httpserver

import (
	"github.com/labstack/echo/v4"

	"blogapi/internal/guard"
	"blogapi/internal/handlers"
	"blogapi/internal/models"
)

type Deps struct {
	Guard          *guard.Guard
	AuthHandler    *handlers.AuthHandler
	AdminHandler   *handlers.AdminHandler
	ProfileHandler *handlers.ProfileHandler
	PostHandler    *handlers.PostHandler
	CommentHandler *handlers.CommentHandler
	UploadDir      string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.Static("/uploads", d.UploadDir)

	auth := e.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)

	admin := e.Group("/admin", d.Guard.RequireAuth, d.Guard.RequireRole(models.RoleAdmin))
	admin.POST("/register", d.AdminHandler.RegisterAdmin)
	admin.DELETE("/users/:id", d.AdminHandler.DeleteUser)
	admin.GET("/users", d.AdminHandler.ListUsers)

	api := e.Group("/api", d.Guard.RequireAuth)

	api.PATCH("/profile/update", d.ProfileHandler.Update)

	posts := api.Group("/posts")
	posts.POST("/post", d.PostHandler.Create)
	posts.GET("/posts", d.PostHandler.List)
	posts.GET("/posts/user", d.PostHandler.ListOwn)
	posts.GET("/search", d.PostHandler.Search)
	posts.GET("/:id", d.PostHandler.Get)
	posts.PUT("/:id", d.PostHandler.Update)
	posts.DELETE("/:id", d.PostHandler.Delete)
	posts.POST("/:id/image", d.PostHandler.UploadImage)

	comments := api.Group("/comments")
	comments.POST("/post/:postId", d.CommentHandler.Create)
	comments.GET("/post/:postId", d.CommentHandler.ListByPost)
	comments.PUT("/:id", d.CommentHandler.Edit)
	comments.DELETE("/:id", d.CommentHandler.Delete)
}
