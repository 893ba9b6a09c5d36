package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"blogapi/internal/config"
	"blogapi/internal/events"
	"blogapi/internal/guard"
	"blogapi/internal/handlers"
	"blogapi/internal/logging"
	"blogapi/internal/repo"
	"blogapi/internal/search"
	"blogapi/internal/service"
	"blogapi/internal/token"
	httpserver "blogapi/internal/transport/http"
	"blogapi/internal/upload"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	prod := events.NewProducer([]string{configuration.KAFKA_ADDRESS})

	esClient, err := search.NewClient(configuration)
	if err != nil {
		log.Fatal(err)
	}

	tokens := token.NewService([]byte(configuration.JWT_SECRET), configuration.TOKEN_TTL)

	users := &repo.UserRepo{DB: db}
	posts := &repo.PostRepo{DB: db}
	comments := &repo.CommentRepo{DB: db}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		Guard:          &guard.Guard{Tokens: tokens, Users: users},
		AuthHandler:    &handlers.AuthHandler{Auth: &service.AuthService{Users: users, Tokens: tokens, Producer: prod}},
		AdminHandler:   &handlers.AdminHandler{Admin: &service.AdminService{Users: users, Producer: prod}},
		ProfileHandler: &handlers.ProfileHandler{Users: &service.UserService{Users: users}},
		PostHandler: &handlers.PostHandler{
			Posts:   service.NewPostService(posts, esClient, "posts", prod),
			Uploads: &upload.Store{Dir: configuration.UPLOAD_DIR},
		},
		CommentHandler: &handlers.CommentHandler{Comments: service.NewCommentService(comments, posts, prod)},
		UploadDir:      configuration.UPLOAD_DIR,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
