package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogapi/internal/guard"
	"blogapi/internal/models"
	"blogapi/internal/service"
	"blogapi/internal/upload"
	"blogapi/internal/util"
)

type PostHandler struct {
	Posts   *service.PostService
	Uploads *upload.Store
}

type postRequest struct {
	Title  string        `json:"title"`
	Body   string        `json:"body"`
	Status models.Status `json:"status"`
}

func parseID(c echo.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func (h *PostHandler) Create(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, err)
	}

	post, err := h.Posts.Create(c.Request().Context(), guard.Identity(c), service.PostInput{
		Title:  req.Title,
		Body:   req.Body,
		Status: req.Status,
	})
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusCreated, "Post created successfully", post)
}

func (h *PostHandler) List(c echo.Context) error {
	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, posts, err := h.Posts.List(c.Request().Context(), offset, limit)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "Posts retrieved successfully", map[string]any{
		"posts": posts,
		"meta": map[string]any{
			"page":  page,
			"size":  limit,
			"total": total,
		},
	})
}

func (h *PostHandler) ListOwn(c echo.Context) error {
	status := models.Status(c.QueryParam("status"))

	posts, err := h.Posts.ListByUser(c.Request().Context(), guard.Identity(c), status)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "User posts retrieved successfully", posts)
}

func (h *PostHandler) Get(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return failFields(c, map[string]string{"id": "must be a positive integer"})
	}

	post, err := h.Posts.Get(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "Post retrieved successfully", post)
}

func (h *PostHandler) Update(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return failFields(c, map[string]string{"id": "must be a positive integer"})
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, err)
	}

	post, err := h.Posts.Update(c.Request().Context(), guard.Identity(c), id, service.PostInput{
		Title:  req.Title,
		Body:   req.Body,
		Status: req.Status,
	})
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "Post updated successfully", post)
}

func (h *PostHandler) Delete(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return failFields(c, map[string]string{"id": "must be a positive integer"})
	}

	if err := h.Posts.Delete(c.Request().Context(), guard.Identity(c), id); err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "Post deleted successfully", nil)
}

func (h *PostHandler) UploadImage(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return failFields(c, map[string]string{"id": "must be a positive integer"})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return failFields(c, map[string]string{"image": "image file is required"})
	}

	post, err := h.Posts.AttachImage(c.Request().Context(), guard.Identity(c), id, func() (string, error) {
		return h.Uploads.Save(file)
	})
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "Image uploaded successfully", post)
}

func (h *PostHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return failFields(c, map[string]string{"q": "query cannot be empty"})
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	from, limit := util.Calculate(page, size)

	total, posts, err := h.Posts.Search(c.Request().Context(), q, from, limit)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "Posts retrieved successfully", map[string]any{
		"total": total,
		"posts": posts,
	})
}
