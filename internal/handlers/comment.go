package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapi/internal/guard"
	"blogapi/internal/service"
)

type CommentHandler struct {
	Comments *service.CommentService
}

type commentRequest struct {
	Body string `json:"body"`
}

func (h *CommentHandler) Create(c echo.Context) error {
	postID, okID := parseID(c, "postId")
	if !okID {
		return failFields(c, map[string]string{"postId": "must be a positive integer"})
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, err)
	}

	comment, err := h.Comments.Create(c.Request().Context(), guard.Identity(c), postID, req.Body)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusCreated, "Comment created successfully", comment)
}

func (h *CommentHandler) Edit(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return failFields(c, map[string]string{"id": "must be a positive integer"})
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, err)
	}

	comment, err := h.Comments.Edit(c.Request().Context(), guard.Identity(c), id, req.Body)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "Comment updated successfully", comment)
}

func (h *CommentHandler) Delete(c echo.Context) error {
	id, okID := parseID(c, "id")
	if !okID {
		return failFields(c, map[string]string{"id": "must be a positive integer"})
	}

	if err := h.Comments.Delete(c.Request().Context(), guard.Identity(c), id); err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "Comment deleted successfully", nil)
}

func (h *CommentHandler) ListByPost(c echo.Context) error {
	postID, okID := parseID(c, "postId")
	if !okID {
		return failFields(c, map[string]string{"postId": "must be a positive integer"})
	}

	comments, err := h.Comments.ListByPost(c.Request().Context(), postID)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "Comments retrieved successfully", comments)
}
