package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"blogapi/internal/guard"
	"blogapi/internal/service"
)

type ProfileHandler struct {
	Users *service.UserService
}

type profileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (h *ProfileHandler) Update(c echo.Context) error {
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, err)
	}
	// Email changes go through the same format checks as registration.
	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			return failFields(c, map[string]string{"email": "Email cannot be null or empty"})
		}
		if !strings.Contains(*req.Email, "@") {
			return failFields(c, map[string]string{"email": "Invalid email format"})
		}
	}

	user, err := h.Users.UpdateProfile(c.Request().Context(), guard.Identity(c), service.ProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "Profile updated successfully", user)
}
