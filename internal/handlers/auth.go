package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"blogapi/internal/apperr"
	"blogapi/internal/models"
	"blogapi/internal/service"
)

type AuthHandler struct {
	Auth *service.AuthService
}

type registerRequest struct {
	Name            string      `json:"name"`
	Email           string      `json:"email"`
	Password        string      `json:"password"`
	ConfirmPassword string      `json:"confirmPassword"`
	Role            models.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func validateRegister(req *registerRequest) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "Email cannot be null or empty"
	} else if !strings.Contains(req.Email, "@") {
		errs["email"] = "Invalid email format"
	}
	if req.Password == "" {
		errs["password"] = "Password cannot be null or empty"
	}
	if req.ConfirmPassword == "" {
		errs["confirmPassword"] = "Confirm Password cannot be null or empty"
	}
	if req.Role != "" && req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		errs["role"] = "must be USER or ADMIN"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, err)
	}
	if errs := validateRegister(&req); errs != nil {
		return failFields(c, errs)
	}
	// Only an authenticated admin may mint admin accounts, via /admin/register.
	if req.Role == models.RoleAdmin {
		return fail(c, apperr.ErrForbiddenRole)
	}

	user, err := h.Auth.Register(c.Request().Context(), service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
	})
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "User registered successfully", user)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, err)
	}

	jwt, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "Login successful", jwt)
}
