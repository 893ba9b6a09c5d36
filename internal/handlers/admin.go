package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"blogapi/internal/service"
)

type AdminHandler struct {
	Admin *service.AdminService
}

func (h *AdminHandler) RegisterAdmin(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, err)
	}
	if errs := validateRegister(&req); errs != nil {
		return failFields(c, errs)
	}

	admin, err := h.Admin.RegisterAdmin(c.Request().Context(), service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "Admin registered successfully", admin)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return failFields(c, map[string]string{"id": "must be a positive integer"})
	}

	if err := h.Admin.DeleteUser(c.Request().Context(), uint(id)); err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "User deleted successfully", nil)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Admin.ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}

	return ok(c, http.StatusOK, "All users retrieved successfully", users)
}
