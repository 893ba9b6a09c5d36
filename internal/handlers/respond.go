package handlers

import (
	"github.com/labstack/echo/v4"

	"blogapi/internal/apperr"
)

func ok(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, apperr.OK(status, message, data))
}

func fail(c echo.Context, err error) error {
	e := apperr.Report(err)
	return c.JSON(e.Status, e)
}

func failFields(c echo.Context, errs map[string]string) error {
	e := apperr.Fields(errs)
	return c.JSON(e.Status, e)
}
