package handlers

import (
	"errors"
	"net/http"

	"staymart/internal/repositories"
	"staymart/internal/services"

	"github.com/labstack/echo/v4"
)

// httpError maps service and repository errors onto the status taxonomy:
// 400 validation, 401 bad credentials, 403 forbidden, 404 absent entity,
// 409 duplicate email, 500 anything infrastructural.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, services.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "You are not authorized to perform this action")
	case errors.Is(err, repositories.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Record not found")
	case errors.Is(err, repositories.ErrEmailExists):
		return echo.NewHTTPError(http.StatusConflict, "User already registered!")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
