package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/inkwell/backend/internal/models"
	"github.com/anonto42/inkwell/backend/internal/repositories"
	"github.com/anonto42/inkwell/backend/internal/services"
	"github.com/labstack/echo/v4"
)

func currentClaims(c echo.Context) *models.JwtCustomClaims {
	claims, _ := c.Get("user").(*models.JwtCustomClaims)
	return claims
}

// getUserIDFromContext returns 0 for anonymous requests.
func getUserIDFromContext(c echo.Context) uint {
	if claims := currentClaims(c); claims != nil {
		return claims.UserID
	}
	return 0
}

func isAdmin(c echo.Context) bool {
	claims := currentClaims(c)
	return claims != nil && claims.Role == models.RoleAdmin
}

func requireUser(c echo.Context) (uint, error) {
	id := getUserIDFromContext(c)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return id, nil
}

// bindAndValidate binds the request body into req and runs e.Validator.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}

// httpError maps domain errors onto HTTP errors. Anything unrecognised
// becomes a 500 with fallback as its public message.
func httpError(err error, fallback string) error {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Resource not found").SetInternal(err)
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "You are not allowed to do this").SetInternal(err)
	case errors.Is(err, services.ErrConflict), errors.Is(err, repositories.ErrDuplicate):
		return echo.NewHTTPError(http.StatusConflict, "Resource already exists").SetInternal(err)
	case errors.Is(err, services.ErrBanned):
		return echo.NewHTTPError(http.StatusForbidden, "You are banned by the Admin").SetInternal(err)
	case errors.Is(err, services.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials").SetInternal(err)
	case errors.Is(err, services.ErrInvalidCode):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired code").SetInternal(err)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fallback).SetInternal(err)
}

// notFound is httpError with a resource-specific 404 message.
func notFound(err error, msg, fallback string) error {
	if errors.Is(err, services.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, msg)
	}
	return httpError(err, fallback)
}
