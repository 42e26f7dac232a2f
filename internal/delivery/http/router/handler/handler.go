// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"anha/internal/delivery/http/middleware"
	"anha/internal/delivery/http/response"
	domainerrors "anha/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// callerID returns the authenticated user's ID set by the auth middleware.
func callerID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(middleware.KeyUserID).(uuid.UUID)

	return id, ok
}

// callerIsAdmin reports whether the authenticated user is an admin.
func callerIsAdmin(c echo.Context) bool {
	isAdmin, _ := c.Get(middleware.KeyIsAdmin).(bool)

	return isAdmin
}

// pathID parses a path parameter as a UUID.
func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("invalid " + name + " format")
	}

	return id, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
