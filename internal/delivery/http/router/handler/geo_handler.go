package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"anha/internal/delivery/http/response"
	"anha/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// GeoHandler serves the Vietnamese administrative-unit cascade used by the
// checkout address form.
type GeoHandler struct {
	directory service.GeoDirectory
	logger    *slog.Logger
}

// NewGeoHandler is the constructor for GeoHandler, injected by Fx.
func NewGeoHandler(directory service.GeoDirectory, logger *slog.Logger) *GeoHandler {
	return &GeoHandler{
		directory: directory,
		logger:    logger,
	}
}

// Provinces lists every province.
func (h *GeoHandler) Provinces(c echo.Context) error {
	provinces, err := h.directory.Provinces(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, provinces, "Provinces retrieved successfully")
}

// Districts lists the districts of one province.
func (h *GeoHandler) Districts(c echo.Context) error {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid province code")
	}

	districts, err := h.directory.Districts(c.Request().Context(), code)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, districts, "Districts retrieved successfully")
}

// Wards lists the wards of one district.
func (h *GeoHandler) Wards(c echo.Context) error {
	code, err := strconv.Atoi(c.Param("code"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid district code")
	}

	wards, err := h.directory.Wards(c.Request().Context(), code)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, wards, "Wards retrieved successfully")
}
