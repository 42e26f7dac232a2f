package handler

import (
	"log/slog"
	"net/http"

	"anha/internal/delivery/http/response"
	"anha/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UploadHandlerParams defines the dependencies for UploadHandler.
type UploadHandlerParams struct {
	fx.In

	Store  service.ImageStore `optional:"true"`
	Logger *slog.Logger
}

// UploadHandler stores product images. The image store is optional; without
// it the endpoint reports the feature as unavailable.
type UploadHandler struct {
	store  service.ImageStore
	logger *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler, injected by Fx.
func NewUploadHandler(params UploadHandlerParams) *UploadHandler {
	return &UploadHandler{
		store:  params.Store,
		logger: params.Logger,
	}
}

// Upload accepts one multipart image and returns its public URL.
func (h *UploadHandler) Upload(c echo.Context) error {
	if h.store == nil {
		return response.Error(c, http.StatusServiceUnavailable, "UPLOAD_UNAVAILABLE", "Image upload is not configured", "")
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Image file is required")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer src.Close()

	url, err := h.store.Save(c.Request().Context(), fileHeader.Filename, src)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]string{"url": url}, "Image uploaded successfully")
}
