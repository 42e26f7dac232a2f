package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"anha/internal/delivery/http/response"
	"anha/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for catalog handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: logger,
	}
}

// List returns one page of the catalog, optionally filtered by keyword.
func (h *ProductHandler) List(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	page, _ := strconv.Atoi(c.QueryParam("page"))

	result, err := h.uc.List(c.Request().Context(), keyword, page)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Products retrieved successfully")
}

// Get returns one product by ID.
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

// GetByBarcode returns one product by its barcode.
func (h *ProductHandler) GetByBarcode(c echo.Context) error {
	barcode := c.Param("code")
	if barcode == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Barcode is required")
	}

	product, err := h.uc.GetByBarcode(c.Request().Context(), barcode)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

// CreateSample creates a placeholder product for the admin to edit.
func (h *ProductHandler) CreateSample(c echo.Context) error {
	product, err := h.uc.CreateSample(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// Update replaces a product's fields and unit list.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.ProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(input); err != nil {
		return err
	}

	product, err := h.uc.Update(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// Delete removes a product.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Product deleted"}, "Product deleted successfully")
}
