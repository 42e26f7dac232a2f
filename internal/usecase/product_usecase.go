// Package usecase defines the application-facing interfaces and DTOs that
// the delivery layer depends on.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"anha/internal/domain/entity"
)

// UnitInput is one purchasable unit of a product as submitted by an admin.
type UnitInput struct {
	Name        string  `json:"name" validate:"required"`
	Ratio       float64 `json:"ratio"`
	Price       *int64  `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	IsDefault   bool    `json:"isDefault"`
	InStock     bool    `json:"inStock"`
}

// ProductInput carries the mutable fields of a product.
type ProductInput struct {
	Name         string      `json:"name" validate:"required"`
	Image        string      `json:"image"`
	Brand        string      `json:"brand"`
	Category     string      `json:"category"`
	Description  string      `json:"description"`
	Price        int64       `json:"price" validate:"gte=0"`
	RetailPrice  *int64      `json:"retailPrice"`
	CountInStock int         `json:"countInStock" validate:"gte=0"`
	Barcode      *string     `json:"barcode"`
	Units        []UnitInput `json:"units" validate:"dive"`
}

// ProductPage is one page of catalog results.
type ProductPage struct {
	Products []*entity.Product `json:"products"`
	Page     int               `json:"page"`
	Pages    int               `json:"pages"`
	Total    int64             `json:"total"`
}

// ProductUsecase exposes the product catalog operations.
type ProductUsecase interface {
	// List returns a page of products, optionally filtered by keyword.
	List(ctx context.Context, keyword string, page int) (*ProductPage, error)

	// Get returns one product by ID.
	Get(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// GetByBarcode returns one product by barcode.
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)

	// CreateSample creates a placeholder product the admin then edits.
	CreateSample(ctx context.Context) (*entity.Product, error)

	// Update replaces a product's fields. Unit lists are normalized before
	// saving.
	Update(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error
}
