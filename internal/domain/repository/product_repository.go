// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"anha/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the standard operations for catalog persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByBarcode retrieves a single product by its barcode.
	FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error)

	// Search returns one page of products whose name matches the keyword
	// (all products when the keyword is empty), plus the total match count.
	Search(ctx context.Context, keyword string, page, pageSize int) ([]*entity.Product, int64, error)

	// Create persists a new product with its unit list.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product, replacing its unit list.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product.
	Delete(ctx context.Context, id uuid.UUID) error
}
