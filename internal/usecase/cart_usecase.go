package usecase

import (
	"context"

	"github.com/google/uuid"

	"anha/internal/domain/entity"
)

// CartView is a cart together with its server-computed totals.
type CartView struct {
	Lines      []*entity.CartLine `json:"items"`
	ItemsPrice int64              `json:"itemsPrice"`
	TotalPrice int64              `json:"totalPrice"`
}

// CartUsecase exposes the shopping cart operations for one user.
type CartUsecase interface {
	// GetCart returns the user's cart with current totals.
	GetCart(ctx context.Context, userID uuid.UUID) (*CartView, error)

	// AddItem puts a product line into the cart, resolving the selected
	// unit and its price server-side. Adding a product that is already in
	// the cart replaces its line, including the unit selection.
	AddItem(ctx context.Context, userID, productID uuid.UUID, unitName string, quantity int) (*CartView, error)

	// RemoveItem drops the product's line from the cart. Removing a line
	// that is not present is a no-op.
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartView, error)

	// Clear empties the cart.
	Clear(ctx context.Context, userID uuid.UUID) error
}
