package repository

import (
	"context"

	"anha/internal/domain/entity"

	"github.com/google/uuid"
)

// CartRepository persists the per-user cart line set. The cart aggregate is
// mutated in memory by the composer and written back whole after every
// mutation; there is no per-line persistence API on purpose.
type CartRepository interface {
	// Load returns the user's cart. A user without stored lines gets an
	// empty cart, not an error.
	Load(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// Save replaces the stored line set with the cart's current lines.
	Save(ctx context.Context, cart *entity.Cart) error

	// Clear drops every stored line for the user.
	Clear(ctx context.Context, userID uuid.UUID) error
}
