package repository

import (
	"context"
	"errors"

	"anha/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRefreshTokenNotFound is returned when no stored session matches a token hash.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository defines the operations for stored login sessions.
type RefreshTokenRepository interface {
	// Create persists a new refresh token record.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a non-expired token by its hash.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// DeleteByHash removes the token with the given hash, if any.
	DeleteByHash(ctx context.Context, tokenHash string) error

	// DeleteByUserID removes every token belonging to the user.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
