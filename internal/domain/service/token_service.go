// Package service defines interfaces for domain services whose concrete
// implementations live in the infrastructure layer.
package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenClaims is the identity carried by a validated access token.
type TokenClaims struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// TokenService issues and validates the access/refresh token pair.
type TokenService interface {
	// GenerateTokens creates a new access and refresh token for the user.
	GenerateTokens(userID uuid.UUID, isAdmin bool) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken parses and verifies an access token.
	ValidateAccessToken(token string) (*TokenClaims, error)

	// ValidateRefreshToken parses and verifies a refresh token.
	ValidateRefreshToken(token string) (*TokenClaims, error)

	// HashToken returns the storage hash of a token string; only hashes are
	// persisted.
	HashToken(token string) string

	// RefreshTokenDuration returns how long a refresh token stays valid.
	RefreshTokenDuration() time.Duration
}
