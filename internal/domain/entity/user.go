package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account in the shop. Admins manage the catalog and orders.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string // Never serialized to API responses.
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RefreshToken is a stored session credential. Only the hash of the token is
// persisted.
type RefreshToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
