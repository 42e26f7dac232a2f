package usecase

import (
	"context"

	"github.com/google/uuid"
)

// RegisterInput is the signup request.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput is the signin request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileInput carries the editable profile fields. Empty fields are
// left unchanged.
type UpdateProfileInput struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// UserProfile is the public view of a user.
type UserProfile struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	IsAdmin bool      `json:"isAdmin"`
}

// AuthResult is the signed-in identity with its token pair.
type AuthResult struct {
	User         *UserProfile `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// UserUsecase exposes account registration and session management.
type UserUsecase interface {
	// Register creates an account and signs it in.
	Register(ctx context.Context, input *RegisterInput) (*AuthResult, error)

	// Login verifies credentials and issues a token pair.
	Login(ctx context.Context, input *LoginInput) (*AuthResult, error)

	// Refresh rotates a refresh token into a new token pair.
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)

	// Logout revokes a refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// GetProfile returns the user's profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserProfile, error)

	// UpdateProfile edits the user's profile.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*UserProfile, error)
}
