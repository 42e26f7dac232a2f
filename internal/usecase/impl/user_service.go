package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "anha/internal/delivery/context"
	"anha/internal/domain/entity"
	domainerrors "anha/internal/domain/errors"
	"anha/internal/domain/repository"
	"anha/internal/domain/service"
	"anha/internal/usecase"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	logger           *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Logger           *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		logger:           params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account and signs it in.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthResult, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage("failed to hash password")
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check existing email")
		}

		return userRepo.Create(ctx, user)
	})
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, domainerrors.ErrTransactionFailed.WrapMessage("failed to register user")
	}

	return srv.issueTokens(ctx, user)
}

// Login verifies credentials and issues a fresh token pair.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthResult, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	srv.log(ctx).Info("User logged in", slog.String("userID", user.ID.String()))

	return srv.issueTokens(ctx, user)
}

// Refresh rotates a refresh token: the old one is revoked and a new pair is
// issued.
func (srv *userService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthResult, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	hash := srv.tokenService.HashToken(refreshToken)
	stored, err := srv.refreshTokenRepo.FindByHash(ctx, hash)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to find refresh token")
	}
	if stored.ExpiresAt.Before(time.Now()) {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to find user")
	}

	if err := srv.refreshTokenRepo.DeleteByHash(ctx, hash); err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to revoke refresh token")
	}

	return srv.issueTokens(ctx, user)
}

// Logout revokes a refresh token. An already-revoked token logs out cleanly.
func (srv *userService) Logout(ctx context.Context, refreshToken string) error {
	hash := srv.tokenService.HashToken(refreshToken)
	if err := srv.refreshTokenRepo.DeleteByHash(ctx, hash); err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil
		}

		return domainerrors.ErrInternalError.WrapMessage("failed to revoke refresh token")
	}

	return nil
}

// GetProfile returns the user's profile.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*usecase.UserProfile, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to find user")
	}

	return profileOf(user), nil
}

// UpdateProfile edits the user's name, email or password. Empty fields are
// left unchanged.
func (srv *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*usecase.UserProfile, error) {
	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		if input.Name != "" {
			user.Name = input.Name
		}
		if input.Email != "" && input.Email != user.Email {
			_, err := userRepo.FindByEmail(ctx, input.Email)
			if err == nil {
				return domainerrors.ErrUserAlreadyExists
			}
			if !errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(err, "failed to check existing email")
			}
			user.Email = input.Email
		}
		if input.Password != "" {
			hash, err := srv.hasher.Hash(input.Password)
			if err != nil {
				return domainerrors.ErrPasswordHashFailed
			}
			user.PasswordHash = hash
		}
		user.UpdatedAt = time.Now()

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}

		updated = user

		return nil
	})
	if err != nil {
		var appErr domainerrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}

		return nil, domainerrors.ErrTransactionFailed.WrapMessage("failed to update profile")
	}

	srv.log(ctx).Info("Profile updated", slog.String("userID", userID.String()))

	return profileOf(updated), nil
}

func (srv *userService) issueTokens(ctx context.Context, user *entity.User) (*usecase.AuthResult, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.IsAdmin)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to generate tokens")
	}

	record := &entity.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
		CreatedAt: time.Now(),
	}
	if err := srv.refreshTokenRepo.Create(ctx, record); err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to store refresh token")
	}

	return &usecase.AuthResult{
		User:         profileOf(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func profileOf(user *entity.User) *usecase.UserProfile {
	return &usecase.UserProfile{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
}
