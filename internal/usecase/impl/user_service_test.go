package impl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"anha/internal/domain/entity"
	domainerrors "anha/internal/domain/errors"
	"anha/internal/domain/repository"
	domainservice "anha/internal/domain/service"
	mockRepo "anha/internal/mocks/repository"
	mockService "anha/internal/mocks/service"
	"anha/internal/usecase"
)

type userServiceMocks struct {
	txManager        *mockRepo.MockTransactionManager
	userRepo         *mockRepo.MockUserRepository
	refreshTokenRepo *mockRepo.MockRefreshTokenRepository
	hasher           *mockService.MockPasswordHasher
	tokenService     *mockService.MockTokenService
}

func newUserService(t *testing.T) (usecase.UserUsecase, *userServiceMocks) {
	m := &userServiceMocks{
		txManager:        mockRepo.NewMockTransactionManager(t),
		userRepo:         mockRepo.NewMockUserRepository(t),
		refreshTokenRepo: mockRepo.NewMockRefreshTokenRepository(t),
		hasher:           mockService.NewMockPasswordHasher(t),
		tokenService:     mockService.NewMockTokenService(t),
	}
	svc := NewUserService(UserServiceParams{
		TxManager:        m.txManager,
		UserRepo:         m.userRepo,
		RefreshTokenRepo: m.refreshTokenRepo,
		Hasher:           m.hasher,
		TokenService:     m.tokenService,
		Logger:           newTestLogger(),
	})

	return svc, m
}

func expectTokenIssue(m *userServiceMocks, userID uuid.UUID, isAdmin bool) {
	m.tokenService.EXPECT().GenerateTokens(userID, isAdmin).Return("access", "refresh", nil)
	m.tokenService.EXPECT().HashToken("refresh").Return("refresh-hash")
	m.tokenService.EXPECT().RefreshTokenDuration().Return(30 * 24 * time.Hour)
	m.refreshTokenRepo.EXPECT().Create(mock.Anything, mock.AnythingOfType("*entity.RefreshToken")).Return(nil)
}

func TestUserService_Register_Success(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()

	m.hasher.EXPECT().Hash("secret123").Return("hashed", nil)

	var createdID uuid.UUID
	m.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			userRepo := mockRepo.NewMockUserRepository(t)

			factory.EXPECT().NewUserRepository().Return(userRepo)
			userRepo.EXPECT().FindByEmail(ctx, "a@anha.vn").Return(nil, repository.ErrUserNotFound)
			userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					createdID = user.ID
				}).
				Return(nil)

			return fn(factory)
		})

	m.tokenService.EXPECT().GenerateTokens(mock.AnythingOfType("uuid.UUID"), false).Return("access", "refresh", nil)
	m.tokenService.EXPECT().HashToken("refresh").Return("refresh-hash")
	m.tokenService.EXPECT().RefreshTokenDuration().Return(30 * 24 * time.Hour)
	m.refreshTokenRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.RefreshToken")).Return(nil)

	result, err := svc.Register(ctx, &usecase.RegisterInput{Name: "A", Email: "a@anha.vn", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, createdID, result.User.ID)
	assert.Equal(t, "access", result.AccessToken)
	assert.Equal(t, "refresh", result.RefreshToken)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()

	m.hasher.EXPECT().Hash("secret123").Return("hashed", nil)

	m.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			userRepo := mockRepo.NewMockUserRepository(t)

			factory.EXPECT().NewUserRepository().Return(userRepo)
			userRepo.EXPECT().FindByEmail(ctx, "a@anha.vn").Return(&entity.User{ID: uuid.New()}, nil)

			return fn(factory)
		})

	_, err := svc.Register(ctx, &usecase.RegisterInput{Name: "A", Email: "a@anha.vn", Password: "secret123"})

	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Login_Success(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), Email: "a@anha.vn", PasswordHash: "hashed", IsAdmin: true}
	m.userRepo.EXPECT().FindByEmail(ctx, "a@anha.vn").Return(user, nil)
	m.hasher.EXPECT().Check("secret123", "hashed").Return(true)
	expectTokenIssue(m, user.ID, true)

	result, err := svc.Login(ctx, &usecase.LoginInput{Email: "a@anha.vn", Password: "secret123"})

	require.NoError(t, err)
	assert.True(t, result.User.IsAdmin)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()

	user := &entity.User{ID: uuid.New(), PasswordHash: "hashed"}
	m.userRepo.EXPECT().FindByEmail(ctx, "a@anha.vn").Return(user, nil)
	m.hasher.EXPECT().Check("wrong", "hashed").Return(false)

	_, err := svc.Login(ctx, &usecase.LoginInput{Email: "a@anha.vn", Password: "wrong"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmailSameError(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()

	m.userRepo.EXPECT().FindByEmail(ctx, "ghost@anha.vn").Return(nil, repository.ErrUserNotFound)

	_, err := svc.Login(ctx, &usecase.LoginInput{Email: "ghost@anha.vn", Password: "x"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Refresh_RotatesToken(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	m.tokenService.EXPECT().ValidateRefreshToken("old-refresh").
		Return(&domainservice.TokenClaims{UserID: userID}, nil)
	m.tokenService.EXPECT().HashToken("old-refresh").Return("old-hash")
	m.refreshTokenRepo.EXPECT().FindByHash(ctx, "old-hash").
		Return(&entity.RefreshToken{UserID: userID, TokenHash: "old-hash", ExpiresAt: time.Now().Add(time.Hour)}, nil)
	m.userRepo.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID}, nil)
	m.refreshTokenRepo.EXPECT().DeleteByHash(ctx, "old-hash").Return(nil)
	expectTokenIssue(m, userID, false)

	result, err := svc.Refresh(ctx, "old-refresh")

	require.NoError(t, err)
	assert.Equal(t, "refresh", result.RefreshToken)
}

func TestUserService_Refresh_ExpiredStoredToken(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	m.tokenService.EXPECT().ValidateRefreshToken("old-refresh").
		Return(&domainservice.TokenClaims{UserID: userID}, nil)
	m.tokenService.EXPECT().HashToken("old-refresh").Return("old-hash")
	m.refreshTokenRepo.EXPECT().FindByHash(ctx, "old-hash").
		Return(&entity.RefreshToken{UserID: userID, ExpiresAt: time.Now().Add(-time.Minute)}, nil)

	_, err := svc.Refresh(ctx, "old-refresh")

	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestUserService_Logout_UnknownTokenIsClean(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()

	m.tokenService.EXPECT().HashToken("gone").Return("gone-hash")
	m.refreshTokenRepo.EXPECT().DeleteByHash(ctx, "gone-hash").Return(repository.ErrRefreshTokenNotFound)

	require.NoError(t, svc.Logout(ctx, "gone"))
}

func TestUserService_UpdateProfile_PartialUpdate(t *testing.T) {
	svc, m := newUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	m.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			userRepo := mockRepo.NewMockUserRepository(t)

			factory.EXPECT().NewUserRepository().Return(userRepo)
			userRepo.EXPECT().FindByID(ctx, userID).
				Return(&entity.User{ID: userID, Name: "Cũ", Email: "a@anha.vn"}, nil)
			userRepo.EXPECT().Update(ctx, mock.AnythingOfType("*entity.User")).Return(nil)

			return fn(factory)
		})

	profile, err := svc.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{Name: "Mới"})

	require.NoError(t, err)
	assert.Equal(t, "Mới", profile.Name)
	assert.Equal(t, "a@anha.vn", profile.Email)
}
