package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/password"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
	"github.com/magabrotheeeer/ragdocs-backend/internal/storage/repository"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) RegisterAccount(ctx context.Context, user models.User, planTier string, now time.Time) (*models.User, error) {
	args := m.Called(ctx, user, planTier, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *StoreMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *StoreMock) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

func (m *StoreMock) CreateAuditLog(ctx context.Context, entry models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newTestService(store Store) *Service {
	maker := jwt.NewJWTMaker("test-secret", time.Hour, 24*time.Hour)
	return New(store, maker, nil, newNoopLogger())
}

func hashFor(t *testing.T, raw string) string {
	t.Helper()
	hash, err := password.GetHash(raw)
	require.NoError(t, err)
	return hash
}

func TestService_Register(t *testing.T) {
	tests := []struct {
		name     string
		input    RegisterInput
		setup    func(store *StoreMock)
		wantErr  bool
		wantCode string
	}{
		{
			name: "successful registration normalizes email",
			input: RegisterInput{
				Email:    "  User1@Example.COM ",
				Username: "user1",
				Password: "password123",
				PlanTier: models.TierFree,
			},
			setup: func(store *StoreMock) {
				store.On("RegisterAccount", mock.Anything,
					mock.MatchedBy(func(u models.User) bool {
						return u.Email == "user1@example.com" &&
							u.Role == models.RoleUser &&
							u.IsActive &&
							u.PasswordHash != "password123"
					}),
					models.TierFree, mock.Anything,
				).Return(&models.User{ID: "uid-1", Email: "user1@example.com", Username: "user1"}, nil).Once()
			},
		},
		{
			name: "weak password rejected before storage",
			input: RegisterInput{
				Email:    "user2@example.com",
				Username: "user2",
				Password: "short",
				PlanTier: models.TierFree,
			},
			setup:    func(_ *StoreMock) {},
			wantErr:  true,
			wantCode: "weak_password",
		},
		{
			name: "duplicate email propagates",
			input: RegisterInput{
				Email:    "dup@example.com",
				Username: "dup",
				Password: "password123",
				PlanTier: models.TierFree,
			},
			setup: func(store *StoreMock) {
				store.On("RegisterAccount", mock.Anything, mock.Anything, models.TierFree, mock.Anything).
					Return(nil, apperr.UserAlreadyExists("dup@example.com")).Once()
			},
			wantErr:  true,
			wantCode: "user_already_exists",
		},
		{
			name: "unknown plan tier propagates",
			input: RegisterInput{
				Email:    "user3@example.com",
				Username: "user3",
				Password: "password123",
				PlanTier: "GOLD",
			},
			setup: func(store *StoreMock) {
				store.On("RegisterAccount", mock.Anything, mock.Anything, "GOLD", mock.Anything).
					Return(nil, apperr.PlanNotFound("GOLD")).Once()
			},
			wantErr:  true,
			wantCode: "plan_not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(StoreMock)
			tt.setup(store)

			svc := newTestService(store)
			user, err := svc.Register(context.Background(), tt.input)

			if tt.wantErr {
				require.Error(t, err)
				appErr, ok := apperr.From(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantCode, appErr.Code)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.NotEmpty(t, user.ID)
			}
			store.AssertExpectations(t)
		})
	}
}

func TestService_Login_Success(t *testing.T) {
	store := new(StoreMock)
	user := &models.User{
		ID:           "uid-1",
		Email:        "user1@example.com",
		Username:     "user1",
		PasswordHash: hashFor(t, "password123"),
		Role:         models.RoleUser,
		IsActive:     true,
	}
	store.On("GetUserByEmail", mock.Anything, "user1@example.com").Return(user, nil).Once()
	store.On("UpdateLastLogin", mock.Anything, "uid-1", mock.Anything).Return(nil).Once()
	store.On("CreateAuditLog", mock.Anything, mock.MatchedBy(func(e models.AuditLog) bool {
		return e.Action == models.ActionLogin && e.UserID != nil && *e.UserID == "uid-1"
	})).Return(nil).Once()

	svc := newTestService(store)
	pair, got, err := svc.Login(context.Background(), "User1@Example.com", "password123", "10.0.0.1")

	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	require.NotNil(t, got.LastLogin)
	store.AssertExpectations(t)

	// Выпущенный access токен проходит проверку
	claims, err := svc.ValidateToken(context.Background(), pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UserID)
}

func TestService_Login_Failures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(store *StoreMock)
		pass  string
	}{
		{
			name: "unknown email",
			setup: func(store *StoreMock) {
				store.On("GetUserByEmail", mock.Anything, "user1@example.com").
					Return(nil, repository.ErrNoRows).Once()
			},
			pass: "password123",
		},
		{
			name: "inactive account",
			setup: func(store *StoreMock) {
				store.On("GetUserByEmail", mock.Anything, "user1@example.com").
					Return(&models.User{ID: "uid-1", IsActive: false}, nil).Once()
			},
			pass: "password123",
		},
		{
			name: "wrong password",
			setup: func(store *StoreMock) {
				store.On("GetUserByEmail", mock.Anything, "user1@example.com").
					Return(&models.User{
						ID:           "uid-1",
						PasswordHash: hashFor(t, "password123"),
						IsActive:     true,
					}, nil).Once()
			},
			pass: "wrong-password-1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(StoreMock)
			tt.setup(store)

			svc := newTestService(store)
			_, _, err := svc.Login(context.Background(), "user1@example.com", tt.pass, "")

			// Все отказы неразличимы для клиента
			require.Error(t, err)
			appErr, ok := apperr.From(err)
			require.True(t, ok)
			assert.Equal(t, "invalid_credentials", appErr.Code)
			store.AssertExpectations(t)
		})
	}
}

func TestService_Refresh(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour, 24*time.Hour)
	svc := New(new(StoreMock), maker, nil, newNoopLogger())

	identity := jwt.Identity{Email: "u@e.com", Username: "user1", Role: "user", UserID: "uid-1"}

	refreshToken, err := maker.GenerateRefreshToken(identity)
	require.NoError(t, err)

	access, err := svc.Refresh(context.Background(), refreshToken)
	require.NoError(t, err)

	claims, err := maker.ParseToken(access)
	require.NoError(t, err)
	assert.Equal(t, jwt.TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "uid-1", claims.UserID)
}

func TestService_Refresh_RejectsAccessToken(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour, 24*time.Hour)
	svc := New(new(StoreMock), maker, nil, newNoopLogger())

	accessToken, err := maker.GenerateAccessToken(jwt.Identity{UserID: "uid-1"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), accessToken)
	require.Error(t, err)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, "invalid_credentials", appErr.Code)
}

func TestService_ValidateToken_RejectsRefreshToken(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour, 24*time.Hour)
	svc := New(new(StoreMock), maker, nil, newNoopLogger())

	refreshToken, err := maker.GenerateRefreshToken(jwt.Identity{UserID: "uid-1"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(context.Background(), refreshToken)
	require.Error(t, err)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, "unauthorized_access", appErr.Code)
}
