package plan

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) ListPlans(ctx context.Context) ([]models.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Plan), args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	if args.Bool(0) {
		*(result.(*[]models.Plan)) = []models.Plan{{Tier: models.TierFree}}
	}
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_List_CacheHitSkipsStore(t *testing.T) {
	store := new(StoreMock)
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "plans:catalog", mock.Anything).Return(true, nil).Once()

	svc := New(store, cache, newNoopLogger())
	plans, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, plans, 1)
	store.AssertNotCalled(t, "ListPlans")
	cache.AssertExpectations(t)
}

func TestService_List_CacheMissPopulatesCache(t *testing.T) {
	store := new(StoreMock)
	store.On("ListPlans", mock.Anything).
		Return([]models.Plan{{Tier: models.TierFree}, {Tier: models.TierPro}}, nil).Once()

	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "plans:catalog", mock.Anything).Return(false, nil).Once()
	cache.On("Set", mock.Anything, "plans:catalog", mock.Anything, 5*time.Minute).Return(nil).Once()

	svc := New(store, cache, newNoopLogger())
	plans, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, plans, 2)
	store.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_List_CacheFailureIsNotFatal(t *testing.T) {
	store := new(StoreMock)
	store.On("ListPlans", mock.Anything).Return([]models.Plan{{Tier: models.TierFree}}, nil).Once()

	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "plans:catalog", mock.Anything).
		Return(false, errors.New("redis: connection refused")).Once()
	cache.On("Set", mock.Anything, "plans:catalog", mock.Anything, mock.Anything).
		Return(errors.New("redis: connection refused")).Once()

	svc := New(store, cache, newNoopLogger())
	plans, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, plans, 1)
	store.AssertExpectations(t)
}

func TestService_List_NilCache(t *testing.T) {
	store := new(StoreMock)
	store.On("ListPlans", mock.Anything).Return([]models.Plan{}, nil).Once()

	svc := New(store, nil, newNoopLogger())
	_, err := svc.List(context.Background())

	require.NoError(t, err)
	store.AssertExpectations(t)
}
