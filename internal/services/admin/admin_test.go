package admin

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

	"github.com/magabrotheeeer/ragdocs-backend/internal/storage/repository"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) GetOverview(ctx context.Context) (*repository.Overview, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Overview), args.Error(1)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	if args.Bool(0) {
		*result.(*repository.Overview) = repository.Overview{Users: 7}
	}
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_Overview(t *testing.T) {
	overview := &repository.Overview{Users: 12, ActiveUsers: 10, Documents: 34}

	t.Run("cache hit skips store", func(t *testing.T) {
		store := new(StoreMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "admin:overview", mock.Anything).Return(true, nil)

		got, err := New(store, cache, discardLogger()).Overview(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 7, got.Users)
		store.AssertNotCalled(t, "GetOverview")
	})

	t.Run("cache miss reads store and caches for 30s", func(t *testing.T) {
		store := new(StoreMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "admin:overview", mock.Anything).Return(false, nil)
		store.On("GetOverview", mock.Anything).Return(overview, nil)
		cache.On("Set", mock.Anything, "admin:overview", overview, 30*time.Second).Return(nil)

		got, err := New(store, cache, discardLogger()).Overview(context.Background())

		require.NoError(t, err)
		assert.Equal(t, overview, got)
		cache.AssertExpectations(t)
	})

	t.Run("cache errors are not fatal", func(t *testing.T) {
		store := new(StoreMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "admin:overview", mock.Anything).Return(false, errors.New("redis down"))
		store.On("GetOverview", mock.Anything).Return(overview, nil)
		cache.On("Set", mock.Anything, "admin:overview", overview, 30*time.Second).Return(errors.New("redis down"))

		got, err := New(store, cache, discardLogger()).Overview(context.Background())

		require.NoError(t, err)
		assert.Equal(t, overview, got)
	})

	t.Run("nil cache goes straight to store", func(t *testing.T) {
		store := new(StoreMock)
		store.On("GetOverview", mock.Anything).Return(overview, nil)

		got, err := New(store, nil, discardLogger()).Overview(context.Background())

		require.NoError(t, err)
		assert.Equal(t, overview, got)
	})
}
