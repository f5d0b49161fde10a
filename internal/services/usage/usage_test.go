package usage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
	"github.com/magabrotheeeer/ragdocs-backend/internal/storage/repository"
)

type StoreMock struct {
	mock.Mock
}

func (m *StoreMock) GetActivePlanForUser(ctx context.Context, userID string) (*models.Plan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *StoreMock) GetOrCreateUsage(ctx context.Context, userID, organizationID *string, periodStart time.Time) (*models.Usage, error) {
	args := m.Called(ctx, userID, organizationID, periodStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Usage), args.Error(1)
}

func TestService_Current(t *testing.T) {
	plan := &models.Plan{Tier: models.TierFree, MaxDocuments: 10, MaxQueries: 100, MaxStorageMB: 100}

	t.Run("returns plan and usage for current month", func(t *testing.T) {
		store := new(StoreMock)
		store.On("GetActivePlanForUser", mock.Anything, "user-1").Return(plan, nil)
		store.On("GetOrCreateUsage", mock.Anything,
			mock.MatchedBy(func(id *string) bool { return id != nil && *id == "user-1" }),
			(*string)(nil),
			mock.MatchedBy(func(ts time.Time) bool {
				now := time.Now().UTC()
				return ts.Year() == now.Year() && ts.Month() == now.Month() && ts.Day() == 1
			}),
		).Return(&models.Usage{DocumentsUploaded: 3, QueriesExecuted: 42}, nil)

		summary, err := New(store).Current(context.Background(), "user-1")

		require.NoError(t, err)
		assert.Equal(t, plan, summary.Plan)
		assert.Equal(t, 3, summary.Usage.DocumentsUploaded)
		assert.Equal(t, 42, summary.Usage.QueriesExecuted)
		store.AssertExpectations(t)
	})

	t.Run("no active subscription", func(t *testing.T) {
		store := new(StoreMock)
		store.On("GetActivePlanForUser", mock.Anything, "user-1").Return(nil, repository.ErrNoRows)

		summary, err := New(store).Current(context.Background(), "user-1")

		require.Error(t, err)
		assert.Nil(t, summary)
		appErr, ok := apperr.From(err)
		require.True(t, ok)
		assert.Equal(t, "unauthorized_access", appErr.Code)
		store.AssertNotCalled(t, "GetOrCreateUsage")
	})
}
