package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/period"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

func TestStorage_RegisterAccount(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	created, err := storage.RegisterAccount(ctx, newTestUser("user1@example.com", "user1"), models.TierFree, now)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "user1@example.com", created.Email)
	assert.True(t, created.IsActive)

	// Подписка создана активной на 30 дней
	sub, err := storage.GetSubscriptionForUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.WithinDuration(t, now.AddDate(0, 0, 30), sub.CurrentPeriodEnd, time.Minute)

	// Строка потребления обнулена
	usage, err := storage.GetUsage(ctx, &created.ID, nil, period.MonthOf(now))
	require.NoError(t, err)
	assert.Zero(t, usage.DocumentsUploaded)
	assert.Zero(t, usage.QueriesExecuted)
	assert.Zero(t, usage.StorageUsedMB)

	// Активный план разрешается через подписку
	plan, err := storage.GetActivePlanForUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TierFree, plan.Tier)
}

func TestStorage_RegisterAccount_Duplicates(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	_, err := storage.RegisterAccount(ctx, newTestUser("dup@example.com", "dupuser"), models.TierFree, now)
	require.NoError(t, err)

	// Повтор email
	_, err = storage.RegisterAccount(ctx, newTestUser("dup@example.com", "otheruser"), models.TierFree, now)
	require.Error(t, err)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, "user_already_exists", appErr.Code)

	// Повтор username
	_, err = storage.RegisterAccount(ctx, newTestUser("other@example.com", "dupuser"), models.TierFree, now)
	require.Error(t, err)
	appErr, ok = apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, "user_already_exists", appErr.Code)
}

func TestStorage_RegisterAccount_UnknownPlanRollsBack(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	_, err := storage.RegisterAccount(ctx, newTestUser("user2@example.com", "user2"), "GOLD", time.Now().UTC())
	require.Error(t, err)
	appErr, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, "plan_not_found", appErr.Code)

	// Пользователь не должен остаться в базе после отката
	var count int
	err = storage.DB.QueryRow("SELECT COUNT(*) FROM users WHERE email = $1", "user2@example.com").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStorage_GetOrCreateUsage_Idempotent(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	created, err := storage.RegisterAccount(ctx, newTestUser("user3@example.com", "user3"), models.TierFree, now)
	require.NoError(t, err)

	p := period.MonthOf(now)

	first, err := storage.GetOrCreateUsage(ctx, &created.ID, nil, p)
	require.NoError(t, err)

	require.NoError(t, storage.IncrementUsage(ctx, &created.ID, nil, p, 1, 0, 5, 0))

	// Повторный вызов не создает новую строку и не обнуляет счётчики
	second, err := storage.GetOrCreateUsage(ctx, &created.ID, nil, p)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, second.DocumentsUploaded)
	assert.Equal(t, 5, second.StorageUsedMB)
}

func TestStorage_AddDocument_UpdatesUsage(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()

	created, err := storage.RegisterAccount(ctx, newTestUser("user4@example.com", "user4"), models.TierFree, now)
	require.NoError(t, err)

	id, err := storage.AddDocument(ctx, models.Document{
		UserID:   created.ID,
		Scope:    models.ScopeUser,
		Title:    "report.pdf",
		FileKey:  "docs/report.pdf",
		MimeType: "application/pdf",
		SizeMB:   7,
		Status:   models.DocumentUploaded,
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	usage, err := storage.GetUsage(ctx, &created.ID, nil, period.MonthOf(now))
	require.NoError(t, err)
	assert.Equal(t, 1, usage.DocumentsUploaded)
	assert.Equal(t, 7, usage.StorageUsedMB)

	docs, err := storage.ListDocuments(ctx, created.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "report.pdf", docs[0].Title)
}

func TestStorage_SeededPlans(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	plans, err := storage.ListPlans(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, plans)

	byTier := make(map[string]models.Plan)
	for _, p := range plans {
		if p.PlanType == models.PlanTypeIndividual {
			byTier[p.Tier] = p
		}
	}

	free, ok := byTier[models.TierFree]
	require.True(t, ok)
	assert.Equal(t, 10, free.MaxDocuments)
	assert.Equal(t, 100, free.MaxStorageMB)
	assert.Equal(t, 100, free.MaxQueries)

	premium, ok := byTier[models.TierPremium]
	require.True(t, ok)
	assert.Equal(t, models.Unlimited, premium.MaxDocuments)
}
