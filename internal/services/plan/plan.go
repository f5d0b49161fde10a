// Package plan отдаёт справочник тарифных планов. Планы заливаются миграцией
// и практически не меняются, поэтому список читается через кэш.
package plan

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

const (
	cacheKey = "plans:catalog"
	cacheTTL = 5 * time.Minute
)

// Store описывает контракт хранилища для справочника планов.
type Store interface {
	ListPlans(ctx context.Context) ([]models.Plan, error)
}

// Cache — подмножество операций кэша, используемое сервисом. Может быть nil.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service отдаёт справочник планов с кэшированием cache-aside.
type Service struct {
	store Store
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(store Store, cache Cache, log *slog.Logger) *Service {
	return &Service{store: store, cache: cache, log: log}
}

// List возвращает все планы. Отказ кэша не фатален: читаем базу и едем дальше.
func (s *Service) List(ctx context.Context) ([]models.Plan, error) {
	if s.cache != nil {
		var cached []models.Plan
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.log.Warn("plan cache read failed", sl.Err(err))
		} else if found {
			return cached, nil
		}
	}

	plans, err := s.store.ListPlans(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, plans, cacheTTL); err != nil {
			s.log.Warn("plan cache write failed", sl.Err(err))
		}
	}
	return plans, nil
}
