// Package admin отдаёт сводку по системе только на чтение: счётчики сущностей,
// подписки по статусам и агрегированное потребление за текущий месяц.
// Это read-model проекция, никакие мутации здесь не выполняются.
package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ragdocs-backend/internal/storage/repository"
)

const (
	cacheKey = "admin:overview"
	cacheTTL = 30 * time.Second
)

// Store описывает контракт хранилища для сводки.
type Store interface {
	GetOverview(ctx context.Context) (*repository.Overview, error)
}

// Cache — подмножество операций кэша, используемое сервисом. Может быть nil.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service отдаёт сводку по системе с коротким кэшированием.
type Service struct {
	store Store
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(store Store, cache Cache, log *slog.Logger) *Service {
	return &Service{store: store, cache: cache, log: log}
}

// Overview возвращает сводку, отдавая кэшированную копию не старше 30 секунд.
func (s *Service) Overview(ctx context.Context) (*repository.Overview, error) {
	if s.cache != nil {
		var cached repository.Overview
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.log.Warn("overview cache read failed", sl.Err(err))
		} else if found {
			return &cached, nil
		}
	}

	overview, err := s.store.GetOverview(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, overview, cacheTTL); err != nil {
			s.log.Warn("overview cache write failed", sl.Err(err))
		}
	}
	return overview, nil
}
