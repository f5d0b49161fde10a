// Package usage отдаёт потребление пользователя за текущий месяц вместе
// с лимитами его активного плана.
package usage

import (
	"context"
	"errors"
	"time"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/period"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
	"github.com/magabrotheeeer/ragdocs-backend/internal/storage/repository"
)

// Store описывает контракт хранилища для чтения потребления.
type Store interface {
	GetActivePlanForUser(ctx context.Context, userID string) (*models.Plan, error)
	GetOrCreateUsage(ctx context.Context, userID, organizationID *string, periodStart time.Time) (*models.Usage, error)
}

// Summary — потребление за текущий период вместе с лимитами плана.
type Summary struct {
	Usage *models.Usage
	Plan  *models.Plan
}

// Service отдаёт сводку потребления пользователя.
type Service struct {
	store Store
}

// New создает новый экземпляр Service.
func New(store Store) *Service {
	return &Service{store: store}
}

// Current возвращает потребление за текущий месяц и лимиты активного плана.
// Отсутствующая строка потребления создаётся обнулённой.
func (s *Service) Current(ctx context.Context, userID string) (*Summary, error) {
	plan, err := s.store.GetActivePlanForUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperr.Unauthorized("no active subscription")
		}
		return nil, err
	}

	usage, err := s.store.GetOrCreateUsage(ctx, &userID, nil, period.MonthOf(time.Now().UTC()))
	if err != nil {
		return nil, err
	}
	return &Summary{Usage: usage, Plan: plan}, nil
}
