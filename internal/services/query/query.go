// Package query ведёт историю RAG-запросов: запись логов с проверкой квоты
// запросов плана и выдача истории. Само исполнение RAG-запроса выполняется
// внешним сервисом, сюда приходит уже готовый результат.
package query

import (
	"context"
	"errors"
	"time"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/period"
	"github.com/magabrotheeeer/ragdocs-backend/internal/metrics"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
	"github.com/magabrotheeeer/ragdocs-backend/internal/storage/repository"
)

// Store описывает контракт хранилища для истории запросов.
type Store interface {
	GetActivePlanForUser(ctx context.Context, userID string) (*models.Plan, error)
	GetUsage(ctx context.Context, userID, organizationID *string, periodStart time.Time) (*models.Usage, error)
	AddQueryLog(ctx context.Context, entry models.QueryLog) (string, error)
	ListQueryLogs(ctx context.Context, userID string, limit, offset int) ([]models.QueryLog, error)
}

// RecordInput — входные данные записи RAG-запроса.
type RecordInput struct {
	UserID     string
	QueryText  string
	AnswerText string
	Citations  []string
	LatencyMS  int
	TokensUsed int
}

// Service реализует операции над историей RAG-запросов.
type Service struct {
	store Store
}

// New создает новый экземпляр Service.
func New(store Store) *Service {
	return &Service{store: store}
}

// Record пишет запись истории после проверки месячной квоты запросов плана.
func (s *Service) Record(ctx context.Context, in RecordInput) (*models.QueryLog, error) {
	plan, err := s.store.GetActivePlanForUser(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, apperr.Unauthorized("no active subscription")
		}
		return nil, err
	}

	now := time.Now().UTC()
	usage, err := s.store.GetUsage(ctx, &in.UserID, nil, period.MonthOf(now))
	if err != nil && !errors.Is(err, repository.ErrNoRows) {
		return nil, err
	}
	var usedQueries int
	if usage != nil {
		usedQueries = usage.QueriesExecuted
	}
	if !plan.AllowsQueries(usedQueries) {
		return nil, apperr.QuotaExceeded("queries", plan.MaxQueries)
	}

	entry := models.QueryLog{
		UserID:     in.UserID,
		QueryText:  in.QueryText,
		AnswerText: in.AnswerText,
		Citations:  in.Citations,
		LatencyMS:  in.LatencyMS,
		TokensUsed: in.TokensUsed,
		CreatedAt:  now,
	}
	id, err := s.store.AddQueryLog(ctx, entry)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	metrics.QueriesLoggedTotal.Inc()
	return &entry, nil
}

// List возвращает историю запросов пользователя постранично.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]models.QueryLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListQueryLogs(ctx, userID, limit, offset)
}
