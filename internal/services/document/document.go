// Package document содержит бизнес-логику для ссылок на документы:
// регистрация загрузки с проверкой квот плана и выдача списков.
// Сам конвейер обработки (чанки, эмбеддинги) живёт во внешнем сервисе.
package document

import (
	"context"
	"errors"
	"time"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/period"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
	"github.com/magabrotheeeer/ragdocs-backend/internal/storage/repository"
)

// Store описывает контракт хранилища для работы с документами.
type Store interface {
	GetActivePlanForUser(ctx context.Context, userID string) (*models.Plan, error)
	GetUsage(ctx context.Context, userID, organizationID *string, periodStart time.Time) (*models.Usage, error)
	AddDocument(ctx context.Context, doc models.Document) (string, error)
	ListDocuments(ctx context.Context, userID string, limit, offset int) ([]models.Document, error)
}

// CreateInput — входные данные регистрации документа.
type CreateInput struct {
	UserID   string
	Title    string
	FileKey  string
	FileURL  string
	MimeType string
	SizeMB   int
}

// Service реализует операции над ссылками на документы.
type Service struct {
	store Store
}

// New создает новый экземпляр Service.
func New(store Store) *Service {
	return &Service{store: store}
}

// Create регистрирует документ после проверки квот активного плана:
// лимита количества документов и лимита хранилища за текущий месяц.
// Превышение квоты — доменная ошибка QuotaExceeded.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Document, error) {
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
	var usedDocs, usedStorage int
	if usage != nil {
		usedDocs = usage.DocumentsUploaded
		usedStorage = usage.StorageUsedMB
	}

	if !plan.AllowsDocuments(usedDocs) {
		return nil, apperr.QuotaExceeded("documents", plan.MaxDocuments)
	}
	if !plan.AllowsStorageMB(usedStorage, in.SizeMB) {
		return nil, apperr.QuotaExceeded("storage_mb", plan.MaxStorageMB)
	}

	doc := models.Document{
		UserID:    in.UserID,
		Scope:     models.ScopeUser,
		Title:     in.Title,
		FileKey:   in.FileKey,
		FileURL:   in.FileURL,
		MimeType:  in.MimeType,
		SizeMB:    in.SizeMB,
		Status:    models.DocumentUploaded,
		CreatedAt: now,
	}
	id, err := s.store.AddDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	return &doc, nil
}

// List возвращает документы пользователя постранично.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]models.Document, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.ListDocuments(ctx, userID, limit, offset)
}
