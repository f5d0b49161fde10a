package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/period"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

// CreateDocument сохраняет ссылку на документ и возвращает её ID.
func (s *Storage) CreateDocument(ctx context.Context, doc models.Document) (string, error) {
	const op = "storage.CreateDocument"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO documents (user_id, organization_id, scope, title, file_key,
			      file_url, mime_type, size_mb, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING id;`
	if err := s.db.QueryRowContext(ctx, query,
		doc.UserID, doc.OrganizationID, doc.Scope, doc.Title, doc.FileKey,
		doc.FileURL, doc.MimeType, doc.SizeMB, doc.Status).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// AddDocument атомарно сохраняет ссылку на документ и увеличивает счётчики
// потребления за текущий месяц (documents_uploaded и storage_used_mb).
func (s *Storage) AddDocument(ctx context.Context, doc models.Document) (string, error) {
	const op = "storage.AddDocument"

	var newID string
	err := s.WithTx(ctx, func(tx *Storage) error {
		id, err := tx.CreateDocument(ctx, doc)
		if err != nil {
			return err
		}
		newID = id

		p := period.MonthOf(doc.CreatedAt)
		if _, err = tx.GetOrCreateUsage(ctx, &doc.UserID, nil, p); err != nil {
			return err
		}
		return tx.IncrementUsage(ctx, &doc.UserID, nil, p, 1, 0, doc.SizeMB, 0)
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListDocuments возвращает документы пользователя постранично, новые первыми.
func (s *Storage) ListDocuments(ctx context.Context, userID string, limit, offset int) ([]models.Document, error) {
	const op = "storage.ListDocuments"

	query := `SELECT id, user_id, organization_id, scope, title, file_key, file_url,
			      mime_type, size_mb, status, created_at, updated_at
			  FROM documents
			  WHERE user_id = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Document
	for rows.Next() {
		var d models.Document
		var orgID sql.NullString
		if err = rows.Scan(&d.ID, &d.UserID, &orgID, &d.Scope, &d.Title, &d.FileKey,
			&d.FileURL, &d.MimeType, &d.SizeMB, &d.Status, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if orgID.Valid {
			d.OrganizationID = &orgID.String
		}
		result = append(result, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountDocuments возвращает количество документов пользователя.
func (s *Storage) CountDocuments(ctx context.Context, userID string) (int, error) {
	const op = "storage.CountDocuments"

	var count int
	query := `SELECT COUNT(*) FROM documents WHERE user_id = $1`
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
