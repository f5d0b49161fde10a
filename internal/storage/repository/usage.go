package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

// GetOrCreateUsage возвращает строку потребления владельца за период,
// создавая обнулённую при её отсутствии. Идемпотентно: повторный вызов за тот
// же период возвращает существующую строку, ON CONFLICT гасит гонку вставки.
func (s *Storage) GetOrCreateUsage(ctx context.Context, userID, organizationID *string, periodStart time.Time) (*models.Usage, error) {
	const op = "storage.GetOrCreateUsage"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	insert := `INSERT INTO usage (user_id, organization_id, period)
			   VALUES ($1, $2, $3)
			   ON CONFLICT DO NOTHING`
	if _, err := s.db.ExecContext(ctx, insert, userID, organizationID, periodStart); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.GetUsage(ctx, userID, organizationID, periodStart)
}

// GetUsage возвращает строку потребления владельца за период или ErrNoRows.
func (s *Storage) GetUsage(ctx context.Context, userID, organizationID *string, periodStart time.Time) (*models.Usage, error) {
	const op = "storage.GetUsage"

	query := `SELECT id, user_id, organization_id, period, documents_uploaded,
			      queries_executed, storage_used_mb, tokens_used, updated_at
			  FROM usage
			  WHERE user_id IS NOT DISTINCT FROM $1
			    AND organization_id IS NOT DISTINCT FROM $2
			    AND period = $3`
	u := &models.Usage{}
	var usrID, orgID sql.NullString
	row := s.db.QueryRowContext(ctx, query, userID, organizationID, periodStart)
	if err := row.Scan(&u.ID, &usrID, &orgID, &u.Period, &u.DocumentsUploaded,
		&u.QueriesExecuted, &u.StorageUsedMB, &u.TokensUsed, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNoRows)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if usrID.Valid {
		u.UserID = &usrID.String
	}
	if orgID.Valid {
		u.OrganizationID = &orgID.String
	}
	return u, nil
}

// IncrementUsage прибавляет дельты к счётчикам потребления за период.
// Счётчики в пределах периода только растут, отрицательные дельты не передаются.
func (s *Storage) IncrementUsage(ctx context.Context, userID, organizationID *string, periodStart time.Time,
	documents, queries, storageMB, tokens int) error {
	const op = "storage.IncrementUsage"

	query := `UPDATE usage
			  SET documents_uploaded = documents_uploaded + $4,
			      queries_executed = queries_executed + $5,
			      storage_used_mb = storage_used_mb + $6,
			      tokens_used = tokens_used + $7,
			      updated_at = now()
			  WHERE user_id IS NOT DISTINCT FROM $1
			    AND organization_id IS NOT DISTINCT FROM $2
			    AND period = $3`
	res, err := s.db.ExecContext(ctx, query, userID, organizationID, periodStart,
		documents, queries, storageMB, tokens)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNoRows)
	}
	return nil
}

// SumUsageForPeriod агрегирует счётчики потребления всех владельцев за период.
func (s *Storage) SumUsageForPeriod(ctx context.Context, periodStart time.Time) (*models.Usage, error) {
	const op = "storage.SumUsageForPeriod"

	query := `SELECT COALESCE(SUM(documents_uploaded), 0), COALESCE(SUM(queries_executed), 0),
			      COALESCE(SUM(storage_used_mb), 0), COALESCE(SUM(tokens_used), 0)
			  FROM usage
			  WHERE period = $1`
	u := &models.Usage{Period: periodStart}
	if err := s.db.QueryRowContext(ctx, query, periodStart).Scan(&u.DocumentsUploaded,
		&u.QueriesExecuted, &u.StorageUsedMB, &u.TokensUsed); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
