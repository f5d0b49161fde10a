package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

// CreateSubscription сохраняет подписку и возвращает её ID.
// Владелец — ровно одно из полей UserID/OrganizationID, это дополнительно
// охраняет CHECK‑ограничение таблицы.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (string, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO subscriptions (user_id, organization_id, plan_id, status,
			      current_period_start, current_period_end)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id;`
	if err := s.db.QueryRowContext(ctx, query,
		sub.UserID, sub.OrganizationID, sub.PlanID, sub.Status,
		sub.CurrentPeriodStart, sub.CurrentPeriodEnd).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetSubscriptionForUser возвращает последнюю подписку пользователя или ErrNoRows.
func (s *Storage) GetSubscriptionForUser(ctx context.Context, userID string) (*models.Subscription, error) {
	const op = "storage.GetSubscriptionForUser"

	query := `SELECT id, user_id, organization_id, plan_id, status,
			      current_period_start, current_period_end, created_at
			  FROM subscriptions
			  WHERE user_id = $1
			  ORDER BY created_at DESC
			  LIMIT 1`
	sub := &models.Subscription{}
	var orgID, usrID sql.NullString
	row := s.db.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&sub.ID, &usrID, &orgID, &sub.PlanID, &sub.Status,
		&sub.CurrentPeriodStart, &sub.CurrentPeriodEnd, &sub.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNoRows)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if usrID.Valid {
		sub.UserID = &usrID.String
	}
	if orgID.Valid {
		sub.OrganizationID = &orgID.String
	}
	return sub, nil
}

// CountSubscriptionsByStatus возвращает количество подписок по статусам.
func (s *Storage) CountSubscriptionsByStatus(ctx context.Context) (map[string]int, error) {
	const op = "storage.CountSubscriptionsByStatus"

	query := `SELECT status, COUNT(*) FROM subscriptions GROUP BY status`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err = rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result[status] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
