package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

// GetPlanByTier возвращает план по точной паре (tier, plan_type) или ErrNoRows.
// Сравнение tier строгое, с учётом регистра.
func (s *Storage) GetPlanByTier(ctx context.Context, tier, planType string) (*models.Plan, error) {
	const op = "storage.GetPlanByTier"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, tier, plan_type, max_documents, max_storage_mb,
			      max_queries, max_members, price_monthly, description, created_at
			  FROM plans
			  WHERE tier = $1 AND plan_type = $2`
	return scanPlan(s.db.QueryRowContext(ctx, query, tier, planType), op)
}

// GetActivePlanForUser возвращает план активной личной подписки пользователя.
func (s *Storage) GetActivePlanForUser(ctx context.Context, userID string) (*models.Plan, error) {
	const op = "storage.GetActivePlanForUser"

	query := `SELECT p.id, p.name, p.tier, p.plan_type, p.max_documents, p.max_storage_mb,
			      p.max_queries, p.max_members, p.price_monthly, p.description, p.created_at
			  FROM plans p
			  JOIN subscriptions s ON s.plan_id = p.id
			  WHERE s.user_id = $1 AND s.status = 'ACTIVE'
			  ORDER BY s.created_at DESC
			  LIMIT 1`
	return scanPlan(s.db.QueryRowContext(ctx, query, userID), op)
}

// GetActivePlanForOrganization возвращает план активной корпоративной подписки.
func (s *Storage) GetActivePlanForOrganization(ctx context.Context, organizationID string) (*models.Plan, error) {
	const op = "storage.GetActivePlanForOrganization"

	query := `SELECT p.id, p.name, p.tier, p.plan_type, p.max_documents, p.max_storage_mb,
			      p.max_queries, p.max_members, p.price_monthly, p.description, p.created_at
			  FROM plans p
			  JOIN subscriptions s ON s.plan_id = p.id
			  WHERE s.organization_id = $1 AND s.status = 'ACTIVE'
			  ORDER BY s.created_at DESC
			  LIMIT 1`
	return scanPlan(s.db.QueryRowContext(ctx, query, organizationID), op)
}

// ListPlans возвращает весь справочник планов, отсортированный по типу и цене.
func (s *Storage) ListPlans(ctx context.Context) ([]models.Plan, error) {
	const op = "storage.ListPlans"

	query := `SELECT id, name, tier, plan_type, max_documents, max_storage_mb,
			      max_queries, max_members, price_monthly, description, created_at
			  FROM plans
			  ORDER BY plan_type, price_monthly`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Plan
	for rows.Next() {
		var p models.Plan
		var maxMembers sql.NullInt64
		if err = rows.Scan(&p.ID, &p.Name, &p.Tier, &p.PlanType, &p.MaxDocuments,
			&p.MaxStorageMB, &p.MaxQueries, &maxMembers, &p.PriceMonthly,
			&p.Description, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if maxMembers.Valid {
			m := int(maxMembers.Int64)
			p.MaxMembers = &m
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanPlan(row *sql.Row, op string) (*models.Plan, error) {
	p := &models.Plan{}
	var maxMembers sql.NullInt64
	if err := row.Scan(&p.ID, &p.Name, &p.Tier, &p.PlanType, &p.MaxDocuments,
		&p.MaxStorageMB, &p.MaxQueries, &maxMembers, &p.PriceMonthly,
		&p.Description, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNoRows)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if maxMembers.Valid {
		m := int(maxMembers.Int64)
		p.MaxMembers = &m
	}
	return p, nil
}
