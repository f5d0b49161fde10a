package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

// CreateOrganization сохраняет организацию и возвращает её ID.
func (s *Storage) CreateOrganization(ctx context.Context, org models.Organization) (string, error) {
	const op = "storage.CreateOrganization"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO organizations (name, slug)
			  VALUES ($1, $2)
			  RETURNING id;`
	if err := s.db.QueryRowContext(ctx, query, org.Name, org.Slug).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetOrganizationBySlug возвращает организацию по уникальному slug или ErrNoRows.
func (s *Storage) GetOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	const op = "storage.GetOrganizationBySlug"

	query := `SELECT id, name, slug, created_at, updated_at
			  FROM organizations
			  WHERE slug = $1`
	org := &models.Organization{}
	row := s.db.QueryRowContext(ctx, query, slug)
	if err := row.Scan(&org.ID, &org.Name, &org.Slug, &org.CreatedAt, &org.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNoRows)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return org, nil
}

// AddOrganizationMember добавляет пользователя в организацию с указанной ролью.
func (s *Storage) AddOrganizationMember(ctx context.Context, organizationID, userID, role string) error {
	const op = "storage.AddOrganizationMember"

	query := `INSERT INTO organization_members (organization_id, user_id, role)
			  VALUES ($1, $2, $3)`
	if _, err := s.db.ExecContext(ctx, query, organizationID, userID, role); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetMemberRole возвращает роль пользователя в организации или ErrNoRows.
func (s *Storage) GetMemberRole(ctx context.Context, organizationID, userID string) (string, error) {
	const op = "storage.GetMemberRole"

	var role string
	query := `SELECT role FROM organization_members
			  WHERE organization_id = $1 AND user_id = $2`
	if err := s.db.QueryRowContext(ctx, query, organizationID, userID).Scan(&role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, ErrNoRows)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return role, nil
}

// ListOrganizationMembers возвращает участников организации с данными пользователей.
func (s *Storage) ListOrganizationMembers(ctx context.Context, organizationID string) ([]models.OrganizationMember, error) {
	const op = "storage.ListOrganizationMembers"

	query := `SELECT m.id, m.organization_id, m.user_id, u.username, u.email, m.role, m.created_at
			  FROM organization_members m
			  JOIN users u ON u.id = m.user_id
			  WHERE m.organization_id = $1
			  ORDER BY m.created_at`
	rows, err := s.db.QueryContext(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.OrganizationMember
	for rows.Next() {
		var m models.OrganizationMember
		if err = rows.Scan(&m.ID, &m.OrganizationID, &m.UserID, &m.Username,
			&m.Email, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountMembers возвращает количество участников организации.
func (s *Storage) CountMembers(ctx context.Context, organizationID string) (int, error) {
	const op = "storage.CountMembers"

	var count int
	query := `SELECT COUNT(*) FROM organization_members WHERE organization_id = $1`
	if err := s.db.QueryRowContext(ctx, query, organizationID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// CreateOrganizationWithOwner атомарно создаёт организацию, членство OWNER
// для создателя и корпоративную подписку на указанный план. Занятый slug и
// отсутствующий план транслируются в доменные ошибки, всё остальное
// откатывает транзакцию целиком.
func (s *Storage) CreateOrganizationWithOwner(ctx context.Context, org models.Organization, ownerID, planTier string, now time.Time) (*models.Organization, error) {
	const op = "storage.CreateOrganizationWithOwner"

	var created *models.Organization
	err := s.WithTx(ctx, func(tx *Storage) error {
		if _, err := tx.GetOrganizationBySlug(ctx, org.Slug); err == nil {
			return apperr.SlugTaken(org.Slug)
		} else if !errors.Is(err, ErrNoRows) {
			return err
		}

		plan, err := tx.GetPlanByTier(ctx, planTier, models.PlanTypeOrganization)
		if err != nil {
			if errors.Is(err, ErrNoRows) {
				return apperr.PlanNotFound(planTier)
			}
			return err
		}

		orgID, err := tx.CreateOrganization(ctx, org)
		if err != nil {
			return err
		}

		if err = tx.AddOrganizationMember(ctx, orgID, ownerID, models.MemberOwner); err != nil {
			return err
		}

		if _, err = tx.CreateSubscription(ctx, models.Subscription{
			OrganizationID:     &orgID,
			PlanID:             plan.ID,
			Status:             models.SubscriptionActive,
			CurrentPeriodStart: now,
			CurrentPeriodEnd:   now.AddDate(0, 0, subscriptionPeriodDays),
		}); err != nil {
			return err
		}

		created, err = tx.GetOrganizationBySlug(ctx, org.Slug)
		return err
	})
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, apperr.SlugTaken(org.Slug)
		}
		if _, ok := apperr.From(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}
