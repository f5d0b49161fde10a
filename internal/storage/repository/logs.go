package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/period"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

// CreateQueryLog сохраняет запись истории RAG‑запроса и возвращает её ID.
// Цитаты сериализуются в jsonb.
func (s *Storage) CreateQueryLog(ctx context.Context, entry models.QueryLog) (string, error) {
	const op = "storage.CreateQueryLog"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	citations := entry.Citations
	if citations == nil {
		citations = []string{}
	}
	citationsJSON, err := json.Marshal(citations)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var newID string
	query := `INSERT INTO query_logs (user_id, organization_id, query_text, answer_text,
			      citations, latency_ms, tokens_used)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id;`
	if err := s.db.QueryRowContext(ctx, query,
		entry.UserID, entry.OrganizationID, entry.QueryText, entry.AnswerText,
		citationsJSON, entry.LatencyMS, entry.TokensUsed).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// AddQueryLog атомарно сохраняет запись RAG‑запроса, увеличивает счётчики
// потребления за текущий месяц и пишет запись аудита QUERY_RAG.
func (s *Storage) AddQueryLog(ctx context.Context, entry models.QueryLog) (string, error) {
	const op = "storage.AddQueryLog"

	var newID string
	err := s.WithTx(ctx, func(tx *Storage) error {
		id, err := tx.CreateQueryLog(ctx, entry)
		if err != nil {
			return err
		}
		newID = id

		p := period.MonthOf(entry.CreatedAt)
		if _, err = tx.GetOrCreateUsage(ctx, &entry.UserID, nil, p); err != nil {
			return err
		}
		if err = tx.IncrementUsage(ctx, &entry.UserID, nil, p, 0, 1, 0, entry.TokensUsed); err != nil {
			return err
		}
		return tx.CreateAuditLog(ctx, models.AuditLog{
			UserID:       &entry.UserID,
			Action:       models.ActionQueryRAG,
			ResourceType: "query_log",
			ResourceID:   &id,
		})
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListQueryLogs возвращает историю запросов пользователя постранично, новые первыми.
func (s *Storage) ListQueryLogs(ctx context.Context, userID string, limit, offset int) ([]models.QueryLog, error) {
	const op = "storage.ListQueryLogs"

	query := `SELECT id, user_id, organization_id, query_text, answer_text,
			      citations, latency_ms, tokens_used, created_at
			  FROM query_logs
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

	var result []models.QueryLog
	for rows.Next() {
		var q models.QueryLog
		var orgID sql.NullString
		var citationsJSON []byte
		if err = rows.Scan(&q.ID, &q.UserID, &orgID, &q.QueryText, &q.AnswerText,
			&citationsJSON, &q.LatencyMS, &q.TokensUsed, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if orgID.Valid {
			q.OrganizationID = &orgID.String
		}
		if len(citationsJSON) > 0 {
			if err = json.Unmarshal(citationsJSON, &q.Citations); err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
		}
		result = append(result, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateAuditLog пишет запись журнала аудита.
func (s *Storage) CreateAuditLog(ctx context.Context, entry models.AuditLog) error {
	const op = "storage.CreateAuditLog"

	query := `INSERT INTO audit_logs (user_id, organization_id, action, resource_type,
			      resource_id, ip_address)
			  VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := s.db.ExecContext(ctx, query,
		entry.UserID, entry.OrganizationID, entry.Action, entry.ResourceType,
		entry.ResourceID, entry.IPAddress); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Overview — данные для сводки только на чтение: счётчики по сущностям,
// подписки по статусам и агрегированное потребление за текущий месяц.
type Overview struct {
	Users                 int            `json:"users"`
	ActiveUsers           int            `json:"active_users"`
	Organizations         int            `json:"organizations"`
	Documents             int            `json:"documents"`
	QueryLogs             int            `json:"query_logs"`
	SubscriptionsByStatus map[string]int `json:"subscriptions_by_status"`
	CurrentMonthUsage     *models.Usage  `json:"current_month_usage"`
}

// GetOverview собирает сводку read‑model проекцией по всем сущностям.
func (s *Storage) GetOverview(ctx context.Context) (*Overview, error) {
	const op = "storage.GetOverview"

	o := &Overview{}
	query := `SELECT
			      (SELECT COUNT(*) FROM users),
			      (SELECT COUNT(*) FROM users WHERE is_active),
			      (SELECT COUNT(*) FROM organizations),
			      (SELECT COUNT(*) FROM documents),
			      (SELECT COUNT(*) FROM query_logs)`
	if err := s.db.QueryRowContext(ctx, query).Scan(&o.Users, &o.ActiveUsers,
		&o.Organizations, &o.Documents, &o.QueryLogs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byStatus, err := s.CountSubscriptionsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	o.SubscriptionsByStatus = byStatus

	usage, err := s.SumUsageForPeriod(ctx, period.MonthOf(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	o.CurrentMonthUsage = usage
	return o, nil
}
