package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/period"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

// subscriptionPeriodDays — длительность первого оплаченного периода подписки.
const subscriptionPeriodDays = 30

// RegisterAccount атомарно создаёт учётную запись: пользователя, подписку
// со статусом ACTIVE на 30 дней и обнулённую строку потребления за текущий
// месяц, плюс запись аудита. Порядок проверок фиксирован: занятость email,
// занятость username, существование плана — чтобы причины отказов были
// различимы и не смешивались. Любая ошибка откатывает всё целиком.
//
// Проверки существования гоночные при конкурентной регистрации, поэтому
// нарушение уникального ограничения на коммите транслируется в ту же
// доменную ошибку, что и проверка.
func (s *Storage) RegisterAccount(ctx context.Context, user models.User, planTier string, now time.Time) (*models.User, error) {
	const op = "storage.RegisterAccount"

	var created *models.User
	err := s.WithTx(ctx, func(tx *Storage) error {
		taken, err := tx.EmailExists(ctx, user.Email)
		if err != nil {
			return err
		}
		if taken {
			return apperr.UserAlreadyExists(user.Email)
		}

		taken, err = tx.UsernameExists(ctx, user.Username)
		if err != nil {
			return err
		}
		if taken {
			return apperr.UsernameTaken(user.Username)
		}

		plan, err := tx.GetPlanByTier(ctx, planTier, models.PlanTypeIndividual)
		if err != nil {
			if errors.Is(err, ErrNoRows) {
				return apperr.PlanNotFound(planTier)
			}
			return err
		}

		userID, err := tx.CreateUser(ctx, user)
		if err != nil {
			return err
		}

		if _, err = tx.CreateSubscription(ctx, models.Subscription{
			UserID:             &userID,
			PlanID:             plan.ID,
			Status:             models.SubscriptionActive,
			CurrentPeriodStart: now,
			CurrentPeriodEnd:   now.AddDate(0, 0, subscriptionPeriodDays),
		}); err != nil {
			return err
		}

		if _, err = tx.GetOrCreateUsage(ctx, &userID, nil, period.MonthOf(now)); err != nil {
			return err
		}

		if err = tx.CreateAuditLog(ctx, models.AuditLog{
			UserID:       &userID,
			Action:       models.ActionRegister,
			ResourceType: "user",
			ResourceID:   &userID,
		}); err != nil {
			return err
		}

		created, err = tx.GetUser(ctx, userID)
		return err
	})
	if err != nil {
		if IsUniqueViolation(err) {
			if UniqueConstraintName(err) == "users_username_key" {
				return nil, apperr.UsernameTaken(user.Username)
			}
			return nil, apperr.UserAlreadyExists(user.Email)
		}
		if _, ok := apperr.From(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}
