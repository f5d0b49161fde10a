package models

import "time"

// Статусы подписки.
const (
	SubscriptionActive   = "ACTIVE"
	SubscriptionCanceled = "CANCELED"
	SubscriptionExpired  = "EXPIRED"
)

// Subscription связывает владельца (пользователя или организацию) с планом.
// Заполнено ровно одно из полей UserID/OrganizationID, это гарантирует
// CHECK‑ограничение в базе.
type Subscription struct {
	ID                 string
	UserID             *string // UUID пользователя, nil если подписка организации
	OrganizationID     *string // UUID организации, nil если подписка личная
	PlanID             string
	Status             string // ACTIVE, CANCELED или EXPIRED
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CreatedAt          time.Time
}
