package models

import "time"

// Usage хранит счётчики потребления за календарный месяц для пользователя
// или организации. Period — первый день месяца. Счётчики в пределах периода
// только растут.
type Usage struct {
	ID                string
	UserID            *string // nil, если это потребление организации
	OrganizationID    *string // nil, если это личное потребление
	Period            time.Time
	DocumentsUploaded int
	QueriesExecuted   int
	StorageUsedMB     int
	TokensUsed        int
	UpdatedAt         time.Time
}
