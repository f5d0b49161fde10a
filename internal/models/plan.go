// Package models содержит доменные структуры тарифных планов и подписок.
package models

import "time"

// Тарифные уровни планов. Сравнение строгое, без приведения регистра.
const (
	TierFree    = "FREE"
	TierPro     = "PRO"
	TierPremium = "PREMIUM"
)

// Типы планов: индивидуальный или для организации.
const (
	PlanTypeIndividual   = "INDIVIDUAL"
	PlanTypeOrganization = "ORGANIZATION"
)

// Unlimited — значение лимита, означающее отсутствие ограничения.
const Unlimited = -1

// Plan описывает тарифный план с квотами. Планы заливаются миграцией
// и используются только для чтения.
type Plan struct {
	ID           string  // Уникальный идентификатор плана (UUID)
	Name         string  // Читаемое имя плана
	Tier         string  // FREE, PRO или PREMIUM
	PlanType     string  // INDIVIDUAL или ORGANIZATION
	MaxDocuments int     // Лимит документов, -1 — без ограничения
	MaxStorageMB int     // Лимит хранилища в мегабайтах, -1 — без ограничения
	MaxQueries   int     // Лимит запросов в месяц, -1 — без ограничения
	MaxMembers   *int    // Лимит участников, nil — без ограничения
	PriceMonthly float64 // Цена за месяц
	Description  string
	CreatedAt    time.Time
}

// AllowsDocuments сообщает, укладывается ли количество документов в лимит плана.
func (p *Plan) AllowsDocuments(current int) bool {
	return p.MaxDocuments == Unlimited || current < p.MaxDocuments
}

// AllowsStorageMB сообщает, укладывается ли суммарный объём в лимит плана.
func (p *Plan) AllowsStorageMB(currentMB, addMB int) bool {
	return p.MaxStorageMB == Unlimited || currentMB+addMB <= p.MaxStorageMB
}

// AllowsQueries сообщает, укладывается ли количество запросов в лимит плана.
func (p *Plan) AllowsQueries(current int) bool {
	return p.MaxQueries == Unlimited || current < p.MaxQueries
}
