package models

import "time"

// Роли участников организации.
const (
	MemberOwner  = "OWNER"
	MemberAdmin  = "ADMIN"
	MemberMember = "MEMBER"
)

// Organization представляет компанию с корпоративным планом.
type Organization struct {
	ID        string
	Name      string
	Slug      string // Уникальный человекочитаемый идентификатор
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrganizationMember — членство пользователя в организации.
// Пара (организация, пользователь) уникальна.
type OrganizationMember struct {
	ID             string
	OrganizationID string
	UserID         string
	Username       string // Денормализовано для выдачи списков
	Email          string
	Role           string // OWNER, ADMIN или MEMBER
	CreatedAt      time.Time
}
