// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и служебные отметки времени.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователя.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	ID           string     // Уникальный идентификатор пользователя (UUID)
	Email        string     // Электронная почта (уникальная, хранится в нижнем регистре)
	Username     string     // Имя пользователя (уникальное)
	PasswordHash string     // Хэш пароля пользователя
	Role         string     // Роль пользователя, admin или user
	IsActive     bool       // Признак активной учётной записи
	LastLogin    *time.Time // Время последнего входа, nil если входов не было
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
