package models

import "time"

// Действия для журнала аудита.
const (
	ActionRegister = "REGISTER"
	ActionLogin    = "LOGIN"
	ActionQueryRAG = "QUERY_RAG"
)

// QueryLog — запись истории RAG‑запроса: вопрос, ответ, цитаты и метрики.
type QueryLog struct {
	ID             string
	UserID         string
	OrganizationID *string
	QueryText      string
	AnswerText     string
	Citations      []string // Источники, использованные в ответе
	LatencyMS      int
	TokensUsed     int
	CreatedAt      time.Time
}

// AuditLog — запись журнала аудита значимых действий.
type AuditLog struct {
	ID             string
	UserID         *string
	OrganizationID *string
	Action         string // REGISTER, LOGIN, QUERY_RAG и т.п.
	ResourceType   string
	ResourceID     *string
	IPAddress      *string
	CreatedAt      time.Time
}
