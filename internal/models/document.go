package models

import "time"

// Статусы документа в конвейере обработки. Сам конвейер (извлечение текста,
// чанки, эмбеддинги) живёт во внешнем сервисе, здесь хранятся только ссылки.
const (
	DocumentUploaded   = "UPLOADED"
	DocumentProcessing = "PROCESSING"
	DocumentIndexed    = "INDEXED"
	DocumentFailed     = "FAILED"
)

// Области видимости документа.
const (
	ScopeUser         = "USER"
	ScopeOrganization = "ORGANIZATION"
)

// Document — ссылка на загруженный документ в объектном хранилище.
type Document struct {
	ID             string
	UserID         string
	OrganizationID *string
	Scope          string // USER или ORGANIZATION
	Title          string
	FileKey        string // Ключ объекта в хранилище
	FileURL        string
	MimeType       string
	SizeMB         int
	Status         string // UPLOADED, PROCESSING, INDEXED или FAILED
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DocumentChunk — фрагмент текста документа с эмбеддингом для поиска.
// Заполняется внешним конвейером индексации.
type DocumentChunk struct {
	ID         string
	DocumentID string
	ChunkIndex int
	Text       string
	Embedding  string
}
