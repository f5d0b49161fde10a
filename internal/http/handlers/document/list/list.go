// Package list реализует HTTP-обработчик списка документов пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

// Item — представление документа в ответе.
type Item struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	FileURL   string    `json:"file_url,omitempty"`
	MimeType  string    `json:"mime_type"`
	SizeMB    int       `json:"size_mb"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Service описывает контракт сервиса документов.
type Service interface {
	List(ctx context.Context, userID string, limit, offset int) ([]models.Document, error)
}

// Handler обрабатывает запрос на получение списка документов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP обрабатывает HTTP-запрос на список документов текущего пользователя.
//
// @Summary Список документов
// @Description Возвращает документы текущего пользователя, отсортированные по дате создания.
// @Tags Documents
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Максимум записей (по умолчанию 20, не более 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response "Список документов"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /documents [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id is missing in context")
		status, resp := response.Fail(apperr.Unauthorized(""))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	limit, offset := pagination(r)

	docs, err := h.service.List(r.Context(), userID, limit, offset)
	if err != nil {
		status, resp := response.Fail(err)
		log.Error("failed to list documents", sl.Err(err), slog.String("trace_id", resp.TraceID))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	items := make([]Item, 0, len(docs))
	for _, d := range docs {
		items = append(items, Item{
			ID:        d.ID,
			Title:     d.Title,
			FileURL:   d.FileURL,
			MimeType:  d.MimeType,
			SizeMB:    d.SizeMB,
			Status:    d.Status,
			CreatedAt: d.CreatedAt,
		})
	}

	render.JSON(w, r, response.OK(http.StatusOK, "documents retrieved successfully", map[string]any{
		"items": items,
		"count": len(items),
	}))
}

func pagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
