// Package list реализует HTTP-обработчик истории RAG-запросов пользователя.
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

// Item — представление записи истории в ответе.
type Item struct {
	ID         string    `json:"id"`
	QueryText  string    `json:"query_text"`
	AnswerText string    `json:"answer_text,omitempty"`
	Citations  []string  `json:"citations,omitempty"`
	LatencyMS  int       `json:"latency_ms"`
	TokensUsed int       `json:"tokens_used"`
	CreatedAt  time.Time `json:"created_at"`
}

// Service описывает контракт сервиса истории запросов.
type Service interface {
	List(ctx context.Context, userID string, limit, offset int) ([]models.QueryLog, error)
}

// Handler обрабатывает запрос на получение истории запросов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP обрабатывает HTTP-запрос на историю RAG-запросов пользователя.
//
// @Summary История RAG-запросов
// @Description Возвращает записи истории текущего пользователя, новые первыми.
// @Tags Queries
// @Produce  json
// @Security BearerAuth
// @Param limit query int false "Максимум записей (по умолчанию 20, не более 100)"
// @Param offset query int false "Смещение"
// @Success 200 {object} response.Response "История запросов"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /queries [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.query.list"

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

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	logs, err := h.service.List(r.Context(), userID, limit, offset)
	if err != nil {
		status, resp := response.Fail(err)
		log.Error("failed to list queries", sl.Err(err), slog.String("trace_id", resp.TraceID))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	items := make([]Item, 0, len(logs))
	for _, q := range logs {
		items = append(items, Item{
			ID:         q.ID,
			QueryText:  q.QueryText,
			AnswerText: q.AnswerText,
			Citations:  q.Citations,
			LatencyMS:  q.LatencyMS,
			TokensUsed: q.TokensUsed,
			CreatedAt:  q.CreatedAt,
		})
	}

	render.JSON(w, r, response.OK(http.StatusOK, "queries retrieved successfully", map[string]any{
		"items": items,
		"count": len(items),
	}))
}
