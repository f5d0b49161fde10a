// Package create реализует HTTP-обработчик записи выполненного RAG-запроса.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
	"github.com/magabrotheeeer/ragdocs-backend/internal/services/query"
)

// Request — результат RAG-запроса, выполненного внешним конвейером.
type Request struct {
	QueryText  string   `json:"query_text" validate:"required"`
	AnswerText string   `json:"answer_text"`
	Citations  []string `json:"citations"`
	LatencyMS  int      `json:"latency_ms" validate:"gte=0"`
	TokensUsed int      `json:"tokens_used" validate:"gte=0"`
}

// Service описывает контракт сервиса истории запросов.
type Service interface {
	Record(ctx context.Context, in query.RecordInput) (*models.QueryLog, error)
}

// Handler обрабатывает запрос на запись RAG-запроса.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает HTTP-запрос на запись выполненного RAG-запроса.
//
// @Summary Записать RAG-запрос
// @Description Сохраняет вопрос, ответ и метрики запроса, списывает квоту плана.
// @Tags Queries
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Результат RAG-запроса"
// @Success 201 {object} response.Response "Запрос записан"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 403 {object} response.Response "Исчерпана квота плана"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /queries [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.query.create"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		status, resp := response.BadRequest("invalid request body")
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		status, resp := response.ValidationError(err.(validator.ValidationErrors))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	entry, err := h.service.Record(r.Context(), query.RecordInput{
		UserID:     userID,
		QueryText:  req.QueryText,
		AnswerText: req.AnswerText,
		Citations:  req.Citations,
		LatencyMS:  req.LatencyMS,
		TokensUsed: req.TokensUsed,
	})
	if err != nil {
		status, resp := response.Fail(err)
		log.Error("failed to record query", sl.Err(err), slog.String("trace_id", resp.TraceID))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}
	log.Info("query recorded", slog.String("query_id", entry.ID))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK(http.StatusCreated, "query recorded successfully", map[string]any{
		"id": entry.ID,
	}))
}
