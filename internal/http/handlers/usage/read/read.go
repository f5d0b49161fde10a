// Package read реализует HTTP-обработчик сводки потребления за текущий месяц.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ragdocs-backend/internal/services/usage"
)

// Service описывает контракт сервиса сводки потребления.
type Service interface {
	Current(ctx context.Context, userID string) (*usage.Summary, error)
}

// Handler обрабатывает запрос на сводку потребления.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP обрабатывает HTTP-запрос на сводку потребления текущего пользователя.
//
// @Summary Потребление за текущий месяц
// @Description Возвращает счетчики потребления и лимиты активного плана.
// @Tags Usage
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Сводка потребления"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /usage [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.usage.read"

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

	summary, err := h.service.Current(r.Context(), userID)
	if err != nil {
		status, resp := response.Fail(err)
		log.Error("failed to read usage", sl.Err(err), slog.String("trace_id", resp.TraceID))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	render.JSON(w, r, response.OK(http.StatusOK, "usage retrieved successfully", map[string]any{
		"period": summary.Usage.Period.Format("2006-01"),
		"usage": map[string]any{
			"documents_uploaded": summary.Usage.DocumentsUploaded,
			"queries_executed":   summary.Usage.QueriesExecuted,
			"storage_used_mb":    summary.Usage.StorageUsedMB,
			"tokens_used":        summary.Usage.TokensUsed,
		},
		"limits": map[string]any{
			"plan":           summary.Plan.Tier,
			"max_documents":  summary.Plan.MaxDocuments,
			"max_queries":    summary.Plan.MaxQueries,
			"max_storage_mb": summary.Plan.MaxStorageMB,
		},
	}))
}
