// Package overview реализует HTTP-обработчик административной сводки.
package overview

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
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
	"github.com/magabrotheeeer/ragdocs-backend/internal/storage/repository"
)

// Service описывает контракт сервиса административной сводки.
type Service interface {
	Overview(ctx context.Context) (*repository.Overview, error)
}

// Handler обрабатывает запрос на административную сводку.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP обрабатывает HTTP-запрос на сводку по всей системе.
//
// Доступ только для пользователей с ролью admin.
//
// @Summary Административная сводка
// @Description Возвращает агрегаты по пользователям, организациям, документам и подпискам.
// @Tags Admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} response.Response "Сводка"
// @Failure 401 {object} response.Response "Недостаточно прав"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /admin/overview [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.overview"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	role, _ := middlewarectx.RoleFromContext(r.Context())
	if role != models.RoleAdmin {
		log.Error("access denied", slog.String("role", role))
		status, resp := response.Fail(apperr.Unauthorized(""))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	data, err := h.service.Overview(r.Context())
	if err != nil {
		status, resp := response.Fail(err)
		log.Error("failed to build overview", sl.Err(err), slog.String("trace_id", resp.TraceID))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	render.JSON(w, r, response.OK(http.StatusOK, "overview retrieved successfully", data))
}
