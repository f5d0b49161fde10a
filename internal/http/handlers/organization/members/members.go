// Package members реализует HTTP-обработчик списка участников организации.
package members

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

// Item — представление участника в ответе.
type Item struct {
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// Service описывает контракт сервиса организаций.
type Service interface {
	ListMembers(ctx context.Context, slug, actorID string) ([]models.OrganizationMember, error)
}

// Handler обрабатывает запрос на список участников.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP обрабатывает HTTP-запрос на список участников организации.
//
// Список доступен только участникам организации.
//
// @Summary Список участников
// @Description Возвращает участников организации с ролями.
// @Tags Organizations
// @Produce  json
// @Security BearerAuth
// @Param slug path string true "Slug организации"
// @Success 200 {object} response.Response "Список участников"
// @Failure 401 {object} response.Response "Пользователь не состоит в организации"
// @Failure 404 {object} response.Response "Организация не найдена"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /organizations/{slug}/members [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.organization.members"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	actorID, ok := middlewarectx.UserIDFromContext(r.Context())
	if !ok {
		log.Error("user id is missing in context")
		status, resp := response.Fail(apperr.Unauthorized(""))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		status, resp := response.BadRequest("organization slug is required")
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	list, err := h.service.ListMembers(r.Context(), slug, actorID)
	if err != nil {
		status, resp := response.Fail(err)
		log.Error("failed to list members", sl.Err(err), slog.String("trace_id", resp.TraceID))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	items := make([]Item, 0, len(list))
	for _, m := range list {
		items = append(items, Item{
			Username: m.Username,
			Email:    m.Email,
			Role:     m.Role,
			JoinedAt: m.CreatedAt,
		})
	}

	render.JSON(w, r, response.OK(http.StatusOK, "members retrieved successfully", map[string]any{
		"items": items,
		"count": len(items),
	}))
}
