// Package addmember реализует HTTP-обработчик добавления участника в организацию.
package addmember

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

// Request — данные нового участника.
type Request struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=ADMIN MEMBER"`
}

// Service описывает контракт сервиса организаций.
type Service interface {
	AddMember(ctx context.Context, slug, actorID, username, role string) (*models.OrganizationMember, error)
}

// Handler обрабатывает запрос на добавление участника.
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

// ServeHTTP обрабатывает HTTP-запрос на добавление участника в организацию.
//
// Добавлять участников могут только OWNER и ADMIN. Роль OWNER через
// этот маршрут не назначается.
//
// @Summary Добавить участника
// @Description Добавляет пользователя в организацию с ролью ADMIN или MEMBER.
// @Tags Organizations
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param slug path string true "Slug организации"
// @Param request body Request true "Имя пользователя и роль"
// @Success 201 {object} response.Response "Участник добавлен"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 401 {object} response.Response "Недостаточно прав"
// @Failure 403 {object} response.Response "Достигнут лимит участников"
// @Failure 404 {object} response.Response "Организация или пользователь не найдены"
// @Failure 409 {object} response.Response "Пользователь уже состоит в организации"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /organizations/{slug}/members [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.organization.addmember"

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

	member, err := h.service.AddMember(r.Context(), slug, actorID, req.Username, req.Role)
	if err != nil {
		status, resp := response.Fail(err)
		log.Error("failed to add member", sl.Err(err), slog.String("trace_id", resp.TraceID))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}
	log.Info("member added",
		slog.String("organization_id", member.OrganizationID),
		slog.String("member_id", member.ID))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK(http.StatusCreated, "member added successfully", map[string]any{
		"id":       member.ID,
		"username": member.Username,
		"role":     member.Role,
	}))
}
