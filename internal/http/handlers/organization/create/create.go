// Package create реализует HTTP-обработчик создания организации.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

// Request — данные новой организации.
type Request struct {
	Name     string `json:"name" validate:"required,max=255"`
	Slug     string `json:"slug" validate:"required,min=2,max=100"`
	PlanTier string `json:"plan_tier" validate:"required"`
}

// Service описывает контракт сервиса организаций.
type Service interface {
	Create(ctx context.Context, name, slug, planTier, ownerID string) (*models.Organization, error)
}

// Handler обрабатывает запрос на создание организации.
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

// ServeHTTP обрабатывает HTTP-запрос на создание организации.
//
// Текущий пользователь становится владельцем (OWNER), организации
// создаётся корпоративная подписка на указанный план.
//
// @Summary Создать организацию
// @Description Создает организацию с корпоративной подпиской, текущий пользователь становится владельцем.
// @Tags Organizations
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Данные новой организации"
// @Success 201 {object} response.Response "Организация создана"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 404 {object} response.Response "Тарифный план не найден"
// @Failure 409 {object} response.Response "Slug уже занят"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /organizations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.organization.create"

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

	slug := strings.ToLower(req.Slug)

	org, err := h.service.Create(r.Context(), req.Name, slug, req.PlanTier, userID)
	if err != nil {
		status, resp := response.Fail(err)
		log.Error("failed to create organization", sl.Err(err), slog.String("trace_id", resp.TraceID))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}
	log.Info("organization created", slog.String("organization_id", org.ID))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK(http.StatusCreated, "organization created successfully", map[string]any{
		"id":   org.ID,
		"name": org.Name,
		"slug": org.Slug,
	}))
}
