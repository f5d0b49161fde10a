// Package register реализует HTTP-обработчик регистрации пользователя.
package register

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
	"github.com/magabrotheeeer/ragdocs-backend/internal/services/auth"
)

// Request — входные данные для регистрации.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required"`
	PlanTier string `json:"plan_tier" validate:"omitempty,oneof=FREE PRO PREMIUM"`
}

// Service описывает контракт сервиса регистрации пользователей.
type Service interface {
	Register(ctx context.Context, in auth.RegisterInput) (*models.User, error)
}

// Handler обрабатывает запрос на регистрацию.
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

// ServeHTTP обрабатывает HTTP-запрос на регистрацию пользователя.
//
// @Summary Регистрация пользователя
// @Description Создает пользователя, индивидуальную подписку и счетчик потребления за текущий месяц.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} response.Response "Пользователь создан"
// @Failure 400 {object} response.Response "Некорректный JSON или слабый пароль"
// @Failure 404 {object} response.Response "Тарифный план не найден"
// @Failure 409 {object} response.Response "Email или имя пользователя уже заняты"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	planTier := req.PlanTier
	if planTier == "" {
		planTier = models.TierFree
	}

	user, err := h.service.Register(r.Context(), auth.RegisterInput{
		Email:       req.Email,
		Username:    req.Username,
		Password:    req.Password,
		PlanTier:    planTier,
		AccountType: models.PlanTypeIndividual,
	})
	if err != nil {
		status, resp := response.Fail(err)
		log.Error("registration failed", sl.Err(err), slog.String("trace_id", resp.TraceID))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}
	log.Info("user registered", slog.String("user_id", user.ID))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK(http.StatusCreated, "user registered successfully", map[string]any{
		"id":         user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"plan":       planTier,
		"user_type":  models.PlanTypeIndividual,
		"created_at": user.CreatedAt,
	}))
}
