// Package login реализует HTTP-обработчик авторизации пользователя.
package login

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ragdocs-backend/internal/config"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/cookies"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
	"github.com/magabrotheeeer/ragdocs-backend/internal/services/auth"
)

// Request — учётные данные для входа.
type Request struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}

// Service описывает контракт сервиса авторизации.
type Service interface {
	Login(ctx context.Context, email, rawPassword, ip string) (*auth.TokenPair, *models.User, error)
}

// Handler обрабатывает запрос на вход.
type Handler struct {
	log       *slog.Logger
	service   Service
	cookieCfg config.AuthCookies
	tokenCfg  config.JWTToken
	validate  *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, cookieCfg config.AuthCookies, tokenCfg config.JWTToken) *Handler {
	return &Handler{
		log:       log,
		service:   service,
		cookieCfg: cookieCfg,
		tokenCfg:  tokenCfg,
		validate:  validator.New(),
	}
}

// ServeHTTP обрабатывает HTTP-запрос на вход пользователя.
//
// Оба токена возвращаются в теле ответа. Access токен всегда кладётся
// в http-only cookie, refresh cookie устанавливается только при remember_me.
//
// @Summary Авторизация пользователя
// @Description Аутентифицирует пользователя по email и паролю. Возвращает JWT и устанавливает http-only cookie.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Учетные данные пользователя"
// @Success 200 {object} response.Response "Успешная авторизация"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 401 {object} response.Response "Неверные учетные данные"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	pair, user, err := h.service.Login(r.Context(), req.Email, req.Password, clientIP(r))
	if err != nil {
		status, resp := response.Fail(err)
		log.Error("login failed", sl.Err(err), slog.String("trace_id", resp.TraceID))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}
	log.Info("user logged in", slog.String("user_id", user.ID))

	cookies.SetAccess(w, h.cookieCfg, pair.AccessToken, h.tokenCfg.AccessTTL)
	if req.RememberMe {
		cookies.SetRefresh(w, h.cookieCfg, pair.RefreshToken, h.tokenCfg.RefreshTTL)
	}

	render.JSON(w, r, response.OK(http.StatusOK, "login successful", map[string]any{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"username":      user.Username,
		"role":          user.Role,
	}))
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
