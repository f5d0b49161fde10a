// Package refresh реализует HTTP-обработчик обновления access токена.
package refresh

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/config"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/cookies"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
)

// Request — тело запроса с refresh токеном. Используется, только если
// токен не пришёл в cookie.
type Request struct {
	RefreshToken string `json:"refresh_token"`
}

// Service описывает контракт сервиса обновления токена.
type Service interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// Handler обрабатывает запрос на обновление access токена.
type Handler struct {
	log       *slog.Logger
	service   Service
	cookieCfg config.AuthCookies
	tokenCfg  config.JWTToken
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, cookieCfg config.AuthCookies, tokenCfg config.JWTToken) *Handler {
	return &Handler{log: log, service: service, cookieCfg: cookieCfg, tokenCfg: tokenCfg}
}

// ServeHTTP обрабатывает HTTP-запрос на обновление access токена.
//
// Refresh токен берётся из cookie, при его отсутствии — из тела запроса.
// Сам refresh токен не ротируется.
//
// @Summary Обновление access токена
// @Description Выпускает новый access токен по действующему refresh токену из cookie или тела запроса.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request false "Refresh токен, если не передан в cookie"
// @Success 200 {object} response.Response "Новый access токен"
// @Failure 401 {object} response.Response "Отсутствует или невалиден refresh токен"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /refresh-token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.refresh"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := ""
	if c, err := r.Cookie(h.cookieCfg.RefreshCookieName); err == nil {
		token = c.Value
	}
	if token == "" && r.Body != nil {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			token = req.RefreshToken
		}
	}
	if token == "" {
		log.Error("refresh token is missing")
		status, resp := response.Fail(apperr.Unauthorized("refresh token is missing"))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	accessToken, err := h.service.Refresh(r.Context(), token)
	if err != nil {
		status, resp := response.Fail(err)
		log.Error("failed to refresh token", sl.Err(err), slog.String("trace_id", resp.TraceID))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}
	log.Info("access token refreshed")

	cookies.SetAccess(w, h.cookieCfg, accessToken, h.tokenCfg.AccessTTL)

	render.JSON(w, r, response.OK(http.StatusOK, "token refreshed successfully", map[string]any{
		"access_token": accessToken,
	}))
}
