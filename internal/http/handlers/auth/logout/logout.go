// Package logout реализует HTTP-обработчик завершения сессии.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ragdocs-backend/internal/config"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/cookies"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
)

// Handler сбрасывает аутентификационные cookie.
type Handler struct {
	log       *slog.Logger
	cookieCfg config.AuthCookies
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, cookieCfg config.AuthCookies) *Handler {
	return &Handler{log: log, cookieCfg: cookieCfg}
}

// ServeHTTP обрабатывает HTTP-запрос на выход из системы.
//
// Состояние на сервере не хранится, выход сводится к сбросу cookie.
// Операция идемпотентна и не требует валидного токена.
//
// @Summary Выход из системы
// @Description Сбрасывает аутентификационные cookie.
// @Tags Auth
// @Produce  json
// @Success 200 {object} response.Response "Сессия завершена"
// @Router /logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cookies.Clear(w, h.cookieCfg)
	log.Info("session cookies cleared")

	render.JSON(w, r, response.OK(http.StatusOK, "logged out successfully", nil))
}
