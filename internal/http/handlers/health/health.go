// Package health реализует HTTP-обработчик проверки работоспособности.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
)

// Pinger описывает проверку соединения с хранилищем.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler обрабатывает запрос проверки работоспособности.
type Handler struct {
	log *slog.Logger
	db  Pinger
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, db Pinger) *Handler {
	return &Handler{log: log, db: db}
}

// ServeHTTP отвечает 200, если база данных доступна, и 503 иначе.
//
// @Summary Проверка работоспособности
// @Tags Service
// @Produce  json
// @Success 200 {object} response.Response "Сервис работает"
// @Failure 503 {object} response.Response "База данных недоступна"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.log.Error("database ping failed", slog.String("op", op), sl.Err(err))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, response.OK(http.StatusServiceUnavailable, "database unavailable", nil))
		return
	}

	render.JSON(w, r, response.OK(http.StatusOK, "ok", nil))
}
