// Package list реализует HTTP-обработчик каталога тарифных планов.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
)

// Item — представление плана в ответе.
type Item struct {
	Name         string  `json:"name"`
	Tier         string  `json:"tier"`
	PlanType     string  `json:"plan_type"`
	MaxDocuments int     `json:"max_documents"`
	MaxStorageMB int     `json:"max_storage_mb"`
	MaxQueries   int     `json:"max_queries"`
	MaxMembers   *int    `json:"max_members,omitempty"`
	PriceMonthly float64 `json:"price_monthly"`
	Description  string  `json:"description,omitempty"`
}

// Service описывает контракт сервиса каталога планов.
type Service interface {
	List(ctx context.Context) ([]models.Plan, error)
}

// Handler обрабатывает запрос на каталог планов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP обрабатывает HTTP-запрос на каталог тарифных планов.
//
// Маршрут открытый, авторизация не требуется.
//
// @Summary Каталог тарифных планов
// @Description Возвращает все доступные планы с лимитами и ценами.
// @Tags Plans
// @Produce  json
// @Success 200 {object} response.Response "Каталог планов"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans, err := h.service.List(r.Context())
	if err != nil {
		status, resp := response.Fail(err)
		log.Error("failed to list plans", sl.Err(err), slog.String("trace_id", resp.TraceID))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}

	items := make([]Item, 0, len(plans))
	for _, p := range plans {
		items = append(items, Item{
			Name:         p.Name,
			Tier:         p.Tier,
			PlanType:     p.PlanType,
			MaxDocuments: p.MaxDocuments,
			MaxStorageMB: p.MaxStorageMB,
			MaxQueries:   p.MaxQueries,
			MaxMembers:   p.MaxMembers,
			PriceMonthly: p.PriceMonthly,
			Description:  p.Description,
		})
	}

	render.JSON(w, r, response.OK(http.StatusOK, "plans retrieved successfully", map[string]any{
		"items": items,
		"count": len(items),
	}))
}
