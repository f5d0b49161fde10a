// Package create реализует HTTP-обработчик регистрации загруженного документа.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
	"github.com/magabrotheeeer/ragdocs-backend/internal/lib/sl"
	"github.com/magabrotheeeer/ragdocs-backend/internal/models"
	"github.com/magabrotheeeer/ragdocs-backend/internal/services/document"
)

// Request — метаданные загруженного документа. Сам файл уже лежит
// в объектном хранилище, сюда приходит только ссылка.
type Request struct {
	Title    string `json:"title" validate:"required,max=255"`
	FileKey  string `json:"file_key" validate:"required"`
	FileURL  string `json:"file_url" validate:"omitempty,url"`
	MimeType string `json:"mime_type" validate:"required"`
	SizeMB   int    `json:"size_mb" validate:"required,gt=0"`
}

// Service описывает контракт сервиса документов.
type Service interface {
	Create(ctx context.Context, in document.CreateInput) (*models.Document, error)
}

// Handler обрабатывает запрос на регистрацию документа.
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

// ServeHTTP обрабатывает HTTP-запрос на регистрацию документа.
//
// @Summary Зарегистрировать документ
// @Description Сохраняет ссылку на загруженный документ и списывает квоту плана.
// @Tags Documents
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Метаданные документа"
// @Success 201 {object} response.Response "Документ зарегистрирован"
// @Failure 400 {object} response.Response "Некорректный JSON"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Failure 403 {object} response.Response "Исчерпана квота плана"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /documents [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.document.create"

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

	doc, err := h.service.Create(r.Context(), document.CreateInput{
		UserID:   userID,
		Title:    req.Title,
		FileKey:  req.FileKey,
		FileURL:  req.FileURL,
		MimeType: req.MimeType,
		SizeMB:   req.SizeMB,
	})
	if err != nil {
		status, resp := response.Fail(err)
		log.Error("failed to create document", sl.Err(err), slog.String("trace_id", resp.TraceID))
		render.Status(r, status)
		render.JSON(w, r, resp)
		return
	}
	log.Info("document registered", slog.String("document_id", doc.ID))

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OK(http.StatusCreated, "document registered successfully", map[string]any{
		"id":     doc.ID,
		"title":  doc.Title,
		"status": doc.Status,
	}))
}
