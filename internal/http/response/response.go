// Package response содержит единый конверт JSON‑ответов сервиса и центральный
// транслятор ошибок. Все три источника отказов — доменные ошибки, ошибки
// валидации входных данных и неклассифицированные ошибки — проходят через
// один и тот же конверт. Пустые поля не сериализуются.
package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
)

// ErrorDetail — блок ошибки внутри конверта: машинный код и детали.
type ErrorDetail struct {
	Code    string         `json:"code" example:"validation_error"`
	Details map[string]any `json:"details,omitempty"`
}

// Response описывает стандартную структуру JSON‑ответа сервера.
// TraceID возвращается клиенту и пишется в лог сервера, по нему
// сопоставляются жалоба пользователя и запись в журнале.
type Response struct {
	StatusCode int          `json:"status_code"`
	Message    string       `json:"message,omitempty"`
	Data       any          `json:"data,omitempty"`
	Error      *ErrorDetail `json:"error,omitempty"`
	TraceID    string       `json:"trace_id,omitempty"`
	Timestamp  string       `json:"timestamp,omitempty"`
}

// OK возвращает успешный Response с сообщением и данными.
func OK(statusCode int, message string, data any) Response {
	return Response{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

// Fail транслирует произвольную ошибку в HTTP‑статус и конверт ответа.
//
// Доменные ошибки (apperr.Error) отображаются в свой статус и код.
// Всё остальное становится 500 internal_error: клиент получает только
// trace_id, подробности не утекают — их обязан записать в лог вызывающий,
// используя Response.TraceID.
func Fail(err error) (int, Response) {
	traceID := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)

	if appErr, ok := apperr.From(err); ok {
		status := appErr.Kind.HTTPStatus()
		return status, Response{
			StatusCode: status,
			Message:    appErr.Message,
			Error: &ErrorDetail{
				Code:    appErr.Code,
				Details: appErr.Details,
			},
			TraceID:   traceID,
			Timestamp: now,
		}
	}

	return http.StatusInternalServerError, Response{
		StatusCode: http.StatusInternalServerError,
		Message:    "internal server error",
		Error:      &ErrorDetail{Code: "internal_error"},
		TraceID:    traceID,
		Timestamp:  now,
	}
}

// BadRequest возвращает 400 с сообщением, используется для нечитаемого тела запроса.
func BadRequest(msg string) (int, Response) {
	return http.StatusBadRequest, Response{
		StatusCode: http.StatusBadRequest,
		Message:    msg,
		Error:      &ErrorDetail{Code: "bad_request"},
		TraceID:    uuid.NewString(),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
}

// ValidationError формирует конверт 422 validation_error на основе ошибок
// валидатора. Детали — отображение имени поля в сообщение о нарушении.
func ValidationError(errs validator.ValidationErrors) (int, Response) {
	details := make(map[string]any, len(errs))

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			details[err.Field()] = fmt.Sprintf("field %s is a required field", err.Field())
		case "email":
			details[err.Field()] = fmt.Sprintf("field %s must be a valid email address", err.Field())
		case "min":
			details[err.Field()] = fmt.Sprintf("field %s is shorter than the allowed minimum", err.Field())
		case "max":
			details[err.Field()] = fmt.Sprintf("field %s is longer than the allowed maximum", err.Field())
		case "alphanum":
			details[err.Field()] = fmt.Sprintf("field %s can contain only numbers and letters", err.Field())
		case "oneof":
			details[err.Field()] = fmt.Sprintf("field %s has a value outside the allowed set", err.Field())
		default:
			details[err.Field()] = fmt.Sprintf("field %s is not valid", err.Field())
		}
	}
	return http.StatusUnprocessableEntity, Response{
		StatusCode: http.StatusUnprocessableEntity,
		Message:    "invalid request data",
		Error: &ErrorDetail{
			Code:    "validation_error",
			Details: details,
		},
		TraceID:   uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
