// Package apperr определяет закрытый набор доменных ошибок сервиса.
// Каждая ошибка несёт вид (Kind), машинный код и сообщение для клиента.
// Трансляцией в HTTP‑статусы занимается пакет http/response, здесь только
// сама таксономия.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind — вид доменной ошибки. Набор закрыт, обработчик на границе
// сопоставляет его с HTTP‑статусом исчерпывающе.
type Kind int

const (
	// KindAlreadyExists — нарушение уникальности (email, username, slug, членство).
	KindAlreadyExists Kind = iota + 1
	// KindNotFound — запрошенная сущность отсутствует.
	KindNotFound
	// KindInvalidCredentials — неверные учётные данные либо неактивная учётная запись.
	KindInvalidCredentials
	// KindUnauthorized — нет прав на операцию или отсутствует токен.
	KindUnauthorized
	// KindWeakPassword — пароль не проходит проверку стойкости.
	KindWeakPassword
	// KindQuotaExceeded — исчерпана квота тарифного плана.
	KindQuotaExceeded
	// KindRateLimited — превышена допустимая частота запросов.
	KindRateLimited
)

// HTTPStatus возвращает HTTP‑статус, соответствующий виду ошибки.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindAlreadyExists:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidCredentials, KindUnauthorized:
		return http.StatusUnauthorized
	case KindWeakPassword:
		return http.StatusBadRequest
	case KindQuotaExceeded:
		return http.StatusForbidden
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error — доменная ошибка с видом, машинным кодом и деталями.
type Error struct {
	Kind    Kind
	Code    string         // Машинный код, например "user_already_exists"
	Message string         // Человекочитаемое сообщение для клиента
	Details map[string]any // Структурированные детали, опционально
}

func (e *Error) Error() string {
	return e.Message
}

// From извлекает *Error из цепочки обёрток. Второй результат false,
// если в цепочке нет доменной ошибки.
func From(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// UserAlreadyExists — пользователь с таким email уже зарегистрирован.
func UserAlreadyExists(email string) *Error {
	return &Error{
		Kind:    KindAlreadyExists,
		Code:    "user_already_exists",
		Message: fmt.Sprintf("user with email %s already exists", email),
	}
}

// UsernameTaken — имя пользователя уже занято.
func UsernameTaken(username string) *Error {
	return &Error{
		Kind:    KindAlreadyExists,
		Code:    "user_already_exists",
		Message: fmt.Sprintf("username %s is already taken", username),
	}
}

// SlugTaken — организация с таким slug уже существует.
func SlugTaken(slug string) *Error {
	return &Error{
		Kind:    KindAlreadyExists,
		Code:    "organization_already_exists",
		Message: fmt.Sprintf("organization with slug %s already exists", slug),
	}
}

// MemberAlreadyExists — пользователь уже состоит в организации.
func MemberAlreadyExists(username string) *Error {
	return &Error{
		Kind:    KindAlreadyExists,
		Code:    "member_already_exists",
		Message: fmt.Sprintf("user %s is already a member of this organization", username),
	}
}

// UserNotFound — пользователь не найден.
func UserNotFound() *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    "user_not_found",
		Message: "user not found",
	}
}

// PlanNotFound — план с указанным tier отсутствует. Подстановки дефолтного
// плана не происходит, это жёсткая ошибка.
func PlanNotFound(tier string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    "plan_not_found",
		Message: fmt.Sprintf("plan tier '%s' not found", tier),
	}
}

// OrganizationNotFound — организация не найдена.
func OrganizationNotFound(slug string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    "organization_not_found",
		Message: fmt.Sprintf("organization '%s' not found", slug),
	}
}

// InvalidCredentials — неверный email или пароль. Формулировка одна и та же
// для несуществующего, неактивного пользователя и неверного пароля, чтобы
// не раскрывать состояние учётной записи.
func InvalidCredentials() *Error {
	return &Error{
		Kind:    KindInvalidCredentials,
		Code:    "invalid_credentials",
		Message: "invalid email or password",
	}
}

// WeakPassword — пароль слишком слабый, детали содержат нарушенные правила.
func WeakPassword(details map[string]any) *Error {
	return &Error{
		Kind:    KindWeakPassword,
		Code:    "weak_password",
		Message: "the provided password is too weak",
		Details: details,
	}
}

// Unauthorized — нет прав на выполнение действия.
func Unauthorized(message string) *Error {
	if message == "" {
		message = "you do not have permission to perform this action"
	}
	return &Error{
		Kind:    KindUnauthorized,
		Code:    "unauthorized_access",
		Message: message,
	}
}

// RateLimited — превышена допустимая частота запросов.
func RateLimited() *Error {
	return &Error{
		Kind:    KindRateLimited,
		Code:    "rate_limited",
		Message: "too many requests, slow down",
	}
}

// QuotaExceeded — исчерпан лимит тарифного плана по указанному ресурсу.
func QuotaExceeded(resource string, limit int) *Error {
	return &Error{
		Kind:    KindQuotaExceeded,
		Code:    "quota_exceeded",
		Message: fmt.Sprintf("plan limit for %s exceeded", resource),
		Details: map[string]any{"resource": resource, "limit": limit},
	}
}
