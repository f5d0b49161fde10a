package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{name: "already exists", err: UserAlreadyExists("a@b.c"), want: http.StatusConflict},
		{name: "username taken", err: UsernameTaken("user1"), want: http.StatusConflict},
		{name: "slug taken", err: SlugTaken("acme"), want: http.StatusConflict},
		{name: "user not found", err: UserNotFound(), want: http.StatusNotFound},
		{name: "plan not found", err: PlanNotFound("GOLD"), want: http.StatusNotFound},
		{name: "organization not found", err: OrganizationNotFound("acme"), want: http.StatusNotFound},
		{name: "invalid credentials", err: InvalidCredentials(), want: http.StatusUnauthorized},
		{name: "unauthorized", err: Unauthorized(""), want: http.StatusUnauthorized},
		{name: "weak password", err: WeakPassword(nil), want: http.StatusBadRequest},
		{name: "quota exceeded", err: QuotaExceeded("documents", 10), want: http.StatusForbidden},
		{name: "rate limited", err: RateLimited(), want: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Kind.HTTPStatus())
		})
	}
}

func TestFrom(t *testing.T) {
	appErr, ok := From(InvalidCredentials())
	require.True(t, ok)
	assert.Equal(t, "invalid_credentials", appErr.Code)

	// Обёрнутая ошибка всё ещё распознаётся
	wrapped := fmt.Errorf("auth.Login: %w", UserNotFound())
	appErr, ok = From(wrapped)
	require.True(t, ok)
	assert.Equal(t, "user_not_found", appErr.Code)

	_, ok = From(errors.New("plain error"))
	assert.False(t, ok)
}

func TestUnauthorized_DefaultMessage(t *testing.T) {
	assert.Equal(t, "you do not have permission to perform this action", Unauthorized("").Message)
	assert.Equal(t, "custom", Unauthorized("custom").Message)
}

func TestQuotaExceeded_Details(t *testing.T) {
	err := QuotaExceeded("queries", 100)
	assert.Equal(t, "queries", err.Details["resource"])
	assert.Equal(t, 100, err.Details["limit"])
}
