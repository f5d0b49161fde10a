package refresh

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
	"github.com/magabrotheeeer/ragdocs-backend/internal/config"
	"github.com/magabrotheeeer/ragdocs-backend/internal/http/response"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newHandler(svc Service) *Handler {
	return New(newNoopLogger(), svc,
		config.AuthCookies{
			AccessCookieName:  "access_token",
			RefreshCookieName: "refresh_token",
			SameSite:          "lax",
		},
		config.JWTToken{AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour})
}

func TestRefreshHandler_TokenFromCookie(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Refresh", mock.Anything, "refresh-jwt").Return("new-access-jwt", nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "refresh-jwt"})
	rec := httptest.NewRecorder()

	newHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data := resp.Data.(map[string]any)
	assert.Equal(t, "new-access-jwt", data["access_token"])

	// Новый access токен обновляется и в cookie
	var accessCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "access_token" {
			accessCookie = c
		}
	}
	require.NotNil(t, accessCookie)
	assert.Equal(t, "new-access-jwt", accessCookie.Value)
	svc.AssertExpectations(t)
}

func TestRefreshHandler_TokenFromBody(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Refresh", mock.Anything, "refresh-jwt").Return("new-access-jwt", nil).Once()

	raw, err := json.Marshal(Request{RefreshToken: "refresh-jwt"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh-token", bytes.NewReader(raw))
	rec := httptest.NewRecorder()

	newHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestRefreshHandler_MissingToken(t *testing.T) {
	svc := new(ServiceMock)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh-token", nil)
	rec := httptest.NewRecorder()

	newHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	svc.AssertNotCalled(t, "Refresh")
}

func TestRefreshHandler_InvalidToken(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Refresh", mock.Anything, "expired-jwt").
		Return("", apperr.InvalidCredentials()).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refresh-token", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "expired-jwt"})
	rec := httptest.NewRecorder()

	newHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "invalid_credentials", resp.Error.Code)
	svc.AssertExpectations(t)
}
