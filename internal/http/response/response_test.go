package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
)

func TestFail_DomainError(t *testing.T) {
	status, resp := Fail(apperr.UserAlreadyExists("a@b.c"))

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "user with email a@b.c already exists", resp.Message)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "user_already_exists", resp.Error.Code)
	assert.NotEmpty(t, resp.TraceID)
	assert.NotEmpty(t, resp.Timestamp)
}

func TestFail_UnknownErrorDoesNotLeak(t *testing.T) {
	status, resp := Fail(errors.New("pq: connection refused to 10.0.0.5"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", resp.Message)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "internal_error", resp.Error.Code)
	assert.NotEmpty(t, resp.TraceID)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "connection refused")
}

func TestOK_OmitsEmptyFields(t *testing.T) {
	resp := OK(http.StatusOK, "done", nil)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.NotContains(t, decoded, "error")
	assert.NotContains(t, decoded, "data")
	assert.NotContains(t, decoded, "trace_id")
}

func TestValidationError(t *testing.T) {
	type form struct {
		Email    string `validate:"required,email"`
		Username string `validate:"required,min=3"`
	}

	err := validator.New().Struct(form{Email: "not-an-email", Username: "ab"})
	require.Error(t, err)

	status, resp := ValidationError(err.(validator.ValidationErrors))

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "Email")
	assert.Contains(t, resp.Error.Details, "Username")
}

func TestBadRequest(t *testing.T) {
	status, resp := BadRequest("invalid request body")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid request body", resp.Message)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "bad_request", resp.Error.Code)
}
