package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/ragdocs-backend/internal/apperr"
)

func TestGetHashAndCompareHash(t *testing.T) {
	hash, err := GetHash("correct-horse-1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "correct-horse-1", hash)

	assert.NoError(t, CompareHash(hash, "correct-horse-1"))
	assert.Error(t, CompareHash(hash, "wrong-password-1"))
}

func TestValidateStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "valid password", password: "password123", wantErr: false},
		{name: "too short", password: "pass1", wantErr: true},
		{name: "no digits", password: "passwordonly", wantErr: true},
		{name: "no letters", password: "1234567890", wantErr: true},
		{name: "empty", password: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStrength(tt.password)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)

			appErr, ok := apperr.From(err)
			require.True(t, ok)
			assert.Equal(t, apperr.KindWeakPassword, appErr.Kind)
			assert.Equal(t, "weak_password", appErr.Code)
			assert.Contains(t, appErr.Details, "password")
		})
	}
}
