package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIdentity() Identity {
	return Identity{
		Email:    "user@example.com",
		Username: "user1",
		Role:     "user",
		UserID:   "9e2c3a44-0000-0000-0000-000000000001",
	}
}

func TestMaker_AccessTokenRoundTrip(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour, 24*time.Hour)

	token, err := maker.GenerateAccessToken(testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.Equal(t, "user1", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "9e2c3a44-0000-0000-0000-000000000001", claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestMaker_RefreshTokenType(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour, 24*time.Hour)

	token, err := maker.GenerateRefreshToken(testIdentity())
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestMaker_ParseToken_WrongSecret(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour, 24*time.Hour)
	other := NewJWTMaker("other-secret", time.Hour, 24*time.Hour)

	token, err := maker.GenerateAccessToken(testIdentity())
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestMaker_ParseToken_Expired(t *testing.T) {
	maker := NewJWTMaker("test-secret", -time.Minute, 24*time.Hour)

	token, err := maker.GenerateAccessToken(testIdentity())
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestMaker_ParseToken_Garbage(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour, 24*time.Hour)

	_, err := maker.ParseToken("not-a-token")
	assert.Error(t, err)
}
