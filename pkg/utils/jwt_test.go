package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	j := NewJWTUtil("test-secret", 24)

	token, err := j.GenerateToken(42, "09121234567", true)
	require.NoError(t, err)

	claims, err := j.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "09121234567", claims.Mobile)
	assert.True(t, claims.IsStaff)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := NewJWTUtil("secret-a", 24).GenerateToken(1, "09120000000", false)
	require.NoError(t, err)

	_, err = NewJWTUtil("secret-b", 24).ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := NewJWTUtil("secret", -1).GenerateToken(1, "09120000000", false)
	require.NoError(t, err)

	_, err = NewJWTUtil("secret", -1).ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}
