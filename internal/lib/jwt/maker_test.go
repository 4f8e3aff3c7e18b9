package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParse(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("alice", "user")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestMaker_ParseWithWrongSecret(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken("alice", "user")
	require.NoError(t, err)

	other := NewJWTMaker("other-secret", time.Hour)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestMaker_ParseExpiredToken(t *testing.T) {
	maker := NewJWTMaker("test-secret", -time.Minute)
	token, err := maker.GenerateToken("alice", "admin")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}

func TestMaker_ParseGarbage(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)

	_, err := maker.ParseToken("not-a-token")
	assert.Error(t, err)
}
