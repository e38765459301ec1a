package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken(1, "admin@szerviz.hu", "ADMIN", "Kovács Béla")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, 1, claims.UserID)
	assert.Equal(t, "admin@szerviz.hu", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "Kovács Béla", claims.Name)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_WrongSecret(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)
	other := NewJWTMaker("other-secret", time.Hour)

	token, err := maker.GenerateToken(1, "admin@szerviz.hu", "ADMIN", "Kovács Béla")
	require.NoError(t, err)

	claims, err := other.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseToken_Expired(t *testing.T) {
	maker := NewJWTMaker("test-secret", -time.Minute)

	token, err := maker.GenerateToken(1, "admin@szerviz.hu", "ADMIN", "Kovács Béla")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestParseToken_Garbage(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Hour)

	claims, err := maker.ParseToken("not.a.token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}
