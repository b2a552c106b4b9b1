package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_SignAndParse(t *testing.T) {
	m := NewTokenManager("test-secret", "courtside", 15*time.Minute)

	token, err := m.Sign("user-1", "fan@example.com", "admin")
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "fan@example.com", claims.Email)
	assert.True(t, claims.IsAdmin())
	assert.Equal(t, "courtside", claims.Issuer)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("test-secret", "courtside", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := m.Sign("user-1", "fan@example.com", "user")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", "", time.Minute).Sign("user-1", "a@b.c", "user")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", "", time.Minute).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", "", time.Minute).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Garbage(t *testing.T) {
	_, err := NewTokenManager("secret", "", time.Minute).Parse("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewRefreshToken(t *testing.T) {
	a, err := NewRefreshToken()
	require.NoError(t, err)
	b, err := NewRefreshToken()
	require.NoError(t, err)

	assert.Len(t, a, 44)
	assert.NotEqual(t, a, b)
}
