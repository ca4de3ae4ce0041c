package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_AccessToken(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken(42, "admin@rentdesk.test")
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "admin@rentdesk.test", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestTokenManager_RefreshToken(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)

	token, err := manager.GenerateRefreshToken(42, "admin@rentdesk.test")
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)
	other := NewTokenManager("other-secret", time.Hour, 7*24*time.Hour)

	token, err := manager.GenerateAccessToken(42, "admin@rentdesk.test")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute, 7*24*time.Hour)
	// Negative TTL falls back to the default, so force expiry with a tiny TTL.
	short := &tokenManager{secret: []byte("test-secret"), accessTTL: -time.Minute, refreshTTL: time.Hour}

	token, err := short.GenerateAccessToken(42, "admin@rentdesk.test")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_RejectsForeignIssuer(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)

	claims := UserClaims{
		UserID: 42,
		Type:   TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    "someone-else",
			Audience:  jwt.ClaimStrings{accessAudience},
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsMismatchedAudience(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)

	// Access type with the refresh audience: both consistency directions fail.
	claims := UserClaims{
		UserID: 42,
		Type:   TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{refreshAudience},
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour, 7*24*time.Hour)

	_, err := manager.ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
