package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	JwtSecret = []byte("test-secret")

	token, err := GenerateAccessToken("64f000000000000000000001", "pat@example.com", "patient")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "64f000000000000000000001", claims.Subject)
	require.Equal(t, "pat@example.com", claims.Email)
	require.Equal(t, "patient", claims.Role)
	require.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestRefreshTokenType(t *testing.T) {
	JwtSecret = []byte("test-secret")

	token, err := GenerateRefreshToken("64f000000000000000000002", "nut@example.com", "nutritionist")
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, TokenTypeRefresh, claims.TokenType)
	require.Equal(t, "nutritionist", claims.Role)
}

func TestExpiredTokenRejected(t *testing.T) {
	JwtSecret = []byte("test-secret")

	token, err := generateToken("64f000000000000000000003", "x@example.com", "patient", TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token)
	require.Error(t, err)
}

func TestTamperedTokenRejected(t *testing.T) {
	JwtSecret = []byte("test-secret")
	token, err := GenerateAccessToken("64f000000000000000000004", "x@example.com", "patient")
	require.NoError(t, err)

	JwtSecret = []byte("other-secret")
	_, err = ParseToken(token)
	require.Error(t, err)
}

func TestRefreshTTLOutlivesAccessTTL(t *testing.T) {
	require.Greater(t, RefreshTokenTTL, AccessTokenTTL)
}
