package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	svc, err := NewTokenService("test-secret", "meumuseu", time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	t.Run("rejects an empty secret", func(t *testing.T) {
		_, err := NewTokenService("", "meumuseu", time.Hour)
		assert.Error(t, err)
	})

	t.Run("defaults a non-positive ttl", func(t *testing.T) {
		svc, err := NewTokenService("test-secret", "meumuseu", 0)
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, svc.ttl)
	})
}

func TestTokenService_MintValidate(t *testing.T) {
	svc := newTestTokenService(t)

	t.Run("round-trips the session claims", func(t *testing.T) {
		token, err := svc.Mint("abc123def", "ana@example.com", "Ana")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "abc123def", claims.UserID)
		assert.Equal(t, "ana@example.com", claims.Email)
		assert.Equal(t, "Ana", claims.Name)
		assert.Equal(t, "meumuseu", claims.Issuer)
	})

	t.Run("accepts a bearer-prefixed token", func(t *testing.T) {
		token, err := svc.Mint("abc123def", "ana@example.com", "Ana")
		require.NoError(t, err)

		claims, err := svc.Validate("Bearer " + token)
		require.NoError(t, err)
		assert.Equal(t, "abc123def", claims.UserID)
	})

	t.Run("rejects an empty token", func(t *testing.T) {
		_, err := svc.Validate("")
		assert.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := svc.Validate("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		other, err := NewTokenService("other-secret", "meumuseu", time.Hour)
		require.NoError(t, err)

		token, err := other.Mint("abc123def", "ana@example.com", "Ana")
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidSignature)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		now := time.Now().Add(-2 * time.Hour)
		claims := &Claims{
			UserID: "abc123def",
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "meumuseu",
				Subject:   "abc123def",
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
				IssuedAt:  jwt.NewNumericDate(now),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects a wrong issuer", func(t *testing.T) {
		other, err := NewTokenService("test-secret", "someone-else", time.Hour)
		require.NoError(t, err)

		token, err := other.Mint("abc123def", "ana@example.com", "Ana")
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})

	t.Run("rejects a token without a subject", func(t *testing.T) {
		claims := &Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "meumuseu",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, ErrInvalidClaims)
	})
}

func TestUserContext(t *testing.T) {
	t.Run("round-trips through a context", func(t *testing.T) {
		user := &UserContext{UserID: "abc123def", Email: "ana@example.com", Name: "Ana"}
		ctx := SetUserInContext(context.Background(), user)

		got, err := GetUserFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("missing user is an error", func(t *testing.T) {
		_, err := GetUserFromContext(context.Background())
		assert.Error(t, err)
	})
}
