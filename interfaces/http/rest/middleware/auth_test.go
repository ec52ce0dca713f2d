package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meumuseu/pkg/auth"
)

func TestAuthenticate(t *testing.T) {
	tokens, err := auth.NewTokenService("test-secret", "meumuseu", time.Hour)
	require.NoError(t, err)

	var seen *auth.UserContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Authenticate(tokens, zap.NewNop())(next)

	t.Run("passes a valid token and exposes the user", func(t *testing.T) {
		seen = nil
		token, err := tokens.Mint("abc123def", "ana@example.com", "Ana")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "abc123def", seen.UserID)
		assert.Equal(t, "ana@example.com", seen.Email)
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		seen = nil
		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Nil(t, seen)
	})

	t.Run("rejects a token from another secret", func(t *testing.T) {
		other, err := auth.NewTokenService("other-secret", "meumuseu", time.Hour)
		require.NoError(t, err)
		token, err := other.Mint("abc123def", "ana@example.com", "Ana")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("accepts a raw token without the bearer scheme", func(t *testing.T) {
		token, err := tokens.Mint("abc123def", "ana@example.com", "Ana")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/rooms", nil)
		req.Header.Set("Authorization", token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RateLimit(auth.NewIPRateLimiter(2))(next)

	request := func(ip string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.Header.Set("X-Real-IP", ip)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, request("203.0.113.1"))
	assert.Equal(t, http.StatusOK, request("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, request("203.0.113.1"))
	assert.Equal(t, http.StatusOK, request("203.0.113.2"))
}
