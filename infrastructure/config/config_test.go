package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.ServerAddress)
		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, "sqlite", cfg.StorageDriver)
		assert.Equal(t, "meumuseu.db", cfg.SQLitePath)
		assert.Equal(t, "meumuseu", cfg.JWTIssuer)
		assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
		assert.Equal(t, 800*time.Millisecond, cfg.SimulatedLatency)
		assert.Equal(t, 30, cfg.AuthRateLimit)
		assert.True(t, cfg.EnableMetrics)
		assert.True(t, cfg.IsDevelopment())
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("SIMULATED_LATENCY", "250ms")
		t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "memory", cfg.StorageDriver)
		assert.Equal(t, 250*time.Millisecond, cfg.SimulatedLatency)
		assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)
	})

	t.Run("auth rate limit reads from the environment", func(t *testing.T) {
		t.Setenv("AUTH_RATE_LIMIT", "5")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.AuthRateLimit)
	})

	t.Run("a malformed auth rate limit keeps the default", func(t *testing.T) {
		t.Setenv("AUTH_RATE_LIMIT", "many")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 30, cfg.AuthRateLimit)
	})

	t.Run("bare integer latency reads as milliseconds", func(t *testing.T) {
		t.Setenv("SIMULATED_LATENCY", "500")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 500*time.Millisecond, cfg.SimulatedLatency)
	})

	t.Run("rejects an unknown storage driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("production requires a jwt secret", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("production rejects in-memory sqlite", func(t *testing.T) {
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("JWT_SECRET", "prod-secret")
		t.Setenv("SQLITE_PATH", ":memory:")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
