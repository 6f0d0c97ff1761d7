package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.False(t, cfg.Migrate)
	assert.Equal(t, "127.0.0.1:6379", cfg.RedisAddr)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTTL)
	assert.Equal(t, 100, cfg.RateRPS)
	assert.Equal(t, 4, cfg.WorkerConcurrency)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("APP_MIGRATE", "true")
	t.Setenv("JWT_ACCESS_TTL", "5m")
	t.Setenv("WORKER_CONCURRENCY", "16")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.AppEnv)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.True(t, cfg.Migrate)
	assert.Equal(t, 5*time.Minute, cfg.JWTAccessTTL)
	assert.Equal(t, 16, cfg.WorkerConcurrency)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "soon")
	_, err := Load()
	require.Error(t, err)
}
