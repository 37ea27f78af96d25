package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 300*time.Second, cfg.CacheTTL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("FINCORE_PORT", "9000")
	t.Setenv("FINCORE_LOG_LEVEL", "debug")
	t.Setenv("FINCORE_DEV_MODE", "true")
	t.Setenv("FINCORE_REDIS_ADDR", "localhost:6379")
	t.Setenv("FINCORE_CACHE_TTL_SECONDS", "60")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("FINCORE_PORT", "not-a-number")
	t.Setenv("FINCORE_DEV_MODE", "maybe")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Port)
	assert.False(t, cfg.DevMode)
}
