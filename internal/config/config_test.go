package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"APP_NAME", "SERVER_HOST", "SERVER_PORT", "DATABASE_URL", "DB_USER", "RATE_LIMIT_BACKEND", "ANALYTICS_SOURCE", "BUFFER_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "peopledash", cfg.AppName)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, RateLimitInterval, cfg.RateLimit.Backend)
	assert.Equal(t, time.Second, cfg.RateLimit.Interval)
	assert.Equal(t, AnalyticsRemote, cfg.Analytics.Source)
	assert.False(t, cfg.Buffer.Enabled)
	assert.Equal(t, 1000, cfg.Logger.RingSize)
	assert.Equal(t, GeneratorConfig{MinCount: 10, MaxCount: 1000, DefaultCount: 100}, cfg.Generator)
	assert.Contains(t, cfg.Database.URL, "postgres://peopledash:")
}

func TestLoad_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RATE_LIMIT_BACKEND", "Redis")
	t.Setenv("RATE_LIMIT_INTERVAL", "250ms")
	t.Setenv("ANALYTICS_SOURCE", "local")
	t.Setenv("BUFFER_ENABLED", "true")
	t.Setenv("SESSION_TTL", "120")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Address())
	assert.Equal(t, RateLimitRedis, cfg.RateLimit.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.RateLimit.Interval)
	assert.Equal(t, AnalyticsLocal, cfg.Analytics.Source)
	assert.True(t, cfg.Buffer.Enabled)
	assert.Equal(t, 2*time.Minute, cfg.Session.TTL)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.Database.URL)
}

func TestLoad_Rejects(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown limiter":   {"RATE_LIMIT_BACKEND": "token-bucket"},
		"unknown source":    {"ANALYTICS_SOURCE": "graphql"},
		"inverted bounds":   {"GENERATOR_MIN_COUNT": "500", "GENERATOR_MAX_COUNT": "100"},
		"default too large": {"GENERATOR_DEFAULT_COUNT": "5000"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
