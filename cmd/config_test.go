package main

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(envOf(nil))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.DevSeed, "memory backend seeds by default")
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.AuthRequired)
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := loadConfig(envOf(map[string]string{
		"ADDR":                 ":9090",
		"DATABASE_URL":         "postgres://localhost/cinerator",
		"PUBLIC_BASE_URL":      "https://api.example.com/",
		"JWT_TTL":              "90m",
		"AUTH_REQUIRED":        "yes",
		"CORS_ALLOWED_ORIGINS": "https://a.example.com, ,https://b.example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.False(t, cfg.DevSeed, "postgres does not seed unless asked")
	assert.Equal(t, "https://api.example.com", cfg.PublicBaseURL)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.AuthRequired)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)

	cfg, err = loadConfig(envOf(map[string]string{"DATABASE_URL": "postgres://x", "DEV_SEED": "true"}))
	require.NoError(t, err)
	assert.True(t, cfg.DevSeed)
}

func TestLoadConfig_BadTTL(t *testing.T) {
	_, err := loadConfig(envOf(map[string]string{"JWT_TTL": "soon"}))
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLogLevel("err"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel(""))
}
