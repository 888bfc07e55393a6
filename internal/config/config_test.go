package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENVIRONMENT", "PORT", "LOG_LEVEL", "SENTRY_DSN", "HISTORY_DB", "PRESETS_PATH", "MAX_BARS", "CORS_ORIGINS", "VEXFLOW_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 64, cfg.MaxBars)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, defaultVexFlowURL, cfg.VexFlowURL)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.IsDebug())
	assert.False(t, cfg.HistoryEnabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("HISTORY_DB", "/tmp/melodies.db")
	t.Setenv("MAX_BARS", "16")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.IsDebug())
	assert.True(t, cfg.HistoryEnabled())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 16, cfg.MaxBars)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadIgnoresBadMaxBars(t *testing.T) {
	for _, v := range []string{"abc", "0", "-3"} {
		t.Setenv("MAX_BARS", v)
		assert.Equal(t, 64, Load().MaxBars, v)
	}
}
