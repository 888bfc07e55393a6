package config

import (
	"os"
	"strconv"
	"strings"
)

const defaultVexFlowURL = "https://cdn.jsdelivr.net/npm/vexflow@4.2.2/build/cjs/vexflow.js"

// Config holds the application configuration.
// History is optional: an empty HistoryDB disables the store.
type Config struct {
	// Environment
	Environment string
	Port        string
	LogLevel    string

	// Observability
	SentryDSN string // Sentry DSN for error tracking

	// Storage
	HistoryDB   string // sqlite file for generated melodies
	PresetsPath string // YAML presets overriding the embedded defaults

	// Limits
	MaxBars int

	// Browser
	CORSOrigins []string
	VexFlowURL  string
}

func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8080"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		SentryDSN:   getEnv("SENTRY_DSN", ""),
		HistoryDB:   getEnv("HISTORY_DB", ""),
		PresetsPath: getEnv("PRESETS_PATH", ""),
		MaxBars:     getEnvInt("MAX_BARS", 64),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		VexFlowURL:  getEnv("VEXFLOW_URL", defaultVexFlowURL),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction reports whether metrics shipping and release mode apply.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDebug reports whether generator events are logged.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// HistoryEnabled reports whether generated melodies are persisted.
func (c *Config) HistoryEnabled() bool {
	return c.HistoryDB != ""
}
