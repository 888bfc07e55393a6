package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/togramago/melodygen/internal/api"
	"github.com/togramago/melodygen/internal/config"
	"github.com/togramago/melodygen/internal/history"
	"github.com/togramago/melodygen/internal/logger"
	"github.com/togramago/melodygen/internal/metrics"
	"github.com/togramago/melodygen/internal/presets"
	"github.com/togramago/melodygen/internal/services"
)

const sentryFlushTimeout = 2 * time.Second

// releaseVersion is set via ldflags during build
var releaseVersion = "dev"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	logger.SetDebug(cfg.IsDebug())

	if initSentry(cfg) {
		defer sentry.Flush(sentryFlushTimeout)
	}

	set, err := presets.Load(cfg.PresetsPath)
	if err != nil {
		fatal("Failed to load presets", err)
	}

	var store history.Store
	if cfg.HistoryEnabled() {
		s, err := history.NewSQLiteStore(cfg.HistoryDB)
		if err != nil {
			fatal("Failed to open history database", err)
		}
		defer s.Close()
		store = s
		log.Printf("History enabled (%s)", cfg.HistoryDB)
	}

	cloudwatch, err := metrics.NewClient(context.Background(), cfg.Environment)
	if err != nil {
		log.Printf("Failed to initialize CloudWatch metrics: %v", err)
	}
	recorder := metrics.NewRecorder(cloudwatch, metrics.NewSentryMetrics())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	melodies := services.NewMelodyService(set, store, cfg.MaxBars, recorder)
	router := api.SetupRouter(cfg, melodies, recorder, releaseVersion)

	log.Printf("Starting server on port %s (max bars %d)", cfg.Port, cfg.MaxBars)
	if err := router.Run(":" + cfg.Port); err != nil {
		fatal("Failed to start server", err)
	}
}

// initSentry reports whether Sentry is live and needs flushing on exit.
func initSentry(cfg *config.Config) bool {
	if cfg.SentryDSN == "" {
		log.Println("Sentry not configured (SENTRY_DSN not set)")
		return false
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.Environment,
		Release:          "melodygen@" + releaseVersion,
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		Debug:            !cfg.IsProduction(),
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			if event.Request != nil {
				event.Request.Headers = filterSensitiveHeaders(event.Request.Headers)
			}
			return event
		},
	})
	if err != nil {
		log.Printf("Failed to initialize Sentry: %v", err)
		return false
	}
	log.Printf("Sentry initialized (environment: %s, release: %s)", cfg.Environment, releaseVersion)
	return true
}

func fatal(msg string, err error) {
	sentry.CaptureException(err)
	sentry.Flush(sentryFlushTimeout)
	log.Fatalf("%s: %v", msg, err)
}

var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"x-api-key":     true,
}

func filterSensitiveHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string, len(headers))
	for k, v := range headers {
		if sensitiveHeaders[strings.ToLower(k)] {
			v = "[REDACTED]"
		}
		filtered[k] = v
	}
	return filtered
}
