package api

import (
	"github.com/gin-gonic/gin"

	"github.com/togramago/melodygen/internal/api/handlers"
	apimiddleware "github.com/togramago/melodygen/internal/api/middleware"
	"github.com/togramago/melodygen/internal/config"
	"github.com/togramago/melodygen/internal/metrics"
	"github.com/togramago/melodygen/internal/services"
	webhandlers "github.com/togramago/melodygen/internal/web/handlers"
	"github.com/togramago/melodygen/internal/web/templates"
)

func SetupRouter(cfg *config.Config, melodies *services.MelodyService, recorder *metrics.Recorder, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(recorder))

	router.Use(apimiddleware.CORS(cfg.CORSOrigins))

	// Health check
	healthHandler := handlers.NewHealthHandler(melodies)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version, melodies, recorder)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Web pages
	webHandler := webhandlers.NewWebHandler(melodies, cfg.MaxBars, cfg.VexFlowURL)
	router.GET("/", webHandler.Home)
	router.GET("/melodies/:id", webHandler.Melody)
	router.GET(templates.NotationScriptPath, webHandler.NotationScript)

	v1 := router.Group("/api/v1")
	{
		catalogueHandler := handlers.NewCatalogueHandler(cfg.MaxBars, melodies)
		v1.GET("/catalogue", catalogueHandler.GetCatalogue)
		v1.GET("/presets", catalogueHandler.ListPresets)

		melodyHandler := handlers.NewMelodyHandler(melodies)
		v1.POST("/melodies", melodyHandler.Generate)
		v1.GET("/melodies", melodyHandler.List)
		v1.GET("/melodies/:id", melodyHandler.Get)
		v1.GET("/melodies/:id/midi", melodyHandler.MIDI)
	}

	return router
}
