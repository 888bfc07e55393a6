package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/togramago/melodygen/internal/services"
)

const healthPingTimeout = 2 * time.Second

type HealthHandler struct {
	melodies *services.MelodyService
}

func NewHealthHandler(melodies *services.MelodyService) *HealthHandler {
	return &HealthHandler{melodies: melodies}
}

// HealthCheck returns the health status of the API. A broken history store
// degrades the service but generation keeps working.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	status := "healthy"
	historyStatus := "enabled"
	if err := h.melodies.Ping(ctx); err != nil {
		if errors.Is(err, services.ErrHistoryDisabled) {
			historyStatus = "disabled"
		} else {
			status = "degraded"
			historyStatus = "unavailable"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": status,
		"history": gin.H{
			"status": historyStatus,
		},
	})
}
