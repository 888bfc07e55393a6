package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/togramago/melodygen/internal/history"
	"github.com/togramago/melodygen/internal/logger"
	"github.com/togramago/melodygen/internal/music"
	"github.com/togramago/melodygen/internal/services"
)

// respondError maps domain errors onto status codes. Anything unexpected
// is logged and reported as a 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, music.ErrInvalidArgument):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, history.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Melody not found"})
	case errors.Is(err, services.ErrHistoryDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "History is disabled"})
	default:
		logger.Error("Request failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Internal server error",
			"request_id": c.GetString("request_id"),
		})
	}
}
