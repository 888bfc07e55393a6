package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/togramago/melodygen/internal/logger"
	"github.com/togramago/melodygen/internal/models"
	"github.com/togramago/melodygen/internal/notation"
	"github.com/togramago/melodygen/internal/services"
)

type MelodyHandler struct {
	melodies *services.MelodyService
}

func NewMelodyHandler(melodies *services.MelodyService) *MelodyHandler {
	return &MelodyHandler{melodies: melodies}
}

// Generate creates a melody from the JSON body. Partial bars are reported
// as warnings, not errors.
func (h *MelodyHandler) Generate(c *gin.Context) {
	var req models.GenerateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	resp, err := h.melodies.Generate(c.Request.Context(), req, logger.WithContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns recent melodies, newest first.
func (h *MelodyHandler) List(c *gin.Context) {
	limit := defaultHistoryPageSize
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxHistoryPageSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("limit must be between 1 and %d", maxHistoryPageSize),
			})
			return
		}
		limit = n
	}

	entries, err := h.melodies.List(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"melodies": entries})
}

// Get returns one stored melody with its score.
func (h *MelodyHandler) Get(c *gin.Context) {
	entry, err := h.melodies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := services.Respond(entry.Melody, entry.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MIDI downloads a stored melody as a Standard MIDI File.
func (h *MelodyHandler) MIDI(c *gin.Context) {
	entry, err := h.melodies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	data, err := notation.EncodeMIDI(entry.Melody)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="melody-%s.mid"`, entry.ID))
	c.Data(http.StatusOK, midiContentType, data)
}
