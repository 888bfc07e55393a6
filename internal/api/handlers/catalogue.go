package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/togramago/melodygen/internal/models"
	"github.com/togramago/melodygen/internal/services"
)

type CatalogueHandler struct {
	catalogue models.Catalogue
	melodies  *services.MelodyService
}

func NewCatalogueHandler(maxBars int, melodies *services.MelodyService) *CatalogueHandler {
	return &CatalogueHandler{
		catalogue: models.NewCatalogue(maxBars),
		melodies:  melodies,
	}
}

// GetCatalogue lists durations, scales, roots and time signatures.
func (h *CatalogueHandler) GetCatalogue(c *gin.Context) {
	c.JSON(http.StatusOK, h.catalogue)
}

// ListPresets returns the named parameter sets.
func (h *CatalogueHandler) ListPresets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"presets": h.melodies.Presets().List()})
}
