package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/togramago/melodygen/internal/generator"
	"github.com/togramago/melodygen/internal/history"
	"github.com/togramago/melodygen/internal/logger"
	"github.com/togramago/melodygen/internal/models"
	"github.com/togramago/melodygen/internal/music"
	"github.com/togramago/melodygen/internal/services"
	"github.com/togramago/melodygen/internal/web/templates"
	"github.com/togramago/melodygen/pkg/embedded"
)

const pageTitle = "melodygen"

type WebHandler struct {
	melodies   *services.MelodyService
	catalogue  models.Catalogue
	vexflowURL string
}

func NewWebHandler(melodies *services.MelodyService, maxBars int, vexflowURL string) *WebHandler {
	return &WebHandler{
		melodies:   melodies,
		catalogue:  models.NewCatalogue(maxBars),
		vexflowURL: vexflowURL,
	}
}

func (h *WebHandler) page() templates.PageData {
	return templates.PageData{
		Title:      pageTitle,
		Catalogue:  h.catalogue,
		Presets:    h.melodies.Presets().List(),
		VexFlowURL: h.vexflowURL,
	}
}

// Home renders the form and generates a melody from the query string.
// A bare request shows the form alone. Invalid parameters re-render the
// form with the error.
func (h *WebHandler) Home(c *gin.Context) {
	data := h.page()

	var req models.GenerateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		data.Params = h.catalogue.Defaults
		data.Error = err.Error()
		h.render(c, http.StatusBadRequest, data)
		return
	}
	if req.IsEmpty() {
		data.Params = h.catalogue.Defaults
		h.render(c, http.StatusOK, data)
		return
	}
	data.Preset = req.Preset

	params, err := h.melodies.Resolve(req)
	if err != nil {
		data.Params = req.Apply(h.catalogue.Defaults)
		data.Error = err.Error()
		h.render(c, http.StatusBadRequest, data)
		return
	}
	data.Params = params

	result, err := h.melodies.Generate(c.Request.Context(), req, logger.WithContext(c))
	if err != nil {
		data.Error = err.Error()
		h.render(c, statusFor(err), data)
		return
	}
	data.Result = result
	h.render(c, http.StatusOK, data)
}

// Melody renders a stored melody.
func (h *WebHandler) Melody(c *gin.Context) {
	data := h.page()
	data.Params = h.catalogue.Defaults

	entry, err := h.melodies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		data.Error = err.Error()
		h.render(c, statusFor(err), data)
		return
	}

	result, err := services.Respond(entry.Melody, entry.ID)
	if err != nil {
		data.Error = err.Error()
		h.render(c, statusFor(err), data)
		return
	}

	seed := entry.Melody.Seed
	data.Params.Bars = entry.Bars
	data.Params.Voices = entry.Voices
	data.Params.TimeSignature = entry.TimeSignature
	data.Params.RootNote = entry.Melody.RootNote
	data.Params.ScaleType = entry.Melody.ScaleType
	data.Params.ShortestNote = entry.Melody.ShortestNote.String()
	data.Params.Tempo = entry.Melody.Tempo
	data.Params.Seed = &seed
	data.Params.StrictClosure = entry.Melody.Closure == generator.ClosureStrict.String()
	data.Params.Syncopated = entry.Melody.Syncopated
	data.Result = result
	h.render(c, http.StatusOK, data)
}

// NotationScript serves the embedded VexFlow drawing script.
func (h *WebHandler) NotationScript(c *gin.Context) {
	c.Data(http.StatusOK, "application/javascript; charset=utf-8", embedded.NotationJS)
}

func (h *WebHandler) render(c *gin.Context, status int, data templates.PageData) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	component := templates.MelodyPage(data)
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		logger.Error("Failed to render template", err, logger.WithContext(c))
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, music.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, history.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrHistoryDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
