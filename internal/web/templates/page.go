package templates

import (
	"github.com/togramago/melodygen/internal/generator"
	"github.com/togramago/melodygen/internal/models"
	"github.com/togramago/melodygen/internal/presets"
)

//go:generate templ generate

// NotationScriptPath is where the router serves the drawing script.
const NotationScriptPath = "/static/notation.js"

// PageData feeds the melody page.
type PageData struct {
	Title      string
	Catalogue  models.Catalogue
	Presets    []presets.Preset
	Preset     string
	Params     generator.Params
	Result     *models.MelodyResponse
	Error      string
	VexFlowURL string
}
