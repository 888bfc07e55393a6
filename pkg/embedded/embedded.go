package embedded

import (
	_ "embed"
)

// Default presets shipped with the binary.
//
//go:embed data/presets.yaml
var PresetsYAML []byte

// Browser script that draws a score document with VexFlow.
//
//go:embed data/notation.js
var NotationJS []byte
