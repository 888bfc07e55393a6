package models

import (
	"github.com/togramago/melodygen/internal/generator"
	"github.com/togramago/melodygen/internal/music"
)

// DurationInfo describes one catalogue duration.
type DurationInfo struct {
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	Tag    string  `json:"tag"`
	Length float64 `json:"length"`
}

// ScaleInfo describes one scale kind.
type ScaleInfo struct {
	Name      string `json:"name"`
	Intervals []int  `json:"intervals"`
}

// Catalogue lists every value a generation request may use.
type Catalogue struct {
	Durations      []DurationInfo        `json:"durations"`
	Scales         []ScaleInfo           `json:"scales"`
	Roots          []string              `json:"roots"`
	TimeSignatures []music.TimeSignature `json:"time_signatures"`
	Voices         []int                 `json:"voices"`
	MaxBars        int                   `json:"max_bars"`
	Defaults       generator.Params      `json:"defaults"`
}

// NewCatalogue builds the catalogue with the server's bar limit.
func NewCatalogue(maxBars int) Catalogue {
	c := Catalogue{
		Roots:          music.NoteNames(),
		TimeSignatures: music.TimeSignatures(),
		Voices:         []int{1, 2},
		MaxBars:        maxBars,
		Defaults:       generator.DefaultParams(),
	}
	for _, d := range music.AllDurations() {
		c.Durations = append(c.Durations, DurationInfo{
			Name:   d.String(),
			Label:  d.Label(),
			Tag:    d.Tag(),
			Length: d.Length(),
		})
	}
	for _, k := range music.ScaleKinds() {
		c.Scales = append(c.Scales, ScaleInfo{Name: string(k), Intervals: k.Pattern()})
	}
	return c
}
