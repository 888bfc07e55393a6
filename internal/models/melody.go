package models

import (
	"github.com/togramago/melodygen/internal/generator"
	"github.com/togramago/melodygen/internal/notation"
)

// GenerateRequest carries generation parameters from a JSON body or a
// query string. Nil fields keep the preset's (or the default) value.
type GenerateRequest struct {
	Preset        string  `json:"preset" form:"preset"`
	Bars          *int    `json:"bars" form:"bars"`
	Voices        *int    `json:"voices" form:"voices"`
	ShortestNote  *string `json:"shortest_note" form:"shortest_note"`
	TimeSignature *string `json:"time_signature" form:"time_signature"`
	RootNote      *string `json:"root_note" form:"root_note"`
	ScaleType     *string `json:"scale_type" form:"scale_type"`
	Tempo         *int    `json:"tempo" form:"tempo"`
	BaseOctave    *int    `json:"base_octave" form:"base_octave"`
	BassOctave    *int    `json:"bass_octave" form:"bass_octave"`
	Instrument    *string `json:"instrument" form:"instrument"`
	Seed          *uint64 `json:"seed" form:"seed"`
	StrictClosure *bool   `json:"strict_closure" form:"strict_closure"`
	Syncopated    *bool   `json:"syncopated" form:"syncopated"`
}

// Apply overlays the request's set fields onto base.
func (r GenerateRequest) Apply(base generator.Params) generator.Params {
	p := base
	setInt(&p.Bars, r.Bars)
	setInt(&p.Voices, r.Voices)
	setInt(&p.Tempo, r.Tempo)
	setInt(&p.BaseOctave, r.BaseOctave)
	setInt(&p.BassOctave, r.BassOctave)
	setString(&p.ShortestNote, r.ShortestNote)
	setString(&p.TimeSignature, r.TimeSignature)
	setString(&p.RootNote, r.RootNote)
	setString(&p.ScaleType, r.ScaleType)
	setString(&p.Instrument, r.Instrument)
	if r.Seed != nil {
		seed := *r.Seed
		p.Seed = &seed
	}
	if r.StrictClosure != nil {
		p.StrictClosure = *r.StrictClosure
	}
	if r.Syncopated != nil {
		p.Syncopated = *r.Syncopated
	}
	return p
}

// IsEmpty reports whether no parameter was given at all.
func (r GenerateRequest) IsEmpty() bool {
	return r == GenerateRequest{}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// MelodyResponse is returned by the generate and get endpoints.
type MelodyResponse struct {
	ID       string            `json:"id,omitempty"`
	Melody   *generator.Melody `json:"melody"`
	Score    *notation.Score   `json:"score"`
	Warnings []string          `json:"warnings"`
}
