// Package generator fills bars with randomized notes and assembles them
// into melodies.
package generator

import (
	"strings"

	"github.com/togramago/melodygen/internal/music"
)

// MaxNotesPerBar bounds the bar filler regardless of fill state.
const MaxNotesPerBar = 20

// ClosurePolicy decides how the last note of a bar may be chosen when no
// allowed duration fits the remaining space.
type ClosurePolicy int

const (
	// ClosureLenient may close a bar with any catalogue duration that
	// exactly matches the remaining space, allowed or not.
	ClosureLenient ClosurePolicy = iota
	// ClosureStrict only ever uses allowed durations and leaves the bar
	// partial instead.
	ClosureStrict
)

func (p ClosurePolicy) String() string {
	if p == ClosureStrict {
		return "strict"
	}
	return "lenient"
}

// Note is one generated note. Start is in beats from the melody start.
type Note struct {
	Start    float64        `json:"time"`
	Pitch    music.Pitch    `json:"pitch"`
	Duration music.Duration `json:"duration"`
}

// End returns the beat at which the note stops sounding.
func (n Note) End() float64 {
	return n.Start + n.Duration.Length()
}

// Bar is one measure of a voice.
type Bar struct {
	Index         int     `json:"index"`
	Number        int     `json:"bar_number"`
	Start         float64 `json:"start"`
	Length        float64 `json:"duration"`
	TimeSignature string  `json:"time_signature"`
	Notes         []Note  `json:"notes"`
	Filled        float64 `json:"filled"`
	Partial       bool    `json:"partial"`
}

// NoteLength sums the lengths of the bar's notes.
func (b Bar) NoteLength() float64 {
	total := 0.0
	for _, n := range b.Notes {
		total += n.Duration.Length()
	}
	return total
}

// Voice is one independent line of bars.
type Voice struct {
	Name       string `json:"name"`
	BaseOctave int    `json:"base_octave"`
	Bass       bool   `json:"bass"`
	Bars       []Bar  `json:"bars"`
}

// PartialBars counts the voice's under-filled bars.
func (v Voice) PartialBars() int {
	count := 0
	for _, b := range v.Bars {
		if b.Partial {
			count++
		}
	}
	return count
}

// Melody is the result of one generation request.
type Melody struct {
	Voices        []Voice        `json:"voices"`
	Tempo         int            `json:"tempo"`
	TimeSignature string         `json:"time_signature"`
	RootNote      string         `json:"root_note"`
	ScaleType     string         `json:"scale_type"`
	Scale         []string       `json:"scale"`
	ShortestNote  music.Duration `json:"shortest_note"`
	Instrument    string         `json:"instrument,omitempty"`
	Syncopated    bool           `json:"syncopated,omitempty"`
	Seed          uint64         `json:"seed"`
	Closure       string         `json:"closure"`
}

// BarCount returns the number of bars per voice.
func (m *Melody) BarCount() int {
	if len(m.Voices) == 0 {
		return 0
	}
	return len(m.Voices[0].Bars)
}

// PartialBars counts under-filled bars across all voices.
func (m *Melody) PartialBars() int {
	count := 0
	for _, v := range m.Voices {
		count += v.PartialBars()
	}
	return count
}

// NoteCount counts notes across all voices.
func (m *Melody) NoteCount() int {
	count := 0
	for _, v := range m.Voices {
		for _, b := range v.Bars {
			count += len(b.Notes)
		}
	}
	return count
}

// Key names the melody's key, e.g. "C Major".
func (m *Melody) Key() string {
	kind := m.ScaleType
	if kind != "" {
		kind = strings.ToUpper(kind[:1]) + kind[1:]
	}
	return m.RootNote + " " + kind
}
