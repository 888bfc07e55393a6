// Package notation turns generated melodies into renderer input: VexFlow
// score documents, terminal staves and Standard MIDI Files.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/togramago/melodygen/internal/generator"
	"github.com/togramago/melodygen/internal/music"
)

const (
	clefTreble = "treble"
	clefBass   = "bass"
)

// ScoreNote is one note as the browser renderer expects it.
type ScoreNote struct {
	Keys     []string `json:"keys"`
	Duration string   `json:"duration"`
	Pitch    string   `json:"pitch"`
	Time     float64  `json:"time"`
}

// ScoreBar is one bar of a voice.
type ScoreBar struct {
	Number  int         `json:"number"`
	Notes   []ScoreNote `json:"notes"`
	Partial bool        `json:"partial"`
}

// ScoreVoice is one stave's worth of bars.
type ScoreVoice struct {
	Name string     `json:"name"`
	Clef string     `json:"clef"`
	Bars []ScoreBar `json:"bars"`
}

// Score is the document handed to the notation renderer.
type Score struct {
	TimeSignature string       `json:"time_signature"`
	BeatsPerBar   int          `json:"beats_per_bar"`
	BeatValue     int          `json:"beat_value"`
	Key           string       `json:"key"`
	Tempo         int          `json:"tempo"`
	Seed          uint64       `json:"seed"`
	Voices        []ScoreVoice `json:"voices"`
	Rows          [][]int      `json:"rows"`
	Warnings      []string     `json:"warnings,omitempty"`
}

// VexFlowKey spells a pitch the way VexFlow keys are written ("f#/4").
func VexFlowKey(p music.Pitch) string {
	return strings.ToLower(p.Class.String()) + "/" + strconv.Itoa(p.Octave)
}

// BuildScore converts a melody into a Score. Bars are laid out in rows by
// the melody voice's bar and note counts.
func BuildScore(m *generator.Melody) (*Score, error) {
	if m == nil || len(m.Voices) == 0 || m.BarCount() == 0 {
		return nil, fmt.Errorf("%w: melody has no bars", music.ErrInvalidArgument)
	}
	ts, err := music.LookupTimeSignature(m.TimeSignature)
	if err != nil {
		return nil, err
	}

	score := &Score{
		TimeSignature: ts.Name,
		BeatsPerBar:   ts.BeatsPerBar,
		BeatValue:     ts.BeatUnit,
		Key:           m.Key(),
		Tempo:         m.Tempo,
		Seed:          m.Seed,
		Warnings:      Warnings(m),
	}

	for _, v := range m.Voices {
		sv := ScoreVoice{Name: v.Name, Clef: clefTreble}
		if v.Bass {
			sv.Clef = clefBass
		}
		for _, bar := range v.Bars {
			sb := ScoreBar{Number: bar.Number, Partial: bar.Partial, Notes: make([]ScoreNote, 0, len(bar.Notes))}
			for _, n := range bar.Notes {
				sb.Notes = append(sb.Notes, ScoreNote{
					Keys:     []string{VexFlowKey(n.Pitch)},
					Duration: n.Duration.Tag(),
					Pitch:    n.Pitch.String(),
					Time:     n.Start,
				})
			}
			sv.Bars = append(sv.Bars, sb)
		}
		score.Voices = append(score.Voices, sv)
	}

	lead := m.Voices[0].Bars
	score.Rows = Rows(len(lead), BarsPerRow(len(lead), len(FlattenBars(lead))))
	return score, nil
}

// Warnings describes every partial bar of m.
func Warnings(m *generator.Melody) []string {
	var out []string
	for _, v := range m.Voices {
		for _, bar := range v.Bars {
			if bar.Partial {
				out = append(out, fmt.Sprintf("%s bar %d filled %g of %g beats", v.Name, bar.Number, bar.Filled, bar.Length))
			}
		}
	}
	return out
}

// FlattenBars concatenates the bars' notes in time order. Nil or empty
// input yields an empty slice.
func FlattenBars(bars []generator.Bar) []generator.Note {
	notes := []generator.Note{}
	for _, bar := range bars {
		notes = append(notes, bar.Notes...)
	}
	return notes
}
