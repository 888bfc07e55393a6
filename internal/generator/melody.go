package generator

import (
	"fmt"

	"github.com/togramago/melodygen/internal/music"
)

const (
	VoiceMelody = "melody"
	VoiceBass   = "bass"

	DefaultBars       = 4
	DefaultTempo      = 120
	DefaultBaseOctave = 4
	DefaultBassOctave = 2

	minOctave = 0
	maxOctave = 8
	// The melody voice may climb one octave above its base.
	maxMelodyOctave = maxOctave - 1
)

// Params are the user-facing generation parameters, by name.
type Params struct {
	Bars          int     `json:"bars" yaml:"bars"`
	Voices        int     `json:"voices" yaml:"voices"`
	ShortestNote  string  `json:"shortest_note" yaml:"shortest_note"`
	TimeSignature string  `json:"time_signature" yaml:"time_signature"`
	RootNote      string  `json:"root_note" yaml:"root_note"`
	ScaleType     string  `json:"scale_type" yaml:"scale_type"`
	Tempo         int     `json:"tempo" yaml:"tempo"`
	BaseOctave    int     `json:"base_octave" yaml:"base_octave"`
	BassOctave    int     `json:"bass_octave" yaml:"bass_octave"`
	Instrument    string  `json:"instrument,omitempty" yaml:"instrument,omitempty"`
	StrictClosure bool    `json:"strict_closure,omitempty" yaml:"strict_closure,omitempty"`
	Syncopated    bool    `json:"syncopated,omitempty" yaml:"syncopated,omitempty"`
	Seed          *uint64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// DefaultParams mirrors the initial state of the generation form.
func DefaultParams() Params {
	return Params{
		Bars:          DefaultBars,
		Voices:        1,
		ShortestNote:  music.Quarter.String(),
		TimeSignature: "4/4",
		RootNote:      "C",
		ScaleType:     string(music.Major),
		Tempo:         DefaultTempo,
		BaseOctave:    DefaultBaseOctave,
		BassOctave:    DefaultBassOctave,
		Instrument:    "piano",
	}
}

type resolvedParams struct {
	timeSignature music.TimeSignature
	shortest      music.Duration
	root          music.PitchClass
	kind          music.ScaleKind
	scale         music.Scale
}

// Validate checks every parameter and resolves the names. The first
// failure wraps music.ErrInvalidArgument.
func (p Params) Validate() error {
	_, err := p.resolve()
	return err
}

func (p Params) resolve() (resolvedParams, error) {
	var r resolvedParams
	if p.Bars < 1 {
		return r, fmt.Errorf("%w: bars must be a positive integer, got %d", music.ErrInvalidArgument, p.Bars)
	}
	if p.Voices != 1 && p.Voices != 2 {
		return r, fmt.Errorf("%w: voices must be 1 or 2, got %d", music.ErrInvalidArgument, p.Voices)
	}
	if p.Tempo <= 0 {
		return r, fmt.Errorf("%w: tempo must be positive, got %d", music.ErrInvalidArgument, p.Tempo)
	}
	if p.BaseOctave < minOctave || p.BaseOctave > maxMelodyOctave {
		return r, fmt.Errorf("%w: base octave %d outside %d..%d", music.ErrInvalidArgument, p.BaseOctave, minOctave, maxMelodyOctave)
	}
	if p.Voices == 2 && (p.BassOctave < minOctave || p.BassOctave > maxOctave) {
		return r, fmt.Errorf("%w: bass octave %d outside %d..%d", music.ErrInvalidArgument, p.BassOctave, minOctave, maxOctave)
	}

	var err error
	if r.timeSignature, err = music.LookupTimeSignature(p.TimeSignature); err != nil {
		return r, err
	}
	if r.shortest, err = music.ParseDuration(p.ShortestNote); err != nil {
		return r, err
	}
	if r.root, err = music.ParsePitchClass(p.RootNote); err != nil {
		return r, err
	}
	if r.kind, err = music.ParseScaleKind(p.ScaleType); err != nil {
		return r, err
	}
	if r.scale, err = music.GenerateScale(r.root, r.kind); err != nil {
		return r, err
	}
	return r, nil
}

// GenerateMelody validates p and generates every voice. Any invalid
// parameter aborts the whole request; partial bars do not.
func GenerateMelody(p Params, opts ...Option) (*Melody, error) {
	r, err := p.resolve()
	if err != nil {
		return nil, err
	}

	seed := NewSeed()
	if p.Seed != nil {
		seed = *p.Seed
	}
	closure := ClosureLenient
	if p.StrictClosure {
		closure = ClosureStrict
	}

	all := make([]Option, 0, len(opts)+1)
	all = append(all, opts...)
	g := New(NewRand(seed), append(all, WithClosure(closure))...)

	melody := &Melody{
		Tempo:         p.Tempo,
		TimeSignature: r.timeSignature.Name,
		RootNote:      r.root.String(),
		ScaleType:     string(r.kind),
		Scale:         r.scale.Names(),
		ShortestNote:  r.shortest,
		Instrument:    p.Instrument,
		Syncopated:    p.Syncopated,
		Seed:          seed,
		Closure:       closure.String(),
	}

	voices := []Voice{{Name: VoiceMelody, BaseOctave: p.BaseOctave}}
	if p.Voices == 2 {
		voices = append(voices, Voice{Name: VoiceBass, BaseOctave: p.BassOctave, Bass: true})
	}

	for _, v := range voices {
		bars, err := g.GenerateSequence(SequenceSpec{
			Bars:          p.Bars,
			TimeSignature: r.timeSignature,
			Scale:         r.scale,
			BaseOctave:    v.BaseOctave,
			Shortest:      r.shortest,
			Bass:          v.Bass,
			Voice:         v.Name,
		})
		if err != nil {
			return nil, err
		}
		v.Bars = bars
		melody.Voices = append(melody.Voices, v)
	}

	return melody, nil
}
