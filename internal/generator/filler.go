package generator

import (
	"fmt"
	"math"
	"sort"

	"github.com/togramago/melodygen/internal/music"
)

// Generator fills bars from a random source. A Generator is as safe for
// concurrent use as its Rand; NewRand sources are not.
type Generator struct {
	rng      Rand
	closure  ClosurePolicy
	observer Observer
}

// Option configures a Generator.
type Option func(*Generator)

// WithClosure selects the bar closure policy. The default is lenient.
func WithClosure(p ClosurePolicy) Option {
	return func(g *Generator) {
		g.closure = p
	}
}

// WithObserver attaches an instrumentation callback.
func WithObserver(o Observer) Option {
	return func(g *Generator) {
		g.observer = o
	}
}

// New creates a Generator drawing from rng.
func New(rng Rand, opts ...Option) *Generator {
	g := &Generator{rng: rng}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// BarSpec describes one bar to fill.
type BarSpec struct {
	Length     float64
	Allowed    []music.Duration
	Scale      music.Scale
	BaseOctave int
	Bass       bool
	Start      float64

	// voice and index only label observer events.
	voice string
	index int
}

// BarFill is the filler's output for one bar.
type BarFill struct {
	Notes   []Note
	Filled  float64
	Partial bool
}

// FillBar partitions spec.Length into notes. Durations are picked greedily,
// longest allowed first; only pitch and octave are random. The bar never
// overshoots by more than music.Tolerance and never holds more than
// MaxNotesPerBar notes. A bar the allowed durations cannot tile comes back
// with Partial set.
func (g *Generator) FillBar(spec BarSpec) (BarFill, error) {
	if err := validateBarSpec(spec); err != nil {
		return BarFill{}, err
	}

	sorted := sortedDescending(spec.Allowed)
	shortest := sorted[len(sorted)-1]

	var notes []Note
	accumulated := 0.0

	for spec.Length-accumulated > music.Tolerance {
		remaining := spec.Length - accumulated

		chosen, ok := largestFitting(sorted, remaining)
		if !ok {
			chosen = shortest
		}

		if accumulated+chosen.Length() > spec.Length+music.Tolerance {
			closing, found := g.closingDuration(sorted, remaining)
			if !found {
				break
			}
			chosen = closing
		}

		note := Note{
			Start:    spec.Start + accumulated,
			Pitch:    g.pickPitch(spec),
			Duration: chosen,
		}
		notes = append(notes, note)
		g.observer.emit(Event{
			Kind:      EventNote,
			Voice:     spec.voice,
			BarIndex:  spec.index,
			Note:      note,
			Remaining: remaining - chosen.Length(),
		})

		accumulated += chosen.Length()

		if len(notes) >= MaxNotesPerBar {
			break
		}
	}

	return BarFill{
		Notes:   notes,
		Filled:  accumulated,
		Partial: spec.Length-accumulated > music.Tolerance,
	}, nil
}

// closingDuration picks the note that ends the bar when the greedy
// candidate would overshoot.
func (g *Generator) closingDuration(sorted []music.Duration, remaining float64) (music.Duration, bool) {
	if g.closure == ClosureLenient {
		if d, ok := music.DurationOf(remaining); ok {
			return d, true
		}
	}
	return largestFitting(sorted, remaining)
}

func (g *Generator) pickPitch(spec BarSpec) music.Pitch {
	pc := spec.Scale[g.rng.IntN(len(spec.Scale))]
	octave := spec.BaseOctave
	if !spec.Bass {
		octave += g.rng.IntN(2)
	}
	return music.Pitch{Class: pc, Octave: octave}
}

func largestFitting(sorted []music.Duration, remaining float64) (music.Duration, bool) {
	for _, d := range sorted {
		if d.Length() <= remaining+music.Tolerance {
			return d, true
		}
	}
	return 0, false
}

func sortedDescending(allowed []music.Duration) []music.Duration {
	seen := make(map[music.Duration]bool, len(allowed))
	out := make([]music.Duration, 0, len(allowed))
	for _, d := range allowed {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Length() > out[j].Length()
	})
	return out
}

func validateBarSpec(spec BarSpec) error {
	if math.IsNaN(spec.Length) || math.IsInf(spec.Length, 0) || spec.Length <= 0 {
		return fmt.Errorf("%w: bar length %v must be positive", music.ErrInvalidArgument, spec.Length)
	}
	if len(spec.Allowed) == 0 {
		return fmt.Errorf("%w: no allowed durations", music.ErrInvalidArgument)
	}
	for _, d := range spec.Allowed {
		if !d.Valid() || d.Length() <= 0 {
			return fmt.Errorf("%w: duration %d is not in the catalogue", music.ErrInvalidArgument, int(d))
		}
	}
	if spec.Start < 0 {
		return fmt.Errorf("%w: start time %v is negative", music.ErrInvalidArgument, spec.Start)
	}
	return spec.Scale.Validate()
}
