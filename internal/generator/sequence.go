package generator

import (
	"fmt"

	"github.com/togramago/melodygen/internal/music"
)

// SequenceSpec describes one voice's worth of bars.
type SequenceSpec struct {
	Bars          int
	TimeSignature music.TimeSignature
	Scale         music.Scale
	BaseOctave    int
	Shortest      music.Duration
	Bass          bool
	Voice         string
}

// GenerateSequence fills spec.Bars consecutive bars. Bar i starts at
// i * bar length. It always returns exactly spec.Bars bars; bars the
// allowed durations cannot tile are flagged partial rather than dropped.
func (g *Generator) GenerateSequence(spec SequenceSpec) ([]Bar, error) {
	if spec.Bars < 1 {
		return nil, fmt.Errorf("%w: bar count %d must be positive", music.ErrInvalidArgument, spec.Bars)
	}
	if err := spec.TimeSignature.Validate(); err != nil {
		return nil, err
	}
	if !spec.Shortest.Valid() {
		return nil, fmt.Errorf("%w: shortest note %d is not in the catalogue", music.ErrInvalidArgument, int(spec.Shortest))
	}

	barLength := spec.TimeSignature.BarLength()
	allowed := music.DurationsAtMost(spec.Shortest)

	bars := make([]Bar, 0, spec.Bars)
	start := 0.0
	for i := 0; i < spec.Bars; i++ {
		fill, err := g.FillBar(BarSpec{
			Length:     barLength,
			Allowed:    allowed,
			Scale:      spec.Scale,
			BaseOctave: spec.BaseOctave,
			Bass:       spec.Bass,
			Start:      start,
			voice:      spec.Voice,
			index:      i,
		})
		if err != nil {
			return nil, err
		}

		bar := Bar{
			Index:         i,
			Number:        i + 1,
			Start:         start,
			Length:        barLength,
			TimeSignature: spec.TimeSignature.Name,
			Notes:         fill.Notes,
			Filled:        fill.Filled,
			Partial:       fill.Partial,
		}
		if bar.Notes == nil {
			bar.Notes = []Note{}
		}
		bars = append(bars, bar)

		g.observer.emit(Event{Kind: EventBar, Voice: spec.Voice, BarIndex: i, Bar: &bar})
		if bar.Partial {
			g.observer.emit(Event{
				Kind:      EventPartial,
				Voice:     spec.Voice,
				BarIndex:  i,
				Bar:       &bar,
				Remaining: barLength - fill.Filled,
			})
		}

		start += barLength
	}

	return bars, nil
}
