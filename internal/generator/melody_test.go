package generator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/togramago/melodygen/internal/music"
)

func seedOf(v uint64) *uint64 { return &v }

func TestGenerateSequenceBarCountAndStarts(t *testing.T) {
	for _, ts := range music.TimeSignatures() {
		for _, n := range []int{1, 2, 5, 8} {
			t.Run(fmt.Sprintf("%s/%d bars", ts.Name, n), func(t *testing.T) {
				g := New(NewRand(uint64(n)))
				bars, err := g.GenerateSequence(SequenceSpec{
					Bars:          n,
					TimeSignature: ts,
					Scale:         cMajor,
					BaseOctave:    4,
					Shortest:      music.Eighth,
				})
				require.NoError(t, err)
				require.Len(t, bars, n)

				for i, bar := range bars {
					assert.Equal(t, i, bar.Index)
					assert.Equal(t, i+1, bar.Number)
					assert.Equal(t, float64(i)*ts.BarLength(), bar.Start)
					assert.Equal(t, ts.BarLength(), bar.Length)
					assert.Equal(t, ts.Name, bar.TimeSignature)
					assert.False(t, bar.Partial)
					assert.InDelta(t, ts.BarLength(), bar.NoteLength(), music.Tolerance)

					for _, note := range bar.Notes {
						assert.GreaterOrEqual(t, note.Start, bar.Start)
						assert.LessOrEqual(t, note.End(), bar.Start+bar.Length+music.Tolerance)
					}
				}
			})
		}
	}
}

func TestGenerateSequencePartialBarsAreKept(t *testing.T) {
	ts, err := music.LookupTimeSignature("4/4")
	require.NoError(t, err)

	g := New(NewRand(5))
	bars, err := g.GenerateSequence(SequenceSpec{
		Bars:          3,
		TimeSignature: ts,
		Scale:         cMajor,
		BaseOctave:    4,
		Shortest:      music.ThirtySecond,
	})
	require.NoError(t, err)
	require.Len(t, bars, 3)

	for _, bar := range bars {
		assert.True(t, bar.Partial)
		assert.Len(t, bar.Notes, MaxNotesPerBar)
	}
	assert.Equal(t, 4.0, bars[1].Start)
}

func TestGenerateSequenceInvalid(t *testing.T) {
	ts, err := music.LookupTimeSignature("3/4")
	require.NoError(t, err)

	g := New(NewRand(1))
	tests := []struct {
		name string
		spec SequenceSpec
	}{
		{"zero bars", SequenceSpec{Bars: 0, TimeSignature: ts, Scale: cMajor, Shortest: music.Quarter}},
		{"unknown time signature", SequenceSpec{Bars: 2, TimeSignature: music.TimeSignature{Name: "7/8", BeatsPerBar: 7, BeatUnit: 8}, Scale: cMajor, Shortest: music.Quarter}},
		{"unknown duration", SequenceSpec{Bars: 2, TimeSignature: ts, Scale: cMajor, Shortest: music.Duration(-1)}},
		{"empty scale", SequenceSpec{Bars: 2, TimeSignature: ts, Shortest: music.Quarter}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bars, err := g.GenerateSequence(tt.spec)
			assert.ErrorIs(t, err, music.ErrInvalidArgument)
			assert.Nil(t, bars)
		})
	}
}

func TestGenerateSequenceObserverReportsPartials(t *testing.T) {
	ts, err := music.LookupTimeSignature("3/4")
	require.NoError(t, err)

	counts := map[EventKind]int{}
	g := New(NewRand(1), WithObserver(func(e Event) {
		counts[e.Kind]++
	}))

	// 3/4 needs 24 thirty-seconds, more than a bar may hold.
	_, err = g.GenerateSequence(SequenceSpec{
		Bars:          2,
		TimeSignature: ts,
		Scale:         cMajor,
		Shortest:      music.ThirtySecond,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, counts[EventBar])
	assert.Equal(t, 2, counts[EventPartial])
	assert.Equal(t, 2*MaxNotesPerBar, counts[EventNote])
}

func TestGenerateMelody(t *testing.T) {
	p := DefaultParams()
	p.Bars = 3
	p.Voices = 2
	p.TimeSignature = "3/4"
	p.ShortestNote = "1/8"
	p.RootNote = "F"
	p.ScaleType = "minor"
	p.Seed = seedOf(1234)

	melody, err := GenerateMelody(p)
	require.NoError(t, err)

	assert.Equal(t, "3/4", melody.TimeSignature)
	assert.Equal(t, "F", melody.RootNote)
	assert.Equal(t, "minor", melody.ScaleType)
	assert.Equal(t, "F Minor", melody.Key())
	assert.Equal(t, []string{"F", "G", "G#", "A#", "C", "C#", "D#"}, melody.Scale)
	assert.Equal(t, music.Eighth, melody.ShortestNote)
	assert.Equal(t, uint64(1234), melody.Seed)
	assert.Equal(t, "lenient", melody.Closure)
	assert.Equal(t, 3, melody.BarCount())
	assert.Equal(t, 0, melody.PartialBars())
	assert.Equal(t, 36, melody.NoteCount())

	require.Len(t, melody.Voices, 2)
	assert.Equal(t, VoiceMelody, melody.Voices[0].Name)
	assert.False(t, melody.Voices[0].Bass)
	assert.Equal(t, VoiceBass, melody.Voices[1].Name)
	assert.True(t, melody.Voices[1].Bass)

	for _, bar := range melody.Voices[1].Bars {
		for _, n := range bar.Notes {
			assert.Equal(t, DefaultBassOctave, n.Pitch.Octave)
		}
	}
}

func TestGenerateMelodySeedIsReproducible(t *testing.T) {
	p := DefaultParams()
	p.Bars = 4
	p.ShortestNote = "1/16"
	p.Seed = seedOf(77)

	first, err := GenerateMelody(p)
	require.NoError(t, err)
	second, err := GenerateMelody(p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateMelodyStructureIsStable(t *testing.T) {
	p := DefaultParams()
	p.Bars = 6
	p.TimeSignature = "2/4"

	first, err := GenerateMelody(p)
	require.NoError(t, err)
	second, err := GenerateMelody(p)
	require.NoError(t, err)

	require.Equal(t, first.BarCount(), second.BarCount())
	for i := range first.Voices[0].Bars {
		assert.Equal(t, first.Voices[0].Bars[i].Length, second.Voices[0].Bars[i].Length)
		assert.Equal(t, first.Voices[0].Bars[i].Start, second.Voices[0].Bars[i].Start)
	}
}

func TestGenerateMelodyCappedBarsArePartial(t *testing.T) {
	p := DefaultParams()
	p.Bars = 2
	p.Voices = 2
	p.TimeSignature = "4/4"
	p.ShortestNote = "1/32"
	p.StrictClosure = true
	p.Seed = seedOf(1)

	melody, err := GenerateMelody(p)
	require.NoError(t, err)

	assert.Equal(t, "strict", melody.Closure)
	assert.Equal(t, 4, melody.PartialBars())
	assert.Len(t, melody.Voices[0].Bars, 2)
	assert.Len(t, melody.Voices[1].Bars, 2)
}

func TestGenerateMelodyInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero bars", func(p *Params) { p.Bars = 0 }},
		{"three voices", func(p *Params) { p.Voices = 3 }},
		{"zero tempo", func(p *Params) { p.Tempo = 0 }},
		{"unknown time signature", func(p *Params) { p.TimeSignature = "invalid" }},
		{"unknown duration", func(p *Params) { p.ShortestNote = "1/64" }},
		{"unknown root", func(p *Params) { p.RootNote = "X" }},
		{"unknown scale", func(p *Params) { p.ScaleType = "invalid" }},
		{"octave too high", func(p *Params) { p.BaseOctave = 9 }},
		{"melody octave leaves no room to climb", func(p *Params) { p.BaseOctave = 8 }},
		{"bass octave too high", func(p *Params) { p.Voices = 2; p.BassOctave = 9 }},
		{"bass octave negative", func(p *Params) { p.Voices = 2; p.BassOctave = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)

			assert.ErrorIs(t, p.Validate(), music.ErrInvalidArgument)

			melody, err := GenerateMelody(p)
			assert.ErrorIs(t, err, music.ErrInvalidArgument)
			assert.Nil(t, melody)
		})
	}
}

func TestGenerateMelodyTopOctaves(t *testing.T) {
	p := DefaultParams()
	p.Bars = 8
	p.Voices = 2
	p.RootNote = "B"
	p.ShortestNote = "1/16"
	p.BaseOctave = 7
	p.BassOctave = 8
	p.Seed = seedOf(3)

	m, err := GenerateMelody(p)
	require.NoError(t, err)

	for _, v := range m.Voices {
		for _, bar := range v.Bars {
			for _, n := range bar.Notes {
				assert.LessOrEqual(t, n.Pitch.MIDI(), 127, "%s %s", v.Name, n.Pitch)
			}
		}
	}
}

func TestGenerateMelodyCarriesMetadata(t *testing.T) {
	p := DefaultParams()
	p.Instrument = "flute"
	p.Syncopated = true
	p.Seed = seedOf(1)

	m, err := GenerateMelody(p)
	require.NoError(t, err)
	assert.Equal(t, "flute", m.Instrument)
	assert.True(t, m.Syncopated)
}
