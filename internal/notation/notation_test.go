package notation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/togramago/melodygen/internal/generator"
	"github.com/togramago/melodygen/internal/music"
)

func seedOf(v uint64) *uint64 { return &v }

func testMelody(t *testing.T, mutate func(*generator.Params)) *generator.Melody {
	t.Helper()
	p := generator.DefaultParams()
	p.Seed = seedOf(2024)
	if mutate != nil {
		mutate(&p)
	}
	m, err := generator.GenerateMelody(p)
	require.NoError(t, err)
	return m
}

func TestVexFlowKey(t *testing.T) {
	tests := []struct {
		pitch    music.Pitch
		expected string
	}{
		{music.Pitch{Class: 0, Octave: 4}, "c/4"},
		{music.Pitch{Class: 6, Octave: 4}, "f#/4"},
		{music.Pitch{Class: 10, Octave: 2}, "a#/2"},
		{music.Pitch{Class: 11, Octave: 5}, "b/5"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, VexFlowKey(tt.pitch))
		})
	}
}

func TestBarsPerRow(t *testing.T) {
	tests := []struct {
		name       string
		bars       int
		totalNotes int
		expected   int
	}{
		{"three sparse bars share a row", 3, 12, 3},
		{"three dense bars wrap", 3, 40, 5},
		{"four bars", 4, 16, 2},
		{"six bars", 6, 24, 3},
		{"eight dense bars", 8, 40, 2},
		{"eight sparse bars", 8, 24, 3},
		{"eight bars at exactly four per bar", 8, 32, 3},
		{"five bars", 5, 20, 5},
		{"twelve bars", 12, 48, 5},
		{"no bars", 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BarsPerRow(tt.bars, tt.totalNotes))
		})
	}
}

func TestRows(t *testing.T) {
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}, {6, 7}}, Rows(8, 3))
	assert.Equal(t, [][]int{{0, 1}, {2, 3}}, Rows(4, 2))
	assert.Equal(t, [][]int{{0}}, Rows(1, 0))
	assert.Equal(t, [][]int{}, Rows(0, 5))
}

func TestFlattenBars(t *testing.T) {
	assert.Equal(t, []generator.Note{}, FlattenBars(nil))
	assert.Equal(t, []generator.Note{}, FlattenBars([]generator.Bar{}))

	m := testMelody(t, func(p *generator.Params) { p.Bars = 3; p.ShortestNote = "1/8" })
	notes := FlattenBars(m.Voices[0].Bars)

	total := 0
	for _, bar := range m.Voices[0].Bars {
		total += len(bar.Notes)
	}
	require.Len(t, notes, total)
	for i := 1; i < len(notes); i++ {
		assert.Greater(t, notes[i].Start, notes[i-1].Start)
	}
}

func TestBuildScore(t *testing.T) {
	m := testMelody(t, func(p *generator.Params) {
		p.Bars = 4
		p.Voices = 2
		p.TimeSignature = "3/4"
		p.RootNote = "F"
		p.ScaleType = "minor"
	})

	score, err := BuildScore(m)
	require.NoError(t, err)

	assert.Equal(t, "3/4", score.TimeSignature)
	assert.Equal(t, 3, score.BeatsPerBar)
	assert.Equal(t, 4, score.BeatValue)
	assert.Equal(t, "F Minor", score.Key)
	assert.Equal(t, uint64(2024), score.Seed)
	assert.Equal(t, [][]int{{0, 1}, {2, 3}}, score.Rows)
	assert.Empty(t, score.Warnings)

	require.Len(t, score.Voices, 2)
	assert.Equal(t, "treble", score.Voices[0].Clef)
	assert.Equal(t, "bass", score.Voices[1].Clef)

	for vi, v := range score.Voices {
		require.Len(t, v.Bars, 4)
		for bi, bar := range v.Bars {
			src := m.Voices[vi].Bars[bi]
			assert.Equal(t, src.Number, bar.Number)
			require.Len(t, bar.Notes, len(src.Notes))
			for ni, n := range bar.Notes {
				assert.Equal(t, []string{VexFlowKey(src.Notes[ni].Pitch)}, n.Keys)
				assert.Equal(t, src.Notes[ni].Duration.Tag(), n.Duration)
			}
		}
	}

	data, err := json.Marshal(score)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"time_signature":"3/4"`)
}

func TestBuildScoreWarnsAboutPartialBars(t *testing.T) {
	m := testMelody(t, func(p *generator.Params) {
		p.Bars = 2
		p.ShortestNote = "1/32"
		p.TimeSignature = "3/4"
	})

	score, err := BuildScore(m)
	require.NoError(t, err)
	require.Len(t, score.Warnings, 2)
	assert.Equal(t, "melody bar 1 filled 2.5 of 3 beats", score.Warnings[0])
	assert.True(t, score.Voices[0].Bars[0].Partial)
}

func TestBuildScoreRejectsEmptyMelody(t *testing.T) {
	_, err := BuildScore(nil)
	assert.ErrorIs(t, err, music.ErrInvalidArgument)

	_, err = BuildScore(&generator.Melody{TimeSignature: "4/4"})
	assert.ErrorIs(t, err, music.ErrInvalidArgument)
}

func TestEncodeMIDI(t *testing.T) {
	m := testMelody(t, func(p *generator.Params) {
		p.Bars = 2
		p.Voices = 2
		p.Tempo = 90
		p.ShortestNote = "1/8"
	})

	data, err := EncodeMIDI(m)
	require.NoError(t, err)

	sm, err := smf.ReadFrom(bytes.NewReader(data))
	require.NoError(t, err)

	ticks, ok := sm.TimeFormat.(smf.MetricTicks)
	require.True(t, ok)
	assert.Equal(t, uint16(TicksPerBeat), ticks.Resolution())

	require.Len(t, sm.Tracks, 3)
	tempos := sm.TempoChanges()
	require.NotEmpty(t, tempos)
	assert.InDelta(t, 90.0, tempos[0].BPM, 0.01)

	for vi, v := range m.Voices {
		expected := FlattenBars(v.Bars)
		var keys []uint8
		var abs uint32
		var lastOn uint32
		for _, ev := range sm.Tracks[vi+1] {
			abs += ev.Delta
			var ch, key, vel uint8
			if midi.Message(ev.Message).GetNoteStart(&ch, &key, &vel) {
				assert.Equal(t, uint8(vi), ch)
				keys = append(keys, key)
				lastOn = abs
			}
		}
		require.Len(t, keys, len(expected))
		for i, n := range expected {
			assert.Equal(t, uint8(n.Pitch.MIDI()), keys[i])
		}
		assert.Equal(t, ticksOf(expected[len(expected)-1].Start), lastOn)
	}
}

func ticksOf(beats float64) uint32 { return ticks(beats) }

func TestEncodeMIDIHighestOctaves(t *testing.T) {
	m := testMelody(t, func(p *generator.Params) {
		p.Bars = 8
		p.Voices = 2
		p.RootNote = "B"
		p.ShortestNote = "1/16"
		p.BaseOctave = 7
		p.BassOctave = 8
		p.Seed = seedOf(3)
	})

	data, err := EncodeMIDI(m)
	require.NoError(t, err)
	_, err = smf.ReadFrom(bytes.NewReader(data))
	require.NoError(t, err)
}

func TestEncodeMIDIRejectsOutOfRangePitch(t *testing.T) {
	m := testMelody(t, nil)
	m.Voices[0].Bars[0].Notes[0].Pitch = music.Pitch{Class: 8, Octave: 9}

	_, err := EncodeMIDI(m)
	assert.ErrorIs(t, err, music.ErrInvalidArgument)
}

func TestEncodeMIDIRejectsEmptyMelody(t *testing.T) {
	_, err := EncodeMIDI(&generator.Melody{TimeSignature: "4/4"})
	assert.ErrorIs(t, err, music.ErrInvalidArgument)
}

func TestRenderText(t *testing.T) {
	m := testMelody(t, func(p *generator.Params) { p.Bars = 2; p.Voices = 2 })
	out := RenderText(m)

	assert.Contains(t, out, "C Major")
	assert.Contains(t, out, "seed 2024")
	assert.Contains(t, out, "melody")
	assert.Contains(t, out, "bass")
	first := m.Voices[0].Bars[0].Notes[0]
	assert.Contains(t, out, first.Pitch.String()+"/"+first.Duration.Tag())
}

func TestRenderTextMarksPartialBars(t *testing.T) {
	m := testMelody(t, func(p *generator.Params) { p.Bars = 1; p.ShortestNote = "1/32" })
	out := RenderText(m)

	assert.Contains(t, out, " !")
	assert.Contains(t, out, "melody bar 1 filled 2.5 of 4 beats")
}
