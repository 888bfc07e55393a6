package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/togramago/melodygen/internal/generator"
	"github.com/togramago/melodygen/internal/music"
)

func TestDefault(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	list := s.List()
	require.NotEmpty(t, list)
	assert.Equal(t, "simple", list[0].Name)

	waltz, err := s.Get("waltz")
	require.NoError(t, err)
	assert.Equal(t, 8, waltz.Params.Bars)
	assert.Equal(t, 2, waltz.Params.Voices)
	assert.Equal(t, "3/4", waltz.Params.TimeSignature)
	assert.Equal(t, 96, waltz.Params.Tempo)
	// Omitted fields keep their defaults.
	assert.Equal(t, generator.DefaultBaseOctave, waltz.Params.BaseOctave)
	assert.Equal(t, generator.DefaultBassOctave, waltz.Params.BassOctave)

	for _, p := range list {
		_, err := generator.GenerateMelody(p.Params)
		assert.NoError(t, err, p.Name)
	}
}

func TestGetUnknown(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	_, err = s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, music.ErrInvalidArgument)
}

func TestParams(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	p, err := s.Params("")
	require.NoError(t, err)
	assert.Equal(t, generator.DefaultParams(), p)

	p, err = s.Params("march")
	require.NoError(t, err)
	assert.Equal(t, "2/4", p.TimeSignature)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing name", "presets:\n  - params:\n      bars: 2\n"},
		{"duplicate name", "presets:\n  - name: a\n  - name: a\n"},
		{"invalid params", "presets:\n  - name: a\n    params:\n      time_signature: \"5/4\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.ErrorIs(t, err, music.ErrInvalidArgument)
		})
	}

	_, err := Parse([]byte("presets: [unterminated"))
	assert.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.yaml")
	doc := "presets:\n  - name: tiny\n    params:\n      bars: 1\n      seed: 7\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	s, err := Load(path)
	require.NoError(t, err)

	tiny, err := s.Get("tiny")
	require.NoError(t, err)
	assert.Equal(t, 1, tiny.Params.Bars)
	require.NotNil(t, tiny.Params.Seed)
	assert.Equal(t, uint64(7), *tiny.Params.Seed)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
