package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/togramago/melodygen/internal/history"
	"github.com/togramago/melodygen/internal/models"
	"github.com/togramago/melodygen/internal/presets"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateText(t *testing.T) {
	out, err := run(t, "generate", "--bars", "2", "--root", "F", "--scale", "minor", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "F Minor")
	assert.Contains(t, out, "seed 7")
	assert.NotContains(t, out, "id ")
}

func TestGenerateJSONIsReproducible(t *testing.T) {
	args := []string{"generate", "-f", "json", "--bars", "3", "--voices", "2", "-t", "3/4", "--seed", "99"}

	first, err := run(t, args...)
	require.NoError(t, err)
	second, err := run(t, args...)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var resp models.MelodyResponse
	require.NoError(t, json.Unmarshal([]byte(first), &resp))
	assert.Equal(t, 3, resp.Melody.BarCount())
	assert.Len(t, resp.Melody.Voices, 2)
	assert.Equal(t, "3/4", resp.Melody.TimeSignature)
}

func TestGeneratePreset(t *testing.T) {
	out, err := run(t, "generate", "-f", "json", "--preset", "march", "--bars", "2", "--seed", "1")
	require.NoError(t, err)

	var resp models.MelodyResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "2/4", resp.Melody.TimeSignature)
	assert.Equal(t, 2, resp.Melody.BarCount())
}

func TestGenerateMIDIFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mid")
	_, err := run(t, "generate", "-f", "midi", "-o", path, "--voices", "2", "--seed", "3")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	sm, err := smf.ReadFrom(f)
	require.NoError(t, err)
	assert.Len(t, sm.Tracks, 3)
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown scale", []string{"generate", "--scale", "dorian"}, "dorian"},
		{"zero bars", []string{"generate", "--bars", "0"}, "bars"},
		{"unknown preset", []string{"generate", "--preset", "nope"}, "nope"},
		{"unknown format", []string{"generate", "-f", "wav"}, "unknown format"},
		{"melody octave too high", []string{"generate", "--octave", "8", "-f", "midi"}, "base octave"},
		{"extra argument", []string{"generate", "now"}, "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGenerateUnknownFormatSavesNothing(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")

	_, err := run(t, "--db", db, "generate", "--save", "-f", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")

	out, err := run(t, "--db", db, "history", "list", "-f", "json")
	require.NoError(t, err)
	var entries []history.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Empty(t, entries)
}

func TestGenerateSyncopated(t *testing.T) {
	out, err := run(t, "generate", "-f", "json", "--syncopated", "--instrument", "violin", "--seed", "5")
	require.NoError(t, err)

	var resp models.MelodyResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Melody.Syncopated)
	assert.Equal(t, "violin", resp.Melody.Instrument)
}

func TestCatalogue(t *testing.T) {
	out, err := run(t, "catalogue")
	require.NoError(t, err)
	assert.Contains(t, out, "pentatonic")
	assert.Contains(t, out, "time signatures: 2/4 3/4 4/4")

	out, err = run(t, "catalogue", "-f", "json")
	require.NoError(t, err)
	var c models.Catalogue
	require.NoError(t, json.Unmarshal([]byte(out), &c))
	assert.Len(t, c.Durations, 6)
}

func TestPresets(t *testing.T) {
	out, err := run(t, "presets")
	require.NoError(t, err)
	for _, name := range []string{"simple", "waltz", "march", "etude"} {
		assert.Contains(t, out, name)
	}

	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("presets:\n  - name: lullaby\n    params:\n      bars: 2\n"), 0o644))
	out, err = run(t, "--presets", path, "presets", "-f", "json")
	require.NoError(t, err)

	var list []presets.Preset
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "lullaby", list[0].Name)
	assert.Equal(t, 2, list[0].Params.Bars)
}

func TestHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")

	out, err := run(t, "--db", db, "generate", "--save", "--seed", "11", "--bars", "2")
	require.NoError(t, err)
	var id string
	for _, line := range strings.Split(out, "\n") {
		if rest, ok := strings.CutPrefix(line, "id "); ok {
			id = rest
		}
	}
	require.NotEmpty(t, id)

	out, err = run(t, "--db", db, "history", "list", "-f", "json")
	require.NoError(t, err)
	var entries []history.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
	assert.Equal(t, uint64(11), entries[0].Seed)

	out, err = run(t, "--db", db, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)

	out, err = run(t, "--db", db, "history", "show", id)
	require.NoError(t, err)
	assert.Contains(t, out, "seed 11")
	assert.Contains(t, out, "id "+id)

	_, err = run(t, "--db", db, "history", "show", "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	assert.ErrorIs(t, err, history.ErrNotFound)
}
