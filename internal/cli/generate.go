package cli

import (
	"github.com/spf13/cobra"

	"github.com/togramago/melodygen/internal/history"
	"github.com/togramago/melodygen/internal/logger"
	"github.com/togramago/melodygen/internal/models"
)

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a melody",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringP("preset", "p", "", "Start from a named preset")
	f.IntP("bars", "b", 0, "Number of bars")
	f.Int("voices", 0, "1 for melody only, 2 adds a bass line")
	f.StringP("shortest", "s", "", "Shortest note: 1, 1/2, 1/4, 1/8, 1/16 or 1/32")
	f.StringP("time-signature", "t", "", "Time signature: 2/4, 3/4 or 4/4")
	f.StringP("root", "r", "", "Root note, e.g. C or F#")
	f.String("scale", "", "Scale type: major, minor or pentatonic")
	f.Int("tempo", 0, "Tempo in beats per minute")
	f.Int("octave", 0, "Melody base octave")
	f.Int("bass-octave", 0, "Bass octave")
	f.String("instrument", "", "Instrument label")
	f.Uint64("seed", 0, "Random seed for a reproducible melody")
	f.Bool("strict", false, "Never close a bar with a duration shorter than allowed")
	f.Bool("syncopated", false, "Mark the melody as syncopated")
	f.StringP("format", "f", formatText, "Output format: text, json or midi")
	f.StringP("out", "o", "", "Write MIDI to this file instead of stdout")
	f.Bool("save", false, "Store the melody in the history database")

	return cmd
}

// requestFromFlags copies only the flags the user set.
func requestFromFlags(cmd *cobra.Command) models.GenerateRequest {
	f := cmd.Flags()
	var req models.GenerateRequest
	req.Preset, _ = f.GetString("preset")

	ints := map[string]**int{
		"bars":        &req.Bars,
		"voices":      &req.Voices,
		"tempo":       &req.Tempo,
		"octave":      &req.BaseOctave,
		"bass-octave": &req.BassOctave,
	}
	for name, dst := range ints {
		if f.Changed(name) {
			v, _ := f.GetInt(name)
			*dst = &v
		}
	}

	strs := map[string]**string{
		"shortest":       &req.ShortestNote,
		"time-signature": &req.TimeSignature,
		"root":           &req.RootNote,
		"scale":          &req.ScaleType,
		"instrument":     &req.Instrument,
	}
	for name, dst := range strs {
		if f.Changed(name) {
			v, _ := f.GetString(name)
			*dst = &v
		}
	}

	if f.Changed("seed") {
		v, _ := f.GetUint64("seed")
		req.Seed = &v
	}
	if f.Changed("strict") {
		v, _ := f.GetBool("strict")
		req.StrictClosure = &v
	}
	if f.Changed("syncopated") {
		v, _ := f.GetBool("syncopated")
		req.Syncopated = &v
	}
	return req
}

func runGenerate(cmd *cobra.Command, opts *rootOptions) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")
	save, _ := cmd.Flags().GetBool("save")
	if err := checkMelodyFormat(format); err != nil {
		return err
	}

	var store history.Store
	if save {
		s, err := opts.openStore()
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	svc, err := opts.newService(store)
	if err != nil {
		return err
	}

	resp, err := svc.Generate(cmd.Context(), requestFromFlags(cmd), logger.Fields{"source": "cli"})
	if err != nil {
		return err
	}
	return writeMelody(cmd.OutOrStdout(), resp, format, out)
}
