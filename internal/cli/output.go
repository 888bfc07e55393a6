package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/togramago/melodygen/internal/models"
	"github.com/togramago/melodygen/internal/notation"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func checkMelodyFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatMIDI:
		return nil
	}
	return fmt.Errorf("unknown format %q (want text, json or midi)", format)
}

// writeMelody prints resp in the requested format. MIDI goes to out when
// set, otherwise to w.
func writeMelody(w io.Writer, resp *models.MelodyResponse, format, out string) error {
	switch format {
	case formatText:
		if _, err := io.WriteString(w, notation.RenderText(resp.Melody)); err != nil {
			return err
		}
		if resp.ID != "" {
			_, err := fmt.Fprintf(w, "id %s\n", resp.ID)
			return err
		}
		return nil
	case formatJSON:
		return writeJSON(w, resp)
	case formatMIDI:
		data, err := notation.EncodeMIDI(resp.Melody)
		if err != nil {
			return err
		}
		if out == "" {
			_, err = w.Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		return nil
	default:
		return checkMelodyFormat(format)
	}
}
