package music

import (
	"fmt"
	"strings"
)

// TimeSignature is a catalogue meter.
type TimeSignature struct {
	Name        string `json:"name"`
	BeatsPerBar int    `json:"beats_per_bar"`
	BeatUnit    int    `json:"beat_unit"`
}

var timeSignatures = []TimeSignature{
	{Name: "2/4", BeatsPerBar: 2, BeatUnit: 4},
	{Name: "3/4", BeatsPerBar: 3, BeatUnit: 4},
	{Name: "4/4", BeatsPerBar: 4, BeatUnit: 4},
}

// TimeSignatures returns the catalogue.
func TimeSignatures() []TimeSignature {
	out := make([]TimeSignature, len(timeSignatures))
	copy(out, timeSignatures)
	return out
}

// LookupTimeSignature finds a catalogue meter by name ("3/4").
func LookupTimeSignature(name string) (TimeSignature, error) {
	key := strings.TrimSpace(name)
	for _, ts := range timeSignatures {
		if ts.Name == key {
			return ts, nil
		}
	}
	return TimeSignature{}, fmt.Errorf("%w: unknown time signature %q", ErrInvalidArgument, name)
}

// BarLength is the bar duration in beats: beatsPerBar * (4 / beatUnit).
func (ts TimeSignature) BarLength() float64 {
	if ts.BeatUnit <= 0 {
		return 0
	}
	return float64(ts.BeatsPerBar) * (4 / float64(ts.BeatUnit))
}

// Validate checks that ts is one of the catalogue meters.
func (ts TimeSignature) Validate() error {
	known, err := LookupTimeSignature(ts.Name)
	if err != nil {
		return err
	}
	if known != ts {
		return fmt.Errorf("%w: time signature %q does not match %d/%d",
			ErrInvalidArgument, ts.Name, ts.BeatsPerBar, ts.BeatUnit)
	}
	return nil
}

func (ts TimeSignature) String() string {
	return ts.Name
}
