package music

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Tolerance is the slack allowed when comparing note lengths.
const Tolerance = 0.001

// Duration is a note value from the fixed catalogue.
// Lengths are in beats (quarter note = 1, whole note = 4).
type Duration int

const (
	Whole Duration = iota
	Half
	Quarter
	Eighth
	Sixteenth
	ThirtySecond
)

type durationInfo struct {
	name   string
	label  string
	tag    string
	length float64
}

// Catalogue order is longest first.
var durationTable = [...]durationInfo{
	Whole:        {name: "1", label: "whole", tag: "w", length: 4},
	Half:         {name: "1/2", label: "half", tag: "h", length: 2},
	Quarter:      {name: "1/4", label: "quarter", tag: "q", length: 1},
	Eighth:       {name: "1/8", label: "eighth", tag: "8", length: 0.5},
	Sixteenth:    {name: "1/16", label: "sixteenth", tag: "16", length: 0.25},
	ThirtySecond: {name: "1/32", label: "thirty-second", tag: "32", length: 0.125},
}

// Valid reports whether d is a catalogue entry.
func (d Duration) Valid() bool {
	return d >= Whole && d <= ThirtySecond
}

// Length returns the duration in beats. Invalid values have length 0.
func (d Duration) Length() float64 {
	if !d.Valid() {
		return 0
	}
	return durationTable[d].length
}

// String returns the catalogue name ("1/4").
func (d Duration) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Duration(%d)", int(d))
	}
	return durationTable[d].name
}

// Label returns the word form ("quarter").
func (d Duration) Label() string {
	if !d.Valid() {
		return ""
	}
	return durationTable[d].label
}

// Tag returns the notation renderer's duration code ("q").
func (d Duration) Tag() string {
	if !d.Valid() {
		return ""
	}
	return durationTable[d].tag
}

func (d Duration) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: duration %d", ErrInvalidArgument, int(d))
	}
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseDuration(name)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// AllDurations returns the catalogue, longest first.
func AllDurations() []Duration {
	out := make([]Duration, 0, len(durationTable))
	for d := Whole; d <= ThirtySecond; d++ {
		out = append(out, d)
	}
	return out
}

// DurationsAtMost returns the catalogue entries no longer than max,
// in catalogue order.
func DurationsAtMost(max Duration) []Duration {
	if !max.Valid() {
		return nil
	}
	limit := max.Length()
	var out []Duration
	for _, d := range AllDurations() {
		if d.Length() <= limit {
			out = append(out, d)
		}
	}
	return out
}

// ParseDuration accepts a catalogue name ("1/8") or its label ("eighth").
func ParseDuration(name string) (Duration, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for d, info := range durationTable {
		if key == info.name || key == info.label {
			return Duration(d), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown duration %q", ErrInvalidArgument, name)
}

// LengthOf returns the length of a named duration.
func LengthOf(name string) (float64, error) {
	d, err := ParseDuration(name)
	if err != nil {
		return 0, err
	}
	return d.Length(), nil
}

// DurationOf finds the catalogue entry whose length is within Tolerance
// of length.
func DurationOf(length float64) (Duration, bool) {
	for _, d := range AllDurations() {
		if math.Abs(d.Length()-length) < Tolerance {
			return d, true
		}
	}
	return 0, false
}
