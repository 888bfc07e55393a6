package music

import (
	"fmt"
	"strconv"
	"strings"
)

// PitchClass indexes the chromatic table, 0 (C) to 11 (B).
type PitchClass int

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteNames returns the chromatic table in order.
func NoteNames() []string {
	out := make([]string, len(noteNames))
	copy(out, noteNames[:])
	return out
}

func (pc PitchClass) Valid() bool {
	return pc >= 0 && pc < 12
}

func (pc PitchClass) String() string {
	if !pc.Valid() {
		return fmt.Sprintf("PitchClass(%d)", int(pc))
	}
	return noteNames[pc]
}

// ParsePitchClass resolves a sharp-spelled note name such as "F#".
func ParsePitchClass(name string) (PitchClass, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range noteNames {
		if n == key {
			return PitchClass(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown root note %q", ErrInvalidArgument, name)
}

// Pitch is a pitch class in a specific octave.
type Pitch struct {
	Class  PitchClass
	Octave int
}

// String spells the pitch as letter, optional sharp and octave ("F#4").
func (p Pitch) String() string {
	return p.Class.String() + strconv.Itoa(p.Octave)
}

// MIDI returns the MIDI note number, C4 = 60.
func (p Pitch) MIDI() int {
	return (p.Octave+1)*12 + int(p.Class)
}

func (p Pitch) MarshalText() ([]byte, error) {
	if !p.Class.Valid() {
		return nil, fmt.Errorf("%w: pitch class %d", ErrInvalidArgument, int(p.Class))
	}
	return []byte(p.String()), nil
}

func (p *Pitch) UnmarshalText(text []byte) error {
	parsed, err := ParsePitch(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePitch parses spellings like "C4", "F#3" or "a#-1".
func ParsePitch(s string) (Pitch, error) {
	s = strings.TrimSpace(s)
	split := 1
	if len(s) > 1 && s[1] == '#' {
		split = 2
	}
	if len(s) <= split {
		return Pitch{}, fmt.Errorf("%w: malformed pitch %q", ErrInvalidArgument, s)
	}
	pc, err := ParsePitchClass(s[:split])
	if err != nil {
		return Pitch{}, err
	}
	octave, err := strconv.Atoi(s[split:])
	if err != nil {
		return Pitch{}, fmt.Errorf("%w: malformed octave in %q", ErrInvalidArgument, s)
	}
	return Pitch{Class: pc, Octave: octave}, nil
}
