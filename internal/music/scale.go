package music

import (
	"fmt"
	"strings"
)

// ScaleKind names an interval pattern.
type ScaleKind string

const (
	Major      ScaleKind = "major"
	Minor      ScaleKind = "minor"
	Pentatonic ScaleKind = "pentatonic"
)

// Ascending semitone offsets from the root.
var scalePatterns = map[ScaleKind][]int{
	Major:      {0, 2, 4, 5, 7, 9, 11},
	Minor:      {0, 2, 3, 5, 7, 8, 10},
	Pentatonic: {0, 2, 4, 7, 9},
}

// ScaleKinds lists the supported kinds in display order.
func ScaleKinds() []ScaleKind {
	return []ScaleKind{Major, Minor, Pentatonic}
}

// Pattern returns a copy of the kind's interval pattern, or nil if the
// kind is unknown.
func (k ScaleKind) Pattern() []int {
	p, ok := scalePatterns[k]
	if !ok {
		return nil
	}
	out := make([]int, len(p))
	copy(out, p)
	return out
}

// ParseScaleKind resolves a kind name case-insensitively.
func ParseScaleKind(name string) (ScaleKind, error) {
	k := ScaleKind(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := scalePatterns[k]; !ok {
		return "", fmt.Errorf("%w: unknown scale type %q", ErrInvalidArgument, name)
	}
	return k, nil
}

// Scale is an ordered set of pitch classes following the pattern order
// applied to a root. It is not sorted.
type Scale []PitchClass

// GenerateScale applies kind's pattern to root, wrapping mod 12.
func GenerateScale(root PitchClass, kind ScaleKind) (Scale, error) {
	if !root.Valid() {
		return nil, fmt.Errorf("%w: root pitch class %d out of range", ErrInvalidArgument, int(root))
	}
	pattern, ok := scalePatterns[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown scale type %q", ErrInvalidArgument, string(kind))
	}
	scale := make(Scale, len(pattern))
	for i, interval := range pattern {
		scale[i] = PitchClass((int(root) + interval) % 12)
	}
	return scale, nil
}

// ScaleFromNames is GenerateScale for names such as ("F", "minor").
func ScaleFromNames(root, kind string) (Scale, error) {
	pc, err := ParsePitchClass(root)
	if err != nil {
		return nil, err
	}
	k, err := ParseScaleKind(kind)
	if err != nil {
		return nil, err
	}
	return GenerateScale(pc, k)
}

// Names spells each pitch class.
func (s Scale) Names() []string {
	out := make([]string, len(s))
	for i, pc := range s {
		out[i] = pc.String()
	}
	return out
}

// Validate rejects empty scales and out-of-range members.
func (s Scale) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty scale", ErrInvalidArgument)
	}
	for _, pc := range s {
		if !pc.Valid() {
			return fmt.Errorf("%w: pitch class %d out of range", ErrInvalidArgument, int(pc))
		}
	}
	return nil
}
