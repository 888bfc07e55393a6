// Package presets loads named generation parameter sets from YAML.
package presets

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/togramago/melodygen/internal/generator"
	"github.com/togramago/melodygen/internal/music"
	"github.com/togramago/melodygen/pkg/embedded"
)

// ErrNotFound is returned for an unknown preset name. It is always wrapped
// together with music.ErrInvalidArgument.
var ErrNotFound = errors.New("preset not found")

// Preset is a named parameter set. Fields the file omits keep the
// generator defaults.
type Preset struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Params      generator.Params `json:"params"`
}

type presetFile struct {
	Presets []struct {
		Name        string    `yaml:"name"`
		Description string    `yaml:"description"`
		Params      yaml.Node `yaml:"params"`
	} `yaml:"presets"`
}

// Set is an ordered, read-only collection of presets.
type Set struct {
	presets []Preset
	byName  map[string]int
}

// Default returns the presets embedded in the binary.
func Default() (*Set, error) {
	return Parse(embedded.PresetsYAML)
}

// Load reads presets from path, or the embedded defaults when path is empty.
func Load(path string) (*Set, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	return Parse(data)
}

// Parse decodes a presets document. Every preset must have a unique name
// and valid parameters.
func Parse(data []byte) (*Set, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	s := &Set{byName: make(map[string]int, len(f.Presets))}
	for _, raw := range f.Presets {
		if raw.Name == "" {
			return nil, fmt.Errorf("%w: preset without a name", music.ErrInvalidArgument)
		}
		if _, dup := s.byName[raw.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate preset %q", music.ErrInvalidArgument, raw.Name)
		}

		params := generator.DefaultParams()
		if !raw.Params.IsZero() {
			if err := raw.Params.Decode(&params); err != nil {
				return nil, fmt.Errorf("preset %q: %w", raw.Name, err)
			}
		}
		if err := params.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", raw.Name, err)
		}

		s.byName[raw.Name] = len(s.presets)
		s.presets = append(s.presets, Preset{Name: raw.Name, Description: raw.Description, Params: params})
	}
	return s, nil
}

// List returns the presets in file order.
func (s *Set) List() []Preset {
	out := make([]Preset, len(s.presets))
	copy(out, s.presets)
	return out
}

// Get looks a preset up by name.
func (s *Set) Get(name string) (Preset, error) {
	i, ok := s.byName[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %w: %q", music.ErrInvalidArgument, ErrNotFound, name)
	}
	return s.presets[i], nil
}

// Params returns the preset's parameters, or the generator defaults when
// name is empty.
func (s *Set) Params(name string) (generator.Params, error) {
	if name == "" {
		return generator.DefaultParams(), nil
	}
	p, err := s.Get(name)
	if err != nil {
		return generator.Params{}, err
	}
	return p.Params, nil
}
