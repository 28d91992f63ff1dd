package vehicle

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var defaultPresetsYAML []byte

// Preset is a named car with its handling
type Preset struct {
	Name   string `yaml:"name" json:"name"`
	Make   string `yaml:"make" json:"make"`
	Model  string `yaml:"model" json:"model"`
	Year   int    `yaml:"year" json:"year"`
	Tuning Tuning `yaml:"tuning" json:"tuning"`
}

// Label formats the preset for menus
func (p Preset) Label() string {
	return fmt.Sprintf("%s %s (%d) - top %.0f, brake %.0f", p.Make, p.Model, p.Year, p.Tuning.MaxSpeed, p.Tuning.Braking)
}

type presetFile struct {
	Presets []Preset `yaml:"presets"`
}

// LoadPresets decodes a YAML preset list and validates every entry.
// Fields missing from an entry's tuning fall back to DefaultTuning.
func LoadPresets(r io.Reader) ([]Preset, error) {
	var raw struct {
		Presets []yaml.Node `yaml:"presets"`
	}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}

	presets := make([]Preset, 0, len(raw.Presets))
	seen := make(map[string]bool, len(raw.Presets))
	for i := range raw.Presets {
		p := Preset{Tuning: DefaultTuning()}
		if err := raw.Presets[i].Decode(&p); err != nil {
			return nil, fmt.Errorf("decode preset %d: %w", i, err)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("preset %d has no name", i)
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
		if err := p.Tuning.Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		presets = append(presets, p)
	}
	return presets, nil
}

// DefaultPresets returns the presets shipped with the game
func DefaultPresets() []Preset {
	presets, err := LoadPresets(bytes.NewReader(defaultPresetsYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded presets: %v", err))
	}
	return presets
}

// FindPreset looks a preset up by name
func FindPreset(presets []Preset, name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}
