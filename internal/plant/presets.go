package plant

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

type Preset struct {
	Key        string     `json:"key" yaml:"key"`
	Name       string     `json:"name" yaml:"name"`
	Species    string     `json:"species" yaml:"species"`
	Icon       string     `json:"icon" yaml:"icon"`
	Default    bool       `json:"-" yaml:"default"`
	Conditions Conditions `json:"ideal_conditions" yaml:"conditions"`
}

var presets = mustLoadPresets(presetsYAML)

func LoadPresets(data []byte) ([]Preset, error) {
	var out []Preset
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	seen := make(map[string]bool, len(out))
	for _, p := range out {
		if p.Key == "" || seen[p.Key] {
			return nil, fmt.Errorf("preset %q: missing or duplicate key", p.Key)
		}
		seen[p.Key] = true
		if !IsKnownIcon(p.Icon) {
			return nil, fmt.Errorf("preset %q: unknown icon %q", p.Key, p.Icon)
		}
		if err := ValidateConditions(p.Conditions); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Key, err)
		}
	}
	return out, nil
}

func mustLoadPresets(data []byte) []Preset {
	out, err := LoadPresets(data)
	if err != nil {
		panic(err)
	}
	return out
}

func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

func FindPreset(key string) (Preset, bool) {
	for _, p := range presets {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}

// DefaultPresets are planted for an owner whose list is still empty.
func DefaultPresets() []Preset {
	var out []Preset
	for _, p := range presets {
		if p.Default {
			out = append(out, p)
		}
	}
	return out
}
