package plant

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrMalformedPayload = errors.New("plant service returned malformed data")
	ErrMissingSpecies   = errors.New("species is required")
	ErrInvalidRange     = errors.New("invalid ideal-condition range")
)

// DefaultIcon replaces icon tags outside the known set.
const DefaultIcon = "leaf.fill"

var knownIcons = map[string]bool{
	"leaf.fill":        true,
	"leaf.circle.fill": true,
	"flame.fill":       true,
	"drop.fill":        true,
	"tree.fill":        true,
	"bolt.fill":        true,
	"camera.macro":     true,
	"cloud.fill":       true,
}

// RangeError names the min/max pair that failed validation.
type RangeError struct {
	Pair string
	Min  float64
	Max  float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid %s range: min=%v max=%v", e.Pair, e.Min, e.Max)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

func IsKnownIcon(tag string) bool {
	return knownIcons[tag]
}

// NormalizeIcon keeps recognized tags and maps everything else to DefaultIcon.
func NormalizeIcon(tag string) string {
	tag = strings.TrimSpace(tag)
	if knownIcons[tag] {
		return tag
	}
	return DefaultIcon
}

// ValidateConditions checks every bound is finite and every min <= max.
func ValidateConditions(c Conditions) error {
	pairs := []struct {
		name     string
		min, max float64
	}{
		{"temperature", c.MinTemperature, c.MaxTemperature},
		{"humidity", c.MinHumidity, c.MaxHumidity},
		{"airQuality", c.MinAirQuality, c.MaxAirQuality},
	}

	for _, p := range pairs {
		if !finite(p.min) || !finite(p.max) || p.min > p.max {
			return &RangeError{Pair: p.name, Min: p.min, Max: p.max}
		}
	}
	return nil
}

// ValidateSearchResult turns a decoded lookup answer into a usable range.
func ValidateSearchResult(r SearchResult) (Validated, error) {
	species := strings.TrimSpace(r.Species)
	if species == "" {
		return Validated{}, ErrMissingSpecies
	}

	conditions := r.Conditions()
	if err := ValidateConditions(conditions); err != nil {
		return Validated{}, err
	}

	return Validated{
		Species:    species,
		Icon:       NormalizeIcon(r.Icon),
		Conditions: conditions,
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
