package worldgen

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/location"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
)

//go:embed universe.yaml
var defaultUniverse []byte

// Universe is the catalog of locations a new game is generated from
type Universe struct {
	Name      string          `yaml:"name"`
	Start     string          `yaml:"start"`
	Locations []LocationEntry `yaml:"locations"`
}

// LocationEntry describes one location. Nil levels are filled from noise
// sampled at (X, Y).
type LocationEntry struct {
	Name             string   `yaml:"name"`
	Type             string   `yaml:"type"`
	X                float64  `yaml:"x"`
	Y                float64  `yaml:"y"`
	TechLevel        *int     `yaml:"tech_level,omitempty"`
	AgriLevel        *int     `yaml:"agri_level,omitempty"`
	Economy          string   `yaml:"economy,omitempty"`
	MiningEfficiency *int     `yaml:"mining_efficiency,omitempty"`
	Buildings        []string `yaml:"buildings,omitempty"`
}

// DefaultUniverse returns the built-in catalog
func DefaultUniverse() (Universe, error) {
	return ParseUniverse(defaultUniverse)
}

// LoadUniverse reads a catalog from disk; an empty path selects the built-in one
func LoadUniverse(path string) (Universe, error) {
	if path == "" {
		return DefaultUniverse()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Universe{}, fmt.Errorf("failed to read universe file: %w", err)
	}
	u, err := ParseUniverse(raw)
	if err != nil {
		return Universe{}, fmt.Errorf("%s: %w", path, err)
	}
	return u, nil
}

// ParseUniverse decodes and validates a YAML catalog
func ParseUniverse(raw []byte) (Universe, error) {
	var u Universe
	if err := yaml.Unmarshal(raw, &u); err != nil {
		return Universe{}, fmt.Errorf("invalid universe yaml: %w", err)
	}
	if err := u.Validate(); err != nil {
		return Universe{}, err
	}
	return u, nil
}

// Validate checks names are unique, types and economies parse, and the
// start location exists
func (u Universe) Validate() error {
	if len(u.Locations) == 0 {
		return fmt.Errorf("universe has no locations")
	}
	seen := make(map[string]bool, len(u.Locations))
	for i, e := range u.Locations {
		if e.Name == "" {
			return fmt.Errorf("location %d: name is required", i)
		}
		if seen[e.Name] {
			return fmt.Errorf("duplicate location %q", e.Name)
		}
		seen[e.Name] = true

		if _, err := location.ParseLocationType(e.Type); err != nil {
			return fmt.Errorf("location %q: %w", e.Name, err)
		}
		if e.Economy != "" {
			if _, err := market.ParseEconomyState(strings.ToUpper(e.Economy)); err != nil {
				return fmt.Errorf("location %q: %w", e.Name, err)
			}
		}
		for _, b := range e.Buildings {
			if _, err := location.ParseBuildingType(b); err != nil {
				return fmt.Errorf("location %q: %w", e.Name, err)
			}
		}
	}
	if u.Start != "" && !seen[u.Start] {
		return fmt.Errorf("start location %q is not in the catalog", u.Start)
	}
	return nil
}
