package worldgen

import (
	"fmt"
	"strings"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/location"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/player"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

const (
	maxLevel      = 9
	minEfficiency = 20
	maxEfficiency = 100

	// Sampling frequency and octave layering for the level fields
	frequency   = 0.15
	octaves     = 3
	persistence = 0.5
)

// Params are the per-game inputs that are not part of the catalog
type Params struct {
	Seed          int64
	PlayerName    string
	StartingFunds int
	CargoCapacity int
	Clock         shared.Clock
	Metrics       common.MetricsRecorder
}

// fields holds one independent noise layer per derived attribute
type fields struct {
	tech       opensimplex.Noise
	agri       opensimplex.Noise
	efficiency opensimplex.Noise
	economy    opensimplex.Noise
}

func newFields(seed int64) fields {
	return fields{
		tech:       opensimplex.NewNormalized(seed),
		agri:       opensimplex.NewNormalized(seed + 1),
		efficiency: opensimplex.NewNormalized(seed + 2),
		economy:    opensimplex.NewNormalized(seed + 3),
	}
}

// Locations builds every catalog entry. The same seed always yields the same
// levels for entries that leave them unspecified.
func Locations(u Universe, seed int64) ([]*location.Location, error) {
	if err := u.Validate(); err != nil {
		return nil, err
	}
	f := newFields(seed)

	out := make([]*location.Location, 0, len(u.Locations))
	for _, e := range u.Locations {
		spec, err := f.spec(e)
		if err != nil {
			return nil, err
		}
		loc, err := location.NewLocation(spec)
		if err != nil {
			return nil, fmt.Errorf("location %q: %w", e.Name, err)
		}
		out = append(out, loc)
	}
	return out, nil
}

func (f fields) spec(e LocationEntry) (location.Spec, error) {
	kind, err := location.ParseLocationType(e.Type)
	if err != nil {
		return location.Spec{}, err
	}
	spec := location.Spec{
		Name:             e.Name,
		Type:             kind,
		TechLevel:        orSample(e.TechLevel, f.tech, e, 0, maxLevel),
		AgriLevel:        orSample(e.AgriLevel, f.agri, e, 0, maxLevel),
		MiningEfficiency: orSample(e.MiningEfficiency, f.efficiency, e, minEfficiency, maxEfficiency),
	}

	if e.Economy != "" {
		spec.Economy, err = market.ParseEconomyState(strings.ToUpper(e.Economy))
		if err != nil {
			return location.Spec{}, err
		}
	} else {
		spec.Economy = economyAt(f.economy, e.X, e.Y)
	}

	for _, name := range e.Buildings {
		b, err := location.ParseBuildingType(name)
		if err != nil {
			return location.Spec{}, err
		}
		spec.Buildings = append(spec.Buildings, b)
	}
	return spec, nil
}

func orSample(v *int, noise opensimplex.Noise, e LocationEntry, lo, hi int) int {
	if v != nil {
		return *v
	}
	return scale(octaveNoise(noise, e.X, e.Y), lo, hi)
}

// scale maps a normalized sample in [0,1] onto [lo,hi]
func scale(v float64, lo, hi int) int {
	n := lo + int(v*float64(hi-lo+1))
	if n > hi {
		return hi
	}
	if n < lo {
		return lo
	}
	return n
}

func economyAt(noise opensimplex.Noise, x, y float64) market.EconomyState {
	states := []market.EconomyState{
		market.EconomyDeclining, market.EconomyStable,
		market.EconomyFormative, market.EconomyBooming,
	}
	return states[scale(octaveNoise(noise, x, y), 0, len(states)-1)]
}

// octaveNoise layers several frequencies of normalized noise
func octaveNoise(noise opensimplex.Noise, x, y float64) float64 {
	total, amplitude, maxVal, freq := 0.0, 1.0, 0.0, frequency
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*freq, y*freq) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return total / maxVal
}

// NewGame generates the world, the ship and the profile, then opens a session
// docked at the catalog's start location
func NewGame(cfg simulation.Config, u Universe, p Params) (*simulation.Game, error) {
	locations, err := Locations(u, p.Seed)
	if err != nil {
		return nil, err
	}
	ship, err := ledger.NewShip(p.StartingFunds, p.CargoCapacity, p.Clock)
	if err != nil {
		return nil, err
	}
	name := p.PlayerName
	if name == "" {
		name = "Captain"
	}
	return simulation.NewGame(cfg, simulation.Setup{
		Locations: locations,
		Current:   u.Start,
		Ship:      ship,
		Profile:   player.NewProfile(name),
		Random:    shared.NewSeededRandom(uint64(p.Seed)),
		Clock:     p.Clock,
		Metrics:   p.Metrics,
	})
}
