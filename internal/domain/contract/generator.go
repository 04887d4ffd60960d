package contract

import (
	"slices"

	"github.com/google/uuid"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// GeneratorConfig tunes contract batches
type GeneratorConfig struct {
	MinBatch      int
	MaxBatch      int
	SpecialChance float64
}

// DefaultGeneratorConfig returns batches of 2-4 with a 30% special chance
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{MinBatch: 2, MaxBatch: 4, SpecialChance: 0.3}
}

// Board is what the generator may route contracts through
type Board struct {
	Locations []string
	// Commodities lists what each location can currently sell
	Commodities map[string][]shared.Commodity
}

const (
	cargoMinAmount    = 20
	cargoMaxAmount    = 100
	cargoMinDuration  = 6
	cargoMaxDuration  = 15
	cargoBaseMoney    = 500
	cargoMoneyPerUnit = 15
	cargoPenalty      = 5

	passengerMinCount    = 2
	passengerMaxCount    = 10
	passengerMinSat      = 50
	passengerMaxSat      = 80
	passengerMinDuration = 5
	passengerMaxDuration = 12
	passengerBaseMoney   = 300
	passengerMoneyEach   = 100
	passengerPenalty     = 3

	specialMinAmount   = 100
	specialMaxAmount   = 200
	specialMinDuration = 12
	specialMaxDuration = 20
	specialMultiplier  = 3
	specialReputation  = 20
	specialPlotPoints  = 3
	specialPenalty     = 10
	specialDestCount   = 2
)

// "" accepts any class
var passengerClasses = []string{"", "E", "B", "F"}

// Generator produces offer batches from a random source
type Generator struct {
	cfg   GeneratorConfig
	rng   shared.RandomSource
	newID func() string
}

func NewGenerator(cfg GeneratorConfig, rng shared.RandomSource) *Generator {
	if cfg.MaxBatch < cfg.MinBatch {
		cfg.MaxBatch = cfg.MinBatch
	}
	return &Generator{cfg: cfg, rng: rng, newID: uuid.NewString}
}

// Batch creates a new set of offered contracts. A board with fewer than two
// locations yields nothing.
func (g *Generator) Batch(turn int, board Board, specialUnlocked bool) []*Contract {
	locations := slices.Clone(board.Locations)
	slices.Sort(locations)
	if len(locations) < 2 {
		return nil
	}

	var sources []string
	for _, loc := range locations {
		if len(board.Commodities[loc]) > 0 {
			sources = append(sources, loc)
		}
	}

	size := g.rng.IntRange(g.cfg.MinBatch, g.cfg.MaxBatch)
	batch := make([]*Contract, 0, size)

	if specialUnlocked && len(sources) > 0 && g.rng.Float64() < g.cfg.SpecialChance {
		if c := g.special(turn, locations, sources, board); c != nil {
			batch = append(batch, c)
		}
	}

	for len(batch) < size {
		var c *Contract
		if len(sources) > 0 && g.rng.IntRange(0, 1) == 0 {
			c = g.cargo(turn, locations, sources, board)
		} else {
			c = g.passenger(turn, locations)
		}
		if c == nil {
			break
		}
		batch = append(batch, c)
	}
	return batch
}

func (g *Generator) cargo(turn int, locations, sources []string, board Board) *Contract {
	src := pick(g.rng, sources)
	commodity := pick(g.rng, board.Commodities[src])
	dst := pick(g.rng, without(locations, src))
	amount := g.rng.IntRange(cargoMinAmount, cargoMaxAmount)

	req := CargoRequirement{Commodity: commodity, Amount: amount, Source: src, Destination: dst}
	reward := RewardBundle{
		Money:      cargoBaseMoney + amount*cargoMoneyPerUnit,
		Reputation: 5 + amount/20,
	}
	return g.build(req, g.rng.IntRange(cargoMinDuration, cargoMaxDuration), reward, cargoPenalty, turn)
}

func (g *Generator) passenger(turn int, locations []string) *Contract {
	count := g.rng.IntRange(passengerMinCount, passengerMaxCount)
	req := PassengerRequirement{
		ClassCode:       pick(g.rng, passengerClasses),
		Count:           count,
		MinSatisfaction: g.rng.IntRange(passengerMinSat, passengerMaxSat),
		Destination:     pick(g.rng, locations),
	}
	reward := RewardBundle{
		Money:      passengerBaseMoney + count*passengerMoneyEach,
		Reputation: 3 + count/2,
	}
	return g.build(req, g.rng.IntRange(passengerMinDuration, passengerMaxDuration), reward, passengerPenalty, turn)
}

func (g *Generator) special(turn int, locations, sources []string, board Board) *Contract {
	src := pick(g.rng, sources)
	commodity := pick(g.rng, board.Commodities[src])
	candidates := without(locations, src)

	var destinations []string
	for len(destinations) < specialDestCount && len(candidates) > 0 {
		d := pick(g.rng, candidates)
		destinations = append(destinations, d)
		candidates = without(candidates, d)
	}
	slices.Sort(destinations)

	amount := g.rng.IntRange(specialMinAmount, specialMaxAmount)
	req := SpecialRequirement{Commodity: commodity, Amount: amount, Source: src, Destinations: destinations}
	reward := RewardBundle{
		Money:      (cargoBaseMoney + amount*cargoMoneyPerUnit) * specialMultiplier,
		Reputation: specialReputation,
		PlotPoints: specialPlotPoints,
	}
	return g.build(req, g.rng.IntRange(specialMinDuration, specialMaxDuration), reward, specialPenalty, turn)
}

func (g *Generator) build(req Requirement, duration int, reward RewardBundle, penalty, turn int) *Contract {
	c, err := NewContract(g.newID(), req, duration, reward, penalty, turn)
	if err != nil {
		// generated parameters are always in range
		shared.InvariantViolation("generated contract rejected: %v", err)
	}
	return c
}

func pick[T any](rng shared.RandomSource, items []T) T {
	return items[rng.IntRange(0, len(items)-1)]
}

func without(items []string, drop string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it != drop {
			out = append(out, it)
		}
	}
	return out
}
