package market

import (
	"fmt"
	"math"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// EconomyState represents the macro trend of a location's economy
type EconomyState string

const (
	EconomyStable    EconomyState = "STABLE"
	EconomyBooming   EconomyState = "BOOMING"
	EconomyDeclining EconomyState = "DECLINING"
	EconomyFormative EconomyState = "FORMATIVE"
)

// IsValid checks if the economy state is known
func (e EconomyState) IsValid() bool {
	switch e {
	case EconomyStable, EconomyBooming, EconomyDeclining, EconomyFormative:
		return true
	default:
		return false
	}
}

// ParseEconomyState parses a string into an EconomyState
func ParseEconomyState(s string) (EconomyState, error) {
	e := EconomyState(s)
	if !e.IsValid() {
		return "", fmt.Errorf("invalid economy state: %s", s)
	}
	return e, nil
}

const (
	MinDifficulty = 0
	MaxDifficulty = 2

	// stockExchangeMaxGain caps upward moves where a stock exchange operates
	stockExchangeMaxGain = 2

	formativeVolatility = 1.2

	MinBanTurns = 2
	MaxBanTurns = 4
)

// volatility is the random-walk half-width per difficulty level
var volatility = [MaxDifficulty + 1]int{3, 5, 8}

// Conditions are the per-turn inputs a location feeds its market.
type Conditions struct {
	Difficulty    int
	Economy       EconomyState
	StockExchange bool
}

// Validate checks the difficulty level and economy state
func (c Conditions) Validate() error {
	if c.Difficulty < MinDifficulty || c.Difficulty > MaxDifficulty {
		return shared.NewValidationError("difficulty", fmt.Sprintf("must be in [%d,%d], got %d", MinDifficulty, MaxDifficulty, c.Difficulty))
	}
	if !c.Economy.IsValid() {
		return shared.NewValidationError("economy", fmt.Sprintf("unknown state %q", c.Economy))
	}
	return nil
}

// magnitude is the random-walk half-width for a commodity under these conditions
func (c Conditions) magnitude() int {
	m := volatility[c.Difficulty]
	if c.Economy == EconomyFormative {
		m = int(math.Round(float64(m) * formativeVolatility))
	}
	return m
}

// trend is the deterministic economy push added on top of the random draw
func (c Conditions) trend(commodity shared.Commodity) int {
	var tech, agri int
	switch c.Economy {
	case EconomyBooming:
		tech, agri = 5, 3
	case EconomyDeclining:
		tech, agri = -5, -3
	}
	switch commodity {
	case shared.CommodityTech:
		return tech
	case shared.CommodityAgri:
		return agri
	default:
		return 0
	}
}

// Delta draws the full price change for one commodity this turn
func (c Conditions) Delta(commodity shared.Commodity, rng shared.RandomSource) int {
	m := c.magnitude()
	delta := rng.IntRange(-m, m) + c.trend(commodity)
	if c.StockExchange && delta > stockExchangeMaxGain {
		delta = stockExchangeMaxGain
	}
	return delta
}
