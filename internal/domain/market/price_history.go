package market

import (
	"errors"
	"math"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

var (
	ErrInvalidLocationName = errors.New("location name cannot be empty")
	ErrInvalidPrice        = errors.New("price cannot be negative")
	ErrInvalidTurn         = errors.New("turn cannot be negative")
)

// PriceRecord is one commodity's price at one location after a turn's update.
// This is an immutable entity - all fields are private with getters only.
type PriceRecord struct {
	turn      int
	location  string
	commodity shared.Commodity
	price     int
	banned    bool
}

// NewPriceRecord creates a price record with validation
func NewPriceRecord(turn int, location string, commodity shared.Commodity, price int, banned bool) (*PriceRecord, error) {
	if turn < 0 {
		return nil, ErrInvalidTurn
	}
	if location == "" {
		return nil, ErrInvalidLocationName
	}
	if !commodity.IsValid() {
		return nil, shared.ErrInvalidCommodity
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	return &PriceRecord{
		turn:      turn,
		location:  location,
		commodity: commodity,
		price:     price,
		banned:    banned,
	}, nil
}

func (r *PriceRecord) Turn() int                   { return r.turn }
func (r *PriceRecord) Location() string            { return r.location }
func (r *PriceRecord) Commodity() shared.Commodity { return r.commodity }
func (r *PriceRecord) Price() int                  { return r.price }
func (r *PriceRecord) Banned() bool                { return r.banned }

// PriceStats summarizes a series of records for one market/commodity pair
type PriceStats struct {
	Samples      int
	Mean         float64
	StdDeviation float64
	Min          int
	Max          int
	BanCount     int

	// MaxChange is the largest turn-over-turn move, as a percentage of the
	// earlier price
	MaxChange float64
}

// Summarize computes statistics over records ordered oldest first.
// Banned records count toward BanCount only.
func Summarize(records []*PriceRecord) PriceStats {
	var stats PriceStats
	var prices []int
	for _, r := range records {
		if r.banned {
			stats.BanCount++
			continue
		}
		prices = append(prices, r.price)
	}
	if len(prices) == 0 {
		return stats
	}

	stats.Samples = len(prices)
	stats.Min, stats.Max = prices[0], prices[0]
	sum := 0
	for i, p := range prices {
		sum += p
		stats.Min = min(stats.Min, p)
		stats.Max = max(stats.Max, p)
		if i > 0 && prices[i-1] > 0 {
			change := math.Abs(float64(p-prices[i-1])) / float64(prices[i-1]) * 100
			stats.MaxChange = math.Max(stats.MaxChange, change)
		}
	}
	stats.Mean = float64(sum) / float64(len(prices))

	variance := 0.0
	for _, p := range prices {
		d := float64(p) - stats.Mean
		variance += d * d
	}
	stats.StdDeviation = math.Sqrt(variance / float64(len(prices)))
	return stats
}
