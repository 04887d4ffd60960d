// Package tax computes the trade tax applied to every buy and sell.
//
// The rate is a pure function of rank, location type and building count. It
// is recomputed for each transaction and never cached, since rank and building
// count change between trades.
package tax

import (
	"github.com/shopspring/decimal"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/location"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/player"
)

const (
	BaseRate          = 0.05
	BuildingDeduction = 0.02
	MinRate           = 0.01
	MaxRate           = 0.25
)

var rankMultipliers = map[player.Rank]float64{
	player.RankCadet:        0.8,
	player.RankEnsign:       1.0,
	player.RankLieutenant:   1.2,
	player.RankCommander:    1.4,
	player.RankCaptain:      1.6,
	player.RankCommodore:    1.8,
	player.RankAdmiral:      2.0,
	player.RankFleetAdmiral: 2.4,
}

// RankMultiplier is the monotonically increasing step function over ranks
func RankMultiplier(r player.Rank) float64 {
	if m, ok := rankMultipliers[r]; ok {
		return m
	}
	if r > player.RankFleetAdmiral {
		return rankMultipliers[player.RankFleetAdmiral]
	}
	return rankMultipliers[player.RankCadet]
}

// Rate returns the tax fraction for a trade, clamped to [1%, 25%]
func Rate(rank player.Rank, locationType location.LocationType, buildingCount int) float64 {
	rate := BaseRate*RankMultiplier(rank)*locationType.TaxModifier() - float64(buildingCount)*BuildingDeduction
	if rate < MinRate {
		return MinRate
	}
	if rate > MaxRate {
		return MaxRate
	}
	return rate
}

// RateAt is Rate for a concrete location
func RateAt(rank player.Rank, loc *location.Location) float64 {
	return Rate(rank, loc.Type(), loc.BuildingCount())
}

// ratePrecision drops float noise such as 0.06000000000000001 before rounding money
const ratePrecision = 6

func rateDecimal(rate float64) decimal.Decimal {
	return decimal.NewFromFloat(rate).Round(ratePrecision)
}

// BuyCost is what the ship pays: quantity × price plus tax, rounded up
func BuyCost(qty, unitPrice int, rate float64) int {
	gross := decimal.NewFromInt(int64(qty)).Mul(decimal.NewFromInt(int64(unitPrice)))
	total := gross.Mul(decimal.NewFromInt(1).Add(rateDecimal(rate)))
	return int(total.Ceil().IntPart())
}

// SellProceeds is what the ship receives: quantity × price minus tax, rounded down
func SellProceeds(qty, unitPrice int, rate float64) int {
	gross := decimal.NewFromInt(int64(qty)).Mul(decimal.NewFromInt(int64(unitPrice)))
	total := gross.Mul(decimal.NewFromInt(1).Sub(rateDecimal(rate)))
	return int(total.Floor().IntPart())
}

// Amount is the tax portion of a trade worth qty × unitPrice
func Amount(qty, unitPrice int, rate float64) int {
	gross := decimal.NewFromInt(int64(qty)).Mul(decimal.NewFromInt(int64(unitPrice)))
	return int(gross.Mul(rateDecimal(rate)).Round(0).IntPart())
}
