package market

import (
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// Bounds is the closed price interval a commodity must stay inside.
type Bounds struct {
	Min int
	Max int
}

var commodityBounds = map[shared.Commodity]Bounds{
	shared.CommodityTech: {Min: 1, Max: 200},
	shared.CommodityAgri: {Min: 1, Max: 150},
	shared.CommoditySalt: {Min: 60, Max: 150},
	shared.CommodityFuel: {Min: 120, Max: 250},
}

// BoundsFor returns the price interval of a commodity
func BoundsFor(c shared.Commodity) Bounds {
	b, ok := commodityBounds[c]
	if !ok {
		panic(fmt.Sprintf("market: no bounds for commodity %q", c))
	}
	return b
}

// Clamp pulls a value into the interval
func (b Bounds) Clamp(v int) int {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

func (b Bounds) Contains(v int) bool {
	return v >= b.Min && v <= b.Max
}

// Midpoint is the structural baseline of mined resources
func (b Bounds) Midpoint() int {
	return (b.Min + b.Max) / 2
}

func (b Bounds) String() string {
	return fmt.Sprintf("[%d,%d]", b.Min, b.Max)
}

// BaselinePrice is the structural price a commodity resets to after a ban.
// Tech and agri fall ten credits per level; mined resources sit at their midpoint.
func BaselinePrice(c shared.Commodity, techLevel, agriLevel int) int {
	b := BoundsFor(c)
	switch c {
	case shared.CommodityTech:
		return b.Clamp(100 - techLevel*10)
	case shared.CommodityAgri:
		return b.Clamp(100 - agriLevel*10)
	default:
		return b.Midpoint()
	}
}
