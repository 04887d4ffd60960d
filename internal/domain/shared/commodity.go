package shared

import (
	"fmt"
	"strings"
)

// Commodity is one of the four tradeable goods.
type Commodity string

const (
	CommodityTech Commodity = "TECH"
	CommodityAgri Commodity = "AGRI"
	CommoditySalt Commodity = "SALT"
	CommodityFuel Commodity = "FUEL"
)

// AllCommodities returns the commodities in their fixed iteration order.
// Every per-turn loop walks this slice so runs are reproducible per seed.
func AllCommodities() []Commodity {
	return []Commodity{CommodityTech, CommodityAgri, CommoditySalt, CommodityFuel}
}

// MinedCommodities returns the commodities that only exist where a platform extracts them.
func MinedCommodities() []Commodity {
	return []Commodity{CommoditySalt, CommodityFuel}
}

// IsMined reports whether the commodity comes from extraction platforms.
func (c Commodity) IsMined() bool {
	return c == CommoditySalt || c == CommodityFuel
}

// IsValid checks if the commodity is one of the known goods
func (c Commodity) IsValid() bool {
	switch c {
	case CommodityTech, CommodityAgri, CommoditySalt, CommodityFuel:
		return true
	default:
		return false
	}
}

func (c Commodity) String() string {
	return string(c)
}

// ParseCommodity accepts any casing ("salt", "SALT").
func ParseCommodity(s string) (Commodity, error) {
	c := Commodity(strings.ToUpper(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCommodity, s)
	}
	return c, nil
}
