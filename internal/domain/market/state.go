package market

import (
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// State is the verbatim, serializable form of a Market. Save games store every
// counter rather than derived values.
type State struct {
	Listed    []shared.Commodity          `json:"listed"`
	Producing []shared.Commodity          `json:"producing"`
	Baseline  map[shared.Commodity]int    `json:"baseline"`
	Prices    map[shared.Commodity]int    `json:"prices"`
	Bans      map[shared.Commodity]int    `json:"bans"`
	Cooldowns map[shared.Commodity]int    `json:"cooldowns"`
	Stock     map[shared.Commodity]int    `json:"stock"`
	Volumes   map[shared.Commodity]Volume `json:"volumes"`
}

// Snapshot copies the market into a State value
func (m *Market) Snapshot() State {
	s := State{
		Baseline:  copyCounts(m.baseline),
		Prices:    copyCounts(m.prices),
		Bans:      copyCounts(m.bans),
		Cooldowns: copyCounts(m.cooldowns),
		Stock:     copyCounts(m.stock),
		Volumes:   make(map[shared.Commodity]Volume, len(m.volumes)),
	}
	for _, c := range shared.AllCommodities() {
		if m.listed[c] {
			s.Listed = append(s.Listed, c)
		}
		if m.producing[c] {
			s.Producing = append(s.Producing, c)
		}
	}
	for c, v := range m.volumes {
		s.Volumes[c] = v
	}
	return s
}

// RestoreMarket rebuilds a market from a State. Every commodity needs a price
// within its bound, bans must still have turns left and cooldowns cannot be
// negative.
func RestoreMarket(s State) (*Market, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	m := &Market{
		listed:    make(map[shared.Commodity]bool),
		producing: make(map[shared.Commodity]bool),
		baseline:  copyCounts(s.Baseline),
		prices:    copyCounts(s.Prices),
		bans:      copyCounts(s.Bans),
		freshBans: make(map[shared.Commodity]bool),
		cooldowns: copyCounts(s.Cooldowns),
		stock:     copyCounts(s.Stock),
		volumes:   make(map[shared.Commodity]Volume, len(s.Volumes)),
	}
	for _, c := range s.Listed {
		m.listed[c] = true
	}
	for _, c := range s.Producing {
		m.producing[c] = true
	}
	for c, v := range s.Volumes {
		m.volumes[c] = v
	}
	return m, nil
}

func (s State) validate() error {
	for _, c := range shared.AllCommodities() {
		price, ok := s.Prices[c]
		if !ok {
			return shared.NewValidationError("prices", fmt.Sprintf("missing price for %s", c))
		}
		if b := BoundsFor(c); !b.Contains(price) {
			return shared.NewValidationError("prices", fmt.Sprintf("%s price %d outside %s", c, price, b))
		}
	}
	for _, c := range append(append([]shared.Commodity{}, s.Listed...), s.Producing...) {
		if !c.IsValid() {
			return shared.NewValidationError("listed", fmt.Sprintf("unknown commodity %q", c))
		}
	}
	for c, turns := range s.Bans {
		if !c.IsValid() {
			return shared.NewValidationError("bans", fmt.Sprintf("unknown commodity %q", c))
		}
		if turns <= 0 {
			return shared.NewValidationError("bans", fmt.Sprintf("%s ban has %d turns left", c, turns))
		}
	}
	for c, turns := range s.Cooldowns {
		if turns < 0 {
			return shared.NewValidationError("cooldowns", fmt.Sprintf("%s cooldown is %d", c, turns))
		}
	}
	for c, units := range s.Stock {
		if units < 0 {
			return shared.NewValidationError("stock", fmt.Sprintf("%s stock is %d", c, units))
		}
	}
	return nil
}

func copyCounts(in map[shared.Commodity]int) map[shared.Commodity]int {
	out := make(map[shared.Commodity]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
