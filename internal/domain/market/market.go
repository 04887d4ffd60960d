package market

import (
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// Side is the direction of a trade from the ship's perspective
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Volume is the market's own bookkeeping of trades in one commodity
type Volume struct {
	Bought        int
	Sold          int
	LastTradeTurn int
}

// PriceChange describes what UpdatePrices did to one commodity
type PriceChange struct {
	Commodity shared.Commodity
	Old       int
	New       int
	Banned    bool
	BanTurns  int
}

// Market holds the current prices of one location.
// It is embedded in its Location and mutated only through its own methods
// and the production system.
type Market struct {
	listed    map[shared.Commodity]bool
	producing map[shared.Commodity]bool
	baseline  map[shared.Commodity]int
	prices    map[shared.Commodity]int
	bans      map[shared.Commodity]int
	freshBans map[shared.Commodity]bool
	cooldowns map[shared.Commodity]int
	stock     map[shared.Commodity]int
	volumes   map[shared.Commodity]Volume
}

// NewMarket creates a market listing the given commodities at their baseline prices
func NewMarket(listed []shared.Commodity, techLevel, agriLevel int) *Market {
	m := &Market{
		listed:    make(map[shared.Commodity]bool),
		producing: make(map[shared.Commodity]bool),
		baseline:  make(map[shared.Commodity]int),
		prices:    make(map[shared.Commodity]int),
		bans:      make(map[shared.Commodity]int),
		freshBans: make(map[shared.Commodity]bool),
		cooldowns: make(map[shared.Commodity]int),
		stock:     make(map[shared.Commodity]int),
		volumes:   make(map[shared.Commodity]Volume),
	}
	for _, c := range listed {
		m.listed[c] = true
	}
	for _, c := range shared.AllCommodities() {
		base := BaselinePrice(c, techLevel, agriLevel)
		m.baseline[c] = base
		m.prices[c] = base
	}
	return m
}

// Queries

// TradeCheck returns nil if the commodity can be traded right now, otherwise the reason
func (m *Market) TradeCheck(c shared.Commodity) error {
	if !c.IsValid() || !m.listed[c] {
		return fmt.Errorf("%w: %s is not traded here", shared.ErrInvalidCommodity, c)
	}
	if turns, banned := m.bans[c]; banned {
		return shared.NewCommodityBannedError(c, turns)
	}
	if c.IsMined() && !m.producing[c] {
		return fmt.Errorf("%w: no %s platform", shared.ErrNoPlatformAvailable, c)
	}
	return nil
}

// CanTrade reports whether the commodity is listed, unbanned and, for mined goods, produced
func (m *Market) CanTrade(c shared.Commodity) bool {
	return m.TradeCheck(c) == nil
}

// Price returns the current price or the reason it cannot be quoted
func (m *Market) Price(c shared.Commodity) (int, error) {
	if err := m.TradeCheck(c); err != nil {
		return 0, err
	}
	return m.prices[c], nil
}

// IsBanned reports whether trading in the commodity is suspended
func (m *Market) IsBanned(c shared.Commodity) bool {
	_, banned := m.bans[c]
	return banned
}

// BanTurnsRemaining returns the countdown of an active ban (0 when not banned)
func (m *Market) BanTurnsRemaining(c shared.Commodity) int {
	return m.bans[c]
}

func (m *Market) Baseline(c shared.Commodity) int {
	return m.baseline[c]
}

func (m *Market) IsListed(c shared.Commodity) bool {
	return m.listed[c]
}

func (m *Market) IsProducing(c shared.Commodity) bool {
	return m.producing[c]
}

func (m *Market) Stock(c shared.Commodity) int {
	return m.stock[c]
}

func (m *Market) Volume(c shared.Commodity) Volume {
	return m.volumes[c]
}

// Cooldown returns the production countdown and whether it is armed
func (m *Market) Cooldown(c shared.Commodity) (int, bool) {
	v, ok := m.cooldowns[c]
	return v, ok
}

// Per-turn phases

// UpdatePrices applies one bounded random-walk step to every tradeable commodity.
// A step that would take a price to zero or below bans the commodity instead.
func (m *Market) UpdatePrices(cond Conditions, rng shared.RandomSource) ([]PriceChange, error) {
	if err := cond.Validate(); err != nil {
		return nil, err
	}

	var changes []PriceChange
	for _, c := range shared.AllCommodities() {
		if !m.CanTrade(c) {
			continue
		}
		old := m.prices[c]
		next := old + cond.Delta(c, rng)
		if next <= 0 {
			turns := rng.IntRange(MinBanTurns, MaxBanTurns)
			m.bans[c] = turns
			m.freshBans[c] = true
			changes = append(changes, PriceChange{Commodity: c, Old: old, New: old, Banned: true, BanTurns: turns})
			continue
		}
		m.prices[c] = BoundsFor(c).Clamp(next)
		m.assertInBounds(c)
		changes = append(changes, PriceChange{Commodity: c, Old: old, New: m.prices[c]})
	}
	return changes, nil
}

// DecayBans counts every ban down by one turn. Bans imposed during this turn's
// price update are skipped so a ban of N turns lasts N full turn advances.
// Lifted commodities reset to their baseline price.
func (m *Market) DecayBans() []shared.Commodity {
	var lifted []shared.Commodity
	for _, c := range shared.AllCommodities() {
		turns, banned := m.bans[c]
		if !banned || m.freshBans[c] {
			continue
		}
		turns--
		if turns < 0 {
			shared.InvariantViolation("market: %s ban counter went negative", c)
		}
		if turns == 0 {
			delete(m.bans, c)
			m.prices[c] = m.baseline[c]
			lifted = append(lifted, c)
			continue
		}
		m.bans[c] = turns
	}
	m.freshBans = make(map[shared.Commodity]bool)
	return lifted
}

// DecayCooldowns counts every armed production cooldown down by exactly one
func (m *Market) DecayCooldowns() {
	for _, c := range shared.MinedCommodities() {
		if v, ok := m.cooldowns[c]; ok && v > 0 {
			m.cooldowns[c] = v - 1
		}
	}
}

// Production hooks

// EnableProduction marks a mined resource as tradeable once a platform exists
func (m *Market) EnableProduction(c shared.Commodity) {
	m.producing[c] = true
}

// ArmCooldown starts the production gate for a resource if it is not already running
func (m *Market) ArmCooldown(c shared.Commodity, interval int) {
	if _, ok := m.cooldowns[c]; !ok {
		m.cooldowns[c] = interval
	}
}

// CooldownReady reports whether an armed production gate has run out
func (m *Market) CooldownReady(c shared.Commodity) bool {
	v, ok := m.cooldowns[c]
	return ok && v == 0
}

func (m *Market) ResetCooldown(c shared.Commodity, interval int) {
	m.cooldowns[c] = interval
}

// RegeneratePrice redraws a produced resource's price uniformly inside its bound
func (m *Market) RegeneratePrice(c shared.Commodity, rng shared.RandomSource) int {
	b := BoundsFor(c)
	m.prices[c] = rng.IntRange(b.Min, b.Max)
	m.assertInBounds(c)
	return m.prices[c]
}

func (m *Market) AddStock(c shared.Commodity, units int) {
	m.stock[c] += units
}

// RecordTrade books a completed trade into the market's volume counters
func (m *Market) RecordTrade(side Side, c shared.Commodity, qty, turn int) {
	v := m.volumes[c]
	switch side {
	case SideBuy:
		v.Bought += qty
	case SideSell:
		v.Sold += qty
	}
	v.LastTradeTurn = turn
	m.volumes[c] = v
}

func (m *Market) assertInBounds(c shared.Commodity) {
	if b := BoundsFor(c); !b.Contains(m.prices[c]) {
		shared.InvariantViolation("market: %s price %d escaped bounds %s", c, m.prices[c], b)
	}
}
