package production

import (
	"fmt"
	"math"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

const (
	minBaseOutput = 10
	maxBaseOutput = 20

	minPlatformCapacity = 20
	maxPlatformCapacity = 50

	minDepositSize = 50
	maxDepositSize = 200
)

// Platform is a constructed extractor for one mined resource.
// Efficiency is a snapshot of the location's efficiency at build time.
type Platform struct {
	Resource   shared.Commodity `json:"resource"`
	Efficiency int              `json:"efficiency"`
	Capacity   int              `json:"capacity"`
}

// Output is what one platform delivered into the market on a production turn
type Output struct {
	Resource shared.Commodity
	Units    int
	NewPrice int
}

// Site is the extraction side of a location: discovered deposits and the
// platforms built on them.
type Site struct {
	efficiency int
	multiplier float64
	deposits   map[shared.Commodity]int
	platforms  []Platform
}

// NewSite creates a site with no deposits. Efficiency must be in [0,100].
func NewSite(efficiency int, multiplier float64) (*Site, error) {
	if efficiency < 0 || efficiency > 100 {
		return nil, shared.NewValidationError("mining_efficiency", fmt.Sprintf("must be in [0,100], got %d", efficiency))
	}
	if multiplier < 0 {
		return nil, shared.NewValidationError("mining_multiplier", "cannot be negative")
	}
	return &Site{
		efficiency: efficiency,
		multiplier: multiplier,
		deposits:   make(map[shared.Commodity]int),
	}, nil
}

func (s *Site) Efficiency() int { return s.efficiency }

// Deposit returns the remaining units of a discovered resource
func (s *Site) Deposit(resource shared.Commodity) int {
	return s.deposits[resource]
}

// Platforms returns a copy of the platform list
func (s *Site) Platforms() []Platform {
	out := make([]Platform, len(s.platforms))
	copy(out, s.platforms)
	return out
}

// PlatformCount returns how many platforms extract the resource
func (s *Site) PlatformCount(resource shared.Commodity) int {
	n := 0
	for _, p := range s.platforms {
		if p.Resource == resource {
			n++
		}
	}
	return n
}

// MiningOutput is the per-platform yield of one production turn:
// a base draw in [10,20] scaled by location efficiency, truncated.
func MiningOutput(efficiency int, rng shared.RandomSource) int {
	base := rng.IntRange(minBaseOutput, maxBaseOutput)
	return base * efficiency / 100
}

// Discover surveys for a mined resource. The survey succeeds with probability
// equal to the mining efficiency percentage and returns the units found
// (0 when nothing was found).
func (s *Site) Discover(resource shared.Commodity, rng shared.RandomSource) (int, error) {
	if !resource.IsMined() {
		return 0, fmt.Errorf("%w: %s cannot be mined", shared.ErrInvalidCommodity, resource)
	}
	if rng.Float64()*100 >= float64(s.efficiency) {
		return 0, nil
	}
	size := rng.IntRange(minDepositSize, maxDepositSize)
	found := int(math.Round(float64(size) * s.multiplier))
	if found <= 0 {
		return 0, nil
	}
	s.deposits[resource] += found
	return found, nil
}

// BuildPlatform erects a platform on a discovered deposit. The deposit shrinks
// by the platform's capacity (never below zero) and the market starts
// producing the resource. Platforms of one resource share a single cooldown.
func (s *Site) BuildPlatform(resource shared.Commodity, m *market.Market, cooldown int, rng shared.RandomSource) (Platform, error) {
	if !resource.IsMined() {
		return Platform{}, fmt.Errorf("%w: %s cannot be mined", shared.ErrInvalidCommodity, resource)
	}
	remaining := s.deposits[resource]
	if remaining <= 0 {
		return Platform{}, fmt.Errorf("%w: %s", shared.ErrNoDeposit, resource)
	}

	p := Platform{
		Resource:   resource,
		Efficiency: s.efficiency,
		Capacity:   rng.IntRange(minPlatformCapacity, maxPlatformCapacity),
	}
	used := p.Capacity
	if used > remaining {
		used = remaining
	}
	s.deposits[resource] = remaining - used
	s.platforms = append(s.platforms, p)

	m.EnableProduction(resource)
	m.ArmCooldown(resource, cooldown)
	return p, nil
}

// Produce runs the production phase for every resource whose cooldown has run
// out: each platform delivers output, the resource price is regenerated inside
// its bound and the shared cooldown is reset.
func (s *Site) Produce(m *market.Market, cooldown int, rng shared.RandomSource) []Output {
	var outputs []Output
	for _, resource := range shared.MinedCommodities() {
		if s.PlatformCount(resource) == 0 || !m.CooldownReady(resource) {
			continue
		}
		var produced []Output
		for _, p := range s.platforms {
			if p.Resource != resource {
				continue
			}
			units := MiningOutput(s.efficiency, rng)
			if units > p.Capacity {
				units = p.Capacity
			}
			m.AddStock(resource, units)
			produced = append(produced, Output{Resource: resource, Units: units})
		}
		price := m.RegeneratePrice(resource, rng)
		for i := range produced {
			produced[i].NewPrice = price
		}
		m.ResetCooldown(resource, cooldown)
		outputs = append(outputs, produced...)
	}
	return outputs
}

// State is the serializable form of a Site
type State struct {
	Efficiency int                      `json:"efficiency"`
	Multiplier float64                  `json:"multiplier"`
	Deposits   map[shared.Commodity]int `json:"deposits"`
	Platforms  []Platform               `json:"platforms"`
}

func (s *Site) Snapshot() State {
	deposits := make(map[shared.Commodity]int, len(s.deposits))
	for k, v := range s.deposits {
		deposits[k] = v
	}
	return State{
		Efficiency: s.efficiency,
		Multiplier: s.multiplier,
		Deposits:   deposits,
		Platforms:  s.Platforms(),
	}
}

// RestoreSite rebuilds a site from a State
func RestoreSite(st State) (*Site, error) {
	s, err := NewSite(st.Efficiency, st.Multiplier)
	if err != nil {
		return nil, err
	}
	for k, v := range st.Deposits {
		if v < 0 {
			return nil, shared.NewValidationError("deposits", fmt.Sprintf("%s deposit is negative", k))
		}
		s.deposits[k] = v
	}
	s.platforms = append(s.platforms, st.Platforms...)
	return s, nil
}
