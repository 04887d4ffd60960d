package location

import (
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/production"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// Location is a place the ship can dock at. It owns exactly one market and one
// extraction site; both are created with it and never shared.
type Location struct {
	name      string
	kind      LocationType
	caps      Capabilities
	techLevel int
	agriLevel int
	economy   market.EconomyState
	buildings []BuildingType
	market    *market.Market
	site      *production.Site
}

// Spec is the world-generation input for one location
type Spec struct {
	Name             string
	Type             LocationType
	TechLevel        int
	AgriLevel        int
	Economy          market.EconomyState
	MiningEfficiency int
	Buildings        []BuildingType
}

// NewLocation creates a new location with validation
func NewLocation(spec Spec) (*Location, error) {
	if spec.Name == "" {
		return nil, shared.NewValidationError("name", "cannot be empty")
	}
	caps, err := CapabilitiesOf(spec.Type)
	if err != nil {
		return nil, err
	}
	if spec.TechLevel < 0 || spec.AgriLevel < 0 {
		return nil, shared.NewValidationError("level", "tech and agri levels cannot be negative")
	}
	economy := spec.Economy
	if economy == "" {
		economy = market.EconomyStable
	}
	if !economy.IsValid() {
		return nil, shared.NewValidationError("economy", fmt.Sprintf("unknown state %q", spec.Economy))
	}
	site, err := production.NewSite(spec.MiningEfficiency, caps.MiningMultiplier)
	if err != nil {
		return nil, err
	}

	loc := &Location{
		name:      spec.Name,
		kind:      spec.Type,
		caps:      caps,
		techLevel: spec.TechLevel,
		agriLevel: spec.AgriLevel,
		economy:   economy,
		market:    market.NewMarket(caps.Commodities, spec.TechLevel, spec.AgriLevel),
		site:      site,
	}
	for _, b := range spec.Buildings {
		if err := loc.Construct(b); err != nil {
			return nil, err
		}
	}
	return loc, nil
}

func (l *Location) Name() string                     { return l.name }
func (l *Location) Type() LocationType               { return l.kind }
func (l *Location) Capabilities() Capabilities       { return l.caps }
func (l *Location) TechLevel() int                   { return l.techLevel }
func (l *Location) AgriLevel() int                   { return l.agriLevel }
func (l *Location) Economy() market.EconomyState     { return l.economy }
func (l *Location) MiningEfficiency() int            { return l.site.Efficiency() }
func (l *Location) Market() *market.Market           { return l.market }
func (l *Location) Site() *production.Site           { return l.site }
func (l *Location) BuildingCount() int               { return len(l.buildings) }

// SetEconomy replaces the macro trend. An unknown state is only reported by
// the next price update.
func (l *Location) SetEconomy(e market.EconomyState) { l.economy = e }

// Buildings returns a copy of the constructed buildings
func (l *Location) Buildings() []BuildingType {
	out := make([]BuildingType, len(l.buildings))
	copy(out, l.buildings)
	return out
}

// HasBuilding checks whether at least one building of the type stands here
func (l *Location) HasBuilding(b BuildingType) bool {
	for _, existing := range l.buildings {
		if existing == b {
			return true
		}
	}
	return false
}

// Construct adds a building if the location type allows it
func (l *Location) Construct(b BuildingType) error {
	if !l.caps.CanBuild(b) {
		return fmt.Errorf("%w: %s at %s (%s)", shared.ErrNotBuildable, b, l.name, l.kind)
	}
	l.buildings = append(l.buildings, b)
	return nil
}

// Conditions are the market inputs this location contributes to a price update
func (l *Location) Conditions(difficulty int) market.Conditions {
	return market.Conditions{
		Difficulty:    difficulty,
		Economy:       l.economy,
		StockExchange: l.HasBuilding(BuildingStockExchange),
	}
}

// Per-turn phases, called by the session in its fixed order

// UpdatePrices runs the market phase
func (l *Location) UpdatePrices(difficulty int, rng shared.RandomSource) ([]market.PriceChange, error) {
	changes, err := l.market.UpdatePrices(l.Conditions(difficulty), rng)
	if err != nil {
		return nil, fmt.Errorf("location %s: %w", l.name, err)
	}
	return changes, nil
}

// Produce runs the production phase
func (l *Location) Produce(cooldown int, rng shared.RandomSource) []production.Output {
	return l.site.Produce(l.market, cooldown, rng)
}

// Decay runs the ban/cooldown decay phase and returns the commodities whose ban lifted
func (l *Location) Decay() []shared.Commodity {
	lifted := l.market.DecayBans()
	l.market.DecayCooldowns()
	return lifted
}

// Discover surveys the location for a mined resource
func (l *Location) Discover(resource shared.Commodity, rng shared.RandomSource) (int, error) {
	return l.site.Discover(resource, rng)
}

// BuildPlatform builds an extractor on a discovered deposit
func (l *Location) BuildPlatform(resource shared.Commodity, cooldown int, rng shared.RandomSource) (production.Platform, error) {
	return l.site.BuildPlatform(resource, l.market, cooldown, rng)
}
