package location

import (
	"fmt"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/production"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// State is the serializable form of a Location
type State struct {
	Name      string              `json:"name"`
	Type      LocationType        `json:"type"`
	TechLevel int                 `json:"tech_level"`
	AgriLevel int                 `json:"agri_level"`
	Economy   market.EconomyState `json:"economy"`
	Buildings []BuildingType      `json:"buildings"`
	Market    market.State        `json:"market"`
	Site      production.State    `json:"site"`
}

func (l *Location) Snapshot() State {
	return State{
		Name:      l.name,
		Type:      l.kind,
		TechLevel: l.techLevel,
		AgriLevel: l.agriLevel,
		Economy:   l.economy,
		Buildings: l.Buildings(),
		Market:    l.market.Snapshot(),
		Site:      l.site.Snapshot(),
	}
}

// RestoreLocation rebuilds a location from a State without re-running construction rules
func RestoreLocation(s State) (*Location, error) {
	caps, err := CapabilitiesOf(s.Type)
	if err != nil {
		return nil, err
	}
	if !s.Economy.IsValid() {
		return nil, fmt.Errorf("location %s: %w", s.Name,
			shared.NewValidationError("economy", fmt.Sprintf("unknown state %q", s.Economy)))
	}
	m, err := market.RestoreMarket(s.Market)
	if err != nil {
		return nil, fmt.Errorf("location %s: %w", s.Name, err)
	}
	site, err := production.RestoreSite(s.Site)
	if err != nil {
		return nil, err
	}
	buildings := make([]BuildingType, len(s.Buildings))
	copy(buildings, s.Buildings)
	return &Location{
		name:      s.Name,
		kind:      s.Type,
		caps:      caps,
		techLevel: s.TechLevel,
		agriLevel: s.AgriLevel,
		economy:   s.Economy,
		buildings: buildings,
		market:    m,
		site:      site,
	}, nil
}
