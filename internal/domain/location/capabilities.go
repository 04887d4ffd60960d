package location

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// LocationType selects a row of the capability table
type LocationType string

const (
	TypePlanet       LocationType = "PLANET"
	TypeStation      LocationType = "STATION"
	TypeColony       LocationType = "COLONY"
	TypeOutpost      LocationType = "OUTPOST"
	TypeAsteroidBase LocationType = "ASTEROID_BASE"
)

// BuildingType is a structure that can be constructed at a location
type BuildingType string

const (
	BuildingStockExchange BuildingType = "STOCK_EXCHANGE"
	BuildingFactory       BuildingType = "FACTORY"
	BuildingFarm          BuildingType = "FARM"
	BuildingRefinery      BuildingType = "REFINERY"
	BuildingShipyard      BuildingType = "SHIPYARD"
	BuildingResearchLab   BuildingType = "RESEARCH_LAB"
)

// Capabilities is everything that varies between location types
type Capabilities struct {
	Commodities      []shared.Commodity
	Buildable        []BuildingType
	MiningMultiplier float64
	TaxModifier      float64
}

var capabilityTable = map[LocationType]Capabilities{
	TypePlanet: {
		Commodities:      []shared.Commodity{shared.CommodityTech, shared.CommodityAgri, shared.CommoditySalt, shared.CommodityFuel},
		Buildable:        []BuildingType{BuildingStockExchange, BuildingFactory, BuildingFarm, BuildingResearchLab},
		MiningMultiplier: 1.0,
		TaxModifier:      1.0,
	},
	TypeStation: {
		Commodities:      []shared.Commodity{shared.CommodityTech, shared.CommodityFuel},
		Buildable:        []BuildingType{BuildingStockExchange, BuildingShipyard, BuildingResearchLab},
		MiningMultiplier: 0.5,
		TaxModifier:      1.25,
	},
	TypeColony: {
		Commodities:      []shared.Commodity{shared.CommodityAgri, shared.CommoditySalt},
		Buildable:        []BuildingType{BuildingFarm, BuildingRefinery},
		MiningMultiplier: 1.2,
		TaxModifier:      0.8,
	},
	TypeOutpost: {
		Commodities:      []shared.Commodity{shared.CommodityTech, shared.CommodityAgri, shared.CommoditySalt, shared.CommodityFuel},
		Buildable:        []BuildingType{BuildingRefinery},
		MiningMultiplier: 1.5,
		TaxModifier:      0.6,
	},
	TypeAsteroidBase: {
		Commodities:      []shared.Commodity{shared.CommoditySalt, shared.CommodityFuel},
		Buildable:        []BuildingType{BuildingRefinery, BuildingShipyard},
		MiningMultiplier: 2.0,
		TaxModifier:      0.5,
	},
}

// CapabilitiesOf looks up the capability row of a location type
func CapabilitiesOf(t LocationType) (Capabilities, error) {
	c, ok := capabilityTable[t]
	if !ok {
		return Capabilities{}, fmt.Errorf("unknown location type: %s", t)
	}
	return c, nil
}

// AllLocationTypes returns the known location types
func AllLocationTypes() []LocationType {
	return []LocationType{TypePlanet, TypeStation, TypeColony, TypeOutpost, TypeAsteroidBase}
}

// ParseLocationType parses a string into a LocationType
func ParseLocationType(s string) (LocationType, error) {
	t := LocationType(strings.ToUpper(s))
	if _, ok := capabilityTable[t]; !ok {
		return "", fmt.Errorf("unknown location type: %s", s)
	}
	return t, nil
}

// TaxModifier is the location factor in the tax formula
func (t LocationType) TaxModifier() float64 {
	return capabilityTable[t].TaxModifier
}

// CanBuild reports whether the location type allows the building
func (c Capabilities) CanBuild(b BuildingType) bool {
	for _, allowed := range c.Buildable {
		if allowed == b {
			return true
		}
	}
	return false
}

// AllBuildingTypes returns the known building types
func AllBuildingTypes() []BuildingType {
	return []BuildingType{
		BuildingStockExchange, BuildingFactory, BuildingFarm,
		BuildingRefinery, BuildingShipyard, BuildingResearchLab,
	}
}

// ParseBuildingType parses a building name, case-insensitive
func ParseBuildingType(s string) (BuildingType, error) {
	for _, b := range AllBuildingTypes() {
		if strings.EqualFold(string(b), s) {
			return b, nil
		}
	}
	return "", fmt.Errorf("unknown building type: %s", s)
}
