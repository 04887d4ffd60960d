package location_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/location"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

func TestNewLocation_Validation(t *testing.T) {
	tests := []struct {
		name string
		spec location.Spec
	}{
		{"empty name", location.Spec{Type: location.TypePlanet}},
		{"unknown type", location.Spec{Name: "X", Type: "MOON"}},
		{"negative level", location.Spec{Name: "X", Type: location.TypePlanet, TechLevel: -1}},
		{"unknown economy", location.Spec{Name: "X", Type: location.TypePlanet, Economy: "CRASHING"}},
		{"efficiency out of range", location.Spec{Name: "X", Type: location.TypePlanet, MiningEfficiency: 101}},
		{"building not allowed", location.Spec{Name: "X", Type: location.TypeColony, Buildings: []location.BuildingType{location.BuildingShipyard}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := location.NewLocation(tt.spec)
			assert.Error(t, err)
		})
	}
}

func TestNewLocation_ListsCommoditiesByType(t *testing.T) {
	tests := []struct {
		kind   location.LocationType
		listed []shared.Commodity
	}{
		{location.TypePlanet, []shared.Commodity{shared.CommodityTech, shared.CommodityAgri, shared.CommoditySalt, shared.CommodityFuel}},
		{location.TypeStation, []shared.Commodity{shared.CommodityTech, shared.CommodityFuel}},
		{location.TypeColony, []shared.Commodity{shared.CommodityAgri, shared.CommoditySalt}},
		{location.TypeAsteroidBase, []shared.Commodity{shared.CommoditySalt, shared.CommodityFuel}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			loc, err := location.NewLocation(location.Spec{Name: "X", Type: tt.kind})
			require.NoError(t, err)

			for _, c := range shared.AllCommodities() {
				assert.Equal(t, contains(tt.listed, c), loc.Market().IsListed(c), c.String())
			}
			assert.Equal(t, market.EconomyStable, loc.Economy())
		})
	}
}

func contains(cs []shared.Commodity, c shared.Commodity) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}

func TestNewLocation_BaselinePricesFromLevels(t *testing.T) {
	loc, err := location.NewLocation(location.Spec{Name: "Earth", Type: location.TypePlanet, TechLevel: 7, AgriLevel: 2})
	require.NoError(t, err)

	assert.Equal(t, 30, loc.Market().Baseline(shared.CommodityTech))
	assert.Equal(t, 80, loc.Market().Baseline(shared.CommodityAgri))
	assert.Equal(t, 105, loc.Market().Baseline(shared.CommoditySalt))
	assert.Equal(t, 185, loc.Market().Baseline(shared.CommodityFuel))
}

func TestConstruct(t *testing.T) {
	loc, err := location.NewLocation(location.Spec{Name: "Ceres", Type: location.TypeAsteroidBase})
	require.NoError(t, err)

	require.NoError(t, loc.Construct(location.BuildingRefinery))
	require.NoError(t, loc.Construct(location.BuildingRefinery))
	err = loc.Construct(location.BuildingFarm)

	assert.ErrorIs(t, err, shared.ErrNotBuildable)
	assert.Equal(t, 2, loc.BuildingCount())
	assert.True(t, loc.HasBuilding(location.BuildingRefinery))
	assert.False(t, loc.HasBuilding(location.BuildingFarm))
}

func TestConditions_ReflectStockExchange(t *testing.T) {
	loc, err := location.NewLocation(location.Spec{
		Name:      "Halcyon",
		Type:      location.TypeStation,
		Economy:   market.EconomyBooming,
		Buildings: []location.BuildingType{location.BuildingStockExchange},
	})
	require.NoError(t, err)

	cond := loc.Conditions(2)

	assert.Equal(t, market.Conditions{Difficulty: 2, Economy: market.EconomyBooming, StockExchange: true}, cond)
}

func TestCapabilities(t *testing.T) {
	caps, err := location.CapabilitiesOf(location.TypeOutpost)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, caps.MiningMultiplier, 1e-9)
	assert.InDelta(t, 0.6, location.TypeOutpost.TaxModifier(), 1e-9)
	assert.True(t, caps.CanBuild(location.BuildingRefinery))
	assert.False(t, caps.CanBuild(location.BuildingFactory))

	_, err = location.CapabilitiesOf("MOON")
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	kind, err := location.ParseLocationType("asteroid_base")
	require.NoError(t, err)
	assert.Equal(t, location.TypeAsteroidBase, kind)

	b, err := location.ParseBuildingType("research_lab")
	require.NoError(t, err)
	assert.Equal(t, location.BuildingResearchLab, b)

	_, err = location.ParseBuildingType("casino")
	assert.Error(t, err)
}

func TestSnapshotRestore(t *testing.T) {
	// Arrange
	loc, err := location.NewLocation(location.Spec{
		Name:             "Ceres",
		Type:             location.TypeAsteroidBase,
		MiningEfficiency: 100,
		Buildings:        []location.BuildingType{location.BuildingRefinery},
	})
	require.NoError(t, err)
	rng := shared.NewScriptedRandom()
	rng.PushFloats(0.1)
	rng.PushInts(100, 30)
	_, err = loc.Discover(shared.CommoditySalt, rng)
	require.NoError(t, err)
	_, err = loc.BuildPlatform(shared.CommoditySalt, 5, rng)
	require.NoError(t, err)

	// Act
	restored, err := location.RestoreLocation(loc.Snapshot())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, loc.Snapshot(), restored.Snapshot())
	assert.Equal(t, 170, restored.Site().Deposit(shared.CommoditySalt))
	assert.True(t, restored.Market().CanTrade(shared.CommoditySalt))
	cooldown, armed := restored.Market().Cooldown(shared.CommoditySalt)
	assert.True(t, armed)
	assert.Equal(t, 5, cooldown)
}

func TestSnapshotRestore_UnknownType(t *testing.T) {
	loc, err := location.NewLocation(location.Spec{Name: "Earth", Type: location.TypePlanet})
	require.NoError(t, err)
	st := loc.Snapshot()
	st.Type = "MOON"

	_, err = location.RestoreLocation(st)

	assert.Error(t, err)
}

func TestSnapshotRestore_RejectsCorruptState(t *testing.T) {
	loc, err := location.NewLocation(location.Spec{Name: "Earth", Type: location.TypePlanet, TechLevel: 5})
	require.NoError(t, err)

	badEconomy := loc.Snapshot()
	badEconomy.Economy = "COLLAPSED"
	_, err = location.RestoreLocation(badEconomy)
	var validationErr *shared.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	zeroBan := loc.Snapshot()
	zeroBan.Market.Bans[shared.CommodityTech] = 0
	_, err = location.RestoreLocation(zeroBan)
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "Earth")
}
