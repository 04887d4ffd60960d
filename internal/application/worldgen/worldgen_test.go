package worldgen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation"
	"github.com/andrescamacho/spacetraders-economy/internal/application/worldgen"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/location"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
)

const tinyUniverse = `
name: Tiny
start: Home
locations:
  - name: Home
    type: planet
    x: 0
    y: 0
    tech_level: 3
    agri_level: 5
    economy: booming
    mining_efficiency: 60
    buildings: [factory]
  - name: Rock
    type: asteroid_base
    x: 4
    y: 1
`

func TestDefaultUniverse(t *testing.T) {
	u, err := worldgen.DefaultUniverse()

	require.NoError(t, err)
	assert.NotEmpty(t, u.Name)
	assert.NotEmpty(t, u.Start)
	assert.GreaterOrEqual(t, len(u.Locations), 2)
}

func TestParseUniverse_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"empty", "name: Nothing\n"},
		{"bad yaml", "locations: [\n"},
		{"unknown type", "locations:\n  - name: A\n    type: moon\n"},
		{"duplicate", "locations:\n  - name: A\n    type: planet\n  - name: A\n    type: colony\n"},
		{"missing start", "start: B\nlocations:\n  - name: A\n    type: planet\n"},
		{"bad economy", "locations:\n  - name: A\n    type: planet\n    economy: crashing\n"},
		{"bad building", "locations:\n  - name: A\n    type: planet\n    buildings: [casino]\n"},
		{"unnamed", "locations:\n  - type: planet\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := worldgen.ParseUniverse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLocations_UsesExplicitValues(t *testing.T) {
	u, err := worldgen.ParseUniverse([]byte(tinyUniverse))
	require.NoError(t, err)

	locs, err := worldgen.Locations(u, 7)

	require.NoError(t, err)
	require.Len(t, locs, 2)
	home := locs[0]
	assert.Equal(t, "Home", home.Name())
	assert.Equal(t, location.TypePlanet, home.Type())
	assert.Equal(t, 3, home.TechLevel())
	assert.Equal(t, 5, home.AgriLevel())
	assert.Equal(t, 60, home.MiningEfficiency())
	assert.Equal(t, market.EconomyBooming, home.Economy())
	assert.True(t, home.HasBuilding(location.BuildingFactory))
}

func TestLocations_SampledValuesAreBoundedAndSeeded(t *testing.T) {
	u, err := worldgen.DefaultUniverse()
	require.NoError(t, err)

	first, err := worldgen.Locations(u, 42)
	require.NoError(t, err)
	second, err := worldgen.Locations(u, 42)
	require.NoError(t, err)

	for i, loc := range first {
		assert.Equal(t, loc.Snapshot(), second[i].Snapshot(), loc.Name())
		assert.GreaterOrEqual(t, loc.TechLevel(), 0)
		assert.LessOrEqual(t, loc.TechLevel(), 9)
		assert.GreaterOrEqual(t, loc.AgriLevel(), 0)
		assert.LessOrEqual(t, loc.AgriLevel(), 9)
		assert.GreaterOrEqual(t, loc.MiningEfficiency(), 20)
		assert.LessOrEqual(t, loc.MiningEfficiency(), 100)
		assert.True(t, loc.Economy().IsValid())
	}
}

func TestLoadUniverse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tinyUniverse), 0o644))

	u, err := worldgen.LoadUniverse(path)
	require.NoError(t, err)
	assert.Equal(t, "Tiny", u.Name)

	builtin, err := worldgen.LoadUniverse("")
	require.NoError(t, err)
	assert.NotEqual(t, "Tiny", builtin.Name)

	_, err = worldgen.LoadUniverse(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewGame_DocksAtStart(t *testing.T) {
	u, err := worldgen.ParseUniverse([]byte(tinyUniverse))
	require.NoError(t, err)

	game, err := worldgen.NewGame(simulation.DefaultConfig(), u, worldgen.Params{
		Seed:          11,
		PlayerName:    "Vega",
		StartingFunds: 2500,
		CargoCapacity: 40,
	})

	require.NoError(t, err)
	assert.Equal(t, "Home", game.CurrentLocation())
	assert.Equal(t, 2500, game.Ship().Funds())
	assert.Equal(t, 40, game.Ship().Capacity())
	assert.Equal(t, "Vega", game.Profile().Name)
	assert.Equal(t, []string{"Home", "Rock"}, game.LocationNames())
}
