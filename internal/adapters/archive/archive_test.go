package archive_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-economy/internal/adapters/archive"
	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/location"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

func playedSnapshot(t *testing.T) simulation.Snapshot {
	t.Helper()
	clock := shared.NewMockClock(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	earth, err := location.NewLocation(location.Spec{Name: "Earth", Type: location.TypePlanet, TechLevel: 5, AgriLevel: 3, MiningEfficiency: 50})
	require.NoError(t, err)
	mars, err := location.NewLocation(location.Spec{Name: "Mars", Type: location.TypeOutpost, TechLevel: 2, MiningEfficiency: 60})
	require.NoError(t, err)
	ship, err := ledger.NewShip(5000, 60, clock)
	require.NoError(t, err)
	game, err := simulation.NewGame(simulation.DefaultConfig(), simulation.Setup{
		ID:        "archived",
		Locations: []*location.Location{earth, mars},
		Current:   "Earth",
		Ship:      ship,
		Random:    shared.NewSeededRandom(21),
		Clock:     clock,
	})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = game.Buy(ctx, shared.CommodityTech, 5)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err := game.AdvanceTurn(ctx)
		require.NoError(t, err)
	}
	snap, err := game.Snapshot()
	require.NoError(t, err)
	return snap
}

func TestWriteRead_RoundTrip(t *testing.T) {
	// Arrange
	snap := playedSnapshot(t)
	var buf bytes.Buffer

	// Act
	require.NoError(t, archive.Write(&buf, snap))
	header, restored, err := archive.Read(&buf)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, archive.Format, header.Format)
	assert.Equal(t, "archived", header.GameID)
	assert.Equal(t, 4, header.Turn)
	assert.Equal(t, simulation.SnapshotVersion, header.SnapshotVersion)

	assert.Equal(t, snap.ID, restored.ID)
	assert.Equal(t, snap.Turn, restored.Turn)
	assert.Equal(t, snap.Random, restored.Random)
	assert.Equal(t, snap.Ship.Funds, restored.Ship.Funds)
	assert.Equal(t, snap.Ship.Cargo, restored.Ship.Cargo)
	require.Len(t, restored.Locations, 2)
	assert.Equal(t, snap.Locations[0].Market.Prices, restored.Locations[0].Market.Prices)

	game, err := simulation.Restore(simulation.DefaultConfig(), restored, shared.NewSeededRandom(1), shared.NewRealClock(), nil)
	require.NoError(t, err)
	assert.Equal(t, 4, game.Turn())
	assert.Equal(t, 5, game.Ship().Cargo(shared.CommodityTech))
}

func TestWriteFileReadFile(t *testing.T) {
	snap := playedSnapshot(t)
	path := filepath.Join(t.TempDir(), "exports", "save.zst")

	require.NoError(t, archive.WriteFile(path, snap))
	header, restored, err := archive.ReadFile(path)

	require.NoError(t, err)
	assert.Equal(t, snap.ID, header.GameID)
	assert.Equal(t, snap.Turn, restored.Turn)

	_, _, err = archive.ReadFile(filepath.Join(t.TempDir(), "missing.zst"))
	assert.Error(t, err)
}

func compress(t *testing.T, body string) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write([]byte(body))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	return &buf
}

func TestRead_RejectsForeignArchives(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no header line", `{"format":"spacetraders-economy/snapshot"}`},
		{"wrong format", `{"format":"something-else","snapshot_version":1}` + "\n{}\n"},
		{"newer version", `{"format":"spacetraders-economy/snapshot","snapshot_version":99}` + "\n{}\n"},
		{"garbage header", "not json\n{}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := archive.Read(compress(t, tt.body))
			assert.ErrorIs(t, err, archive.ErrUnsupportedArchive)
		})
	}
}
