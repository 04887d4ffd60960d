package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/player"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-economy/test/helpers"
)

var saveTime = time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)

func snapshot(id string, turn int, savedAt time.Time) simulation.Snapshot {
	return simulation.Snapshot{
		Version: simulation.SnapshotVersion,
		ID:      id,
		Turn:    turn,
		Current: "Earth",
		SavedAt: savedAt,
		Ship:    ledger.State{Funds: 1200, Capacity: 50},
		Profile: player.Profile{Name: "Vega", Reputation: 12},
	}
}

func TestGameRepository_SaveLoad(t *testing.T) {
	// Arrange
	repo := helpers.NewTestRepositories(t).Games
	ctx := context.Background()

	// Act
	require.NoError(t, repo.Save(ctx, snapshot("g1", 3, saveTime)))
	loaded, err := repo.Load(ctx, "g1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "g1", loaded.ID)
	assert.Equal(t, 3, loaded.Turn)
	assert.Equal(t, "Earth", loaded.Current)
	assert.Equal(t, 1200, loaded.Ship.Funds)
	assert.Equal(t, "Vega", loaded.Profile.Name)
	assert.True(t, saveTime.Equal(loaded.SavedAt))
}

func TestGameRepository_SaveOverwrites(t *testing.T) {
	repo := helpers.NewTestRepositories(t).Games
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, snapshot("g1", 3, saveTime)))
	require.NoError(t, repo.Save(ctx, snapshot("g1", 9, saveTime.Add(time.Hour))))

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 9, summaries[0].Turn)
	assert.Equal(t, 12, summaries[0].Reputation)
}

func TestGameRepository_ListMostRecentFirst(t *testing.T) {
	repo := helpers.NewTestRepositories(t).Games
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, snapshot("old", 1, saveTime)))
	require.NoError(t, repo.Save(ctx, snapshot("new", 2, saveTime.Add(time.Minute))))

	summaries, err := repo.List(ctx)

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "new", summaries[0].ID)
	assert.Equal(t, "old", summaries[1].ID)
	assert.Equal(t, "Vega", summaries[0].PlayerName)
	assert.Equal(t, 1200, summaries[0].Funds)
}

func TestGameRepository_NotFound(t *testing.T) {
	repo := helpers.NewTestRepositories(t).Games
	ctx := context.Background()

	_, err := repo.Load(ctx, "missing")
	assert.ErrorIs(t, err, simulation.ErrGameNotFound)

	err = repo.Delete(ctx, "missing")
	assert.ErrorIs(t, err, simulation.ErrGameNotFound)

	assert.Error(t, repo.Save(ctx, snapshot("", 0, saveTime)))
}

func TestGameRepository_Delete(t *testing.T) {
	repo := helpers.NewTestRepositories(t).Games
	ctx := context.Background()
	require.NoError(t, repo.Save(ctx, snapshot("g1", 1, saveTime)))

	require.NoError(t, repo.Delete(ctx, "g1"))

	_, err := repo.Load(ctx, "g1")
	assert.ErrorIs(t, err, simulation.ErrGameNotFound)
}

func tradingShip(t *testing.T) *ledger.Ship {
	t.Helper()
	ship, err := ledger.NewShip(2000, 100, shared.NewMockClock(saveTime))
	require.NoError(t, err)
	_, err = ship.Buy(shared.CommodityTech, 10, 50, 0.04, 1)
	require.NoError(t, err)
	_, _, err = ship.Sell(shared.CommodityTech, 10, 80, 0.04, 3)
	require.NoError(t, err)
	_, err = ship.Credit(500, ledger.TransactionTypeContractReward, 4, "contract c-1", "c-1")
	require.NoError(t, err)
	return ship
}

func TestTransactionRepository_AppendIsIdempotent(t *testing.T) {
	// Arrange
	repo := helpers.NewTestRepositories(t).Transactions
	ctx := context.Background()
	ship := tradingShip(t)

	// Act
	require.NoError(t, repo.Append(ctx, "g1", ship.Journal()))
	require.NoError(t, repo.Append(ctx, "g1", ship.Journal()))
	_, err := ship.Debit(100, ledger.TransactionTypeRepair, 5, "hull")
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, "g1", ship.Journal()))

	// Assert
	stored, err := repo.FindByGame(ctx, "g1", ledger.QueryOptions{})
	require.NoError(t, err)
	require.Len(t, stored, 4)
	for i, tx := range ship.Journal() {
		assert.Equal(t, tx.ID(), stored[i].ID())
		assert.Equal(t, tx.TransactionType(), stored[i].TransactionType())
		assert.Equal(t, tx.Amount(), stored[i].Amount())
		assert.Equal(t, tx.BalanceAfter(), stored[i].BalanceAfter())
		assert.Equal(t, tx.Commodity(), stored[i].Commodity())
		assert.Equal(t, tx.RelatedEntityID(), stored[i].RelatedEntityID())
	}
}

func TestTransactionRepository_Filters(t *testing.T) {
	repo := helpers.NewTestRepositories(t).Transactions
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, "g1", tradingShip(t).Journal()))
	require.NoError(t, repo.Append(ctx, "g2", tradingShip(t).Journal()))

	sell := ledger.TransactionTypeSellCargo
	byType, err := repo.FindByGame(ctx, "g1", ledger.QueryOptions{TransactionType: &sell})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, 3, byType[0].Turn())

	from, to := 2, 3
	byTurn, err := repo.FindByGame(ctx, "g1", ledger.QueryOptions{FromTurn: &from, ToTurn: &to})
	require.NoError(t, err)
	assert.Len(t, byTurn, 1)

	revenue := ledger.CategoryObligationRevenue
	byCategory, err := repo.FindByGame(ctx, "g1", ledger.QueryOptions{Category: &revenue})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "c-1", byCategory[0].RelatedEntityID())

	page, err := repo.FindByGame(ctx, "g1", ledger.QueryOptions{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, ledger.TransactionTypeSellCargo, page[0].TransactionType())

	require.NoError(t, repo.DeleteByGame(ctx, "g1"))
	gone, err := repo.FindByGame(ctx, "g1", ledger.QueryOptions{})
	require.NoError(t, err)
	assert.Empty(t, gone)
	kept, err := repo.FindByGame(ctx, "g2", ledger.QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, kept, 3)
}

func priceRecord(t *testing.T, turn int, loc string, price int, banned bool) *market.PriceRecord {
	t.Helper()
	rec, err := market.NewPriceRecord(turn, loc, shared.CommodityTech, price, banned)
	require.NoError(t, err)
	return rec
}

func TestPriceHistoryRepository(t *testing.T) {
	// Arrange
	repo := helpers.NewTestRepositories(t).PriceHistory
	ctx := context.Background()
	for turn := 1; turn <= 5; turn++ {
		require.NoError(t, repo.Record(ctx, "g1", []*market.PriceRecord{
			priceRecord(t, turn, "Earth", 40+turn, false),
			priceRecord(t, turn, "Mars", 90, turn == 2),
		}))
	}

	// Act
	recent, err := repo.History(ctx, "g1", "Earth", shared.CommodityTech, 3)

	// Assert
	require.NoError(t, err)
	require.Len(t, recent, 3)
	assert.Equal(t, []int{3, 4, 5}, []int{recent[0].Turn(), recent[1].Turn(), recent[2].Turn()})
	assert.Equal(t, 45, recent[2].Price())

	mars, err := repo.History(ctx, "g1", "Mars", shared.CommodityTech, 0)
	require.NoError(t, err)
	require.Len(t, mars, 5)
	assert.True(t, mars[1].Banned())

	require.NoError(t, repo.DeleteByGame(ctx, "g1"))
	empty, err := repo.History(ctx, "g1", "Earth", shared.CommodityTech, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
