package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation"
	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation/commands"
	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation/queries"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/location"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

func newMediator(t *testing.T) (common.Mediator, *simulation.Game) {
	t.Helper()
	earth, err := location.NewLocation(location.Spec{Name: "Earth", Type: location.TypePlanet, TechLevel: 5, AgriLevel: 3, MiningEfficiency: 50})
	require.NoError(t, err)
	mars, err := location.NewLocation(location.Spec{Name: "Mars", Type: location.TypeColony, AgriLevel: 4, MiningEfficiency: 70})
	require.NoError(t, err)
	ship, err := ledger.NewShip(5000, 50, nil)
	require.NoError(t, err)

	game, err := simulation.NewGame(simulation.DefaultConfig(), simulation.Setup{
		Locations: []*location.Location{earth, mars},
		Current:   "Earth",
		Ship:      ship,
		Random:    shared.NewSeededRandom(3),
	})
	require.NoError(t, err)

	m := common.NewMediator()
	provider := &commands.StaticProvider{G: game}
	require.NoError(t, commands.RegisterHandlers(m, provider))
	require.NoError(t, queries.RegisterHandlers(m, provider))
	return m, game
}

func TestGetMarket(t *testing.T) {
	m, _ := newMediator(t)
	ctx := context.Background()

	resp, err := m.Send(ctx, &queries.GetMarketQuery{})

	require.NoError(t, err)
	board := resp.(*queries.GetMarketResponse)
	assert.Equal(t, "Earth", board.Location)
	assert.Equal(t, "PLANET", board.Type)
	assert.InDelta(t, 0.04, board.TaxRate, 1e-9)
	require.Len(t, board.Rows, 4)

	tech := board.Rows[0]
	assert.Equal(t, "TECH", tech.Commodity)
	assert.True(t, tech.Tradeable)
	assert.Equal(t, 50, tech.Price)
	assert.Equal(t, 52, tech.UnitBuyCost)
	assert.Equal(t, 48, tech.UnitSellNet)

	salt := board.Rows[2]
	assert.True(t, salt.Listed)
	assert.False(t, salt.Tradeable, "no platform yet")
	assert.Zero(t, salt.Price)

	_, err = m.Send(ctx, &queries.GetMarketQuery{Location: "Pluto"})
	assert.ErrorIs(t, err, shared.ErrUnknownLocation)
}

func TestGetMarket_ShowsTradedVolume(t *testing.T) {
	m, _ := newMediator(t)
	ctx := context.Background()
	_, err := m.Send(ctx, &commands.BuyCargoCommand{Commodity: "TECH", Quantity: 3})
	require.NoError(t, err)

	resp, err := m.Send(ctx, &queries.GetMarketQuery{Location: "Earth"})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.(*queries.GetMarketResponse).Rows[0].Bought)
}

func TestGetTaxRates(t *testing.T) {
	m, _ := newMediator(t)
	ctx := context.Background()

	resp, err := m.Send(ctx, &queries.GetTaxRatesQuery{Rank: "Captain"})

	require.NoError(t, err)
	rates := resp.(*queries.GetTaxRatesResponse)
	assert.Equal(t, "Captain", rates.Rank)
	assert.InDelta(t, 1.6, rates.RankMultiplier, 1e-9)
	require.Len(t, rates.Rates, 2)
	assert.Equal(t, "Earth", rates.Rates[0].Location)
	assert.InDelta(t, 0.08, rates.Rates[0].Rate, 1e-9)
	assert.Equal(t, "Mars", rates.Rates[1].Location)
	assert.InDelta(t, 0.064, rates.Rates[1].Rate, 1e-9)

	_, err = m.Send(ctx, &queries.GetTaxRatesQuery{Rank: "Pope"})
	assert.Error(t, err)
}

func TestGetStatus(t *testing.T) {
	m, _ := newMediator(t)
	ctx := context.Background()
	_, err := m.Send(ctx, &commands.BuyCargoCommand{Commodity: "TECH", Quantity: 4})
	require.NoError(t, err)

	resp, err := m.Send(ctx, &queries.GetStatusQuery{})

	require.NoError(t, err)
	status := resp.(*queries.GetStatusResponse)
	assert.Equal(t, 0, status.Turn)
	assert.Equal(t, "Earth", status.Location)
	assert.Equal(t, map[string]int{"TECH": 4}, status.Cargo)
	assert.Equal(t, 4, status.CargoUsed)
	assert.Equal(t, "Cadet", status.Rank)
	assert.Equal(t, []string{"Earth"}, status.Discovered)
	assert.Equal(t, 5000-208, status.Funds)
}

func TestGetContracts(t *testing.T) {
	m, _ := newMediator(t)

	resp, err := m.Send(context.Background(), &queries.GetContractsQuery{})

	require.NoError(t, err)
	contracts := resp.(*queries.GetContractsResponse)
	assert.NotEmpty(t, contracts.Offered)
	assert.Empty(t, contracts.Active)
	assert.Equal(t, 3, contracts.ActiveCap)
}
