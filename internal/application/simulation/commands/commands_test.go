package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation"
	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation/commands"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/location"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

func newMediator(t *testing.T) (common.Mediator, *simulation.Game) {
	t.Helper()
	clock := shared.NewMockClock(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	earth, err := location.NewLocation(location.Spec{Name: "Earth", Type: location.TypePlanet, TechLevel: 5, AgriLevel: 3, MiningEfficiency: 50})
	require.NoError(t, err)
	mars, err := location.NewLocation(location.Spec{Name: "Mars", Type: location.TypeColony, AgriLevel: 4, MiningEfficiency: 70})
	require.NoError(t, err)
	ship, err := ledger.NewShip(5000, 50, clock)
	require.NoError(t, err)

	game, err := simulation.NewGame(simulation.DefaultConfig(), simulation.Setup{
		Locations: []*location.Location{earth, mars},
		Current:   "Earth",
		Ship:      ship,
		Random:    shared.NewSeededRandom(3),
		Clock:     clock,
	})
	require.NoError(t, err)

	m := common.NewMediator()
	m.Use(common.LoggingMiddleware)
	require.NoError(t, commands.RegisterHandlers(m, &commands.StaticProvider{G: game}))
	return m, game
}

func TestRegisterHandlers_RejectsDoubleRegistration(t *testing.T) {
	m, game := newMediator(t)

	err := commands.RegisterHandlers(m, &commands.StaticProvider{G: game})

	assert.Error(t, err)
}

func TestTradeCommands(t *testing.T) {
	// Arrange
	m, game := newMediator(t)
	ctx := context.Background()

	// Act
	resp, err := m.Send(ctx, &commands.BuyCargoCommand{Commodity: "tech", Quantity: 4})

	// Assert
	require.NoError(t, err)
	result, ok := resp.(*simulation.TradeResult)
	require.True(t, ok)
	assert.Equal(t, shared.CommodityTech, result.Commodity)
	assert.Equal(t, 4, game.Ship().Cargo(shared.CommodityTech))

	_, err = m.Send(ctx, &commands.SellCargoCommand{Commodity: "spice", Quantity: 1})
	assert.ErrorIs(t, err, shared.ErrInvalidCommodity)
}

func TestTravelCommand(t *testing.T) {
	m, game := newMediator(t)

	_, err := m.Send(context.Background(), &commands.TravelCommand{Destination: "Mars"})

	require.NoError(t, err)
	assert.Equal(t, "Mars", game.CurrentLocation())
}

func TestAdvanceTurnCommand(t *testing.T) {
	m, game := newMediator(t)
	ctx := context.Background()

	resp, err := m.Send(ctx, &commands.AdvanceTurnCommand{Turns: 3})
	require.NoError(t, err)
	assert.Len(t, resp.(*commands.AdvanceTurnResponse).Reports, 3)

	resp, err = m.Send(ctx, &commands.AdvanceTurnCommand{})
	require.NoError(t, err)
	reports := resp.(*commands.AdvanceTurnResponse).Reports
	require.Len(t, reports, 1)
	assert.Equal(t, 4, reports[0].Turn)
	assert.Equal(t, 4, game.Turn())
}

func TestAdvanceTurnCommand_StopsWhenCancelled(t *testing.T) {
	m, game := newMediator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Send(ctx, &commands.AdvanceTurnCommand{Turns: 5})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, game.Turn())
}

func TestStartQuest_CompletesFromResearch(t *testing.T) {
	// Arrange
	m, game := newMediator(t)
	ctx := context.Background()

	resp, err := m.Send(ctx, &commands.StartQuestCommand{Name: "Scholar", Type: "research", Target: 10, Money: 300})
	require.NoError(t, err)
	started := resp.(*commands.StartQuestResponse)
	require.NotEmpty(t, started.QuestID)
	require.True(t, started.Announce)

	// Act
	resp, err = m.Send(ctx, &commands.AddResearchCommand{Points: 10})

	// Assert
	require.NoError(t, err)
	transitions := resp.(*commands.ProgressResponse).Transitions
	require.Len(t, transitions, 1)
	assert.Equal(t, started.QuestID, transitions[0].ID)
	assert.Equal(t, 5300, game.Ship().Funds())

	// a repeat of the same quest is not announced again and completes at once
	resp, err = m.Send(ctx, &commands.StartQuestCommand{Name: "Scholar", Type: "RESEARCH", Target: 10, Money: 300})
	require.NoError(t, err)
	again := resp.(*commands.StartQuestResponse)
	assert.False(t, again.Announce)
	assert.Len(t, again.Transitions, 1)
	assert.Equal(t, 5600, game.Ship().Funds())
}

func TestStartQuest_RejectsActiveDuplicate(t *testing.T) {
	m, _ := newMediator(t)
	ctx := context.Background()
	cmd := &commands.StartQuestCommand{Name: "Bane", Type: "COMBAT", Subject: "PIRATE", Target: 2}

	_, err := m.Send(ctx, cmd)
	require.NoError(t, err)
	_, err = m.Send(ctx, cmd)

	assert.ErrorIs(t, err, shared.ErrQuestAlreadyActive)
}

func TestProgressCommands_Validate(t *testing.T) {
	m, _ := newMediator(t)
	ctx := context.Background()

	tests := []struct {
		name string
		cmd  common.Request
	}{
		{"zero research", &commands.AddResearchCommand{Points: 0}},
		{"empty enemy", &commands.RecordCombatVictoryCommand{}},
		{"empty milestone", &commands.ReachMilestoneCommand{}},
		{"no passengers", &commands.DeliverPassengersCommand{Count: 0, ClassCode: "E", Satisfaction: 50}},
		{"unknown quest type", &commands.StartQuestCommand{Name: "X", Type: "FISHING", Target: 1}},
		{"cargo quest without commodity", &commands.StartQuestCommand{Name: "X", Type: "CARGO", Target: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Send(ctx, tt.cmd)
			assert.Error(t, err)
		})
	}
}

func TestReachMilestoneCommand(t *testing.T) {
	m, game := newMediator(t)
	ctx := context.Background()

	resp, err := m.Send(ctx, &commands.ReachMilestoneCommand{Name: "special_contracts"})
	require.NoError(t, err)
	assert.True(t, resp.(*commands.ReachMilestoneResponse).First)

	resp, err = m.Send(ctx, &commands.ReachMilestoneCommand{Name: "special_contracts"})
	require.NoError(t, err)
	assert.False(t, resp.(*commands.ReachMilestoneResponse).First)
	assert.True(t, game.Engine().SpecialUnlocked())
}

func TestInfrastructureCommands(t *testing.T) {
	m, game := newMediator(t)
	ctx := context.Background()

	_, err := m.Send(ctx, &commands.ConstructBuildingCommand{Building: "farm"})
	require.NoError(t, err)
	assert.True(t, game.Here().HasBuilding(location.BuildingFarm))

	_, err = m.Send(ctx, &commands.BuildPlatformCommand{Resource: "SALT"})
	assert.ErrorIs(t, err, shared.ErrNoDeposit)

	_, err = m.Send(ctx, &commands.UpgradeShipCommand{Stat: "warp"})
	assert.Error(t, err)
}
