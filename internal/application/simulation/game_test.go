package simulation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-economy/internal/application/obligation"
	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/location"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/player"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/quest"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

var epoch = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

func mustLocation(t *testing.T, spec location.Spec) *location.Location {
	t.Helper()
	loc, err := location.NewLocation(spec)
	require.NoError(t, err)
	return loc
}

// newTestGame builds Earth (planet), Venus (outpost) and Ceres (asteroid base)
func newTestGame(t *testing.T, seed uint64) *simulation.Game {
	t.Helper()
	clock := shared.NewMockClock(epoch)
	ship, err := ledger.NewShip(10000, 100, clock)
	require.NoError(t, err)

	g, err := simulation.NewGame(simulation.DefaultConfig(), simulation.Setup{
		ID: "game-1",
		Locations: []*location.Location{
			mustLocation(t, location.Spec{Name: "Earth", Type: location.TypePlanet, TechLevel: 5, AgriLevel: 3, MiningEfficiency: 50}),
			mustLocation(t, location.Spec{Name: "Venus", Type: location.TypeOutpost, TechLevel: 2, AgriLevel: 2, MiningEfficiency: 40}),
			mustLocation(t, location.Spec{Name: "Ceres", Type: location.TypeAsteroidBase, MiningEfficiency: 100}),
		},
		Current: "Earth",
		Ship:    ship,
		Profile: player.NewProfile("Vega"),
		Random:  shared.NewSeededRandom(seed),
		Clock:   clock,
	})
	require.NoError(t, err)
	return g
}

func offerTechRun(t *testing.T, g *simulation.Game, id string, amount, duration int) {
	t.Helper()
	req := contract.CargoRequirement{Commodity: shared.CommodityTech, Amount: amount, Source: "Earth", Destination: "Venus"}
	c, err := contract.NewContract(id, req, duration, contract.RewardBundle{Money: 1000, Reputation: 6}, 4, g.Turn())
	require.NoError(t, err)
	require.NoError(t, g.Engine().Offer(c))
}

func TestNewGame_Validation(t *testing.T) {
	ship, err := ledger.NewShip(100, 10, nil)
	require.NoError(t, err)

	_, err = simulation.NewGame(simulation.DefaultConfig(), simulation.Setup{Ship: ship, Random: shared.NewSeededRandom(1)})
	assert.Error(t, err)

	cfg := simulation.DefaultConfig()
	cfg.Difficulty = 5
	_, err = simulation.NewGame(cfg, simulation.Setup{
		Locations: []*location.Location{mustLocation(t, location.Spec{Name: "Earth", Type: location.TypePlanet})},
		Ship:      ship,
		Random:    shared.NewSeededRandom(1),
	})
	assert.Error(t, err)
}

func TestNewGame_OffersContractsAndDiscoversStart(t *testing.T) {
	g := newTestGame(t, 1)

	assert.NotEmpty(t, g.Engine().Offered())
	assert.Equal(t, 1, g.DiscoveredLocations())
	assert.Equal(t, []string{"Ceres", "Earth", "Venus"}, g.LocationNames())
}

func TestBuy_ChargesTaxAndRecordsVolume(t *testing.T) {
	// Arrange
	g := newTestGame(t, 1)
	ctx := context.Background()

	// Act
	result, err := g.Buy(ctx, shared.CommodityTech, 10)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 50, result.UnitPrice)
	assert.InDelta(t, 0.04, result.TaxRate, 1e-9)
	assert.Equal(t, 9480, g.Ship().Funds())
	assert.Equal(t, 10, g.Ship().Cargo(shared.CommodityTech))

	here := g.Here().Market()
	assert.Equal(t, 10, here.Volume(shared.CommodityTech).Bought)
	require.Len(t, g.Emitter().History(), 1)
}

func TestTrade_RejectsUntradeableCommodities(t *testing.T) {
	g := newTestGame(t, 1)
	ctx := context.Background()

	_, err := g.Buy(ctx, shared.CommoditySalt, 1)
	assert.ErrorIs(t, err, shared.ErrNoPlatformAvailable)

	_, err = g.Travel(ctx, "Ceres")
	require.NoError(t, err)
	_, err = g.Buy(ctx, shared.CommodityTech, 1)
	assert.ErrorIs(t, err, shared.ErrInvalidCommodity)

	_, err = g.Sell(ctx, shared.CommodityFuel, 1)
	assert.Error(t, err)
	assert.Equal(t, 10000, g.Ship().Funds())
	assert.Empty(t, g.Ship().Journal())
}

func TestTravel(t *testing.T) {
	g := newTestGame(t, 1)
	ctx := context.Background()

	_, err := g.Travel(ctx, "Earth")
	assert.Error(t, err)

	_, err = g.Travel(ctx, "Pluto")
	assert.ErrorIs(t, err, shared.ErrUnknownLocation)

	result, err := g.Travel(ctx, "Venus")
	require.NoError(t, err)
	assert.True(t, result.FirstVisit)
	assert.Equal(t, "Venus", g.CurrentLocation())
	assert.Equal(t, 0, g.Turn(), "travel does not advance the turn")

	_, err = g.Travel(ctx, "Earth")
	require.NoError(t, err)
	result, err = g.Travel(ctx, "Venus")
	require.NoError(t, err)
	assert.False(t, result.FirstVisit)
	assert.Equal(t, 2, g.DiscoveredLocations())
}

func TestAdvanceTurn_KeepsPricesInBoundsAndRecordsThem(t *testing.T) {
	g := newTestGame(t, 42)
	ctx := context.Background()

	for i := 1; i <= 30; i++ {
		report, err := g.AdvanceTurn(ctx)
		require.NoError(t, err)
		assert.Equal(t, i, report.Turn)
		require.Len(t, report.Locations, 3)

		records, err := report.PriceRecords()
		require.NoError(t, err)
		changes := 0
		for _, lr := range report.Locations {
			changes += len(lr.PriceChanges)
		}
		assert.Len(t, records, changes)

		for _, name := range g.LocationNames() {
			loc, err := g.Location(name)
			require.NoError(t, err)
			for _, c := range shared.AllCommodities() {
				if price, err := loc.Market().Price(c); err == nil {
					assert.True(t, market.BoundsFor(c).Contains(price), "%s %s at %d", name, c, price)
				}
			}
		}
	}
	assert.Equal(t, 30, g.Turn())
}

func TestAdvanceTurn_DeterministicPerSeed(t *testing.T) {
	a := newTestGame(t, 7)
	b := newTestGame(t, 7)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		ra, err := a.AdvanceTurn(ctx)
		require.NoError(t, err)
		rb, err := b.AdvanceTurn(ctx)
		require.NoError(t, err)
		for j := range ra.Locations {
			assert.Equal(t, ra.Locations[j].PriceChanges, rb.Locations[j].PriceChanges)
		}
	}
}

func TestAdvanceTurn_HonorsCancellation(t *testing.T) {
	g := newTestGame(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.AdvanceTurn(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, g.Turn())
}

func TestPlatform_ProducesAfterCooldown(t *testing.T) {
	// Arrange
	g := newTestGame(t, 5)
	ctx := context.Background()
	_, err := g.Travel(ctx, "Ceres")
	require.NoError(t, err)

	found, err := g.Discover(ctx, shared.CommoditySalt)
	require.NoError(t, err)
	require.Positive(t, found)

	_, err = g.BuildPlatform(ctx, shared.CommodityFuel)
	assert.ErrorIs(t, err, shared.ErrNoDeposit)

	// Act
	platform, err := g.BuildPlatform(ctx, shared.CommoditySalt)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 100, platform.Efficiency)
	assert.Equal(t, 8000, g.Ship().Funds())
	assert.True(t, g.Here().Market().CanTrade(shared.CommoditySalt))

	producedOn := 0
	for turn := 1; turn <= simulation.DefaultConfig().ProductionCooldown+1; turn++ {
		report, err := g.AdvanceTurn(ctx)
		require.NoError(t, err)
		for _, lr := range report.Locations {
			if lr.Name == "Ceres" && len(lr.Output) > 0 && producedOn == 0 {
				producedOn = report.Turn
				assert.Equal(t, shared.CommoditySalt, lr.Output[0].Resource)
			}
		}
	}
	assert.Equal(t, simulation.DefaultConfig().ProductionCooldown+1, producedOn)
	assert.Positive(t, g.Here().Market().Stock(shared.CommoditySalt))
}

func TestConstruct(t *testing.T) {
	g := newTestGame(t, 1)
	ctx := context.Background()

	err := g.Construct(ctx, location.BuildingShipyard)
	assert.ErrorIs(t, err, shared.ErrNotBuildable)

	require.NoError(t, g.Construct(ctx, location.BuildingFactory))
	assert.Equal(t, 1, g.Here().BuildingCount())
	assert.Equal(t, 5000, g.Ship().Funds())
	assert.InDelta(t, 0.02, g.TaxRate(), 1e-9)
}

func TestCargoContract_EndToEnd(t *testing.T) {
	// Arrange
	g := newTestGame(t, 1)
	ctx := context.Background()
	offerTechRun(t, g, "story-1", 10, 8)
	require.NoError(t, g.AcceptContract(ctx, "story-1"))

	// Act
	_, err := g.Buy(ctx, shared.CommodityTech, 10)
	require.NoError(t, err)
	_, err = g.Travel(ctx, "Venus")
	require.NoError(t, err)
	sold, err := g.Sell(ctx, shared.CommodityTech, 10)
	require.NoError(t, err)

	// Assert
	require.Len(t, sold.Transitions, 1)
	assert.Equal(t, "COMPLETED", sold.Transitions[0].To)

	funds := g.Ship().Funds()
	reward, err := g.ClaimContract(ctx, "story-1")
	require.NoError(t, err)
	assert.Equal(t, contract.RewardBundle{Money: 1500, Reputation: 7}, reward)
	assert.Equal(t, funds+1500, g.Ship().Funds())
	assert.Equal(t, 7, g.Profile().Reputation)

	journal := g.Ship().Journal()
	last := journal[len(journal)-1]
	assert.Equal(t, ledger.TransactionTypeContractReward, last.TransactionType())
	assert.Equal(t, "story-1", last.RelatedEntityID())

	_, err = g.ClaimContract(ctx, "story-1")
	assert.ErrorIs(t, err, shared.ErrContractAlreadyClaimed)
	assert.Equal(t, funds+1500, g.Ship().Funds())
}

func TestCargoContract_EarlyBonusAcrossTurns(t *testing.T) {
	// Arrange
	g := newTestGame(t, 1)
	ctx := context.Background()
	offerTechRun(t, g, "tech-run", 90, 8)
	require.NoError(t, g.AcceptContract(ctx, "tech-run"))
	_, err := g.Buy(ctx, shared.CommodityTech, 90)
	require.NoError(t, err)
	_, err = g.Travel(ctx, "Venus")
	require.NoError(t, err)

	// Act
	var last *simulation.TradeResult
	for _, saleTurn := range []int{2, 4, 6} {
		for g.Turn() < saleTurn {
			_, err := g.AdvanceTurn(ctx)
			require.NoError(t, err)
		}
		last, err = g.Sell(ctx, shared.CommodityTech, 30)
		require.NoError(t, err)
	}

	// Assert
	require.Len(t, last.Transitions, 1)
	assert.Equal(t, "COMPLETED", last.Transitions[0].To)

	state, ok := g.Engine().Contract("tech-run")
	require.True(t, ok)
	assert.Equal(t, 4, state.TurnsRemaining)
	assert.Equal(t, 4, state.CompletedWithRemaining)

	reward, err := g.ClaimContract(ctx, "tech-run")
	require.NoError(t, err)
	assert.Equal(t, contract.RewardBundle{Money: 1500, Reputation: 7}, reward)
}

func TestContractFailure_CostsReputation(t *testing.T) {
	// Arrange
	g := newTestGame(t, 1)
	ctx := context.Background()
	g.Profile().AdjustReputation(20)
	offerTechRun(t, g, "story-1", 10, 1)
	require.NoError(t, g.AcceptContract(ctx, "story-1"))

	// Act
	report, err := g.AdvanceTurn(ctx)

	// Assert
	require.NoError(t, err)
	var failed *obligation.Transition
	for i := range report.Transitions {
		if report.Transitions[i].ID == "story-1" {
			failed = &report.Transitions[i]
		}
	}
	require.NotNil(t, failed)
	assert.Equal(t, "FAILED", failed.To)
	assert.Equal(t, 16, g.Profile().Reputation)
}

func TestQuest_RewardGrantedOnCompletion(t *testing.T) {
	// Arrange
	g := newTestGame(t, 1)
	ctx := context.Background()
	q, err := quest.NewQuest("q-1", "Scholar", quest.ResearchObjective{Points: 10}, contract.RewardBundle{Money: 250, PlotPoints: 1})
	require.NoError(t, err)
	announce, transitions, err := g.AddQuest(ctx, q)
	require.NoError(t, err)
	require.True(t, announce)
	require.Empty(t, transitions)

	// Act
	assert.Empty(t, g.AddResearchPoints(ctx, 4))
	transitions = g.AddResearchPoints(ctx, 6)

	// Assert
	require.Len(t, transitions, 1)
	assert.Equal(t, obligation.KindQuest, transitions[0].Kind)
	assert.Equal(t, 10250, g.Ship().Funds())
	assert.Equal(t, 1, g.Profile().PlotPoints)
}

func TestQuest_CombatVictories(t *testing.T) {
	g := newTestGame(t, 1)
	ctx := context.Background()
	q, err := quest.NewQuest("q-2", "Pirate Bane", quest.CombatObjective{EnemyType: "PIRATE", Victories: 2}, contract.RewardBundle{Reputation: 10})
	require.NoError(t, err)
	_, _, err = g.AddQuest(ctx, q)
	require.NoError(t, err)

	assert.Empty(t, g.RecordCombatVictory(ctx, "DRONE"))
	assert.Empty(t, g.RecordCombatVictory(ctx, "PIRATE"))
	transitions := g.RecordCombatVictory(ctx, "PIRATE")

	require.Len(t, transitions, 1)
	assert.Equal(t, 10, g.Profile().Reputation)
	assert.Equal(t, 10000, g.Ship().Funds(), "no money reward, no journal entry")
	assert.Empty(t, g.Ship().Journal())
}

func TestDeliverPassengers_Validates(t *testing.T) {
	g := newTestGame(t, 1)

	_, err := g.DeliverPassengers(context.Background(), 0, "E", 80)

	assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
}

func TestReachMilestone_UnlocksSpecialContracts(t *testing.T) {
	g := newTestGame(t, 1)
	ctx := context.Background()

	assert.True(t, g.ReachMilestone(ctx, player.MilestoneSpecialContracts))
	assert.False(t, g.ReachMilestone(ctx, player.MilestoneSpecialContracts))
	assert.True(t, g.Engine().SpecialUnlocked())
}

func TestSnapshotRestore_ResumesIdentically(t *testing.T) {
	// Arrange
	g := newTestGame(t, 9)
	ctx := context.Background()
	_, err := g.Buy(ctx, shared.CommodityTech, 5)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := g.AdvanceTurn(ctx)
		require.NoError(t, err)
	}
	snap, err := g.Snapshot()
	require.NoError(t, err)

	// Act
	restored, err := simulation.Restore(g.Config(), snap, shared.NewSeededRandom(1), shared.NewMockClock(epoch), nil)
	require.NoError(t, err)

	// Assert
	again, err := restored.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, snap.Turn, again.Turn)
	assert.Equal(t, snap.Random, again.Random)
	assert.Equal(t, snap.EventSeq, again.EventSeq)
	assert.Equal(t, snap.Ship.Funds, again.Ship.Funds)

	for i := 0; i < 5; i++ {
		want, err := g.AdvanceTurn(ctx)
		require.NoError(t, err)
		got, err := restored.AdvanceTurn(ctx)
		require.NoError(t, err)
		for j := range want.Locations {
			assert.Equal(t, want.Locations[j].PriceChanges, got.Locations[j].PriceChanges)
		}
	}
	assert.Equal(t, g.Ship().Funds(), restored.Ship().Funds())
}

func TestRestore_RejectsUnknownVersion(t *testing.T) {
	g := newTestGame(t, 1)
	snap, err := g.Snapshot()
	require.NoError(t, err)
	snap.Version = 99

	_, err = simulation.Restore(g.Config(), snap, shared.NewSeededRandom(1), nil, nil)

	assert.Error(t, err)
}

func TestAdvanceTurn_IsolatesFailingLocation(t *testing.T) {
	// Arrange
	g := newTestGame(t, 4)
	ctx := context.Background()
	snap, err := g.Snapshot()
	require.NoError(t, err)
	for i := range snap.Locations {
		if snap.Locations[i].Name == "Earth" {
			snap.Locations[i].Market.Bans[shared.CommodityTech] = 1
		}
	}
	restored, err := simulation.Restore(g.Config(), snap, shared.NewSeededRandom(4), shared.NewMockClock(epoch), nil)
	require.NoError(t, err)

	offerTechRun(t, restored, "doomed", 10, 1)
	require.NoError(t, restored.AcceptContract(ctx, "doomed"))
	venus, err := restored.Location("Venus")
	require.NoError(t, err)
	venus.SetEconomy(market.EconomyState("COLLAPSED"))

	// Act
	report, err := restored.AdvanceTurn(ctx)

	// Assert
	var validationErr *shared.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "economy", validationErr.Field)
	assert.ErrorContains(t, err, "Venus")
	require.NotNil(t, report)

	byName := make(map[string]simulation.LocationReport)
	for _, lr := range report.Locations {
		byName[lr.Name] = lr
	}
	assert.Error(t, byName["Venus"].Err)
	assert.Empty(t, byName["Venus"].PriceChanges)

	earth := byName["Earth"]
	assert.NoError(t, earth.Err)
	assert.NotEmpty(t, earth.PriceChanges)
	assert.Equal(t, []shared.Commodity{shared.CommodityTech}, earth.LiftedBans)
	assert.NoError(t, byName["Ceres"].Err)

	var swept bool
	for _, tr := range report.Transitions {
		if tr.ID == "doomed" && tr.To == "FAILED" {
			swept = true
		}
	}
	assert.True(t, swept)
	assert.Equal(t, 1, restored.Turn())
}
