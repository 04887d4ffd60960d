package contract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/events"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

func buy(location string, c shared.Commodity, amount, turn int) events.BuyEvent {
	return events.BuyEvent{Meta: events.Meta{Location: location, Turn: turn}, Commodity: c, Amount: amount}
}

func sell(location string, c shared.Commodity, amount, turn int) events.SellEvent {
	return events.SellEvent{Meta: events.Meta{Location: location, Turn: turn}, Commodity: c, Amount: amount}
}

func saltRun(t *testing.T, amount, duration int) *contract.Contract {
	t.Helper()
	req := contract.CargoRequirement{Commodity: shared.CommoditySalt, Amount: amount, Source: "A", Destination: "B"}
	c, err := contract.NewContract("c-1", req, duration, contract.RewardBundle{Money: 2000, Reputation: 10}, 5, 0)
	require.NoError(t, err)
	require.NoError(t, c.Accept(0))
	return c
}

func TestNewContract_Validation(t *testing.T) {
	req := contract.CargoRequirement{Commodity: shared.CommoditySalt, Amount: 10, Source: "A", Destination: "B"}

	_, err := contract.NewContract("", req, 5, contract.RewardBundle{}, 0, 0)
	assert.Error(t, err)

	_, err = contract.NewContract("c", req, 0, contract.RewardBundle{}, 0, 0)
	assert.Error(t, err)

	_, err = contract.NewContract("c", req, 5, contract.RewardBundle{Money: -1}, 0, 0)
	assert.Error(t, err)

	bad := contract.CargoRequirement{Commodity: shared.CommoditySalt, Amount: 10, Source: "A", Destination: "A"}
	_, err = contract.NewContract("c", bad, 5, contract.RewardBundle{}, 0, 0)
	assert.Error(t, err)
}

func TestCargoContract_CompletesAndPaysEarlyBonus(t *testing.T) {
	// Arrange
	c := saltRun(t, 100, 8)

	// Act
	changes := []contract.Change{
		c.Apply(buy("A", shared.CommoditySalt, 110, 0)),
		c.Apply(sell("B", shared.CommoditySalt, 40, 2)),
		c.Apply(sell("B", shared.CommoditySalt, 40, 4)),
		c.Apply(sell("B", shared.CommoditySalt, 30, 6)),
	}

	// Assert
	for _, ch := range changes[:3] {
		assert.False(t, ch.Changed())
	}
	assert.Equal(t, contract.Change{From: contract.StatusActive, To: contract.StatusCompleted}, changes[3])
	assert.Equal(t, 110, c.Progress().Delivered)
	assert.Equal(t, 4, c.TurnsRemaining())

	reward, bonuses := c.FinalReward()
	assert.True(t, bonuses.EarlyCompletion)
	assert.False(t, bonuses.OverDelivery)
	assert.Equal(t, contract.RewardBundle{Money: 3000, Reputation: 12}, reward)

	claimed, err := c.Claim()
	require.NoError(t, err)
	assert.Equal(t, reward, claimed)
	assert.Equal(t, contract.StatusClaimed, c.Status())
}

func TestContract_ClaimPaysOnce(t *testing.T) {
	// Arrange
	c := saltRun(t, 10, 8)
	c.Apply(buy("A", shared.CommoditySalt, 10, 1))
	c.Apply(sell("B", shared.CommoditySalt, 10, 1))
	_, err := c.Claim()
	require.NoError(t, err)

	// Act
	_, err = c.Claim()

	// Assert
	assert.ErrorIs(t, err, shared.ErrContractAlreadyClaimed)
	paid, ok := c.ClaimedReward()
	assert.True(t, ok)
	assert.Equal(t, 2000*3/2, paid.Money)
}

func TestContract_ClaimRequiresCompletion(t *testing.T) {
	c := saltRun(t, 10, 8)

	_, err := c.Claim()

	assert.ErrorIs(t, err, shared.ErrContractNotCompleted)
}

func TestContract_SameTurnDecrementsOnce(t *testing.T) {
	// Arrange
	c := saltRun(t, 100, 8)

	// Act
	c.Apply(buy("A", shared.CommoditySalt, 10, 3))
	c.Apply(sell("C", shared.CommodityTech, 10, 3))
	c.ObserveTurn(3)
	c.ObserveTurn(2)

	// Assert
	assert.Equal(t, 7, c.TurnsRemaining())
	assert.Equal(t, 3, c.LastObservedTurn())
}

func TestContract_SweepLeavesCounterToEvents(t *testing.T) {
	// Arrange
	c := saltRun(t, 100, 4)
	c.Apply(buy("A", shared.CommoditySalt, 10, 0))

	// Act
	changes := []contract.Change{c.ObserveTurn(1), c.ObserveTurn(2), c.ObserveTurn(3)}

	// Assert
	for _, ch := range changes {
		assert.False(t, ch.Changed())
	}
	assert.Equal(t, 3, c.TurnsRemaining())
	assert.Equal(t, 4, c.Deadline())

	change := c.ObserveTurn(4)
	assert.Equal(t, contract.StatusFailed, change.To)
	assert.Equal(t, 0, c.TurnsRemaining())
}

func TestContract_HalfRemainingEarnsEarlyBonus(t *testing.T) {
	cases := []struct {
		name       string
		finishTurn int
		remaining  int
		early      bool
	}{
		{name: "more than half", finishTurn: 1, remaining: 6, early: true},
		{name: "exactly half", finishTurn: 3, remaining: 4, early: true},
		{name: "less than half", finishTurn: 4, remaining: 3, early: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			c := saltRun(t, 10, 8)
			c.Apply(buy("A", shared.CommoditySalt, 10, 0))
			for turn := 1; turn < tc.finishTurn; turn++ {
				c.Apply(events.TravelEvent{Meta: events.Meta{Location: "A", Turn: turn}})
			}

			// Act
			c.Apply(sell("B", shared.CommoditySalt, 10, tc.finishTurn))

			// Assert
			require.Equal(t, contract.StatusCompleted, c.Status())
			assert.Equal(t, tc.remaining, c.TurnsRemaining())
			_, bonuses := c.FinalReward()
			assert.Equal(t, tc.early, bonuses.EarlyCompletion)
		})
	}
}

func TestContract_ProgressOnlyCountsQualifyingSales(t *testing.T) {
	c := saltRun(t, 100, 20)

	c.Apply(sell("B", shared.CommoditySalt, 30, 1))
	assert.Equal(t, 0, c.Progress().Delivered, "sales before visiting the source do not count")

	c.Apply(buy("A", shared.CommoditySalt, 50, 2))
	c.Apply(sell("B", shared.CommodityTech, 30, 3))
	c.Apply(sell("C", shared.CommoditySalt, 30, 4))
	assert.Equal(t, 0, c.Progress().Delivered)

	last := 0
	for turn := 5; turn < 9; turn++ {
		c.Apply(sell("B", shared.CommoditySalt, 10, turn))
		delivered := c.Progress().Delivered
		assert.Greater(t, delivered, last)
		last = delivered
	}
}

func TestContract_FailsWhenTimeRunsOut(t *testing.T) {
	// Arrange
	c := saltRun(t, 100, 3)
	c.Apply(buy("A", shared.CommoditySalt, 50, 1))
	c.Apply(sell("B", shared.CommoditySalt, 50, 1))

	// Act
	assert.False(t, c.ObserveTurn(2).Changed())
	change := c.ObserveTurn(3)

	// Assert
	assert.Equal(t, contract.Change{From: contract.StatusActive, To: contract.StatusFailed}, change)
	assert.Equal(t, 0, c.TurnsRemaining())

	// Terminal contracts ignore further events
	c.Apply(sell("B", shared.CommoditySalt, 50, 4))
	assert.Equal(t, 50, c.Progress().Delivered)
	assert.Equal(t, contract.StatusFailed, c.Status())

	_, err := c.Claim()
	assert.ErrorIs(t, err, shared.ErrContractExpired)
	assert.ErrorIs(t, c.Accept(5), shared.ErrContractExpired)
}

func TestContract_CompletionOnLastTurnBeatsFailure(t *testing.T) {
	c := saltRun(t, 10, 2)
	c.Apply(buy("A", shared.CommoditySalt, 10, 1))

	change := c.Apply(sell("B", shared.CommoditySalt, 10, 2))

	assert.Equal(t, contract.StatusCompleted, change.To)
	assert.Equal(t, 0, c.TurnsRemaining())
	_, bonuses := c.FinalReward()
	assert.False(t, bonuses.EarlyCompletion)
}

func TestContract_OfferedIgnoresEvents(t *testing.T) {
	req := contract.CargoRequirement{Commodity: shared.CommoditySalt, Amount: 10, Source: "A", Destination: "B"}
	c, err := contract.NewContract("c", req, 5, contract.RewardBundle{Money: 10}, 0, 0)
	require.NoError(t, err)

	c.Apply(buy("A", shared.CommoditySalt, 10, 1))
	c.ObserveTurn(2)

	assert.Equal(t, contract.StatusOffered, c.Status())
	assert.Equal(t, 5, c.TurnsRemaining())
	assert.False(t, c.Progress().SourceVisited)
}

func TestCargoContract_OverDeliveryBonus(t *testing.T) {
	c := saltRun(t, 20, 10)
	c.Apply(buy("A", shared.CommoditySalt, 40, 1))
	c.Apply(sell("B", shared.CommoditySalt, 40, 1))

	reward, bonuses := c.FinalReward()

	assert.True(t, bonuses.OverDelivery)
	assert.Equal(t, 3600, reward.Money)
}

func TestPassengerContract_SatisfactionBonus(t *testing.T) {
	// Arrange
	req := contract.PassengerRequirement{Count: 4, MinSatisfaction: 50, Destination: "Mars"}
	c, err := contract.NewContract("p-1", req, 10, contract.RewardBundle{Money: 700, Reputation: 5}, 3, 0)
	require.NoError(t, err)
	require.NoError(t, c.Accept(0))

	// Act
	c.Apply(events.PassengerDeliveryEvent{Meta: events.Meta{Location: "Venus", Turn: 1}, Count: 4, Satisfaction: 90})
	c.Apply(events.PassengerDeliveryEvent{Meta: events.Meta{Location: "Mars", Turn: 1}, Count: 2, Satisfaction: 40})
	change := c.Apply(events.PassengerDeliveryEvent{Meta: events.Meta{Location: "Mars", Turn: 1}, Count: 4, Satisfaction: 70, ClassCode: "B"})

	// Assert
	assert.Equal(t, contract.StatusCompleted, change.To)
	assert.Equal(t, 4, c.Progress().Passengers)
	reward, bonuses := c.FinalReward()
	assert.True(t, bonuses.HighSatisfaction)
	assert.Equal(t, contract.RewardBundle{Money: 1050, Reputation: 8}, reward)
}

func TestPassengerRequirement_Accepts(t *testing.T) {
	req := contract.PassengerRequirement{ClassCode: "F", Count: 2, MinSatisfaction: 60, Destination: "Mars"}

	assert.True(t, req.Accepts("Mars", "F", 60))
	assert.False(t, req.Accepts("Mars", "E", 90))
	assert.False(t, req.Accepts("Mars", "F", 59))
	assert.False(t, req.Accepts("Venus", "F", 90))
}

func TestSpecialContract_NeedsEveryDestinationVisited(t *testing.T) {
	// Arrange
	req := contract.SpecialRequirement{Commodity: shared.CommodityTech, Amount: 50, Source: "A", Destinations: []string{"B", "C"}}
	c, err := contract.NewContract("s-1", req, 10, contract.RewardBundle{Money: 5000, Reputation: 20, PlotPoints: 3}, 10, 0)
	require.NoError(t, err)
	require.NoError(t, c.Accept(0))

	// Act
	c.Apply(buy("A", shared.CommodityTech, 50, 1))
	afterSale := c.Apply(sell("B", shared.CommodityTech, 50, 2))
	afterTravel := c.Apply(events.TravelEvent{Meta: events.Meta{Location: "C", Turn: 3}, From: "B"})

	// Assert
	assert.False(t, afterSale.Changed())
	assert.Equal(t, contract.StatusCompleted, afterTravel.To)
	assert.Equal(t, []string{"B", "C"}, c.Progress().Visited)
	reward, _ := c.FinalReward()
	assert.Equal(t, 3, reward.PlotPoints)
}

func TestSnapshotRestore(t *testing.T) {
	// Arrange
	c := saltRun(t, 100, 8)
	c.Apply(buy("A", shared.CommoditySalt, 50, 1))
	c.Apply(sell("B", shared.CommoditySalt, 50, 2))

	// Act
	restored, err := contract.RestoreContract(c.Snapshot())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, c.Snapshot(), restored.Snapshot())

	restored.Apply(sell("B", shared.CommoditySalt, 50, 3))
	assert.Equal(t, contract.StatusCompleted, restored.Status())
	assert.Equal(t, contract.StatusActive, c.Status(), "restored copy is independent")
}

func TestRestoreContract_RejectsInconsistentClaim(t *testing.T) {
	st := saltRun(t, 10, 8).Snapshot()
	st.Status = contract.StatusClaimed

	_, err := contract.RestoreContract(st)

	assert.Error(t, err)
}
