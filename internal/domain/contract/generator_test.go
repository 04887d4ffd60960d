package contract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

func board() contract.Board {
	return contract.Board{
		Locations: []string{"Mars", "Earth", "Ceres"},
		Commodities: map[string][]shared.Commodity{
			"Earth": {shared.CommodityTech, shared.CommodityAgri},
			"Ceres": {shared.CommoditySalt},
		},
	}
}

func TestBatch_ProducesValidOffers(t *testing.T) {
	gen := contract.NewGenerator(contract.DefaultGeneratorConfig(), shared.NewSeededRandom(7))

	for turn := 0; turn < 20; turn++ {
		batch := gen.Batch(turn, board(), false)

		assert.GreaterOrEqual(t, len(batch), 2)
		assert.LessOrEqual(t, len(batch), 4)
		for _, c := range batch {
			assert.Equal(t, contract.StatusOffered, c.Status())
			assert.Equal(t, turn, c.OfferedTurn())
			assert.NotEqual(t, contract.KindSpecial, c.Kind())
			require.NoError(t, c.Requirement().Validate())
			if cargo, ok := c.Requirement().(contract.CargoRequirement); ok {
				assert.Contains(t, board().Commodities[cargo.Source], cargo.Commodity)
			}
		}
	}
}

func TestBatch_SpecialOnceUnlocked(t *testing.T) {
	cfg := contract.DefaultGeneratorConfig()
	cfg.SpecialChance = 1
	gen := contract.NewGenerator(cfg, shared.NewSeededRandom(11))

	batch := gen.Batch(5, board(), true)

	require.NotEmpty(t, batch)
	special, ok := batch[0].Requirement().(contract.SpecialRequirement)
	require.True(t, ok)
	assert.Len(t, special.Destinations, 2)
	assert.NotContains(t, special.Destinations, special.Source)
	assert.Equal(t, 3, batch[0].Reward().PlotPoints)
}

func TestBatch_NeedsTwoLocations(t *testing.T) {
	gen := contract.NewGenerator(contract.DefaultGeneratorConfig(), shared.NewSeededRandom(1))

	assert.Nil(t, gen.Batch(0, contract.Board{Locations: []string{"Mars"}}, true))
}

func TestBatch_DeterministicPerSeed(t *testing.T) {
	a := contract.NewGenerator(contract.DefaultGeneratorConfig(), shared.NewSeededRandom(99)).Batch(0, board(), true)
	b := contract.NewGenerator(contract.DefaultGeneratorConfig(), shared.NewSeededRandom(99)).Batch(0, board(), true)

	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Requirement(), b[i].Requirement())
		assert.Equal(t, a[i].Duration(), b[i].Duration())
	}
}

func TestEvaluateProfitability(t *testing.T) {
	// Arrange
	svc := contract.NewContractProfitabilityService()
	c := saltRun(t, 100, 10)

	// Act
	eval, err := svc.EvaluateProfitability(c, contract.ProfitabilityContext{
		SourcePrice:      50,
		DestinationPrice: 80,
		BuyTaxRate:       0.05,
		SellTaxRate:      0.05,
		CargoCapacity:    30,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 5250, eval.PurchaseCost)
	assert.Equal(t, 7600, eval.ResaleValue)
	assert.Equal(t, 4, eval.TripsRequired)
	assert.Equal(t, 4350, eval.NetProfit)
	assert.True(t, eval.IsProfitable)
	assert.Equal(t, "Profitable over 4 trips", eval.Reason)
}

func TestEvaluateProfitability_MissingPrice(t *testing.T) {
	svc := contract.NewContractProfitabilityService()

	_, err := svc.EvaluateProfitability(saltRun(t, 100, 10), contract.ProfitabilityContext{SourcePrice: 50})

	assert.Error(t, err)
}
