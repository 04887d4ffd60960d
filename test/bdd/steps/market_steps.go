package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

type marketContext struct {
	market  *market.Market
	changes []market.PriceChange
	err     error
}

func (mc *marketContext) reset() {
	mc.market = nil
	mc.changes = nil
	mc.err = nil
}

// Setup steps

func (mc *marketContext) aMarketListingAtTechLevelAndAgriLevel(listed string, tech, agri int) error {
	var commodities []shared.Commodity
	for _, symbol := range strings.Split(listed, ",") {
		c, err := shared.ParseCommodity(strings.TrimSpace(symbol))
		if err != nil {
			return err
		}
		commodities = append(commodities, c)
	}
	mc.market = market.NewMarket(commodities, tech, agri)
	return nil
}

// Action steps

func (mc *marketContext) pricesUpdateWithRolls(economy string, difficulty int, table *godog.Table) error {
	rng := shared.NewScriptedRandom()
	for _, row := range dataRows(table) {
		roll, err := getIntCell(table, row, "roll")
		if err != nil {
			return err
		}
		rng.PushInts(roll)
	}
	return mc.update(economy, difficulty, rng)
}

func (mc *marketContext) update(economy string, difficulty int, rng shared.RandomSource) error {
	state, err := market.ParseEconomyState(economy)
	if err != nil {
		return err
	}
	mc.changes, mc.err = mc.market.UpdatePrices(market.Conditions{Difficulty: difficulty, Economy: state}, rng)
	return mc.err
}

func (mc *marketContext) bansDecay() error {
	mc.market.DecayBans()
	return nil
}

// turnsPass runs whole market turns while every listed commodity is banned,
// so no rolls are drawn
func (mc *marketContext) turnsPass(turns int, economy string) error {
	for i := 0; i < turns; i++ {
		if err := mc.update(economy, 0, shared.NewScriptedRandom()); err != nil {
			return err
		}
		if len(mc.changes) > 0 {
			return fmt.Errorf("expected no price changes while banned, got %d", len(mc.changes))
		}
		mc.market.DecayBans()
	}
	return nil
}

// Assertion steps

func (mc *marketContext) thePriceShouldBe(symbol string, expected int) error {
	price, err := mc.market.Price(shared.Commodity(symbol))
	if err != nil {
		return err
	}
	if price != expected {
		return fmt.Errorf("expected %s price %d, got %d", symbol, expected, price)
	}
	return nil
}

func (mc *marketContext) shouldBeBannedForTurns(symbol string, turns int) error {
	c := shared.Commodity(symbol)
	if !mc.market.IsBanned(c) {
		return fmt.Errorf("expected %s to be banned", symbol)
	}
	if got := mc.market.BanTurnsRemaining(c); got != turns {
		return fmt.Errorf("expected %d ban turns remaining, got %d", turns, got)
	}
	return nil
}

func (mc *marketContext) shouldNotBeBanned(symbol string) error {
	if mc.market.IsBanned(shared.Commodity(symbol)) {
		return fmt.Errorf("expected %s not to be banned", symbol)
	}
	return nil
}

func (mc *marketContext) tradingShouldFailWith(symbol, message string) error {
	err := mc.market.TradeCheck(shared.Commodity(symbol))
	if err == nil {
		return fmt.Errorf("expected trading %s to fail", symbol)
	}
	if !strings.Contains(err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, err.Error())
	}
	return nil
}

func (mc *marketContext) tradingShouldSucceed(symbol string) error {
	return mc.market.TradeCheck(shared.Commodity(symbol))
}

// InitializeMarketScenario registers the market step definitions
func InitializeMarketScenario(sc *godog.ScenarioContext) {
	mc := &marketContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		mc.reset()
		return ctx, nil
	})

	sc.Step(`^a market listing "([^"]*)" at tech level (\d+) and agri level (\d+)$`, mc.aMarketListingAtTechLevelAndAgriLevel)
	sc.Step(`^prices update under a "([^"]*)" economy at difficulty (\d+) with rolls:$`, mc.pricesUpdateWithRolls)
	sc.Step(`^bans decay$`, mc.bansDecay)
	sc.Step(`^(\d+) turns pass under a "([^"]*)" economy$`, mc.turnsPass)
	sc.Step(`^the price of "([^"]*)" should be (\d+)$`, mc.thePriceShouldBe)
	sc.Step(`^"([^"]*)" should be banned for (\d+) turns$`, mc.shouldBeBannedForTurns)
	sc.Step(`^"([^"]*)" should not be banned$`, mc.shouldNotBeBanned)
	sc.Step(`^trading "([^"]*)" should fail with "([^"]*)"$`, mc.tradingShouldFailWith)
	sc.Step(`^trading "([^"]*)" should succeed$`, mc.tradingShouldSucceed)
}
