package steps

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/events"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

type contractContext struct {
	contract *contract.Contract
}

func (cc *contractContext) reset() {
	cc.contract = nil
}

func (cc *contractContext) anAcceptedCargoContract(amount int, symbol, source, destination string, duration, money, reputation int) error {
	req := contract.CargoRequirement{
		Commodity:   shared.Commodity(symbol),
		Amount:      amount,
		Source:      source,
		Destination: destination,
	}
	c, err := contract.NewContract("bdd-contract", req, duration, contract.RewardBundle{Money: money, Reputation: reputation}, 5, 0)
	if err != nil {
		return err
	}
	if err := c.Accept(0); err != nil {
		return err
	}
	cc.contract = c
	return nil
}

func (cc *contractContext) theShipBuys(amount int, symbol, location string, turn int) error {
	cc.contract.Apply(events.BuyEvent{
		Meta:      events.Meta{Location: location, Turn: turn},
		Commodity: shared.Commodity(symbol),
		Amount:    amount,
	})
	return nil
}

func (cc *contractContext) theShipSells(amount int, symbol, location string, turn int) error {
	cc.contract.Apply(events.SellEvent{
		Meta:      events.Meta{Location: location, Turn: turn},
		Commodity: shared.Commodity(symbol),
		Amount:    amount,
	})
	return nil
}

func (cc *contractContext) turnEnds(turn int) error {
	cc.contract.ObserveTurn(turn)
	return nil
}

func (cc *contractContext) theContractStatusShouldBe(expected string) error {
	if got := cc.contract.Status().String(); got != expected {
		return fmt.Errorf("expected status %s, got %s", expected, got)
	}
	return nil
}

func (cc *contractContext) theContractShouldHaveTurnsRemaining(expected int) error {
	if got := cc.contract.TurnsRemaining(); got != expected {
		return fmt.Errorf("expected %d turns remaining, got %d", expected, got)
	}
	return nil
}

func (cc *contractContext) theContractShouldHaveUnitsDelivered(expected int) error {
	if got := cc.contract.Progress().Delivered; got != expected {
		return fmt.Errorf("expected %d units delivered, got %d", expected, got)
	}
	return nil
}

func (cc *contractContext) claimingShouldPay(money, reputation int) error {
	reward, err := cc.contract.Claim()
	if err != nil {
		return err
	}
	if reward.Money != money || reward.Reputation != reputation {
		return fmt.Errorf("expected %d credits and %d reputation, got %d and %d",
			money, reputation, reward.Money, reward.Reputation)
	}
	return nil
}

func (cc *contractContext) claimingShouldFailWith(message string) error {
	_, err := cc.contract.Claim()
	if err == nil {
		return fmt.Errorf("expected claim to fail")
	}
	if !strings.Contains(err.Error(), message) {
		return fmt.Errorf("expected error containing %q, got %q", message, err.Error())
	}
	return nil
}

// InitializeContractScenario registers the contract step definitions
func InitializeContractScenario(sc *godog.ScenarioContext) {
	cc := &contractContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		cc.reset()
		return ctx, nil
	})

	sc.Step(`^an accepted cargo contract to deliver (\d+) "([^"]*)" from "([^"]*)" to "([^"]*)" within (\d+) turns paying (\d+) credits and (\d+) reputation$`, cc.anAcceptedCargoContract)
	sc.Step(`^the ship buys (\d+) "([^"]*)" at "([^"]*)" on turn (\d+)$`, cc.theShipBuys)
	sc.Step(`^the ship sells (\d+) "([^"]*)" at "([^"]*)" on turn (\d+)$`, cc.theShipSells)
	sc.Step(`^turn (\d+) ends$`, cc.turnEnds)
	sc.Step(`^the contract status should be "([^"]*)"$`, cc.theContractStatusShouldBe)
	sc.Step(`^the contract should have (\d+) turns remaining$`, cc.theContractShouldHaveTurnsRemaining)
	sc.Step(`^the contract should have (\d+) units delivered$`, cc.theContractShouldHaveUnitsDelivered)
	sc.Step(`^claiming the contract should pay (\d+) credits and (\d+) reputation$`, cc.claimingShouldPay)
	sc.Step(`^claiming the contract should fail with "([^"]*)"$`, cc.claimingShouldFailWith)
}
