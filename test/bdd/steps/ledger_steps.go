package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/spacetraders-economy/internal/adapters/persistence"
	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	ledgerCmd "github.com/andrescamacho/spacetraders-economy/internal/application/ledger/commands"
	ledgerQuery "github.com/andrescamacho/spacetraders-economy/internal/application/ledger/queries"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/ledger"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-economy/test/helpers"
)

type ledgerContext struct {
	gameID   string
	ship     *ledger.Ship
	mediator common.Mediator
	recorded *ledgerCmd.RecordJournalResponse
}

func (lc *ledgerContext) reset() error {
	lc.gameID = ""
	lc.ship = nil
	lc.recorded = nil

	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	repo := persistence.NewGormTransactionRepository(helpers.SharedTestDB)
	lc.mediator = common.NewMediator()
	if err := ledgerCmd.RegisterHandlers(lc.mediator, repo); err != nil {
		return err
	}
	return ledgerQuery.RegisterHandlers(lc.mediator, repo)
}

// Setup steps

func (lc *ledgerContext) aTraderPlayingGame(funds int, gameID string) error {
	ship, err := ledger.NewShip(funds, 100, shared.NewMockClock(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		return err
	}
	lc.ship = ship
	lc.gameID = gameID
	return nil
}

func (lc *ledgerContext) theTraderPurchases(qty int, symbol string, price, taxPercent, turn int) error {
	_, err := lc.ship.Buy(shared.Commodity(symbol), qty, price, float64(taxPercent)/100, turn)
	return err
}

func (lc *ledgerContext) theTraderSells(qty int, symbol string, price, taxPercent, turn int) error {
	_, _, err := lc.ship.Sell(shared.Commodity(symbol), qty, price, float64(taxPercent)/100, turn)
	return err
}

func (lc *ledgerContext) theTraderIsPaidForContract(amount int, contractID string, turn int) error {
	_, err := lc.ship.Credit(amount, ledger.TransactionTypeContractReward, turn, "contract "+contractID, contractID)
	return err
}

// Action steps

func (lc *ledgerContext) theJournalIsRecorded(ctx context.Context) error {
	resp, err := lc.mediator.Send(ctx, &ledgerCmd.RecordJournalCommand{
		GameID:       lc.gameID,
		Transactions: lc.ship.Journal(),
	})
	if err != nil {
		return err
	}
	lc.recorded = resp.(*ledgerCmd.RecordJournalResponse)
	return nil
}

// Assertion steps

func (lc *ledgerContext) theGameShouldHaveStoredTransactions(ctx context.Context, expected int) error {
	resp, err := lc.mediator.Send(ctx, &ledgerQuery.GetTransactionsQuery{GameID: lc.gameID, Limit: 100})
	if err != nil {
		return err
	}
	if got := len(resp.(*ledgerQuery.GetTransactionsResponse).Transactions); got != expected {
		return fmt.Errorf("expected %d stored transactions, got %d", expected, got)
	}
	return nil
}

func (lc *ledgerContext) theRecordedBalanceShouldBe(expected int) error {
	if lc.recorded == nil {
		return fmt.Errorf("journal was never recorded")
	}
	if lc.recorded.FinalBalance != expected {
		return fmt.Errorf("expected balance %d, got %d", expected, lc.recorded.FinalBalance)
	}
	return nil
}

func (lc *ledgerContext) theProfitAndLossStatementShouldShow(ctx context.Context, table *godog.Table) error {
	resp, err := lc.mediator.Send(ctx, &ledgerQuery.GetProfitLossQuery{GameID: lc.gameID})
	if err != nil {
		return err
	}
	pl := resp.(*ledgerQuery.GetProfitLossResponse)
	actual := map[string]int{
		"revenue":  pl.TotalRevenue,
		"expenses": pl.TotalExpenses,
		"net":      pl.NetProfit,
	}

	for _, row := range dataRows(table) {
		metric, err := getCellValue(table, row, "metric")
		if err != nil {
			return err
		}
		expected, err := getIntCell(table, row, "value")
		if err != nil {
			return err
		}
		got, ok := actual[metric]
		if !ok {
			return fmt.Errorf("unknown metric %q", metric)
		}
		if got != expected {
			return fmt.Errorf("expected %s %d, got %d", metric, expected, got)
		}
	}
	return nil
}

func (lc *ledgerContext) cashFlow(ctx context.Context) (*ledgerQuery.GetCashFlowResponse, error) {
	resp, err := lc.mediator.Send(ctx, &ledgerQuery.GetCashFlowQuery{GameID: lc.gameID})
	if err != nil {
		return nil, err
	}
	return resp.(*ledgerQuery.GetCashFlowResponse), nil
}

func (lc *ledgerContext) theCashFlowForShouldBe(ctx context.Context, category string, expected int) error {
	cf, err := lc.cashFlow(ctx)
	if err != nil {
		return err
	}
	for _, c := range cf.Categories {
		if c.Category == category {
			if c.NetFlow != expected {
				return fmt.Errorf("expected %s net flow %d, got %d", category, expected, c.NetFlow)
			}
			return nil
		}
	}
	return fmt.Errorf("category %s missing from cash flow", category)
}

func (lc *ledgerContext) theNetCashFlowShouldBe(ctx context.Context, expected int) error {
	cf, err := lc.cashFlow(ctx)
	if err != nil {
		return err
	}
	if cf.NetFlow != expected {
		return fmt.Errorf("expected net cash flow %d, got %d", expected, cf.NetFlow)
	}
	return nil
}

// InitializeLedgerScenario registers the ledger step definitions
func InitializeLedgerScenario(sc *godog.ScenarioContext) {
	lc := &ledgerContext{}

	sc.Before(func(ctx context.Context, s *godog.Scenario) (context.Context, error) {
		return ctx, lc.reset()
	})

	sc.Step(`^a trader with (\d+) credits playing game "([^"]*)"$`, lc.aTraderPlayingGame)
	sc.Step(`^the trader purchases (\d+) "([^"]*)" at (\d+) credits with (\d+)% tax on turn (\d+)$`, lc.theTraderPurchases)
	sc.Step(`^the trader sells (\d+) "([^"]*)" at (\d+) credits with (\d+)% tax on turn (\d+)$`, lc.theTraderSells)
	sc.Step(`^the trader is paid (\d+) credits for contract "([^"]*)" on turn (\d+)$`, lc.theTraderIsPaidForContract)
	sc.Step(`^the journal is recorded$`, lc.theJournalIsRecorded)
	sc.Step(`^the game should have (\d+) stored transactions$`, lc.theGameShouldHaveStoredTransactions)
	sc.Step(`^the recorded balance should be (\d+)$`, lc.theRecordedBalanceShouldBe)
	sc.Step(`^the profit and loss statement should show:$`, lc.theProfitAndLossStatementShouldShow)
	sc.Step(`^the cash flow for "([^"]*)" should be (-?\d+)$`, lc.theCashFlowForShouldBe)
	sc.Step(`^the net cash flow should be (-?\d+)$`, lc.theNetCashFlowShouldBe)
}
