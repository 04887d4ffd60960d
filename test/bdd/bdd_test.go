package bdd

import (
	"os"
	"testing"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/spacetraders-economy/test/bdd/steps"
	"github.com/andrescamacho/spacetraders-economy/test/helpers"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/domain", "features/application"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(sc *godog.ScenarioContext) {
	// Domain scenarios
	steps.InitializeMarketScenario(sc)
	steps.InitializeContractScenario(sc)

	// Application scenarios backed by the shared test database
	steps.InitializeLedgerScenario(sc)
}

func TestMain(m *testing.M) {
	// One migrated database for every scenario; each scenario truncates it
	if err := helpers.InitializeSharedTestDB(); err != nil {
		panic("Failed to initialize shared test database: " + err.Error())
	}
	defer helpers.CloseSharedTestDB()

	os.Exit(m.Run())
}
