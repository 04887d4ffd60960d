package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	gameID     string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spacetraders-sim",
		Short: "SpaceTraders economy - a turn-based trading simulation",
		Long: `spacetraders-sim runs a single-player trading economy: markets whose prices
drift every turn, location-dependent taxes, mining and production, and
contracts and quests with rewards and penalties.

Every command loads the saved game, applies one action and saves it again.
The game is chosen with --game or the default set by 'new'.

Examples:
  spacetraders-sim new --name Vega --seed 42
  spacetraders-sim status
  spacetraders-sim market
  spacetraders-sim buy TECH 10
  spacetraders-sim travel "Halcyon Station"
  spacetraders-sim sell TECH 10
  spacetraders-sim run --turns 20
  spacetraders-sim contracts
  spacetraders-sim ledger report profit-loss`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml or /etc/spacetraders-sim/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&gameID, "game", "",
		"Saved game ID (default: the game set by 'new' or 'config set-game')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewGameCommand())
	rootCmd.AddCommand(NewGamesCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewMarketCommand())
	rootCmd.AddCommand(NewTaxCommand())
	rootCmd.AddCommand(NewHistoryCommand())
	rootCmd.AddCommand(NewBuyCommand())
	rootCmd.AddCommand(NewSellCommand())
	rootCmd.AddCommand(NewTravelCommand())
	rootCmd.AddCommand(NewContractsCommand())
	rootCmd.AddCommand(NewContractCommand())
	rootCmd.AddCommand(NewDeliverCommand())
	rootCmd.AddCommand(NewDiscoverCommand())
	rootCmd.AddCommand(NewPlatformCommand())
	rootCmd.AddCommand(NewConstructCommand())
	rootCmd.AddCommand(NewRepairCommand())
	rootCmd.AddCommand(NewUpgradeCommand())
	rootCmd.AddCommand(NewQuestCommand())
	rootCmd.AddCommand(NewCombatCommand())
	rootCmd.AddCommand(NewResearchCommand())
	rootCmd.AddCommand(NewMilestoneCommand())
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewExportCommand())
	rootCmd.AddCommand(NewImportCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
