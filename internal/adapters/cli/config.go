package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spacetraders-economy/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage spacetraders-sim configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (SIM_* prefix, e.g. SIM_SIMULATION_DIFFICULTY)
2. Config file (config.yaml)
3. Default values

User preferences (default game) are stored in ~/.spacetraders-sim/config.json

Examples:
  spacetraders-sim config show
  spacetraders-sim config set-game <game-id>
  spacetraders-sim config clear-game`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetGameCommand())
	cmd.AddCommand(newConfigClearGameCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load system config
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			// Load user config
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("spacetraders-sim Configuration")
			fmt.Println("==============================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultGameID != "" {
				fmt.Printf("  Default Game:     %s\n", userCfg.DefaultGameID)
			} else {
				fmt.Printf("  Default Game:     (not set)\n")
			}

			sc := cfg.Simulation
			fmt.Println("\nSimulation:")
			if sc.Seed == 0 {
				fmt.Printf("  Seed:             (random)\n")
			} else {
				fmt.Printf("  Seed:             %d\n", sc.Seed)
			}
			fmt.Printf("  Difficulty:       %d\n", sc.Difficulty)
			if sc.UniverseFile != "" {
				fmt.Printf("  Universe:         %s\n", sc.UniverseFile)
			} else {
				fmt.Printf("  Universe:         (built-in)\n")
			}
			fmt.Printf("  Starting Funds:   %s\n", credits(sc.StartingFunds))
			fmt.Printf("  Cargo Capacity:   %d\n", sc.CargoCapacity)
			fmt.Printf("  Prod. Cooldown:   %d turns\n", sc.ProductionCooldown)
			fmt.Printf("  Contracts:        cap %d, refresh every %d turns, special chance %.0f%%\n",
				sc.ActiveContractCap, sc.ContractRefreshInterval, sc.SpecialContractChance*100)
			fmt.Printf("  Costs:            platform %s, building %s, repair %s/pt, upgrade %s\n",
				credits(sc.PlatformCost), credits(sc.BuildingCost), credits(sc.RepairCostPerPoint), credits(sc.UpgradeCost))
			if sc.TurnsPerSecond > 0 {
				fmt.Printf("  Run Pace:         %.2f turns/s\n", sc.TurnsPerSecond)
			} else {
				fmt.Printf("  Run Pace:         unthrottled\n")
			}

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			fmt.Println("\nMetrics:")
			if cfg.Metrics.Enabled {
				fmt.Printf("  Endpoint:         %s (during 'run')\n", cfg.Metrics.Endpoint())
			} else {
				fmt.Printf("  Enabled:          false\n")
			}
			return nil
		},
	}
}

func newConfigSetGameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-game <game-id>",
		Short: "Set the default game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ctx, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			// Refuse ids that do not name a saved game
			if _, err := s.games.Load(ctx, args[0]); err != nil {
				return err
			}
			if err := setDefaultGame(args[0]); err != nil {
				return err
			}
			fmt.Printf("Default game set to %s\n", args[0])
			return nil
		},
	}
}

func newConfigClearGameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-game",
		Short: "Clear the default game",
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return err
			}
			if err := userConfigHandler.ClearDefaultGame(); err != nil {
				return err
			}
			fmt.Println("Default game cleared")
			return nil
		},
	}
}

// maskPassword hides the password of a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
