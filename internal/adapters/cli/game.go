package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spacetraders-economy/internal/adapters/archive"
	simQuery "github.com/andrescamacho/spacetraders-economy/internal/application/simulation/queries"
	"github.com/andrescamacho/spacetraders-economy/internal/application/worldgen"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
	"github.com/andrescamacho/spacetraders-economy/internal/infrastructure/config"
)

// NewGameCommand creates the new command
func NewGameCommand() *cobra.Command {
	var (
		name       string
		seed       int64
		difficulty int
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game",
		Long: `Generate a universe and start a new game docked at its start location.

The universe catalog comes from simulation.universe_file (built-in when empty).
Location levels the catalog leaves out are generated from the seed, so the same
seed always produces the same world. The new game becomes the default game.

Examples:
  spacetraders-sim new
  spacetraders-sim new --name Vega --seed 42 --difficulty 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ctx, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			sc := s.cfg.Simulation
			if cmd.Flags().Changed("name") {
				sc.PlayerName = name
			}
			if cmd.Flags().Changed("seed") {
				sc.Seed = seed
			}
			if cmd.Flags().Changed("difficulty") {
				sc.Difficulty = difficulty
			}
			if sc.Seed == 0 {
				sc.Seed = time.Now().UnixNano()
			}

			universe, err := worldgen.LoadUniverse(sc.UniverseFile)
			if err != nil {
				return err
			}
			game, err := worldgen.NewGame(gameConfig(sc), universe, worldgen.Params{
				Seed:          sc.Seed,
				PlayerName:    sc.PlayerName,
				StartingFunds: sc.StartingFunds,
				CargoCapacity: sc.CargoCapacity,
				Clock:         shared.NewRealClock(),
				Metrics:       s.recorder,
			})
			if err != nil {
				return fmt.Errorf("failed to create game: %w", err)
			}
			s.provider.G = game
			if err := s.save(ctx); err != nil {
				return err
			}

			if err := setDefaultGame(game.ID()); err != nil {
				fmt.Printf("Warning: %v\n", err)
			}

			fmt.Printf("New game in %s (seed %d)\n", universe.Name, sc.Seed)
			fmt.Printf("  Game ID:   %s\n", game.ID())
			fmt.Printf("  Captain:   %s\n", game.Profile().Name)
			fmt.Printf("  Docked at: %s\n", game.CurrentLocation())
			fmt.Printf("  Funds:     %s\n", credits(game.Ship().Funds()))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Captain name")
	cmd.Flags().Int64Var(&seed, "seed", 0, "World and random seed (0 picks one)")
	cmd.Flags().IntVar(&difficulty, "difficulty", 1, "Price volatility: 0 easy, 1 normal, 2 hard")

	return cmd
}

// NewGamesCommand creates the games command with subcommands
func NewGamesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Manage saved games",
		Long: `List and delete saved games.

Examples:
  spacetraders-sim games list
  spacetraders-sim games delete <game-id>`,
	}

	cmd.AddCommand(newGamesListCommand())
	cmd.AddCommand(newGamesDeleteCommand())

	return cmd
}

func newGamesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved games, most recently saved first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ctx, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			summaries, err := s.games.List(ctx)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println("No saved games. Start one with 'spacetraders-sim new'.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCAPTAIN\tTURN\tLOCATION\tFUNDS\tREPUTATION\tSAVED")
			for _, g := range summaries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%d\t%s\n",
					g.ID, g.PlayerName, g.Turn, g.Location, credits(g.Funds), g.Reputation,
					g.SavedAt.Format(time.DateTime))
			}
			return w.Flush()
		},
	}
}

func newGamesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <game-id>",
		Short: "Delete a saved game with its journal and price history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ctx, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			id := args[0]
			if err := s.games.Delete(ctx, id); err != nil {
				return err
			}
			if err := errors.Join(s.journal.DeleteByGame(ctx, id), s.prices.DeleteByGame(ctx, id)); err != nil {
				return err
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err == nil {
				if userCfg, err := userConfigHandler.Load(); err == nil && userCfg.DefaultGameID == id {
					_ = userConfigHandler.ClearDefaultGame()
				}
			}

			fmt.Printf("Deleted game %s\n", id)
			return nil
		},
	}
}

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show ship, cargo and captain",
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(func(ctx context.Context, s *session) error {
				st, err := send[*simQuery.GetStatusResponse](ctx, s, &simQuery.GetStatusQuery{})
				if err != nil {
					return err
				}

				fmt.Printf("Game %s, turn %d\n", st.GameID, st.Turn)
				fmt.Printf("  Docked at:   %s\n", st.Location)
				fmt.Printf("  Funds:       %s\n", credits(st.Funds))
				fmt.Printf("  Cargo:       %d/%d\n", st.CargoUsed, st.Capacity)
				for _, c := range shared.AllCommodities() {
					if qty := st.Cargo[c.String()]; qty > 0 {
						fmt.Printf("    %-6s %d\n", c, qty)
					}
				}
				fmt.Printf("  Hull damage: %d\n", st.Damage)
				fmt.Printf("  Attack/Defense/Speed: %d/%d/%d\n", st.Attack, st.Defense, st.Speed)
				fmt.Printf("  Rank:        %s (reputation %d)\n", st.Rank, st.Reputation)
				fmt.Printf("  Plot points: %d\n", st.PlotPoints)
				fmt.Printf("  Trade P&L:   %s\n", signedCredits(st.TradeProfit))
				fmt.Printf("  Discovered:  %s\n", strings.Join(st.Discovered, ", "))
				return nil
			})
		},
	}
}

// NewExportCommand creates the export command
func NewExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Write the game to a compressed archive",
		Long: `Write the selected game to a zstd-compressed snapshot archive.

Example:
  spacetraders-sim export vega.sim.zst`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(func(ctx context.Context, s *session) error {
				snap, err := s.Game().Snapshot()
				if err != nil {
					return err
				}
				if err := archive.WriteFile(args[0], snap); err != nil {
					return err
				}
				fmt.Printf("Exported game %s (turn %d) to %s\n", snap.ID, snap.Turn, args[0])
				return nil
			})
		},
	}
}

// NewImportCommand creates the import command
func NewImportCommand() *cobra.Command {
	var makeDefault bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore a game from an archive",
		Long: `Restore a game written by 'export'. An existing save with the same ID is
overwritten.

Example:
  spacetraders-sim import vega.sim.zst --default`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, ctx, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			header, snap, err := archive.ReadFile(args[0])
			if err != nil {
				return err
			}
			if err := s.restore(snap); err != nil {
				return err
			}
			if err := s.save(ctx); err != nil {
				return err
			}
			if makeDefault {
				if err := setDefaultGame(snap.ID); err != nil {
					fmt.Printf("Warning: %v\n", err)
				}
			}

			fmt.Printf("Imported game %s (turn %d, saved %s)\n",
				header.GameID, header.Turn, header.SavedAt.Format(time.DateTime))
			return nil
		},
	}

	cmd.Flags().BoolVar(&makeDefault, "default", false, "Make the imported game the default")

	return cmd
}

func setDefaultGame(id string) error {
	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return fmt.Errorf("failed to open user config: %w", err)
	}
	if err := userConfigHandler.SetDefaultGame(id); err != nil {
		return fmt.Errorf("failed to set default game: %w", err)
	}
	return nil
}
