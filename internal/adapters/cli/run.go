package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/andrescamacho/spacetraders-economy/internal/adapters/metrics"
	"github.com/andrescamacho/spacetraders-economy/internal/application/common"
	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation"
	simCmd "github.com/andrescamacho/spacetraders-economy/internal/application/simulation/commands"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		turns int
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Advance the game by one or more turns",
		Long: `Advance turns: prices move, platforms produce, bans and cooldowns decay and
contracts tick down. Prices of every turn are recorded for 'history'.

Turns are paced by simulation.turns_per_second (0 runs back to back). With
metrics enabled a Prometheus endpoint is served while the run lasts.
Ctrl-C stops after the current turn and saves.

Examples:
  spacetraders-sim run
  spacetraders-sim run --turns 100 --quiet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if turns <= 0 {
				return fmt.Errorf("--turns must be positive")
			}
			s, ctx, err := openGameSession()
			if err != nil {
				return err
			}
			defer s.Close()

			if s.cfg.Metrics.Enabled {
				server, err := metrics.NewServer(s.cfg.Metrics.Host, s.cfg.Metrics.Port, s.cfg.Metrics.Path)
				if err != nil {
					return err
				}
				if err := server.Start(); err != nil {
					return err
				}
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					server.Shutdown(shutdownCtx)
				}()
				fmt.Printf("Metrics at %s\n", s.cfg.Metrics.Endpoint())
			}

			runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			advanced, runErr := runTurns(runCtx, s, turns, newTurnLimiter(s.cfg.Simulation.TurnsPerSecond), quiet)
			if errors.Is(runErr, context.Canceled) {
				fmt.Println("Interrupted")
				runErr = nil
			}

			// Save even after a failure so completed turns are not lost
			if err := s.save(ctx); err != nil {
				return errors.Join(runErr, err)
			}
			game := s.Game()
			fmt.Printf("Advanced %d turn(s), now turn %d, funds %s\n", advanced, game.Turn(), credits(game.Ship().Funds()))
			return runErr
		},
	}

	cmd.Flags().IntVarP(&turns, "turns", "n", 1, "Turns to advance")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the final summary")

	return cmd
}

func newTurnLimiter(turnsPerSecond float64) *rate.Limiter {
	if turnsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(turnsPerSecond), 1)
}

// runTurns advances one turn at a time so each turn's prices are recorded and
// a cancellation stops between turns
func runTurns(ctx context.Context, s *session, turns int, limiter *rate.Limiter, quiet bool) (int, error) {
	logger := common.LoggerFromContext(ctx)
	gameID := s.Game().ID()

	for i := 0; i < turns; i++ {
		if err := limiter.Wait(ctx); err != nil {
			return i, err
		}
		resp, err := send[*simCmd.AdvanceTurnResponse](ctx, s, &simCmd.AdvanceTurnCommand{Turns: 1})
		if err != nil {
			return i, err
		}
		for _, turnErr := range resp.Errs {
			logger.Log(common.LevelWarning, "turn completed with location errors", map[string]interface{}{
				"error": turnErr.Error(),
			})
		}

		for _, report := range resp.Reports {
			records, err := report.PriceRecords()
			if err != nil {
				return i, err
			}
			if err := s.prices.Record(ctx, gameID, records); err != nil {
				return i, fmt.Errorf("failed to record prices for turn %d: %w", report.Turn, err)
			}
			if !quiet {
				printTurn(report)
			}
		}
	}
	return turns, nil
}

func printTurn(r *simulation.TurnReport) {
	var notes []string
	for _, loc := range r.Locations {
		if loc.Err != nil {
			notes = append(notes, fmt.Sprintf("%s: market error", loc.Name))
			continue
		}
		for _, pc := range loc.PriceChanges {
			if pc.Banned {
				notes = append(notes, fmt.Sprintf("%s banned at %s for %d turns", pc.Commodity, loc.Name, pc.BanTurns))
			}
		}
		for _, c := range loc.LiftedBans {
			notes = append(notes, fmt.Sprintf("%s ban lifted at %s", c, loc.Name))
		}
		for _, out := range loc.Output {
			notes = append(notes, fmt.Sprintf("%s +%d %s", loc.Name, out.Units, out.Resource))
		}
	}
	line := fmt.Sprintf("Turn %d", r.Turn)
	if len(notes) > 0 {
		line += ": " + strings.Join(notes, "; ")
	}
	fmt.Println(line)
	printTransitions(r.Transitions)
}
