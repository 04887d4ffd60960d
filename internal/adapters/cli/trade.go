package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/spacetraders-economy/internal/application/simulation"
	simCmd "github.com/andrescamacho/spacetraders-economy/internal/application/simulation/commands"
	simQuery "github.com/andrescamacho/spacetraders-economy/internal/application/simulation/queries"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/market"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/shared"
)

// NewMarketCommand creates the market command
func NewMarketCommand() *cobra.Command {
	var locationName string

	cmd := &cobra.Command{
		Use:   "market",
		Short: "Show a market board",
		Long: `Show prices, bans and stock at a location. Buy and sell columns include tax
at the current rank.

Examples:
  spacetraders-sim market
  spacetraders-sim market --location Rustbelt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(func(ctx context.Context, s *session) error {
				board, err := send[*simQuery.GetMarketResponse](ctx, s, &simQuery.GetMarketQuery{Location: locationName})
				if err != nil {
					return err
				}

				fmt.Printf("%s (%s, %s economy), tax %s\n",
					board.Location, strings.ToLower(board.Type), strings.ToLower(board.Economy), percent(board.TaxRate))
				if len(board.Buildings) > 0 {
					fmt.Printf("Buildings: %s\n", strings.Join(board.Buildings, ", "))
				}
				fmt.Println()

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "COMMODITY\tPRICE\tBUY\tSELL\tSTOCK\tBOUGHT\tSOLD\tSTATUS")
				for _, r := range board.Rows {
					status := "open"
					switch {
					case !r.Listed:
						status = "not traded here"
					case r.Banned:
						status = fmt.Sprintf("banned (%d turns)", r.BanTurns)
					case !r.Tradeable:
						status = "closed"
					}
					fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
						r.Commodity, r.Price, r.UnitBuyCost, r.UnitSellNet, r.Stock, r.Bought, r.Sold, status)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&locationName, "location", "", "Location (default: where the ship is docked)")

	return cmd
}

// NewTaxCommand creates the tax command
func NewTaxCommand() *cobra.Command {
	var rank string

	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Show tax rates at every location",
		Long: `Show the trade tax rate at every location for the captain's rank, or for
another rank to see what a promotion is worth.

Examples:
  spacetraders-sim tax
  spacetraders-sim tax --rank Commodore`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(func(ctx context.Context, s *session) error {
				rates, err := send[*simQuery.GetTaxRatesResponse](ctx, s, &simQuery.GetTaxRatesQuery{Rank: rank})
				if err != nil {
					return err
				}

				fmt.Printf("Rank %s (x%.2f)\n\n", rates.Rank, rates.RankMultiplier)
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "LOCATION\tTYPE\tBUILDINGS\tRATE")
				for _, r := range rates.Rates {
					fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.Location, strings.ToLower(r.Type), r.BuildingCount, percent(r.Rate))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&rank, "rank", "", "Rank to price (default: current rank)")

	return cmd
}

// NewHistoryCommand creates the history command
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <location> <commodity>",
		Short: "Show recorded prices and volatility for a market",
		Long: `Show the price history recorded by 'run' for one commodity at one location,
with mean, standard deviation and ban counts.

Example:
  spacetraders-sim history "Terra Prime" TECH --limit 30`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			commodity, err := shared.ParseCommodity(args[1])
			if err != nil {
				return err
			}
			return view(func(ctx context.Context, s *session) error {
				records, err := s.prices.History(ctx, s.Game().ID(), args[0], commodity, limit)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Println("No price history recorded yet. Advance turns with 'spacetraders-sim run'.")
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "TURN\tPRICE\tSTATUS")
				for _, r := range records {
					status := ""
					if r.Banned() {
						status = "banned"
					}
					fmt.Fprintf(w, "%d\t%d\t%s\n", r.Turn(), r.Price(), status)
				}
				if err := w.Flush(); err != nil {
					return err
				}

				stats := market.Summarize(records)
				fmt.Printf("\n%d samples: mean %.1f, std dev %.1f, range %d-%d, largest move %.1f%%, banned %d turns\n",
					stats.Samples, stats.Mean, stats.StdDeviation, stats.Min, stats.Max, stats.MaxChange, stats.BanCount)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Most recent turns to show (0 for all)")

	return cmd
}

// NewBuyCommand creates the buy command
func NewBuyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "buy <commodity> <quantity>",
		Short: "Buy cargo at the docked market",
		Long: `Buy cargo at the current price plus tax.

Example:
  spacetraders-sim buy TECH 10`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			return act(func(ctx context.Context, s *session) error {
				res, err := send[*simulation.TradeResult](ctx, s, &simCmd.BuyCargoCommand{Commodity: args[0], Quantity: qty})
				if err != nil {
					return err
				}
				fmt.Printf("Bought %d %s at %d (tax %s) for %s\n",
					res.Quantity, res.Commodity, res.UnitPrice, percent(res.TaxRate), credits(-res.Transaction.Amount()))
				fmt.Printf("Funds: %s\n", credits(res.Transaction.BalanceAfter()))
				printTransitions(res.Transitions)
				return nil
			})
		},
	}
}

// NewSellCommand creates the sell command
func NewSellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sell <commodity> <quantity>",
		Short: "Sell cargo at the docked market",
		Long: `Sell cargo at the current price less tax. Deliveries for active cargo
contracts are counted when their destination is the docked location.

Example:
  spacetraders-sim sell TECH 10`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			return act(func(ctx context.Context, s *session) error {
				res, err := send[*simulation.TradeResult](ctx, s, &simCmd.SellCargoCommand{Commodity: args[0], Quantity: qty})
				if err != nil {
					return err
				}
				proceeds := 0
				if res.Transaction != nil {
					proceeds = res.Transaction.Amount()
				}
				fmt.Printf("Sold %d %s at %d (tax %s) for %s, profit %s\n",
					res.Quantity, res.Commodity, res.UnitPrice, percent(res.TaxRate), credits(proceeds), signedCredits(res.Profit))
				fmt.Printf("Funds: %s\n", credits(s.Game().Ship().Funds()))
				printTransitions(res.Transitions)
				return nil
			})
		},
	}
}

// NewTravelCommand creates the travel command
func NewTravelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "travel <destination>",
		Short: "Fly to another location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return act(func(ctx context.Context, s *session) error {
				res, err := send[*simulation.TravelResult](ctx, s, &simCmd.TravelCommand{Destination: args[0]})
				if err != nil {
					return err
				}
				fmt.Printf("Travelled from %s to %s\n", res.From, res.To)
				if res.FirstVisit {
					fmt.Println("First visit: location discovered")
				}
				printTransitions(res.Transitions)
				return nil
			})
		},
	}
}

func parseQuantity(s string) (int, error) {
	qty, err := strconv.Atoi(s)
	if err != nil || qty <= 0 {
		return 0, fmt.Errorf("quantity must be a positive integer, got %q", s)
	}
	return qty, nil
}
