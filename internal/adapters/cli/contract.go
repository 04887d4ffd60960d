package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	simCmd "github.com/andrescamacho/spacetraders-economy/internal/application/simulation/commands"
	simQuery "github.com/andrescamacho/spacetraders-economy/internal/application/simulation/queries"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/contract"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/quest"
)

// NewContractsCommand creates the contracts command
func NewContractsCommand() *cobra.Command {
	var showFinished bool

	cmd := &cobra.Command{
		Use:   "contracts",
		Short: "List offered and active contracts and quests",
		Long: `List the contract board: offers, active contracts with their progress,
and quests. Cargo offers include a profitability estimate at current prices.

Examples:
  spacetraders-sim contracts
  spacetraders-sim contracts --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(func(ctx context.Context, s *session) error {
				board, err := send[*simQuery.GetContractsResponse](ctx, s, &simQuery.GetContractsQuery{})
				if err != nil {
					return err
				}

				fmt.Printf("Offered (%d):\n", len(board.Offered))
				for _, c := range board.Offered {
					printContract(c)
				}
				fmt.Printf("\nActive (%d/%d):\n", len(board.Active), board.ActiveCap)
				for _, c := range board.Active {
					printContract(c)
				}
				if len(board.Quests) > 0 {
					fmt.Printf("\nQuests (%d):\n", len(board.Quests))
					for _, q := range board.Quests {
						printQuest(q)
					}
				}
				if showFinished {
					fmt.Printf("\nFinished (%d):\n", len(board.Finished))
					for _, c := range board.Finished {
						printContract(c)
					}
					fmt.Printf("\nCompleted quests (%d):\n", len(board.CompletedQuests))
					for _, q := range board.CompletedQuests {
						printQuest(q)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showFinished, "all", false, "Include finished contracts and completed quests")

	return cmd
}

// NewContractCommand creates the contract command with subcommands
func NewContractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Accept or claim a contract",
		Long: `Accept an offered contract or claim the reward of a completed one.

Examples:
  spacetraders-sim contract accept <contract-id>
  spacetraders-sim contract claim <contract-id>`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "accept <contract-id>",
		Short: "Accept an offered contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return act(func(ctx context.Context, s *session) error {
				st, err := send[*contract.State](ctx, s, &simCmd.AcceptContractCommand{ContractID: args[0]})
				if err != nil {
					return err
				}
				fmt.Printf("Accepted %q, %d turns to complete\n", st.Title, st.TurnsRemaining)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "claim <contract-id>",
		Short: "Claim a completed contract's reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return act(func(ctx context.Context, s *session) error {
				resp, err := send[*simCmd.ClaimContractResponse](ctx, s, &simCmd.ClaimContractCommand{ContractID: args[0]})
				if err != nil {
					return err
				}
				fmt.Printf("Claimed %s\n", formatReward(resp.Reward))
				fmt.Printf("Funds: %s\n", credits(s.Game().Ship().Funds()))
				return nil
			})
		},
	})

	return cmd
}

// NewDeliverCommand creates the deliver command
func NewDeliverCommand() *cobra.Command {
	var (
		class        string
		satisfaction int
	)

	cmd := &cobra.Command{
		Use:   "deliver <passengers>",
		Short: "Report passengers delivered at the docked location",
		Long: `Report a passenger drop-off. Active passenger contracts for this destination
and class count the passengers and their average satisfaction.

Example:
  spacetraders-sim deliver 12 --class VIP --satisfaction 85`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := parseQuantity(args[0])
			if err != nil {
				return err
			}
			return act(func(ctx context.Context, s *session) error {
				resp, err := send[*simCmd.ProgressResponse](ctx, s, &simCmd.DeliverPassengersCommand{
					Count:        count,
					ClassCode:    class,
					Satisfaction: satisfaction,
				})
				if err != nil {
					return err
				}
				fmt.Printf("Delivered %d passengers to %s\n", count, s.Game().CurrentLocation())
				printTransitions(resp.Transitions)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&class, "class", "", "Passenger class code")
	cmd.Flags().IntVar(&satisfaction, "satisfaction", 100, "Average satisfaction (0-100)")

	return cmd
}

func printContract(c simQuery.ContractDTO) {
	fmt.Printf("  %s  %s [%s]\n", c.ID, c.Title, strings.ToLower(string(c.Status)))
	fmt.Printf("      %s, reward %s, penalty %d rep, %d turns left\n",
		describeRequirement(c.State), formatReward(c.FinalReward), c.Penalty, c.TurnsRemaining)
	if c.Claimed != nil {
		fmt.Printf("      claimed %s\n", formatReward(*c.Claimed))
	}
	if p := c.Profitability; p != nil {
		verdict := "profitable"
		if !p.IsProfitable {
			verdict = "unprofitable"
		}
		fmt.Printf("      %s: net %s over %d trip(s)", verdict, signedCredits(p.NetProfit), p.TripsRequired)
		if p.Reason != "" {
			fmt.Printf(" (%s)", p.Reason)
		}
		fmt.Println()
	}
}

func describeRequirement(st contract.State) string {
	switch {
	case st.Cargo != nil:
		return fmt.Sprintf("deliver %d/%d %s from %s to %s",
			st.Progress.Delivered, st.Cargo.Amount, st.Cargo.Commodity, st.Cargo.Source, st.Cargo.Destination)
	case st.Passenger != nil:
		class := st.Passenger.ClassCode
		if class == "" {
			class = "any"
		}
		return fmt.Sprintf("carry %d/%d %s-class passengers to %s (min satisfaction %d)",
			st.Progress.Passengers, st.Passenger.Count, class, st.Passenger.Destination, st.Passenger.MinSatisfaction)
	case st.Special != nil:
		return fmt.Sprintf("deliver %d/%d %s from %s, visiting %d/%d of %s",
			st.Progress.Delivered, st.Special.Amount, st.Special.Commodity, st.Special.Source,
			len(st.Progress.Visited), len(st.Special.Destinations), strings.Join(st.Special.Destinations, ", "))
	}
	return string(st.Kind)
}

func printQuest(q quest.State) {
	status := "active"
	if q.Completed {
		status = "completed"
	}
	fmt.Printf("  %s  %s [%s %s] %d/%d, reward %s\n",
		q.ID, q.Name, strings.ToLower(string(q.Type)), status, q.Progress, questTarget(q), formatReward(q.Reward))
}

func questTarget(q quest.State) int {
	switch {
	case q.Cargo != nil:
		return q.Cargo.Target()
	case q.Combat != nil:
		return q.Combat.Target()
	case q.Profit != nil:
		return q.Profit.Target()
	case q.Exploration != nil:
		return q.Exploration.Target()
	case q.Research != nil:
		return q.Research.Target()
	}
	return 0
}
