package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	simCmd "github.com/andrescamacho/spacetraders-economy/internal/application/simulation/commands"
)

// NewQuestCommand creates the quest command with subcommands
func NewQuestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Start quests",
		Long: `Quests complete on their own once their goal is reached and pay at once.

Quest types and their subject:
  CARGO        - hold <target> units of a commodity (subject: commodity)
  COMBAT       - win <target> fights (subject: enemy type)
  PROFIT       - reach <target> credits of trade profit
  EXPLORATION  - discover <target> locations
  RESEARCH     - collect <target> research points

Examples:
  spacetraders-sim quest start "Salt Hoard" --type CARGO --subject SALT --target 50 --money 800
  spacetraders-sim quest start "Pirate Bane" --type COMBAT --subject PIRATE --target 3 --reputation 10`,
	}

	cmd.AddCommand(newQuestStartCommand())

	return cmd
}

func newQuestStartCommand() *cobra.Command {
	var cmdArgs simCmd.StartQuestCommand

	cmd := &cobra.Command{
		Use:   "start <name>",
		Short: "Start a quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdArgs.Name = args[0]
			return act(func(ctx context.Context, s *session) error {
				resp, err := send[*simCmd.StartQuestResponse](ctx, s, &cmdArgs)
				if err != nil {
					return err
				}
				fmt.Printf("Started quest %s (%s)\n", cmdArgs.Name, resp.QuestID)
				if !resp.Announce {
					fmt.Println("  (already offered before)")
				}
				printTransitions(resp.Transitions)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&cmdArgs.Type, "type", "", "Quest type [required]")
	cmd.Flags().StringVar(&cmdArgs.Subject, "subject", "", "Commodity (CARGO) or enemy type (COMBAT)")
	cmd.Flags().IntVar(&cmdArgs.Target, "target", 0, "Goal to reach [required]")
	cmd.Flags().IntVar(&cmdArgs.Money, "money", 0, "Credit reward")
	cmd.Flags().IntVar(&cmdArgs.Reputation, "reputation", 0, "Reputation reward")
	cmd.Flags().IntVar(&cmdArgs.PlotPoints, "plot-points", 0, "Plot point reward")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("target")

	return cmd
}

// NewCombatCommand creates the combat command
func NewCombatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "combat <enemy-type>",
		Short: "Record a combat victory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return act(func(ctx context.Context, s *session) error {
				resp, err := send[*simCmd.ProgressResponse](ctx, s, &simCmd.RecordCombatVictoryCommand{EnemyType: args[0]})
				if err != nil {
					return err
				}
				fmt.Printf("Victory over %s recorded (%d total)\n", args[0], s.Game().Profile().CombatVictories[args[0]])
				printTransitions(resp.Transitions)
				return nil
			})
		},
	}
}

// NewResearchCommand creates the research command
func NewResearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "research <points>",
		Short: "Add research points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			points, err := parseQuantity(args[0])
			if err != nil {
				return err
			}
			return act(func(ctx context.Context, s *session) error {
				resp, err := send[*simCmd.ProgressResponse](ctx, s, &simCmd.AddResearchCommand{Points: points})
				if err != nil {
					return err
				}
				fmt.Printf("Research points: %d\n", s.Game().Profile().ResearchPoints)
				printTransitions(resp.Transitions)
				return nil
			})
		},
	}
}

// NewMilestoneCommand creates the milestone command
func NewMilestoneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "milestone <name>",
		Short: "Record a story milestone",
		Long: `Record a story milestone. Reaching special_contracts unlocks special
multi-destination contracts in future offers.

Example:
  spacetraders-sim milestone special_contracts`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return act(func(ctx context.Context, s *session) error {
				resp, err := send[*simCmd.ReachMilestoneResponse](ctx, s, &simCmd.ReachMilestoneCommand{Name: args[0]})
				if err != nil {
					return err
				}
				if resp.First {
					fmt.Printf("Milestone %s reached\n", resp.Name)
				} else {
					fmt.Printf("Milestone %s was already reached\n", resp.Name)
				}
				return nil
			})
		},
	}
}
