package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	simCmd "github.com/andrescamacho/spacetraders-economy/internal/application/simulation/commands"
	"github.com/andrescamacho/spacetraders-economy/internal/domain/production"
)

// NewDiscoverCommand creates the discover command
func NewDiscoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "discover <resource>",
		Short: "Survey the docked location for a mineable deposit",
		Long: `Survey for SALT or FUEL. Success depends on the location's mining
efficiency and type; a found deposit can then carry a platform.

Example:
  spacetraders-sim discover SALT`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return act(func(ctx context.Context, s *session) error {
				resp, err := send[*simCmd.DiscoverDepositResponse](ctx, s, &simCmd.DiscoverDepositCommand{Resource: args[0]})
				if err != nil {
					return err
				}
				if resp.Found == 0 {
					fmt.Printf("No %s deposit found at %s\n", resp.Resource, s.Game().CurrentLocation())
					return nil
				}
				fmt.Printf("Found a %s deposit of %d units at %s\n", resp.Resource, resp.Found, s.Game().CurrentLocation())
				return nil
			})
		},
	}
}

// NewPlatformCommand creates the platform command
func NewPlatformCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "platform <resource>",
		Short: "Build an extraction platform on a discovered deposit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return act(func(ctx context.Context, s *session) error {
				p, err := send[*production.Platform](ctx, s, &simCmd.BuildPlatformCommand{Resource: args[0]})
				if err != nil {
					return err
				}
				fmt.Printf("Built a %s platform at %s\n", p.Resource, s.Game().CurrentLocation())
				fmt.Printf("Funds: %s\n", credits(s.Game().Ship().Funds()))
				return nil
			})
		},
	}
}

// NewConstructCommand creates the construct command
func NewConstructCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "construct <building>",
		Short: "Construct a building at the docked location",
		Long: `Construct a building. Each building raises the location's tax rate.

Buildings: STOCK_EXCHANGE, FACTORY, FARM, REFINERY, SHIPYARD, RESEARCH_LAB

Example:
  spacetraders-sim construct FACTORY`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return act(func(ctx context.Context, s *session) error {
				if _, err := s.mediator.Send(ctx, &simCmd.ConstructBuildingCommand{Building: args[0]}); err != nil {
					return err
				}
				fmt.Printf("Constructed %s at %s\n", args[0], s.Game().CurrentLocation())
				fmt.Printf("Funds: %s\n", credits(s.Game().Ship().Funds()))
				return nil
			})
		},
	}
}

// NewRepairCommand creates the repair command
func NewRepairCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repair [points]",
		Short: "Repair hull damage",
		Long: `Repair up to the given points of hull damage, or all of it when omitted.

Example:
  spacetraders-sim repair 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return act(func(ctx context.Context, s *session) error {
				points := s.Game().Ship().Damage()
				if len(args) == 1 {
					var err error
					if points, err = parseQuantity(args[0]); err != nil {
						return err
					}
				}
				if points == 0 {
					fmt.Println("Hull is undamaged")
					return nil
				}
				repaired, err := send[int](ctx, s, &simCmd.RepairShipCommand{Points: points})
				if err != nil {
					return err
				}
				fmt.Printf("Repaired %d points, damage now %d\n", repaired, s.Game().Ship().Damage())
				fmt.Printf("Funds: %s\n", credits(s.Game().Ship().Funds()))
				return nil
			})
		},
	}
}

// NewUpgradeCommand creates the upgrade command
func NewUpgradeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade <stat>",
		Short: "Upgrade a ship stat",
		Long: `Upgrade ATTACK, DEFENSE or SPEED by one point.

Example:
  spacetraders-sim upgrade speed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return act(func(ctx context.Context, s *session) error {
				if _, err := s.mediator.Send(ctx, &simCmd.UpgradeShipCommand{Stat: strings.ToUpper(args[0])}); err != nil {
					return err
				}
				ship := s.Game().Ship()
				fmt.Printf("Upgraded %s: attack %d, defense %d, speed %d\n",
					strings.ToLower(args[0]), ship.Attack(), ship.Defense(), ship.Speed())
				fmt.Printf("Funds: %s\n", credits(ship.Funds()))
				return nil
			})
		},
	}
}
