package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	ledgerQuery "github.com/andrescamacho/spacetraders-economy/internal/application/ledger/queries"
)

// turnRange holds the --from-turn/--to-turn flags shared by ledger commands
type turnRange struct {
	from int
	to   int
}

func (r *turnRange) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&r.from, "from-turn", -1, "First turn, inclusive")
	cmd.Flags().IntVar(&r.to, "to-turn", -1, "Last turn, inclusive")
}

func (r *turnRange) bounds() (from, to *int) {
	if r.from >= 0 {
		from = &r.from
	}
	if r.to >= 0 {
		to = &r.to
	}
	return from, to
}

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Financial ledger operations",
		Long: `View and analyze the ship's journal.

Every change of funds is journaled: cargo trades, contract and quest
rewards, repairs, upgrades, platforms and construction. The journal is stored
with each save, so these commands read the saved game.

Examples:
  spacetraders-sim ledger list --limit 20
  spacetraders-sim ledger list --category TRADING_REVENUE
  spacetraders-sim ledger report profit-loss --from-turn 10 --to-turn 40
  spacetraders-sim ledger report cash-flow`,
	}

	// Add subcommands
	cmd.AddCommand(newLedgerListCommand())
	cmd.AddCommand(newLedgerReportCommand())

	return cmd
}

// newLedgerListCommand creates the ledger list subcommand
func newLedgerListCommand() *cobra.Command {
	var (
		turns    turnRange
		category string
		txType   string
		limit    int
		offset   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List journal entries, oldest first, with optional filtering.

Categories:
  TRADING_REVENUE     - Income from selling cargo
  TRADING_COSTS       - Cargo purchases
  OBLIGATION_REVENUE  - Contract and quest rewards
  SHIP_MAINTENANCE    - Repairs and upgrades
  INFRASTRUCTURE      - Platforms and buildings

Examples:
  spacetraders-sim ledger list --limit 10
  spacetraders-sim ledger list --type SELL_CARGO --from-turn 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(func(ctx context.Context, s *session) error {
				query := &ledgerQuery.GetTransactionsQuery{
					GameID: s.Game().ID(),
					Limit:  limit,
					Offset: offset,
				}
				query.FromTurn, query.ToTurn = turns.bounds()
				if category != "" {
					query.Category = &category
				}
				if txType != "" {
					query.TransactionType = &txType
				}

				resp, err := send[*ledgerQuery.GetTransactionsResponse](ctx, s, query)
				if err != nil {
					return err
				}
				if len(resp.Transactions) == 0 {
					fmt.Println("No transactions found")
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "TURN\tTYPE\tAMOUNT\tBALANCE\tDESCRIPTION")
				for _, tx := range resp.Transactions {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
						tx.Turn, tx.Type, signedCredits(tx.Amount), credits(tx.BalanceAfter), tx.Description)
				}
				return w.Flush()
			})
		},
	}

	turns.bind(cmd)
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&txType, "type", "", "Filter by transaction type")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of transactions to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")

	return cmd
}

// newLedgerReportCommand creates the ledger report command group
func newLedgerReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate financial reports",
		Long: `Generate profit & loss and cash flow reports over a turn range.

Examples:
  spacetraders-sim ledger report profit-loss --from-turn 1 --to-turn 50
  spacetraders-sim ledger report cash-flow`,
	}

	cmd.AddCommand(newLedgerProfitLossCommand())
	cmd.AddCommand(newLedgerCashFlowCommand())

	return cmd
}

// newLedgerProfitLossCommand creates the profit & loss report subcommand
func newLedgerProfitLossCommand() *cobra.Command {
	var turns turnRange

	cmd := &cobra.Command{
		Use:   "profit-loss",
		Short: "Generate profit & loss statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(func(ctx context.Context, s *session) error {
				query := &ledgerQuery.GetProfitLossQuery{GameID: s.Game().ID()}
				query.FromTurn, query.ToTurn = turns.bounds()

				pl, err := send[*ledgerQuery.GetProfitLossResponse](ctx, s, query)
				if err != nil {
					return err
				}

				fmt.Printf("Profit & Loss, %s\n\n", pl.Period)
				fmt.Println("Revenue:")
				for _, k := range sortedKeys(pl.RevenueBreakdown) {
					fmt.Printf("  %-22s %s\n", k, credits(pl.RevenueBreakdown[k]))
				}
				fmt.Printf("  %-22s %s\n\n", "Total", credits(pl.TotalRevenue))
				fmt.Println("Expenses:")
				for _, k := range sortedKeys(pl.ExpenseBreakdown) {
					fmt.Printf("  %-22s %s\n", k, credits(pl.ExpenseBreakdown[k]))
				}
				fmt.Printf("  %-22s %s\n\n", "Total", credits(pl.TotalExpenses))
				fmt.Printf("Net profit: %s\n", signedCredits(pl.NetProfit))
				return nil
			})
		},
	}

	turns.bind(cmd)

	return cmd
}

// newLedgerCashFlowCommand creates the cash flow report subcommand
func newLedgerCashFlowCommand() *cobra.Command {
	var turns turnRange

	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Generate cash flow statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			return view(func(ctx context.Context, s *session) error {
				query := &ledgerQuery.GetCashFlowQuery{GameID: s.Game().ID()}
				query.FromTurn, query.ToTurn = turns.bounds()

				cf, err := send[*ledgerQuery.GetCashFlowResponse](ctx, s, query)
				if err != nil {
					return err
				}

				fmt.Printf("Cash Flow, %s\n\n", cf.Period)
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "CATEGORY\tINFLOW\tOUTFLOW\tNET\tCOUNT")
				for _, c := range cf.Categories {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
						c.Category, credits(c.TotalInflow), credits(c.TotalOutflow), signedCredits(c.NetFlow), c.Transactions)
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Printf("\nNet cash flow: %s\n", signedCredits(cf.NetFlow))
				return nil
			})
		},
	}

	turns.bind(cmd)

	return cmd
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
