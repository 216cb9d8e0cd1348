package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ledger/journal"
	"github.com/rustyeddy/ledger/trades"
)

var tradesCmd = &cobra.Command{
	Use:   "trades [symbol]",
	Short: "List trades stored in the ledger",
	Long: `List normalized trades from the SQLite ledger, optionally filtered to
one symbol.

Examples:
  ledger trades
  ledger trades AAPL
  ledger trades --csv > trades.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrades,
}

var tradesCSV bool

func init() {
	rootCmd.AddCommand(tradesCmd)
	tradesCmd.Flags().BoolVar(&tradesCSV, "csv", false, "write CSV to stdout")
}

func runTrades(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	j, err := journal.NewSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	list, err := listTrades(cmd, j, args)
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	if tradesCSV {
		return journal.WriteTradesCSV(os.Stdout, list)
	}

	fmt.Printf("%-26s %-20s %-10s %10s %10s %12s %12s %-6s\n",
		"ID", "SYMBOL", "STRATEGY", "QTY", "PRICE", "PREMIUM", "COMMISSION", "ACTION")
	for _, t := range list {
		fmt.Printf("%-26s %-20s %-10s %10.2f %10.2f %12.2f %12.2f %-6s\n",
			t.ID, t.RawSymbol, t.Strategy, t.Quantity, t.Price, t.Premium, t.Commission, t.Action)
	}
	return nil
}

func listTrades(cmd *cobra.Command, j *journal.SQLite, args []string) ([]trades.NormalizedTrade, error) {
	if len(args) == 1 {
		return j.ListTradesBySymbol(cmd.Context(), args[0])
	}
	return j.ListTrades(cmd.Context())
}
