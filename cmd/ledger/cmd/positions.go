package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ledger/journal"
	"github.com/rustyeddy/ledger/position"
)

var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Reconstruct current positions from the ledger",
	Long: `Replay the full trade history stored in the ledger through the FIFO
aggregation engine and print per-symbol net position, average cost, and
realized/unrealized P&L.

Examples:
  ledger positions
  ledger positions --csv > positions.csv`,
	Args: cobra.NoArgs,
	RunE: runPositions,
}

var positionsCSV bool

func init() {
	rootCmd.AddCommand(positionsCmd)
	positionsCmd.Flags().BoolVar(&positionsCSV, "csv", false, "write CSV to stdout")
}

func runPositions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	j, err := journal.NewSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	list, err := j.ListTrades(cmd.Context())
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	positions := position.AggregateAll(list, cfg.Import.Workers)

	if positionsCSV {
		return journal.WritePositionsCSV(os.Stdout, positions)
	}

	fmt.Printf("%-24s %10s %12s %14s %14s %14s %8s\n",
		"SYMBOL", "QTY", "AVG COST", "COST BASIS", "REALIZED", "UNREALIZED", "STATUS")
	for _, p := range positions {
		fmt.Printf("%-24s %10.2f %12.2f %14.2f %14.2f %14.2f %8s\n",
			p.Symbol, p.NetQuantity, p.AverageCost, p.CostBasis, p.RealizedPL, p.UnrealizedPL, p.Status)
	}
	return nil
}
