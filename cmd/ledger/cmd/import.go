package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/ledger/importer"
	"github.com/rustyeddy/ledger/journal"
)

var importCmd = &cobra.Command{
	Use:   "import <statement.csv|bundle.zip> [more files...]",
	Short: "Import broker activity statements into the ledger",
	Long: `Parse one or more broker activity statement files, reconstruct the
normalized trades and positions, and persist the trades to the SQLite
ledger. Each file's trades commit in a single all-or-nothing transaction;
a re-import of the same statement is rejected without double-counting.

Zip bundles are extracted and every .csv inside them imported.

Examples:
  ledger import U1234567_2025.csv
  ledger import --dry-run statements/*.csv
  ledger import export-bundle.zip`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

var importDryRun bool

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "parse and aggregate without writing to the ledger")
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	opts := []importer.Option{
		importer.WithLogger(log),
		importer.WithWorkers(cfg.Import.Workers),
	}
	if !importDryRun && !cfg.Import.DryRun {
		j, err := journal.NewSQLite(cfg.Database.Path)
		if err != nil {
			return fmt.Errorf("open db: %w", err)
		}
		defer j.Close()
		opts = append(opts, importer.WithJournal(j))
	}
	imp := importer.New(opts...)

	var zips, csvs []string
	for _, arg := range args {
		if strings.HasSuffix(strings.ToLower(arg), ".zip") {
			zips = append(zips, arg)
		} else {
			csvs = append(csvs, arg)
		}
	}

	var files []importer.FileResult
	if len(csvs) > 0 {
		batch := imp.ImportFiles(cmd.Context(), csvs)
		files = append(files, batch.Files...)
	}
	for _, zipPath := range zips {
		batch, err := imp.ImportBundle(cmd.Context(), zipPath)
		if err != nil {
			return fmt.Errorf("bundle %s: %w", zipPath, err)
		}
		files = append(files, batch.Files...)
	}

	failed := 0
	for _, f := range files {
		res := f.Result
		status := "ok"
		if !res.Success {
			status = "FAILED"
			failed++
		}
		fmt.Printf("%-8s %s  account=%s trades=%d positions=%d warnings=%d\n",
			status, f.Path, res.Account.AccountID, len(res.Trades), len(res.Positions), len(res.Warnings))
		for _, e := range res.Errors {
			fmt.Printf("  error: %s\n", e)
		}
		for _, w := range res.Warnings {
			fmt.Printf("  warning: %s\n", w)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d statements failed", failed, len(files))
	}
	return nil
}
