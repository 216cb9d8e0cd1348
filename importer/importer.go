// importer/importer.go

// Package importer sequences the statement pipeline: tokenize, section
// split, record building, normalization, FIFO aggregation, and the
// transactional write to the journal. Every failure mode is reported in
// the returned result; nothing escapes ImportStatement as a panic.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rustyeddy/ledger/journal"
	"github.com/rustyeddy/ledger/pkg/id"
	"github.com/rustyeddy/ledger/position"
	"github.com/rustyeddy/ledger/statement"
	"github.com/rustyeddy/ledger/trades"
)

// ImportResult is the single outcome of importing one statement. Errors
// are blocking problems; Warnings are per-row diagnostics on an otherwise
// usable import.
type ImportResult struct {
	Success   bool
	RunID     string
	Account   statement.AccountInfo
	Trades    []trades.NormalizedTrade
	Positions []position.AggregatedPosition
	Errors    []string
	Warnings  []string
}

// Importer runs statement imports. The journal is optional: with a nil
// store the importer parses and aggregates without persisting, which is
// what the CLI's dry-run and the report commands use.
type Importer struct {
	store   journal.Journal
	log     *slog.Logger
	workers int

	// commitMu serializes the transactional commit phase across
	// concurrent file imports; parsing stays parallel.
	commitMu sync.Mutex
}

// Option configures an Importer.
type Option func(*Importer)

// WithJournal sets the persistence store. The caller owns the store's
// lifecycle.
func WithJournal(j journal.Journal) Option {
	return func(imp *Importer) { imp.store = j }
}

// WithLogger sets the structured logger.
func WithLogger(log *slog.Logger) Option {
	return func(imp *Importer) { imp.log = log }
}

// WithWorkers bounds the per-symbol aggregation pool.
func WithWorkers(n int) Option {
	return func(imp *Importer) { imp.workers = n }
}

func New(opts ...Option) *Importer {
	imp := &Importer{
		log:     slog.Default(),
		workers: 4,
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// ImportStatement imports one statement blob.
//
// A structural failure (no recognizable sections, no account identity)
// is fatal for the statement: Success=false with a top-level error and
// empty collections. Row-level failures skip the row and accumulate in
// Warnings. Persistence is all-or-nothing: a failed batch write reports
// the offending ids in Errors and persists nothing.
func (imp *Importer) ImportStatement(ctx context.Context, content string) *ImportResult {
	res := &ImportResult{
		RunID:   id.New(),
		Account: statement.UnknownAccount(),
	}
	log := imp.log.With("run", res.RunID)

	lines := statement.TokenizeAll(content)
	sections := statement.IdentifySections(lines)
	if len(sections) == 0 {
		res.Errors = append(res.Errors, "no recognizable statement sections")
		log.Warn("statement rejected", "reason", "no sections")
		return res
	}

	res.Account = statement.BuildAccount(sections[statement.SectionAccount], content)
	if !res.Account.Found() {
		res.Errors = append(res.Errors, "no account information found in statement")
		log.Warn("statement rejected", "reason", "no account identity")
		return res
	}

	nav, navNotes := statement.BuildNAV(sections[statement.SectionNAV])
	res.Warnings = append(res.Warnings, navNotes...)
	if total := statement.NAVTotal(nav); total != 0 {
		res.Account.Balance = total
	}

	tradesSec := sections[statement.SectionTrades]
	records, skips := statement.BuildTrades(tradesSec)
	res.Warnings = append(res.Warnings, skips...)
	res.Warnings = append(res.Warnings, statement.ValidateTotals(tradesSec)...)

	instruments, instNotes := statement.BuildInstruments(sections[statement.SectionInstruments])
	res.Warnings = append(res.Warnings, instNotes...)

	brokerPositions, posNotes := statement.BuildPositions(sections[statement.SectionPositions])
	res.Warnings = append(res.Warnings, posNotes...)

	normalizer := trades.NewNormalizer(instruments)
	normalized, notes := normalizer.NormalizeAll(records)
	res.Warnings = append(res.Warnings, notes...)
	res.Trades = normalized

	res.Positions = position.AggregateAll(normalized, imp.workers)
	res.Warnings = append(res.Warnings, position.ReconcileBroker(res.Positions, brokerPositions)...)
	for _, p := range res.Positions {
		res.Warnings = append(res.Warnings, p.Warnings...)
	}

	if imp.store != nil && len(normalized) > 0 {
		if err := imp.persist(ctx, normalized); err != nil {
			res.Errors = append(res.Errors, err.Error())
			log.Error("batch persist failed", "trades", len(normalized), "err", err)
			return res
		}
	}

	res.Success = true
	log.Info("statement imported",
		"account", res.Account.AccountID,
		"trades", len(res.Trades),
		"positions", len(res.Positions),
		"warnings", len(res.Warnings))
	return res
}

// persist writes a batch under the writer lock so concurrent file imports
// keep all-or-nothing semantics on a shared store.
func (imp *Importer) persist(ctx context.Context, batch []trades.NormalizedTrade) error {
	imp.commitMu.Lock()
	defer imp.commitMu.Unlock()

	if err := imp.store.SaveTrades(ctx, batch); err != nil {
		if errors.Is(err, journal.ErrDuplicateTrade) {
			return fmt.Errorf("batch rejected, nothing persisted: %w", err)
		}
		return fmt.Errorf("persist batch: %w", err)
	}
	return nil
}
