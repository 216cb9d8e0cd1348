// journal/sqlite.go
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/ledger/trades"
)

// SQLite stores the trade ledger in a local SQLite database.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// SaveTrades inserts the batch inside a single transaction. Any failure
// rolls back the entire batch; duplicate ids (within the batch or against
// already-stored trades) surface as ErrDuplicateTrade naming the ids, and
// nothing is persisted.
func (j *SQLite) SaveTrades(ctx context.Context, batch []trades.NormalizedTrade) error {
	if len(batch) == 0 {
		return nil
	}

	// Reject in-batch duplicates up front so the error can name every
	// offending id, not just the first the driver happens to hit.
	seen := make(map[string]bool, len(batch))
	var dups []string
	for _, t := range batch {
		if seen[t.ID] {
			dups = append(dups, t.ID)
		}
		seen[t.ID] = true
	}
	if len(dups) > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateTrade, strings.Join(dups, ", "))
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trades
		(trade_id, symbol, raw_symbol, put_call, strike, expiry, quantity,
		 price, premium, commission, multiplier, open_time, close_time, action, strategy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, t := range batch {
		_, err := stmt.ExecContext(ctx,
			t.ID, t.Symbol, t.RawSymbol, string(t.Right), t.Strike,
			nullTime(t.Expiry), t.Quantity, t.Price, t.Premium,
			t.Commission, t.Multiplier, t.OpenDate.UTC(),
			nullTime(t.CloseDate), string(t.Action), string(t.Strategy),
		)
		if err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint") {
				return fmt.Errorf("%w: %s", ErrDuplicateTrade, t.ID)
			}
			return fmt.Errorf("insert trade %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}
