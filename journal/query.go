// journal/query.go
package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rustyeddy/ledger/options"
	"github.com/rustyeddy/ledger/trades"
)

const tradeColumns = `trade_id, symbol, raw_symbol, put_call, strike, expiry, quantity,
	price, premium, commission, multiplier, open_time, close_time, action, strategy`

// GetTrade returns a single trade record by id.
func (j *SQLite) GetTrade(ctx context.Context, id string) (trades.NormalizedTrade, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE trade_id = ?`, id)

	rec, err := scanTrade(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return trades.NormalizedTrade{}, fmt.Errorf("trade %q: %w", id, ErrNotFound)
		}
		return trades.NormalizedTrade{}, err
	}
	return rec, nil
}

// ListTrades returns every stored trade ordered by open time.
func (j *SQLite) ListTrades(ctx context.Context) ([]trades.NormalizedTrade, error) {
	return j.listTrades(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		ORDER BY open_time ASC, trade_id ASC`)
}

// ListTradesBySymbol returns a symbol's trades ordered by open time.
func (j *SQLite) ListTradesBySymbol(ctx context.Context, symbol string) ([]trades.NormalizedTrade, error) {
	return j.listTrades(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE symbol = ? OR raw_symbol = ?
		ORDER BY open_time ASC, trade_id ASC`, symbol, symbol)
}

// ListSymbols returns the distinct symbols in the ledger.
func (j *SQLite) ListSymbols(ctx context.Context) ([]string, error) {
	rows, err := j.db.QueryContext(ctx, `SELECT DISTINCT symbol FROM trades ORDER BY symbol ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (j *SQLite) listTrades(ctx context.Context, query string, args ...any) ([]trades.NormalizedTrade, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trades.NormalizedTrade
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (trades.NormalizedTrade, error) {
	var rec trades.NormalizedTrade
	var putCall, action, strategy string
	var expiry, closeTime sql.NullTime

	err := s.Scan(
		&rec.ID,
		&rec.Symbol,
		&rec.RawSymbol,
		&putCall,
		&rec.Strike,
		&expiry,
		&rec.Quantity,
		&rec.Price,
		&rec.Premium,
		&rec.Commission,
		&rec.Multiplier,
		&rec.OpenDate,
		&closeTime,
		&action,
		&strategy,
	)
	if err != nil {
		return trades.NormalizedTrade{}, err
	}

	rec.Right = options.Right(putCall)
	rec.Action = trades.Action(action)
	rec.Strategy = trades.Strategy(strategy)
	if expiry.Valid {
		rec.Expiry = expiry.Time
	}
	if closeTime.Valid {
		rec.CloseDate = closeTime.Time
	}
	return rec, nil
}
