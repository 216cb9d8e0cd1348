// journal/journal.go
package journal

import (
	"context"
	"errors"

	"github.com/rustyeddy/ledger/trades"
)

var (
	// ErrDuplicateTrade is returned (wrapped, naming the ids) when a
	// batch insert hits the trade_id unique constraint.
	ErrDuplicateTrade = errors.New("duplicate trade id")
	// ErrNotFound is returned when a queried record does not exist.
	ErrNotFound = errors.New("not found")
)

// Journal is the persistence boundary for normalized trades. SaveTrades is
// transactional: the whole batch lands or none of it does, so the stored
// ledger always matches whole statement imports.
type Journal interface {
	SaveTrades(ctx context.Context, batch []trades.NormalizedTrade) error
	GetTrade(ctx context.Context, id string) (trades.NormalizedTrade, error)
	ListTrades(ctx context.Context) ([]trades.NormalizedTrade, error)
	ListTradesBySymbol(ctx context.Context, symbol string) ([]trades.NormalizedTrade, error)
	ListSymbols(ctx context.Context) ([]string, error)
	Close() error
}
