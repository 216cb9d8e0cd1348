package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/ledger/options"
	"github.com/rustyeddy/ledger/trades"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	assert.NoError(t, err)

	return j, path
}

func testTrade(id, symbol string) trades.NormalizedTrade {
	return trades.NormalizedTrade{
		ID:         id,
		Symbol:     symbol,
		RawSymbol:  symbol + " 230616C00185000",
		Right:      options.Call,
		Strike:     185,
		Expiry:     time.Date(2023, 6, 16, 0, 0, 0, 0, time.UTC),
		Quantity:   2,
		Price:      1.50,
		Premium:    300,
		Commission: 1.3,
		Multiplier: 100,
		OpenDate:   time.Date(2023, 6, 6, 10, 15, 0, 0, time.UTC),
		Action:     trades.Open,
		Strategy:   trades.LongCall,
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='trades'`).Scan(&name)
	assert.NoError(t, err)
	assert.Equal(t, "trades", name)
}

func TestSQLiteSaveAndGet(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })
	ctx := context.Background()

	want := testTrade("T1", "AAPL")
	assert.NoError(t, j.SaveTrades(ctx, []trades.NormalizedTrade{want}))

	got, err := j.GetTrade(ctx, "T1")
	assert.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Symbol, got.Symbol)
	assert.Equal(t, want.RawSymbol, got.RawSymbol)
	assert.Equal(t, want.Right, got.Right)
	assert.InDelta(t, want.Strike, got.Strike, 1e-9)
	assert.True(t, got.Expiry.Equal(want.Expiry))
	assert.InDelta(t, want.Quantity, got.Quantity, 1e-9)
	assert.InDelta(t, want.Premium, got.Premium, 1e-9)
	assert.True(t, got.OpenDate.Equal(want.OpenDate))
	assert.True(t, got.CloseDate.IsZero())
	assert.Equal(t, want.Action, got.Action)
	assert.Equal(t, want.Strategy, got.Strategy)
}

func TestSQLiteGetTradeNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	_, err := j.GetTrade(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteDuplicateInBatchRollsBack(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })
	ctx := context.Background()

	batch := []trades.NormalizedTrade{
		testTrade("T1", "AAPL"),
		testTrade("T2", "MSFT"),
		testTrade("T1", "AAPL"),
	}
	err := j.SaveTrades(ctx, batch)
	assert.ErrorIs(t, err, ErrDuplicateTrade)
	assert.Contains(t, err.Error(), "T1")

	// Nothing from the batch persisted.
	list, err := j.ListTrades(ctx)
	assert.NoError(t, err)
	assert.Empty(t, list)
}

func TestSQLiteDuplicateAgainstStoredRollsBack(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })
	ctx := context.Background()

	assert.NoError(t, j.SaveTrades(ctx, []trades.NormalizedTrade{testTrade("T1", "AAPL")}))

	// Re-importing the same statement: the whole second batch fails,
	// including the brand-new T3.
	err := j.SaveTrades(ctx, []trades.NormalizedTrade{
		testTrade("T3", "TSLA"),
		testTrade("T1", "AAPL"),
	})
	assert.ErrorIs(t, err, ErrDuplicateTrade)
	assert.Contains(t, err.Error(), "T1")

	list, err := j.ListTrades(ctx)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, "T1", list[0].ID)
}

func TestSQLiteListBySymbolAndSymbols(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })
	ctx := context.Background()

	assert.NoError(t, j.SaveTrades(ctx, []trades.NormalizedTrade{
		testTrade("T1", "AAPL"),
		testTrade("T2", "MSFT"),
	}))

	aapl, err := j.ListTradesBySymbol(ctx, "AAPL")
	assert.NoError(t, err)
	assert.Len(t, aapl, 1)
	assert.Equal(t, "T1", aapl[0].ID)

	symbols, err := j.ListSymbols(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT"}, symbols)
}

func TestSQLiteSaveEmptyBatch(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	assert.NoError(t, j.SaveTrades(context.Background(), nil))
}
