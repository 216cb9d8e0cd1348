package importer

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/ledger/journal"
	"github.com/rustyeddy/ledger/position"
)

const sampleStatement = `Statement,Header,Field Name,Field Value
Statement,Data,BrokerName,Interactive Brokers
Statement,Data,Period,"June 1, 2023 - June 30, 2023"
Account Information,Header,Field Name,Field Value
Account Information,Data,Name,Jane Trader
Account Information,Data,Account,U1234567
Account Information,Data,Account Type,Individual
Account Information,Data,Base Currency,USD
Net Asset Value,Header,Asset Class,Prior Total,Current Total,Change
Net Asset Value,Data,Cash,10000,12000,2000
Net Asset Value,Data,Total,15000,16000,1000
Open Positions,Header,DataDiscriminator,Asset Category,Currency,Symbol,Quantity,Mult,Cost Price,Cost Basis,Close Price,Value,Unrealized P/L
Open Positions,Data,Summary,Stocks,USD,AAPL,10,1,150,1500,185,1850,350
Trades,Header,DataDiscriminator,Asset Category,Currency,Symbol,Date/Time,Quantity,T. Price,C. Price,Proceeds,Comm/Fee,Basis,Realized P/L,MTM P/L,Code
Trades,Data,Order,Stocks,USD,AAPL,"2023-06-05, 09:30:00",10,150,,-1500,-1,1501,0,0,O
Trades,Data,Order,Equity and Index Options,USD,AAPL 230616C00185000,"2023-06-06, 10:15:00",2,1.50,,-300,-1.3,301.3,0,0,O
Trades,Data,Order,Equity and Index Options,USD,AAPL 230616C00185000,"2023-06-12, 11:00:00",-2,2.50,,500,-1.3,,198.7,0,C
Trades,SubTotal,,Stocks,USD,AAPL,,10,,,-1500,-1,,0,0,
Financial Instrument Information,Header,Asset Category,Symbol,Description,Conid,Security ID,Listing Exch,Multiplier,Expiry,Type,Strike
Financial Instrument Information,Data,Equity and Index Options,AAPL 230616C00185000,AAPL 16JUN23 185 C,123456,,CBOE,100,2023-06-16,C,185
`

func newTestJournal(t *testing.T) *journal.SQLite {
	t.Helper()
	j, err := journal.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestImportStatementRoundTrip(t *testing.T) {
	t.Parallel()

	j := newTestJournal(t)
	imp := New(WithJournal(j))
	res := imp.ImportStatement(context.Background(), sampleStatement)

	assert.True(t, res.Success)
	assert.Empty(t, res.Errors)
	assert.NotEmpty(t, res.RunID)

	assert.Equal(t, "U1234567", res.Account.AccountID)
	assert.Equal(t, "Jane Trader", res.Account.AccountName)
	assert.Equal(t, "USD", res.Account.BaseCurrency)
	assert.InDelta(t, 16000, res.Account.Balance, 1e-9)

	assert.Len(t, res.Trades, 3)
	assert.Len(t, res.Positions, 2)

	// All trades landed in the journal.
	stored, err := j.ListTrades(context.Background())
	assert.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestImportStatementPositions(t *testing.T) {
	t.Parallel()

	imp := New()
	res := imp.ImportStatement(context.Background(), sampleStatement)
	assert.True(t, res.Success)

	findPos := func(symbol string) *position.AggregatedPosition {
		for i := range res.Positions {
			if res.Positions[i].Symbol == symbol {
				return &res.Positions[i]
			}
		}
		return nil
	}

	stock := findPos("AAPL")
	assert.NotNil(t, stock)
	assert.InDelta(t, 10, stock.NetQuantity, 1e-9)
	assert.InDelta(t, 1501, stock.CostBasis, 1e-9)
	assert.Equal(t, position.StatusOpen, stock.Status)

	// Broker-reported valuation wins over the stale last trade price, and
	// the commission in our basis is flagged against the broker's P&L.
	assert.InDelta(t, 1850, stock.MarketValue, 1e-9)
	assert.InDelta(t, 349, stock.UnrealizedPL, 1e-9)
	reconciled := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "unrealized P/L for AAPL") {
			reconciled = true
		}
	}
	assert.True(t, reconciled)

	opt := findPos("AAPL 230616C00185000")
	assert.NotNil(t, opt)
	assert.Zero(t, opt.NetQuantity)
	assert.InDelta(t, 197.4, opt.RealizedPL, 1e-9)
	assert.Equal(t, position.StatusClosed, opt.Status)
}

func TestImportStatementEmptyInput(t *testing.T) {
	t.Parallel()

	imp := New()
	res := imp.ImportStatement(context.Background(), "")

	assert.False(t, res.Success)
	assert.Empty(t, res.Trades)
	assert.Empty(t, res.Positions)
	assert.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "no recognizable statement sections")
}

func TestImportStatementNonStatementText(t *testing.T) {
	t.Parallel()

	imp := New()
	res := imp.ImportStatement(context.Background(), "hello world\n,,,\n,Data,stray\nthis is not a statement\n")

	assert.False(t, res.Success)
	assert.Empty(t, res.Trades)
	assert.Empty(t, res.Positions)
	assert.NotEmpty(t, res.Errors)
}

func TestImportStatementMissingAccount(t *testing.T) {
	t.Parallel()

	src := `Trades,Header,DataDiscriminator,Asset Category,Currency,Symbol,Date/Time,Quantity
Trades,Data,Order,Stocks,EUR,SAP,"2023-06-05, 09:30:00",10
`
	imp := New()
	res := imp.ImportStatement(context.Background(), src)

	assert.False(t, res.Success)
	assert.Empty(t, res.Trades)
	assert.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "no account information")
}

func TestImportStatementRowLevelFailuresAreWarnings(t *testing.T) {
	t.Parallel()

	src := `Account Information,Header,Field Name,Field Value
Account Information,Data,Account,U1234567
Trades,Header,DataDiscriminator,Asset Category,Currency,Symbol,Date/Time,Quantity
Trades,Data,Order,Stocks,USD,AAPL,"2023-06-05, 09:30:00",10
Trades,Data,Order,Stocks,USD,AAPL,bogus date,5
`
	imp := New()
	res := imp.ImportStatement(context.Background(), src)

	assert.True(t, res.Success)
	assert.Len(t, res.Trades, 1)
	assert.NotEmpty(t, res.Warnings)
}

func TestImportStatementSplitFillsBothPersist(t *testing.T) {
	t.Parallel()

	// Identical rows inside one statement are split fills of the same
	// order: both import, with distinct ids.
	src := `Account Information,Header,Field Name,Field Value
Account Information,Data,Account,U1234567
Trades,Header,DataDiscriminator,Asset Category,Currency,Symbol,Date/Time,Quantity,T. Price,Proceeds,Comm/Fee,Code
Trades,Data,Order,Stocks,USD,AAPL,"2023-06-05, 09:30:00",10,150,-1500,-1,O
Trades,Data,Order,Stocks,USD,AAPL,"2023-06-05, 09:30:00",10,150,-1500,-1,O
`
	j := newTestJournal(t)
	imp := New(WithJournal(j))
	res := imp.ImportStatement(context.Background(), src)

	assert.True(t, res.Success)
	assert.Len(t, res.Trades, 2)
	assert.NotEqual(t, res.Trades[0].ID, res.Trades[1].ID)

	stored, err := j.ListTrades(context.Background())
	assert.NoError(t, err)
	assert.Len(t, stored, 2)

	// Re-importing the same two fills still collides id-for-id.
	again := imp.ImportStatement(context.Background(), src)
	assert.False(t, again.Success)
	assert.Contains(t, again.Errors[0], "duplicate trade id")
}

func TestImportStatementReimportRejected(t *testing.T) {
	t.Parallel()

	j := newTestJournal(t)
	imp := New(WithJournal(j))
	ctx := context.Background()

	first := imp.ImportStatement(ctx, sampleStatement)
	assert.True(t, first.Success)

	second := imp.ImportStatement(ctx, sampleStatement)
	assert.False(t, second.Success)
	assert.NotEmpty(t, second.Errors)

	stored, err := j.ListTrades(ctx)
	assert.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestImportStatementParseOnlyWithoutJournal(t *testing.T) {
	t.Parallel()

	imp := New()
	res := imp.ImportStatement(context.Background(), sampleStatement)
	assert.True(t, res.Success)
	assert.Len(t, res.Trades, 3)
}
