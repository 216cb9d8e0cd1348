// trades/trade.go

// Package trades converts broker-shaped trade rows into the domain trade
// records the aggregation engine and the journal consume. Downstream code
// depends only on NormalizedTrade, never on broker-specific fields.
package trades

import (
	"time"

	"github.com/rustyeddy/ledger/options"
)

// Strategy classifies a single-leg trade by direction and right.
type Strategy string

const (
	LongCall   Strategy = "long-call"
	LongPut    Strategy = "long-put"
	ShortCall  Strategy = "short-call"
	ShortPut   Strategy = "short-put"
	LongStock  Strategy = "long-stock"
	ShortStock Strategy = "short-stock"
)

// Action marks a trade as opening or closing a position.
type Action string

const (
	Open  Action = "O"
	Close Action = "C"
)

// NormalizedTrade is the domain trade record. Quantity keeps its sign:
// positive buys, negative sells. Premium is the absolute cash amount of the
// trade and Commission the absolute commission, so P&L math never has to
// guess broker sign conventions. Right and Strike stay zero-valued for
// non-option trades.
type NormalizedTrade struct {
	ID         string
	Symbol     string
	RawSymbol  string
	Right      options.Right
	Strike     float64
	Expiry     time.Time
	Quantity   float64
	Price      float64
	Premium    float64
	Commission float64
	Multiplier float64
	OpenDate   time.Time
	// CloseDate is set only on closing trades; zero otherwise.
	CloseDate time.Time
	Action    Action
	Strategy  Strategy
}

// IsOption reports whether the trade is an option contract.
func (t NormalizedTrade) IsOption() bool {
	return t.Right != ""
}
