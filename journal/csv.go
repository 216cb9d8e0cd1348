// journal/csv.go
package journal

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/rustyeddy/ledger/position"
	"github.com/rustyeddy/ledger/trades"
)

// WriteTradesCSV writes normalized trades as CSV with a header row.
func WriteTradesCSV(w io.Writer, list []trades.NormalizedTrade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"trade_id", "symbol", "raw_symbol", "put_call", "strike", "expiry",
		"quantity", "price", "premium", "commission", "multiplier",
		"open_time", "close_time", "action", "strategy",
	}); err != nil {
		return err
	}
	for _, t := range list {
		if err := cw.Write([]string{
			t.ID,
			t.Symbol,
			t.RawSymbol,
			string(t.Right),
			f(t.Strike),
			stamp(t.Expiry),
			f(t.Quantity),
			f(t.Price),
			f(t.Premium),
			f(t.Commission),
			f(t.Multiplier),
			stamp(t.OpenDate),
			stamp(t.CloseDate),
			string(t.Action),
			string(t.Strategy),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WritePositionsCSV writes aggregated positions as CSV with a header row.
func WritePositionsCSV(w io.Writer, list []position.AggregatedPosition) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"symbol", "net_quantity", "average_cost", "market_value",
		"cost_basis", "realized_pl", "unrealized_pl", "status",
	}); err != nil {
		return err
	}
	for _, p := range list {
		if err := cw.Write([]string{
			p.Symbol,
			f(p.NetQuantity),
			f(p.AverageCost),
			f(p.MarketValue),
			f(p.CostBasis),
			f(p.RealizedPL),
			f(p.UnrealizedPL),
			p.Status,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
