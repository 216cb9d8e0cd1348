// position/reconcile.go
package position

import (
	"fmt"
	"math"

	"github.com/rustyeddy/ledger/statement"
)

// ReconcileBroker reprices aggregated positions with the broker's own Open
// Positions rows and cross-checks the broker-reported unrealized P&L
// against the replayed value. The broker's close price is a real quote
// where the replay only has the last trade price, which can be days stale,
// so the broker valuation wins whenever a row is present. A material P&L
// disagreement is reported as a warning: it usually means dropped rows or
// fees the statement accounts for differently.
func ReconcileBroker(positions []AggregatedPosition, broker []statement.PositionRecord) []string {
	if len(positions) == 0 || len(broker) == 0 {
		return nil
	}
	bySymbol := make(map[string]statement.PositionRecord, len(broker))
	for _, rec := range broker {
		bySymbol[rec.Symbol] = rec
	}

	var warnings []string
	for i := range positions {
		pos := &positions[i]
		rec, ok := bySymbol[pos.Symbol]
		if !ok {
			continue
		}
		switch {
		case rec.Value != 0:
			pos.MarketValue = rec.Value
		case rec.ClosePrice != 0:
			pos.MarketValue = pos.NetQuantity * rec.ClosePrice * rec.Multiplier
		}
		pos.UnrealizedPL = pos.MarketValue - pos.CostBasis

		if rec.UnrealizedPL != 0 && math.Abs(rec.UnrealizedPL-pos.UnrealizedPL) > 0.01 {
			warnings = append(warnings, fmt.Sprintf(
				"unrealized P/L for %s: replay says %.2f, broker statement says %.2f",
				pos.Symbol, pos.UnrealizedPL, rec.UnrealizedPL))
		}
	}
	return warnings
}
