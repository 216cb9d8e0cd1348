// statement/validate.go
package statement

import (
	"fmt"
	"math"
)

// ValidateTotals cross-checks the Trades section's data rows against the
// broker's own SubTotal banner rows. A mismatch means rows were dropped or
// double-counted somewhere between export and parse, so each one is
// reported as a warning rather than trusted silently.
func ValidateTotals(sec *RawSection) []string {
	if sec == nil || len(sec.Header) == 0 || len(sec.Summary) == 0 {
		return nil
	}
	fm := NewFieldMap(sec.Header)

	sums := make(map[string]float64)
	for _, row := range sec.Rows {
		if d := fm.Get(row, "datadiscriminator"); d != "" && d != "Order" && d != "Trade" {
			continue
		}
		symbol := fm.Get(row, "symbol")
		if symbol == "" {
			continue
		}
		qty, err := parseFloat(fm.Get(row, "quantity"))
		if err != nil {
			continue
		}
		sums[symbol] += qty
	}

	var warnings []string
	for _, row := range sec.Summary {
		if len(row) < 2 || row[1] != "SubTotal" {
			continue
		}
		symbol := fm.Get(row, "symbol")
		if symbol == "" {
			continue
		}
		want, err := parseFloat(fm.Get(row, "quantity"))
		if err != nil {
			continue
		}
		got := sums[symbol]
		if math.Abs(got-want) > 1e-6 {
			warnings = append(warnings, fmt.Sprintf(
				"subtotal mismatch for %s: data rows sum to %g, broker subtotal says %g",
				symbol, got, want))
		}
	}
	return warnings
}
