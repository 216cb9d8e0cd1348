// trades/normalize.go
package trades

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rustyeddy/ledger/options"
	"github.com/rustyeddy/ledger/pkg/id"
	"github.com/rustyeddy/ledger/statement"
)

// Normalizer converts broker TradeRecords into NormalizedTrades. It keeps a
// running net-open-quantity per symbol so it can guess open vs close for
// brokers that omit the O/C code. That guess is approximate: a wrong one
// mis-attributes realized P&L, so trades that needed it carry Action from
// the heuristic and the caller gets a note.
type Normalizer struct {
	instruments map[string]statement.InstrumentInfo
	netOpen     map[string]float64
	// fills counts records sharing the same identifying fields, so split
	// fills in the same second get distinct ids. Chronological processing
	// keeps the numbering stable across re-imports of the same statement.
	fills map[string]int
}

// NewNormalizer builds a Normalizer with an instrument lookup from the
// statement's Financial Instrument Information section. The lookup may be
// nil.
func NewNormalizer(instruments map[string]statement.InstrumentInfo) *Normalizer {
	return &Normalizer{
		instruments: instruments,
		netOpen:     make(map[string]float64),
		fills:       make(map[string]int),
	}
}

// NormalizeAll processes records in chronological order (required for the
// open/close heuristic) and returns the normalized trades plus per-record
// skip/heuristic notes. Records are not mutated.
func (n *Normalizer) NormalizeAll(recs []statement.TradeRecord) ([]NormalizedTrade, []string) {
	ordered := make([]statement.TradeRecord, len(recs))
	copy(ordered, recs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].DateTime.Before(ordered[j].DateTime)
	})

	var out []NormalizedTrade
	var notes []string
	for _, rec := range ordered {
		t, note, ok := n.Normalize(rec)
		if note != "" {
			notes = append(notes, note)
		}
		if ok {
			out = append(out, t)
		}
	}
	return out, notes
}

// Normalize converts one broker record. The bool return is false when the
// record is skipped (unsupported asset category, zero quantity); the note
// explains skips and heuristic open/close decisions.
func (n *Normalizer) Normalize(rec statement.TradeRecord) (NormalizedTrade, string, bool) {
	category := strings.ToLower(rec.AssetCategory)
	isOption := strings.Contains(category, "option")
	isStock := category == "" || strings.Contains(category, "stock") || strings.Contains(category, "equit")
	if !isOption && !isStock {
		return NormalizedTrade{}, fmt.Sprintf("skipped %s: unsupported asset category %q", rec.Symbol, rec.AssetCategory), false
	}
	if rec.Quantity == 0 {
		return NormalizedTrade{}, fmt.Sprintf("skipped %s: zero quantity", rec.Symbol), false
	}

	t := NormalizedTrade{
		Symbol:     rec.Symbol,
		RawSymbol:  rec.Symbol,
		Quantity:   rec.Quantity,
		Price:      rec.TradePrice,
		Premium:    math.Abs(rec.Proceeds),
		Commission: math.Abs(rec.CommissionFee),
		Multiplier: 1,
		OpenDate:   rec.DateTime,
	}

	if isOption {
		n.resolveContract(&t)
		t.Multiplier = 100
	}
	if info, ok := n.instruments[rec.Symbol]; ok && info.Multiplier > 1 {
		t.Multiplier = info.Multiplier
	}

	t.Strategy = classify(t.Quantity, t.Right)

	fillKey := fmt.Sprintf("%s|%d|%g|%g|%s", t.RawSymbol, rec.DateTime.UnixNano(), rec.Quantity, rec.TradePrice, rec.Code)
	t.ID = id.ForTrade(t.RawSymbol, rec.DateTime, rec.Quantity, rec.TradePrice, rec.Code, n.fills[fillKey])
	n.fills[fillKey]++

	note := n.resolveAction(&t, rec)
	if t.Action == Close {
		t.CloseDate = rec.DateTime
	}

	// Track net open quantity for the heuristic on later trades.
	n.netOpen[t.RawSymbol] += t.Quantity

	return t, note, true
}

// resolveContract fills Right/Strike/Expiry/Underlying, preferring the
// symbol's own encoding and falling back to instrument metadata when the
// symbol doesn't decode.
func (n *Normalizer) resolveContract(t *NormalizedTrade) {
	if c, ok := options.Decode(t.RawSymbol); ok {
		t.Symbol = c.Underlying
		t.Right = c.Right
		t.Strike = c.Strike
		t.Expiry = c.Expiry
		return
	}
	if info, ok := n.instruments[t.RawSymbol]; ok {
		if info.Underlying != "" {
			t.Symbol = info.Underlying
		}
		t.Strike = info.Strike
		t.Expiry = info.Expiry
		switch strings.ToUpper(info.OptionType) {
		case "C", "CALL":
			t.Right = options.Call
		case "P", "PUT":
			t.Right = options.Put
		}
	}
}

// resolveAction sets Action from the broker code when present, otherwise
// from the sign of the quantity and whether open inventory exists.
func (n *Normalizer) resolveAction(t *NormalizedTrade, rec statement.TradeRecord) string {
	switch {
	case strings.Contains(rec.Code, "O"):
		t.Action = Open
		return ""
	case strings.Contains(rec.Code, "C"):
		t.Action = Close
		return ""
	}

	// Heuristic: a sell against open long inventory (or a buy against
	// open short inventory) closes; anything else opens.
	net := n.netOpen[t.RawSymbol]
	if (t.Quantity < 0 && net > 0) || (t.Quantity > 0 && net < 0) {
		t.Action = Close
	} else {
		t.Action = Open
	}
	return fmt.Sprintf("%s: no open/close code on %s, inferred %q from quantity sign and open inventory",
		t.RawSymbol, rec.DateTime.Format("2006-01-02 15:04:05"), t.Action)
}

func classify(quantity float64, right options.Right) Strategy {
	switch {
	case right == options.Call && quantity > 0:
		return LongCall
	case right == options.Call && quantity < 0:
		return ShortCall
	case right == options.Put && quantity > 0:
		return LongPut
	case right == options.Put && quantity < 0:
		return ShortPut
	case quantity < 0:
		return ShortStock
	default:
		return LongStock
	}
}
