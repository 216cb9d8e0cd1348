// statement/records.go
package statement

import (
	"fmt"
	"strings"
	"time"
)

// TradeRecord is a broker-shaped trade row from the Trades section.
// Quantity keeps the broker's sign: positive buys, negative sells.
type TradeRecord struct {
	AssetCategory string
	Currency      string
	Symbol        string
	DateTime      time.Time
	Quantity      float64
	TradePrice    float64
	ClosePrice    float64
	Proceeds      float64
	CommissionFee float64
	Basis         float64
	RealizedPL    float64
	MTMPL         float64
	// Code carries the broker's order codes; "O" marks an opening
	// trade and "C" a closing one.
	Code string
}

// PositionRecord is a broker-shaped row from the Open Positions section.
type PositionRecord struct {
	AssetCategory string
	Currency      string
	Symbol        string
	Quantity      float64
	Multiplier    float64
	CostPrice     float64
	CostBasis     float64
	ClosePrice    float64
	Value         float64
	UnrealizedPL  float64
}

// InstrumentInfo is a row from Financial Instrument Information, keyed by
// symbol for lookup during normalization.
type InstrumentInfo struct {
	AssetCategory string
	Symbol        string
	Underlying    string
	Multiplier    float64
	Expiry        time.Time
	OptionType    string
	Strike        float64
}

// BuildTrades converts the Trades section into TradeRecords. Rows that fail
// minimal validity (missing symbol, unparseable quantity or date) are
// skipped with a reason instead of failing the section. Rows whose
// discriminator column is present but not "Order" (broker sub-rows like
// ClosedLot) are silently ignored.
func BuildTrades(sec *RawSection) ([]TradeRecord, []string) {
	if sec == nil || len(sec.Header) == 0 {
		return nil, nil
	}
	fm := NewFieldMap(sec.Header)
	var out []TradeRecord
	var skipped []string

	for _, row := range sec.Rows {
		if d := fm.Get(row, "datadiscriminator"); d != "" && d != "Order" && d != "Trade" {
			continue
		}
		symbol := fm.Get(row, "symbol")
		if symbol == "" {
			skipped = append(skipped, fmt.Sprintf("trades row skipped: empty symbol: %s", strings.Join(row, ",")))
			continue
		}
		qty, err := parseFloat(fm.Get(row, "quantity"))
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("trades row skipped for %s: quantity: %v", symbol, err))
			continue
		}
		when, err := parseDateTime(fm.Get(row, "datetime"))
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("trades row skipped for %s: %v", symbol, err))
			continue
		}

		rec := TradeRecord{
			AssetCategory: fm.Get(row, "assetcategory"),
			Currency:      fm.Get(row, "currency"),
			Symbol:        symbol,
			DateTime:      when,
			Quantity:      qty,
			Code:          fm.Get(row, "code"),
		}
		// Optional numeric columns default to zero when absent or
		// unparseable; a bad optional number is worth a note but not
		// a skip.
		rec.TradePrice = optionalFloat(fm, row, "tradeprice", symbol, &skipped)
		rec.ClosePrice = optionalFloat(fm, row, "closeprice", symbol, &skipped)
		rec.Proceeds = optionalFloat(fm, row, "proceeds", symbol, &skipped)
		rec.CommissionFee = optionalFloat(fm, row, "commissionfee", symbol, &skipped)
		rec.Basis = optionalFloat(fm, row, "costbasis", symbol, &skipped)
		rec.RealizedPL = optionalFloat(fm, row, "realizedpl", symbol, &skipped)
		rec.MTMPL = optionalFloat(fm, row, "mtmpl", symbol, &skipped)

		out = append(out, rec)
	}
	return out, skipped
}

// BuildPositions converts the Open Positions section into PositionRecords.
func BuildPositions(sec *RawSection) ([]PositionRecord, []string) {
	if sec == nil || len(sec.Header) == 0 {
		return nil, nil
	}
	fm := NewFieldMap(sec.Header)
	var out []PositionRecord
	var skipped []string

	for _, row := range sec.Rows {
		if d := fm.Get(row, "datadiscriminator"); d != "" && d != "Summary" {
			continue
		}
		symbol := fm.Get(row, "symbol")
		if symbol == "" {
			skipped = append(skipped, fmt.Sprintf("positions row skipped: empty symbol: %s", strings.Join(row, ",")))
			continue
		}
		qty, err := parseFloat(fm.Get(row, "quantity"))
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("positions row skipped for %s: quantity: %v", symbol, err))
			continue
		}

		rec := PositionRecord{
			AssetCategory: fm.Get(row, "assetcategory"),
			Currency:      fm.Get(row, "currency"),
			Symbol:        symbol,
			Quantity:      qty,
		}
		rec.Multiplier = optionalFloat(fm, row, "multiplier", symbol, &skipped)
		if rec.Multiplier == 0 {
			rec.Multiplier = 1
		}
		rec.CostPrice = optionalFloat(fm, row, "costprice", symbol, &skipped)
		rec.CostBasis = optionalFloat(fm, row, "costbasis", symbol, &skipped)
		rec.ClosePrice = optionalFloat(fm, row, "closeprice", symbol, &skipped)
		rec.Value = optionalFloat(fm, row, "marketvalue", symbol, &skipped)
		rec.UnrealizedPL = optionalFloat(fm, row, "unrealizedpl", symbol, &skipped)

		out = append(out, rec)
	}
	return out, skipped
}

// BuildInstruments converts Financial Instrument Information into a
// symbol-keyed lookup.
func BuildInstruments(sec *RawSection) (map[string]InstrumentInfo, []string) {
	if sec == nil || len(sec.Header) == 0 {
		return nil, nil
	}
	fm := NewFieldMap(sec.Header)
	out := make(map[string]InstrumentInfo)
	var skipped []string

	for _, row := range sec.Rows {
		symbol := fm.Get(row, "symbol")
		if symbol == "" {
			skipped = append(skipped, fmt.Sprintf("instrument row skipped: empty symbol: %s", strings.Join(row, ",")))
			continue
		}
		info := InstrumentInfo{
			AssetCategory: fm.Get(row, "assetcategory"),
			Symbol:        symbol,
			Underlying:    fm.Get(row, "underlying"),
			OptionType:    fm.Get(row, "optiontype"),
		}
		info.Multiplier = optionalFloat(fm, row, "multiplier", symbol, &skipped)
		if info.Multiplier == 0 {
			info.Multiplier = 1
		}
		info.Strike = optionalFloat(fm, row, "strike", symbol, &skipped)
		if s := fm.Get(row, "expiry"); s != "" {
			if t, err := parseDateTime(s); err == nil {
				info.Expiry = t
			} else {
				skipped = append(skipped, fmt.Sprintf("instrument %s: %v", symbol, err))
			}
		}
		// Instruments are listed once per symbol; a repeat keeps the
		// first occurrence.
		if _, dup := out[symbol]; !dup {
			out[symbol] = info
		}
	}
	return out, skipped
}

// optionalFloat reads an optional numeric column, recording a note and
// returning zero when the cell is present but unparseable.
func optionalFloat(fm *FieldMap, row []string, field, symbol string, notes *[]string) float64 {
	v, err := parseFloat(fm.Get(row, field))
	if err != nil {
		*notes = append(*notes, fmt.Sprintf("%s %s: %v", symbol, field, err))
		return 0
	}
	return v
}
