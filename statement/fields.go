// statement/fields.go
package statement

import "strings"

// fieldAliases maps known broker synonyms to the canonical field names the
// record builders ask for. Keys and values are in normalized form
// (lowercase, internal whitespace stripped).
var fieldAliases = map[string][]string{
	"quantity":      {"qty"},
	"marketprice":   {"markprice"},
	"marketvalue":   {"positionvalue", "value"},
	"tradeprice":    {"t.price", "price"},
	"closeprice":    {"c.price", "closingprice"},
	"proceeds":      {"netamount"},
	"commissionfee": {"comm/fee", "commission", "comminusd"},
	"datetime":      {"date/time", "date"},
	"realizedpl":    {"realizedp/l", "realizedp&l"},
	"mtmpl":         {"mtmp/l", "mtminusd"},
	"unrealizedpl":  {"unrealizedp/l", "unrealizedp&l"},
	"costbasis":     {"basis", "costbasismoney"},
	"costprice":     {"costbasisprice"},
	"assetcategory": {"assetclass"},
	"multiplier":    {"mult"},
	"expiry":        {"expirationdate", "expiration", "maturity"},
	"strike":        {"strikeprice"},
	"optiontype":    {"put/call", "putcall", "right", "type"},
	"underlying":    {"underlyingsymbol"},
	"accountid":     {"account", "accountnumber"},
	"name":          {"accountname", "accounttitle"},
}

// FieldMap resolves canonical field names to absolute column indices for
// one section's header row.
type FieldMap struct {
	index map[string]int
}

// NewFieldMap builds a column lookup from a full header line (including the
// leading name and "Header" tokens). Column names are matched after
// lowercasing and stripping all internal whitespace, so "T. Price",
// "T.Price" and "t. price" are the same column.
func NewFieldMap(header []string) *FieldMap {
	fm := &FieldMap{index: make(map[string]int, len(header))}
	for i, col := range header {
		if i < 2 {
			continue // section name and the "Header" marker
		}
		key := normalizeField(col)
		if key == "" {
			continue
		}
		if _, dup := fm.index[key]; !dup {
			fm.index[key] = i
		}
	}
	return fm
}

// Resolve returns the absolute column index for a canonical field name,
// trying the name itself and then its known aliases. Many statement columns
// are optional, so a miss is a normal outcome: callers supply their own
// defaults.
func (fm *FieldMap) Resolve(canonical string) (int, bool) {
	key := normalizeField(canonical)
	if i, ok := fm.index[key]; ok {
		return i, true
	}
	for _, alias := range fieldAliases[key] {
		if i, ok := fm.index[alias]; ok {
			return i, true
		}
	}
	return 0, false
}

// Get returns the value of a canonical field in row, or "" when the column
// is absent or the row is too short.
func (fm *FieldMap) Get(row []string, canonical string) string {
	i, ok := fm.Resolve(canonical)
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func normalizeField(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		if r == ' ' || r == '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
