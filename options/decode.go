// options/decode.go

// Package options decodes broker option symbols into their contract terms.
// Brokers are not consistent about the encoding, even inside one statement,
// so decoding tries a fixed list of known formats in order.
package options

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Right is the option right, call or put.
type Right string

const (
	Call Right = "CALL"
	Put  Right = "PUT"
)

// Contract holds the terms decoded from an option symbol.
type Contract struct {
	Underlying string
	Expiry     time.Time
	Strike     float64
	Right      Right
}

// The format list is ordered so that stricter patterns run first: the
// compact OCC form requires exactly eight strike digits, so it cannot
// swallow the no-multiplier form, which accepts any digit run. Reordering
// these is the known hazard here; the decode tests pin the corpus of real
// symbols.
var formats = []struct {
	re     *regexp.Regexp
	decode func(m []string) (Contract, bool)
}{
	{
		// AAPL 230616C00185000 (OCC compact, strike x1000)
		re: regexp.MustCompile(`^([A-Z][A-Z0-9.]*)\s+(\d{6})([CP])(\d{8})$`),
		decode: func(m []string) (Contract, bool) {
			return occContract(m[1], m[2], m[3], m[4], true)
		},
	},
	{
		// AAPL_230616C00185000 (underscore variant, strike x1000)
		re: regexp.MustCompile(`^([A-Z][A-Z0-9.]*)_(\d{6})([CP])(\d+)$`),
		decode: func(m []string) (Contract, bool) {
			return occContract(m[1], m[2], m[3], m[4], true)
		},
	},
	{
		// SPX 230616C4200 (no multiplier, strike as written)
		re: regexp.MustCompile(`^([A-Z][A-Z0-9.]*)\s+(\d{6})([CP])(\d+(?:\.\d+)?)$`),
		decode: func(m []string) (Contract, bool) {
			return occContract(m[1], m[2], m[3], m[4], false)
		},
	},
	{
		// SPY 06/16/23 C 420 (slash date)
		re: regexp.MustCompile(`^([A-Z][A-Z0-9.]*)\s+(\d{2})/(\d{2})/(\d{2})\s+([CP])\s+(\d+(?:\.\d+)?)$`),
		decode: func(m []string) (Contract, bool) {
			expiry, err := time.Parse("01/02/06", m[2]+"/"+m[3]+"/"+m[4])
			if err != nil {
				return Contract{}, false
			}
			strike, err := strconv.ParseFloat(m[6], 64)
			if err != nil {
				return Contract{}, false
			}
			return Contract{Underlying: m[1], Expiry: expiry, Strike: strike, Right: right(m[5])}, true
		},
	},
	{
		// SPY 31MAR25 570 C (month-name date, strike before right)
		re: regexp.MustCompile(`^([A-Z][A-Z0-9.]*)\s+(\d{2})([A-Z]{3})(\d{2})\s+(\d+(?:\.\d+)?)\s+([CP])$`),
		decode: func(m []string) (Contract, bool) {
			month, ok := months[m[3]]
			if !ok {
				return Contract{}, false
			}
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[4])
			expiry := time.Date(2000+year, month, day, 0, 0, 0, 0, time.UTC)
			if expiry.Day() != day {
				// e.g. 31FEB
				return Contract{}, false
			}
			strike, err := strconv.ParseFloat(m[5], 64)
			if err != nil {
				return Contract{}, false
			}
			return Contract{Underlying: m[1], Expiry: expiry, Strike: strike, Right: right(m[6])}, true
		},
	},
}

var months = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// Decode parses an option symbol, trying each known format in order and
// returning the first match. The second return is false when no format
// matches; that is not an error, the caller treats the symbol as a
// non-option.
func Decode(symbol string) (Contract, bool) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return Contract{}, false
	}
	for _, f := range formats {
		if m := f.re.FindStringSubmatch(symbol); m != nil {
			if c, ok := f.decode(m); ok {
				return c, true
			}
		}
	}
	return Contract{}, false
}

// occContract builds a contract from the OCC-style field split. Strike is
// divided by 1000 only for the encodings known to store strike x1000.
func occContract(underlying, yymmdd, cp, strikeDigits string, thousandths bool) (Contract, bool) {
	expiry, err := time.Parse("060102", yymmdd)
	if err != nil {
		return Contract{}, false
	}
	strike, err := strconv.ParseFloat(strikeDigits, 64)
	if err != nil {
		return Contract{}, false
	}
	if thousandths {
		strike /= 1000
	}
	return Contract{Underlying: underlying, Expiry: expiry, Strike: strike, Right: right(cp)}, true
}

func right(s string) Right {
	if s == "P" {
		return Put
	}
	return Call
}
