// statement/account.go
package statement

import (
	"regexp"
	"strings"
)

// AccountInfo identifies the account a statement belongs to. Fields default
// to "UNKNOWN" (and zero balance) so downstream code never branches on
// absence.
type AccountInfo struct {
	AccountID    string
	AccountName  string
	AccountType  string
	BaseCurrency string
	Balance      float64
}

const unknownField = "UNKNOWN"

// UnknownAccount returns an AccountInfo with every field set to its
// sentinel default.
func UnknownAccount() AccountInfo {
	return AccountInfo{
		AccountID:    unknownField,
		AccountName:  unknownField,
		AccountType:  unknownField,
		BaseCurrency: unknownField,
	}
}

// Found reports whether anything beyond the sentinel defaults was parsed.
func (a AccountInfo) Found() bool {
	return a.AccountID != unknownField || a.AccountName != unknownField
}

var (
	accountIDPattern = regexp.MustCompile(`\bU\d{6,8}\b`)
	namePattern      = regexp.MustCompile(`(?m)^\s*(?:Account\s+)?Name[:,]\s*(.+?)\s*$`)
)

// BuildAccount reads the Account Information section into an AccountInfo.
// The section is a field-name/value list rather than a header table, so it
// is scanned row-wise. When the section is missing or incomplete, the raw
// statement text is scanned as a fallback for an account-id-shaped token
// and a Name: label; real-world exports sometimes omit the section
// entirely.
func BuildAccount(sec *RawSection, raw string) AccountInfo {
	acct := UnknownAccount()

	if sec != nil {
		for _, row := range sec.Rows {
			if len(row) < 4 {
				continue
			}
			// rows look like: Account Information,Data,Name,John Doe
			field := normalizeField(row[2])
			value := strings.TrimSpace(row[3])
			if value == "" {
				continue
			}
			switch field {
			case "account", "accountid", "accountnumber":
				acct.AccountID = value
			case "name", "accountname", "accounttitle":
				acct.AccountName = value
			case "accounttype", "type":
				acct.AccountType = value
			case "basecurrency", "currency":
				acct.BaseCurrency = value
			}
		}
	}

	if acct.AccountID == unknownField {
		if m := accountIDPattern.FindString(raw); m != "" {
			acct.AccountID = m
		}
	}
	if acct.AccountName == unknownField {
		if m := namePattern.FindStringSubmatch(raw); m != nil {
			acct.AccountName = strings.TrimSpace(m[1])
		}
	}
	return acct
}

// NAVRecord is one asset-class line of the Net Asset Value section.
type NAVRecord struct {
	AssetClass string
	Prior      float64
	Current    float64
	Change     float64
}

// BuildNAV reads the Net Asset Value section. The "Total" line feeds the
// account balance; per-class lines ride along for reporting.
func BuildNAV(sec *RawSection) ([]NAVRecord, []string) {
	if sec == nil || len(sec.Header) == 0 {
		return nil, nil
	}
	fm := NewFieldMap(sec.Header)
	var out []NAVRecord
	var skipped []string

	for _, row := range sec.Rows {
		class := fm.Get(row, "assetclass")
		if class == "" {
			continue
		}
		rec := NAVRecord{AssetClass: class}
		rec.Prior = optionalFloat(fm, row, "priortotal", class, &skipped)
		rec.Current = optionalFloat(fm, row, "currenttotal", class, &skipped)
		rec.Change = optionalFloat(fm, row, "change", class, &skipped)
		out = append(out, rec)
	}
	return out, skipped
}

// NAVTotal picks the balance out of NAV records: the broker's Total line
// when present, otherwise the sum of per-class lines.
func NAVTotal(recs []NAVRecord) float64 {
	var sum float64
	for _, r := range recs {
		if strings.EqualFold(r.AssetClass, "Total") {
			return r.Current
		}
		sum += r.Current
	}
	return sum
}
