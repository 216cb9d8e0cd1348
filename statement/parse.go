// statement/parse.go
package statement

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseFloat parses a broker-formatted number: thousands commas stripped,
// empty string and bare dashes read as zero.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "-" || s == "--" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return v, nil
}

var dateTimeLayouts = []string{
	"2006-01-02, 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02, 15:04",
	"2006-01-02",
	"20060102",
	"01/02/2006",
}

// parseDateTime tries the date/time layouts brokers actually emit. The
// common activity-statement form is "2023-06-16, 09:30:00"; position and
// instrument sections carry bare dates.
func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad date %q", s)
}
