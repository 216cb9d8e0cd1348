package journal

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/ledger/position"
	"github.com/rustyeddy/ledger/trades"
)

func TestWriteTradesCSV(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	err := WriteTradesCSV(&sb, []trades.NormalizedTrade{testTrade("T1", "AAPL")})
	assert.NoError(t, err)

	r := csv.NewReader(strings.NewReader(sb.String()))
	header, err := r.Read()
	assert.NoError(t, err)
	assert.Equal(t, "trade_id", header[0])
	assert.Equal(t, "strategy", header[len(header)-1])

	row, err := r.Read()
	assert.NoError(t, err)
	assert.Equal(t, "T1", row[0])
	assert.Equal(t, "AAPL", row[1])
	assert.Equal(t, "CALL", row[3])
	assert.Equal(t, "2.000000", row[6])
	// CloseDate is zero, so the column is empty.
	assert.Equal(t, "", row[12])
}

func TestWritePositionsCSV(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	err := WritePositionsCSV(&sb, []position.AggregatedPosition{{
		Symbol:      "AAPL",
		NetQuantity: 10,
		AverageCost: 150.1,
		CostBasis:   1501,
		Status:      position.StatusOpen,
	}})
	assert.NoError(t, err)

	r := csv.NewReader(strings.NewReader(sb.String()))
	_, err = r.Read() // header
	assert.NoError(t, err)
	row, err := r.Read()
	assert.NoError(t, err)
	assert.Equal(t, "AAPL", row[0])
	assert.Equal(t, "10.000000", row[1])
	assert.Equal(t, "open", row[7])
}
