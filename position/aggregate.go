// position/aggregate.go
package position

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rustyeddy/ledger/trades"
)

// Status of an aggregated position.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// AggregatedPosition is the reconstructed state of one symbol after
// replaying its full trade history.
type AggregatedPosition struct {
	Symbol      string
	NetQuantity float64
	AverageCost float64
	// MarketValue prices the net quantity at the last observed trade
	// price times the contract multiplier; the cost basis is built from
	// contract-level premiums, so omitting the multiplier would skew
	// UnrealizedPL. ReconcileBroker replaces it with the broker's own
	// valuation when the statement carries one.
	MarketValue  float64
	CostBasis    float64
	RealizedPL   float64
	UnrealizedPL float64
	Status       string
	// Warnings records replay anomalies, currently sells that exceeded
	// available lots.
	Warnings []string
}

// Aggregate replays one symbol's trades in chronological order (stable
// sort, input order breaks ties) through a FIFO lot queue.
//
// Buys push a lot whose cost includes commission. Sells consume lots from
// the front; realized P&L is net proceeds minus the consumed cost basis.
// Sell quantity beyond the available lots is left unconsumed rather than
// opening a negative-cost lot, and is reported in Warnings.
func Aggregate(symbol string, list []trades.NormalizedTrade) AggregatedPosition {
	ordered := make([]trades.NormalizedTrade, len(list))
	copy(ordered, list)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OpenDate.Before(ordered[j].OpenDate)
	})

	pos := AggregatedPosition{Symbol: symbol}
	var queue lotQueue
	var netQuantity, lastPrice, lastMultiplier float64
	lastMultiplier = 1

	for _, t := range ordered {
		netQuantity += t.Quantity
		if t.Price != 0 {
			lastPrice = t.Price
		}
		if t.Multiplier > 0 {
			lastMultiplier = t.Multiplier
		}

		if t.Quantity > 0 {
			queue.push(Lot{
				Quantity: t.Quantity,
				Cost:     t.Premium + t.Commission,
			})
			continue
		}

		sellQty := math.Abs(t.Quantity)
		costBasis, unfilled := queue.consume(sellQty)
		pos.RealizedPL += (t.Premium - t.Commission) - costBasis
		if unfilled > 0 {
			// Excess beyond open lots stays unmatched instead of
			// opening a negative-cost lot.
			pos.Warnings = append(pos.Warnings, fmt.Sprintf(
				"sell of %g %s exceeded open lots by %g; excess left unmatched",
				sellQty, symbol, unfilled))
		}
	}

	pos.NetQuantity = netQuantity
	pos.CostBasis = queue.totalCost()
	if netQuantity != 0 {
		pos.AverageCost = pos.CostBasis / math.Abs(netQuantity)
		pos.Status = StatusOpen
	} else {
		pos.Status = StatusClosed
	}
	pos.MarketValue = netQuantity * lastPrice * lastMultiplier
	pos.UnrealizedPL = pos.MarketValue - pos.CostBasis
	return pos
}

// AggregateAll groups trades by symbol and aggregates each group.
// Symbols are independent, so groups run on a bounded pool of workers; the
// merged result is sorted by symbol for a deterministic order.
func AggregateAll(list []trades.NormalizedTrade, workers int) []AggregatedPosition {
	bySymbol := make(map[string][]trades.NormalizedTrade)
	for _, t := range list {
		key := t.RawSymbol
		if key == "" {
			key = t.Symbol
		}
		bySymbol[key] = append(bySymbol[key], t)
	}
	if len(bySymbol) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	symbols := make(chan string)
	results := make([]AggregatedPosition, 0, len(bySymbol))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sym := range symbols {
				pos := Aggregate(sym, bySymbol[sym])
				mu.Lock()
				results = append(results, pos)
				mu.Unlock()
			}
		}()
	}
	for sym := range bySymbol {
		symbols <- sym
	}
	close(symbols)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Symbol < results[j].Symbol
	})
	return results
}
