// position/fifo.go

// Package position replays normalized trades per symbol to reconstruct
// holdings and FIFO-based realized P&L. Aggregation always replays the full
// history; nothing here caches between calls, so results cannot drift with
// call order.
package position

// Lot is an open purchase tranche awaiting disposal. Cost is the total
// cost of the tranche including commission.
type Lot struct {
	Quantity float64
	Cost     float64
}

// UnitCost returns the per-unit cost of the lot.
func (l Lot) UnitCost() float64 {
	if l.Quantity == 0 {
		return 0
	}
	return l.Cost / l.Quantity
}

// lotQueue is a FIFO queue of open lots for one symbol.
type lotQueue struct {
	lots []Lot
}

func (q *lotQueue) push(l Lot) {
	q.lots = append(q.lots, l)
}

func (q *lotQueue) empty() bool {
	return len(q.lots) == 0
}

func (q *lotQueue) totalCost() float64 {
	var sum float64
	for _, l := range q.lots {
		sum += l.Cost
	}
	return sum
}

// consume draws quantity from the front of the queue, oldest lots first,
// shrinking a partially-consumed front lot proportionally. It returns the
// cost basis of the consumed portion and any quantity left unfilled once
// the queue ran dry.
func (q *lotQueue) consume(quantity float64) (costBasis, unfilled float64) {
	remaining := quantity
	for remaining > 0 && !q.empty() {
		front := &q.lots[0]
		if front.Quantity <= remaining {
			costBasis += front.Cost
			remaining -= front.Quantity
			q.lots = q.lots[1:]
			continue
		}
		portion := remaining / front.Quantity
		cost := front.Cost * portion
		costBasis += cost
		front.Quantity -= remaining
		front.Cost -= cost
		remaining = 0
	}
	return costBasis, remaining
}
