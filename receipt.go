package fairqueue

import "github.com/aarondwi/fairqueue/fair"

// Receipt is what a submission gives back to its caller.
// It records where each submitted item landed, for user-facing feedback.
//
// Positions are 0-based, and are a snapshot taken at insert time:
// later inserts and consumption shift items without updating the receipt.
type Receipt struct {
	positions []int
	queueLen  int
}

func newReceipt(positions []int, queueLen int) *Receipt {
	return &Receipt{
		positions: positions,
		queueLen:  queueLen,
	}
}

// Positions returns where each item landed, in submission order.
func (r *Receipt) Positions() []int {
	result := make([]int, len(r.positions))
	copy(result, r.positions)
	return result
}

// Position is the single position reported for the whole submission:
// the earliest one, or the queue length if nothing was inserted.
func (r *Receipt) Position() int {
	return fair.ReportedPosition(r.positions, r.queueLen)
}

// Len returns the number of items this submission inserted.
func (r *Receipt) Len() int {
	return len(r.positions)
}
