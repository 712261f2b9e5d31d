package fair

// Inserter is anything accepting a single fair insert.
type Inserter[T any] interface {
	Insert(item T) int
}

// InsertBatch inserts items one at a time, in input order.
// Each position is computed against the queue as it is after the previous inserts,
// so a batch from one requester gets spread across rounds instead of landing as a block.
//
// The returned positions match items by index.
func InsertBatch[T any](q Inserter[T], items []T) []int {
	positions := make([]int, 0, len(items))
	for _, item := range items {
		positions = append(positions, q.Insert(item))
	}
	return positions
}

// ReportedPosition picks the single position shown for a whole batch:
// the earliest index any of its items landed on,
// or queueLen when nothing was inserted.
func ReportedPosition(positions []int, queueLen int) int {
	if len(positions) == 0 {
		return queueLen
	}
	result := positions[0]
	for _, p := range positions[1:] {
		if p < result {
			result = p
		}
	}
	return result
}
