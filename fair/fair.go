package fair

// RequesterFunc extracts the requester identity of an item.
// The boolean is false when the identity cannot be determined,
// e.g. the item came from external data without requester metadata.
type RequesterFunc[T any, K comparable] func(T) (K, bool)

// Queue is an ordered queue in which
// each requester's items are interleaved with everyone else's,
// so no requester can take over the near-term order by submitting many items at once.
//
// An item is placed right after its requester's last item,
// then pushed further back while the items following that slot form a round
// (a run where each requester appears at most once).
// It stops just before the first requester seen twice, so the new item joins
// the earliest round that does not already contain its requester.
//
// Items whose requester is unknown are transparent to the round detection:
// they neither count as a seen requester nor as a repeat.
//
// Queue is NOT thread(goroutine)-safe.
// Callers sharing one queue must serialize access themselves.
type Queue[T any, K comparable] struct {
	items       []T
	requesterOf RequesterFunc[T, K]
}

// NewQueue creates an empty Queue using requesterOf to identify item owners.
func NewQueue[T any, K comparable](requesterOf RequesterFunc[T, K]) *Queue[T, K] {
	return &Queue[T, K]{
		items:       make([]T, 0),
		requesterOf: requesterOf,
	}
}

// Insert puts item at its fair position and returns that 0-based index.
func (q *Queue[T, K]) Insert(item T) int {
	insertAt := q.lastIndexOf(item) + 1

	// seen only grows until the first repeat, so it stays bounded by the round length
	seen := make(map[K]struct{})
	for j := insertAt; j < len(q.items); j++ {
		requester, ok := q.requesterOf(q.items[j])
		if !ok {
			insertAt = j + 1
			continue
		}
		if _, repeated := seen[requester]; repeated {
			break
		}
		seen[requester] = struct{}{}
		insertAt = j + 1
	}

	var zero T
	q.items = append(q.items, zero)
	copy(q.items[insertAt+1:], q.items[insertAt:])
	q.items[insertAt] = item
	return insertAt
}

// lastIndexOf scans backward for the last item of the same requester,
// returning -1 if there is none or the item's requester is unknown.
func (q *Queue[T, K]) lastIndexOf(item T) int {
	requester, ok := q.requesterOf(item)
	if !ok {
		return -1
	}
	for i := len(q.items) - 1; i >= 0; i-- {
		if other, known := q.requesterOf(q.items[i]); known && other == requester {
			return i
		}
	}
	return -1
}

// List returns a copy of the current contents, head first.
func (q *Queue[T, K]) List() []T {
	result := make([]T, len(q.items))
	copy(result, q.items)
	return result
}

// Clear empties the queue. Calling it on an empty queue does nothing.
func (q *Queue[T, K]) Clear() {
	var zero T
	for i := range q.items {
		// drop references so payloads can be collected
		q.items[i] = zero
	}
	q.items = q.items[:0]
}

// Len returns the number of queued items.
func (q *Queue[T, K]) Len() int {
	return len(q.items)
}

// Pop removes and returns the head of the queue.
func (q *Queue[T, K]) Pop() (T, bool) {
	return q.Remove(0)
}

// Remove deletes the item at index, shifting later items forward.
func (q *Queue[T, K]) Remove(index int) (T, bool) {
	var zero T
	if index < 0 || index >= len(q.items) {
		return zero, false
	}
	item := q.items[index]
	copy(q.items[index:], q.items[index+1:])
	q.items[len(q.items)-1] = zero
	q.items = q.items[:len(q.items)-1]
	return item, true
}
