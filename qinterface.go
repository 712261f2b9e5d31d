package fairqueue

import "github.com/aarondwi/fairqueue/fair"

// QInterface is the interface for queue used inside our main engine.
// You may implement this to create a custom insertion policy.
//
// Implementations do not need to be thread(goroutine)-safe,
// the engine serializes every call.
type QInterface[T any] interface {
	Insert(item T) int
	List() []T
	Clear()
	Len() int
	Pop() (T, bool)
}

// NewFairQueue creates the default QInterface, a fair.Queue keyed on each item's requester.
func NewFairQueue[K comparable, P any]() QInterface[QItem[K, P]] {
	return fair.NewQueue[QItem[K, P], K](QItem[K, P].RequesterID)
}
