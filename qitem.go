package fairqueue

// QItem is the item we put into our fair queue.
// It pairs whoever asked for it with an opaque payload (a label, a track reference).
//
// The requester may be unknown, e.g. a track loaded without requester metadata.
// Such items are still queued and played, they just do not take part in fairness.
type QItem[K comparable, P any] struct {
	requesterID K
	known       bool
	payload     P
}

// NewQItem creates a QItem owned by requesterID.
func NewQItem[K comparable, P any](requesterID K, payload P) QItem[K, P] {
	return QItem[K, P]{requesterID: requesterID, known: true, payload: payload}
}

// NewUnattributedQItem creates a QItem whose requester cannot be determined.
func NewUnattributedQItem[K comparable, P any](payload P) QItem[K, P] {
	return QItem[K, P]{payload: payload}
}

// RequesterID returns the requester, and false if it is unknown.
func (i QItem[K, P]) RequesterID() (K, bool) {
	return i.requesterID, i.known
}

// Payload returns the data carried by this item.
func (i QItem[K, P]) Payload() P {
	return i.payload
}
