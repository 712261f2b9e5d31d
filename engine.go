package fairqueue

import (
	"context"
	"sync"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/aarondwi/fairqueue/common"
	"github.com/aarondwi/fairqueue/fair"
	"github.com/aarondwi/fairqueue/logging"
	"github.com/aarondwi/fairqueue/metrics"
)

// Config holds the policies the engine enforces around its queue.
type Config struct {
	// SizeLimit caps the total number of queued items. Must be positive.
	SizeLimit int

	// Logger defaults to a discarding logger.
	Logger logr.Logger

	// Metrics is optional.
	Metrics *metrics.Recorder

	// OnStart, if set, is called every time a submission takes the queue
	// from empty to non-empty, e.g. to start playback.
	// It runs after the engine lock is released, so it may call back into the engine.
	OnStart func(ctx context.Context)
}

// Engine is the boundary between callers and the queue.
// It has 2 parts: the queue itself, and the policies around it.
//
// The queue is not goroutine-safe, so every operation holds the engine lock for its whole duration.
// Policies are the size limit, the closed state, and the empty to non-empty notification.
type Engine[K comparable, P any] struct {
	mu      sync.Mutex
	q       QInterface[QItem[K, P]]
	cfg     Config
	logger  logr.Logger
	running bool
}

// New creates our engine over q.
func New[K comparable, P any](q QInterface[QItem[K, P]], cfg Config) (*Engine[K, P], error) {
	if cfg.SizeLimit <= 0 {
		return nil, common.ErrParamShouldBePositive
	}
	e := &Engine[K, P]{
		q:       q,
		cfg:     cfg,
		logger:  cfg.Logger.WithName("fairqueue"),
		running: true,
	}
	cfg.Metrics.RecordDepth(q.Len())
	return e, nil
}

// Submit inserts one item for requester and returns where it landed.
func (e *Engine[K, P]) Submit(ctx context.Context, requester K, payload P) (*Receipt, error) {
	return e.SubmitItems(ctx, []QItem[K, P]{NewQItem(requester, payload)})
}

// SubmitBatch inserts all payloads for requester, in order,
// e.g. every track resulting from one playlist.
func (e *Engine[K, P]) SubmitBatch(ctx context.Context, requester K, payloads []P) (*Receipt, error) {
	items := make([]QItem[K, P], len(payloads))
	for i, p := range payloads {
		items[i] = NewQItem(requester, p)
	}
	return e.SubmitItems(ctx, items)
}

// SubmitItems inserts items one at a time with the fair policy.
// Either every item is inserted, or none is.
func (e *Engine[K, P]) SubmitItems(ctx context.Context, items []QItem[K, P]) (*Receipt, error) {
	logger := e.loggerFor(ctx)

	select {
	case <-ctx.Done():
		e.cfg.Metrics.RecordRejected(metrics.ReasonCancelled)
		return nil, errors.Wrap(ctx.Err(), "submission cancelled before reaching the queue")
	default:
	}

	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		e.cfg.Metrics.RecordRejected(metrics.ReasonClosed)
		return nil, common.ErrQueueIsClosed
	}

	before := e.q.Len()
	if before+len(items) > e.cfg.SizeLimit {
		e.mu.Unlock()
		e.cfg.Metrics.RecordRejected(metrics.ReasonFull)
		logger.V(logging.VERBOSE).Info("Rejected submission over size limit",
			"items", len(items), "queued", before, "limit", e.cfg.SizeLimit)
		return nil, errors.Wrapf(common.ErrQueueIsFull, "%d queued, %d submitted, limit %d",
			before, len(items), e.cfg.SizeLimit)
	}

	positions := fair.InsertBatch[QItem[K, P]](e.q, items)
	after := e.q.Len()
	receipt := newReceipt(positions, after)
	e.mu.Unlock()

	known := 0
	for _, item := range items {
		if _, ok := item.RequesterID(); ok {
			known++
		}
	}
	e.cfg.Metrics.RecordAccepted(known, len(items)-known)
	e.cfg.Metrics.RecordDepth(after)
	logger.V(logging.DEBUG).Info("Inserted items", "count", len(items), "position", receipt.Position(), "queued", after)

	if before == 0 && after > 0 {
		e.cfg.Metrics.RecordStart()
		if e.cfg.OnStart != nil {
			e.cfg.OnStart(ctx)
		}
	}
	return receipt, nil
}

// List returns a snapshot of the queue, head first.
func (e *Engine[K, P]) List() []QItem[K, P] {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.q.List()
}

// Len returns the number of queued items.
func (e *Engine[K, P]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.q.Len()
}

// Next removes and returns the head of the queue, for the consumer to play.
func (e *Engine[K, P]) Next() (QItem[K, P], bool) {
	e.mu.Lock()
	item, ok := e.q.Pop()
	n := e.q.Len()
	e.mu.Unlock()

	if ok {
		e.cfg.Metrics.RecordDepth(n)
	}
	return item, ok
}

// Clear empties the queue.
func (e *Engine[K, P]) Clear(ctx context.Context) {
	e.mu.Lock()
	dropped := e.q.Len()
	e.q.Clear()
	e.mu.Unlock()

	e.cfg.Metrics.RecordDepth(0)
	e.loggerFor(ctx).V(logging.DEFAULT).Info("Cleared queue", "dropped", dropped)
}

// Close the engine, rejecting subsequent submissions.
//
// Queued items stay readable through List and Next, so a consumer can drain them.
func (e *Engine[K, P]) Close() {
	e.mu.Lock()
	e.running = false
	e.mu.Unlock()
}

func (e *Engine[K, P]) loggerFor(ctx context.Context) logr.Logger {
	if logger, err := logr.FromContext(ctx); err == nil {
		return logger
	}
	return e.logger
}
