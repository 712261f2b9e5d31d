// Package metrics exposes Prometheus instrumentation for a fair queue engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const subsystem = "fairqueue"

// Rejection reasons used as the `reason` label.
const (
	ReasonFull      = "full"
	ReasonClosed    = "closed"
	ReasonCancelled = "cancelled"
)

// Recorder holds the collectors of one engine.
// Each engine registers its own Recorder, so tests can use a fresh registry.
type Recorder struct {
	depth    prometheus.Gauge
	accepted *prometheus.CounterVec
	rejected *prometheus.CounterVec
	starts   prometheus.Counter
}

// NewRecorder creates the collectors and registers them on reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		depth: prometheus.NewGauge(prometheus.GaugeOpts{
			Subsystem: subsystem,
			Name:      "depth",
			Help:      "Number of items currently waiting in the queue.",
		}),
		accepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "accepted_items_total",
			Help:      "Count of items inserted, by whether their requester was known.",
		}, []string{"requester"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "rejected_submissions_total",
			Help:      "Count of submissions rejected before touching the queue.",
		}, []string{"reason"}),
		starts: prometheus.NewCounter(prometheus.CounterOpts{
			Subsystem: subsystem,
			Name:      "starts_total",
			Help:      "Count of times the queue went from empty to non-empty.",
		}),
	}
	reg.MustRegister(r.depth, r.accepted, r.rejected, r.starts)
	return r
}

// RecordDepth sets the current queue length.
func (r *Recorder) RecordDepth(n int) {
	if r == nil {
		return
	}
	r.depth.Set(float64(n))
}

// RecordAccepted counts inserted items, split by known and unknown requesters.
func (r *Recorder) RecordAccepted(known, unknown int) {
	if r == nil {
		return
	}
	r.accepted.WithLabelValues("known").Add(float64(known))
	r.accepted.WithLabelValues("unknown").Add(float64(unknown))
}

// RecordRejected counts one rejected submission.
func (r *Recorder) RecordRejected(reason string) {
	if r == nil {
		return
	}
	r.rejected.WithLabelValues(reason).Inc()
}

// RecordStart counts an empty to non-empty transition.
func (r *Recorder) RecordStart() {
	if r == nil {
		return
	}
	r.starts.Inc()
}
