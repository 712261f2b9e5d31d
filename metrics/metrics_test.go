package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRecorder(reg)

	r.RecordDepth(3)
	r.RecordAccepted(2, 1)
	r.RecordAccepted(1, 0)
	r.RecordRejected(ReasonFull)
	r.RecordStart()

	assert.Equal(t, 3.0, testutil.ToFloat64(r.depth))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.accepted.WithLabelValues("known")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.accepted.WithLabelValues("unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejected.WithLabelValues(ReasonFull)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.starts))

	want := `
# HELP fairqueue_depth Number of items currently waiting in the queue.
# TYPE fairqueue_depth gauge
fairqueue_depth 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(want), "fairqueue_depth"))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.RecordDepth(1)
		r.RecordAccepted(1, 1)
		r.RecordRejected(ReasonClosed)
		r.RecordStart()
	})
}
