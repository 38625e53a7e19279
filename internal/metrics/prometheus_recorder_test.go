package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorderCounts(t *testing.T) {
	reg := prom.NewRegistry()
	rec := NewPrometheusRecorder(reg)

	rec.IncWriteOutcome("less", OutcomeCreate)
	rec.IncWriteOutcome("less", OutcomeCreate)
	rec.IncWriteOutcome("less", OutcomeSkip)
	rec.ObserveCompileDuration("less", 120*time.Millisecond, true)
	rec.ObserveRunDuration(time.Second)
	rec.SetBucketConcurrency(4)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)

	assert.InDelta(t, 2, testutil.ToFloat64(rec.writeOutcomes.WithLabelValues("less", "create")), 0.001)
	assert.InDelta(t, 1, testutil.ToFloat64(rec.writeOutcomes.WithLabelValues("less", "skip")), 0.001)
	assert.InDelta(t, 4, testutil.ToFloat64(rec.bucketConcurrency), 0.001)
}

func TestNilRecorderSafe(t *testing.T) {
	var rec *PrometheusRecorder
	// Must not panic when metrics are not configured.
	rec.IncWriteOutcome("sass", OutcomeFailed)
	rec.ObserveCompileDuration("sass", time.Second, false)
	rec.ObserveRunDuration(time.Second)
	rec.SetBucketConcurrency(1)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.IncWriteOutcome("copy", OutcomeIdentical)
	r.ObserveRunDuration(0)
}
