package metrics

import "time"

// OutcomeLabel enumerates per-file write outcome categories for counters.
type OutcomeLabel string

const (
	OutcomeSkip      OutcomeLabel = "skip"
	OutcomeCreate    OutcomeLabel = "create"
	OutcomeUpdate    OutcomeLabel = "update"
	OutcomeIdentical OutcomeLabel = "identical"
	OutcomeFailed    OutcomeLabel = "failed"
)

// Recorder defines observability hooks for pipeline and compiler metrics.
// Implementations may forward to Prometheus, OpenTelemetry, etc. All methods
// must be safe for nil receivers when using the NoopRecorder (allowing
// optional injection).
type Recorder interface {
	IncWriteOutcome(writer string, outcome OutcomeLabel)
	ObserveCompileDuration(writer string, d time.Duration, success bool)
	ObserveRunDuration(d time.Duration)
	SetBucketConcurrency(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncWriteOutcome(string, OutcomeLabel)                 {}
func (NoopRecorder) ObserveCompileDuration(string, time.Duration, bool)   {}
func (NoopRecorder) ObserveRunDuration(time.Duration)                     {}
func (NoopRecorder) SetBucketConcurrency(int)                             {}
