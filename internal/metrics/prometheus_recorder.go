package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once              sync.Once
	writeOutcomes     *prom.CounterVec
	compileDuration   *prom.HistogramVec
	runDuration       prom.Histogram
	bucketConcurrency prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.writeOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "assetforge",
			Name:      "write_outcomes_total",
			Help:      "Per-file write outcomes by writer and result",
		}, []string{"writer", "outcome"})
		pr.compileDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "assetforge",
			Name:      "compile_duration_seconds",
			Help:      "Duration of individual compiler invocations",
			Buckets:   prom.DefBuckets,
		}, []string{"writer", "result"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "assetforge",
			Name:      "run_duration_seconds",
			Help:      "Total pipeline run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.bucketConcurrency = prom.NewGauge(prom.GaugeOpts{
			Namespace: "assetforge",
			Name:      "bucket_concurrency",
			Help:      "Configured bucket worker concurrency for the last run",
		})
		reg.MustRegister(pr.writeOutcomes, pr.compileDuration, pr.runDuration, pr.bucketConcurrency)
	})
	return pr
}

func (p *PrometheusRecorder) IncWriteOutcome(writer string, outcome OutcomeLabel) {
	if p == nil || p.writeOutcomes == nil {
		return
	}
	p.writeOutcomes.WithLabelValues(writer, string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveCompileDuration(writer string, d time.Duration, success bool) {
	if p == nil || p.compileDuration == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.compileDuration.WithLabelValues(writer, res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetBucketConcurrency(n int) {
	if p == nil || p.bucketConcurrency == nil {
		return
	}
	p.bucketConcurrency.Set(float64(n))
}
