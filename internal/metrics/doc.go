// Package metrics defines the Recorder abstraction used by the asset pipeline
// to report write outcomes and compiler timings without binding the core to a
// specific metrics backend. A Prometheus implementation is provided; the
// NoopRecorder is the default when metrics are not configured.
package metrics
