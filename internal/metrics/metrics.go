// Package metrics provides build observability behind a Recorder
// interface.
//
// Components receive a Recorder through dependency injection and
// default to NoopRecorder, so metrics collection never requires nil
// checks at call sites. The Prometheus implementation is activated by
// injecting NewPrometheusRecorder where a registry is available.
package metrics

import "time"

// Recorder receives build pipeline measurements.
type Recorder interface {
	// DocumentsParsed records the number of documents a load produced.
	DocumentsParsed(n int)

	// PagesGenerated records pages rendered for one build.
	PagesGenerated(n int)

	// PagesWritten records pages persisted for one build.
	PagesWritten(n int)

	// StageDuration records how long a named pipeline stage took.
	StageDuration(stage string, d time.Duration)

	// BuildCompleted records one finished build and its outcome.
	BuildCompleted(success bool, d time.Duration)
}

// NoopRecorder is the default Recorder; every method is a no-op.
type NoopRecorder struct{}

func (NoopRecorder) DocumentsParsed(int)                 {}
func (NoopRecorder) PagesGenerated(int)                  {}
func (NoopRecorder) PagesWritten(int)                    {}
func (NoopRecorder) StageDuration(string, time.Duration) {}
func (NoopRecorder) BuildCompleted(bool, time.Duration)  {}
