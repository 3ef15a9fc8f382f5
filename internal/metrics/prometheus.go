package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder on a prometheus registry.
type PrometheusRecorder struct {
	documentsParsed prometheus.Counter
	pagesGenerated  prometheus.Counter
	pagesWritten    prometheus.Counter
	stageDuration   *prometheus.HistogramVec
	builds          *prometheus.CounterVec
	buildDuration   prometheus.Histogram
}

// NewPrometheusRecorder registers the build metrics on reg and returns
// the recorder.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	r := &PrometheusRecorder{
		documentsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fledermaus_documents_parsed_total",
			Help: "Documents parsed from source files.",
		}),
		pagesGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fledermaus_pages_generated_total",
			Help: "Pages rendered by the page generator.",
		}),
		pagesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fledermaus_pages_written_total",
			Help: "Pages persisted to the output store.",
		}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fledermaus_stage_duration_seconds",
			Help:    "Duration of build pipeline stages.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fledermaus_builds_total",
			Help: "Completed builds by outcome.",
		}, []string{"outcome"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fledermaus_build_duration_seconds",
			Help:    "End-to-end build duration.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		r.documentsParsed,
		r.pagesGenerated,
		r.pagesWritten,
		r.stageDuration,
		r.builds,
		r.buildDuration,
	)
	return r
}

func (r *PrometheusRecorder) DocumentsParsed(n int) { r.documentsParsed.Add(float64(n)) }
func (r *PrometheusRecorder) PagesGenerated(n int)  { r.pagesGenerated.Add(float64(n)) }
func (r *PrometheusRecorder) PagesWritten(n int)    { r.pagesWritten.Add(float64(n)) }

func (r *PrometheusRecorder) StageDuration(stage string, d time.Duration) {
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (r *PrometheusRecorder) BuildCompleted(success bool, d time.Duration) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	r.builds.WithLabelValues(outcome).Inc()
	r.buildDuration.Observe(d.Seconds())
}
