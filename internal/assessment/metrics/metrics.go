package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the assessment module.
type Metrics struct {
	// Evidence fetch latencies by source ("registry", "driver")
	FetchLatency *prometheus.HistogramVec

	// Completed checks by tier and trigger ("api", "recheck")
	ChecksCompleted *prometheus.CounterVec

	// Failed checks by registry error category
	ChecksFailed *prometheus.CounterVec

	// Full check latency including evidence gathering and persistence
	CheckLatency prometheus.Histogram

	// Score distribution across completed checks
	ScoreDistribution prometheus.Histogram
}

// New registers and returns the assessment metrics.
func New() *Metrics {
	return &Metrics{
		FetchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "driveguard_assessment_fetch_duration_seconds",
			Help:    "Duration of evidence fetches by source",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"source"}),

		ChecksCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "driveguard_assessment_checks_completed_total",
			Help: "Completed compliance checks by tier and trigger",
		}, []string{"tier", "trigger"}),

		ChecksFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "driveguard_assessment_checks_failed_total",
			Help: "Failed compliance checks by failure category",
		}, []string{"category"}),

		CheckLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "driveguard_assessment_check_duration_seconds",
			Help:    "Duration of full compliance checks",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		ScoreDistribution: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "driveguard_assessment_score",
			Help:    "Risk score distribution across completed checks",
			Buckets: []float64{0, 5, 10, 15, 25, 40, 60, 80, 100, 150},
		}),
	}
}

// ObserveFetchLatency records the duration of one evidence fetch.
func (m *Metrics) ObserveFetchLatency(source string, d time.Duration) {
	if m != nil {
		m.FetchLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementCompleted records a completed check.
func (m *Metrics) IncrementCompleted(tier, trigger string) {
	if m != nil {
		m.ChecksCompleted.WithLabelValues(tier, trigger).Inc()
	}
}

// IncrementFailed records a failed check.
func (m *Metrics) IncrementFailed(category string) {
	if m != nil {
		m.ChecksFailed.WithLabelValues(category).Inc()
	}
}

// ObserveCheckLatency records the total check duration.
func (m *Metrics) ObserveCheckLatency(d time.Duration) {
	if m != nil {
		m.CheckLatency.Observe(d.Seconds())
	}
}

// ObserveScore records a completed check's score.
func (m *Metrics) ObserveScore(score int) {
	if m != nil {
		m.ScoreDistribution.Observe(float64(score))
	}
}
