package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the submission pipeline.
type Metrics struct {
	// Verification stage latencies by stage name
	StageLatency *prometheus.HistogramVec

	// Completed submissions by outcome
	SubmissionsTotal *prometheus.CounterVec

	// Distribution of final trust scores
	TrustScore prometheus.Histogram

	// Overall evaluation latency including all stages
	EvaluateLatency prometheus.Histogram
}

// New creates a new Metrics instance with all submission pipeline metrics registered.
func New() *Metrics {
	return &Metrics{
		StageLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trustscore_stage_duration_seconds",
			Help:    "Duration of verification stages by name",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"stage"}), // stage: "face", "document", "narrative"

		SubmissionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "trustscore_submissions_total",
			Help: "Total completed submissions by outcome",
		}, []string{"outcome"}),

		TrustScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "trustscore_score",
			Help:    "Distribution of final trust scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "trustscore_evaluate_duration_seconds",
			Help:    "Duration of full submission evaluation including all stages",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// ObserveStageLatency records the duration of one verification stage.
func (m *Metrics) ObserveStageLatency(stage string, d time.Duration) {
	if m != nil {
		m.StageLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// IncrementSubmissions records a completed submission outcome.
func (m *Metrics) IncrementSubmissions(outcome string) {
	if m != nil {
		m.SubmissionsTotal.WithLabelValues(outcome).Inc()
	}
}

// ObserveTrustScore records a final trust score.
func (m *Metrics) ObserveTrustScore(score float64) {
	if m != nil {
		m.TrustScore.Observe(score)
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
