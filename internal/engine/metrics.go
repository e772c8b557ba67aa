package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records evaluation counts and latency.
//
// Metrics exposed (namespace "dayshift"):
//
//   - evaluations_total (counter): labels op, outcome (ok, parse_error,
//     validation_error).
//   - evaluation_duration_seconds (histogram): label op.
//
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	evaluations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewMetrics creates the evaluation metrics and registers them with reg.
// Pass a fresh prometheus.NewRegistry() to keep tests isolated; nil uses
// prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dayshift",
			Name:      "evaluations_total",
			Help:      "Evaluations run, by operation and outcome",
		}, []string{"op", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dayshift",
			Name:      "evaluation_duration_seconds",
			Help:      "Evaluation latency from request to rendered result",
			Buckets:   []float64{1e-6, 1e-5, 1e-4, 1e-3, 1e-2, 1e-1},
		}, []string{"op"}),
	}
}

func (m *Metrics) record(op, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.evaluations.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op).Observe(elapsed.Seconds())
}
