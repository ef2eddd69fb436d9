package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the guardrails module.
type Metrics struct {
	// Evaluations by outcome ("ok", "precondition_failed", "bad_request")
	Evaluations *prometheus.CounterVec

	// Derivation failures by parameter family
	DerivationFailures *prometheus.CounterVec

	// Full snapshot evaluation latency
	EvaluateLatency prometheus.Histogram
}

// New creates a Metrics instance with all guardrails metrics registered.
func New() *Metrics {
	return &Metrics{
		Evaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doseguard_evaluations_total",
			Help: "Total guardrail snapshot evaluations by outcome",
		}, []string{"outcome"}),

		DerivationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doseguard_derivation_failures_total",
			Help: "Derivation failures by parameter family",
		}, []string{"parameter"}),

		EvaluateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "doseguard_evaluate_duration_seconds",
			Help:    "Duration of full guardrail snapshot evaluation",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),
	}
}

// IncrementEvaluation records an evaluation outcome.
func (m *Metrics) IncrementEvaluation(outcome string) {
	if m != nil {
		m.Evaluations.WithLabelValues(outcome).Inc()
	}
}

// IncrementDerivationFailure records a failed derivation for one parameter.
func (m *Metrics) IncrementDerivationFailure(parameter string) {
	if m != nil {
		m.DerivationFailures.WithLabelValues(parameter).Inc()
	}
}

// ObserveEvaluateLatency records the total evaluation duration.
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
