package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is a
// valid no-op recorder.
type Metrics struct {
	// Operation outcomes by endpoint and result ("success" or an error cause)
	OperationOutcome *prometheus.CounterVec

	// Operation latency by endpoint
	OperationLatency *prometheus.HistogramVec

	// Comparator verdicts: "match", "no_match", "error"
	FaceMatchOutcome *prometheus.CounterVec

	FaceMatchLatency prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		OperationOutcome: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kycflow_submission_operations_total",
			Help: "Submission operations by endpoint and outcome",
		}, []string{"endpoint", "submission_type", "outcome"}),

		OperationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kycflow_submission_operation_duration_seconds",
			Help:    "Duration of submission operations including all dependency calls",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),

		FaceMatchOutcome: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kycflow_face_match_total",
			Help: "Biometric comparator calls by verdict",
		}, []string{"outcome"}),

		FaceMatchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kycflow_face_match_duration_seconds",
			Help:    "Duration of biometric comparator calls",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	reg.MustRegister(m.OperationOutcome, m.OperationLatency, m.FaceMatchOutcome, m.FaceMatchLatency)

	return m
}

// ObserveOperation records the outcome and latency of one orchestrator call.
func (m *Metrics) ObserveOperation(endpoint, submissionType, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.OperationOutcome.WithLabelValues(endpoint, submissionType, outcome).Inc()
	m.OperationLatency.WithLabelValues(endpoint).Observe(d.Seconds())
}

// ObserveFaceMatch records one comparator call.
func (m *Metrics) ObserveFaceMatch(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.FaceMatchOutcome.WithLabelValues(outcome).Inc()
	m.FaceMatchLatency.Observe(d.Seconds())
}
