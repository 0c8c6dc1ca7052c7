package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the prediction API.
type Metrics struct {
	PredictionsTotal   *prometheus.CounterVec // labels: endpoint, outcome={success,validation_error,error}
	ValidationFailures *prometheus.CounterVec // labels: endpoint
	InferenceDuration  *prometheus.HistogramVec

	// Earthquake autoencoder diagnostic. Never returned to callers.
	ReconstructionError prometheus.Histogram

	ModelsLoaded prometheus.Gauge

	// Audit trail metrics.
	AuditPublished prometheus.Counter
	AuditErrors    prometheus.Counter
}

// NewMetrics creates and registers all API metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.PredictionsTotal,
		m.ValidationFailures,
		m.InferenceDuration,
		m.ReconstructionError,
		m.ModelsLoaded,
		m.AuditPublished,
		m.AuditErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		PredictionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_predict",
			Name:      "predictions_total",
			Help:      "Prediction requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		ValidationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "disaster_predict",
			Name:      "validation_failures_total",
			Help:      "Requests rejected by input validation, by endpoint.",
		}, []string{"endpoint"}),
		InferenceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "disaster_predict",
			Name:      "inference_duration_seconds",
			Help:      "Duration of the full validate-features-infer pipeline.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"endpoint"}),
		ReconstructionError: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "disaster_predict",
			Name:      "reconstruction_error",
			Help:      "Mean squared reconstruction error of the earthquake autoencoder.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		ModelsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "disaster_predict",
			Name:      "models_loaded",
			Help:      "Number of model artifacts held by the registry.",
		}),
		AuditPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_predict",
			Name:      "audit_published_total",
			Help:      "Prediction audit events published to Kafka.",
		}),
		AuditErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "disaster_predict",
			Name:      "audit_errors_total",
			Help:      "Prediction audit events that failed to publish.",
		}),
	}
}
