package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Submission outcomes used as metric labels.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds all application metrics
type Metrics struct {
	// Payment metrics
	PaymentSubmissionsTotal   *prometheus.CounterVec
	PaymentSubmissionDuration *prometheus.HistogramVec
	InFlightSubmissions       prometheus.Gauge

	// Session metrics
	SessionUpdatesTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all metrics against the given registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		PaymentSubmissionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payment_submissions_total",
				Help:      "Total number of payment submissions by outcome",
			},
			[]string{"outcome"},
		),
		PaymentSubmissionDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "payment_submission_duration_seconds",
				Help:      "Payment submission round-trip duration in seconds",
				Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"outcome"},
		),
		InFlightSubmissions: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "payment_submissions_in_flight",
				Help:      "Number of payment submissions awaiting a response",
			},
		),
		SessionUpdatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "session_updates_total",
				Help:      "Total number of session store writes by field",
			},
			[]string{"field"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	reg.MustRegister(
		m.PaymentSubmissionsTotal,
		m.PaymentSubmissionDuration,
		m.InFlightSubmissions,
		m.SessionUpdatesTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}

// ObserveSubmission records one settled payment submission.
func (m *Metrics) ObserveSubmission(outcome string, d time.Duration) {
	m.PaymentSubmissionsTotal.WithLabelValues(outcome).Inc()
	m.PaymentSubmissionDuration.WithLabelValues(outcome).Observe(d.Seconds())
}
