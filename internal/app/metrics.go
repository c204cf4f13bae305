package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the delivery pipeline's Prometheus collectors. They are
// registered on the default registry and exposed through /-/metrics.
type Metrics struct {
	dispatchRuns   *prometheus.CounterVec
	emailsSent     *prometheus.CounterVec
	sendRetries    prometheus.Counter
	dispatchTiming *prometheus.HistogramVec
}

// NewMetrics registers and returns the pipeline collectors. Pass nil to
// use the default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &Metrics{
		dispatchRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dispatch_runs_total",
			Help: "Completed dispatch runs, by timezone and outcome.",
		}, []string{"timezone", "outcome"}),
		emailsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "emails_total",
			Help: "Emails attempted, by type and status.",
		}, []string{"type", "status"}),
		sendRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "email_send_retries_total",
			Help: "Individual send attempts beyond the first.",
		}),
		dispatchTiming: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dispatch_duration_seconds",
			Help:    "Wall time of a full cohort dispatch.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		}, []string{"timezone"}),
	}
}

func (m *Metrics) observeRun(timezone, outcome string, seconds float64) {
	if m == nil {
		return
	}

	m.dispatchRuns.WithLabelValues(timezone, outcome).Inc()
	m.dispatchTiming.WithLabelValues(timezone).Observe(seconds)
}

func (m *Metrics) observeEmail(emailType, status string) {
	if m == nil {
		return
	}

	m.emailsSent.WithLabelValues(emailType, status).Inc()
}

func (m *Metrics) observeRetry() {
	if m == nil {
		return
	}

	m.sendRetries.Inc()
}
