package obs

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "frvn"

// Outcome labels for health fetches made by the page view.
const (
	OutcomeResolved  = "resolved"
	OutcomeFailed    = "failed"
	OutcomeDiscarded = "discarded"
)

type Metrics struct {
	RequestDuration *prometheus.HistogramVec
	HealthFetches   *prometheus.CounterVec
}

// NewMetrics creates the service collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of served HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		HealthFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "health_fetch_total",
			Help:      "Backend health fetches issued by mounted views, by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(m.RequestDuration, m.HealthFetches)
	return m
}

// ObserveFetch is nil-safe so views can run without metrics.
func (m *Metrics) ObserveFetch(outcome string) {
	if m == nil {
		return
	}
	m.HealthFetches.WithLabelValues(outcome).Inc()
}
