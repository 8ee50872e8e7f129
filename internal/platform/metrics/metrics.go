package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the process-wide Prometheus collectors. Constructed once in
// main and passed to services; a nil *Metrics disables recording.
type Metrics struct {
	TenantsRegistered prometheus.Counter
	LoginsSucceeded   prometheus.Counter
	AuthFailures      prometheus.Counter
	LoginDuration     prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		TenantsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bizcore_tenants_registered_total",
			Help: "Total number of tenants provisioned through registration",
		}),
		LoginsSucceeded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bizcore_logins_succeeded_total",
			Help: "Total number of successful logins",
		}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bizcore_auth_failures_total",
			Help: "Total number of failed authentication attempts",
		}),
		LoginDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bizcore_login_duration_seconds",
			Help:    "Duration of login operations including password verification",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) IncrementTenantsRegistered() {
	if m != nil {
		m.TenantsRegistered.Inc()
	}
}

func (m *Metrics) IncrementLoginsSucceeded() {
	if m != nil {
		m.LoginsSucceeded.Inc()
	}
}

func (m *Metrics) IncrementAuthFailures() {
	if m != nil {
		m.AuthFailures.Inc()
	}
}

func (m *Metrics) ObserveLoginDuration(start time.Time) {
	if m != nil {
		m.LoginDuration.Observe(time.Since(start).Seconds())
	}
}
