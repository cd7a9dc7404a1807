// Package metrics provides observability for the account module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks registration and login outcomes. All methods are nil-safe
// so services can run without metrics in tests.
type Metrics struct {
	RegistrationsTotal  prometheus.Counter
	RegistrationsFailed prometheus.Counter
	LoginsTotal         prometheus.Counter
	LoginsFailed        prometheus.Counter
	LoginDuration       prometheus.Histogram
}

// New creates a Metrics instance with all account metrics registered.
func New() *Metrics {
	return &Metrics{
		RegistrationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pingmap_registrations_total",
			Help: "Total number of successful registrations",
		}),
		RegistrationsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pingmap_registrations_failed_total",
			Help: "Total number of rejected registration attempts",
		}),
		LoginsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pingmap_logins_total",
			Help: "Total number of successful logins",
		}),
		LoginsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pingmap_logins_failed_total",
			Help: "Total number of failed login attempts",
		}),
		LoginDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pingmap_login_duration_seconds",
			Help:    "Duration of login verification (bcrypt dominates)",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementRegistered records a successful registration.
func (m *Metrics) IncrementRegistered() {
	if m != nil {
		m.RegistrationsTotal.Inc()
	}
}

// IncrementRegistrationFailed records a rejected registration.
func (m *Metrics) IncrementRegistrationFailed() {
	if m != nil {
		m.RegistrationsFailed.Inc()
	}
}

// IncrementLogin records a successful login.
func (m *Metrics) IncrementLogin() {
	if m != nil {
		m.LoginsTotal.Inc()
	}
}

// IncrementLoginFailed records a failed login attempt.
func (m *Metrics) IncrementLoginFailed() {
	if m != nil {
		m.LoginsFailed.Inc()
	}
}

// ObserveLogin records the duration of a login verification.
func (m *Metrics) ObserveLogin(start time.Time) {
	if m != nil {
		m.LoginDuration.Observe(time.Since(start).Seconds())
	}
}
