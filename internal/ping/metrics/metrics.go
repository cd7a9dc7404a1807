// Package metrics provides observability for the ping module.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks ping mutations. All methods are nil-safe so services can
// run without metrics in tests.
type Metrics struct {
	PingsCreated  prometheus.Counter
	PingsUpdated  prometheus.Counter
	PingsDeleted  prometheus.Counter
	PingsRejected prometheus.Counter
}

// New creates a Metrics instance with all ping metrics registered.
func New() *Metrics {
	return &Metrics{
		PingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pingmap_pings_created_total",
			Help: "Total number of pings created",
		}),
		PingsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pingmap_pings_updated_total",
			Help: "Total number of pings updated",
		}),
		PingsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pingmap_pings_deleted_total",
			Help: "Total number of pings deleted",
		}),
		PingsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pingmap_pings_rejected_total",
			Help: "Total number of ping mutations rejected by validation",
		}),
	}
}

// IncrementCreated records a successful ping creation.
func (m *Metrics) IncrementCreated() {
	if m != nil {
		m.PingsCreated.Inc()
	}
}

// IncrementUpdated records a successful ping update.
func (m *Metrics) IncrementUpdated() {
	if m != nil {
		m.PingsUpdated.Inc()
	}
}

// IncrementDeleted records a successful ping deletion.
func (m *Metrics) IncrementDeleted() {
	if m != nil {
		m.PingsDeleted.Inc()
	}
}

// IncrementRejected records a mutation rejected by validation.
func (m *Metrics) IncrementRejected() {
	if m != nil {
		m.PingsRejected.Inc()
	}
}
