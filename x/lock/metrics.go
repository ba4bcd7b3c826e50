package lock

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Counters track the lock lifecycle by asset kind.
type Counters struct {
	created   *prometheus.CounterVec
	withdrawn *prometheus.CounterVec
}

var (
	lockMetricsOnce sync.Once
	lockRegistry    *Counters
)

// Metrics returns the lazily registered lock lifecycle counters.
func Metrics() *Counters {
	lockMetricsOnce.Do(func() {
		lockRegistry = &Counters{
			created: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "timelock",
				Subsystem: "lock",
				Name:      "created_total",
				Help:      "Total locks created segmented by asset kind.",
			}, []string{"asset"}),
			withdrawn: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "timelock",
				Subsystem: "lock",
				Name:      "withdrawn_total",
				Help:      "Total locks withdrawn segmented by asset kind.",
			}, []string{"asset"}),
		}
		prometheus.MustRegister(lockRegistry.created, lockRegistry.withdrawn)
	})
	return lockRegistry
}

// Created returns the creation counter of the asset kind.
func (m *Counters) Created(kind AssetKind) prometheus.Counter {
	return m.created.WithLabelValues(kind.String())
}

// Withdrawn returns the withdrawal counter of the asset kind.
func (m *Counters) Withdrawn(kind AssetKind) prometheus.Counter {
	return m.withdrawn.WithLabelValues(kind.String())
}
