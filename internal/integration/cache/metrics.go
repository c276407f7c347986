package cache

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/smartspend/backend/internal/application/adapter"
)

// Metrics counts cache hits, misses and invalidations per collection.
type Metrics struct {
	hits          *prometheus.CounterVec
	misses        *prometheus.CounterVec
	invalidations *prometheus.CounterVec
}

// NewMetrics creates the cache counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smartspend",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cache reads served from the cache.",
		}, []string{"collection"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smartspend",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Cache reads that fell through to the ledger store.",
		}, []string{"collection"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "smartspend",
			Subsystem: "cache",
			Name:      "invalidations_total",
			Help:      "Cache entries invalidated by ledger writes.",
		}, []string{"collection"}),
	}
	if reg != nil {
		reg.MustRegister(m.hits, m.misses, m.invalidations)
	}
	return m
}

func (m *Metrics) hit(key adapter.CacheKey) {
	if m != nil {
		m.hits.WithLabelValues(string(key)).Inc()
	}
}

func (m *Metrics) miss(key adapter.CacheKey) {
	if m != nil {
		m.misses.WithLabelValues(string(key)).Inc()
	}
}

func (m *Metrics) invalidated(keys []adapter.CacheKey) {
	if m == nil {
		return
	}
	for _, key := range keys {
		m.invalidations.WithLabelValues(string(key)).Inc()
	}
}
