package buffer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts pool activity. All methods tolerate a nil receiver so the
// pool can run without a registry.
type Metrics struct {
	hits       prometheus.Counter
	misses     prometheus.Counter
	evictions  prometheus.Counter
	writeBacks prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		hits: factory.NewCounter(prometheus.CounterOpts{
			Name: "clockdb_buffer_hits_total",
			Help: "Pages served from the buffer pool without file I/O.",
		}),
		misses: factory.NewCounter(prometheus.CounterOpts{
			Name: "clockdb_buffer_misses_total",
			Help: "Page fetches that had to allocate a frame.",
		}),
		evictions: factory.NewCounter(prometheus.CounterOpts{
			Name: "clockdb_buffer_evictions_total",
			Help: "Valid frames reclaimed by the clock scan.",
		}),
		writeBacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "clockdb_buffer_write_backs_total",
			Help: "Dirty pages written back to their file.",
		}),
	}
}

func (m *Metrics) hit() {
	if m != nil {
		m.hits.Inc()
	}
}

func (m *Metrics) miss() {
	if m != nil {
		m.misses.Inc()
	}
}

func (m *Metrics) eviction() {
	if m != nil {
		m.evictions.Inc()
	}
}

func (m *Metrics) writeBack() {
	if m != nil {
		m.writeBacks.Inc()
	}
}
