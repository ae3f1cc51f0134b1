package dashboard

import "github.com/prometheus/client_golang/prometheus"

// CacheMetrics counts cache hits and misses for the dashboard metrics
// record. All methods are nil-safe.
type CacheMetrics struct {
	hits   prometheus.Counter
	misses prometheus.Counter
}

// NewCacheMetrics registers the counters on reg.
func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &CacheMetrics{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poslane_dashboard_cache_hits_total",
			Help: "Dashboard metric loads served from the TTL cache.",
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "poslane_dashboard_cache_miss_total",
			Help: "Dashboard metric loads that required a blocking fetch.",
		}),
	}
	reg.MustRegister(m.hits, m.misses)
	return m
}

// Hit records a cache hit.
func (m *CacheMetrics) Hit() {
	if m != nil {
		m.hits.Inc()
	}
}

// Miss records a cache miss.
func (m *CacheMetrics) Miss() {
	if m != nil {
		m.misses.Inc()
	}
}
