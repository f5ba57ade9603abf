// SPDX-License-Identifier: MIT

package molecule

import "github.com/prometheus/client_golang/prometheus"

// CacheMetrics counts projection cache traffic. A nil *CacheMetrics is a
// valid no-op recorder.
type CacheMetrics struct {
	Hits          prometheus.Counter
	Misses        prometheus.Counter
	Invalidations prometheus.Counter
}

// NewCacheMetrics creates the counters under namespace and registers them
// on reg. A nil reg leaves them unregistered.
func NewCacheMetrics(namespace string, reg prometheus.Registerer) (*CacheMetrics, error) {
	m := &CacheMetrics{
		Hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "projection_cache",
			Name:      "hits_total",
			Help:      "Total number of node projections served from cache",
		}),
		Misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "projection_cache",
			Name:      "misses_total",
			Help:      "Total number of node projections built",
		}),
		Invalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "projection_cache",
			Name:      "invalidations_total",
			Help:      "Total number of cache purges caused by structural edits",
		}),
	}
	if reg != nil {
		for _, c := range []prometheus.Collector{m.Hits, m.Misses, m.Invalidations} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

func (m *CacheMetrics) hit() {
	if m != nil {
		m.Hits.Inc()
	}
}

func (m *CacheMetrics) miss() {
	if m != nil {
		m.Misses.Inc()
	}
}

func (m *CacheMetrics) invalidation() {
	if m != nil {
		m.Invalidations.Inc()
	}
}
