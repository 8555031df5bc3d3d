package memo

// metrics.go is a thin abstraction over Prometheus so memoscope can be used
// with or without metrics: a noop sink pays nothing on the hot path, a
// Prometheus sink is activated by WithMetrics. All metrics are per-Space,
// labeled by the Wrapper's name so a process hosting several memoized
// functions gets per-function breakdown on the Prometheus side via
// sum()/rate().
//
// © 2025 memoscope authors. MIT License.

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metricsSink is the internal interface abstracting away the concrete
// backend (Prometheus vs noop). Not exposed outside the package.
type metricsSink interface {
	incHit(wrapper string)
	incMiss(wrapper string)
	incShadow(wrapper string)
	setScopeDepth(depth int)
}

type noopMetrics struct{}

func (noopMetrics) incHit(string)      {}
func (noopMetrics) incMiss(string)     {}
func (noopMetrics) incShadow(string)   {}
func (noopMetrics) setScopeDepth(int)  {}

type promMetrics struct {
	hits       *prometheus.CounterVec
	misses     *prometheus.CounterVec
	shadows    *prometheus.CounterVec
	scopeDepth prometheus.Gauge
}

func newPromMetrics(name string, reg *prometheus.Registry) *promMetrics {
	label := []string{"wrapper"}
	constLabels := prometheus.Labels{"space": name}

	pm := &promMetrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "memoscope",
			Name:        "hits_total",
			Help:        "Number of Wrapper.Call invocations served from cache.",
			ConstLabels: constLabels,
		}, label),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "memoscope",
			Name:        "misses_total",
			Help:        "Number of Wrapper.Call invocations that ran the user function.",
			ConstLabels: constLabels,
		}, label),
		shadows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "memoscope",
			Name:        "shadows_total",
			Help:        "Number of entries shadowed by Entry.Assign or transitive invalidation.",
			ConstLabels: constLabels,
		}, label),
		scopeDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "memoscope",
			Name:        "scope_depth",
			Help:        "Current depth of the override scope stack (1 == root only).",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(pm.hits, pm.misses, pm.shadows, pm.scopeDepth)
	return pm
}

func (m *promMetrics) incHit(wrapper string)  { m.hits.WithLabelValues(wrapper).Inc() }
func (m *promMetrics) incMiss(wrapper string) { m.misses.WithLabelValues(wrapper).Inc() }
func (m *promMetrics) incShadow(wrapper string) {
	m.shadows.WithLabelValues(wrapper).Inc()
}
func (m *promMetrics) setScopeDepth(depth int) { m.scopeDepth.Set(float64(depth)) }

func newMetricsSink(name string, reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(name, reg)
}
