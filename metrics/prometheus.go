package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector adapts a Registry to the prometheus.Collector
// interface so the dispatch layer's counters, gauges and histograms can be
// scraped alongside the rest of the node's instrumentation.
//
// Metric names use dot.separated.words internally (see DefaultRegistry);
// Collect rewrites them to Prometheus's underscore convention and applies
// the configured Namespace as a leading segment.
type PrometheusCollector struct {
	registry  *Registry
	namespace string
}

// NewPrometheusCollector wraps registry for export under the given
// namespace (e.g. "lighthouse"). An empty namespace is allowed.
func NewPrometheusCollector(registry *Registry, namespace string) *PrometheusCollector {
	return &PrometheusCollector{registry: registry, namespace: namespace}
}

// Describe implements prometheus.Collector. No static descriptors are sent;
// the registry's metric set is dynamic, so Collect is relied upon instead.
func (c *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {}

// Collect implements prometheus.Collector, translating the current
// Snapshot of the wrapped Registry into Prometheus samples.
func (c *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	for name, value := range c.registry.Snapshot() {
		fqName := c.fqName(name)
		switch v := value.(type) {
		case int64:
			desc := prometheus.NewDesc(fqName, "dispatch layer metric "+name, nil, nil)
			ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, float64(v))
		case map[string]interface{}:
			if sum, ok := v["sum"].(float64); ok {
				desc := prometheus.NewDesc(fqName+"_sum", "dispatch layer histogram sum "+name, nil, nil)
				ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, sum)
			}
			if count, ok := v["count"].(int64); ok {
				desc := prometheus.NewDesc(fqName+"_count", "dispatch layer histogram count "+name, nil, nil)
				ch <- prometheus.MustNewConstMetric(desc, prometheus.GaugeValue, float64(count))
			}
		}
	}
}

func (c *PrometheusCollector) fqName(name string) string {
	underscored := strings.ReplaceAll(name, ".", "_")
	if c.namespace == "" {
		return underscored
	}
	return c.namespace + "_" + underscored
}
