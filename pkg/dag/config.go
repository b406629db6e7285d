package dag

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures a Graph at construction, following the functional-options
// style the teacher repo uses for its cache (pkg/config.go).
type Option func(*config)

type config struct {
	logger  *zap.Logger
	metrics metricsSink
}

func defaultConfig() config {
	return config{logger: zap.NewNop(), metrics: noopMetrics{}}
}

// WithLogger attaches structured logging to graph operations: node
// additions, cycle rejections, and subgraph recursion entry/exit. Cache
// invalidation is not logged. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics registers Prometheus collectors for evaluation counts, cache
// hit/miss rates, processor run duration, and live graph size gauges onto
// reg. A nil registry leaves metrics as a no-op.
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *config) { c.metrics = newMetricsSink(reg) }
}
