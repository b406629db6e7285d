package dag

import "github.com/prometheus/client_golang/prometheus"

// metricsSink is the graph's observability boundary (SPEC_FULL.md §10):
// evaluation counts, cache hit/miss counts (summed over all nodes), rejected
// cycle counts, processor run duration per processor type, and live graph
// size gauges. A nil *prometheus.Registry at construction yields
// noopMetrics, so a host that never calls WithMetrics pays no allocation or
// registration cost.
type metricsSink interface {
	incEvaluations()
	incCacheHit()
	incCacheMiss()
	incCycleRejected()
	observeRunDuration(processorType string, seconds float64)
	setGraphSizes(nodes, points, shapes, groups int)
}

type noopMetrics struct{}

func (noopMetrics) incEvaluations()                                 {}
func (noopMetrics) incCacheHit()                                    {}
func (noopMetrics) incCacheMiss()                                   {}
func (noopMetrics) incCycleRejected()                               {}
func (noopMetrics) observeRunDuration(_ string, _ float64)          {}
func (noopMetrics) setGraphSizes(_, _, _, _ int)                    {}

type promMetrics struct {
	evaluations   prometheus.Counter
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	cyclesRejected prometheus.Counter
	runDuration   *prometheus.HistogramVec
	nodeCount     prometheus.Gauge
	pointCount    prometheus.Gauge
	shapeCount    prometheus.Gauge
	groupCount    prometheus.Gauge
}

func newPromMetrics(reg *prometheus.Registry) *promMetrics {
	m := &promMetrics{
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geomgraph_evaluations_total",
			Help: "Total number of graph node evaluations performed (cache misses only).",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geomgraph_cache_hits_total",
			Help: "Total number of node cache hits during pull evaluation.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geomgraph_cache_misses_total",
			Help: "Total number of node cache misses during pull evaluation.",
		}),
		cyclesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geomgraph_cycles_rejected_total",
			Help: "Total number of Connect calls rejected for introducing a cycle.",
		}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geomgraph_processor_run_duration_seconds",
			Help:    "Duration of a single processor Run/RunSubgraph call.",
			Buckets: prometheus.DefBuckets,
		}, []string{"processor_type"}),
		nodeCount:  prometheus.NewGauge(prometheus.GaugeOpts{Name: "geomgraph_graph_nodes", Help: "Live node count in the graph."}),
		pointCount: prometheus.NewGauge(prometheus.GaugeOpts{Name: "geomgraph_world_points", Help: "Point count in the last evaluated output world."}),
		shapeCount: prometheus.NewGauge(prometheus.GaugeOpts{Name: "geomgraph_world_shapes", Help: "Shape count in the last evaluated output world."}),
		groupCount: prometheus.NewGauge(prometheus.GaugeOpts{Name: "geomgraph_world_groups", Help: "Group count in the last evaluated output world."}),
	}
	reg.MustRegister(m.evaluations, m.cacheHits, m.cacheMisses, m.cyclesRejected, m.runDuration,
		m.nodeCount, m.pointCount, m.shapeCount, m.groupCount)
	return m
}

func (m *promMetrics) incEvaluations()    { m.evaluations.Inc() }
func (m *promMetrics) incCacheHit()       { m.cacheHits.Inc() }
func (m *promMetrics) incCacheMiss()      { m.cacheMisses.Inc() }
func (m *promMetrics) incCycleRejected()  { m.cyclesRejected.Inc() }

func (m *promMetrics) observeRunDuration(processorType string, seconds float64) {
	m.runDuration.WithLabelValues(processorType).Observe(seconds)
}

func (m *promMetrics) setGraphSizes(nodes, points, shapes, groups int) {
	m.nodeCount.Set(float64(nodes))
	m.pointCount.Set(float64(points))
	m.shapeCount.Set(float64(shapes))
	m.groupCount.Set(float64(groups))
}

func newMetricsSink(reg *prometheus.Registry) metricsSink {
	if reg == nil {
		return noopMetrics{}
	}
	return newPromMetrics(reg)
}
