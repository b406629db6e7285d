package project

import (
	"fmt"

	"golang.org/x/sync/singleflight"

	"github.com/hardeen-go/geomgraph/pkg/dag"
	"github.com/hardeen-go/geomgraph/pkg/geom"
)

// ConcurrentProcessor wraps a *dag.Graph with singleflight-based
// de-duplication across concurrent Process calls, mirroring the teacher's
// loaderGroup (pkg/loader.go): when several host goroutines call Process on
// the same graph with the same useCaches flag at once, only one actually
// walks the DAG; the rest share its result. The engine itself stays
// single-threaded. Only calls that overlap in time and share a key are
// collapsed: calls with different useCaches flags on the same graph, or a
// call that starts after a shared evaluation has finished, each walk the DAG
// on their own and are not serialized against one another (SPEC_FULL.md §11).
type ConcurrentProcessor struct {
	g singleflight.Group
}

// NewConcurrentProcessor constructs a ready-to-use ConcurrentProcessor.
func NewConcurrentProcessor() *ConcurrentProcessor {
	return &ConcurrentProcessor{}
}

// Process evaluates graph's output node, collapsing concurrent calls that
// target the same graph with the same useCaches flag into a single
// evaluation. The key is the graph's pointer identity plus the cache flag,
// since two *dag.Graph values are never the same evaluation even if they
// happen to produce equal results.
func (cp *ConcurrentProcessor) Process(graph *dag.Graph, useCaches bool) (*geom.World, error) {
	key := fmt.Sprintf("%p:%v", graph, useCaches)
	v, err, _ := cp.g.Do(key, func() (any, error) {
		return graph.ProcessOutput(useCaches)
	})
	if err != nil {
		return nil, err
	}
	return v.(*geom.World), nil
}
