package dag

import (
	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/geom"
)

// node pairs a processor instance with its input discipline, its set of
// downstream nodes, and its single-slot result cache. The cache holds the
// world produced by the last evaluation at this node; it is cleared by
// invalidateCache whenever anything upstream of it could change the result
// (parameter edit, edge change, subgraph edit).
type node struct {
	processor catalog.Processor
	input     *inputComponent
	outputs   map[NodeHandle]struct{}

	cache *geom.World

	hasSubgraph bool
	subgraph    SubgraphHandle
}

func newNode(p catalog.Processor) *node {
	return &node{
		processor: p,
		input:     newInputComponent(p.TypeInfo().Input),
		outputs:   make(map[NodeHandle]struct{}),
	}
}
