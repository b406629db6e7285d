// Package dag implements the DAG Engine (§4.5): the node arena, edge
// discipline, acyclicity check, output selection, cache invalidation and
// pull-based evaluation, plus subgraph nesting and exposed parameters
// (§4.6). Grounded in hardeen_core/src/graph/{mod,nodes,input_component,
// run_behaviours}.rs and hardeen_core/src/project.rs.
//
// © 2025 arena-cache authors. MIT License.
package dag

import "github.com/hardeen-go/geomgraph/internal/arena"

type (
	NodeTag     struct{}
	SubgraphTag struct{}
)

type (
	NodeHandle     = arena.Handle[NodeTag]
	SubgraphHandle = arena.Handle[SubgraphTag]
)
