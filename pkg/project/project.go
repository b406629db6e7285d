// Package project implements the Project lifecycle and navigation layer
// (§4.6, §6): a root graph, a stack of nested subgraphs describing the
// current editing context, and the Host API surface a caller drives a graph
// through. Grounded in hardeen_core/src/project.rs's GoLevelUp/GoLevelDown/
// GetCurrentGraph trio (SPEC_FULL.md §12).
//
// © 2025 arena-cache authors. MIT License.
package project

import (
	"errors"

	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/dag"
	"github.com/hardeen-go/geomgraph/pkg/geom"
	"github.com/hardeen-go/geomgraph/pkg/processors"
)

// ErrAtRoot is returned by GoLevelUp when the navigation stack is already
// empty (the project is at its root graph).
var ErrAtRoot = errors.New("project: already at the root graph")

// Project is the host-facing entry point: a catalog of processor types
// (built once, wired with this project's rng.Source/predicate.Evaluator),
// a root graph, and a navigation stack of subgraphs. All graph operations
// below operate on whichever graph CurrentGraph resolves to (§4.6).
type Project struct {
	registry *catalog.Registry
	root     *dag.Graph
	stack    []*dag.Graph
}

// New constructs a Project with its own processor catalog, wired per opts.
func New(opts ...Option) (*Project, error) {
	cfg := defaultConfig()
	if err := applyOptions(&cfg, opts); err != nil {
		return nil, err
	}

	reg := catalog.NewRegistry()
	processors.Register(reg, cfg.rngSource, cfg.predicate)

	var dagOpts []dag.Option
	dagOpts = append(dagOpts, dag.WithLogger(cfg.logger))
	if cfg.metrics != nil {
		dagOpts = append(dagOpts, dag.WithMetrics(cfg.metrics))
	}

	return &Project{
		registry: reg,
		root:     dag.NewGraph(reg, dagOpts...),
	}, nil
}

// Destroy releases the project's navigation state. The engine holds no
// off-heap resources (§1's scope excludes persistence), so this exists for
// host lifecycle symmetry with §6's "new, destroy" pairing rather than to
// free anything the garbage collector wouldn't reclaim on its own.
func (p *Project) Destroy() {
	p.stack = nil
}

// CurrentGraph resolves the navigation stack to the graph every other
// Project method operates against: the root graph if the stack is empty,
// else the innermost pushed subgraph.
func (p *Project) CurrentGraph() *dag.Graph {
	if len(p.stack) == 0 {
		return p.root
	}
	return p.stack[len(p.stack)-1]
}

// GoLevelDown pushes the subgraph nested inside node (in the current graph)
// onto the navigation stack, making it the new current graph.
func (p *Project) GoLevelDown(node dag.NodeHandle) error {
	sub, err := p.CurrentGraph().GetSubgraphForNode(node)
	if err != nil {
		return err
	}
	p.stack = append(p.stack, sub)
	return nil
}

// GoLevelUp pops the navigation stack, returning to the parent of the
// current graph. Returns ErrAtRoot if already at the root graph.
func (p *Project) GoLevelUp() error {
	if len(p.stack) == 0 {
		return ErrAtRoot
	}
	p.stack = p.stack[:len(p.stack)-1]
	return nil
}

// ListProcessorTypes returns every registered processor type's schema
// (§4.3, §6).
func (p *Project) ListProcessorTypes() []catalog.TypeInfo {
	return p.registry.List()
}

// AddProcessor constructs a node of typeName in the current graph.
func (p *Project) AddProcessor(typeName string) (dag.NodeHandle, error) {
	return p.CurrentGraph().AddProcessorNode(typeName)
}

// RemoveNode removes h from the current graph.
func (p *Project) RemoveNode(h dag.NodeHandle) error {
	return p.CurrentGraph().RemoveNode(h)
}

// Connect wires from's output into to's input in the current graph.
func (p *Project) Connect(from, to dag.NodeHandle, slot int) error {
	return p.CurrentGraph().Connect(from, to, slot)
}

// Disconnect removes the from->to edge from a Multiple input in the current
// graph.
func (p *Project) Disconnect(from, to dag.NodeHandle) error {
	return p.CurrentGraph().Disconnect(from, to)
}

// DisconnectSlot clears a single slot of a Slotted input in the current
// graph.
func (p *Project) DisconnectSlot(to dag.NodeHandle, slot int) error {
	return p.CurrentGraph().DisconnectSlot(to, slot)
}

// SetOutput designates h as the current graph's output node.
func (p *Project) SetOutput(h dag.NodeHandle) error {
	return p.CurrentGraph().SetOutput(h)
}

// GetOutput returns the current graph's output node, if set.
func (p *Project) GetOutput() (dag.NodeHandle, bool) {
	return p.CurrentGraph().GetOutput()
}

// IsSubgraphProcessor reports whether h owns a nested subgraph.
func (p *Project) IsSubgraphProcessor(h dag.NodeHandle) (bool, error) {
	return p.CurrentGraph().IsNodeSubgraphProcessor(h)
}

// SubgraphFor returns the subgraph nested inside h, if any.
func (p *Project) SubgraphFor(h dag.NodeHandle) (*dag.Graph, error) {
	return p.CurrentGraph().GetSubgraphForNode(h)
}

// SetParameter sets a node's parameter by name in the current graph.
func (p *Project) SetParameter(node dag.NodeHandle, name, value string) error {
	return p.CurrentGraph().SetParameter(node, name, value)
}

// GetParameter reads a node's current parameter value in the current graph.
func (p *Project) GetParameter(node dag.NodeHandle, name string) (string, error) {
	return p.CurrentGraph().GetParameter(node, name)
}

// ParameterSchema returns a node's processor's declared schema.
func (p *Project) ParameterSchema(node dag.NodeHandle) (catalog.TypeInfo, error) {
	return p.CurrentGraph().TypeInfo(node)
}

// IsInputSatisfied reports whether a node's input discipline currently holds
// enough connections to run.
func (p *Project) IsInputSatisfied(node dag.NodeHandle) (bool, error) {
	return p.CurrentGraph().IsInputSatisfied(node)
}

// ExposeParameter aliases an external name to (node, parameter) in the
// current graph.
func (p *Project) ExposeParameter(alias string, node dag.NodeHandle, name string) error {
	return p.CurrentGraph().ExposeParameter(alias, node, name)
}

// SetExposedParameter sets a parameter through an alias exposed on the
// current graph.
func (p *Project) SetExposedParameter(alias, value string) error {
	return p.CurrentGraph().SetExposedParameter(alias, value)
}

// GetExposedParameter reads a parameter through an alias exposed on the
// current graph.
func (p *Project) GetExposedParameter(alias string) (string, error) {
	return p.CurrentGraph().GetExposedParameter(alias)
}

// Process evaluates the current graph's designated output node (§4.5).
func (p *Project) Process(useCaches bool) (*geom.World, error) {
	return p.CurrentGraph().ProcessOutput(useCaches)
}

// BoundingRect is a thin pass-through to geom.World.BoundingRect, exposed on
// Project so a host never needs to import pkg/geom directly just to query a
// snapshot it already obtained from Process (§6).
func BoundingRect(w *geom.World) (nw, se geom.Position) {
	return w.BoundingRect()
}
