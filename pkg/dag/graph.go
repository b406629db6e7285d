package dag

import (
	"time"

	"go.uber.org/zap"

	"github.com/hardeen-go/geomgraph/internal/arena"
	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/geom"
	"github.com/hardeen-go/geomgraph/pkg/hderr"
)

// env is the set of dependencies a Graph and every subgraph nested inside it
// share. Subgraphs are created internally (AddProcessorNode, for a
// SubgraphProcessor type) rather than via NewGraph, so they inherit the root
// graph's registry, logger and metrics sink instead of defaulting to no-ops.
type env struct {
	registry *catalog.Registry
	logger   *zap.Logger
	metrics  metricsSink
}

// Graph is the DAG Engine (§4.5): a node arena, an arena of nested
// subgraphs, an optional output node, and a set of exposed parameter
// aliases (§4.6). The zero value is not usable; construct with NewGraph.
type Graph struct {
	nodes     *arena.Arena[NodeTag, *node]
	subgraphs *arena.Arena[SubgraphTag, *Graph]

	hasOutput  bool
	outputNode NodeHandle

	exposed map[string]exposedParam

	env *env
}

type exposedParam struct {
	node NodeHandle
	name string
}

// NewGraph constructs an empty graph backed by registry.
func NewGraph(registry *catalog.Registry, opts ...Option) *Graph {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return newGraphWithEnv(&env{registry: registry, logger: cfg.logger, metrics: cfg.metrics})
}

func newGraphWithEnv(e *env) *Graph {
	return &Graph{
		nodes:     arena.NewStdVec[NodeTag, *node](),
		subgraphs: arena.NewStdVec[SubgraphTag, *Graph](),
		exposed:   make(map[string]exposedParam),
		env:       e,
	}
}

var _ catalog.SubgraphEvaluator = (*Graph)(nil)

// AddProcessorNode constructs a processor of typeName from the catalog and
// adds it as a new node. If the processor additionally implements
// catalog.SubgraphProcessor, an empty nested subgraph is created and owned
// by the new node automatically — the host never manages subgraph arenas
// directly (§4.6).
func (g *Graph) AddProcessorNode(typeName string) (NodeHandle, error) {
	proc, err := g.env.registry.New(typeName)
	if err != nil {
		return NodeHandle{}, err
	}
	n := newNode(proc)
	h := g.nodes.Insert(n)
	if _, ok := proc.(catalog.SubgraphProcessor); ok {
		sub := newGraphWithEnv(g.env)
		n.hasSubgraph = true
		n.subgraph = g.subgraphs.Insert(sub)
	}
	g.env.logger.Debug("node added", zap.String("type", typeName))
	return h, nil
}

// RemoveNode deletes h and every edge incident to it (§4.5: removal
// disconnects both directions before freeing the handle).
func (g *Graph) RemoveNode(h NodeHandle) error {
	n, err := g.nodes.Get(h)
	if err != nil {
		return hderr.Wrap("Graph.RemoveNode", hderr.UnknownIndex, err)
	}
	for _, up := range n.input.allInputs() {
		if upNode, err := g.nodes.Get(up); err == nil {
			delete(upNode.outputs, h)
		}
	}
	for down := range n.outputs {
		if downNode, err := g.nodes.Get(down); err == nil {
			downNode.input.disconnectHandle(h)
			g.invalidateCache(down)
		}
	}
	if g.hasOutput && g.outputNode == h {
		g.hasOutput = false
	}
	return g.nodes.Remove(h)
}

// Connect wires from's output into to's input. For a Slotted(n) input, slot
// selects which of the n slots to fill; for a Multiple input slot is
// ignored. The edge is rejected with CycleWouldBeIntroduced if a path from
// to back to from already exists, since adding it would close a cycle
// (§4.5); no state is mutated when Connect fails.
func (g *Graph) Connect(from, to NodeHandle, slot int) error {
	const op = "Graph.Connect"
	if _, err := g.nodes.Get(from); err != nil {
		return hderr.Wrap(op, hderr.UnknownIndex, err)
	}
	toNode, err := g.nodes.Get(to)
	if err != nil {
		return hderr.Wrap(op, hderr.UnknownIndex, err)
	}
	reachable, err := g.pathExists(to, from)
	if err != nil {
		return err
	}
	if reachable {
		g.env.metrics.incCycleRejected()
		g.env.logger.Warn("connect rejected: would introduce a cycle",
			zap.Uint32("from_index", from.Index()), zap.Uint32("to_index", to.Index()))
		return hderr.New(op, hderr.CycleWouldBeIntroduced)
	}
	if toNode.input.kind.IsSlotted() {
		if err := toNode.input.connectSlot(op, from, slot); err != nil {
			return err
		}
	} else {
		toNode.input.connect(from)
	}
	fromNode, _ := g.nodes.Get(from)
	fromNode.outputs[to] = struct{}{}
	g.invalidateCache(to)
	return nil
}

// Disconnect removes the edge from->to from a Multiple input (or from
// whichever slot currently holds it, for a Slotted input).
func (g *Graph) Disconnect(from, to NodeHandle) error {
	const op = "Graph.Disconnect"
	toNode, err := g.nodes.Get(to)
	if err != nil {
		return hderr.Wrap(op, hderr.UnknownIndex, err)
	}
	toNode.input.disconnectHandle(from)
	if fromNode, err := g.nodes.Get(from); err == nil {
		delete(fromNode.outputs, to)
	}
	g.invalidateCache(to)
	return nil
}

// DisconnectSlot clears a single named slot of to's Slotted input. If the
// upstream handle that occupied the slot still reaches to through another
// slot, its outputs entry is left intact.
func (g *Graph) DisconnectSlot(to NodeHandle, slot int) error {
	const op = "Graph.DisconnectSlot"
	toNode, err := g.nodes.Get(to)
	if err != nil {
		return hderr.Wrap(op, hderr.UnknownIndex, err)
	}
	if toNode.input.slotted == nil {
		return hderr.New(op, hderr.NodeInputTypeMismatch)
	}
	occupied, err := toNode.input.isSlotOccupied(op, slot)
	if err != nil {
		return err
	}
	if !occupied {
		return nil
	}
	from := toNode.input.slotted.slots[slot].handle
	if err := toNode.input.disconnectSlot(op, slot); err != nil {
		return err
	}
	if !containsHandle(toNode.input.allInputs(), from) {
		if fromNode, err := g.nodes.Get(from); err == nil {
			delete(fromNode.outputs, to)
		}
	}
	g.invalidateCache(to)
	return nil
}

func containsHandle(inputs []NodeHandle, h NodeHandle) bool {
	for _, v := range inputs {
		if v == h {
			return true
		}
	}
	return false
}

// pathExists reports whether a directed path exists from -> ... -> to,
// following output edges. Used to reject edges that would close a cycle.
func (g *Graph) pathExists(from, to NodeHandle) (bool, error) {
	if from == to {
		return true, nil
	}
	n, err := g.nodes.Get(from)
	if err != nil {
		return false, hderr.Wrap("Graph.pathExists", hderr.UnknownIndex, err)
	}
	for next := range n.outputs {
		ok, err := g.pathExists(next, to)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// SetOutput designates h as the graph's output node. Setting the output
// invalidates its cache so the next evaluation is never served stale.
func (g *Graph) SetOutput(h NodeHandle) error {
	if _, err := g.nodes.Get(h); err != nil {
		return hderr.Wrap("Graph.SetOutput", hderr.OutputNodeHandleInvalid, err)
	}
	g.outputNode = h
	g.hasOutput = true
	g.invalidateCache(h)
	return nil
}

// GetOutput returns the current output node, if one is set.
func (g *Graph) GetOutput() (NodeHandle, bool) {
	return g.outputNode, g.hasOutput
}

// invalidateCache clears h's cached result and recurses into every node
// downstream of h, since their cached results were computed from h's now
// stale output.
func (g *Graph) invalidateCache(h NodeHandle) {
	n, err := g.nodes.Get(h)
	if err != nil {
		return
	}
	n.cache = nil
	for down := range n.outputs {
		g.invalidateCache(down)
	}
}

// SetParameter sets a processor's parameter by name and invalidates the
// node's cache.
func (g *Graph) SetParameter(h NodeHandle, name, value string) error {
	n, err := g.nodes.Get(h)
	if err != nil {
		return hderr.Wrap("Graph.SetParameter", hderr.UnknownIndex, err)
	}
	if err := n.processor.SetParameter(name, value); err != nil {
		return err
	}
	g.invalidateCache(h)
	return nil
}

// GetParameter reads a processor's current parameter value.
func (g *Graph) GetParameter(h NodeHandle, name string) (string, error) {
	n, err := g.nodes.Get(h)
	if err != nil {
		return "", hderr.Wrap("Graph.GetParameter", hderr.UnknownIndex, err)
	}
	return n.processor.GetParameter(name)
}

// TypeInfo returns h's processor's declared schema.
func (g *Graph) TypeInfo(h NodeHandle) (catalog.TypeInfo, error) {
	n, err := g.nodes.Get(h)
	if err != nil {
		return catalog.TypeInfo{}, hderr.Wrap("Graph.TypeInfo", hderr.UnknownIndex, err)
	}
	return n.processor.TypeInfo(), nil
}

// IsInputSatisfied reports whether h's input discipline currently holds
// enough connections to run.
func (g *Graph) IsInputSatisfied(h NodeHandle) (bool, error) {
	n, err := g.nodes.Get(h)
	if err != nil {
		return false, hderr.Wrap("Graph.IsInputSatisfied", hderr.UnknownIndex, err)
	}
	return n.input.isSatisfied(), nil
}

// IsNodeSubgraphProcessor reports whether h owns a nested subgraph
// (SPEC_FULL.md §12).
func (g *Graph) IsNodeSubgraphProcessor(h NodeHandle) (bool, error) {
	n, err := g.nodes.Get(h)
	if err != nil {
		return false, hderr.Wrap("Graph.IsNodeSubgraphProcessor", hderr.UnknownIndex, err)
	}
	return n.hasSubgraph, nil
}

// GetSubgraphForNode returns the subgraph nested inside h, if any
// (SPEC_FULL.md §12).
func (g *Graph) GetSubgraphForNode(h NodeHandle) (*Graph, error) {
	n, err := g.nodes.Get(h)
	if err != nil {
		return nil, hderr.Wrap("Graph.GetSubgraphForNode", hderr.UnknownIndex, err)
	}
	if !n.hasSubgraph {
		return nil, hderr.New("Graph.GetSubgraphForNode", hderr.NodeInputTypeMismatch)
	}
	return g.subgraphs.Get(n.subgraph)
}

// ExposeParameter registers alias as a shorthand for node's name parameter
// (§4.6). The node must already declare a parameter of that name.
func (g *Graph) ExposeParameter(alias string, node NodeHandle, name string) error {
	n, err := g.nodes.Get(node)
	if err != nil {
		return hderr.Wrap("Graph.ExposeParameter", hderr.UnknownIndex, err)
	}
	if !catalog.HasParameter(n.processor, name) {
		return hderr.New("Graph.ExposeParameter", hderr.UnknownParameter)
	}
	g.exposed[alias] = exposedParam{node: node, name: name}
	return nil
}

// SetExposedParameter sets value through an exposed alias.
func (g *Graph) SetExposedParameter(alias, value string) error {
	ep, ok := g.exposed[alias]
	if !ok {
		return hderr.New("Graph.SetExposedParameter", hderr.ExposedParameterMissing)
	}
	return g.SetParameter(ep.node, ep.name, value)
}

// GetExposedParameter reads the current value through an exposed alias.
func (g *Graph) GetExposedParameter(alias string) (string, error) {
	ep, ok := g.exposed[alias]
	if !ok {
		return "", hderr.New("Graph.GetExposedParameter", hderr.ExposedParameterMissing)
	}
	return g.GetParameter(ep.node, ep.name)
}

// ProcessOutput evaluates the graph's designated output node (§4.5's
// six-step pull algorithm) and returns the resulting world. useCaches=false
// forces every node on the path to re-run regardless of its cache slot;
// InstanceOnPoints relies on this to re-evaluate its subgraph once per
// point.
func (g *Graph) ProcessOutput(useCaches bool) (*geom.World, error) {
	if !g.hasOutput {
		return nil, hderr.New("Graph.ProcessOutput", hderr.OutputNotSet)
	}
	w, err := g.processNode(g.outputNode, useCaches)
	if err != nil {
		return nil, err
	}
	var nodes, points, shapes, groups int
	for range g.nodes.Handles() {
		nodes++
	}
	for range w.Points().Handles() {
		points++
	}
	for range w.Shapes().Handles() {
		shapes++
	}
	for range w.Groups().Handles() {
		groups++
	}
	g.env.metrics.setGraphSizes(nodes, points, shapes, groups)
	return w, nil
}

func (g *Graph) processNode(h NodeHandle, useCaches bool) (*geom.World, error) {
	const op = "Graph.processNode"
	n, err := g.nodes.Get(h)
	if err != nil {
		return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
	}
	if !n.input.isSatisfied() {
		return nil, hderr.New(op, hderr.InputNotSatisfied)
	}
	if useCaches && n.cache != nil {
		g.env.metrics.incCacheHit()
		return n.cache, nil
	}
	g.env.metrics.incCacheMiss()

	inputs := n.input.allInputs()
	worlds := make([]*geom.World, 0, len(inputs))
	for _, up := range inputs {
		w, err := g.processNode(up, useCaches)
		if err != nil {
			return nil, err
		}
		worlds = append(worlds, w)
	}

	typeName := n.processor.TypeInfo().Name
	started := time.Now()
	var result *geom.World
	if n.hasSubgraph {
		sp, ok := n.processor.(catalog.SubgraphProcessor)
		if !ok {
			return nil, hderr.New(op, hderr.EvaluationFailed)
		}
		sub, err := g.subgraphs.Get(n.subgraph)
		if err != nil {
			return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
		}
		g.env.logger.Debug("entering subgraph", zap.String("processor_type", typeName))
		result, err = sp.RunSubgraph(worlds, sub)
		g.env.logger.Debug("leaving subgraph", zap.String("processor_type", typeName))
		if err != nil {
			return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
		}
	} else {
		result, err = n.processor.Run(worlds)
		if err != nil {
			return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
		}
	}
	g.env.metrics.observeRunDuration(typeName, time.Since(started).Seconds())
	g.env.metrics.incEvaluations()

	n.cache = result
	return result, nil
}
