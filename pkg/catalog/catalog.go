// Package catalog implements the Processor Catalog (§4.3): a registry of
// processor types, each declaring a stable name, an input kind, and an
// ordered parameter schema. Grounded in the shape generated by the Rust
// original's create_processor! macro (hardeen_core/src/processors/mod.rs),
// translated into an explicit Go interface plus a registry of constructor
// functions — Go has no macros, and §9 explicitly allows either "a closed
// tagged variant or a small trait object behind a registry."
//
// © 2025 arena-cache authors. MIT License.
package catalog

import (
	"sort"
	"sync"

	"github.com/hardeen-go/geomgraph/pkg/geom"
	"github.com/hardeen-go/geomgraph/pkg/hderr"
)

// ParamType is the closed set of parameter type tags from §4.3.
type ParamType int

const (
	_ ParamType = iota
	Integer
	UnsignedInteger
	Float
	Boolean
	PositionParam
	String
	PositionListParam
)

func (t ParamType) String() string {
	switch t {
	case Integer:
		return "Integer"
	case UnsignedInteger:
		return "UnsignedInteger"
	case Float:
		return "Float"
	case Boolean:
		return "Boolean"
	case PositionParam:
		return "Position"
	case String:
		return "String"
	case PositionListParam:
		return "PositionList"
	default:
		return "Unknown"
	}
}

// ParamSpec is one entry of a processor type's ordered parameter schema.
type ParamSpec struct {
	Name string
	Type ParamType
}

// InputKind is one of the two input disciplines from §4.4.
type InputKind struct {
	slotted       bool
	numberOfSlots int
	zeroAllowed   bool
}

// Slotted builds a fixed-arity input kind with n named slots.
func Slotted(n int) InputKind { return InputKind{slotted: true, numberOfSlots: n} }

// Multiple builds an unbounded-set input kind.
func Multiple(zeroAllowed bool) InputKind { return InputKind{slotted: false, zeroAllowed: zeroAllowed} }

func (k InputKind) IsSlotted() bool    { return k.slotted }
func (k InputKind) NumberOfSlots() int { return k.numberOfSlots }
func (k InputKind) ZeroAllowed() bool  { return k.zeroAllowed }

// TypeInfo is the full public schema of a processor type (§6's
// ProcessorTypeInfo).
type TypeInfo struct {
	Name       string
	Input      InputKind
	Parameters []ParamSpec
}

// SubgraphEvaluator is satisfied by *pkg/dag.Graph. It is declared here,
// not imported from pkg/dag, so that pkg/catalog never depends on pkg/dag —
// only subgraph processors need it, and they accept it structurally.
type SubgraphEvaluator interface {
	ProcessOutput(useCaches bool) (*geom.World, error)
}

// Processor is the run contract every processor type implements (§4.7):
// given its inputs (per its InputKind), produce a new world. Implementations
// must not retain references to inputs after Run returns.
type Processor interface {
	TypeInfo() TypeInfo
	SetParameter(name, value string) error
	GetParameter(name string) (string, error)
	Run(inputs []*geom.World) (*geom.World, error)
}

// SubgraphProcessor is additionally implemented by processors whose Run
// needs access to an inner graph (currently only InstanceOnPoints).
type SubgraphProcessor interface {
	Processor
	RunSubgraph(inputs []*geom.World, subgraph SubgraphEvaluator) (*geom.World, error)
}

// Registration pairs a type's schema with a constructor producing a fresh
// instance at default parameter values.
type Registration struct {
	Info TypeInfo
	New  func() Processor
}

// Registry is the catalog's list of known processor types.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Registration
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Registration)}
}

// Register adds or replaces a type's registration.
func (r *Registry) Register(reg Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[reg.Info.Name] = reg
}

// New constructs a processor of typeName at its default parameter values.
func (r *Registry) New(typeName string) (Processor, error) {
	r.mu.RLock()
	reg, ok := r.types[typeName]
	r.mu.RUnlock()
	if !ok {
		return nil, hderr.New("Registry.New", hderr.UnknownProcessorType)
	}
	return reg.New(), nil
}

// TypeInfo returns the schema for a single known type.
func (r *Registry) TypeInfo(typeName string) (TypeInfo, error) {
	r.mu.RLock()
	reg, ok := r.types[typeName]
	r.mu.RUnlock()
	if !ok {
		return TypeInfo{}, hderr.New("Registry.TypeInfo", hderr.UnknownProcessorType)
	}
	return reg.Info, nil
}

// HasParameter reports whether p's declared schema includes a parameter
// named name, independent of any particular Processor implementation.
func HasParameter(p Processor, name string) bool {
	for _, spec := range p.TypeInfo().Parameters {
		if spec.Name == name {
			return true
		}
	}
	return false
}

// List returns every registered type's schema, sorted by name for a stable
// serialization order.
func (r *Registry) List() []TypeInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]TypeInfo, 0, len(r.types))
	for _, reg := range r.types {
		out = append(out, reg.Info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
