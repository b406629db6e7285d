// Package document implements the §6 JSON serialization shapes for worlds
// and the processor catalog; graphs are not serialized. No third-party JSON
// library appears anywhere in the retrieved examples pack, so this package
// is built directly on encoding/json rather than an ecosystem package (see
// DESIGN.md).
//
// © 2025 arena-cache authors. MIT License.
package document

import (
	"encoding/json"
	"strconv"

	"github.com/hardeen-go/geomgraph/internal/arena"
	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/geom"
)

// Handle is the stable {index, generation} shape §6 assigns to every arena
// handle, independent of which entity kind it tags.
type Handle struct {
	Index      uint32 `json:"index"`
	Generation uint32 `json:"generation"`
}

func encodeHandle[K any](h arena.Handle[K]) Handle {
	return Handle{Index: h.Index(), Generation: h.Generation()}
}

func encodeHandles[K any](hs []arena.Handle[K]) []Handle {
	out := make([]Handle, len(hs))
	for i, h := range hs {
		out[i] = encodeHandle(h)
	}
	return out
}

// Point is §6's Point shape. geom.Position already serializes to the
// 2-element array form via its own MarshalJSON.
type Point struct {
	Position   geom.Position `json:"position"`
	InTangent  geom.Position `json:"in_tangent"`
	OutTangent geom.Position `json:"out_tangent"`
	Groups     []Handle      `json:"groups"`
	Shapes     []Handle      `json:"shapes"`
}

func encodePoint(p geom.Point) Point {
	return Point{
		Position:   p.Position,
		InTangent:  p.InTangent,
		OutTangent: p.OutTangent,
		Groups:     encodeHandles(p.Groups),
		Shapes:     encodeHandles(p.Shapes),
	}
}

// Shape is §6's Shape shape.
type Shape struct {
	Vertices []Handle `json:"vertices"`
	Closed   bool     `json:"closed"`
}

func encodeShape(s geom.Shape) Shape {
	return Shape{Vertices: encodeHandles(s.Vertices), Closed: s.Closed}
}

// Group is §6's Group shape.
type Group struct {
	Name   string   `json:"name"`
	Points []Handle `json:"points"`
}

func encodeGroup(g geom.Group) Group {
	return Group{Name: g.Name, Points: encodeHandles(g.Points)}
}

// World is §6's World shape: points, shapes and groups each keyed by the
// slot index of the occupying arena entry, as a string (JSON object keys
// are always strings).
type World struct {
	Points map[string]Point `json:"points"`
	Shapes map[string]Shape `json:"shapes"`
	Groups map[string]Group `json:"groups"`
}

// EncodeWorld snapshots w into its §6 JSON document shape.
func EncodeWorld(w *geom.World) World {
	doc := World{
		Points: make(map[string]Point, w.Points().Len()),
		Shapes: make(map[string]Shape, w.Shapes().Len()),
		Groups: make(map[string]Group, w.Groups().Len()),
	}
	for h, p := range w.Points().Entries() {
		doc.Points[slotKey(h.Index())] = encodePoint(p)
	}
	for h, s := range w.Shapes().Entries() {
		doc.Shapes[slotKey(h.Index())] = encodeShape(s)
	}
	for h, g := range w.Groups().Entries() {
		doc.Groups[slotKey(h.Index())] = encodeGroup(g)
	}
	return doc
}

func slotKey(index uint32) string {
	return strconv.FormatUint(uint64(index), 10)
}

// InputType is §6's tagged input-kind shape: either
// {"type":"Slotted","number_of_slots":n} or
// {"type":"Multiple","zero_allowed":bool}.
type InputType struct {
	kind catalog.InputKind
}

func (t InputType) MarshalJSON() ([]byte, error) {
	if t.kind.IsSlotted() {
		return json.Marshal(struct {
			Type          string `json:"type"`
			NumberOfSlots int    `json:"number_of_slots"`
		}{Type: "Slotted", NumberOfSlots: t.kind.NumberOfSlots()})
	}
	return json.Marshal(struct {
		Type        string `json:"type"`
		ZeroAllowed bool   `json:"zero_allowed"`
	}{Type: "Multiple", ZeroAllowed: t.kind.ZeroAllowed()})
}

// ParamSpec is §6's processor parameter schema entry.
type ParamSpec struct {
	ParamName string `json:"param_name"`
	ParamType string `json:"param_type"`
}

// ProcessorTypeInfo is §6's ProcessorTypeInfo shape.
type ProcessorTypeInfo struct {
	Name       string      `json:"name"`
	InputType  InputType   `json:"input_type"`
	Parameters []ParamSpec `json:"parameters"`
}

// EncodeTypeInfo converts a single catalog.TypeInfo into its §6 document
// shape.
func EncodeTypeInfo(t catalog.TypeInfo) ProcessorTypeInfo {
	params := make([]ParamSpec, len(t.Parameters))
	for i, ps := range t.Parameters {
		params[i] = ParamSpec{ParamName: ps.Name, ParamType: ps.Type.String()}
	}
	return ProcessorTypeInfo{
		Name:       t.Name,
		InputType:  InputType{kind: t.Input},
		Parameters: params,
	}
}

// EncodeCatalog converts every type in list into its §6 document shape, in
// the order given (catalog.Registry.List already returns these sorted by
// name).
func EncodeCatalog(list []catalog.TypeInfo) []ProcessorTypeInfo {
	out := make([]ProcessorTypeInfo, len(list))
	for i, t := range list {
		out[i] = EncodeTypeInfo(t)
	}
	return out
}
