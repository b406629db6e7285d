package geom

// Point holds a position, its two Bézier tangent control positions, and the
// groups/shapes it currently belongs to. The two back-reference slices are
// owned data, not pointers, and are only ever rewritten by World methods —
// never by a caller reaching into a Point directly.
type Point struct {
	Position   Position
	InTangent  Position
	OutTangent Position
	Groups     []GroupHandle
	Shapes     []ShapeHandle
}

// NewPoint constructs a linear point: both tangents are the zero vector,
// which Shape's edge rule reads as "use a straight segment here".
func NewPoint(pos Position) Point {
	return Point{Position: pos}
}

// NewPointWithTangents constructs a point carrying explicit Bézier tangents.
func NewPointWithTangents(pos, in, out Position) Point {
	return Point{Position: pos, InTangent: in, OutTangent: out}
}

// IsLinear reports whether both tangents are zero (straight-segment point).
func (p Point) IsLinear() bool {
	return p.InTangent.IsZero() && p.OutTangent.IsZero()
}
