package processors

import (
	"testing"

	"github.com/hardeen-go/geomgraph/pkg/geom"
)

// TestCreateRectangle_S1 exercises spec.md's S1 scenario directly: width=10,
// height=5, position=(0,0) must yield exactly the four NW/NE/SE/SW corners
// it names, in that order, as one closed shape's vertices.
func TestCreateRectangle_S1(t *testing.T) {
	proc := newRectangleProc()
	if err := proc.SetParameter("width", "10"); err != nil {
		t.Fatalf("SetParameter width: %v", err)
	}
	if err := proc.SetParameter("height", "5"); err != nil {
		t.Fatalf("SetParameter height: %v", err)
	}
	if err := proc.SetParameter("position", "0,0"); err != nil {
		t.Fatalf("SetParameter position: %v", err)
	}

	out, err := proc.Run(nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if out.Points().Len() != 4 {
		t.Fatalf("expected 4 points, got %d", out.Points().Len())
	}
	if out.Shapes().Len() != 1 {
		t.Fatalf("expected 1 shape, got %d", out.Shapes().Len())
	}

	var shape geom.Shape
	for _, s := range out.Shapes().Entries() {
		shape = s
	}
	if !shape.Closed {
		t.Fatal("expected a closed shape")
	}
	if len(shape.Vertices) != 4 {
		t.Fatalf("expected 4 vertices, got %d", len(shape.Vertices))
	}

	want := []geom.Position{
		{X: -5, Y: -2.5}, // NW
		{X: 5, Y: -2.5},  // NE
		{X: 5, Y: 2.5},   // SE
		{X: -5, Y: 2.5},  // SW
	}
	for i, h := range shape.Vertices {
		pt, err := out.GetPoint(h)
		if err != nil {
			t.Fatalf("GetPoint(%d): %v", i, err)
		}
		if pt.Position != want[i] {
			t.Fatalf("corner %d: want %+v, got %+v", i, want[i], pt.Position)
		}
		if pt.InTangent != (geom.Position{}) || pt.OutTangent != (geom.Position{}) {
			t.Fatalf("corner %d: expected linear point (zero tangents), got in=%+v out=%+v", i, pt.InTangent, pt.OutTangent)
		}
	}
}
