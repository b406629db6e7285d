package processors

import (
	"testing"

	"github.com/hardeen-go/geomgraph/pkg/geom"
)

func TestSortPointsX_S4(t *testing.T) {
	w := geom.NewWorld()
	for _, pos := range []geom.Position{{X: 3, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 0}} {
		w.CreatePoint(geom.NewPoint(pos))
	}

	proc := newSortPointsXProc()
	out, err := proc.Run([]*geom.World{w})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	grp, err := out.GetGroup(out.AllGroup())
	if err != nil {
		t.Fatalf("GetGroup: %v", err)
	}
	want := []geom.Position{{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 0}}
	if len(grp.Points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(grp.Points))
	}
	for i, h := range grp.Points {
		pt, err := out.GetPoint(h)
		if err != nil {
			t.Fatalf("GetPoint: %v", err)
		}
		if pt.Position != want[i] {
			t.Fatalf("position %d: want %+v, got %+v", i, want[i], pt.Position)
		}
	}
}

func TestSortPointsY(t *testing.T) {
	w := geom.NewWorld()
	for _, pos := range []geom.Position{{X: 0, Y: 3}, {X: 0, Y: 1}, {X: 1, Y: 2}} {
		w.CreatePoint(geom.NewPoint(pos))
	}

	proc := newSortPointsYProc()
	out, err := proc.Run([]*geom.World{w})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	grp, err := out.GetGroup(out.AllGroup())
	if err != nil {
		t.Fatalf("GetGroup: %v", err)
	}
	want := []float32{1, 2, 3}
	for i, h := range grp.Points {
		pt, err := out.GetPoint(h)
		if err != nil {
			t.Fatalf("GetPoint: %v", err)
		}
		if pt.Position.Y != want[i] {
			t.Fatalf("y %d: want %v, got %v", i, want[i], pt.Position.Y)
		}
	}
}

func TestCreateShapeFromGroup(t *testing.T) {
	w := geom.NewWorld()
	h1 := w.CreatePoint(geom.NewPoint(geom.Position{X: 0, Y: 0}))
	h2 := w.CreatePoint(geom.NewPoint(geom.Position{X: 1, Y: 0}))
	g := w.CreateGroup("ring")
	if err := w.AddPointsToGroup([]geom.PointHandle{h1, h2}, g); err != nil {
		t.Fatalf("AddPointsToGroup: %v", err)
	}

	proc := newCreateShapeFromGroupProc()
	if err := proc.SetParameter("group_name", "ring"); err != nil {
		t.Fatalf("SetParameter group_name: %v", err)
	}
	if err := proc.SetParameter("closed", "true"); err != nil {
		t.Fatalf("SetParameter closed: %v", err)
	}

	out, err := proc.Run([]*geom.World{w})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Shapes().Len() != 1 {
		t.Fatalf("expected one shape, got %d", out.Shapes().Len())
	}
	for _, s := range out.Shapes().Entries() {
		if !s.Closed {
			t.Fatal("expected a closed shape")
		}
		if len(s.Vertices) != 2 {
			t.Fatalf("expected two vertices, got %d", len(s.Vertices))
		}
	}
}

func TestCreateShapeFromGroupMissingGroupIsNoop(t *testing.T) {
	w := geom.NewWorld()
	proc := newCreateShapeFromGroupProc()
	if err := proc.SetParameter("group_name", "does-not-exist"); err != nil {
		t.Fatalf("SetParameter: %v", err)
	}
	out, err := proc.Run([]*geom.World{w})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Shapes().Len() != 0 {
		t.Fatalf("expected no shapes, got %d", out.Shapes().Len())
	}
}

func TestCreateShapeFromAllGroups(t *testing.T) {
	w := geom.NewWorld()
	h1 := w.CreatePoint(geom.NewPoint(geom.Position{X: 0, Y: 0}))
	h2 := w.CreatePoint(geom.NewPoint(geom.Position{X: 1, Y: 0}))
	h3 := w.CreatePoint(geom.NewPoint(geom.Position{X: 2, Y: 0}))
	gA := w.CreateGroup("A")
	gB := w.CreateGroup("B")
	if err := w.AddPointsToGroup([]geom.PointHandle{h1, h2}, gA); err != nil {
		t.Fatalf("AddPointsToGroup A: %v", err)
	}
	if err := w.AddPointsToGroup([]geom.PointHandle{h3}, gB); err != nil {
		t.Fatalf("AddPointsToGroup B: %v", err)
	}

	proc := newCreateShapeFromAllGroupsProc()
	out, err := proc.Run([]*geom.World{w})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Shapes().Len() != 2 {
		t.Fatalf("expected one shape per non-\"all\" group (2), got %d", out.Shapes().Len())
	}
}

func TestMerge_S3(t *testing.T) {
	a := geom.NewWorld()
	a.CreatePoint(geom.NewPoint(geom.Position{X: 0, Y: 0}))
	a.CreatePoint(geom.NewPoint(geom.Position{X: 1, Y: 0}))
	sa := a.CreateShape(true)
	pts, _ := a.GetGroup(a.AllGroup())
	if err := a.AddPointsToShape(pts.Points, sa); err != nil {
		t.Fatalf("AddPointsToShape a: %v", err)
	}

	b := geom.NewWorld()
	b.CreatePoint(geom.NewPoint(geom.Position{X: 100, Y: 0}))
	b.CreatePoint(geom.NewPoint(geom.Position{X: 101, Y: 0}))
	sb := b.CreateShape(true)
	ptsB, _ := b.GetGroup(b.AllGroup())
	if err := b.AddPointsToShape(ptsB.Points, sb); err != nil {
		t.Fatalf("AddPointsToShape b: %v", err)
	}

	proc := newMergeProc()
	out, err := proc.Run([]*geom.World{a, b})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Points().Len() != 4 {
		t.Fatalf("expected 4 points, got %d", out.Points().Len())
	}
	if out.Shapes().Len() != 2 {
		t.Fatalf("expected 2 shapes, got %d", out.Shapes().Len())
	}
	allGroup, err := out.GetGroup(out.AllGroup())
	if err != nil {
		t.Fatalf("GetGroup: %v", err)
	}
	if len(allGroup.Points) != 4 {
		t.Fatalf("expected \"all\" group size 4, got %d", len(allGroup.Points))
	}
}

func TestMergeRejectsMissingInput(t *testing.T) {
	a := geom.NewWorld()
	proc := newMergeProc()
	if _, err := proc.Run([]*geom.World{a}); err == nil {
		t.Fatal("expected an error when slot 1 is missing")
	}
}
