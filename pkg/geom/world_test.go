package geom

import "testing"

func TestCreatePointJoinsAllGroup(t *testing.T) {
	w := NewWorld()
	h := w.CreatePoint(NewPoint(Position{1, 2}))
	all, err := w.GetGroup(w.AllGroup())
	if err != nil {
		t.Fatalf("GetGroup(all): %v", err)
	}
	found := false
	for _, ph := range all.Points {
		if ph == h {
			found = true
		}
	}
	if !found {
		t.Fatalf("new point not present in %q group", AllGroupName)
	}
	if len(all.Points) != 1 {
		t.Fatalf("all group size = %d; want 1", len(all.Points))
	}
}

func TestRemovePointRewritesBackReferences(t *testing.T) {
	w := NewWorld()
	h := w.CreatePoint(NewPoint(Position{0, 0}))
	g := w.CreateGroup("g")
	s := w.CreateShape(false)
	if err := w.AddPointsToGroup([]PointHandle{h}, g); err != nil {
		t.Fatalf("AddPointsToGroup: %v", err)
	}
	if err := w.AddPointsToShape([]PointHandle{h}, s); err != nil {
		t.Fatalf("AddPointsToShape: %v", err)
	}
	if err := w.RemovePoint(h); err != nil {
		t.Fatalf("RemovePoint: %v", err)
	}
	grp, _ := w.GetGroup(g)
	if len(grp.Points) != 0 {
		t.Fatalf("group still references removed point: %v", grp.Points)
	}
	shp, _ := w.GetShape(s)
	if len(shp.Vertices) != 0 {
		t.Fatalf("shape still references removed point: %v", shp.Vertices)
	}
	all, _ := w.GetGroup(w.AllGroup())
	if len(all.Points) != 0 {
		t.Fatalf("all group still references removed point: %v", all.Points)
	}
	// idempotent against a second removal of the same (now stale) handle
	if err := w.RemovePoint(h); err != nil {
		t.Fatalf("RemovePoint (idempotent): %v", err)
	}
}

func TestRemoveShapeRewritesPointBackReferences(t *testing.T) {
	w := NewWorld()
	h := w.CreatePoint(NewPoint(Position{0, 0}))
	s := w.CreateShape(true)
	if err := w.AddPointsToShape([]PointHandle{h}, s); err != nil {
		t.Fatalf("AddPointsToShape: %v", err)
	}
	if err := w.RemoveShape(s); err != nil {
		t.Fatalf("RemoveShape: %v", err)
	}
	p, err := w.GetPoint(h)
	if err != nil {
		t.Fatalf("GetPoint: %v", err)
	}
	if len(p.Shapes) != 0 {
		t.Fatalf("point still references removed shape: %v", p.Shapes)
	}
}

func TestMergeCombinesWorlds(t *testing.T) {
	a := NewWorld()
	a.CreatePoint(NewPoint(Position{0, 0}))
	a.CreatePoint(NewPoint(Position{1, 1}))

	b := NewWorld()
	hb1 := b.CreatePoint(NewPoint(Position{2, 2}))
	hb2 := b.CreatePoint(NewPoint(Position{3, 3}))
	gb := b.CreateGroup("named")
	if err := b.AddPointsToGroup([]PointHandle{hb1, hb2}, gb); err != nil {
		t.Fatalf("AddPointsToGroup: %v", err)
	}
	sb := b.CreateShape(false)
	if err := b.AddPointsToShape([]PointHandle{hb1, hb2}, sb); err != nil {
		t.Fatalf("AddPointsToShape: %v", err)
	}

	m := a.Clone()
	if err := m.Merge(b); err != nil {
		t.Fatalf("Merge: %v", err)
	}

	all, _ := m.GetGroup(m.AllGroup())
	if len(all.Points) != 4 {
		t.Fatalf("merged all-group size = %d; want 4", len(all.Points))
	}
	namedH, ok := m.GetGroupByName("named")
	if !ok {
		t.Fatalf("merged world missing group %q", "named")
	}
	named, _ := m.GetGroup(namedH)
	if len(named.Points) != 2 {
		t.Fatalf("merged named-group size = %d; want 2", len(named.Points))
	}
	if m.Shapes().Len() != 1 {
		t.Fatalf("merged shape count = %d; want 1", m.Shapes().Len())
	}

	// A must be untouched by the merge performed on its clone.
	allA, _ := a.GetGroup(a.AllGroup())
	if len(allA.Points) != 2 {
		t.Fatalf("source world mutated by merge on its clone: all-group size = %d", len(allA.Points))
	}
}

func TestMergeReusesExistingNamedGroup(t *testing.T) {
	a := NewWorld()
	pa := a.CreatePoint(NewPoint(Position{0, 0}))
	ga := a.CreateGroup("named")
	if err := a.AddPointsToGroup([]PointHandle{pa}, ga); err != nil {
		t.Fatalf("AddPointsToGroup: %v", err)
	}

	b := NewWorld()
	pb := b.CreatePoint(NewPoint(Position{1, 1}))
	gb := b.CreateGroup("named")
	if err := b.AddPointsToGroup([]PointHandle{pb}, gb); err != nil {
		t.Fatalf("AddPointsToGroup: %v", err)
	}

	if err := a.Merge(b); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	count := 0
	for _, g := range a.Groups().Entries() {
		if g.Name == "named" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("merge duplicated group %q: found %d copies", "named", count)
	}
	named, _ := a.GetGroup(ga)
	if len(named.Points) != 2 {
		t.Fatalf("reused group size = %d; want 2", len(named.Points))
	}
}

func TestBoundingRectEmptyWorld(t *testing.T) {
	w := NewWorld()
	nw, se := w.BoundingRect()
	if nw != (Position{}) || se != (Position{}) {
		t.Fatalf("BoundingRect(empty) = %v,%v; want (0,0),(0,0)", nw, se)
	}
}

func TestBoundingRect(t *testing.T) {
	w := NewWorld()
	w.CreatePoint(NewPoint(Position{-5, -2.5}))
	w.CreatePoint(NewPoint(Position{5, 2.5}))
	w.CreatePoint(NewPoint(Position{0, 10}))
	nw, se := w.BoundingRect()
	if nw != (Position{-5, -2.5}) {
		t.Fatalf("nw = %v; want (-5,-2.5)", nw)
	}
	if se != (Position{5, 10}) {
		t.Fatalf("se = %v; want (5,10)", se)
	}
}

func TestCloneDivergesOnMutation(t *testing.T) {
	w := NewWorld()
	h := w.CreatePoint(NewPoint(Position{0, 0}))
	clone := w.Clone()
	if err := clone.MutatePoint(h, func(p *Point) { p.Position = Position{9, 9} }); err != nil {
		t.Fatalf("MutatePoint: %v", err)
	}
	orig, _ := w.GetPoint(h)
	cp, _ := clone.GetPoint(h)
	if orig.Position != (Position{0, 0}) {
		t.Fatalf("original mutated through clone: %v", orig.Position)
	}
	if cp.Position != (Position{9, 9}) {
		t.Fatalf("clone not mutated: %v", cp.Position)
	}
}
