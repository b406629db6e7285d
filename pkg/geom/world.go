package geom

import (
	"github.com/hardeen-go/geomgraph/internal/arena"
	"github.com/hardeen-go/geomgraph/pkg/hderr"
)

// World is an immutable-once-cached geometry snapshot: three persistent,
// structurally-shared arenas (points, shapes, groups) plus the handle of
// the "all" group every World maintains automatically. Cloning a World is
// O(1); subsequent mutation through the clone path-copies only the slots it
// touches (§4.2, §5).
type World struct {
	points   *arena.Arena[PointTag, Point]
	shapes   *arena.Arena[ShapeTag, Shape]
	groups   *arena.Arena[GroupTag, Group]
	allGroup GroupHandle
}

// NewWorld returns an empty world, already containing its "all" group.
func NewWorld() *World {
	w := &World{
		points: arena.NewPersistent[PointTag, Point](),
		shapes: arena.NewPersistent[ShapeTag, Shape](),
		groups: arena.NewPersistent[GroupTag, Group](),
	}
	w.allGroup = w.groups.Insert(NewGroup(AllGroupName))
	return w
}

// Clone is the cheap, structurally-shared clone every processor performs on
// its first input before mutating (§5).
func (w *World) Clone() *World {
	return &World{
		points:   w.points.Clone(),
		shapes:   w.shapes.Clone(),
		groups:   w.groups.Clone(),
		allGroup: w.allGroup,
	}
}

// AllGroup returns the handle of this world's "all" group.
func (w *World) AllGroup() GroupHandle { return w.allGroup }

// Points, Shapes and Groups expose the backing arenas directly for bulk
// iteration (serialization, bounding-rect, processor logic that needs to
// walk every entity of a kind).
func (w *World) Points() *arena.Arena[PointTag, Point] { return w.points }
func (w *World) Shapes() *arena.Arena[ShapeTag, Shape] { return w.shapes }
func (w *World) Groups() *arena.Arena[GroupTag, Group] { return w.groups }

// CreatePoint inserts p, auto-joins it to the "all" group, and returns its
// handle. Any groups already listed on p are preserved in addition to "all".
func (w *World) CreatePoint(p Point) PointHandle {
	p.Groups = append(append([]GroupHandle{}, p.Groups...), w.allGroup)
	h := w.points.Insert(p)
	_ = w.groups.GetMut(w.allGroup, func(g *Group) {
		g.Points = append(g.Points, h)
	})
	return h
}

// RemovePoint rewrites every group and shape that references h to drop the
// reference, then frees the point. Idempotent against an already-stale or
// already-removed handle.
func (w *World) RemovePoint(h PointHandle) error {
	p, err := w.points.Get(h)
	if err != nil {
		return nil
	}
	for _, gh := range p.Groups {
		_ = w.groups.GetMut(gh, func(g *Group) {
			g.Points = removeHandle(g.Points, h)
		})
	}
	for _, sh := range p.Shapes {
		_ = w.shapes.GetMut(sh, func(s *Shape) {
			s.Vertices = removeHandle(s.Vertices, h)
		})
	}
	return w.points.Remove(h)
}

// GetPoint returns a copy of the point addressed by h.
func (w *World) GetPoint(h PointHandle) (Point, error) { return w.points.Get(h) }

// SetPoint overwrites the point at h, preserving its generation. Back
// reference lists (Groups/Shapes) are caller-preserved fields, not recomputed;
// callers that only want to change position/tangents should read-modify-write.
func (w *World) SetPoint(h PointHandle, p Point) error { return w.points.Update(h, p) }

// MutatePoint applies fn to the point at h in place.
func (w *World) MutatePoint(h PointHandle, fn func(*Point)) error {
	return w.points.GetMut(h, fn)
}

// CreateShape inserts an empty shape with the given closed flag.
func (w *World) CreateShape(closed bool) ShapeHandle {
	return w.shapes.Insert(NewShape(closed))
}

// RemoveShape rewrites every point's shape back-reference list to drop h,
// then frees the shape. Symmetric to RemovePoint; needed by ExtrudeShape,
// which replaces an open shape with a new closed one.
func (w *World) RemoveShape(h ShapeHandle) error {
	s, err := w.shapes.Get(h)
	if err != nil {
		return nil
	}
	for _, ph := range s.Vertices {
		_ = w.points.GetMut(ph, func(p *Point) {
			p.Shapes = removeHandle(p.Shapes, h)
		})
	}
	return w.shapes.Remove(h)
}

// GetShape returns a copy of the shape addressed by h.
func (w *World) GetShape(h ShapeHandle) (Shape, error) { return w.shapes.Get(h) }

// CreateGroup inserts a new, empty named group (not "all" — there is only
// ever one of those per world, created by NewWorld).
func (w *World) CreateGroup(name string) GroupHandle {
	return w.groups.Insert(NewGroup(name))
}

// GetGroup returns a copy of the group addressed by h.
func (w *World) GetGroup(h GroupHandle) (Group, error) { return w.groups.Get(h) }

// GetGroupByName linear-scans the group arena and returns the first match.
func (w *World) GetGroupByName(name string) (GroupHandle, bool) {
	for h, g := range w.groups.Entries() {
		if g.Name == name {
			return h, true
		}
	}
	return GroupHandle{}, false
}

// AddPointsToGroup appends pts (in order, duplicates allowed — multiset
// semantics per §9) to g's membership and records g on each point's back
// reference list.
func (w *World) AddPointsToGroup(pts []PointHandle, g GroupHandle) error {
	if _, err := w.groups.Get(g); err != nil {
		return hderr.Wrap("World.AddPointsToGroup", hderr.UnknownIndex, err)
	}
	for _, ph := range pts {
		if err := w.points.GetMut(ph, func(p *Point) {
			p.Groups = append(p.Groups, g)
		}); err != nil {
			return err
		}
		_ = w.groups.GetMut(g, func(grp *Group) {
			grp.Points = append(grp.Points, ph)
		})
	}
	return nil
}

// AddPointsToShape appends pts as new vertices of s and records s on each
// point's back reference list.
func (w *World) AddPointsToShape(pts []PointHandle, s ShapeHandle) error {
	if _, err := w.shapes.Get(s); err != nil {
		return hderr.Wrap("World.AddPointsToShape", hderr.UnknownIndex, err)
	}
	for _, ph := range pts {
		if err := w.points.GetMut(ph, func(p *Point) {
			p.Shapes = append(p.Shapes, s)
		}); err != nil {
			return err
		}
		_ = w.shapes.GetMut(s, func(shp *Shape) {
			shp.Vertices = append(shp.Vertices, ph)
		})
	}
	return nil
}

// SetGroupMembership overwrites g's ordered point-handle membership in
// place, without touching any point's back-reference list. Used by
// SortPointsX/SortPointsY, which reorder a group's membership without adding
// or removing any point from it.
func (w *World) SetGroupMembership(g GroupHandle, pts []PointHandle) error {
	return w.groups.GetMut(g, func(grp *Group) {
		grp.Points = pts
	})
}

// MutateAllPoints applies fn to every live point, in index order.
func (w *World) MutateAllPoints(fn func(*Point)) { w.points.MutateEach(fn) }

// MutateAllPointsInGroup applies fn to every point currently listed in g's
// membership, in that group's order.
func (w *World) MutateAllPointsInGroup(g GroupHandle, fn func(*Point)) error {
	grp, err := w.groups.Get(g)
	if err != nil {
		return err
	}
	for _, ph := range grp.Points {
		if err := w.points.GetMut(ph, fn); err != nil {
			return err
		}
	}
	return nil
}

// BoundingRect returns the axis-aligned bounding box of all live point
// positions as (northwest, southeast); an empty world returns ((0,0),(0,0)).
func (w *World) BoundingRect() (nw, se Position) {
	first := true
	for p := range w.points.Values() {
		if first {
			nw, se = p.Position, p.Position
			first = false
			continue
		}
		if p.Position.X < nw.X {
			nw.X = p.Position.X
		}
		if p.Position.Y < nw.Y {
			nw.Y = p.Position.Y
		}
		if p.Position.X > se.X {
			se.X = p.Position.X
		}
		if p.Position.Y > se.Y {
			se.Y = p.Position.Y
		}
	}
	return nw, se
}

// Merge copies every point, shape and group of other into w. Points are
// copied first, building an old→new handle map; shapes are then copied,
// translating their vertex handles through that map; groups are copied
// last, translating membership the same way and extending an existing
// same-named group in w rather than duplicating it. The "all" group absorbs
// other's points automatically, through CreatePoint, so it is skipped here.
func (w *World) Merge(other *World) error {
	ptMap := make(map[PointHandle]PointHandle, other.points.Len())
	for h, p := range other.points.Entries() {
		cp := p
		cp.Groups = nil
		cp.Shapes = nil
		ptMap[h] = w.CreatePoint(cp)
	}
	for _, s := range other.shapes.Entries() {
		verts := make([]PointHandle, 0, len(s.Vertices))
		for _, v := range s.Vertices {
			if nv, ok := ptMap[v]; ok {
				verts = append(verts, nv)
			}
		}
		newShape := w.CreateShape(s.Closed)
		if err := w.AddPointsToShape(verts, newShape); err != nil {
			return err
		}
	}
	for _, g := range other.groups.Entries() {
		if g.Name == AllGroupName {
			continue
		}
		target, ok := w.GetGroupByName(g.Name)
		if !ok {
			target = w.CreateGroup(g.Name)
		}
		pts := make([]PointHandle, 0, len(g.Points))
		for _, p := range g.Points {
			if np, ok := ptMap[p]; ok {
				pts = append(pts, np)
			}
		}
		if err := w.AddPointsToGroup(pts, target); err != nil {
			return err
		}
	}
	return nil
}
