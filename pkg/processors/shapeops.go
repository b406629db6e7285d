package processors

import (
	"sort"

	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/geom"
	"github.com/hardeen-go/geomgraph/pkg/hderr"
)

// sortAllGroupBy is shared by SortPointsX/SortPointsY: a stable sort of the
// "all" group's membership order by a caller-supplied less function over the
// resolved positions. The underlying points are untouched; only the group's
// ordered membership slice changes.
func sortAllGroupBy(w *geom.World, less func(a, b geom.Position) bool) error {
	g := w.AllGroup()
	grp, err := w.GetGroup(g)
	if err != nil {
		return err
	}
	type entry struct {
		handle geom.PointHandle
		pos    geom.Position
	}
	entries := make([]entry, len(grp.Points))
	for i, h := range grp.Points {
		pt, err := w.GetPoint(h)
		if err != nil {
			return err
		}
		entries[i] = entry{handle: h, pos: pt.Position}
	}
	sort.SliceStable(entries, func(i, j int) bool { return less(entries[i].pos, entries[j].pos) })
	sorted := make([]geom.PointHandle, len(entries))
	for i, e := range entries {
		sorted[i] = e.handle
	}
	return w.SetGroupMembership(g, sorted)
}

// sortPointsXProc (§4.7 SortPointsX): stable lexicographic sort by (x, y).
type sortPointsXProc struct{}

func newSortPointsXProc() catalog.Processor { return &sortPointsXProc{} }

func (*sortPointsXProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{Name: "SortPointsX", Input: catalog.Slotted(1)}
}
func (*sortPointsXProc) SetParameter(name, value string) error {
	return hderr.New("SortPointsX.SetParameter", hderr.UnknownParameter)
}
func (*sortPointsXProc) GetParameter(name string) (string, error) {
	return "", hderr.New("SortPointsX.GetParameter", hderr.UnknownParameter)
}
func (*sortPointsXProc) Run(inputs []*geom.World) (*geom.World, error) {
	w := cloneOrFresh(inputs)
	if err := sortAllGroupBy(w, func(a, b geom.Position) bool {
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	}); err != nil {
		return nil, hderr.Wrap("SortPointsX.Run", hderr.EvaluationFailed, err)
	}
	return w, nil
}

// sortPointsYProc (§4.7 SortPointsY): stable lexicographic sort by (y, x).
type sortPointsYProc struct{}

func newSortPointsYProc() catalog.Processor { return &sortPointsYProc{} }

func (*sortPointsYProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{Name: "SortPointsY", Input: catalog.Slotted(1)}
}
func (*sortPointsYProc) SetParameter(name, value string) error {
	return hderr.New("SortPointsY.SetParameter", hderr.UnknownParameter)
}
func (*sortPointsYProc) GetParameter(name string) (string, error) {
	return "", hderr.New("SortPointsY.GetParameter", hderr.UnknownParameter)
}
func (*sortPointsYProc) Run(inputs []*geom.World) (*geom.World, error) {
	w := cloneOrFresh(inputs)
	if err := sortAllGroupBy(w, func(a, b geom.Position) bool {
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	}); err != nil {
		return nil, hderr.Wrap("SortPointsY.Run", hderr.EvaluationFailed, err)
	}
	return w, nil
}

// createShapeFromGroupProc (§4.7 CreateShapeFromGroup): a new shape whose
// vertices are the ordered membership of the named group.
type createShapeFromGroupProc struct {
	params *paramStore
}

func newCreateShapeFromGroupProc() catalog.Processor {
	return &createShapeFromGroupProc{params: newParamStore(map[string]string{
		"group_name": geom.AllGroupName, "closed": "false",
	})}
}

func (*createShapeFromGroupProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:  "CreateShapeFromGroup",
		Input: catalog.Slotted(1),
		Parameters: []catalog.ParamSpec{
			{Name: "group_name", Type: catalog.String},
			{Name: "closed", Type: catalog.Boolean},
		},
	}
}

func (p *createShapeFromGroupProc) SetParameter(name, value string) error {
	const op = "CreateShapeFromGroup.SetParameter"
	switch name {
	case "group_name":
		return p.params.set(op, name, value)
	case "closed":
		_, canon, err := parseBoolParam(op, value)
		if err != nil {
			return err
		}
		return p.params.set(op, name, canon)
	default:
		return hderr.New(op, hderr.UnknownParameter)
	}
}

func (p *createShapeFromGroupProc) GetParameter(name string) (string, error) {
	return p.params.get("CreateShapeFromGroup.GetParameter", name)
}

func (p *createShapeFromGroupProc) Run(inputs []*geom.World) (*geom.World, error) {
	const op = "CreateShapeFromGroup.Run"
	groupName, err := p.params.get(op, "group_name")
	if err != nil {
		return nil, err
	}
	closed, _, err := parseBoolParam(op, must(p.params.get(op, "closed")))
	if err != nil {
		return nil, err
	}
	w := cloneOrFresh(inputs)
	if err := createShapeFromGroupName(w, groupName, closed); err != nil {
		return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
	}
	return w, nil
}

// createShapeFromGroupName builds a shape from name's current membership, if
// that group exists in w; a missing group is a no-op, matching the
// "wired to a branch that hasn't produced it yet" tolerance also used by
// mutateNamedGroup.
func createShapeFromGroupName(w *geom.World, name string, closed bool) error {
	g, ok := w.GetGroupByName(name)
	if !ok {
		return nil
	}
	grp, err := w.GetGroup(g)
	if err != nil {
		return err
	}
	shape := w.CreateShape(closed)
	return w.AddPointsToShape(grp.Points, shape)
}

// createShapeFromAllGroupsProc (§4.7 CreateShapeFromAllGroups): for every
// group except "all", create a shape from its membership.
type createShapeFromAllGroupsProc struct {
	params *paramStore
}

func newCreateShapeFromAllGroupsProc() catalog.Processor {
	return &createShapeFromAllGroupsProc{params: newParamStore(map[string]string{"closed": "false"})}
}

func (*createShapeFromAllGroupsProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:       "CreateShapeFromAllGroups",
		Input:      catalog.Slotted(1),
		Parameters: []catalog.ParamSpec{{Name: "closed", Type: catalog.Boolean}},
	}
}

func (p *createShapeFromAllGroupsProc) SetParameter(name, value string) error {
	const op = "CreateShapeFromAllGroups.SetParameter"
	if name != "closed" {
		return hderr.New(op, hderr.UnknownParameter)
	}
	_, canon, err := parseBoolParam(op, value)
	if err != nil {
		return err
	}
	return p.params.set(op, name, canon)
}

func (p *createShapeFromAllGroupsProc) GetParameter(name string) (string, error) {
	return p.params.get("CreateShapeFromAllGroups.GetParameter", name)
}

func (p *createShapeFromAllGroupsProc) Run(inputs []*geom.World) (*geom.World, error) {
	const op = "CreateShapeFromAllGroups.Run"
	closed, _, err := parseBoolParam(op, must(p.params.get(op, "closed")))
	if err != nil {
		return nil, err
	}
	w := cloneOrFresh(inputs)
	names := make([]string, 0, w.Groups().Len())
	for _, g := range w.Groups().Entries() {
		if g.Name == geom.AllGroupName {
			continue
		}
		names = append(names, g.Name)
	}
	for _, name := range names {
		if err := createShapeFromGroupName(w, name, closed); err != nil {
			return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
		}
	}
	return w, nil
}

// mergeProc (§4.7 Merge): clones slot 0, imports slot 1's points/shapes/
// groups via GeometryWorld.Merge's rewrite rules.
type mergeProc struct{}

func newMergeProc() catalog.Processor { return &mergeProc{} }

func (*mergeProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{Name: "Merge", Input: catalog.Slotted(2)}
}
func (*mergeProc) SetParameter(name, value string) error {
	return hderr.New("Merge.SetParameter", hderr.UnknownParameter)
}
func (*mergeProc) GetParameter(name string) (string, error) {
	return "", hderr.New("Merge.GetParameter", hderr.UnknownParameter)
}
func (*mergeProc) Run(inputs []*geom.World) (*geom.World, error) {
	const op = "Merge.Run"
	if len(inputs) != 2 || inputs[0] == nil || inputs[1] == nil {
		return nil, hderr.New(op, hderr.InputNotSatisfied)
	}
	w := inputs[0].Clone()
	if err := w.Merge(inputs[1]); err != nil {
		return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
	}
	return w, nil
}
