package processors

import (
	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/geom"
	"github.com/hardeen-go/geomgraph/pkg/hderr"
	"github.com/hardeen-go/geomgraph/pkg/rng"
)

// cloneOrFresh implements the "clones input if present else fresh world"
// rule several Slotted(1) processors share (§4.7 AddPoints and others).
func cloneOrFresh(inputs []*geom.World) *geom.World {
	if len(inputs) > 0 && inputs[0] != nil {
		return inputs[0].Clone()
	}
	return geom.NewWorld()
}

// mutateNamedGroup resolves groupName (defaulting to geom.AllGroupName when
// empty) against w and applies fn to every point currently in it. A
// group_name that does not exist in this particular input world is treated
// as an empty selection rather than an error, since a processor wired to a
// group another upstream branch created may run before that branch has.
func mutateNamedGroup(w *geom.World, groupName string, fn func(*geom.Point)) error {
	if groupName == "" {
		groupName = geom.AllGroupName
	}
	g, ok := w.GetGroupByName(groupName)
	if !ok {
		return nil
	}
	return w.MutateAllPointsInGroup(g, fn)
}

// addPointsProc (§4.7 AddPoints).
type addPointsProc struct {
	params *paramStore
}

func newAddPointsProc() catalog.Processor {
	return &addPointsProc{params: newParamStore(map[string]string{"positions": ""})}
}

func (*addPointsProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:       "AddPoints",
		Input:      catalog.Slotted(1),
		Parameters: []catalog.ParamSpec{{Name: "positions", Type: catalog.PositionListParam}},
	}
}

func (p *addPointsProc) SetParameter(name, value string) error {
	const op = "AddPoints.SetParameter"
	if name != "positions" {
		return hderr.New(op, hderr.UnknownParameter)
	}
	positions, err := geom.ParsePositionList(value)
	if err != nil {
		return hderr.Wrap(op, hderr.ParseError, err)
	}
	return p.params.set(op, name, geom.FormatPositionList(positions))
}

func (p *addPointsProc) GetParameter(name string) (string, error) {
	return p.params.get("AddPoints.GetParameter", name)
}

func (p *addPointsProc) Run(inputs []*geom.World) (*geom.World, error) {
	const op = "AddPoints.Run"
	raw, err := p.params.get(op, "positions")
	if err != nil {
		return nil, err
	}
	positions, err := geom.ParsePositionList(raw)
	if err != nil {
		return nil, hderr.Wrap(op, hderr.ParseError, err)
	}
	w := cloneOrFresh(inputs)
	for _, pos := range positions {
		w.CreatePoint(geom.NewPoint(pos))
	}
	return w, nil
}

// scaleProc (§4.7 Scale): multiplies every point's position component-wise;
// tangents are left untouched.
type scaleProc struct {
	params *paramStore
}

func newScaleProc() catalog.Processor {
	return &scaleProc{params: newParamStore(map[string]string{"factor_x": "1", "factor_y": "1"})}
}

func (*scaleProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:  "Scale",
		Input: catalog.Slotted(1),
		Parameters: []catalog.ParamSpec{
			{Name: "factor_x", Type: catalog.Float},
			{Name: "factor_y", Type: catalog.Float},
		},
	}
}

func (p *scaleProc) SetParameter(name, value string) error {
	const op = "Scale.SetParameter"
	if name != "factor_x" && name != "factor_y" {
		return hderr.New(op, hderr.UnknownParameter)
	}
	_, canon, err := parseFloatParam(op, value)
	if err != nil {
		return err
	}
	return p.params.set(op, name, canon)
}

func (p *scaleProc) GetParameter(name string) (string, error) {
	return p.params.get("Scale.GetParameter", name)
}

func (p *scaleProc) Run(inputs []*geom.World) (*geom.World, error) {
	const op = "Scale.Run"
	fx, _, err := parseFloatParam(op, must(p.params.get(op, "factor_x")))
	if err != nil {
		return nil, err
	}
	fy, _, err := parseFloatParam(op, must(p.params.get(op, "factor_y")))
	if err != nil {
		return nil, err
	}
	w := cloneOrFresh(inputs)
	w.MutateAllPoints(func(pt *geom.Point) {
		pt.Position.X *= fx
		pt.Position.Y *= fy
	})
	return w, nil
}

// translateProc (§4.7 Translate).
type translateProc struct {
	params *paramStore
}

func newTranslateProc() catalog.Processor {
	return &translateProc{params: newParamStore(map[string]string{
		"offset": "0,0", "group_name": geom.AllGroupName,
	})}
}

func (*translateProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:  "Translate",
		Input: catalog.Slotted(1),
		Parameters: []catalog.ParamSpec{
			{Name: "offset", Type: catalog.PositionParam},
			{Name: "group_name", Type: catalog.String},
		},
	}
}

func (p *translateProc) SetParameter(name, value string) error {
	const op = "Translate.SetParameter"
	switch name {
	case "offset":
		pos, err := geom.ParsePosition(value)
		if err != nil {
			return hderr.Wrap(op, hderr.ParseError, err)
		}
		return p.params.set(op, name, pos.String())
	case "group_name":
		return p.params.set(op, name, value)
	default:
		return hderr.New(op, hderr.UnknownParameter)
	}
}

func (p *translateProc) GetParameter(name string) (string, error) {
	return p.params.get("Translate.GetParameter", name)
}

func (p *translateProc) Run(inputs []*geom.World) (*geom.World, error) {
	const op = "Translate.Run"
	offset, err := geom.ParsePosition(must(p.params.get(op, "offset")))
	if err != nil {
		return nil, hderr.Wrap(op, hderr.ParseError, err)
	}
	groupName, err := p.params.get(op, "group_name")
	if err != nil {
		return nil, err
	}
	w := cloneOrFresh(inputs)
	if err := mutateNamedGroup(w, groupName, func(pt *geom.Point) {
		pt.Position = pt.Position.Add(offset)
	}); err != nil {
		return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
	}
	return w, nil
}

// randomTranslateProc (§4.7 RandomTranslate).
type randomTranslateProc struct {
	params *paramStore
	rng    rng.Source
}

func newRandomTranslateProc(src rng.Source) catalog.Processor {
	return &randomTranslateProc{
		rng: src,
		params: newParamStore(map[string]string{
			"min_offset": "0,0", "max_offset": "0,0", "group_name": geom.AllGroupName,
		}),
	}
}

func (*randomTranslateProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:  "RandomTranslate",
		Input: catalog.Slotted(1),
		Parameters: []catalog.ParamSpec{
			{Name: "min_offset", Type: catalog.PositionParam},
			{Name: "max_offset", Type: catalog.PositionParam},
			{Name: "group_name", Type: catalog.String},
		},
	}
}

func (p *randomTranslateProc) SetParameter(name, value string) error {
	const op = "RandomTranslate.SetParameter"
	switch name {
	case "min_offset", "max_offset":
		pos, err := geom.ParsePosition(value)
		if err != nil {
			return hderr.Wrap(op, hderr.ParseError, err)
		}
		return p.params.set(op, name, pos.String())
	case "group_name":
		return p.params.set(op, name, value)
	default:
		return hderr.New(op, hderr.UnknownParameter)
	}
}

func (p *randomTranslateProc) GetParameter(name string) (string, error) {
	return p.params.get("RandomTranslate.GetParameter", name)
}

func (p *randomTranslateProc) Run(inputs []*geom.World) (*geom.World, error) {
	const op = "RandomTranslate.Run"
	lo, err := geom.ParsePosition(must(p.params.get(op, "min_offset")))
	if err != nil {
		return nil, hderr.Wrap(op, hderr.ParseError, err)
	}
	hi, err := geom.ParsePosition(must(p.params.get(op, "max_offset")))
	if err != nil {
		return nil, hderr.Wrap(op, hderr.ParseError, err)
	}
	groupName, err := p.params.get(op, "group_name")
	if err != nil {
		return nil, err
	}
	w := cloneOrFresh(inputs)
	if err := mutateNamedGroup(w, groupName, func(pt *geom.Point) {
		pt.Position.X += p.rng.Float32Range(lo.X, hi.X)
		pt.Position.Y += p.rng.Float32Range(lo.Y, hi.Y)
	}); err != nil {
		return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
	}
	return w, nil
}

// randomTangentsProc (§4.7 RandomTangents): overwrites every point's
// tangents with a random symmetric pair of magnitude up to strength.
type randomTangentsProc struct {
	params *paramStore
	rng    rng.Source
}

func newRandomTangentsProc(src rng.Source) catalog.Processor {
	return &randomTangentsProc{rng: src, params: newParamStore(map[string]string{"strength": "0"})}
}

func (*randomTangentsProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:       "RandomTangents",
		Input:      catalog.Slotted(1),
		Parameters: []catalog.ParamSpec{{Name: "strength", Type: catalog.Float}},
	}
}

func (p *randomTangentsProc) SetParameter(name, value string) error {
	const op = "RandomTangents.SetParameter"
	if name != "strength" {
		return hderr.New(op, hderr.UnknownParameter)
	}
	_, canon, err := parseFloatParam(op, value)
	if err != nil {
		return err
	}
	return p.params.set(op, name, canon)
}

func (p *randomTangentsProc) GetParameter(name string) (string, error) {
	return p.params.get("RandomTangents.GetParameter", name)
}

func (p *randomTangentsProc) Run(inputs []*geom.World) (*geom.World, error) {
	const op = "RandomTangents.Run"
	strength, _, err := parseFloatParam(op, must(p.params.get(op, "strength")))
	if err != nil {
		return nil, err
	}
	w := cloneOrFresh(inputs)
	w.MutateAllPoints(func(pt *geom.Point) {
		offset := geom.Position{
			X: p.rng.Float32Range(-strength, strength),
			Y: p.rng.Float32Range(-strength, strength),
		}
		pt.OutTangent = offset
		pt.InTangent = offset.Mul(-1)
	})
	return w, nil
}

// smoothTangentsProc (§4.7 SmoothTangents): for every shape with at least
// three vertices, sets each vertex's tangents from its neighbours. This
// follows the spec's explicitly stated relative-tangent formula rather than
// the original source's absolute-tangent form — see DESIGN.md / SPEC_FULL.md
// §13 for why.
type smoothTangentsProc struct {
	params *paramStore
}

func newSmoothTangentsProc() catalog.Processor {
	return &smoothTangentsProc{params: newParamStore(map[string]string{"strength": "1"})}
}

func (*smoothTangentsProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:       "SmoothTangents",
		Input:      catalog.Slotted(1),
		Parameters: []catalog.ParamSpec{{Name: "strength", Type: catalog.Float}},
	}
}

func (p *smoothTangentsProc) SetParameter(name, value string) error {
	const op = "SmoothTangents.SetParameter"
	if name != "strength" {
		return hderr.New(op, hderr.UnknownParameter)
	}
	_, canon, err := parseFloatParam(op, value)
	if err != nil {
		return err
	}
	return p.params.set(op, name, canon)
}

func (p *smoothTangentsProc) GetParameter(name string) (string, error) {
	return p.params.get("SmoothTangents.GetParameter", name)
}

func (p *smoothTangentsProc) Run(inputs []*geom.World) (*geom.World, error) {
	const op = "SmoothTangents.Run"
	strength, _, err := parseFloatParam(op, must(p.params.get(op, "strength")))
	if err != nil {
		return nil, err
	}
	w := cloneOrFresh(inputs)
	for shapeHandle, shape := range w.Shapes().Entries() {
		n := len(shape.Vertices)
		if n < 3 {
			continue
		}
		positions := make([]geom.Position, n)
		for i, vh := range shape.Vertices {
			pt, err := w.GetPoint(vh)
			if err != nil {
				return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
			}
			positions[i] = pt.Position
		}
		apply := func(curIdx, prevIdx, nextIdx int) error {
			out := positions[nextIdx].Sub(positions[prevIdx]).Mul(strength)
			in := positions[prevIdx].Sub(positions[nextIdx]).Mul(strength)
			return w.MutatePoint(shape.Vertices[curIdx], func(pt *geom.Point) {
				pt.OutTangent = out
				pt.InTangent = in
			})
		}
		start, end := 1, n-2
		if shape.Closed {
			start, end = 0, n-1
		}
		for i := start; i <= end; i++ {
			prev := (i - 1 + n) % n
			next := (i + 1) % n
			if err := apply(i, prev, next); err != nil {
				return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
			}
		}
		_ = shapeHandle
	}
	return w, nil
}
