package processors

import (
	"fmt"

	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/geom"
	"github.com/hardeen-go/geomgraph/pkg/hderr"
	"github.com/hardeen-go/geomgraph/pkg/rng"
)

// copyOffsetProc (§4.7 CopyPointsAndOffset).
type copyOffsetProc struct {
	params *paramStore
}

func newCopyOffsetProc() catalog.Processor {
	return &copyOffsetProc{params: newParamStore(map[string]string{"offset": "0,0"})}
}

func (*copyOffsetProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:       "CopyPointsAndOffset",
		Input:      catalog.Slotted(1),
		Parameters: []catalog.ParamSpec{{Name: "offset", Type: catalog.PositionParam}},
	}
}

func (p *copyOffsetProc) SetParameter(name, value string) error {
	const op = "CopyPointsAndOffset.SetParameter"
	if name != "offset" {
		return hderr.New(op, hderr.UnknownParameter)
	}
	pos, err := geom.ParsePosition(value)
	if err != nil {
		return hderr.Wrap(op, hderr.ParseError, err)
	}
	return p.params.set(op, name, pos.String())
}

func (p *copyOffsetProc) GetParameter(name string) (string, error) {
	return p.params.get("CopyPointsAndOffset.GetParameter", name)
}

func (p *copyOffsetProc) Run(inputs []*geom.World) (*geom.World, error) {
	const op = "CopyPointsAndOffset.Run"
	offset, err := geom.ParsePosition(must(p.params.get(op, "offset")))
	if err != nil {
		return nil, hderr.Wrap(op, hderr.ParseError, err)
	}
	w := cloneOrFresh(inputs)
	seed := make([]geom.Point, 0, w.Points().Len())
	for _, pt := range w.Points().Entries() {
		seed = append(seed, pt)
	}
	for _, pt := range seed {
		w.CreatePoint(geom.NewPointWithTangents(pt.Position.Add(offset), pt.InTangent, pt.OutTangent))
	}
	return w, nil
}

// copyRandomOffsetProc (§4.7 CopyPointsAndRandomOffset): for every point in
// the named group, builds a chain of `iterations` copies, each offset from
// its predecessor by a random delta. When the group flag is set, a fresh
// group "cg<k>" is created per seed point and populated with the seed plus
// its chain.
type copyRandomOffsetProc struct {
	params *paramStore
	rng    rng.Source
}

func newCopyRandomOffsetProc(src rng.Source) catalog.Processor {
	return &copyRandomOffsetProc{
		rng: src,
		params: newParamStore(map[string]string{
			"min_offset": "0,0", "max_offset": "0,0",
			"group_name": geom.AllGroupName, "group_flag": "false", "iterations": "0",
		}),
	}
}

func (*copyRandomOffsetProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:  "CopyPointsAndRandomOffset",
		Input: catalog.Slotted(1),
		Parameters: []catalog.ParamSpec{
			{Name: "min_offset", Type: catalog.PositionParam},
			{Name: "max_offset", Type: catalog.PositionParam},
			{Name: "group_name", Type: catalog.String},
			{Name: "group_flag", Type: catalog.Boolean},
			{Name: "iterations", Type: catalog.UnsignedInteger},
		},
	}
}

func (p *copyRandomOffsetProc) SetParameter(name, value string) error {
	const op = "CopyPointsAndRandomOffset.SetParameter"
	switch name {
	case "min_offset", "max_offset":
		pos, err := geom.ParsePosition(value)
		if err != nil {
			return hderr.Wrap(op, hderr.ParseError, err)
		}
		return p.params.set(op, name, pos.String())
	case "group_name":
		return p.params.set(op, name, value)
	case "group_flag":
		_, canon, err := parseBoolParam(op, value)
		if err != nil {
			return err
		}
		return p.params.set(op, name, canon)
	case "iterations":
		_, canon, err := parseUintParam(op, value)
		if err != nil {
			return err
		}
		return p.params.set(op, name, canon)
	default:
		return hderr.New(op, hderr.UnknownParameter)
	}
}

func (p *copyRandomOffsetProc) GetParameter(name string) (string, error) {
	return p.params.get("CopyPointsAndRandomOffset.GetParameter", name)
}

func (p *copyRandomOffsetProc) Run(inputs []*geom.World) (*geom.World, error) {
	const op = "CopyPointsAndRandomOffset.Run"
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
	groupFlag, _, err := parseBoolParam(op, must(p.params.get(op, "group_flag")))
	if err != nil {
		return nil, err
	}
	iterations, _, err := parseUintParam(op, must(p.params.get(op, "iterations")))
	if err != nil {
		return nil, err
	}

	w := cloneOrFresh(inputs)
	if groupName == "" {
		groupName = geom.AllGroupName
	}
	g, ok := w.GetGroupByName(groupName)
	if !ok {
		return w, nil
	}
	group, err := w.GetGroup(g)
	if err != nil {
		return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
	}
	seeds := make([]geom.PointHandle, len(group.Points))
	copy(seeds, group.Points)

	for k, seed := range seeds {
		seedPoint, err := w.GetPoint(seed)
		if err != nil {
			return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
		}
		chain := make([]geom.PointHandle, 0, iterations)
		current := seedPoint.Position
		for i := uint64(0); i < iterations; i++ {
			current = current.Add(geom.Position{
				X: p.rng.Float32Range(lo.X, hi.X),
				Y: p.rng.Float32Range(lo.Y, hi.Y),
			})
			chain = append(chain, w.CreatePoint(geom.NewPoint(current)))
		}
		if groupFlag {
			cg := w.CreateGroup(fmt.Sprintf("cg%d", k))
			members := append([]geom.PointHandle{seed}, chain...)
			if err := w.AddPointsToGroup(members, cg); err != nil {
				return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
			}
		}
	}
	return w, nil
}
