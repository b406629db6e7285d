package processors

import (
	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/geom"
	"github.com/hardeen-go/geomgraph/pkg/hderr"
	"github.com/hardeen-go/geomgraph/pkg/predicate"
)

// groupPointsProc (§4.7 GroupPoints): creates a new group, adding every
// point of the "all" group for which the host-provided predicate evaluator
// returns true over {N, X, Y}. If no predicate.Evaluator is available on the
// host, this processor is a well-defined no-op returning the input
// unchanged, matching §9's "do not embed a specific scripting engine in the
// core" boundary.
type groupPointsProc struct {
	params *paramStore
	eval   predicate.Evaluator
}

func newGroupPointsProc(eval predicate.Evaluator) catalog.Processor {
	return &groupPointsProc{
		eval: eval,
		params: newParamStore(map[string]string{
			"group_name": "", "predicate": "",
		}),
	}
}

func (*groupPointsProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:  "GroupPoints",
		Input: catalog.Slotted(1),
		Parameters: []catalog.ParamSpec{
			{Name: "group_name", Type: catalog.String},
			{Name: "predicate", Type: catalog.String},
		},
	}
}

func (p *groupPointsProc) SetParameter(name, value string) error {
	const op = "GroupPoints.SetParameter"
	switch name {
	case "group_name", "predicate":
		return p.params.set(op, name, value)
	default:
		return hderr.New(op, hderr.UnknownParameter)
	}
}

func (p *groupPointsProc) GetParameter(name string) (string, error) {
	return p.params.get("GroupPoints.GetParameter", name)
}

func (p *groupPointsProc) Run(inputs []*geom.World) (*geom.World, error) {
	const op = "GroupPoints.Run"
	w := cloneOrFresh(inputs)
	if p.eval == nil {
		return w, nil
	}
	groupName, err := p.params.get(op, "group_name")
	if err != nil {
		return nil, err
	}
	expr, err := p.params.get(op, "predicate")
	if err != nil {
		return nil, err
	}

	allGroup, err := w.GetGroup(w.AllGroup())
	if err != nil {
		return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
	}
	var matched []geom.PointHandle
	for i, h := range allGroup.Points {
		pt, err := w.GetPoint(h)
		if err != nil {
			return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
		}
		ok, err := p.eval.Eval(expr, predicate.Vars{N: i + 1, X: pt.Position.X, Y: pt.Position.Y})
		if err != nil {
			return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
		}
		if ok {
			matched = append(matched, h)
		}
	}

	g := w.CreateGroup(groupName)
	if err := w.AddPointsToGroup(matched, g); err != nil {
		return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
	}
	return w, nil
}
