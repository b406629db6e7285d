package processors

import (
	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/geom"
	"github.com/hardeen-go/geomgraph/pkg/hderr"
)

// instanceOnPointsProc (§4.7 InstanceOnPoints): a subgraph processor. For
// each point of the input world's named group, it re-evaluates the nested
// subgraph with caches disabled (the DAG engine always re-runs a subgraph
// node this way, never serving a cached per-point result across
// iterations), translates the resulting world by that point's position, and
// merges it into an accumulator that is returned once every point has been
// instanced.
type instanceOnPointsProc struct {
	params *paramStore
}

func newInstanceOnPointsProc() catalog.Processor {
	return &instanceOnPointsProc{params: newParamStore(map[string]string{
		"group_name": geom.AllGroupName,
	})}
}

var _ catalog.SubgraphProcessor = (*instanceOnPointsProc)(nil)

func (*instanceOnPointsProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:       "InstanceOnPoints",
		Input:      catalog.Slotted(1),
		Parameters: []catalog.ParamSpec{{Name: "group_name", Type: catalog.String}},
	}
}

func (p *instanceOnPointsProc) SetParameter(name, value string) error {
	const op = "InstanceOnPoints.SetParameter"
	if name != "group_name" {
		return hderr.New(op, hderr.UnknownParameter)
	}
	return p.params.set(op, name, value)
}

func (p *instanceOnPointsProc) GetParameter(name string) (string, error) {
	return p.params.get("InstanceOnPoints.GetParameter", name)
}

// Run is never reached in practice: the DAG engine recognizes every
// catalog.SubgraphProcessor at node-creation time and always calls
// RunSubgraph instead (it is the only processor type in this library that
// needs the subgraph reference). It is implemented defensively rather than
// omitted, since catalog.SubgraphProcessor embeds catalog.Processor.
func (*instanceOnPointsProc) Run(inputs []*geom.World) (*geom.World, error) {
	return nil, hderr.New("InstanceOnPoints.Run", hderr.EvaluationFailed)
}

func (p *instanceOnPointsProc) RunSubgraph(inputs []*geom.World, subgraph catalog.SubgraphEvaluator) (*geom.World, error) {
	const op = "InstanceOnPoints.RunSubgraph"
	groupName, err := p.params.get(op, "group_name")
	if err != nil {
		return nil, err
	}
	w := cloneOrFresh(inputs)
	if groupName == "" {
		groupName = geom.AllGroupName
	}
	g, ok := w.GetGroupByName(groupName)
	if !ok {
		return geom.NewWorld(), nil
	}
	grp, err := w.GetGroup(g)
	if err != nil {
		return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
	}

	acc := geom.NewWorld()
	for _, h := range grp.Points {
		pt, err := w.GetPoint(h)
		if err != nil {
			return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
		}
		instance, err := subgraph.ProcessOutput(false)
		if err != nil {
			return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
		}
		translated := instance.Clone()
		translated.MutateAllPoints(func(p *geom.Point) {
			p.Position = p.Position.Add(pt.Position)
		})
		if err := acc.Merge(translated); err != nil {
			return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
		}
	}
	return acc, nil
}
