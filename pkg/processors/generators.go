package processors

import (
	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/geom"
	"github.com/hardeen-go/geomgraph/pkg/hderr"
	"github.com/hardeen-go/geomgraph/pkg/rng"
)

// emptyProc (§4.7 Empty) always returns a fresh empty world; it declares no
// parameters.
type emptyProc struct{}

func newEmptyProc() catalog.Processor { return &emptyProc{} }

func (*emptyProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{Name: "Empty", Input: catalog.Multiple(true)}
}
func (*emptyProc) SetParameter(name, value string) error {
	return hderr.New("Empty.SetParameter", hderr.UnknownParameter)
}
func (*emptyProc) GetParameter(name string) (string, error) {
	return "", hderr.New("Empty.GetParameter", hderr.UnknownParameter)
}
func (*emptyProc) Run(inputs []*geom.World) (*geom.World, error) {
	return geom.NewWorld(), nil
}

// rectangleProc (§4.7 CreateRectangle) emits one closed shape whose four
// linear corner points are in (NW, NE, SE, SW) order about its center,
// matching the S1 scenario's exact expected coordinates.
type rectangleProc struct {
	params *paramStore
}

func newRectangleProc() catalog.Processor {
	return &rectangleProc{params: newParamStore(map[string]string{
		"width": "0", "height": "0", "position": "0,0",
	})}
}

func (*rectangleProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:  "CreateRectangle",
		Input: catalog.Multiple(true),
		Parameters: []catalog.ParamSpec{
			{Name: "width", Type: catalog.Float},
			{Name: "height", Type: catalog.Float},
			{Name: "position", Type: catalog.PositionParam},
		},
	}
}

func (p *rectangleProc) SetParameter(name, value string) error {
	const op = "CreateRectangle.SetParameter"
	switch name {
	case "width", "height":
		_, canon, err := parseFloatParam(op, value)
		if err != nil {
			return err
		}
		return p.params.set(op, name, canon)
	case "position":
		pos, err := geom.ParsePosition(value)
		if err != nil {
			return hderr.Wrap(op, hderr.ParseError, err)
		}
		return p.params.set(op, name, pos.String())
	default:
		return hderr.New(op, hderr.UnknownParameter)
	}
}

func (p *rectangleProc) GetParameter(name string) (string, error) {
	return p.params.get("CreateRectangle.GetParameter", name)
}

func (p *rectangleProc) Run(inputs []*geom.World) (*geom.World, error) {
	const op = "CreateRectangle.Run"
	width, _, err := parseFloatParam(op, must(p.params.get(op, "width")))
	if err != nil {
		return nil, err
	}
	height, _, err := parseFloatParam(op, must(p.params.get(op, "height")))
	if err != nil {
		return nil, err
	}
	center, err := geom.ParsePosition(must(p.params.get(op, "position")))
	if err != nil {
		return nil, hderr.Wrap(op, hderr.ParseError, err)
	}

	hw, hh := width/2, height/2
	corners := [4]geom.Position{
		{X: center.X - hw, Y: center.Y - hh}, // NW
		{X: center.X + hw, Y: center.Y - hh}, // NE
		{X: center.X + hw, Y: center.Y + hh}, // SE
		{X: center.X - hw, Y: center.Y + hh}, // SW
	}

	w := geom.NewWorld()
	vertices := make([]geom.PointHandle, 0, 4)
	for _, c := range corners {
		vertices = append(vertices, w.CreatePoint(geom.NewPoint(c)))
	}
	shape := w.CreateShape(true)
	if err := w.AddPointsToShape(vertices, shape); err != nil {
		return nil, hderr.Wrap(op, hderr.EvaluationFailed, err)
	}
	return w, nil
}

// must panics only on programmer error (a parameter that TypeInfo declares
// but the store was never seeded with); paramStore is always seeded with
// every declared parameter's default at construction, so get never actually
// fails here.
func must(s string, err error) string {
	if err != nil {
		panic(err)
	}
	return s
}

// scatterProc (§4.7 ScatterPoints) emits num_points linear points sampled
// uniformly in the axis-aligned rectangle [min_position, max_position],
// drawing from an injected rng.Source (§9's randomness redesign point).
type scatterProc struct {
	params *paramStore
	rng    rng.Source
}

func newScatterProc(src rng.Source) catalog.Processor {
	return &scatterProc{
		rng: src,
		params: newParamStore(map[string]string{
			"num_points":   "0",
			"min_position": "0,0",
			"max_position": "0,0",
		}),
	}
}

func (*scatterProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:  "ScatterPoints",
		Input: catalog.Multiple(true),
		Parameters: []catalog.ParamSpec{
			{Name: "num_points", Type: catalog.UnsignedInteger},
			{Name: "min_position", Type: catalog.PositionParam},
			{Name: "max_position", Type: catalog.PositionParam},
		},
	}
}

func (p *scatterProc) SetParameter(name, value string) error {
	const op = "ScatterPoints.SetParameter"
	switch name {
	case "num_points":
		_, canon, err := parseUintParam(op, value)
		if err != nil {
			return err
		}
		return p.params.set(op, name, canon)
	case "min_position", "max_position":
		pos, err := geom.ParsePosition(value)
		if err != nil {
			return hderr.Wrap(op, hderr.ParseError, err)
		}
		return p.params.set(op, name, pos.String())
	default:
		return hderr.New(op, hderr.UnknownParameter)
	}
}

func (p *scatterProc) GetParameter(name string) (string, error) {
	return p.params.get("ScatterPoints.GetParameter", name)
}

func (p *scatterProc) Run(inputs []*geom.World) (*geom.World, error) {
	const op = "ScatterPoints.Run"
	n, _, err := parseUintParam(op, must(p.params.get(op, "num_points")))
	if err != nil {
		return nil, err
	}
	lo, err := geom.ParsePosition(must(p.params.get(op, "min_position")))
	if err != nil {
		return nil, hderr.Wrap(op, hderr.ParseError, err)
	}
	hi, err := geom.ParsePosition(must(p.params.get(op, "max_position")))
	if err != nil {
		return nil, hderr.Wrap(op, hderr.ParseError, err)
	}

	w := geom.NewWorld()
	for i := uint64(0); i < n; i++ {
		x := p.rng.Float32Range(lo.X, hi.X)
		y := p.rng.Float32Range(lo.Y, hi.Y)
		w.CreatePoint(geom.NewPoint(geom.Position{X: x, Y: y}))
	}
	return w, nil
}
