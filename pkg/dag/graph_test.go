package dag

import (
	"testing"

	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/geom"
	"github.com/hardeen-go/geomgraph/pkg/hderr"
)

// passthroughProc is a minimal Slotted(1) processor stub used to exercise
// graph wiring without depending on pkg/processors.
type passthroughProc struct {
	name   string
	params map[string]string
	runs   *int
}

func newPassthroughProc(name string, runs *int) *passthroughProc {
	return &passthroughProc{name: name, params: map[string]string{"tag": "0"}, runs: runs}
}

func (p *passthroughProc) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{
		Name:       p.name,
		Input:      catalog.Slotted(1),
		Parameters: []catalog.ParamSpec{{Name: "tag", Type: catalog.String}},
	}
}

func (p *passthroughProc) SetParameter(name, value string) error {
	if name != "tag" && name != "factor_x" {
		return hderr.New(p.name+".SetParameter", hderr.UnknownParameter)
	}
	p.params[name] = value
	return nil
}

func (p *passthroughProc) GetParameter(name string) (string, error) {
	if v, ok := p.params[name]; ok {
		return v, nil
	}
	return "", hderr.New(p.name+".GetParameter", hderr.UnknownParameter)
}

func (p *passthroughProc) Run(inputs []*geom.World) (*geom.World, error) {
	if p.runs != nil {
		*p.runs++
	}
	if len(inputs) == 0 {
		w := geom.NewWorld()
		w.CreatePoint(geom.NewPoint(geom.Position{X: 1, Y: float32(len(p.params))}))
		return w, nil
	}
	return inputs[0].Clone(), nil
}

func registryWithPassthrough(runs *int) *catalog.Registry {
	r := catalog.NewRegistry()
	r.Register(catalog.Registration{
		Info: (&passthroughProc{name: "Passthrough"}).TypeInfo(),
		New:  func() catalog.Processor { return newPassthroughProc("Passthrough", runs) },
	})
	return r
}

func TestConnectRejectsCycle_S5(t *testing.T) {
	reg := registryWithPassthrough(nil)
	g := NewGraph(reg)

	n1, err := g.AddProcessorNode("Passthrough")
	if err != nil {
		t.Fatal(err)
	}
	n2, err := g.AddProcessorNode("Passthrough")
	if err != nil {
		t.Fatal(err)
	}
	n3, err := g.AddProcessorNode("Passthrough")
	if err != nil {
		t.Fatal(err)
	}

	if err := g.Connect(n1, n2, 0); err != nil {
		t.Fatalf("connect n1->n2: %v", err)
	}
	if err := g.Connect(n2, n3, 0); err != nil {
		t.Fatalf("connect n2->n3: %v", err)
	}

	err = g.Connect(n3, n1, 0)
	if err == nil {
		t.Fatal("expected CycleWouldBeIntroduced, got nil")
	}

	satisfied, _ := g.IsInputSatisfied(n1)
	if satisfied {
		t.Fatal("n1's input should remain unconnected after the rejected edge")
	}
}

func TestCacheInvalidationForwardOnly_S6(t *testing.T) {
	scatterRuns := 0
	scaleRuns := 0
	translateRuns := 0

	reg := catalog.NewRegistry()
	reg.Register(catalog.Registration{
		Info: catalog.TypeInfo{Name: "ScatterPoints", Input: catalog.Multiple(true)},
		New:  func() catalog.Processor { return newCountingSource(&scatterRuns) },
	})
	reg.Register(catalog.Registration{
		Info: catalog.TypeInfo{Name: "Scale", Input: catalog.Slotted(1), Parameters: []catalog.ParamSpec{{Name: "factor_x", Type: catalog.Float}}},
		New:  func() catalog.Processor { return newPassthroughProc("Scale", &scaleRuns) },
	})
	reg.Register(catalog.Registration{
		Info: catalog.TypeInfo{Name: "Translate", Input: catalog.Slotted(1)},
		New:  func() catalog.Processor { return newPassthroughProc("Translate", &translateRuns) },
	})

	g := NewGraph(reg)
	scatter, _ := g.AddProcessorNode("ScatterPoints")
	scale, _ := g.AddProcessorNode("Scale")
	translate, _ := g.AddProcessorNode("Translate")

	if err := g.Connect(scatter, scale, 0); err != nil {
		t.Fatal(err)
	}
	if err := g.Connect(scale, translate, 0); err != nil {
		t.Fatal(err)
	}
	if err := g.SetOutput(translate); err != nil {
		t.Fatal(err)
	}

	if _, err := g.ProcessOutput(true); err != nil {
		t.Fatalf("first evaluation: %v", err)
	}
	if scatterRuns != 1 || scaleRuns != 1 || translateRuns != 1 {
		t.Fatalf("expected one run each, got scatter=%d scale=%d translate=%d", scatterRuns, scaleRuns, translateRuns)
	}

	if err := g.SetParameter(scale, "factor_x", "3"); err != nil {
		t.Fatal(err)
	}

	if _, err := g.ProcessOutput(true); err != nil {
		t.Fatalf("second evaluation: %v", err)
	}
	if scatterRuns != 1 {
		t.Fatalf("ScatterPoints must be served from cache, got %d runs", scatterRuns)
	}
	if scaleRuns != 2 || translateRuns != 2 {
		t.Fatalf("Scale and Translate must re-run after invalidation, got scale=%d translate=%d", scaleRuns, translateRuns)
	}
}

// countingSource is a Multiple(zero_allowed) source processor stub standing
// in for ScatterPoints: it ignores its (empty) inputs and always emits one
// fresh point, counting how many times it actually ran.
type countingSource struct {
	runs *int
}

func newCountingSource(runs *int) *countingSource { return &countingSource{runs: runs} }

func (c *countingSource) TypeInfo() catalog.TypeInfo {
	return catalog.TypeInfo{Name: "ScatterPoints", Input: catalog.Multiple(true)}
}
func (c *countingSource) SetParameter(name, value string) error { return nil }
func (c *countingSource) GetParameter(name string) (string, error) { return "", nil }
func (c *countingSource) Run(inputs []*geom.World) (*geom.World, error) {
	*c.runs++
	w := geom.NewWorld()
	w.CreatePoint(geom.NewPoint(geom.Position{X: 1, Y: 2}))
	return w, nil
}
