package processors

import (
	"testing"

	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/geom"
)

// fakeSubgraph is a minimal catalog.SubgraphEvaluator stub standing in for
// *pkg/dag.Graph: every ProcessOutput call returns a fresh copy of a fixed
// one-shape template world, letting instance.go's RunSubgraph be exercised
// without depending on pkg/dag.
type fakeSubgraph struct {
	template *geom.World
	calls    int
}

func (f *fakeSubgraph) ProcessOutput(useCaches bool) (*geom.World, error) {
	f.calls++
	return f.template.Clone(), nil
}

func templateRectangle() *geom.World {
	w := geom.NewWorld()
	var verts []geom.PointHandle
	for _, pos := range []geom.Position{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}} {
		verts = append(verts, w.CreatePoint(geom.NewPoint(pos)))
	}
	sh := w.CreateShape(true)
	_ = w.AddPointsToShape(verts, sh)
	return w
}

func newInstanceSubgraphProc() catalog.SubgraphProcessor {
	return newInstanceOnPointsProc().(catalog.SubgraphProcessor)
}

func TestInstanceOnPoints_S7(t *testing.T) {
	w := geom.NewWorld()
	w.CreatePoint(geom.NewPoint(geom.Position{X: 0, Y: 0}))
	w.CreatePoint(geom.NewPoint(geom.Position{X: 10, Y: 0}))
	w.CreatePoint(geom.NewPoint(geom.Position{X: 0, Y: 10}))

	proc := newInstanceSubgraphProc()
	sub := &fakeSubgraph{template: templateRectangle()}

	out, err := proc.RunSubgraph([]*geom.World{w}, sub)
	if err != nil {
		t.Fatalf("RunSubgraph: %v", err)
	}

	if sub.calls != 3 {
		t.Fatalf("expected the subgraph to be evaluated once per point (3), got %d calls", sub.calls)
	}
	if out.Shapes().Len() != 3 {
		t.Fatalf("expected 3 instanced shapes, got %d", out.Shapes().Len())
	}
	if out.Points().Len() != 12 {
		t.Fatalf("expected 4 corners * 3 instances = 12 points, got %d", out.Points().Len())
	}
}

func TestInstanceOnPointsMissingGroupYieldsEmptyWorld(t *testing.T) {
	w := geom.NewWorld()
	proc := newInstanceSubgraphProc()
	if err := proc.SetParameter("group_name", "nonexistent"); err != nil {
		t.Fatalf("SetParameter: %v", err)
	}
	sub := &fakeSubgraph{template: templateRectangle()}

	out, err := proc.RunSubgraph([]*geom.World{w}, sub)
	if err != nil {
		t.Fatalf("RunSubgraph: %v", err)
	}
	if sub.calls != 0 {
		t.Fatalf("expected no subgraph evaluations, got %d", sub.calls)
	}
	if out.Points().Len() != 0 || out.Shapes().Len() != 0 {
		t.Fatal("expected an empty accumulator world")
	}
}

func TestInstanceOnPointsRunIsUnreachableDefensively(t *testing.T) {
	proc := newInstanceOnPointsProc()
	if _, err := proc.Run(nil); err == nil {
		t.Fatal("expected Run to return an error; the DAG engine must always call RunSubgraph instead")
	}
}
