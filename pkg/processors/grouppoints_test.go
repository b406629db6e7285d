package processors

import (
	"errors"
	"testing"

	"github.com/hardeen-go/geomgraph/pkg/geom"
	"github.com/hardeen-go/geomgraph/pkg/predicate"
)

// fakeEvaluator is a minimal predicate.Evaluator stub: an expr equal to
// failOn makes it return an error; any other expr is ignored, and it simply
// reports whether X is greater than the threshold baked into it at
// construction, letting tests exercise GroupPoints without pulling in CEL.
type fakeEvaluator struct {
	threshold float32
	failOn    string
}

func (f *fakeEvaluator) Eval(expr string, vars predicate.Vars) (bool, error) {
	if f.failOn != "" && expr == f.failOn {
		return false, errors.New("boom")
	}
	return vars.X > f.threshold, nil
}

func TestGroupPointsWithEvaluator(t *testing.T) {
	w := geom.NewWorld()
	w.CreatePoint(geom.NewPoint(geom.Position{X: 1, Y: 0}))
	w.CreatePoint(geom.NewPoint(geom.Position{X: 5, Y: 0}))
	w.CreatePoint(geom.NewPoint(geom.Position{X: 9, Y: 0}))

	proc := newGroupPointsProc(&fakeEvaluator{threshold: 4})
	if err := proc.SetParameter("group_name", "big"); err != nil {
		t.Fatalf("SetParameter group_name: %v", err)
	}
	if err := proc.SetParameter("predicate", "x > 4"); err != nil {
		t.Fatalf("SetParameter predicate: %v", err)
	}

	out, err := proc.Run([]*geom.World{w})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	g, ok := out.GetGroupByName("big")
	if !ok {
		t.Fatal("expected a group named \"big\"")
	}
	grp, err := out.GetGroup(g)
	if err != nil {
		t.Fatalf("GetGroup: %v", err)
	}
	if len(grp.Points) != 2 {
		t.Fatalf("expected 2 matching points, got %d", len(grp.Points))
	}
}

func TestGroupPointsNoEvaluatorIsNoop(t *testing.T) {
	w := geom.NewWorld()
	w.CreatePoint(geom.NewPoint(geom.Position{X: 1, Y: 0}))

	proc := newGroupPointsProc(nil)
	out, err := proc.Run([]*geom.World{w})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out.Groups().Len() != 1 {
		t.Fatalf("expected only the \"all\" group, got %d groups", out.Groups().Len())
	}
}

func TestGroupPointsPropagatesEvalError(t *testing.T) {
	w := geom.NewWorld()
	w.CreatePoint(geom.NewPoint(geom.Position{X: 1, Y: 0}))

	proc := newGroupPointsProc(&fakeEvaluator{failOn: "bad"})
	if err := proc.SetParameter("predicate", "bad"); err != nil {
		t.Fatalf("SetParameter: %v", err)
	}
	if _, err := proc.Run([]*geom.World{w}); err == nil {
		t.Fatal("expected the evaluator's error to propagate")
	}
}
