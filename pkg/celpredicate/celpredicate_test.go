package celpredicate

import (
	"testing"

	"github.com/hardeen-go/geomgraph/pkg/predicate"
)

func TestEvalEvaluatesBooleanExpression(t *testing.T) {
	eval, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ok, err := eval.Eval("N % 2 == 0", predicate.Vars{N: 4, X: 1, Y: 2})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !ok {
		t.Fatal("expected N=4 to satisfy N % 2 == 0")
	}

	ok, err = eval.Eval("N % 2 == 0", predicate.Vars{N: 3, X: 1, Y: 2})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if ok {
		t.Fatal("expected N=3 not to satisfy N % 2 == 0")
	}
}

func TestEvalBindsXAndY(t *testing.T) {
	eval, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ok, err := eval.Eval("X > 0.0 && Y < 0.0", predicate.Vars{N: 1, X: 5, Y: -5})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !ok {
		t.Fatal("expected X=5,Y=-5 to satisfy X > 0 && Y < 0")
	}
}

// program caches a compiled expression by string, so evaluating the same
// expression twice with different vars must not reuse a stale result.
func TestProgramCachesByExpressionNotByVars(t *testing.T) {
	eval, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	expr := "X > 10.0"
	first, err := eval.Eval(expr, predicate.Vars{N: 1, X: 20, Y: 0})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if !first {
		t.Fatal("expected X=20 to satisfy X > 10")
	}

	second, err := eval.Eval(expr, predicate.Vars{N: 2, X: 5, Y: 0})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if second {
		t.Fatal("expected X=5 not to satisfy X > 10")
	}
}

func TestEvalRejectsNonBoolExpression(t *testing.T) {
	eval, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := eval.Eval("X + Y", predicate.Vars{N: 1, X: 1, Y: 1}); err == nil {
		t.Fatal("expected an error for a non-boolean expression")
	}
}

func TestEvalRejectsUncompilableExpression(t *testing.T) {
	eval, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := eval.Eval("this is not cel", predicate.Vars{N: 1, X: 1, Y: 1}); err == nil {
		t.Fatal("expected a compile error")
	}
}

var _ predicate.Evaluator = (*Evaluator)(nil)
