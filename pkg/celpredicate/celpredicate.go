// Package celpredicate is an optional adapter implementing
// predicate.Evaluator on top of CEL (github.com/google/cel-go), for hosts
// that want GroupPoints to evaluate real expressions without writing their
// own evaluator. The core (pkg/predicate, pkg/processors) has no import of
// this package or of cel-go; a host that doesn't need it never pulls in the
// dependency. Compiled programs are cached per expression string since a
// GroupPoints run re-evaluates the same expression once per point.
//
// © 2025 arena-cache authors. MIT License.
package celpredicate

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/hardeen-go/geomgraph/pkg/predicate"
)

// Evaluator compiles and caches CEL programs over the fixed {N, X, Y}
// variable set GroupPoints exposes.
type Evaluator struct {
	env *cel.Env

	mu    sync.Mutex
	cache map[string]cel.Program
}

// New constructs a CEL-backed predicate.Evaluator.
func New() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("N", cel.IntType),
		cel.Variable("X", cel.DoubleType),
		cel.Variable("Y", cel.DoubleType),
	)
	if err != nil {
		return nil, fmt.Errorf("celpredicate: build env: %w", err)
	}
	return &Evaluator{env: env, cache: make(map[string]cel.Program)}, nil
}

var _ predicate.Evaluator = (*Evaluator)(nil)

func (e *Evaluator) Eval(expr string, vars predicate.Vars) (bool, error) {
	prg, err := e.program(expr)
	if err != nil {
		return false, err
	}
	out, _, err := prg.Eval(map[string]any{
		"N": int64(vars.N),
		"X": float64(vars.X),
		"Y": float64(vars.Y),
	})
	if err != nil {
		return false, fmt.Errorf("celpredicate: eval %q: %w", expr, err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("celpredicate: expression %q did not evaluate to a bool", expr)
	}
	return result, nil
}

func (e *Evaluator) program(expr string) (cel.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if prg, ok := e.cache[expr]; ok {
		return prg, nil
	}
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("celpredicate: compile %q: %w", expr, issues.Err())
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("celpredicate: program %q: %w", expr, err)
	}
	e.cache[expr] = prg
	return prg, nil
}
