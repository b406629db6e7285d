// Package hderr defines the engine's error kinds (§7 of the design: arena,
// graph and catalog failures all surface as a typed, wrapped *Error rather
// than a panic). Hosts distinguish failure modes with errors.Is/errors.As
// against a Kind instead of string-matching messages.
//
// © 2025 arena-cache authors. MIT License.
package hderr

import (
	"errors"
	"fmt"
)

// Kind is a closed set of error categories. Zero value is never produced by
// this package; it exists only so an uninitialized Kind is visibly invalid.
type Kind int

const (
	_ Kind = iota

	// Arena (§4.1)
	StaleHandle
	UnknownIndex
	UnoccupiedSlot
	CannotBorrowMutable

	// Input discipline / DAG (§4.4, §4.5)
	NodeInputTypeMismatch
	InvalidSlot
	OutputNodeHandleInvalid
	CycleWouldBeIntroduced
	OutputNotSet
	InputNotSatisfied

	// Catalog / parameters (§4.3, §6)
	UnknownParameter
	UnknownProcessorType
	ParseError

	// Subgraphs / exposed parameters (§4.6)
	ExposedParameterMissing

	// Evaluation (§4.5, §7)
	EvaluationFailed
)

var names = map[Kind]string{
	StaleHandle:             "StaleHandle",
	UnknownIndex:            "UnknownIndex",
	UnoccupiedSlot:          "UnoccupiedSlot",
	CannotBorrowMutable:     "CannotBorrowMutable",
	NodeInputTypeMismatch:   "NodeInputTypeMismatch",
	InvalidSlot:             "InvalidSlot",
	OutputNodeHandleInvalid: "OutputNodeHandleInvalid",
	CycleWouldBeIntroduced:  "CycleWouldBeIntroduced",
	OutputNotSet:            "OutputNotSet",
	InputNotSatisfied:       "InputNotSatisfied",
	UnknownParameter:        "UnknownParameter",
	UnknownProcessorType:    "UnknownProcessorType",
	ParseError:              "ParseError",
	ExposedParameterMissing: "ExposedParameterMissing",
	EvaluationFailed:        "EvaluationFailed",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error wraps a Kind with the operation that produced it and, optionally, an
// underlying cause (used by EvaluationFailed to carry the original failure
// up through recursive pull evaluation).
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports equality by Kind alone, so errors.Is(err, hderr.New("", hderr.StaleHandle))
// matches any *Error of that Kind regardless of Op/Err.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds a kind-only error tagged with the operation name that raised it.
func New(op string, kind Kind) *Error {
	return &Error{Op: op, Kind: kind}
}

// Wrap builds an error carrying both a Kind and an underlying cause.
func Wrap(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Is reports whether err is an *Error of the given Kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	return errors.Is(err, &Error{Kind: kind})
}
