package processors

import (
	"github.com/hardeen-go/geomgraph/pkg/catalog"
	"github.com/hardeen-go/geomgraph/pkg/predicate"
	"github.com/hardeen-go/geomgraph/pkg/rng"
)

// Register adds every processor type in this package's library to reg, at
// the type's default parameter values. src is the shared rng.Source every
// randomness-consuming processor type draws from (§9's redesign point);
// eval is the optional predicate.Evaluator GroupPoints delegates to, nil
// being a legal "no host evaluator" configuration.
func Register(reg *catalog.Registry, src rng.Source, eval predicate.Evaluator) {
	register(reg, newEmptyProc)
	register(reg, newRectangleProc)
	register(reg, func() catalog.Processor { return newScatterProc(src) })
	register(reg, newAddPointsProc)
	register(reg, newScaleProc)
	register(reg, newTranslateProc)
	register(reg, func() catalog.Processor { return newRandomTranslateProc(src) })
	register(reg, func() catalog.Processor { return newRandomTangentsProc(src) })
	register(reg, newSmoothTangentsProc)
	register(reg, newCopyOffsetProc)
	register(reg, func() catalog.Processor { return newCopyRandomOffsetProc(src) })
	register(reg, newSortPointsXProc)
	register(reg, newSortPointsYProc)
	register(reg, newCreateShapeFromGroupProc)
	register(reg, newCreateShapeFromAllGroupsProc)
	register(reg, newMergeProc)
	register(reg, func() catalog.Processor { return newExtrudeShapeProc(src) })
	register(reg, func() catalog.Processor { return newGroupPointsProc(eval) })
	register(reg, newInstanceOnPointsProc)
}

// register builds a Registration from a constructor alone: the type's
// schema is read off one throwaway instance, and New always builds a fresh
// one so that two nodes of the same type never share parameter state.
func register(reg *catalog.Registry, ctor func() catalog.Processor) {
	reg.Register(catalog.Registration{
		Info: ctor().TypeInfo(),
		New:  ctor,
	})
}
