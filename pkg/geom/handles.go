package geom

import "github.com/hardeen-go/geomgraph/internal/arena"

// Entity-kind tags, used only at the type level to keep point/shape/group
// handles from type-checking against each other.
type (
	PointTag struct{}
	ShapeTag struct{}
	GroupTag struct{}
)

type (
	PointHandle = arena.Handle[PointTag]
	ShapeHandle = arena.Handle[ShapeTag]
	GroupHandle = arena.Handle[GroupTag]
)

func removeHandle[T comparable](s []T, h T) []T {
	out := s[:0:0]
	for _, v := range s {
		if v != h {
			out = append(out, v)
		}
	}
	return out
}
