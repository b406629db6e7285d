// Package arena implements the generational-index handle container that
// backs every entity store in this engine (points, shapes, groups, nodes,
// subgraphs). A Handle is a typed (index, generation) pair; an Arena is a
// sequence of slots with a free-list for index reuse, exactly as specified
// for the Handle Arena component.
//
// Two interchangeable backing stores satisfy the same contract: StdVec, a
// plain growable slice mutated in place (cheap for small collections like
// the node arena), and Persistent, a structurally-shared vector offering
// O(1) Clone and O(log n) mutation (required so that GeometryWorld clones
// are cheap even though a world may hold thousands of points).
//
// © 2025 arena-cache authors. MIT License.
package arena

import (
	"iter"

	"github.com/hardeen-go/geomgraph/pkg/hderr"
)

// Handle identifies a slot inside an Arena[K, V]. The phantom type parameter
// K tags the handle with the entity kind it addresses (e.g. a PointTag)
// purely at the type level, so a PointHandle and a ShapeHandle don't
// typecheck against each other even though both are (index, generation)
// pairs underneath.
type Handle[K any] struct {
	index      uint32
	generation uint32
}

// NewHandle constructs a Handle from raw components. Exported for codecs
// and tests; engine code obtains handles from Arena methods.
func NewHandle[K any](index, generation uint32) Handle[K] {
	return Handle[K]{index: index, generation: generation}
}

func (h Handle[K]) Index() uint32      { return h.index }
func (h Handle[K]) Generation() uint32 { return h.generation }

// IsZero reports whether h is the default-constructed handle (index 0,
// generation 0), which generation numbering starting at 1 guarantees never
// matches a real occupied slot.
func (h Handle[K]) IsZero() bool { return h.index == 0 && h.generation == 0 }

// slot is the per-index payload shared by both backing store variants.
type slot[V any] struct {
	value      V
	generation uint32
	occupied   bool
}

// backing is the storage contract a backing store variant must satisfy.
// Set/Push return the backing that should replace the Arena's current one:
// StdVec mutates itself and returns the same pointer; Persistent returns a
// new value sharing untouched structure with the old one.
type backing[V any] interface {
	Len() int
	Get(i int) (slot[V], bool)
	Set(i int, s slot[V]) backing[V]
	Push(s slot[V]) (backing[V], int)
	Clone() backing[V]
}

// Arena is a generational-index container over a pluggable backing store.
type Arena[K any, V any] struct {
	data backing[V]
	free []Handle[K]
}

// NewStdVec constructs an Arena backed by a plain growable slice, mutated in
// place. Appropriate for small, infrequently-cloned collections such as a
// graph's node store.
func NewStdVec[K any, V any]() *Arena[K, V] {
	return &Arena[K, V]{data: newStdVecBacking[V]()}
}

// NewPersistent constructs an Arena backed by a structurally-shared vector,
// giving the owning Arena (and anything composed from several of them, like
// GeometryWorld) an O(1) Clone.
func NewPersistent[K any, V any]() *Arena[K, V] {
	return &Arena[K, V]{data: newPersistentBacking[V]()}
}

// Clone returns a new Arena sharing structure with the receiver until one of
// them is mutated. For a StdVec-backed arena this is an O(n) slice copy; for
// a Persistent-backed arena it is O(1).
func (a *Arena[K, V]) Clone() *Arena[K, V] {
	free := make([]Handle[K], len(a.free))
	copy(free, a.free)
	return &Arena[K, V]{data: a.data.Clone(), free: free}
}

// Insert reuses a freed handle (incrementing its generation) if one is
// available, else allocates a new slot at the end with generation 1.
func (a *Arena[K, V]) Insert(v V) Handle[K] {
	if n := len(a.free); n > 0 {
		h := a.free[n-1]
		a.free = a.free[:n-1]
		newGen := h.generation + 1
		a.data = a.data.Set(int(h.index), slot[V]{value: v, generation: newGen, occupied: true})
		return NewHandle[K](h.index, newGen)
	}
	newData, idx := a.data.Push(slot[V]{value: v, generation: 1, occupied: true})
	a.data = newData
	return NewHandle[K](uint32(idx), 1)
}

// Remove clears the slot addressed by h and pushes it onto the free list.
// It fails if h addresses an index that was never allocated, a slot that is
// already unoccupied, or a stale generation.
func (a *Arena[K, V]) Remove(h Handle[K]) error {
	s, ok := a.data.Get(int(h.index))
	if !ok {
		return hderr.New("arena.Remove", hderr.UnknownIndex)
	}
	if !s.occupied {
		return hderr.New("arena.Remove", hderr.UnoccupiedSlot)
	}
	if s.generation != h.generation {
		return hderr.New("arena.Remove", hderr.StaleHandle)
	}
	var zero V
	a.data = a.data.Set(int(h.index), slot[V]{value: zero, generation: s.generation, occupied: false})
	a.free = append(a.free, NewHandle[K](h.index, s.generation))
	return nil
}

// Get returns the value at h, or an error distinguishing an unknown index
// from an unoccupied slot from a stale generation.
func (a *Arena[K, V]) Get(h Handle[K]) (V, error) {
	var zero V
	s, ok := a.data.Get(int(h.index))
	if !ok {
		return zero, hderr.New("arena.Get", hderr.UnknownIndex)
	}
	if !s.occupied {
		return zero, hderr.New("arena.Get", hderr.UnoccupiedSlot)
	}
	if s.generation != h.generation {
		return zero, hderr.New("arena.Get", hderr.StaleHandle)
	}
	return s.value, nil
}

// GetMut applies fn to a mutable copy of the value at h and writes the
// result back. A raw pointer into shared trie storage is never handed out
// (that would break structural sharing for Persistent-backed arenas), so
// mutation always goes through this copy-mutate-writeback path instead of a
// borrowed pointer. Failures from a stale or unoccupied handle surface as
// CannotBorrowMutable; an index that was never allocated stays UnknownIndex.
func (a *Arena[K, V]) GetMut(h Handle[K], fn func(v *V)) error {
	s, ok := a.data.Get(int(h.index))
	if !ok {
		return hderr.New("arena.GetMut", hderr.UnknownIndex)
	}
	if !s.occupied || s.generation != h.generation {
		return hderr.New("arena.GetMut", hderr.CannotBorrowMutable)
	}
	v := s.value
	fn(&v)
	a.data = a.data.Set(int(h.index), slot[V]{value: v, generation: s.generation, occupied: true})
	return nil
}

// Update replaces the payload at h without changing its generation.
func (a *Arena[K, V]) Update(h Handle[K], v V) error {
	s, ok := a.data.Get(int(h.index))
	if !ok {
		return hderr.New("arena.Update", hderr.UnknownIndex)
	}
	if !s.occupied {
		return hderr.New("arena.Update", hderr.UnoccupiedSlot)
	}
	if s.generation != h.generation {
		return hderr.New("arena.Update", hderr.StaleHandle)
	}
	a.data = a.data.Set(int(h.index), slot[V]{value: v, generation: s.generation, occupied: true})
	return nil
}

// IsValid reports whether h currently addresses a live, matching-generation slot.
func (a *Arena[K, V]) IsValid(h Handle[K]) bool {
	s, ok := a.data.Get(int(h.index))
	return ok && s.occupied && s.generation == h.generation
}

// Len returns the number of slots ever allocated, including freed ones
// (i.e. the arena's current capacity, not its occupied count).
func (a *Arena[K, V]) Len() int { return a.data.Len() }

// MutateEach visits every occupied payload, in index order, through the
// same copy-mutate-writeback discipline as GetMut.
func (a *Arena[K, V]) MutateEach(fn func(v *V)) {
	n := a.data.Len()
	for i := 0; i < n; i++ {
		s, ok := a.data.Get(i)
		if !ok || !s.occupied {
			continue
		}
		v := s.value
		fn(&v)
		a.data = a.data.Set(i, slot[V]{value: v, generation: s.generation, occupied: true})
	}
}

// Handles iterates live handles in index order.
func (a *Arena[K, V]) Handles() iter.Seq[Handle[K]] {
	return func(yield func(Handle[K]) bool) {
		n := a.data.Len()
		for i := 0; i < n; i++ {
			s, ok := a.data.Get(i)
			if !ok || !s.occupied {
				continue
			}
			if !yield(NewHandle[K](uint32(i), s.generation)) {
				return
			}
		}
	}
}

// Values iterates live payloads in index order.
func (a *Arena[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		n := a.data.Len()
		for i := 0; i < n; i++ {
			s, ok := a.data.Get(i)
			if !ok || !s.occupied {
				continue
			}
			if !yield(s.value) {
				return
			}
		}
	}
}

// Entries iterates (handle, value) pairs in index order; the natural shape
// for serializing a whole arena keyed by slot index (§6).
func (a *Arena[K, V]) Entries() iter.Seq2[Handle[K], V] {
	return func(yield func(Handle[K], V) bool) {
		n := a.data.Len()
		for i := 0; i < n; i++ {
			s, ok := a.data.Get(i)
			if !ok || !s.occupied {
				continue
			}
			if !yield(NewHandle[K](uint32(i), s.generation), s.value) {
				return
			}
		}
	}
}
