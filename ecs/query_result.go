package ecs

import (
	"iter"
	"slices"
)

// QueryResult is a reference-counted handle over the entities matching a query.
// The entity list is maintained by the manager as components are added and
// removed, so a retained result stays current across frames.
//
// Every handle obtained from the manager or from Retain must be released exactly
// once; the backing cache is discarded when its last handle is released.
// Results with ID NullQueryId are not backed by a cache and are never evicted.
type QueryResult struct {
	manager  *EntityManager
	id       QueryId
	set      *PackedSet[Entity]
	released bool
}

func newQueryResult(m *EntityManager, set *PackedSet[Entity], id QueryId) *QueryResult {
	return &QueryResult{
		manager: m,
		id:      id,
		set:     set,
	}
}

// ID returns the backing cache id, or NullQueryId.
func (r *QueryResult) ID() QueryId {
	return r.id
}

// Len returns the number of matching entities.
func (r *QueryResult) Len() int {
	if r.set == nil {
		return 0
	}
	return r.set.Len()
}

// Contains reports whether e currently matches.
func (r *QueryResult) Contains(e Entity) bool {
	if r.set == nil {
		return false
	}
	return r.set.Contains(e)
}

// Entities returns the live dense entity slice. It must be treated as read-only
// and not held across component mutations.
func (r *QueryResult) Entities() []Entity {
	if r.set == nil {
		return nil
	}
	return r.set.Keys()
}

// Iter iterates the matching entities as of the moment iteration starts.
// Adding or removing components inside the loop does not affect the entities
// visited by that loop; the changes are visible to the next Iter call.
func (r *QueryResult) Iter() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		if r.set == nil {
			return
		}
		snapshot := slices.Clone(r.set.Keys())
		for _, e := range snapshot {
			if !yield(e) {
				return
			}
		}
	}
}

// Refs iterates the matching entities as EntityRefs, with the same snapshot
// semantics as Iter.
func (r *QueryResult) Refs() iter.Seq[EntityRef] {
	return func(yield func(EntityRef) bool) {
		for e := range r.Iter() {
			if !yield(EntityRef{Id: e, manager: r.manager}) {
				return
			}
		}
	}
}

// Retain returns a new handle sharing this result's cache.
func (r *QueryResult) Retain() *QueryResult {
	if r.released {
		panic(UnsupportedError{Op: "QueryResult.Retain", Reason: "result already released"})
	}
	r.manager.retain(r.id)
	return newQueryResult(r.manager, r.set, r.id)
}

// Release gives up this handle. Releasing a handle twice has no further effect.
// A released handle behaves as an empty result.
func (r *QueryResult) Release() {
	if r.released {
		return
	}
	r.released = true
	r.manager.release(r.id)
	r.set = nil
}
