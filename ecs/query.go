package ecs

import (
	"iter"
)

// Query is a retained, incrementally maintained query declared as a system field.
// The predicate is derived from T the same way View interprets it: required
// fields become allOf terms, `ecs:"any"` fields anyOf terms and `ecs:"none"` fields
// noneOf terms. Optional fields do not constrain the match.
//
// The Scheduler initializes Query fields when a system is registered.
type Query[T any] struct {
	view   *View[T]
	result *QueryResult
}

// NewQuery creates an initialized Query over m.
func NewQuery[T any](m *EntityManager) *Query[T] {
	q := &Query[T]{}
	q.Init(m)
	return q
}

// Init resolves the query against m, releasing any previously held result.
func (q *Query[T]) Init(m *EntityManager) {
	q.Close()
	q.view = NewView[T](m)

	d := q.view.Descriptor()
	switch {
	case len(d.allOf) == 1 && len(d.anyOf) == 0 && len(d.noneOf) == 0:
		q.result = m.tableResult(d.allOf[0])
	case d.Empty():
		q.result = m.AllEntities()
	default:
		q.result = m.Resolve(d)
	}
}

// Close releases the underlying result. The query yields nothing until re-initialized.
func (q *Query[T]) Close() {
	if q.result != nil {
		q.result.Release()
		q.result = nil
	}
}

func (q *Query[T]) mustBeInitialized(op string) {
	if q.result == nil {
		panic(UnsupportedError{Op: op, Reason: "query used before Init"})
	}
}

// Result returns the underlying result. It remains owned by the query.
func (q *Query[T]) Result() *QueryResult {
	q.mustBeInitialized("Query.Result")
	return q.result
}

// Len returns the number of matching entities.
func (q *Query[T]) Len() int {
	q.mustBeInitialized("Query.Len")
	return q.result.Len()
}

// Iter iterates the populated views of all matching entities.
func (q *Query[T]) Iter() iter.Seq[T] {
	q.mustBeInitialized("Query.Iter")
	return q.view.Values(q.result)
}

// All iterates matching entities together with their populated views.
func (q *Query[T]) All() iter.Seq2[Entity, T] {
	q.mustBeInitialized("Query.All")
	return q.view.All(q.result)
}
