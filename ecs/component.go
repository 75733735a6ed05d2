package ecs

import (
	"iter"
	"reflect"
)

// Add attaches a zero T to e, updates the live caches and returns a pointer to
// the new value. The pointer is valid until the next add or remove of a T.
func Add[T any](m *EntityManager, e Entity) *T {
	m.mustBeAlive("Add", e)
	table := typedTableOf[T](m.registry)
	if table.Contains(e) {
		panic(InvalidEntityError{Op: "Add", Entity: uint64(e), Component: typeName[T]()})
	}
	table.Add(e)
	m.updateTrackedQueries(e)
	return table.Get(e)
}

// Insert attaches value as e's T component.
func Insert[T any](m *EntityManager, e Entity, value T) *T {
	ptr := Add[T](m, e)
	*ptr = value
	return ptr
}

// Remove detaches e's T component and updates the live caches.
func Remove[T any](m *EntityManager, e Entity) {
	m.mustBeAlive("Remove", e)
	table := typedTableOf[T](m.registry)
	if !table.Contains(e) {
		panic(InvalidEntityError{Op: "Remove", Entity: uint64(e), Component: typeName[T]()})
	}
	table.Remove(e)
	m.updateTrackedQueries(e)
}

// Get returns e's T component. e must hold a T.
func Get[T any](m *EntityManager, e Entity) *T {
	v, ok := TryGet[T](m, e)
	if !ok {
		panic(InvalidEntityError{Op: "Get", Entity: uint64(e), Component: typeName[T]()})
	}
	return v
}

// TryGet returns e's T component, or false if e has none.
func TryGet[T any](m *EntityManager, e Entity) (*T, bool) {
	return typedTableOf[T](m.registry).Lookup(e)
}

// Has reports whether e holds a T.
func Has[T any](m *EntityManager, e Entity) bool {
	return typedTableOf[T](m.registry).Contains(e)
}

// Get2 returns two components of e at once.
func Get2[A, B any](m *EntityManager, e Entity) (*A, *B) {
	return Get[A](m, e), Get[B](m, e)
}

// Get3 returns three components of e at once.
func Get3[A, B, C any](m *EntityManager, e Entity) (*A, *B, *C) {
	return Get[A](m, e), Get[B](m, e), Get[C](m, e)
}

// Each iterates every T component directly from its table in dense order.
// This is the fastest way to touch every value of one type. Adding or removing
// T components during the loop is not allowed.
func Each[T any](m *EntityManager) iter.Seq2[Entity, *T] {
	return typedTableOf[T](m.registry).All()
}

// EntitiesWith returns the entities holding a T, backed by T's table.
func EntitiesWith[T any](m *EntityManager) *QueryResult {
	return m.tableResult(ComponentTypeOf[T](m.registry))
}

// TypeOf returns the manager's component type id for T.
func TypeOf[T any](m *EntityManager) ComponentType {
	return ComponentTypeOf[T](m.registry)
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
