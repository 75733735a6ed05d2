package ecs

// componentTable is the type-erased view of a component's PackedMap used by the
// manager for predicate evaluation, destruction sweeps and tooling.
type componentTable interface {
	keySet() *PackedSet[Entity]
	addZero(e Entity)
	remove(e Entity)
	tryRemove(e Entity) bool
	getAny(e Entity) any
	len() int
}

type typedTable[T any] struct {
	values *PackedMap[Entity, T]
}

func newTypedTable[T any]() *typedTable[T] {
	return &typedTable[T]{values: NewPackedMap[Entity, T](0)}
}

func (t *typedTable[T]) keySet() *PackedSet[Entity] {
	return t.values.KeySet()
}

func (t *typedTable[T]) addZero(e Entity) {
	t.values.Add(e)
}

func (t *typedTable[T]) remove(e Entity) {
	t.values.Remove(e)
}

func (t *typedTable[T]) tryRemove(e Entity) bool {
	return t.values.TryRemove(e)
}

// getAny returns a *T, or nil if e has no T.
func (t *typedTable[T]) getAny(e Entity) any {
	v, ok := t.values.Lookup(e)
	if !ok {
		return nil
	}
	return v
}

func (t *typedTable[T]) len() int {
	return t.values.Len()
}
