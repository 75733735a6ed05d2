package ecs

import (
	"reflect"
)

// ComponentType is a small dense id identifying a component payload type within a
// registry. Ids are assigned in first-seen order starting at 0.
type ComponentType int

// ComponentRegistry maps component payload types to dense ids and owns one
// component table per type. Tables are allocated the first time a type is seen.
// Each EntityManager owns its own registry.
type ComponentRegistry struct {
	ids    map[reflect.Type]ComponentType
	types  []reflect.Type
	tables []componentTable
}

// NewComponentRegistry creates an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		ids: make(map[reflect.Type]ComponentType),
	}
}

// ComponentTypeOf returns the id for T, registering T and allocating its table on
// first use. Repeated calls return the same id.
func ComponentTypeOf[T any](r *ComponentRegistry) ComponentType {
	t := reflect.TypeFor[T]()
	if id, ok := r.ids[t]; ok {
		return id
	}
	checkComponentKind(t)

	id := ComponentType(len(r.types))
	r.ids[t] = id
	r.types = append(r.types, t)
	r.tables = append(r.tables, newTypedTable[T]())
	return id
}

// RegisterComponent registers T ahead of first use. Registration is optional since
// ComponentTypeOf registers lazily, but it fixes id order when that matters.
func RegisterComponent[T any](r *ComponentRegistry) ComponentType {
	return ComponentTypeOf[T](r)
}

// Components can be structs or primitives, but not references to other storage.
func checkComponentKind(t reflect.Type) {
	switch t.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		panic(UnsupportedError{
			Op:     "ComponentTypeOf",
			Reason: "components cannot be pointers, channels, functions or interfaces: " + t.String(),
		})
	}
}

// Lookup returns the id registered for t, if any.
func (r *ComponentRegistry) Lookup(t reflect.Type) (ComponentType, bool) {
	id, ok := r.ids[t]
	return id, ok
}

// Len returns the number of registered component types.
func (r *ComponentRegistry) Len() int {
	return len(r.types)
}

// Type returns the payload type for id.
func (r *ComponentRegistry) Type(id ComponentType) reflect.Type {
	return r.types[id]
}

// Name returns a printable name for id.
func (r *ComponentRegistry) Name(id ComponentType) string {
	return r.types[id].String()
}

func typedTableOf[T any](r *ComponentRegistry) *PackedMap[Entity, T] {
	id := ComponentTypeOf[T](r)
	return r.tables[id].(*typedTable[T]).values
}

func (r *ComponentRegistry) table(id ComponentType) componentTable {
	return r.tables[id]
}

// Component names a component payload type for the variadic manager APIs.
// Use Of to obtain one.
type Component interface {
	componentType(r *ComponentRegistry) ComponentType
}

type componentOf[T any] struct{}

func (componentOf[T]) componentType(r *ComponentRegistry) ComponentType {
	return ComponentTypeOf[T](r)
}

// Of returns the Component token for T.
func Of[T any]() Component {
	return componentOf[T]{}
}

func resolveTypes(r *ComponentRegistry, comps []Component) []ComponentType {
	ids := make([]ComponentType, len(comps))
	for i, c := range comps {
		ids[i] = c.componentType(r)
	}
	return ids
}
