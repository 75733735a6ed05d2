package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

type fieldMode uint8

const (
	fieldRequired fieldMode = iota
	fieldOptional
	fieldAny
	fieldNone
)

type viewField struct {
	ct     ComponentType
	typ    reflect.Type
	offset uintptr
	mode   fieldMode
}

// View reads several components of an entity at once into a struct of pointers.
//
// T must be a struct whose fields are pointers to registered component types.
// Embedded fields are always required. Named fields may carry an `ecs` tag:
//
//	ecs:"optional"  the field is nil when the entity lacks the component
//	ecs:"any"       as optional, and the entity must hold at least one "any" field
//	ecs:"none"      the entity must not hold the component; the field stays nil
//
// A field of type Entity (embedded or named) receives the entity id.
type View[T any] struct {
	manager       *EntityManager
	fields        []viewField
	entityOffsets []uintptr
	hasAny        bool
}

var entityType = reflect.TypeFor[Entity]()

// NewView creates a view over m for the struct type T. Every component type named
// by T must already be registered with m.
func NewView[T any](m *EntityManager) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic(UnsupportedError{Op: "NewView", Reason: "view type parameter must be a struct"})
	}

	v := &View[T]{manager: m}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityType {
			v.entityOffsets = append(v.entityOffsets, field.Offset)
			continue
		}
		if field.Type.Kind() != reflect.Pointer {
			panic(UnsupportedError{Op: "NewView", Reason: "view struct fields must be pointer types or ecs.Entity: " + field.Name})
		}

		componentType := field.Type.Elem()
		ct, ok := m.registry.Lookup(componentType)
		if !ok {
			panic(UnsupportedError{Op: "NewView", Reason: "component type " + componentType.String() + " not registered"})
		}

		mode := fieldRequired
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				mode = fieldOptional
			case "any":
				mode = fieldAny
				v.hasAny = true
			case "none":
				mode = fieldNone
			default:
				panic(UnsupportedError{Op: "NewView", Reason: "invalid ecs tag value: \"" + tag + "\""})
			}
		}

		v.fields = append(v.fields, viewField{
			ct:     ct,
			typ:    componentType,
			offset: field.Offset,
			mode:   mode,
		})
	}

	return v
}

// Descriptor returns the query descriptor selecting the entities this view can fill.
func (v *View[T]) Descriptor() QueryDescriptor {
	var allOf, anyOf, noneOf []ComponentType
	for _, f := range v.fields {
		switch f.mode {
		case fieldRequired:
			allOf = append(allOf, f.ct)
		case fieldAny:
			anyOf = append(anyOf, f.ct)
		case fieldNone:
			noneOf = append(noneOf, f.ct)
		}
	}
	return NewQueryDescriptor(allOf, anyOf, noneOf)
}

// Fill populates ptr with e's components. It returns false if e does not satisfy
// the view's requirements; ptr is then left partially written.
func (v *View[T]) Fill(e Entity, ptr *T) bool {
	if !v.manager.Alive(e) {
		return false
	}

	// Fields are written through precomputed offsets to keep reflection off the
	// per-entity path.
	structPtr := unsafe.Pointer(ptr)
	for _, off := range v.entityOffsets {
		*(*Entity)(unsafe.Add(structPtr, off)) = e
	}

	anyFound := false
	for _, f := range v.fields {
		fieldPtr := unsafe.Add(structPtr, f.offset)
		component := v.manager.registry.table(f.ct).getAny(e)

		if component == nil {
			if f.mode == fieldRequired {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		switch f.mode {
		case fieldNone:
			return false
		case fieldAny:
			anyFound = true
		}
		*(*unsafe.Pointer)(fieldPtr) = (*iface)(unsafe.Pointer(&component)).data
	}

	return !v.hasAny || anyFound
}

// Get returns a populated view for e, or nil if e does not satisfy the view.
func (v *View[T]) Get(e Entity) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// All iterates the entities of r that satisfy the view, with their populated views.
// It follows the snapshot semantics of QueryResult.Iter.
func (v *View[T]) All(r *QueryResult) iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		var result T
		for e := range r.Iter() {
			if !v.Fill(e, &result) {
				continue
			}
			if !yield(e, result) {
				return
			}
		}
	}
}

// Values iterates just the populated views for the entities of r.
func (v *View[T]) Values(r *QueryResult) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.All(r) {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates an entity holding a copy of every non-nil component in data.
// Required fields must be non-nil; "none" fields are ignored.
func (v *View[T]) Spawn(data T) Entity {
	structPtr := unsafe.Pointer(&data)

	for _, f := range v.fields {
		if f.mode == fieldRequired && *(*unsafe.Pointer)(unsafe.Add(structPtr, f.offset)) == nil {
			panic(UnsupportedError{Op: "View.Spawn", Reason: "required component is nil: " + f.typ.String()})
		}
	}

	m := v.manager
	e := m.CreateEntity()
	for _, f := range v.fields {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, f.offset))
		if componentPtr == nil || f.mode == fieldNone {
			continue
		}

		m.addType(e, f.ct)
		dst := reflect.ValueOf(m.registry.table(f.ct).getAny(e)).Elem()
		dst.Set(reflect.NewAt(f.typ, componentPtr).Elem())
	}
	m.updateTrackedQueries(e)
	return e
}
