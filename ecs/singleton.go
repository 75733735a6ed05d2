package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton provides access to a single value of type T owned by the manager
// rather than by any entity. Use it for per-frame global state such as camera or
// lighting data.
type Singleton[T any] struct {
	manager      *EntityManager
	componentPtr unsafe.Pointer
}

// NewSingleton returns an accessor for the T singleton, creating it from the
// initializer (or the zero value) if it does not exist yet.
func NewSingleton[T any](m *EntityManager, initializer ...T) *Singleton[T] {
	entry := m.getSingletonEntry(reflect.TypeFor[T]())
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		entry = m.addSingleton(value)
	}
	return &Singleton[T]{
		manager:      m,
		componentPtr: entry.dataPtr,
	}
}

// AddSingleton stores value as the singleton of its dynamic type, replacing any
// previous value of that type.
func (m *EntityManager) AddSingleton(value any) {
	m.addSingleton(value)
}

func (m *EntityManager) addSingleton(value any) *singletonEntry {
	t := reflect.TypeOf(value)
	if t == nil {
		panic(UnsupportedError{Op: "AddSingleton", Reason: "nil singleton value"})
	}
	if entry, ok := m.singletons[t]; ok {
		entry.value.Elem().Set(reflect.ValueOf(value))
		return entry
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(reflect.ValueOf(value))
	entry := &singletonEntry{
		typ:     t,
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
	m.singletons[t] = entry
	return entry
}

func (m *EntityManager) getSingletonEntry(t reflect.Type) *singletonEntry {
	return m.singletons[t]
}

// Init binds the accessor to a manager. Called by the Scheduler for Singleton
// fields of registered systems.
func (s *Singleton[T]) Init(m *EntityManager) {
	s.manager = m
	s.componentPtr = nil
	s.updateCache()
}

// Get returns the singleton value, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	if s.componentPtr == nil {
		return nil
	}
	return (*T)(s.componentPtr)
}

func (s *Singleton[T]) updateCache() {
	if s.manager == nil {
		return
	}
	if entry := s.manager.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.componentPtr = entry.dataPtr
	}
}

// Exists reports whether the singleton has been added.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
