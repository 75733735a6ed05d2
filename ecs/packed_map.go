package ecs

import "iter"

// PackedMap associates exactly one V with each key. Values are stored index-aligned
// with the dense keys of an internal PackedSet, so the value at position i always
// belongs to the key at position i.
//
// Pointers returned by Add, Get and Lookup are only valid until the next Add or
// Remove on the same map.
type PackedMap[K Key, V any] struct {
	keySet PackedSet[K]
	values []V
}

// NewPackedMap creates an empty map sized for capacity entries.
func NewPackedMap[K Key, V any](capacity int) *PackedMap[K, V] {
	if capacity <= 0 {
		capacity = defaultSetCapacity
	}
	return &PackedMap[K, V]{
		keySet: *NewPackedSet[K](capacity),
		values: make([]V, 0, capacity),
	}
}

// Add inserts a zero value for key and returns a pointer to it.
// Adding an existing key panics.
func (m *PackedMap[K, V]) Add(key K) *V {
	m.keySet.Add(key)
	var zero V
	m.values = append(m.values, zero)
	return &m.values[len(m.values)-1]
}

// Get returns a pointer to the value stored for key. Key must be present.
func (m *PackedMap[K, V]) Get(key K) *V {
	return &m.values[m.keySet.IndexOf(key)]
}

// Lookup returns the value for key, or false if key is absent.
func (m *PackedMap[K, V]) Lookup(key K) (*V, bool) {
	if !m.keySet.Contains(key) {
		return nil, false
	}
	return &m.values[m.keySet.IndexOf(key)], true
}

// Remove deletes key and its value, moving the last value into the freed slot.
// Removing an absent key panics.
func (m *PackedMap[K, V]) Remove(key K) {
	pos := m.keySet.RemoveAndPack(key)
	m.packValues(pos)
}

// TryRemove deletes key if present and reports whether it was.
func (m *PackedMap[K, V]) TryRemove(key K) bool {
	pos := m.keySet.TryRemoveAndPack(key)
	if pos == NotFound {
		return false
	}
	m.packValues(pos)
	return true
}

func (m *PackedMap[K, V]) packValues(pos int) {
	last := len(m.values) - 1
	if pos != last {
		m.values[pos] = m.values[last]
	}
	var zero V
	m.values[last] = zero
	m.values = m.values[:last]
}

func (m *PackedMap[K, V]) Contains(key K) bool {
	return m.keySet.Contains(key)
}

func (m *PackedMap[K, V]) Len() int {
	return len(m.values)
}

// Keys returns the dense key slice, aligned with Values.
func (m *PackedMap[K, V]) Keys() []K {
	return m.keySet.Keys()
}

// KeySet returns the set tracking this map's keys. Callers must not mutate it.
func (m *PackedMap[K, V]) KeySet() *PackedSet[K] {
	return &m.keySet
}

// Values returns the dense value slice, aligned with Keys.
func (m *PackedMap[K, V]) Values() []V {
	return m.values
}

// All iterates key/value pairs in dense order.
func (m *PackedMap[K, V]) All() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		keys := m.keySet.Keys()
		for i := range keys {
			if !yield(keys[i], &m.values[i]) {
				return
			}
		}
	}
}
