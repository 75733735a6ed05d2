package ecs

import (
	"github.com/kamstrup/intmap"
)

// NotFound is returned by TryRemoveAndPack when the key is not a member.
const NotFound = -1

const defaultSetCapacity = 64

// Key is the set of integer types usable as PackedSet keys.
type Key interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// PackedSet is a dense/sparse index: membership is looked up through a hash index
// while members are kept gap-free in a dense slice. Removal moves the last member
// into the freed slot.
// The zero value is an empty set ready to use.
type PackedSet[K Key] struct {
	keys  []K
	index *intmap.Map[K, int]
}

// NewPackedSet creates an empty set sized for capacity members.
func NewPackedSet[K Key](capacity int) *PackedSet[K] {
	if capacity <= 0 {
		capacity = defaultSetCapacity
	}
	return &PackedSet[K]{
		keys:  make([]K, 0, capacity),
		index: intmap.New[K, int](capacity),
	}
}

// Add appends key to the dense sequence. Adding a member twice panics.
func (s *PackedSet[K]) Add(key K) {
	if s.index == nil {
		s.index = intmap.New[K, int](defaultSetCapacity)
	}
	if _, ok := s.index.Get(key); ok {
		panic(InvalidEntityError{Op: "PackedSet.Add", Entity: uint64(key), Component: "key already in set"})
	}
	s.index.Put(key, len(s.keys))
	s.keys = append(s.keys, key)
}

// Contains reports whether key is a member.
func (s *PackedSet[K]) Contains(key K) bool {
	if s.index == nil {
		return false
	}
	_, ok := s.index.Get(key)
	return ok
}

// IndexOf returns the dense position of key. Key must be a member.
func (s *PackedSet[K]) IndexOf(key K) int {
	if s.index != nil {
		if pos, ok := s.index.Get(key); ok {
			return pos
		}
	}
	panic(InvalidEntityError{Op: "PackedSet.IndexOf", Entity: uint64(key), Component: "key not in set"})
}

// RemoveAndPack removes key by moving the last member into its slot and returns the
// position that was freed. Removing a non-member panics.
func (s *PackedSet[K]) RemoveAndPack(key K) int {
	pos := s.IndexOf(key)
	last := len(s.keys) - 1

	if pos != last {
		moved := s.keys[last]
		s.keys[pos] = moved
		s.index.Put(moved, pos)
	}

	s.keys = s.keys[:last]
	s.index.Del(key)
	return pos
}

// TryRemoveAndPack behaves like RemoveAndPack but returns NotFound for a non-member.
func (s *PackedSet[K]) TryRemoveAndPack(key K) int {
	if !s.Contains(key) {
		return NotFound
	}
	return s.RemoveAndPack(key)
}

// Len returns the number of members.
func (s *PackedSet[K]) Len() int {
	return len(s.keys)
}

// Keys returns the dense member slice. Its order is not meaningful and it must not
// be modified or held across mutations of the set.
func (s *PackedSet[K]) Keys() []K {
	return s.keys
}

// Clear removes every member while keeping allocated capacity.
func (s *PackedSet[K]) Clear() {
	s.keys = s.keys[:0]
	if s.index != nil {
		s.index.Clear()
	}
}
