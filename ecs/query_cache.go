package ecs

import (
	"slices"
)

// QueryId identifies a live query cache. NullQueryId marks results that are not
// backed by a cache.
type QueryId int

const NullQueryId QueryId = 0

const (
	setAllOf uint64 = iota + 1
	setAnyOf
	setNoneOf
)

// QueryDescriptor is an immutable allOf/anyOf/noneOf predicate over component types.
// Member order does not affect Hash or Equal.
type QueryDescriptor struct {
	allOf  []ComponentType
	anyOf  []ComponentType
	noneOf []ComponentType
	hash   uint64
}

// NewQueryDescriptor builds a descriptor from three component type lists.
// Duplicates within a list are ignored.
func NewQueryDescriptor(allOf, anyOf, noneOf []ComponentType) QueryDescriptor {
	d := QueryDescriptor{
		allOf:  normalizeTypes(allOf),
		anyOf:  normalizeTypes(anyOf),
		noneOf: normalizeTypes(noneOf),
	}
	// Addition is commutative, so the fold does not depend on member order.
	for _, ct := range d.allOf {
		d.hash += mixType(ct, setAllOf)
	}
	for _, ct := range d.anyOf {
		d.hash += mixType(ct, setAnyOf)
	}
	for _, ct := range d.noneOf {
		d.hash += mixType(ct, setNoneOf)
	}
	return d
}

func normalizeTypes(types []ComponentType) []ComponentType {
	out := slices.Clone(types)
	slices.Sort(out)
	return slices.Compact(out)
}

// mixType is the splitmix64 finalizer over the type id tagged with its set.
func mixType(ct ComponentType, set uint64) uint64 {
	x := uint64(ct)<<2 | set
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

func (d QueryDescriptor) Hash() uint64 {
	return d.hash
}

// Equal reports whether both descriptors hold the same three sets.
func (d QueryDescriptor) Equal(o QueryDescriptor) bool {
	return d.hash == o.hash &&
		slices.Equal(d.allOf, o.allOf) &&
		slices.Equal(d.anyOf, o.anyOf) &&
		slices.Equal(d.noneOf, o.noneOf)
}

// Empty reports whether the descriptor names no component types at all.
func (d QueryDescriptor) Empty() bool {
	return len(d.allOf) == 0 && len(d.anyOf) == 0 && len(d.noneOf) == 0
}

func (d QueryDescriptor) AllOf() []ComponentType  { return slices.Clone(d.allOf) }
func (d QueryDescriptor) AnyOf() []ComponentType  { return slices.Clone(d.anyOf) }
func (d QueryDescriptor) NoneOf() []ComponentType { return slices.Clone(d.noneOf) }

// queryCache is a materialized, incrementally maintained set of the entities
// matching desc.
type queryCache struct {
	id      QueryId
	desc    QueryDescriptor
	matches PackedSet[Entity]
	refs    int
}

// matches evaluates the predicate for e against the component tables.
func (m *EntityManager) matches(d *QueryDescriptor, e Entity) bool {
	for _, ct := range d.allOf {
		if !m.registry.table(ct).keySet().Contains(e) {
			return false
		}
	}
	for _, ct := range d.noneOf {
		if m.registry.table(ct).keySet().Contains(e) {
			return false
		}
	}
	if len(d.anyOf) == 0 {
		return true
	}
	for _, ct := range d.anyOf {
		if m.registry.table(ct).keySet().Contains(e) {
			return true
		}
	}
	return false
}

// resolve returns the live cache for d, building it with one scan over all
// entities if none exists. The returned cache has been retained once.
func (m *EntityManager) resolve(d QueryDescriptor) *queryCache {
	for _, c := range m.cachesByHash[d.hash] {
		if c.desc.Equal(d) {
			c.refs++
			return c
		}
	}

	c := &queryCache{
		id:   m.nextQueryId,
		desc: d,
		refs: 1,
	}
	m.nextQueryId++

	for _, e := range m.allEntities.Keys() {
		if m.matches(&c.desc, e) {
			c.matches.Add(e)
		}
	}

	*m.caches.Add(c.id) = c
	m.cachesByHash[d.hash] = append(m.cachesByHash[d.hash], c)
	m.stats.cacheBuilds++

	m.log.WithField("query", c.id).
		WithField("matches", c.matches.Len()).
		Debug("built query cache")
	return c
}

func (m *EntityManager) retain(id QueryId) {
	if id == NullQueryId {
		return
	}
	c, ok := m.caches.Lookup(id)
	if !ok {
		return
	}
	(*c).refs++
}

// release drops one reference to the cache; the last release discards it along
// with its descriptor mapping.
func (m *EntityManager) release(id QueryId) {
	if id == NullQueryId {
		return
	}
	cp, ok := m.caches.Lookup(id)
	if !ok {
		return
	}
	c := *cp
	c.refs--
	if c.refs > 0 {
		return
	}

	m.caches.Remove(id)
	bucket := m.cachesByHash[c.desc.hash]
	if i := slices.Index(bucket, c); i >= 0 {
		bucket = slices.Delete(bucket, i, i+1)
	}
	if len(bucket) == 0 {
		delete(m.cachesByHash, c.desc.hash)
	} else {
		m.cachesByHash[c.desc.hash] = bucket
	}
	m.stats.cacheEvictions++

	m.log.WithField("query", id).Debug("evicted query cache")
}

// updateTrackedQueries re-evaluates e against every live cache and patches the
// caches whose membership changed.
func (m *EntityManager) updateTrackedQueries(e Entity) {
	alive := m.allEntities.Contains(e)
	for _, c := range m.caches.Values() {
		was := c.matches.Contains(e)
		is := alive && m.matches(&c.desc, e)
		switch {
		case was && !is:
			c.matches.RemoveAndPack(e)
		case !was && is:
			c.matches.Add(e)
		}
	}
	m.stats.cacheUpdates++
}
