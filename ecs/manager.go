package ecs

import (
	"reflect"
	"unsafe"

	"github.com/sirupsen/logrus"
)

// EntityManager owns entity id allocation, the set of live entities, the component
// registry and the table of live query caches.
//
// An EntityManager is not safe for concurrent use. It is meant to be driven by a
// single update loop that holds exclusive mutation rights.
type EntityManager struct {
	nextEntity  Entity
	allEntities PackedSet[Entity]
	registry    *ComponentRegistry

	nextQueryId  QueryId
	caches       PackedMap[QueryId, *queryCache]
	cachesByHash map[uint64][]*queryCache

	singletons map[reflect.Type]*singletonEntry

	log   *logrus.Entry
	stats managerCounters
}

type managerCounters struct {
	cacheBuilds    uint64
	cacheEvictions uint64
	cacheUpdates   uint64
	destroyed      uint64
}

type singletonEntry struct {
	typ     reflect.Type
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// Option configures an EntityManager.
type Option func(*EntityManager)

// WithLogger sets the logger used for cache and lifecycle events.
func WithLogger(log *logrus.Entry) Option {
	return func(m *EntityManager) {
		m.log = log
	}
}

// WithEntityCapacity pre-sizes the live entity set.
func WithEntityCapacity(n int) Option {
	return func(m *EntityManager) {
		m.allEntities = *NewPackedSet[Entity](n)
	}
}

// NewEntityManager creates an empty manager with its own component registry.
func NewEntityManager(opts ...Option) *EntityManager {
	m := &EntityManager{
		nextEntity:   NullEntity + 1,
		registry:     NewComponentRegistry(),
		nextQueryId:  NullQueryId + 1,
		cachesByHash: make(map[uint64][]*queryCache),
		singletons:   make(map[reflect.Type]*singletonEntry),
		log:          logrus.WithField("component", "ecs"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Registry returns the manager's component registry.
func (m *EntityManager) Registry() *ComponentRegistry {
	return m.registry
}

// CreateEntity issues a new entity with no components.
func (m *EntityManager) CreateEntity() Entity {
	e := m.nextEntity
	m.nextEntity++
	m.allEntities.Add(e)
	// Queries with only noneOf (or empty anyOf) terms can match a bare entity.
	m.updateTrackedQueries(e)
	return e
}

// Alive reports whether e has been created and not destroyed.
func (m *EntityManager) Alive(e Entity) bool {
	return m.allEntities.Contains(e)
}

// EntityCount returns the number of live entities.
func (m *EntityManager) EntityCount() int {
	return m.allEntities.Len()
}

// DestroyEntity removes every component of e, drops e from all live caches and
// from the set of live entities. The id is never issued again.
// It returns false if e is not alive.
func (m *EntityManager) DestroyEntity(e Entity) bool {
	if !m.allEntities.Contains(e) {
		return false
	}
	for _, t := range m.registry.tables {
		t.tryRemove(e)
	}
	m.allEntities.RemoveAndPack(e)
	for _, c := range m.caches.Values() {
		c.matches.TryRemoveAndPack(e)
	}
	m.stats.destroyed++

	m.log.WithField("entity", e).Debug("destroyed entity")
	return true
}

func (m *EntityManager) mustBeAlive(op string, e Entity) {
	if !m.allEntities.Contains(e) {
		panic(InvalidEntityError{Op: op, Entity: uint64(e)})
	}
}

// Add attaches a zero value of each listed component type to e, then updates the
// live caches once. e must be alive and must not already hold any of the types.
func (m *EntityManager) Add(e Entity, comps ...Component) {
	m.mustBeAlive("Add", e)
	for _, ct := range resolveTypes(m.registry, comps) {
		m.addType(e, ct)
	}
	m.updateTrackedQueries(e)
}

// Remove detaches each listed component type from e, then updates the live caches
// once. e must hold every listed type.
func (m *EntityManager) Remove(e Entity, comps ...Component) {
	m.mustBeAlive("Remove", e)
	for _, ct := range resolveTypes(m.registry, comps) {
		m.removeType(e, ct)
	}
	m.updateTrackedQueries(e)
}

func (m *EntityManager) addType(e Entity, ct ComponentType) {
	t := m.registry.table(ct)
	if t.keySet().Contains(e) {
		panic(InvalidEntityError{Op: "Add", Entity: uint64(e), Component: m.registry.Name(ct)})
	}
	t.addZero(e)
}

func (m *EntityManager) removeType(e Entity, ct ComponentType) {
	t := m.registry.table(ct)
	if !t.keySet().Contains(e) {
		panic(InvalidEntityError{Op: "Remove", Entity: uint64(e), Component: m.registry.Name(ct)})
	}
	t.remove(e)
}

// HasType reports whether e holds the component type ct.
func (m *EntityManager) HasType(e Entity, ct ComponentType) bool {
	return m.registry.table(ct).keySet().Contains(e)
}

// ComponentTypes returns the component types e currently holds, in id order.
func (m *EntityManager) ComponentTypes(e Entity) []ComponentType {
	var types []ComponentType
	for i, t := range m.registry.tables {
		if t.keySet().Contains(e) {
			types = append(types, ComponentType(i))
		}
	}
	return types
}

// ComponentAny returns a pointer to e's ct component as an any, or nil.
func (m *EntityManager) ComponentAny(e Entity, ct ComponentType) any {
	return m.registry.table(ct).getAny(e)
}

// Ref returns an EntityRef for e.
func (m *EntityManager) Ref(e Entity) EntityRef {
	return EntityRef{Id: e, manager: m}
}

// AllEntities returns every live entity. The result has no backing cache.
func (m *EntityManager) AllEntities() *QueryResult {
	return newQueryResult(m, &m.allEntities, NullQueryId)
}

// AllOf returns the entities holding every listed type. A single type is answered
// directly from that type's table.
func (m *EntityManager) AllOf(comps ...Component) *QueryResult {
	if len(comps) == 0 {
		panic(UnsupportedError{Op: "AllOf", Reason: "at least one component type is required"})
	}
	types := resolveTypes(m.registry, comps)
	if len(types) == 1 {
		return m.tableResult(types[0])
	}
	return m.result(NewQueryDescriptor(types, nil, nil))
}

// AnyOf returns the entities holding at least one listed type. A single type is
// answered directly from that type's table.
func (m *EntityManager) AnyOf(comps ...Component) *QueryResult {
	if len(comps) == 0 {
		panic(UnsupportedError{Op: "AnyOf", Reason: "at least one component type is required"})
	}
	types := resolveTypes(m.registry, comps)
	if len(types) == 1 {
		return m.tableResult(types[0])
	}
	return m.result(NewQueryDescriptor(nil, types, nil))
}

// NoneOf returns the live entities holding none of the listed types.
func (m *EntityManager) NoneOf(comps ...Component) *QueryResult {
	if len(comps) == 0 {
		panic(UnsupportedError{Op: "NoneOf", Reason: "at least one component type is required"})
	}
	return m.result(NewQueryDescriptor(nil, nil, resolveTypes(m.registry, comps)))
}

// Resolve returns a result for an arbitrary descriptor.
func (m *EntityManager) Resolve(d QueryDescriptor) *QueryResult {
	if d.Empty() {
		panic(UnsupportedError{Op: "Resolve", Reason: "query names no component types"})
	}
	return m.result(d)
}

func (m *EntityManager) tableResult(ct ComponentType) *QueryResult {
	return newQueryResult(m, m.registry.table(ct).keySet(), NullQueryId)
}

func (m *EntityManager) result(d QueryDescriptor) *QueryResult {
	c := m.resolve(d)
	return newQueryResult(m, &c.matches, c.id)
}

// Query starts a query combining allOf, anyOf and noneOf terms.
func (m *EntityManager) Query() *QueryBuilder {
	return &QueryBuilder{manager: m}
}

// QueryBuilder collects query terms. Each term method replaces the previous list
// for that term.
type QueryBuilder struct {
	manager *EntityManager
	allOf   []ComponentType
	anyOf   []ComponentType
	noneOf  []ComponentType
}

func (b *QueryBuilder) AllOf(comps ...Component) *QueryBuilder {
	b.allOf = resolveTypes(b.manager.registry, comps)
	return b
}

func (b *QueryBuilder) AnyOf(comps ...Component) *QueryBuilder {
	b.anyOf = resolveTypes(b.manager.registry, comps)
	return b
}

func (b *QueryBuilder) NoneOf(comps ...Component) *QueryBuilder {
	b.noneOf = resolveTypes(b.manager.registry, comps)
	return b
}

// Descriptor returns the descriptor for the collected terms.
func (b *QueryBuilder) Descriptor() QueryDescriptor {
	return NewQueryDescriptor(b.allOf, b.anyOf, b.noneOf)
}

// Result resolves the collected terms into a cached result.
func (b *QueryBuilder) Result() *QueryResult {
	return b.manager.Resolve(b.Descriptor())
}
