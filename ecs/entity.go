package ecs

// Entity is an opaque handle for a logical object. Ids are issued in increasing
// order starting at 1 and are never reused; NullEntity is never a live entity.
type Entity uint32

// NullEntity is the reserved invalid entity id.
const NullEntity Entity = 0

// EntityRef binds an entity to the manager that owns it so components can be read
// without passing the manager around.
type EntityRef struct {
	Id      Entity
	manager *EntityManager
}

// Manager returns the manager the entity belongs to.
func (r EntityRef) Manager() *EntityManager {
	return r.manager
}

// Valid reports whether the referenced entity is still alive.
func (r EntityRef) Valid() bool {
	return r.manager != nil && r.manager.Alive(r.Id)
}

// RefComponent returns the T component of the referenced entity.
// The entity must hold a T.
func RefComponent[T any](ref EntityRef) *T {
	return Get[T](ref.manager, ref.Id)
}
