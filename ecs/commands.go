package ecs

// Commands buffers structural changes made while systems iterate, and applies
// them to the manager at the end of the frame.
type Commands struct {
	creates  []createCommand
	destroys []Entity
	adds     []addCommand
	removes  []removeCommand
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type createCommand struct {
	init func(m *EntityManager, e Entity)
}

type addCommand struct {
	entity Entity
	apply  func(m *EntityManager, e Entity)
}

type removeCommand struct {
	entity Entity
	comps  []Component
}

// Defer queues fn to run after all other commands.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Create queues the creation of an entity. init, if non-nil, runs right after the
// entity is created and may attach components.
func (c *Commands) Create(init func(m *EntityManager, e Entity)) {
	c.creates = append(c.creates, createCommand{init: init})
}

// Destroy queues the destruction of e.
func (c *Commands) Destroy(e Entity) {
	c.destroys = append(c.destroys, e)
}

// Add queues the attachment of zero-valued components to e.
func (c *Commands) Add(e Entity, comps ...Component) {
	c.adds = append(c.adds, addCommand{
		entity: e,
		apply: func(m *EntityManager, e Entity) {
			m.Add(e, comps...)
		},
	})
}

// Remove queues the detachment of components from e.
func (c *Commands) Remove(e Entity, comps ...Component) {
	c.removes = append(c.removes, removeCommand{entity: e, comps: comps})
}

// InsertDeferred queues the attachment of value as e's T component.
func InsertDeferred[T any](c *Commands, e Entity, value T) {
	c.adds = append(c.adds, addCommand{
		entity: e,
		apply: func(m *EntityManager, e Entity) {
			Insert(m, e, value)
		},
	})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.creates) + len(c.destroys) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all queued commands to m and resets the buffer. Destroys run
// first; removes and adds aimed at destroyed entities are dropped.
func (c *Commands) Flush(m *EntityManager) {
	destroyed := make(map[Entity]bool, len(c.destroys))

	for _, e := range c.destroys {
		m.DestroyEntity(e)
		destroyed[e] = true
	}

	for _, cmd := range c.removes {
		if !destroyed[cmd.entity] {
			m.Remove(cmd.entity, cmd.comps...)
		}
	}

	for _, cmd := range c.adds {
		if !destroyed[cmd.entity] {
			cmd.apply(m, cmd.entity)
		}
	}

	for _, cmd := range c.creates {
		e := m.CreateEntity()
		if cmd.init != nil {
			cmd.init(m, e)
		}
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.creates)
	clear(c.adds)
	clear(c.removes)
	clear(c.defers)
	c.creates = c.creates[:0]
	c.destroys = c.destroys[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
