package main

import (
	"math/rand/v2"

	"github.com/plus3/packecs/ecs"
)

// attachRandomComponents gives e n distinct generated components.
func attachRandomComponents(m *ecs.EntityManager, e ecs.Entity, n int) {
	n = min(n, len(componentAdders))
	for _, idx := range rand.Perm(len(componentAdders))[:n] {
		componentAdders[idx](m, e)
	}
}

// SpawnRandomEntity creates an entity with n random generated components.
func SpawnRandomEntity(m *ecs.EntityManager, n int) ecs.Entity {
	e := m.CreateEntity()
	attachRandomComponents(m, e, n)
	return e
}

// ChurnSystem destroys random entities and queues fresh ones in their place,
// keeping the population steady while exercising destruction and cache upkeep.
type ChurnSystem struct {
	All     ecs.Query[struct{ ecs.Entity }]
	PerTick int
}

func (s *ChurnSystem) Execute(frame *ecs.UpdateFrame) {
	entities := s.All.Result().Entities()
	if len(entities) == 0 {
		return
	}

	for range s.PerTick {
		frame.Commands.Destroy(entities[rand.IntN(len(entities))])
		frame.Commands.Create(func(m *ecs.EntityManager, e ecs.Entity) {
			attachRandomComponents(m, e, rand.IntN(5)+1)
		})
	}
}
