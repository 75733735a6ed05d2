package ecs_test

import (
	"fmt"

	"github.com/plus3/packecs/ecs"
)

type mortal struct {
	*Position
	*Health
}

type CleanupSystem struct {
	Entities ecs.Query[struct {
		ecs.Entity
		*Position
		*Health
	}]
}

func (s *CleanupSystem) Execute(frame *ecs.UpdateFrame) {
	deadCount := 0
	for item := range s.Entities.Iter() {
		if item.Health.Current <= 0 {
			frame.Commands.Destroy(item.Entity)
			deadCount++
		}
	}
	if deadCount > 0 {
		fmt.Printf("Queued %d dead entities for destruction\n", deadCount)
	}
}

// ExampleCommands defers destruction until the end of the frame. Destroying an
// entity while a query is being iterated is allowed, but deferring keeps every
// system of the frame looking at the same set of entities.
func ExampleCommands() {
	m := newTestManager()
	spawn := ecs.NewView[mortal](m)
	spawn.Spawn(mortal{&Position{X: 0, Y: 0}, &Health{Current: 0, Max: 100}})
	spawn.Spawn(mortal{&Position{X: 10, Y: 10}, &Health{Current: 50, Max: 100}})
	spawn.Spawn(mortal{&Position{X: 20, Y: 20}, &Health{Current: 100, Max: 100}})

	scheduler := ecs.NewScheduler(m)
	scheduler.Register(&CleanupSystem{})
	defer scheduler.Close()

	scheduler.Once(1.0)

	fmt.Printf("Remaining entities: %d\n", ecs.EntitiesWith[Position](m).Len())

	// Output:
	// Queued 1 dead entities for destruction
	// Remaining entities: 2
}

type ShootTimer struct {
	TimeUntilShot float32
}

type ShootingSystem struct {
	Shooters ecs.Query[struct {
		*Position
		*Velocity
		*ShootTimer
	}]
}

func (s *ShootingSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Shooters.Iter() {
		item.ShootTimer.TimeUntilShot -= float32(frame.DeltaTime)
		if item.ShootTimer.TimeUntilShot > 0 {
			continue
		}
		item.ShootTimer.TimeUntilShot = 1

		pos, vel := *item.Position, *item.Velocity
		frame.Commands.Create(func(m *ecs.EntityManager, e ecs.Entity) {
			ecs.Insert(m, e, pos)
			ecs.Insert(m, e, Velocity{DX: vel.DX * 2, DY: vel.DY * 2})
		})
	}
}

// ExampleCommands_Create spawns projectiles from inside a system.
func ExampleCommands_Create() {
	m := newTestManager()
	ecs.RegisterComponent[ShootTimer](m.Registry())

	shooter := m.CreateEntity()
	ecs.Insert(m, shooter, Position{X: 5, Y: 5})
	ecs.Insert(m, shooter, Velocity{DX: 1, DY: 0})
	ecs.Insert(m, shooter, ShootTimer{TimeUntilShot: 1.5})

	scheduler := ecs.NewScheduler(m)
	scheduler.Register(&ShootingSystem{})
	defer scheduler.Close()

	for i := 0; i < 3; i++ {
		scheduler.Once(1.0)
		fmt.Printf("Frame %d: %d entities\n", i, m.EntityCount())
	}

	// Output:
	// Frame 0: 1 entities
	// Frame 1: 2 entities
	// Frame 2: 3 entities
}
