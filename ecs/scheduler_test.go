package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/packecs/ecs"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type HealthSystem struct {
	Entities ecs.Query[struct {
		*Health
	}]
	ExecuteCount int
	TotalHealth  float64
}

func (s *HealthSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	s.TotalHealth = 0
	for item := range s.Entities.Iter() {
		s.TotalHealth += float64(item.Health.Current)
	}
}

type frameCounter struct {
	Settings ecs.Singleton[GameSettings]
	indices  []uint64
}

type GameSettings struct {
	Gravity float32
}

func (s *frameCounter) Execute(frame *ecs.UpdateFrame) {
	s.indices = append(s.indices, frame.Index)
}

func spawnMover(m *ecs.EntityManager, p Position, v Velocity) ecs.Entity {
	e := m.CreateEntity()
	ecs.Insert(m, e, p)
	ecs.Insert(m, e, v)
	return e
}

func spawnHealth(m *ecs.EntityManager, current int) ecs.Entity {
	e := m.CreateEntity()
	ecs.Insert(m, e, Health{Current: current, Max: 100})
	return e
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order and query initialization", func(t *testing.T) {
		m := newTestManager()
		scheduler := ecs.NewScheduler(m)

		movement := &MovementSystem{}
		health := &HealthSystem{}

		scheduler.Register(movement)
		scheduler.Register(health)

		spawnMover(m, Position{}, Velocity{DX: 1, DY: 2})
		spawnHealth(m, 100)

		scheduler.Once(1.0)

		if movement.ExecuteCount != 1 {
			t.Errorf("expected MovementSystem to execute once, got %d", movement.ExecuteCount)
		}
		if health.ExecuteCount != 1 {
			t.Errorf("expected HealthSystem to execute once, got %d", health.ExecuteCount)
		}
		if movement.Entities.Len() != 1 {
			t.Errorf("expected movement query to match 1 entity, got %d", movement.Entities.Len())
		}

		scheduler.Once(1.0)

		if movement.ExecuteCount != 2 {
			t.Errorf("expected MovementSystem to execute twice, got %d", movement.ExecuteCount)
		}
		if health.ExecuteCount != 2 {
			t.Errorf("expected HealthSystem to execute twice, got %d", health.ExecuteCount)
		}
	})

	t.Run("custom state persistence", func(t *testing.T) {
		m := newTestManager()
		scheduler := ecs.NewScheduler(m)

		spawnHealth(m, 50)
		spawnHealth(m, 75)

		health := &HealthSystem{}
		scheduler.Register(health)

		scheduler.Once(1.0)

		if health.TotalHealth != 125.0 {
			t.Errorf("expected TotalHealth=125.0, got %f", health.TotalHealth)
		}

		spawnHealth(m, 25)

		scheduler.Once(1.0)

		if health.TotalHealth != 150.0 {
			t.Errorf("expected TotalHealth=150.0, got %f", health.TotalHealth)
		}
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		m := newTestManager()
		scheduler := ecs.NewScheduler(m)

		movement := &MovementSystem{}
		scheduler.Register(movement)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond)
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		if movement.ExecuteCount == 0 {
			t.Error("expected system to execute at least once")
		}
	})

	t.Run("delta time calculation", func(t *testing.T) {
		m := newTestManager()
		scheduler := ecs.NewScheduler(m)

		spawnMover(m, Position{}, Velocity{DX: 10, DY: 20})

		movement := &MovementSystem{}
		scheduler.Register(movement)

		scheduler.Once(0.5)

		found := false
		for item := range movement.Entities.Iter() {
			if item.Position.X == 5.0 && item.Position.Y == 10.0 {
				found = true
			}
		}

		if !found {
			t.Error("expected position to be updated with delta time")
		}
	})

	t.Run("commands integration", func(t *testing.T) {
		m := newTestManager()
		scheduler := ecs.NewScheduler(m)

		scheduler.Register(&spawnerSystem{})
		scheduler.Once(1.0)

		movement := &MovementSystem{}
		scheduler.Register(movement)
		scheduler.Once(1.0)

		if movement.Entities.Len() == 0 {
			t.Error("expected created entity to be visible after command flush")
		}
	})

	t.Run("singleton fields and frame index", func(t *testing.T) {
		m := newTestManager()
		m.AddSingleton(GameSettings{Gravity: 9.8})
		scheduler := ecs.NewScheduler(m)

		counter := &frameCounter{}
		scheduler.Register(counter)

		if got := counter.Settings.Get(); got == nil || got.Gravity != 9.8 {
			t.Fatalf("expected singleton field to be bound, got %v", got)
		}

		scheduler.Once(0.1)
		scheduler.Once(0.1)
		scheduler.Once(0.1)

		if len(counter.indices) != 3 || counter.indices[0] != 0 || counter.indices[2] != 2 {
			t.Errorf("unexpected frame indices %v", counter.indices)
		}
	})

	t.Run("close releases system queries", func(t *testing.T) {
		m := newTestManager()
		scheduler := ecs.NewScheduler(m)

		scheduler.Register(&MovementSystem{})
		if n := m.CollectStats().LiveQueryCount; n != 1 {
			t.Fatalf("expected 1 live query, got %d", n)
		}

		scheduler.Close()

		if n := m.CollectStats().LiveQueryCount; n != 0 {
			t.Errorf("expected 0 live queries after close, got %d", n)
		}
	})
}

func TestSchedulerStats(t *testing.T) {
	m := newTestManager()
	scheduler := ecs.NewScheduler(m)
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&HealthSystem{})

	for range 4 {
		scheduler.Once(0.016)
	}

	stats := scheduler.GetStats()
	if stats.SystemCount != 2 {
		t.Errorf("expected 2 systems, got %d", stats.SystemCount)
	}
	if stats.Frames != 4 {
		t.Errorf("expected 4 frames, got %d", stats.Frames)
	}
	if stats.TotalExecutions != 8 {
		t.Errorf("expected 8 executions, got %d", stats.TotalExecutions)
	}
	if stats.Systems[0].Name != "MovementSystem" || stats.Systems[1].Name != "HealthSystem" {
		t.Errorf("unexpected system names %q, %q", stats.Systems[0].Name, stats.Systems[1].Name)
	}
	for _, s := range stats.Systems {
		if s.MinDuration > s.MaxDuration {
			t.Errorf("%s: min %v above max %v", s.Name, s.MinDuration, s.MaxDuration)
		}
	}
}
