package ecs_test

import (
	"testing"

	"github.com/plus3/packecs/ecs"
)

func populate(m *ecs.EntityManager, n int) []ecs.Entity {
	ids := make([]ecs.Entity, n)
	for i := range ids {
		e := m.CreateEntity()
		ecs.Insert(m, e, Position{X: float32(i)})
		if i%2 == 0 {
			ecs.Insert(m, e, Velocity{DX: 1})
		}
		if i%3 == 0 {
			ecs.Insert(m, e, Health{Current: 100, Max: 100})
		}
		ids[i] = e
	}
	return ids
}

func BenchmarkCreateEntity(b *testing.B) {
	m := newTestManager()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := m.CreateEntity()
		ecs.Add[Position](m, e)
		ecs.Add[Velocity](m, e)
	}
}

func BenchmarkCreateEntityWithLiveQueries(b *testing.B) {
	m := newTestManager()
	queries := []*ecs.QueryResult{
		m.AllOf(ecs.Of[Position](), ecs.Of[Velocity]()),
		m.AnyOf(ecs.Of[Health](), ecs.Of[Name]()),
		m.NoneOf(ecs.Of[Health]()),
	}
	defer func() {
		for _, q := range queries {
			q.Release()
		}
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := m.CreateEntity()
		m.Add(e, ecs.Of[Position](), ecs.Of[Velocity]())
	}
}

func BenchmarkDestroyEntity(b *testing.B) {
	m := newTestManager()
	ids := populate(m, b.N)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.DestroyEntity(ids[i])
	}
}

func BenchmarkGetComponent(b *testing.B) {
	m := newTestManager()
	ids := populate(m, 1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.Get[Position](m, ids[i%len(ids)])
	}
}

func BenchmarkAddRemoveComponent(b *testing.B) {
	m := newTestManager()
	ids := populate(m, 1000)
	r := m.AllOf(ecs.Of[Position](), ecs.Of[Name]())
	defer r.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := ids[i%len(ids)]
		ecs.Add[Name](m, e)
		ecs.Remove[Name](m, e)
	}
}

func BenchmarkResolveCachedQuery(b *testing.B) {
	m := newTestManager()
	populate(m, 1000)
	held := m.AllOf(ecs.Of[Position](), ecs.Of[Velocity]())
	defer held.Release()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r := m.AllOf(ecs.Of[Velocity](), ecs.Of[Position]())
		r.Release()
	}
}

func BenchmarkQueryIteration(b *testing.B) {
	m := newTestManager()
	populate(m, 10000)
	q := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](m)
	defer q.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for item := range q.Iter() {
			item.X += item.DX
		}
	}
}

func BenchmarkEach(b *testing.B) {
	m := newTestManager()
	populate(m, 10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, p := range ecs.Each[Position](m) {
			p.Y += 1
		}
	}
}
