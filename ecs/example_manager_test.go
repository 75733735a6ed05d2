package ecs_test

import (
	"fmt"
	"slices"

	"github.com/plus3/packecs/ecs"
)

// ExampleEntityManager walks through creating entities, attaching components and
// asking which entities hold which combinations of them.
func ExampleEntityManager() {
	m := ecs.NewEntityManager()

	e1 := m.CreateEntity()
	e2 := m.CreateEntity()
	e3 := m.CreateEntity()

	ecs.Add[ComponentA](m, e1)
	ecs.Add[ComponentA](m, e2)
	ecs.Add[ComponentB](m, e2)
	ecs.Add[ComponentB](m, e3)

	both := m.AllOf(ecs.Of[ComponentA](), ecs.Of[ComponentB]())
	defer both.Release()
	fmt.Println("allOf A,B:", sorted(both))

	either := m.AnyOf(ecs.Of[ComponentA](), ecs.Of[ComponentB]())
	defer either.Release()
	fmt.Println("anyOf A,B:", sorted(either))

	withoutA := m.NoneOf(ecs.Of[ComponentA]())
	defer withoutA.Release()
	fmt.Println("noneOf A:", sorted(withoutA))

	// Retained results follow later mutations.
	ecs.Remove[ComponentA](m, e2)
	fmt.Println("allOf A,B after remove:", sorted(both))
	fmt.Println("noneOf A after remove:", sorted(withoutA))

	// Output:
	// allOf A,B: [2]
	// anyOf A,B: [1 2 3]
	// noneOf A: [3]
	// allOf A,B after remove: []
	// noneOf A after remove: [2 3]
}

// ExampleInsert shows attaching initialized components and reading them back.
func ExampleInsert() {
	m := ecs.NewEntityManager()
	e := m.CreateEntity()

	ecs.Insert(m, e, Position{X: 10, Y: 20})
	ecs.Add[Velocity](m, e).DX = 2

	pos, vel := ecs.Get2[Position, Velocity](m, e)
	pos.X += vel.DX

	fmt.Printf("position (%.0f, %.0f)\n", ecs.Get[Position](m, e).X, ecs.Get[Position](m, e).Y)
	_, hasHealth := ecs.TryGet[Health](m, e)
	fmt.Println("has health:", hasHealth)

	// Output:
	// position (12, 20)
	// has health: false
}

// ExampleEntityManager_DestroyEntity shows that destroying an entity drops it from
// every table and query, and that its id is not issued again.
func ExampleEntityManager_DestroyEntity() {
	m := ecs.NewEntityManager()
	e := m.CreateEntity()
	ecs.Add[Position](m, e)

	positioned := ecs.EntitiesWith[Position](m)

	m.DestroyEntity(e)
	fmt.Println("alive:", m.Alive(e))
	fmt.Println("positioned:", positioned.Len())
	fmt.Println("next id:", m.CreateEntity())

	// Output:
	// alive: false
	// positioned: 0
	// next id: 2
}

func sorted(r *ecs.QueryResult) []ecs.Entity {
	entities := collect(r)
	slices.Sort(entities)
	return entities
}
