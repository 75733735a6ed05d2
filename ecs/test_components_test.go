package ecs_test

import "github.com/plus3/packecs/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type Transform struct {
	Translation [3]float32
	Scale       [3]float32
	Rotation    [3]float32
}

type ComponentA struct {
	Value int
}

type ComponentB struct {
	Value int
}

type ComponentC struct {
	Value int
}

type PlayerController struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

func newTestManager() *ecs.EntityManager {
	m := ecs.NewEntityManager()
	registry := m.Registry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[ComponentA](registry)
	ecs.RegisterComponent[ComponentB](registry)
	ecs.RegisterComponent[ComponentC](registry)
	ecs.RegisterComponent[PlayerController](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Tag](registry)
	return m
}

// collect drains a result into a slice.
func collect(r *ecs.QueryResult) []ecs.Entity {
	entities := make([]ecs.Entity, 0, r.Len())
	for e := range r.Iter() {
		entities = append(entities, e)
	}
	return entities
}
