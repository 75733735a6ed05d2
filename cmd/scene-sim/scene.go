package main

import (
	"math"

	"github.com/plus3/packecs/ecs"
)

var lightColors = []Vec3{
	{1, .1, .1},
	{.1, .1, 1},
	{.1, 1, .1},
	{1, 1, .1},
	{.1, 1, 1},
	{1, 1, 1},
}

// makePointLight creates a light entity with a small billboard radius.
func makePointLight(m *ecs.EntityManager, intensity float32) ecs.Entity {
	e := m.CreateEntity()
	t := ecs.Insert(m, e, NewTransform(Vec3{}))
	t.Scale[0] = 0.1
	ecs.Insert(m, e, Color{RGB: Vec3{1, 1, 1}})
	ecs.Insert(m, e, PointLight{Intensity: intensity})
	return e
}

func spawnObject(m *ecs.EntityManager, path string, translation, scale Vec3) ecs.Entity {
	e := m.CreateEntity()
	t := NewTransform(translation)
	t.Scale = scale
	ecs.Insert(m, e, t)
	ecs.Insert(m, e, Model{Path: path})
	return e
}

// loadScene populates m with the vases, the floor, a ring of lights and the
// viewer.
func loadScene(m *ecs.EntityManager) {
	spawnObject(m, "models/flat_vase.obj", Vec3{-.5, .5, 0}, Vec3{3, 1.5, 3})
	spawnObject(m, "models/smooth_vase.obj", Vec3{.5, .5, 0}, Vec3{3, 1.5, 3})
	spawnObject(m, "models/quad.obj", Vec3{0, .5, 0}, Vec3{3, 1, 3})

	for i, color := range lightColors {
		light := makePointLight(m, 0.2)
		ecs.Get[Color](m, light).RGB = color

		angle := float32(i) * 2 * math.Pi / float32(len(lightColors))
		ecs.Get[Transform](m, light).Translation = Vec3{-1, -1, -1}.RotateDownAxis(angle)
	}

	viewer := m.CreateEntity()
	ecs.Insert(m, viewer, NewTransform(Vec3{0, 0, -2.5}))
	ecs.Add[Viewer](m, viewer)
}
