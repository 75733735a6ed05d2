package main

import (
	"math"

	"github.com/plus3/packecs/ecs"
)

// MaxLights is the number of point light slots in the global uniform block.
const MaxLights = 10

type Vec3 [3]float32

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec3) Dot(o Vec3) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// RotateDownAxis rotates v by angle radians around the (0, -1, 0) axis.
func (v Vec3) RotateDownAxis(angle float32) Vec3 {
	s, c := math.Sincos(float64(angle))
	sin, cos := float32(s), float32(c)
	return Vec3{
		v[0]*cos - v[2]*sin,
		v[1],
		v[0]*sin + v[2]*cos,
	}
}

type Transform struct {
	Translation Vec3
	Scale       Vec3
	Rotation    Vec3
}

// NewTransform returns a transform at translation with unit scale.
func NewTransform(translation Vec3) Transform {
	return Transform{Translation: translation, Scale: Vec3{1, 1, 1}}
}

// Mat4 returns the column-major model matrix, rotating in Y, X, Z order.
func (t *Transform) Mat4() [16]float32 {
	c3, s3 := cosSin(t.Rotation[2])
	c2, s2 := cosSin(t.Rotation[0])
	c1, s1 := cosSin(t.Rotation[1])
	sx, sy, sz := t.Scale[0], t.Scale[1], t.Scale[2]
	return [16]float32{
		sx * (c1*c3 + s1*s2*s3), sx * (c2 * s3), sx * (c1*s2*s3 - c3*s1), 0,
		sy * (c3*s1*s2 - c1*s3), sy * (c2 * c3), sy * (c1*c3*s2 + s1*s3), 0,
		sz * (c2 * s1), sz * (-s2), sz * (c1 * c2), 0,
		t.Translation[0], t.Translation[1], t.Translation[2], 1,
	}
}

func cosSin(a float32) (float32, float32) {
	s, c := math.Sincos(float64(a))
	return float32(c), float32(s)
}

type Color struct {
	RGB Vec3
}

type PointLight struct {
	Intensity float32
}

// Model names the mesh an entity is drawn with.
type Model struct {
	Path string
}

// Viewer marks the entity the camera follows.
type Viewer struct{}

// GPUPointLight is one slot of the uniform block. W of Position is unused; W of
// Color is the intensity.
type GPUPointLight struct {
	Position [4]float32
	Color    [4]float32
}

// GlobalUbo is the per-frame uniform data shared by every render pass.
type GlobalUbo struct {
	AmbientLightColor [4]float32
	PointLights       [MaxLights]GPUPointLight
	NumLights         int
	DroppedLights     int
}

func defaultUbo() GlobalUbo {
	return GlobalUbo{AmbientLightColor: [4]float32{1, 1, 1, .02}}
}

// Camera is updated from the viewer entity each frame.
type Camera struct {
	Position Vec3
	FovY     float32
	Near     float32
	Far      float32
}

// MeshDraw is a recorded draw of a model.
type MeshDraw struct {
	Entity      ecs.Entity
	Model       string
	ModelMatrix [16]float32
}

// LightDraw is a recorded billboard draw of a point light.
type LightDraw struct {
	Entity   ecs.Entity
	Position Vec3
	Color    [4]float32
	Radius   float32
}

// DrawList holds the draws recorded in the current frame.
type DrawList struct {
	Meshes []MeshDraw
	Lights []LightDraw
}

type FrameMetrics struct {
	FrameTime        float32
	AvgFrameTime     float32
	MinFrameTime     float32
	MaxFrameTime     float32
	LastFrameSamples []float32
}

func registerComponents(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](r)
	ecs.RegisterComponent[Color](r)
	ecs.RegisterComponent[PointLight](r)
	ecs.RegisterComponent[Model](r)
	ecs.RegisterComponent[Viewer](r)
}
