package main

import (
	"cmp"
	"slices"
	"time"

	"github.com/plus3/packecs/ecs"
)

// lightRotationSpeed is in radians per second.
const lightRotationSpeed = 0.5

// CameraSystem copies the viewer's position into the Camera singleton.
type CameraSystem struct {
	Camera  ecs.Singleton[Camera]
	Viewers ecs.Query[struct {
		*Viewer
		*Transform
	}]
}

func (s *CameraSystem) Execute(frame *ecs.UpdateFrame) {
	camera := s.Camera.Get()
	for viewer := range s.Viewers.Iter() {
		camera.Position = viewer.Transform.Translation
		return
	}
}

// PointLightSystem orbits the lights around the vertical axis and writes them
// into the uniform block.
type PointLightSystem struct {
	Ubo    ecs.Singleton[GlobalUbo]
	Lights ecs.Query[struct {
		*Transform
		*Color
		*PointLight
	}]
}

func (s *PointLightSystem) Execute(frame *ecs.UpdateFrame) {
	ubo := s.Ubo.Get()
	angle := float32(lightRotationSpeed * frame.DeltaTime)

	n := 0
	dropped := 0
	for light := range s.Lights.Iter() {
		t := light.Transform
		t.Translation = t.Translation.RotateDownAxis(angle)

		if n == MaxLights {
			dropped++
			continue
		}
		ubo.PointLights[n] = GPUPointLight{
			Position: [4]float32{t.Translation[0], t.Translation[1], t.Translation[2], 1},
			Color:    [4]float32{light.Color.RGB[0], light.Color.RGB[1], light.Color.RGB[2], light.PointLight.Intensity},
		}
		n++
	}
	ubo.NumLights = n
	ubo.DroppedLights = dropped
}

// SimpleRenderSystem records a mesh draw for every modelled entity that is not
// a light.
type SimpleRenderSystem struct {
	Draws   ecs.Singleton[DrawList]
	Objects ecs.Query[struct {
		ecs.Entity
		*Transform
		*Model
		Light *PointLight `ecs:"none"`
	}]
}

func (s *SimpleRenderSystem) Execute(frame *ecs.UpdateFrame) {
	draws := s.Draws.Get()
	draws.Meshes = draws.Meshes[:0]
	for e, obj := range s.Objects.All() {
		draws.Meshes = append(draws.Meshes, MeshDraw{
			Entity:      e,
			Model:       obj.Model.Path,
			ModelMatrix: obj.Transform.Mat4(),
		})
	}
}

// PointLightRenderSystem records light billboards ordered from the farthest to
// the nearest light as seen from the camera.
type PointLightRenderSystem struct {
	Camera ecs.Singleton[Camera]
	Draws  ecs.Singleton[DrawList]
	Lights ecs.Query[struct {
		ecs.Entity
		*Transform
		*Color
		*PointLight
	}]
}

func (s *PointLightRenderSystem) Execute(frame *ecs.UpdateFrame) {
	camera := s.Camera.Get()
	draws := s.Draws.Get()
	draws.Lights = draws.Lights[:0]

	for e, light := range s.Lights.All() {
		draws.Lights = append(draws.Lights, LightDraw{
			Entity:   e,
			Position: light.Transform.Translation,
			Color:    [4]float32{light.Color.RGB[0], light.Color.RGB[1], light.Color.RGB[2], light.PointLight.Intensity},
			Radius:   light.Transform.Scale[0],
		})
	}

	distance := func(d LightDraw) float32 {
		offset := camera.Position.Sub(d.Position)
		return offset.Dot(offset)
	}
	slices.SortStableFunc(draws.Lights, func(a, b LightDraw) int {
		return cmp.Compare(distance(b), distance(a))
	})
}

// MetricsSystem tracks frame times and periodically publishes a snapshot of the
// manager to the stats hub.
type MetricsSystem struct {
	Metrics ecs.Singleton[FrameMetrics]
	Ubo     ecs.Singleton[GlobalUbo]
	Draws   ecs.Singleton[DrawList]

	Hub          *StatsHub
	PublishEvery uint64

	lastTime time.Time
}

func (s *MetricsSystem) Execute(frame *ecs.UpdateFrame) {
	now := time.Now()
	if !s.lastTime.IsZero() {
		s.record(float32(now.Sub(s.lastTime).Seconds()))
	}
	s.lastTime = now

	if s.Hub == nil || s.PublishEvery == 0 || frame.Index%s.PublishEvery != 0 {
		return
	}

	metrics := s.Metrics.Get()
	ubo := s.Ubo.Get()
	draws := s.Draws.Get()
	s.Hub.Publish(Snapshot{
		Frame:          frame.Index,
		FrameTimeMs:    metrics.FrameTime * 1000,
		AvgFrameTimeMs: metrics.AvgFrameTime,
		Lights:         ubo.NumLights,
		MeshDraws:      len(draws.Meshes),
		LightDraws:     len(draws.Lights),
		Manager:        frame.Manager.CollectStats(),
	})
}

func (s *MetricsSystem) record(frameTime float32) {
	perf := s.Metrics.Get()
	perf.FrameTime = frameTime

	if len(perf.LastFrameSamples) >= 60 {
		perf.LastFrameSamples = perf.LastFrameSamples[1:]
	}
	perf.LastFrameSamples = append(perf.LastFrameSamples, frameTime*1000)

	sum := float32(0)
	perf.MinFrameTime = perf.LastFrameSamples[0]
	perf.MaxFrameTime = perf.LastFrameSamples[0]
	for _, sample := range perf.LastFrameSamples {
		sum += sample
		perf.MinFrameTime = min(perf.MinFrameTime, sample)
		perf.MaxFrameTime = max(perf.MaxFrameTime, sample)
	}
	perf.AvgFrameTime = sum / float32(len(perf.LastFrameSamples))
}
