package main

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/plus3/packecs/ecs"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Entry {
	log, _ := test.NewNullLogger()
	return log.WithField("component", "test")
}

func assertVecInDelta(t *testing.T, expected, actual Vec3) {
	t.Helper()
	for i := range expected {
		assert.InDelta(t, expected[i], actual[i], 1e-5, "component %d of %v", i, actual)
	}
}

func TestRotateDownAxis(t *testing.T) {
	v := Vec3{-1, -1, -1}
	assertVecInDelta(t, v, v.RotateDownAxis(0))
	assertVecInDelta(t, Vec3{1, -1, -1}, v.RotateDownAxis(math.Pi/2))
	assertVecInDelta(t, Vec3{1, -1, 1}, v.RotateDownAxis(math.Pi))
	assertVecInDelta(t, v, v.RotateDownAxis(2*math.Pi))
}

func TestTransformMat4(t *testing.T) {
	tr := NewTransform(Vec3{1, 2, 3})
	tr.Scale = Vec3{2, 3, 4}
	assert.Equal(t, [16]float32{
		2, 0, 0, 0,
		0, 3, 0, 0,
		0, 0, 4, 0,
		1, 2, 3, 1,
	}, tr.Mat4())
}

func TestLoadScene(t *testing.T) {
	m, scheduler := newSimulation(testLogger(), nil, 0)
	defer scheduler.Close()

	// Three objects, six lights and the viewer.
	assert.Equal(t, 10, m.EntityCount())
	assert.Equal(t, len(lightColors), ecs.EntitiesWith[PointLight](m).Len())
	assert.Equal(t, 3, ecs.EntitiesWith[Model](m).Len())

	for e, light := range ecs.Each[PointLight](m) {
		assert.Equal(t, float32(0.2), light.Intensity)
		tr := ecs.Get[Transform](m, e)
		assert.Equal(t, float32(0.1), tr.Scale[0])
		assert.InDelta(t, -1, tr.Translation[1], 1e-6)
		assert.InDelta(t, 2, tr.Translation[0]*tr.Translation[0]+tr.Translation[2]*tr.Translation[2], 1e-5)
	}
}

func TestPointLightSystem(t *testing.T) {
	t.Run("fills the uniform block", func(t *testing.T) {
		m, scheduler := newSimulation(testLogger(), nil, 0)
		defer scheduler.Close()

		scheduler.Once(0)

		ubo := ecs.NewSingleton[GlobalUbo](m).Get()
		require.Equal(t, len(lightColors), ubo.NumLights)
		assert.Zero(t, ubo.DroppedLights)
		for i := 0; i < ubo.NumLights; i++ {
			assert.Equal(t, float32(1), ubo.PointLights[i].Position[3])
			assert.Equal(t, float32(0.2), ubo.PointLights[i].Color[3])
		}
		assert.Equal(t, [4]float32{1, 1, 1, .02}, ubo.AmbientLightColor)
	})

	t.Run("orbits lights with the frame time", func(t *testing.T) {
		m, scheduler := newSimulation(testLogger(), nil, 0)
		defer scheduler.Close()

		var first ecs.Entity
		for e := range ecs.Each[PointLight](m) {
			first = e
			break
		}
		start := ecs.Get[Transform](m, first).Translation

		// 0.5 rad/s for pi seconds is a quarter turn.
		scheduler.Once(math.Pi)
		assertVecInDelta(t, start.RotateDownAxis(math.Pi/2), ecs.Get[Transform](m, first).Translation)
	})

	t.Run("caps the light count", func(t *testing.T) {
		m, scheduler := newSimulation(testLogger(), nil, 0)
		defer scheduler.Close()

		for i := 0; i < MaxLights; i++ {
			makePointLight(m, 1)
		}
		scheduler.Once(0)

		ubo := ecs.NewSingleton[GlobalUbo](m).Get()
		assert.Equal(t, MaxLights, ubo.NumLights)
		assert.Equal(t, len(lightColors), ubo.DroppedLights)
	})
}

func TestRenderSystems(t *testing.T) {
	m, scheduler := newSimulation(testLogger(), nil, 0)
	defer scheduler.Close()

	scheduler.Once(1.0 / 60)

	draws := ecs.NewSingleton[DrawList](m).Get()
	camera := ecs.NewSingleton[Camera](m).Get()
	assert.Equal(t, Vec3{0, 0, -2.5}, camera.Position)

	require.Len(t, draws.Meshes, 3)
	models := make([]string, 0, len(draws.Meshes))
	for _, d := range draws.Meshes {
		models = append(models, d.Model)
	}
	assert.ElementsMatch(t, []string{"models/flat_vase.obj", "models/smooth_vase.obj", "models/quad.obj"}, models)

	require.Len(t, draws.Lights, len(lightColors))
	for i := 1; i < len(draws.Lights); i++ {
		prev := camera.Position.Sub(draws.Lights[i-1].Position)
		cur := camera.Position.Sub(draws.Lights[i].Position)
		assert.GreaterOrEqual(t, prev.Dot(prev), cur.Dot(cur), "lights must be drawn far to near")
	}
	for _, d := range draws.Lights {
		assert.Equal(t, float32(0.1), d.Radius)
	}

	// Draw lists are rebuilt, not appended to.
	scheduler.Once(1.0 / 60)
	assert.Len(t, draws.Meshes, 3)
	assert.Len(t, draws.Lights, len(lightColors))
}

func TestMetricsSystemRecord(t *testing.T) {
	m := ecs.NewEntityManager()
	ecs.NewSingleton[FrameMetrics](m)
	s := &MetricsSystem{}
	s.Metrics.Init(m)

	s.record(0.010)
	s.record(0.030)

	metrics := s.Metrics.Get()
	assert.InDelta(t, 20, metrics.AvgFrameTime, 1e-4)
	assert.InDelta(t, 10, metrics.MinFrameTime, 1e-4)
	assert.InDelta(t, 30, metrics.MaxFrameTime, 1e-4)

	for i := 0; i < 100; i++ {
		s.record(0.016)
	}
	assert.Len(t, metrics.LastFrameSamples, 60)
}

func TestStatsHubStreamsSnapshots(t *testing.T) {
	hub := NewStatsHub(testLogger())
	defer hub.Close()

	server := httptest.NewServer(http.HandlerFunc(hub.Handler))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	m, scheduler := newSimulation(testLogger(), hub, 1)
	defer scheduler.Close()
	scheduler.Once(1.0 / 60)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var snapshot Snapshot
	require.NoError(t, conn.ReadJSON(&snapshot))
	assert.Equal(t, uint64(0), snapshot.Frame)
	assert.Equal(t, len(lightColors), snapshot.Lights)
	assert.Equal(t, 3, snapshot.MeshDraws)
	require.NotNil(t, snapshot.Manager)
	assert.Equal(t, m.EntityCount(), snapshot.Manager.EntityCount)

	conn.Close()
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestLoadConfig(t *testing.T) {
	log, _ := test.NewNullLogger()

	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig(log, nil)
		require.NoError(t, err)
		assert.Equal(t, 600, cfg.Frames)
		assert.Equal(t, 60, cfg.FrameRate)
		assert.Empty(t, cfg.StatsAddr)
	})

	t.Run("environment then flags", func(t *testing.T) {
		t.Setenv("SCENE_FRAMES", "10")
		t.Setenv("SCENE_STATS_ADDR", ":9000")
		t.Setenv("SCENE_LOG_LEVEL", "debug")

		cfg, err := loadConfig(log, []string{"-frames", "20"})
		require.NoError(t, err)
		assert.Equal(t, 20, cfg.Frames)
		assert.Equal(t, ":9000", cfg.StatsAddr)
		assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	})

	t.Run("rejects bad values", func(t *testing.T) {
		_, err := loadConfig(log, []string{"-fps", "0"})
		assert.Error(t, err)

		t.Setenv("SCENE_FRAMES", "many")
		_, err = loadConfig(log, nil)
		assert.ErrorContains(t, err, "SCENE_FRAMES")
	})
}
