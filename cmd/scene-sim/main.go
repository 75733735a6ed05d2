package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/plus3/packecs/ecs"
	"github.com/sirupsen/logrus"
)

// newSimulation builds the scene and registers its systems in frame order.
func newSimulation(log *logrus.Entry, hub *StatsHub, publishEvery int) (*ecs.EntityManager, *ecs.Scheduler) {
	m := ecs.NewEntityManager(ecs.WithLogger(log.WithField("component", "ecs")))
	registerComponents(m.Registry())

	ecs.NewSingleton(m, defaultUbo())
	ecs.NewSingleton(m, Camera{FovY: 50, Near: 0.1, Far: 100})
	ecs.NewSingleton[DrawList](m)
	ecs.NewSingleton[FrameMetrics](m)

	loadScene(m)

	scheduler := ecs.NewScheduler(m)
	scheduler.Register(&CameraSystem{})
	scheduler.Register(&PointLightSystem{})
	scheduler.Register(&SimpleRenderSystem{})
	scheduler.Register(&PointLightRenderSystem{})
	scheduler.Register(&MetricsSystem{Hub: hub, PublishEvery: uint64(publishEvery)})
	return m, scheduler
}

func main() {
	log := logrus.New()

	cfg, err := loadConfig(log, os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(cfg.LogLevel)
	if cfg.JSONLogs {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var hub *StatsHub
	if cfg.StatsAddr != "" {
		hub = NewStatsHub(log.WithField("component", "stats"))
		defer hub.Close()

		mux := http.NewServeMux()
		mux.HandleFunc("/stats", hub.Handler)
		server := &http.Server{
			Addr:        cfg.StatsAddr,
			Handler:     mux,
			ReadTimeout: 10 * time.Second,
		}
		go func() {
			log.WithField("addr", cfg.StatsAddr).Info("serving stats")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("stats server stopped")
			}
		}()
		defer server.Shutdown(context.Background())
	}

	m, scheduler := newSimulation(log.WithField("component", "scene"), hub, cfg.PublishEvery)
	defer scheduler.Close()

	log.WithFields(logrus.Fields{
		"entities": m.EntityCount(),
		"frames":   cfg.Frames,
		"fps":      cfg.FrameRate,
	}).Info("scene loaded")

	interval := time.Second / time.Duration(cfg.FrameRate)
	if cfg.Frames == 0 {
		scheduler.Run(ctx, interval)
	} else {
		dt := interval.Seconds()
		for i := 0; i < cfg.Frames && ctx.Err() == nil; i++ {
			scheduler.Once(dt)
		}
	}

	metrics := ecs.NewSingleton[FrameMetrics](m).Get()
	ubo := ecs.NewSingleton[GlobalUbo](m).Get()
	log.WithFields(logrus.Fields{
		"frames":         scheduler.GetStats().Frames,
		"lights":         ubo.NumLights,
		"avgFrameTimeMs": metrics.AvgFrameTime,
	}).Info("simulation finished")
}
