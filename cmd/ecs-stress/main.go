package main

//go:generate go run ./gen -components 12 -systems 4 -out generated.go

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/packecs/ecs"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()

	cfg, err := loadConfig(log, os.Args[1:])
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	log.SetLevel(cfg.LogLevel)

	if cfg.Profile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	log.Info("Starting ECS stress test...")

	// 1. Setup manager and scheduler
	m := ecs.NewEntityManager(
		ecs.WithLogger(log.WithField("component", "ecs")),
		ecs.WithEntityCapacity(cfg.Entities),
	)
	RegisterAllGeneratedComponents(m.Registry())
	scheduler := ecs.NewScheduler(m)
	RegisterAllGeneratedSystems(scheduler)
	scheduler.Register(&ChurnSystem{PerTick: cfg.ChurnPerFrame})
	defer scheduler.Close()

	// 2. Populate with initial entities
	log.WithField("entities", cfg.Entities).Info("Populating manager...")
	for i := 0; i < cfg.Entities; i++ {
		// Spawn an entity with 1 to 5 random components
		SpawnRandomEntity(m, rand.IntN(5)+1)
	}
	log.Info("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       cfg.Duration,
		Entities:       cfg.Entities,
		Churn:          cfg.ChurnPerFrame,
		Components:     componentCount,
		Systems:        systemCount,
		GCPauseMetrics: cfg.GCPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.WithField("duration", cfg.Duration).Info("Running simulation...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Manager = m.CollectStats()
	report.SlowestSystems = slowestSystems(scheduler.GetStats(), 5)
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.WithFields(logrus.Fields{
		"updates":  totalUpdates,
		"entities": report.Manager.EntityCount,
	}).Info("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.WithError(err).Fatal("Failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}
