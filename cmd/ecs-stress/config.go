package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type config struct {
	Duration       time.Duration
	Entities       int
	ChurnPerFrame  int
	GCPauseMetrics bool
	Profile        bool
	LogLevel       logrus.Level
}

// loadConfig reads .env and the environment for defaults, then lets flags
// override them.
func loadConfig(log *logrus.Logger, args []string) (config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file, using environment and defaults")
	}

	cfg := config{
		Duration:      10 * time.Second,
		Entities:      10000,
		ChurnPerFrame: 16,
		LogLevel:      logrus.InfoLevel,
	}

	if v := os.Getenv("ECS_STRESS_DURATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("ECS_STRESS_DURATION: %w", err)
		}
		cfg.Duration = d
	}
	if v := os.Getenv("ECS_STRESS_ENTITIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("ECS_STRESS_ENTITIES: %w", err)
		}
		cfg.Entities = n
	}
	if v := os.Getenv("ECS_STRESS_LOG_LEVEL"); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("ECS_STRESS_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	fs := flag.NewFlagSet("ecs-stress", flag.ContinueOnError)
	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "The total duration the test should run for.")
	fs.IntVar(&cfg.Entities, "entities", cfg.Entities, "The initial number of entities to create.")
	fs.IntVar(&cfg.ChurnPerFrame, "churn", cfg.ChurnPerFrame, "Entities destroyed and recreated each frame.")
	fs.BoolVar(&cfg.GCPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	fs.BoolVar(&cfg.Profile, "profile", false, "Write a CPU profile to the working directory.")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.Entities < 0 || cfg.ChurnPerFrame < 0 {
		return cfg, fmt.Errorf("entities and churn must not be negative")
	}
	return cfg, nil
}
