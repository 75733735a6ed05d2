package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type config struct {
	Frames       int
	FrameRate    int
	StatsAddr    string
	PublishEvery int
	JSONLogs     bool
	LogLevel     logrus.Level
}

// loadConfig reads .env and the environment for defaults, then lets flags
// override them. Frames of zero runs until interrupted.
func loadConfig(log *logrus.Logger, args []string) (config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file, using environment and defaults")
	}

	cfg := config{
		Frames:       600,
		FrameRate:    60,
		PublishEvery: 30,
		LogLevel:     logrus.InfoLevel,
	}

	for name, dst := range map[string]*int{
		"SCENE_FRAMES":        &cfg.Frames,
		"SCENE_FRAME_RATE":    &cfg.FrameRate,
		"SCENE_PUBLISH_EVERY": &cfg.PublishEvery,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
	}
	cfg.StatsAddr = os.Getenv("SCENE_STATS_ADDR")
	cfg.JSONLogs = os.Getenv("SCENE_LOG_FORMAT") == "json"
	if v := os.Getenv("SCENE_LOG_LEVEL"); v != "" {
		level, err := logrus.ParseLevel(v)
		if err != nil {
			return cfg, fmt.Errorf("SCENE_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = level
	}

	fs := flag.NewFlagSet("scene-sim", flag.ContinueOnError)
	fs.IntVar(&cfg.Frames, "frames", cfg.Frames, "Frames to simulate, 0 to run until interrupted.")
	fs.IntVar(&cfg.FrameRate, "fps", cfg.FrameRate, "Target frames per second.")
	fs.StringVar(&cfg.StatsAddr, "stats-addr", cfg.StatsAddr, "Address serving the /stats websocket, empty to disable.")
	fs.IntVar(&cfg.PublishEvery, "publish-every", cfg.PublishEvery, "Frames between stats snapshots.")
	fs.BoolVar(&cfg.JSONLogs, "json-logs", cfg.JSONLogs, "Log as JSON.")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.Frames < 0 || cfg.PublishEvery < 0 {
		return cfg, fmt.Errorf("frames and publish-every must not be negative")
	}
	if cfg.FrameRate <= 0 {
		return cfg, fmt.Errorf("fps must be positive")
	}
	return cfg, nil
}
