package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(lvl),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return config.Build()
}

func main() {
	configPath := flag.String("config", "", "Optional YAML file with the stress configuration.")
	duration := flag.Duration("duration", 0, "The total duration the test should run for.")
	roots := flag.Int("roots", 0, "The number of hierarchy roots to create.")
	easing := flag.String("easing", "", "The interpolation used by root tweens and moves.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	flag.Parse()

	logger, err := newLogger(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level: %v\n", err)
		os.Exit(2)
	}
	defer logger.Sync()

	cfg := DefaultConfig()
	if *configPath != "" {
		if cfg, err = LoadConfig(*configPath); err != nil {
			logger.Fatal("failed to load config", zap.Error(err))
		}
	}
	if *duration > 0 {
		cfg.Duration = *duration
	}
	if *roots > 0 {
		cfg.Roots = *roots
	}
	if *easing != "" {
		cfg.Easing = *easing
	}
	if *gcPauseMetrics {
		cfg.GCPauseMetrics = true
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	logger.Info("starting stress test",
		zap.Int("roots", cfg.Roots),
		zap.Int("entities", cfg.Entities()),
		zap.String("easing", cfg.Easing),
	)

	world, err := NewWorld(cfg, logger.Named("engine"))
	if err != nil {
		logger.Fatal("failed to populate engine", zap.Error(err))
	}
	logger.Info("population complete", zap.Int("entities", world.Engine.Count()))

	report := &Report{
		Config:   cfg,
		Entities: world.Engine.Count(),
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("running simulation", zap.Duration("duration", cfg.Duration))
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	startTime := time.Now()
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
			world.Step()
			world.Engine.Update(float32(deltaTime.Seconds()))
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.Engine = world.Engine.Stats()
	report.Moves = world.Moves
	report.Arrived = world.Arrived()
	report.Simulated = world.Simulated
	report.NearBoxes = world.Near()
	runtime.ReadMemStats(&report.MemStatsEnd)

	logger.Info("simulation finished", zap.Int64("updates", report.TotalUpdates))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}
