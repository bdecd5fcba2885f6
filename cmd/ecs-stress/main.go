package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/jmge/ecs"
	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML file with the run configuration.")
	duration := flag.Duration("duration", 0, "The total duration the test should run for.")
	entityCount := flag.Int("entities", -1, "The initial number of entities to create.")
	churn := flag.Int("churn", -1, "Entities dropped and respawned every frame.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error).")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *duration > 0 {
		cfg.Duration = *duration
	}
	if *entityCount >= 0 {
		cfg.Entities = *entityCount
	}
	if *churn >= 0 {
		cfg.ChurnPerFrame = *churn
	}
	if *gcPauseMetrics {
		cfg.GCPauseMetrics = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Duration)
	defer cancel()

	report := run(ctx, cfg, logger)

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")

	logger.Info().Msg("stress test complete")
}

// run populates a World with generated components and systems, then runs
// frames until ctx is done. Each frame drops ChurnPerFrame random handles,
// spawns as many replacements and reclaims whatever the collector has
// already released.
func run(ctx context.Context, cfg Config, logger zerolog.Logger) *Report {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	w := ecs.NewWorld(ecs.WithLogger(logger))
	RegisterAllGeneratedComponents(w)
	RegisterAllGeneratedSystems(w)
	w.LogWorld(zerolog.DebugLevel)

	logger.Info().Int("entities", cfg.Entities).Msg("populating world")
	live := make([]ecs.Entity, 0, cfg.Entities)
	for range cfg.Entities {
		live = append(live, SpawnRandomEntity(w, rng, rng.IntN(cfg.MaxComponents)+1))
	}
	logger.Info().Msg("population complete")

	report := &Report{
		Duration:       cfg.Duration,
		Entities:       cfg.Entities,
		Components:     componentCount,
		Systems:        systemCount,
		ChurnPerFrame:  cfg.ChurnPerFrame,
		GCPauseMetrics: cfg.GCPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Dur("duration", cfg.Duration).Msg("running simulation")
	startTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			w.RunAll()
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

			live = churn(w, rng, live, cfg)

			reclaimStart := time.Now()
			report.Reclaimed += int64(w.Reclaim())
			report.ReclaimTime.Samples = append(report.ReclaimTime.Samples, time.Since(reclaimStart))

			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	report.ReclaimTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.World = *w.CollectStats()
	runtime.KeepAlive(live)

	logger.Info().
		Int64("updates", report.TotalUpdates).
		Int64("reclaimed", report.Reclaimed).
		Msg("simulation finished")
	return report
}

// churn drops n random handles and spawns n replacements. Dropped entities
// stay in the World until the collector notices and Reclaim runs.
func churn(w *ecs.World, rng *rand.Rand, live []ecs.Entity, cfg Config) []ecs.Entity {
	for range cfg.ChurnPerFrame {
		if len(live) == 0 {
			break
		}
		i := rng.IntN(len(live))
		last := len(live) - 1
		live[i] = live[last]
		live[last] = ecs.Entity{}
		live = live[:last]
	}
	for range cfg.ChurnPerFrame {
		live = append(live, SpawnRandomEntity(w, rng, rng.IntN(cfg.MaxComponents)+1))
	}
	return live
}
