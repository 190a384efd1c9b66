package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/numevo/config"
	"github.com/pthm-cable/numevo/evolve"
	"github.com/pthm-cable/numevo/telemetry"
	"github.com/pthm-cable/numevo/viewer"
)

// recorderInterval is how often the telemetry recorder polls the history.
const recorderInterval = 100 * time.Millisecond

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output per-generation stats via slog")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxGenerations := flag.Int("max-generations", -1, "Stop after N generations (0 = unlimited, -1 = use config)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: %s [flags] [desired_number [population_size [cross_range [sleep]]]]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q\n", *logLevel)
		os.Exit(2)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if err := cfg.ApplyArgs(flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}
	if *maxGenerations >= 0 {
		cfg.Evolution.MaxGenerations = *maxGenerations
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	ev := cfg.Evolution
	evolver := evolve.New(evolve.Params{
		DesiredNumber:  ev.DesiredNumber,
		PopulationSize: ev.PopulationSize,
		MaxNumber:      ev.MaxNumber,
		CrossRange:     ev.CrossRange,
		Sleep:          cfg.Derived.Sleep,
		MaxGenerations: ev.MaxGenerations,
	}, rand.New(rand.NewSource(rngSeed)))

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	evolver.SetPhaseTimer(perf)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := telemetry.NewRecorder(evolver.History(), evolver.Desired(), output, perf, *logStats)
	recorderDone := make(chan struct{})
	go func() {
		defer close(recorderDone)
		recorder.Run(ctx, evolver.Done(), recorderInterval)
	}()

	slog.Info("starting evolution",
		"seed", rngSeed,
		"desired", evolver.Desired(),
		"population_size", evolver.PopulationSize(),
		"bit_width", evolver.BitWidth(),
		"pool_size", evolver.PoolSize(),
		"headless", *headless,
	)

	if *headless {
		if err := evolver.Run(ctx); err != nil {
			slog.Info("evolution interrupted", "reason", err)
		}
	} else {
		evolver.Start(ctx)
		viewer.New(cfg, evolver).Run()
		stop()
	}

	<-recorderDone
	last, ok := evolver.History().Last()
	slog.Info("finished",
		"generations", recorder.Seen(),
		"converged", evolver.Converged(),
		"best", last.Best,
		"has_best", ok,
	)
}
