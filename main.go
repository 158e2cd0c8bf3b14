package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/neural"
	"github.com/pthm-cable/flap/renderer"
	"github.com/pthm-cable/flap/telemetry"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	neatConfigPath := flag.String("neat-config", "", "Path to goNEAT options file (empty = use defaults)")
	assetsDir := flag.String("assets", "", "Sprite directory (empty = procedural sprites)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and winner genome")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	headless := flag.Bool("headless", false, "Run without graphics")
	replayPath := flag.String("replay", "", "Replay a saved genome instead of evolving")
	generations := flag.Int("generations", 0, "Number of generations (0 = use config)")
	maxTicks := flag.Int("max-ticks", -1, "Tick limit per generation (-1 = use config, 0 = unlimited)")
	logPerf := flag.Bool("log-perf", false, "Log tick timing breakdown after every generation")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *maxTicks >= 0 {
		cfg.Generation.MaxTicks = *maxTicks
	}
	if *generations > 0 {
		cfg.Evolution.NumGenerations = *generations
	}

	if *logPerf {
		game.SetLogWriter(os.Stderr)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	assets, err := game.LoadAssets(*assetsDir)
	if err != nil {
		slog.Error("failed to load assets", "dir", *assetsDir, "error", err)
		os.Exit(1)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *replayPath != "" {
		if err := replay(ctx, cfg, assets, *replayPath, rngSeed, *headless); err != nil {
			slog.Error("replay failed", "error", err)
			os.Exit(1)
		}
		return
	}

	opts, err := neural.LoadNEATOptions(*neatConfigPath)
	if err != nil {
		slog.Error("failed to load NEAT options", "error", err)
		os.Exit(1)
	}

	evolver, err := neural.NewEvolver(opts, neural.EvolverConfig{
		NumGenerations:     cfg.Evolution.NumGenerations,
		FitnessThreshold:   cfg.Evolution.FitnessThreshold,
		InitialWeightRange: cfg.Evolution.InitialWeightRange,
		Seed:               rngSeed,
	})
	if err != nil {
		slog.Error("failed to create evolver", "error", err)
		os.Exit(1)
	}

	g := game.NewGame(cfg, assets, game.Options{
		Seed:        rngSeed,
		StopFitness: cfg.Evolution.FitnessThreshold,
		Output:      output,
	})

	slog.Info("starting evolution",
		"seed", rngSeed,
		"population", evolver.PopulationSize(),
		"generations", cfg.Evolution.NumGenerations,
		"fitness_threshold", cfg.Evolution.FitnessThreshold,
		"headless", *headless,
	)

	var evaluate neural.Evaluator = g.Evaluate
	onGeneration := g.RecordGeneration

	if !*headless {
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Flap")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		view := renderer.NewView(g, evolver.PopulationSize(), rngSeed)
		defer view.Unload()

		evaluate = view.Evaluate
		onGeneration = func(r neural.GenerationResult) {
			g.RecordGeneration(r)
			view.Inspector().SetGenome(r.Generation, r.BestFitness, r.BestGenome)
		}
	}
	evolver.OnGeneration = onGeneration

	result, err := evolver.Run(ctx, evaluate)
	switch {
	case errors.Is(err, renderer.ErrWindowClosed):
		slog.Info("window closed", "generations", result.Generations)
	case errors.Is(err, context.Canceled):
		slog.Info("interrupted", "generations", result.Generations)
	case err != nil:
		slog.Error("evolution failed", "error", err)
		os.Exit(1)
	}

	slog.Info("evolution finished",
		"generations", result.Generations,
		"best_fitness", result.BestFitness,
		"solved", result.Solved,
	)

	if result.Best != nil {
		if err := output.WriteWinner(result.Best); err != nil {
			slog.Error("failed to write winner genome", "error", err)
		}
	}
}

// replay runs one generation with a single saved genome until it dies, the
// tick limit is hit or the window is closed.
func replay(ctx context.Context, cfg *config.Config, assets *game.Assets, path string, seed int64, headless bool) error {
	genome, err := neural.LoadGenome(path)
	if err != nil {
		return err
	}
	brain, err := neural.NewBrainController(genome)
	if err != nil {
		return err
	}

	opts := game.Options{Seed: seed}
	if headless && cfg.Generation.MaxTicks == 0 {
		// A perfect bird would otherwise fly forever
		opts.StopFitness = cfg.Evolution.FitnessThreshold
	}
	g := game.NewGame(cfg, assets, opts)

	controllers := []neural.Controller{brain}
	var fitness []float64
	if headless {
		fitness, err = g.Evaluate(ctx, 1, controllers)
	} else {
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Flap replay")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		view := renderer.NewView(g, 1, seed)
		defer view.Unload()

		fitness, err = view.Evaluate(ctx, 1, controllers)
	}
	if errors.Is(err, renderer.ErrWindowClosed) || errors.Is(err, context.Canceled) {
		slog.Info("replay stopped", "tick", g.Tick(), "score", g.Score())
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("replay finished",
		"genome", path,
		"ticks", g.Tick(),
		"score", g.Score(),
		"fitness", fitness[0],
	)
	return nil
}
