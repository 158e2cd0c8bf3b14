// Package main tunes a hand-written linear jump policy with CMA-ES. The
// result is a scripted baseline to compare evolved controllers against.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/game"
)

// evalRow is one line of optimize_log.csv.
type evalRow struct {
	Eval       int     `csv:"eval"`
	Cost       float64 `csv:"cost"`
	Score      float64 `csv:"mean_score"`
	Bias       float64 `csv:"bias"`
	WY         float64 `csv:"w_y"`
	WGapTop    float64 `csv:"w_gap_top"`
	WGapBottom float64 `csv:"w_gap_bottom"`
}

// bestPolicy is written to best_policy.yaml.
type bestPolicy struct {
	Cost    float64            `yaml:"cost"`
	Weights map[string]float64 `yaml:"weights"`
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	assetsDir := flag.String("assets", "", "Sprite directory (empty = procedural sprites)")
	maxTicks := flag.Int("max-ticks", 5000, "Tick cap per run")
	seeds := flag.Int("seeds", 3, "Number of courses per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *maxTicks < 1 {
		log.Fatal("--max-ticks must be positive")
	}

	// Create output directory
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	assets, err := game.LoadAssets(*assetsDir)
	if err != nil {
		log.Fatalf("failed to load assets: %v", err)
	}

	params := NewParamVector()

	// Generate seeds for evaluation
	evalSeeds := make([]int64, *seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, *maxTicks, evalSeeds, baseCfg, assets)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	// Create optimization problem
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// Denormalize to get raw parameter values
			raw := params.Denormalize(x)
			return evaluator.Evaluate(raw)
		},
	}

	// CMA-ES settings
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0, // Sequential evaluation
	}

	popSize := *population
	if popSize == 0 {
		// Auto-size: 4 + 3n/2
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	logPath := filepath.Join(*outputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		log.Fatalf("failed to create log file: %v", err)
	}
	defer logFile.Close()

	// Track evaluations and timing
	evalCount := 0
	var bestCost float64 = 1e9
	var bestParams []float64
	startTime := time.Now()

	// Wrap the function to log evaluations
	originalFunc := problem.Func
	problem.Func = func(x []float64) float64 {
		cost := originalFunc(x)
		evalCount++

		// Clamped values are the ones the policy actually used
		clamped := params.Clamp(params.Denormalize(x))
		if cost < bestCost {
			bestCost = cost
			bestParams = clamped
		}

		row := []evalRow{{
			Eval:       evalCount,
			Cost:       cost,
			Score:      evaluator.LastScore(),
			Bias:       clamped[0],
			WY:         clamped[1],
			WGapTop:    clamped[2],
			WGapBottom: clamped[3],
		}}
		var werr error
		if evalCount == 1 {
			werr = gocsv.Marshal(row, logFile)
		} else {
			werr = gocsv.MarshalWithoutHeaders(row, logFile)
		}
		if werr != nil {
			log.Printf("failed to write log row: %v", werr)
		}

		elapsed := time.Since(startTime)
		avgPerEval := elapsed / time.Duration(evalCount)
		remaining := time.Duration(*maxEvals-evalCount) * avgPerEval

		fmt.Printf("Eval %d/%d: fitness=%.1f score=%.1f (best=%.1f) | elapsed: %s, ETA: %s\n",
			evalCount, *maxEvals, -cost, evaluator.LastScore(), -bestCost,
			formatDuration(elapsed), formatDuration(remaining))

		return cost
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		dim, popSize, *maxEvals)
	fmt.Printf("Courses per evaluation: %d, tick cap per run: %d\n", *seeds, *maxTicks)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	// Use best params found (may be from any evaluation, not just final)
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}

	totalTime := time.Since(startTime)
	fmt.Printf("\nOptimization complete after %d evaluations in %s\n", evalCount, formatDuration(totalTime))
	if bestParams == nil {
		log.Fatal("no evaluation completed")
	}
	fmt.Printf("Best fitness: %.1f\n", -bestCost)

	best := bestPolicy{Cost: bestCost, Weights: make(map[string]float64, dim)}
	fmt.Println("\nBest parameters:")
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %.6f\n", spec.Name, bestParams[i])
		best.Weights[spec.Name] = bestParams[i]
	}

	data, err := yaml.Marshal(best)
	if err != nil {
		log.Printf("failed to marshal best policy: %v", err)
		return
	}
	policyPath := filepath.Join(*outputDir, "best_policy.yaml")
	if err := os.WriteFile(policyPath, data, 0644); err != nil {
		log.Printf("failed to write best policy: %v", err)
		return
	}
	fmt.Printf("\nBest policy saved to: %s\n", policyPath)
}
