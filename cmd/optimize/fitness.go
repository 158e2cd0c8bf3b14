package main

import (
	"context"
	"math"
	"sync"

	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/neural"
)

// FitnessEvaluator flies the policy headless over several courses and
// scores it.
type FitnessEvaluator struct {
	params *ParamVector
	seeds  []int64
	cfg    *config.Config
	assets *game.Assets

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	lastScore   float64 // mean pipes cleared in the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Every run stops at maxTicks.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config, assets *game.Assets) *FitnessEvaluator {
	cfg := *baseCfg
	cfg.Generation.MaxTicks = maxTicks

	return &FitnessEvaluator{
		params:      params,
		seeds:       seeds,
		cfg:         &cfg,
		assets:      assets,
		bestFitness: math.Inf(1),
	}
}

// LastScore returns the mean score from the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	score   int
	err     error
}

// Evaluate computes the cost of a parameter vector (lower = better): the
// negated mean bird fitness across all seeds.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	policy := fe.params.Policy(fe.params.Clamp(x))

	// Run all seeds in parallel; every run owns its game
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(policy, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalScore float64
	for _, r := range results {
		if r.err != nil {
			return math.Inf(1)
		}
		totalFitness += r.fitness
		totalScore += float64(r.score)
	}

	n := float64(len(fe.seeds))
	cost := -totalFitness / n

	fe.mu.Lock()
	if cost < fe.bestFitness {
		fe.bestFitness = cost
	}
	fe.lastScore = totalScore / n
	fe.mu.Unlock()

	return cost
}

// runSimulation flies one bird on the course generated by seed.
func (fe *FitnessEvaluator) runSimulation(policy neural.Controller, seed int64) seedResult {
	g := game.NewGame(fe.cfg, fe.assets, game.Options{Seed: seed})

	fitness, err := g.Evaluate(context.Background(), 1, []neural.Controller{policy})
	if err != nil {
		return seedResult{err: err}
	}
	return seedResult{fitness: fitness[0], score: g.Score()}
}
