package neural

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/yaricom/goNEAT/v4/neat"
	"github.com/yaricom/goNEAT/v4/neat/genetics"
)

// Evaluator runs one generation of controllers and returns one fitness per
// controller, in the same order.
type Evaluator func(ctx context.Context, generation int, controllers []Controller) ([]float64, error)

// GenerationResult summarizes one evaluated generation.
type GenerationResult struct {
	Generation  int
	Fitness     []float64
	BestFitness float64
	BestGenome  *genetics.Genome
	Species     int
	Solved      bool
}

// RunResult is the outcome of an evolution run.
type RunResult struct {
	Generations int
	BestFitness float64
	Best        *genetics.Genome
	Solved      bool
}

// EvolverConfig holds the run settings the NEAT options do not cover.
type EvolverConfig struct {
	NumGenerations     int
	FitnessThreshold   float64
	InitialWeightRange float64
	Seed               int64
}

// Evolver drives a goNEAT population: every generation it hands one
// controller per organism to the evaluator and feeds the fitness back.
type Evolver struct {
	opts       *neat.Options
	cfg        EvolverConfig
	population *genetics.Population
	executor   genetics.PopulationEpochExecutor

	// OnGeneration, if set, is called after each generation is evaluated.
	OnGeneration func(GenerationResult)
}

// NewEvolver seeds a population from the starting genome.
func NewEvolver(opts *neat.Options, cfg EvolverConfig) (*Evolver, error) {
	if opts == nil {
		return nil, errors.New("nil NEAT options")
	}
	if cfg.NumGenerations < 1 {
		cfg.NumGenerations = opts.NumGenerations
	}
	if cfg.NumGenerations < 1 {
		return nil, fmt.Errorf("number of generations must be positive, got %d", cfg.NumGenerations)
	}
	if cfg.InitialWeightRange <= 0 {
		cfg.InitialWeightRange = 1.0
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	start := CreateFlapGenome(1, cfg.InitialWeightRange, rng)

	pop, err := genetics.NewPopulation(start, opts)
	if err != nil {
		return nil, fmt.Errorf("creating population: %w", err)
	}

	return &Evolver{
		opts:       opts,
		cfg:        cfg,
		population: pop,
		executor:   &genetics.SequentialPopulationEpochExecutor{},
	}, nil
}

// PopulationSize returns the number of organisms in the current generation.
func (e *Evolver) PopulationSize() int {
	return len(e.population.Organisms)
}

// Run evolves until a controller reaches the fitness threshold, the
// generation limit is hit or ctx is cancelled.
func (e *Evolver) Run(ctx context.Context, evaluate Evaluator) (*RunResult, error) {
	ctx = neat.NewContext(ctx, e.opts)
	result := &RunResult{}

	for gen := 1; gen <= e.cfg.NumGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		genResult, err := e.evaluateGeneration(ctx, gen, evaluate)
		if err != nil {
			return result, fmt.Errorf("generation %d: %w", gen, err)
		}

		result.Generations = gen
		if result.Best == nil || genResult.BestFitness > result.BestFitness {
			result.BestFitness = genResult.BestFitness
			result.Best = genResult.BestGenome
		}

		if e.OnGeneration != nil {
			e.OnGeneration(*genResult)
		}

		if genResult.Solved {
			result.Solved = true
			return result, nil
		}

		if gen == e.cfg.NumGenerations {
			break
		}
		if err := e.executor.NextEpoch(ctx, gen, e.population); err != nil {
			return result, fmt.Errorf("epoch %d: %w", gen, err)
		}
	}

	return result, nil
}

// evaluateGeneration builds controllers for the current organisms, runs the
// evaluator and writes fitness back onto the organisms.
func (e *Evolver) evaluateGeneration(ctx context.Context, gen int, evaluate Evaluator) (*GenerationResult, error) {
	orgs := e.population.Organisms
	controllers := make([]Controller, len(orgs))
	for i, org := range orgs {
		brain, err := NewBrainController(org.Genotype)
		if err != nil {
			return nil, fmt.Errorf("organism %d: %w", i, err)
		}
		controllers[i] = brain
	}

	fitness, err := evaluate(ctx, gen, controllers)
	if err != nil {
		return nil, err
	}
	if len(fitness) != len(orgs) {
		return nil, fmt.Errorf("evaluator returned %d fitness values for %d organisms", len(fitness), len(orgs))
	}

	res := &GenerationResult{
		Generation: gen,
		Fitness:    fitness,
		Species:    len(e.population.Species),
	}
	for i, org := range orgs {
		org.Fitness = fitness[i]
		if res.BestGenome == nil || fitness[i] > res.BestFitness {
			res.BestFitness = fitness[i]
			res.BestGenome = org.Genotype
		}
		if fitness[i] >= e.cfg.FitnessThreshold {
			org.IsWinner = true
			res.Solved = true
		}
	}

	return res, nil
}
