package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds aggregated statistics for one evaluated generation.
type GenerationStats struct {
	Generation int `csv:"generation"`
	Ticks      int `csv:"ticks"`
	Score      int `csv:"score"`
	Population int `csv:"population"`

	// Causes of death during the generation
	Collisions  int `csv:"collisions"`
	OutOfBounds int `csv:"out_of_bounds"`
	Survivors   int `csv:"survivors"`

	// Mean tick of death over birds that died, 0 when none did
	MeanDeathTick float64 `csv:"mean_death_tick"`

	// Fitness distribution
	BestFitness float64 `csv:"best_fitness"`
	MeanFitness float64 `csv:"mean_fitness"`
	StdFitness  float64 `csv:"std_fitness"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`

	// Evolution state after evaluation
	Species   int  `csv:"species"`
	BestNodes int  `csv:"best_nodes"`
	BestLinks int  `csv:"best_links"`
	Solved    bool `csv:"solved"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// FitnessSummary is the distribution of a generation's fitness values.
type FitnessSummary struct {
	Best, Mean, Std float64
	P10, P50, P90   float64
}

// ComputeFitnessStats summarizes fitness values. Std is the population
// standard deviation. An empty slice yields all zeros.
func ComputeFitnessStats(values []float64) FitnessSummary {
	if len(values) == 0 {
		return FitnessSummary{}
	}

	mean, std := stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return FitnessSummary{
		Best: floats.Max(values),
		Mean: mean,
		Std:  std,
		P10:  Percentile(sorted, 0.10),
		P50:  Percentile(sorted, 0.50),
		P90:  Percentile(sorted, 0.90),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("ticks", s.Ticks),
		slog.Int("score", s.Score),
		slog.Int("population", s.Population),
		slog.Int("collisions", s.Collisions),
		slog.Int("out_of_bounds", s.OutOfBounds),
		slog.Int("survivors", s.Survivors),
		slog.Float64("mean_death_tick", s.MeanDeathTick),
		slog.Float64("best_fitness", s.BestFitness),
		slog.Float64("mean_fitness", s.MeanFitness),
		slog.Float64("std_fitness", s.StdFitness),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Int("species", s.Species),
		slog.Bool("solved", s.Solved),
	)
}

// LogStats logs the generation summary using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"generation", s.Generation,
		"ticks", s.Ticks,
		"score", s.Score,
		"best_fitness", s.BestFitness,
		"mean_fitness", s.MeanFitness,
		"fitness_p90", s.FitnessP90,
		"collisions", s.Collisions,
		"out_of_bounds", s.OutOfBounds,
		"mean_death_tick", s.MeanDeathTick,
		"species", s.Species,
		"best_nodes", s.BestNodes,
		"best_links", s.BestLinks,
		"solved", s.Solved,
	)
}
