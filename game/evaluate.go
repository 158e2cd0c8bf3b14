package game

import (
	"context"
	"log/slog"

	"github.com/pthm-cable/flap/neural"
)

// ctxCheckInterval is how many ticks run between cancellation checks.
const ctxCheckInterval = 256

// Evaluate runs one generation headless, as fast as possible, and returns
// the fitness of each controller. It satisfies neural.Evaluator.
func (g *Game) Evaluate(ctx context.Context, generation int, controllers []neural.Controller) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.StartGeneration(generation, controllers)
	for g.Step() {
		if g.tick%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}

	return g.FinishGeneration(), nil
}

// FinishGeneration summarizes the ended generation and returns its fitness
// by controller index.
func (g *Game) FinishGeneration() []float64 {
	fitness := g.Fitness()
	g.lastStats = g.collector.Flush(int(g.tick), fitness)

	perf := g.perf.Stats()
	if err := g.output.WritePerf(perf, g.generation, g.tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
	if logWriter != nil {
		g.logPerfStats(perf)
	}

	return fitness
}
