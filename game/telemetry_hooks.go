package game

import (
	"log/slog"

	"github.com/pthm-cable/flap/neural"
)

// RecordGeneration completes the last generation's stats with the evolution
// results, logs them and writes them to the output directory.
func (g *Game) RecordGeneration(r neural.GenerationResult) {
	stats := g.lastStats
	stats.Species = r.Species
	stats.Solved = r.Solved
	if r.BestGenome != nil {
		stats.BestNodes = len(r.BestGenome.Nodes)
		stats.BestLinks = len(r.BestGenome.Genes)
	}
	g.lastStats = stats

	if r.Generation%g.cfg.Telemetry.LogEvery == 0 || r.Solved {
		stats.LogStats()
	}

	if err := g.output.WriteGeneration(stats); err != nil {
		slog.Error("failed to write generation stats", "generation", r.Generation, "error", err)
	}
}
