package telemetry

// Collector accumulates events within one generation and produces GenerationStats.
type Collector struct {
	generation int
	population int

	// Event counters for the current generation
	collisions  int
	outOfBounds int
	passes      int

	// Sum of death ticks, averaged over Deaths on Flush
	deathTicks int64
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Begin resets the counters for a new generation of the given size.
func (c *Collector) Begin(generation, population int) {
	c.generation = generation
	c.population = population
	c.collisions = 0
	c.outOfBounds = 0
	c.passes = 0
	c.deathTicks = 0
}

// RecordCollision records an agent killed by a pipe.
func (c *Collector) RecordCollision() {
	c.collisions++
}

// RecordOutOfBounds records an agent that left the vertical play area.
func (c *Collector) RecordOutOfBounds() {
	c.outOfBounds++
}

// RecordDeathTick records the tick on which an agent died. Call it once per
// death alongside RecordCollision or RecordOutOfBounds.
func (c *Collector) RecordDeathTick(tick int32) {
	c.deathTicks += int64(tick)
}

// RecordPass records a pipe cleared by the flock.
func (c *Collector) RecordPass() {
	c.passes++
}

// Passes returns the number of pipes cleared so far this generation.
func (c *Collector) Passes() int {
	return c.passes
}

// Deaths returns the number of agents that died so far this generation.
func (c *Collector) Deaths() int {
	return c.collisions + c.outOfBounds
}

// Flush produces the GenerationStats for the finished generation.
// fitness holds the final fitness per agent; ticks is the generation length.
// Evolution fields (Species, BestNodes, BestLinks, Solved) are left for the
// caller to fill.
func (c *Collector) Flush(ticks int, fitness []float64) GenerationStats {
	summary := ComputeFitnessStats(fitness)

	survivors := c.population - c.Deaths()
	if survivors < 0 {
		survivors = 0
	}

	var meanDeathTick float64
	if deaths := c.Deaths(); deaths > 0 {
		meanDeathTick = float64(c.deathTicks) / float64(deaths)
	}

	return GenerationStats{
		Generation:    c.generation,
		Ticks:         ticks,
		Score:         c.passes,
		Population:    c.population,
		Collisions:    c.collisions,
		OutOfBounds:   c.outOfBounds,
		Survivors:     survivors,
		MeanDeathTick: meanDeathTick,
		BestFitness:   summary.Best,
		MeanFitness:   summary.Mean,
		StdFitness:    summary.Std,
		FitnessP10:    summary.P10,
		FitnessP50:    summary.P50,
		FitnessP90:    summary.P90,
	}
}
