// Package game runs Flappy-Bird generations: a flock of birds, one per
// controller, flies through a scrolling pipe course until every bird is dead.
package game

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/neural"
	"github.com/pthm-cable/flap/systems"
	"github.com/pthm-cable/flap/telemetry"
)

// DeathCause tells why a bird died.
type DeathCause uint8

const (
	DeathCollision DeathCause = iota
	DeathOutOfBounds
)

func (c DeathCause) String() string {
	if c == DeathCollision {
		return "collision"
	}
	return "out_of_bounds"
}

// Options holds game construction parameters.
type Options struct {
	Seed int64

	// StopFitness ends a generation once any live bird reaches it (0 = never).
	StopFitness float64

	// Output receives per-generation and perf records; nil disables it.
	Output *telemetry.OutputManager
}

// Game holds the state of the current generation.
type Game struct {
	cfg    *config.Config
	assets *Assets
	opts   Options
	rng    *rand.Rand

	world      *ecs.World
	birdMapper *ecs.Map3[components.Position, components.Motion, components.Bird]
	birdFilter *ecs.Filter3[components.Position, components.Motion, components.Bird]

	controllers []neural.Controller
	fitness     []float64 // final fitness of dead birds, by controller index

	course *systems.Course
	ground *systems.Ground

	birdW, birdH int

	// State
	generation int
	tick       int32
	score      int
	alive      int
	stopped    bool // a bird reached StopFitness
	lastStats  telemetry.GenerationStats

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	// OnDeath, if set, is called once for every bird that dies.
	OnDeath func(x, y float64, cause DeathCause)
}

// NewGame creates a game. A nil assets bundle uses DefaultAssets.
func NewGame(cfg *config.Config, assets *Assets, opts Options) *Game {
	if assets == nil {
		assets = DefaultAssets()
	}
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:        cfg,
		assets:     assets,
		opts:       opts,
		rng:        rng,
		world:      world,
		birdMapper: ecs.NewMap3[components.Position, components.Motion, components.Bird](world),
		birdFilter: ecs.NewFilter3[components.Position, components.Motion, components.Bird](world),
		course:     systems.NewCourse(cfg.Pipes, rng, assets.Pipe.Width(), assets.Pipe.Height()),
		ground:     systems.NewGround(cfg.Ground.Y, assets.Base.Width(), cfg.Ground.Velocity),
		collector:  telemetry.NewCollector(),
		perf:       telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:     opts.Output,
	}
	g.birdW, g.birdH = assets.BirdSize()

	return g
}

// StartGeneration clears the previous generation and spawns one bird per controller.
func (g *Game) StartGeneration(generation int, controllers []neural.Controller) {
	g.removeAllBirds()

	g.generation = generation
	g.controllers = controllers
	g.fitness = make([]float64, len(controllers))
	g.tick = 0
	g.score = 0
	g.alive = 0
	g.stopped = false

	for i := range controllers {
		pos := components.Position{X: g.cfg.Bird.StartX, Y: g.cfg.Bird.StartY}
		motion := components.Motion{Height: g.cfg.Bird.StartY}
		bird := components.Bird{Index: i, Alive: true}
		g.birdMapper.NewEntity(&pos, &motion, &bird)
		g.alive++
	}

	g.course.Reset()
	g.ground = systems.NewGround(g.cfg.Ground.Y, g.assets.Base.Width(), g.cfg.Ground.Velocity)
	g.collector.Begin(generation, len(controllers))
}

func (g *Game) removeAllBirds() {
	var all []ecs.Entity
	query := g.birdFilter.Query()
	for query.Next() {
		all = append(all, query.Entity())
	}
	for _, e := range all {
		g.world.RemoveEntity(e)
	}
}

// Done reports whether the current generation has ended.
func (g *Game) Done() bool {
	if g.alive == 0 || g.stopped {
		return true
	}
	if maxTicks := g.cfg.Generation.MaxTicks; maxTicks > 0 && int(g.tick) >= maxTicks {
		return true
	}
	return false
}

// Fitness returns the fitness of every bird, by controller index.
// Birds still alive report their current fitness.
func (g *Game) Fitness() []float64 {
	out := make([]float64, len(g.fitness))
	copy(out, g.fitness)

	query := g.birdFilter.Query()
	for query.Next() {
		_, _, bird := query.Get()
		out[bird.Index] = bird.Fitness
	}
	return out
}

// EachBird calls fn for every bird still in the world.
func (g *Game) EachBird(fn func(pos *components.Position, motion *components.Motion, bird *components.Bird)) {
	query := g.birdFilter.Query()
	for query.Next() {
		fn(query.Get())
	}
}

// Config returns the game configuration.
func (g *Game) Config() *config.Config { return g.cfg }

// Assets returns the sprite bundle.
func (g *Game) Assets() *Assets { return g.assets }

// Pipes returns the active pipes, oldest first.
func (g *Game) Pipes() []systems.Pipe { return g.course.Pipes }

// Ground returns the scrolling ground band.
func (g *Game) Ground() *systems.Ground { return g.ground }

// Generation returns the current generation number.
func (g *Game) Generation() int { return g.generation }

// Tick returns the current tick within the generation.
func (g *Game) Tick() int32 { return g.tick }

// Score returns the number of pipes cleared this generation.
func (g *Game) Score() int { return g.score }

// Alive returns the number of live birds.
func (g *Game) Alive() int { return g.alive }

// Population returns the number of birds the generation started with.
func (g *Game) Population() int { return len(g.controllers) }

// LastStats returns the summary of the most recently finished generation.
func (g *Game) LastStats() telemetry.GenerationStats { return g.lastStats }

// Perf returns the tick performance collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }
