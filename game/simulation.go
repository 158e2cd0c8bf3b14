package game

import (
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/neural"
	"github.com/pthm-cable/flap/systems"
	"github.com/pthm-cable/flap/telemetry"
)

// Step advances the generation by one tick and reports whether it is still
// running. Once the generation is over Step does nothing.
func (g *Game) Step() bool {
	if g.Done() {
		return false
	}

	g.perf.StartTick()
	g.tick++

	// 1. Kinematics, survival reward and controller decisions
	g.perf.StartPhase(telemetry.PhaseControllers)
	g.updateBirds()

	// 2. Pipe collisions (flag only)
	g.perf.StartPhase(telemetry.PhaseCollision)
	g.updateCollisions()

	// 3. Pass detection, scrolling, retiring and spawning pipes
	g.perf.StartPhase(telemetry.PhasePipes)
	g.updatePipes()

	// 4. Ceiling and ground
	g.perf.StartPhase(telemetry.PhaseBounds)
	g.updateBounds()

	// 5. Ground scroll and wing animation
	g.perf.StartPhase(telemetry.PhaseScroll)
	g.updateScroll()

	// 6. Remove dead birds after all passes
	g.perf.StartPhase(telemetry.PhaseCleanup)
	g.cleanupDead()

	g.perf.EndTick()

	return !g.Done()
}

// target returns the pipe the birds observe this tick.
func (g *Game) target() systems.Pipe {
	if len(g.course.Pipes) == 0 {
		g.course.Spawn(g.cfg.Pipes.SpawnX)
	}
	return g.course.Pipes[g.course.Upcoming(g.cfg.Bird.StartX)]
}

// updateBirds moves every live bird, rewards it for surviving and lets its
// controller decide whether to jump.
func (g *Game) updateBirds() {
	phys := g.cfg.Physics
	pipe := g.target()

	query := g.birdFilter.Query()
	for query.Next() {
		pos, motion, bird := query.Get()
		if !bird.Alive {
			continue
		}

		systems.Advance(motion, pos, phys)
		g.reward(bird, g.cfg.Fitness.SurvivalReward)

		obs := neural.Observation{
			Y:         pos.Y,
			GapTop:    math.Abs(pos.Y - pipe.Height),
			GapBottom: math.Abs(pos.Y - pipe.Bottom),
		}
		out, err := g.controllers[bird.Index].Decide(obs)
		if err != nil {
			slog.Warn("controller failed, not jumping",
				"generation", g.generation, "tick", g.tick, "bird", bird.Index, "error", err)
			continue
		}
		if out > g.cfg.Controller.JumpThreshold {
			systems.Jump(motion, pos, phys)
		}
	}
}

// updateCollisions tests every live bird against every pipe. A bird dies on
// its first contact and pays the collision penalty once.
func (g *Game) updateCollisions() {
	pipes := g.course.Pipes

	query := g.birdFilter.Query()
	for query.Next() {
		pos, _, bird := query.Get()
		if !bird.Alive {
			continue
		}

		mask := g.assets.Birds[bird.Frame].Mask
		bx := int(math.RoundToEven(pos.X))
		by := int(math.RoundToEven(pos.Y))

		for i := range pipes {
			if g.collides(mask, bx, by, &pipes[i]) {
				bird.Fitness += g.cfg.Fitness.CollisionPenalty
				g.kill(pos, bird, DeathCollision)
				break
			}
		}
	}
}

// collides reports whether a bird mask drawn at (bx, by) overlaps either half of p.
func (g *Game) collides(bird *systems.Mask, bx, by int, p *systems.Pipe) bool {
	dx := int(math.RoundToEven(p.X)) - bx
	if bird.Overlaps(g.assets.PipeTop.Mask, dx, int(math.RoundToEven(p.Top))-by) {
		return true
	}
	return bird.Overlaps(g.assets.Pipe.Mask, dx, int(math.RoundToEven(p.Bottom))-by)
}

// updatePipes scrolls the course. Every newly passed pipe scores one point
// and rewards each bird still alive.
func (g *Game) updatePipes() {
	passed := g.course.Scroll(g.cfg.Bird.StartX, g.alive > 0)
	if passed == 0 {
		return
	}

	g.score += passed
	for i := 0; i < passed; i++ {
		g.collector.RecordPass()
	}

	bonus := g.cfg.Fitness.PassReward * float64(passed)
	query := g.birdFilter.Query()
	for query.Next() {
		_, _, bird := query.Get()
		if bird.Alive {
			g.reward(bird, bonus)
		}
	}
}

// updateBounds kills birds that touch the ground or leave through the top.
func (g *Game) updateBounds() {
	floor := g.cfg.Ground.Y
	h := float64(g.birdH)

	query := g.birdFilter.Query()
	for query.Next() {
		pos, _, bird := query.Get()
		if !bird.Alive {
			continue
		}
		if pos.Y+h >= floor || pos.Y < 0 {
			g.kill(pos, bird, DeathOutOfBounds)
		}
	}
}

// updateScroll moves the ground and advances wing animation.
func (g *Game) updateScroll() {
	g.ground.Move()

	animTime := g.cfg.Bird.AnimationTime
	query := g.birdFilter.Query()
	for query.Next() {
		_, motion, bird := query.Get()
		if bird.Alive {
			systems.Animate(bird, motion.Tilt, animTime)
		}
	}
}

// cleanupDead records the final fitness of dead birds and removes them.
func (g *Game) cleanupDead() {
	// First pass: collect dead entities (must complete before modifying)
	var toRemove []ecs.Entity

	query := g.birdFilter.Query()
	for query.Next() {
		_, _, bird := query.Get()
		if !bird.Alive {
			g.fitness[bird.Index] = bird.Fitness
			toRemove = append(toRemove, query.Entity())
		}
	}

	// Second pass: remove entities (query iteration complete)
	for _, e := range toRemove {
		g.world.RemoveEntity(e)
	}
}

func (g *Game) reward(bird *components.Bird, amount float64) {
	bird.Fitness += amount
	if g.opts.StopFitness > 0 && bird.Fitness >= g.opts.StopFitness {
		g.stopped = true
	}
}

func (g *Game) kill(pos *components.Position, bird *components.Bird, cause DeathCause) {
	bird.Alive = false
	bird.DiedAt = g.tick
	g.alive--

	if cause == DeathCollision {
		g.collector.RecordCollision()
	} else {
		g.collector.RecordOutOfBounds()
	}
	g.collector.RecordDeathTick(bird.DiedAt)

	if g.OnDeath != nil {
		g.OnDeath(pos.X, pos.Y, cause)
	}
}
