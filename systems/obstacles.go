package systems

import (
	"math/rand"

	"github.com/pthm-cable/flap/config"
)

// Pipe is a pair of pipes with a fixed-size gap between them.
// Height, Top and Bottom never change after creation; only X and Passed do.
type Pipe struct {
	X      float64
	Height float64 // Y of the gap's upper edge
	Top    float64 // Y of the flipped top pipe sprite origin
	Bottom float64 // Y of the bottom pipe sprite origin (lower gap edge)
	Passed bool
}

// Course is the ordered sequence of active pipes, oldest first.
type Course struct {
	Pipes []Pipe

	cfg        config.PipesConfig
	rng        *rand.Rand
	pipeWidth  float64
	pipeHeight float64
}

// NewCourse creates an empty course. pipeWidth and pipeHeight are the
// dimensions of the pipe sprite.
func NewCourse(cfg config.PipesConfig, rng *rand.Rand, pipeWidth, pipeHeight int) *Course {
	return &Course{
		Pipes:      make([]Pipe, 0, 4),
		cfg:        cfg,
		rng:        rng,
		pipeWidth:  float64(pipeWidth),
		pipeHeight: float64(pipeHeight),
	}
}

// Spawn appends a pipe at x with a gap drawn uniformly from [gap_min, gap_max).
func (c *Course) Spawn(x float64) *Pipe {
	height := float64(c.cfg.GapMin + c.rng.Intn(c.cfg.GapMax-c.cfg.GapMin))
	c.Pipes = append(c.Pipes, Pipe{
		X:      x,
		Height: height,
		Top:    height - c.pipeHeight,
		Bottom: height + c.cfg.Gap,
	})
	return &c.Pipes[len(c.Pipes)-1]
}

// Reset clears the course and spawns the first pipe.
func (c *Course) Reset() {
	c.Pipes = c.Pipes[:0]
	c.Spawn(c.cfg.FirstX)
}

// Advance moves a single pipe left by the configured velocity.
func (c *Course) Advance(p *Pipe) {
	p.X -= c.cfg.Velocity
}

// OffScreen reports whether the pipe's trailing edge has left the visible area.
func (c *Course) OffScreen(p *Pipe) bool {
	return p.X+c.pipeWidth < 0
}

// Retire removes the pipes at the given indices, preserving order.
// Indices must be ascending.
func (c *Course) Retire(indices []int) {
	if len(indices) == 0 {
		return
	}
	kept := c.Pipes[:0]
	next := 0
	for i, p := range c.Pipes {
		if next < len(indices) && indices[next] == i {
			next++
			continue
		}
		kept = append(kept, p)
	}
	c.Pipes = kept
}

// Scroll does the per-tick pipe bookkeeping in order: pipes the lead agent
// has cleared are marked passed (when countPasses is set), pipes whose
// trailing edge left the screen are retired, every pipe moves left and one
// replacement is spawned at spawn_x per newly passed pipe.
// It returns the number of newly passed pipes.
func (c *Course) Scroll(leadX float64, countPasses bool) int {
	passed := 0
	var retire []int
	for i := range c.Pipes {
		p := &c.Pipes[i]
		if countPasses && !p.Passed && p.X < leadX {
			p.Passed = true
			passed++
		}
		if c.OffScreen(p) {
			retire = append(retire, i)
		}
		c.Advance(p)
	}

	c.Retire(retire)
	for i := 0; i < passed; i++ {
		c.Spawn(c.cfg.SpawnX)
	}
	return passed
}

// Upcoming returns the index of the pipe the agents should steer for: the
// second pipe once the lead agent has cleared the first pipe's trailing edge.
func (c *Course) Upcoming(leadX float64) int {
	if len(c.Pipes) > 1 && leadX > c.Pipes[0].X+c.pipeWidth {
		return 1
	}
	return 0
}

// Width returns the pipe sprite width.
func (c *Course) Width() float64 {
	return c.pipeWidth
}
