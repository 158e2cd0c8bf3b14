package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/flap/config"
)

const (
	testPipeWidth  = 104
	testPipeHeight = 640
)

func testCourse(t *testing.T, seed int64) (*Course, config.PipesConfig) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return NewCourse(cfg.Pipes, rand.New(rand.NewSource(seed)), testPipeWidth, testPipeHeight), cfg.Pipes
}

func TestSpawnGapExtents(t *testing.T) {
	c, cfg := testCourse(t, 7)

	for i := 0; i < 2000; i++ {
		p := c.Spawn(500)

		if p.Bottom-p.Height != cfg.Gap {
			t.Fatalf("pipe %d: bottom-height = %v, want %v", i, p.Bottom-p.Height, cfg.Gap)
		}
		if p.Height < float64(cfg.GapMin) || p.Height >= float64(cfg.GapMax) {
			t.Fatalf("pipe %d: height %v outside [%d, %d)", i, p.Height, cfg.GapMin, cfg.GapMax)
		}
		if p.Top != p.Height-testPipeHeight {
			t.Fatalf("pipe %d: top = %v, want %v", i, p.Top, p.Height-testPipeHeight)
		}
		if p.Passed {
			t.Fatalf("pipe %d: new pipe already passed", i)
		}
	}
}

func TestSpawnIsSeeded(t *testing.T) {
	a, _ := testCourse(t, 99)
	b, _ := testCourse(t, 99)

	for i := 0; i < 50; i++ {
		pa, pb := a.Spawn(0), b.Spawn(0)
		if pa.Height != pb.Height {
			t.Fatalf("spawn %d: heights differ with same seed: %v vs %v", i, pa.Height, pb.Height)
		}
	}
}

func TestAdvanceOnlyMovesX(t *testing.T) {
	c, cfg := testCourse(t, 1)
	c.Reset()

	before := c.Pipes[0]
	c.Advance(&c.Pipes[0])
	after := c.Pipes[0]

	if after.X != before.X-cfg.Velocity {
		t.Errorf("x = %v, want %v", after.X, before.X-cfg.Velocity)
	}
	if after.Height != before.Height || after.Top != before.Top || after.Bottom != before.Bottom {
		t.Error("gap changed while advancing")
	}
}

func TestOffScreen(t *testing.T) {
	c, _ := testCourse(t, 1)

	tests := []struct {
		x    float64
		want bool
	}{
		{0, false},
		{-testPipeWidth, false},
		{-testPipeWidth - 1, true},
		{300, false},
	}
	for _, tt := range tests {
		p := Pipe{X: tt.x}
		if got := c.OffScreen(&p); got != tt.want {
			t.Errorf("OffScreen(x=%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestRetirePreservesOrder(t *testing.T) {
	c, _ := testCourse(t, 1)
	for _, x := range []float64{10, 20, 30, 40} {
		c.Spawn(x)
	}

	c.Retire([]int{0, 2})

	if len(c.Pipes) != 2 {
		t.Fatalf("len = %d, want 2", len(c.Pipes))
	}
	if c.Pipes[0].X != 20 || c.Pipes[1].X != 40 {
		t.Errorf("remaining pipes = %v, %v; want 20, 40", c.Pipes[0].X, c.Pipes[1].X)
	}
}

func TestUpcoming(t *testing.T) {
	c, _ := testCourse(t, 1)
	c.Spawn(100)

	if got := c.Upcoming(230); got != 0 {
		t.Errorf("single pipe: Upcoming = %d, want 0", got)
	}

	c.Spawn(600)
	if got := c.Upcoming(230); got != 1 {
		t.Errorf("lead past first pipe: Upcoming = %d, want 1", got)
	}
	if got := c.Upcoming(204); got != 0 {
		t.Errorf("lead on first pipe edge: Upcoming = %d, want 0", got)
	}
}

func TestScrollMarksPassOnce(t *testing.T) {
	c, cfg := testCourse(t, 3)
	c.Spawn(229)

	if n := c.Scroll(230, true); n != 1 {
		t.Fatalf("first scroll passed %d pipes, want 1", n)
	}
	if len(c.Pipes) != 2 {
		t.Fatalf("len = %d, want 2 after spawning replacement", len(c.Pipes))
	}
	if c.Pipes[1].X != cfg.SpawnX {
		t.Errorf("replacement at x=%v, want %v", c.Pipes[1].X, cfg.SpawnX)
	}

	if n := c.Scroll(230, true); n != 0 {
		t.Errorf("second scroll passed %d pipes, want 0", n)
	}
}

func TestScrollWithoutAgentsDoesNotPass(t *testing.T) {
	c, _ := testCourse(t, 3)
	c.Spawn(100)

	if n := c.Scroll(230, false); n != 0 {
		t.Errorf("passed %d pipes with countPasses=false", n)
	}
	if c.Pipes[0].Passed {
		t.Error("pipe marked passed with countPasses=false")
	}
}

func TestScrollSteadyStateCount(t *testing.T) {
	c, _ := testCourse(t, 11)
	c.Reset()

	const leadX = 230
	counts := map[int]int{}
	passes := 0
	for tick := 0; tick < 20000; tick++ {
		passes += c.Scroll(leadX, true)
		n := len(c.Pipes)
		if n < 1 || n > 2 {
			t.Fatalf("tick %d: %d pipes on course", tick, n)
		}
		counts[n]++
	}

	if passes == 0 {
		t.Fatal("no pipes passed in 20000 ticks")
	}
	t.Logf("pipe count histogram %v over %d passes", counts, passes)
}

func TestGroundWraps(t *testing.T) {
	g := NewGround(730, 672, 5)

	for i := 0; i < 1000; i++ {
		g.Move()
		if g.X1 < -672 || g.X2 < -672 {
			t.Fatalf("tick %d: segment left the band: x1=%v x2=%v", i, g.X1, g.X2)
		}
		// The two segments always abut
		diff := g.X2 - g.X1
		if diff != 672 && diff != -672 {
			t.Fatalf("tick %d: segments not adjacent: x1=%v x2=%v", i, g.X1, g.X2)
		}
	}
}
