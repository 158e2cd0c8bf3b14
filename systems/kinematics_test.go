package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/config"
)

func testPhysics(t *testing.T) config.PhysicsConfig {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg.Physics
}

func TestDisplacementNeverExceedsCap(t *testing.T) {
	p := testPhysics(t)

	velocities := []float64{0, p.JumpVelocity, -3, 4}
	for _, v := range velocities {
		for ticks := 0; ticks <= 500; ticks++ {
			d := Displacement(v, ticks, p)
			if d > p.MaxDisplacement {
				t.Fatalf("Displacement(%v, %d) = %v exceeds cap %v", v, ticks, d, p.MaxDisplacement)
			}
		}
	}
}

func TestAdvanceFreeFall(t *testing.T) {
	p := testPhysics(t)

	m := components.Motion{}
	pos := components.Position{X: 230, Y: 350}

	want := []float64{1.5, 6, 13.5, 16, 16, 16}
	for i, w := range want {
		d := Advance(&m, &pos, p)
		if math.Abs(d-w) > 1e-9 {
			t.Errorf("tick %d: d = %v, want %v", i+1, d, w)
		}
	}

	if math.Abs(pos.Y-(350+1.5+6+13.5+16*3)) > 1e-9 {
		t.Errorf("y = %v after free fall", pos.Y)
	}
}

func TestAdvanceAscentBoostAppliedOnce(t *testing.T) {
	p := testPhysics(t)

	m := components.Motion{}
	pos := components.Position{Y: 300}
	Jump(&m, &pos, p)

	// Raw displacement for the first ticks after a jump: -9, -15, -18, -18, -15, -9, 0, 12
	for tick := 1; tick <= 10; tick++ {
		raw := Displacement(m.Velocity, tick, p)
		before := pos.Y
		d := Advance(&m, &pos, p)

		want := raw
		if raw < 0 {
			want = raw - p.JumpBoost
		}
		if math.Abs(d-want) > 1e-9 {
			t.Errorf("tick %d: d = %v, want %v (raw %v)", tick, d, want, raw)
		}
		if math.Abs((pos.Y-before)-d) > 1e-9 {
			t.Errorf("tick %d: y moved %v, want %v", tick, pos.Y-before, d)
		}
	}
}

func TestJumpResetsState(t *testing.T) {
	p := testPhysics(t)

	m := components.Motion{TickCount: 12, Velocity: 0}
	pos := components.Position{Y: 412}
	Jump(&m, &pos, p)

	if m.TickCount != 0 {
		t.Errorf("TickCount = %d, want 0", m.TickCount)
	}
	if m.Velocity != p.JumpVelocity {
		t.Errorf("Velocity = %v, want %v", m.Velocity, p.JumpVelocity)
	}
	if m.Height != 412 {
		t.Errorf("Height = %v, want 412", m.Height)
	}
}

func TestTilt(t *testing.T) {
	p := testPhysics(t)

	t.Run("snaps up on ascent", func(t *testing.T) {
		m := components.Motion{Tilt: -60}
		pos := components.Position{Y: 300}
		Jump(&m, &pos, p)
		Advance(&m, &pos, p)
		if m.Tilt != p.MaxRotation {
			t.Errorf("tilt = %v, want %v", m.Tilt, p.MaxRotation)
		}
	})

	t.Run("decays toward nose dive", func(t *testing.T) {
		m := components.Motion{}
		pos := components.Position{Y: 0}
		for i := 0; i < 20; i++ {
			Advance(&m, &pos, p)
		}
		// 0 -> -20 -> ... -> -100, then held since tilt is no longer above -90
		if m.Tilt != -100 {
			t.Errorf("tilt = %v, want -100", m.Tilt)
		}
	})
}

func TestAnimateCycle(t *testing.T) {
	const animTime = 5
	b := components.Bird{}

	var frames []uint8
	for i := 0; i < 22; i++ {
		frames = append(frames, Animate(&b, 0, animTime))
	}

	want := []uint8{
		0, 0, 0, 0, // counts 1-4
		1, 1, 1, 1, 1, // 5-9
		2, 2, 2, 2, 2, // 10-14
		1, 1, 1, 1, 1, // 15-19
		1,    // 20 keeps previous pose
		0,    // 21 resets
		0,    // 1 again
	}
	for i := range want {
		if frames[i] != want[i] {
			t.Errorf("frame %d = %d, want %d (all: %v)", i, frames[i], want[i], frames)
			break
		}
	}
}

func TestAnimateNoseDive(t *testing.T) {
	b := components.Bird{}
	frame := Animate(&b, -90, 5)
	if frame != 1 {
		t.Errorf("nose-dive frame = %d, want 1", frame)
	}
	if b.AnimCount != 10 {
		t.Errorf("AnimCount = %d, want 10", b.AnimCount)
	}
}
