// Package systems contains the per-tick simulation systems: bird kinematics,
// pipe generation, the scrolling ground and pixel-mask collision.
package systems

import (
	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/config"
)

// Displacement returns the vertical displacement for the given tick count
// since the last jump, before any ascent boost is applied.
// d = v*t + g*t², capped at the maximum downward displacement.
func Displacement(velocity float64, ticks int, p config.PhysicsConfig) float64 {
	t := float64(ticks)
	d := velocity*t + p.Gravity*t*t
	if d >= p.MaxDisplacement {
		d = p.MaxDisplacement
	}
	return d
}

// Advance moves a bird one tick and returns the displacement applied.
func Advance(m *components.Motion, pos *components.Position, p config.PhysicsConfig) float64 {
	m.TickCount++

	d := Displacement(m.Velocity, m.TickCount, p)
	if d < 0 {
		d -= p.JumpBoost
	}

	pos.Y += d

	if d < 0 {
		if m.Tilt < p.MaxRotation {
			m.Tilt = p.MaxRotation
		}
	} else if m.Tilt > p.MinTilt {
		m.Tilt -= p.RotationVelocity
	}

	return d
}

// Jump resets the bird's kinematics to a fresh upward launch from its current height.
func Jump(m *components.Motion, pos *components.Position, p config.PhysicsConfig) {
	m.Velocity = p.JumpVelocity
	m.TickCount = 0
	m.Height = pos.Y
}

// NoseDiveTilt is the tilt at or below which the wings stop flapping.
const NoseDiveTilt = -80

// Animate advances the wing animation by one tick and returns the pose to draw.
// The cycle is 0,1,2,1 with animTime ticks per pose; a nose-diving bird holds pose 1.
func Animate(b *components.Bird, tilt float64, animTime int) uint8 {
	b.AnimCount++

	switch {
	case b.AnimCount < animTime:
		b.Frame = 0
	case b.AnimCount < animTime*2:
		b.Frame = 1
	case b.AnimCount < animTime*3:
		b.Frame = 2
	case b.AnimCount < animTime*4:
		b.Frame = 1
	case b.AnimCount == animTime*4+1:
		b.Frame = 0
		b.AnimCount = 0
	}

	if tilt <= NoseDiveTilt {
		b.Frame = 1
		b.AnimCount = animTime * 2
	}

	return b.Frame
}
