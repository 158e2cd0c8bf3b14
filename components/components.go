// Package components defines ECS components for the simulation.
package components

// Position represents an agent's screen position.
// X is shared by every agent; only Y changes during a generation.
type Position struct {
	X, Y float64
}

// Motion holds the kinematic state of a bird between jumps.
type Motion struct {
	Velocity  float64 // Velocity set by the last jump (negative is up)
	Tilt      float64 // Degrees, positive is nose-up
	TickCount int     // Ticks since the last jump
	Height    float64 // Y at the last jump
}

// Bird holds per-agent evaluation state.
type Bird struct {
	Index     int     // Position of the agent's controller in the generation
	Alive     bool    // Cleared on collision or leaving the vertical bounds
	Fitness   float64 // Accumulated fitness, never clamped
	Frame     uint8   // Current wing pose (0..2)
	AnimCount int     // Ticks into the flap cycle
	DiedAt    int32   // Tick of death, 0 while alive
}
