package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/systems"
)

// ParticleRenderer renders effect particles.
type ParticleRenderer struct{}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{}
}

// Draw renders all particles.
func (r *ParticleRenderer) Draw(particles []systems.EffectParticle) {
	for i := range particles {
		p := &particles[i]

		// Calculate life ratio for fade
		lifeRatio := float32(p.Life) / float32(p.MaxLife)

		var color rl.Color
		switch p.Type {
		case systems.ParticleFeather:
			// Pale yellow, like the bird
			color = rl.Color{
				R: 250,
				G: 230,
				B: 150,
				A: uint8(lifeRatio * 220),
			}
		case systems.ParticleDust:
			// Sandy, like the ground
			color = rl.Color{
				R: 200,
				G: 180,
				B: 120,
				A: uint8(lifeRatio * 160),
			}
		}

		size := p.Size * lifeRatio
		if size < 0.5 {
			size = 0.5
		}
		rl.DrawCircle(int32(p.X), int32(p.Y), size, color)
	}
}
