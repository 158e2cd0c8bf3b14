package systems

import (
	"math"
	"math/rand"
)

// ParticleType identifies the type of effect particle.
type ParticleType uint8

const (
	ParticleFeather ParticleType = iota // Bird hit a pipe
	ParticleDust                        // Bird hit the ground or left the screen
)

// EffectParticle represents a visual feedback particle.
type EffectParticle struct {
	X, Y       float32
	VelX, VelY float32
	Life       int32
	MaxLife    int32
	Type       ParticleType
	Size       float32
}

// ParticleSystem manages effect particles for visual feedback. It draws from
// its own RNG so effects never disturb the simulation's random sequence.
type ParticleSystem struct {
	Particles    []EffectParticle
	maxParticles int
	scrollSpeed  float32
	rng          *rand.Rand
}

// NewParticleSystem creates a particle system whose particles drift left
// with the course at scrollSpeed.
func NewParticleSystem(scrollSpeed float32, rng *rand.Rand) *ParticleSystem {
	return &ParticleSystem{
		Particles:    make([]EffectParticle, 0, 500),
		maxParticles: 500,
		scrollSpeed:  scrollSpeed,
		rng:          rng,
	}
}

// Update processes all particles.
func (s *ParticleSystem) Update() {
	alive := 0
	for i := range s.Particles {
		p := &s.Particles[i]

		p.Life--
		if p.Life <= 0 {
			continue
		}

		switch p.Type {
		case ParticleFeather:
			// Flutter down slowly
			p.VelY += 0.05
		case ParticleDust:
			// Settle quickly
			p.VelY += 0.15
		}

		// Drag
		p.VelX *= 0.95
		p.VelY *= 0.95

		p.X += p.VelX - s.scrollSpeed
		p.Y += p.VelY

		s.Particles[alive] = s.Particles[i]
		alive++
	}
	s.Particles = s.Particles[:alive]
}

// EmitBurst emits a radial burst of 8-14 particles at (x, y).
func (s *ParticleSystem) EmitBurst(x, y float32, ptype ParticleType) {
	count := 8 + s.rng.Intn(7)
	for i := 0; i < count; i++ {
		s.emit(x, y, ptype)
	}
}

func (s *ParticleSystem) emit(x, y float32, ptype ParticleType) {
	if len(s.Particles) >= s.maxParticles {
		return
	}

	angle := s.rng.Float32() * 2 * math.Pi
	speed := 1 + s.rng.Float32()*2
	velX := float32(math.Cos(float64(angle))) * speed
	velY := float32(math.Sin(float64(angle))) * speed

	var life int32
	var size float32
	switch ptype {
	case ParticleFeather:
		life = 30 + s.rng.Int31n(30)
		size = 2 + s.rng.Float32()*1.5
	default:
		velY = -float32(math.Abs(float64(velY))) // kick upward
		life = 15 + s.rng.Int31n(15)
		size = 1.5 + s.rng.Float32()
	}

	s.Particles = append(s.Particles, EffectParticle{
		X:       x + (s.rng.Float32()-0.5)*6,
		Y:       y + (s.rng.Float32()-0.5)*6,
		VelX:    velX,
		VelY:    velY,
		Life:    life,
		MaxLife: life,
		Type:    ptype,
		Size:    size,
	})
}

// Count returns the current number of active particles.
func (s *ParticleSystem) Count() int {
	return len(s.Particles)
}
