// Package renderer draws the flap simulation with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/game"
)

// Scene draws the world: background, pipes, ground and birds.
type Scene struct {
	tex *Textures
}

// NewScene creates a scene renderer over uploaded textures.
func NewScene(tex *Textures) *Scene {
	return &Scene{tex: tex}
}

// Draw renders the current state of g. Pipes are drawn before the ground so
// the ground band covers their lower ends.
func (s *Scene) Draw(g *game.Game) {
	rl.DrawTexture(s.tex.Background, 0, 0, rl.White)

	for _, p := range g.Pipes() {
		x := float32(p.X)
		rl.DrawTextureV(s.tex.PipeTop, rl.Vector2{X: x, Y: float32(p.Top)}, rl.White)
		rl.DrawTextureV(s.tex.Pipe, rl.Vector2{X: x, Y: float32(p.Bottom)}, rl.White)
	}

	ground := g.Ground()
	rl.DrawTextureV(s.tex.Base, rl.Vector2{X: float32(ground.X1), Y: float32(ground.Y)}, rl.White)
	rl.DrawTextureV(s.tex.Base, rl.Vector2{X: float32(ground.X2), Y: float32(ground.Y)}, rl.White)

	g.EachBird(func(pos *components.Position, motion *components.Motion, bird *components.Bird) {
		s.drawBird(pos, motion, bird)
	})
}

// drawBird draws the current wing pose rotated about the sprite centre.
// Positive tilt is nose-up, which is counter-clockwise on screen.
func (s *Scene) drawBird(pos *components.Position, motion *components.Motion, bird *components.Bird) {
	tex := s.tex.Birds[bird.Frame]
	w, h := float32(tex.Width), float32(tex.Height)

	src := rl.Rectangle{X: 0, Y: 0, Width: w, Height: h}
	dst := rl.Rectangle{X: float32(pos.X) + w/2, Y: float32(pos.Y) + h/2, Width: w, Height: h}
	origin := rl.Vector2{X: w / 2, Y: h / 2}

	rl.DrawTexturePro(tex, src, dst, origin, -float32(motion.Tilt), rl.White)
}
