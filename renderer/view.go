package renderer

import (
	"context"
	"errors"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/inspector"
	"github.com/pthm-cable/flap/neural"
	"github.com/pthm-cable/flap/systems"
	"github.com/pthm-cable/flap/ui"
)

// ErrWindowClosed is returned by Evaluate when the user closes the window.
var ErrWindowClosed = errors.New("window closed")

const controlsLegend = "[Space] pause  [,/.] speed  [N] network"

// View owns the window-side state of a run: textures, overlays and the
// user's pause and speed choices.
type View struct {
	game *game.Game

	textures  *Textures
	scene     *Scene
	particles *systems.ParticleSystem
	partDraw  *ParticleRenderer
	hud       *ui.HUD
	panel     *ui.GenerationPanel
	inspector *inspector.Inspector

	speed  int
	paused bool
}

// NewView uploads the game's sprites and hooks death effects. Must be
// called after the raylib window is created.
func NewView(g *game.Game, population int, seed int64) *View {
	cfg := g.Config()
	textures := LoadTextures(g.Assets())

	v := &View{
		game:      g,
		textures:  textures,
		scene:     NewScene(textures),
		particles: systems.NewParticleSystem(float32(cfg.Pipes.Velocity), rand.New(rand.NewSource(seed))),
		partDraw:  NewParticleRenderer(),
		hud:       ui.NewHUD(),
		panel:     ui.NewGenerationPanel(10, 100, 200, population),
		inspector: inspector.NewInspector(int32(cfg.Screen.Width)),
		speed:     ui.MinSpeed,
	}

	birdW, birdH := g.Assets().BirdSize()
	g.OnDeath = func(x, y float64, cause game.DeathCause) {
		ptype := systems.ParticleDust
		if cause == game.DeathCollision {
			ptype = systems.ParticleFeather
		}
		v.particles.EmitBurst(float32(x)+float32(birdW)/2, float32(y)+float32(birdH)/2, ptype)
	}

	return v
}

// Inspector returns the best-genome panel.
func (v *View) Inspector() *inspector.Inspector {
	return v.inspector
}

// Evaluate runs one generation in the window, stepping the simulation
// speed times per frame. It satisfies neural.Evaluator.
func (v *View) Evaluate(ctx context.Context, generation int, controllers []neural.Controller) ([]float64, error) {
	g := v.game
	g.StartGeneration(generation, controllers)

	for !g.Done() {
		if rl.WindowShouldClose() {
			return nil, ErrWindowClosed
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v.HandleInput()
		if !v.paused {
			for i := 0; i < v.speed; i++ {
				running := g.Step()
				v.particles.Update()
				if !running {
					break
				}
			}
		}
		v.Draw()
	}

	return g.FinishGeneration(), nil
}

// HandleInput processes keyboard shortcuts.
func (v *View) HandleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}

	// Speed control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		v.speed = ui.ClampSpeed(v.speed - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		v.speed = ui.ClampSpeed(v.speed + 1)
	}

	if rl.IsKeyPressed(rl.KeyN) {
		v.inspector.Toggle()
	}
}

// Draw renders one frame.
func (v *View) Draw() {
	g := v.game
	cfg := g.Config()
	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	v.scene.Draw(g)
	v.partDraw.Draw(v.particles.Particles)

	v.hud.Draw(ui.HUDData{
		Generation:   g.Generation(),
		Population:   g.Population(),
		Alive:        g.Alive(),
		Score:        g.Score(),
		Tick:         g.Tick(),
		Speed:        v.speed,
		FPS:          rl.GetFPS(),
		Paused:       v.paused,
		ScreenWidth:  width,
		ScreenHeight: height,
	})
	v.panel.Draw(g.LastStats())
	v.inspector.Draw()

	// Slider sits on the ground band, below the play area
	v.speed = v.hud.SpeedSlider(v.speed, cfg.Derived.ScreenW32-170, cfg.Derived.GroundY32+30, 150)
	v.hud.DrawControls(height, controlsLegend)

	rl.EndDrawing()
}

// Unload frees resources.
func (v *View) Unload() {
	v.game.OnDeath = nil
	v.textures.Unload()
}
