package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/game"
)

// Textures holds the GPU copies of an asset bundle.
type Textures struct {
	Birds      [3]rl.Texture2D
	Pipe       rl.Texture2D
	PipeTop    rl.Texture2D
	Base       rl.Texture2D
	Background rl.Texture2D
}

// LoadTextures uploads every sprite in assets. Must be called after the
// raylib window is created.
func LoadTextures(assets *game.Assets) *Textures {
	t := &Textures{}
	for i := range assets.Birds {
		t.Birds[i] = uploadSprite(assets.Birds[i])
	}
	t.Pipe = uploadSprite(assets.Pipe)
	t.PipeTop = uploadSprite(assets.PipeTop)
	t.Base = uploadSprite(assets.Base)
	t.Background = uploadSprite(assets.Background)
	return t
}

func uploadSprite(s game.Sprite) rl.Texture2D {
	img := rl.NewImageFromImage(s.Image)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	return tex
}

// Unload frees resources.
func (t *Textures) Unload() {
	for _, tex := range t.Birds {
		rl.UnloadTexture(tex)
	}
	rl.UnloadTexture(t.Pipe)
	rl.UnloadTexture(t.PipeTop)
	rl.UnloadTexture(t.Base)
	rl.UnloadTexture(t.Background)
}
