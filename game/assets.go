package game

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/transform"

	"github.com/pthm-cable/flap/systems"
)

// Sprite file names expected in an asset directory.
const (
	BirdFrame1File = "bird1.png"
	BirdFrame2File = "bird2.png"
	BirdFrame3File = "bird3.png"
	PipeFile       = "pipe.png"
	BaseFile       = "base.png"
	BackgroundFile = "bg.png"
)

// AssetScale is the integer upscale applied to every loaded sprite.
const AssetScale = 2

// Sprite is a decoded image with its collision mask.
type Sprite struct {
	Image *image.NRGBA
	Mask  *systems.Mask
}

// NewSprite wraps img and derives its mask from the alpha channel.
func NewSprite(img *image.NRGBA) Sprite {
	return Sprite{Image: img, Mask: systems.MaskFromImage(img)}
}

// Width returns the sprite width in pixels.
func (s Sprite) Width() int { return s.Image.Bounds().Dx() }

// Height returns the sprite height in pixels.
func (s Sprite) Height() int { return s.Image.Bounds().Dy() }

// Assets is the sprite bundle a game is built from.
type Assets struct {
	Birds      [3]Sprite // Wing poses
	Pipe       Sprite    // Bottom pipe, opening at the top
	PipeTop    Sprite    // Pipe flipped vertically
	Base       Sprite
	Background Sprite
}

// BirdSize returns the bird sprite dimensions.
func (a *Assets) BirdSize() (int, int) {
	return a.Birds[0].Width(), a.Birds[0].Height()
}

// LoadAssets decodes the sprites in dir and scales them by AssetScale.
// An empty dir yields DefaultAssets.
func LoadAssets(dir string) (*Assets, error) {
	if dir == "" {
		return DefaultAssets(), nil
	}

	load := func(name string) (*image.NRGBA, error) {
		img, err := decodePNG(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		return scaleNearest(img, AssetScale), nil
	}

	a := &Assets{}
	for i, name := range []string{BirdFrame1File, BirdFrame2File, BirdFrame3File} {
		img, err := load(name)
		if err != nil {
			return nil, err
		}
		a.Birds[i] = NewSprite(img)
	}

	pipe, err := load(PipeFile)
	if err != nil {
		return nil, err
	}
	a.Pipe = NewSprite(pipe)
	a.PipeTop = Sprite{Image: flipVertical(pipe), Mask: a.Pipe.Mask.FlipVertical()}

	base, err := load(BaseFile)
	if err != nil {
		return nil, err
	}
	a.Base = NewSprite(base)

	bg, err := load(BackgroundFile)
	if err != nil {
		return nil, err
	}
	a.Background = NewSprite(bg)

	if err := a.validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Assets) validate() error {
	w, h := a.BirdSize()
	for i := 1; i < len(a.Birds); i++ {
		if a.Birds[i].Width() != w || a.Birds[i].Height() != h {
			return fmt.Errorf("bird frame %d is %dx%d, frame 1 is %dx%d",
				i+1, a.Birds[i].Width(), a.Birds[i].Height(), w, h)
		}
	}
	return nil
}

func decodePNG(path string) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", filepath.Base(path), err)
	}
	return toNRGBA(img), nil
}

// toNRGBA returns img as a zero-origin NRGBA image, converting if needed.
func toNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	if nrgba, ok := img.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return nrgba
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	return nrgba
}

// scaleNearest upscales src by an integer factor with nearest-neighbour sampling.
func scaleNearest(src *image.NRGBA, factor int) *image.NRGBA {
	b := src.Bounds()
	return toNRGBA(transform.Resize(src, b.Dx()*factor, b.Dy()*factor, transform.NearestNeighbor))
}

func flipVertical(src *image.NRGBA) *image.NRGBA {
	return toNRGBA(transform.FlipV(src))
}

// Procedural sprite sizes, matching the 2x-scaled PNG sprites.
const (
	birdWidth        = 68
	birdHeight       = 48
	pipeWidth        = 104
	pipeHeight       = 640
	pipeLipHeight    = 48
	pipeBodyInset    = 4
	baseWidth        = 672
	baseHeight       = 224
	backgroundWidth  = 576
	backgroundHeight = 1024
)

var (
	birdBody   = color.NRGBA{R: 250, G: 200, B: 40, A: 255}
	birdWing   = color.NRGBA{R: 250, G: 240, B: 200, A: 255}
	birdEye    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	birdBeak   = color.NRGBA{R: 240, G: 110, B: 40, A: 255}
	pipeGreen  = color.NRGBA{R: 115, G: 190, B: 45, A: 255}
	pipeShadow = color.NRGBA{R: 85, G: 140, B: 35, A: 255}
	baseDirt   = color.NRGBA{R: 222, G: 216, B: 149, A: 255}
	baseGrass  = color.NRGBA{R: 115, G: 190, B: 45, A: 255}
	skyTop     = color.NRGBA{R: 78, G: 192, B: 202, A: 255}
	skyBottom  = color.NRGBA{R: 200, G: 235, B: 230, A: 255}
)

// DefaultAssets generates flat-colour sprites with the same dimensions as
// the 2x-scaled PNG sprites, so headless runs need no files.
func DefaultAssets() *Assets {
	a := &Assets{}
	for frame := range a.Birds {
		a.Birds[frame] = NewSprite(proceduralBird(frame))
	}

	pipe := proceduralPipe()
	a.Pipe = NewSprite(pipe)
	a.PipeTop = Sprite{Image: flipVertical(pipe), Mask: a.Pipe.Mask.FlipVertical()}
	a.Base = NewSprite(proceduralBase())
	a.Background = NewSprite(proceduralBackground())
	return a
}

// proceduralBird draws an elliptical body; the wing sits higher or lower per pose.
func proceduralBird(frame int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, birdWidth, birdHeight))
	cx, cy := float64(birdWidth-1)/2, float64(birdHeight-1)/2
	rx, ry := float64(birdWidth)/2, float64(birdHeight)/2

	wingY := []int{14, 22, 30}[frame]

	for y := 0; y < birdHeight; y++ {
		for x := 0; x < birdWidth; x++ {
			dx, dy := (float64(x)-cx)/rx, (float64(y)-cy)/ry
			if dx*dx+dy*dy > 1 {
				continue
			}
			c := birdBody
			switch {
			case x >= 46 && x < 54 && y >= 10 && y < 18:
				c = birdEye
			case x >= 54 && y >= 24 && y < 32:
				c = birdBeak
			case x >= 8 && x < 30 && y >= wingY && y < wingY+8:
				c = birdWing
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// proceduralPipe draws a pipe with a full-width lip at the opening (top rows)
// and a slightly narrower body.
func proceduralPipe() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, pipeWidth, pipeHeight))
	for y := 0; y < pipeHeight; y++ {
		x0, x1 := pipeBodyInset, pipeWidth-pipeBodyInset
		if y < pipeLipHeight {
			x0, x1 = 0, pipeWidth
		}
		for x := x0; x < x1; x++ {
			c := pipeGreen
			if x > x1-12 {
				c = pipeShadow
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func proceduralBase() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, baseWidth, baseHeight))
	for y := 0; y < baseHeight; y++ {
		c := baseDirt
		if y < 16 {
			c = baseGrass
		}
		for x := 0; x < baseWidth; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func proceduralBackground() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, backgroundWidth, backgroundHeight))
	for y := 0; y < backgroundHeight; y++ {
		t := float64(y) / float64(backgroundHeight-1)
		c := color.NRGBA{
			R: lerp8(skyTop.R, skyBottom.R, t),
			G: lerp8(skyTop.G, skyBottom.G, t),
			B: lerp8(skyTop.B, skyBottom.B, t),
			A: 255,
		}
		for x := 0; x < backgroundWidth; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
