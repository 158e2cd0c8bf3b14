package game

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultAssetsDimensions(t *testing.T) {
	a := DefaultAssets()

	tests := []struct {
		name string
		s    Sprite
		w, h int
	}{
		{"bird1", a.Birds[0], 68, 48},
		{"bird2", a.Birds[1], 68, 48},
		{"bird3", a.Birds[2], 68, 48},
		{"pipe", a.Pipe, 104, 640},
		{"pipe top", a.PipeTop, 104, 640},
		{"base", a.Base, 672, 224},
		{"background", a.Background, 576, 1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.s.Width() != tt.w || tt.s.Height() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", tt.s.Width(), tt.s.Height(), tt.w, tt.h)
			}
			mw, mh := tt.s.Mask.Size()
			if mw != tt.w || mh != tt.h {
				t.Errorf("mask size = %dx%d, want %dx%d", mw, mh, tt.w, tt.h)
			}
		})
	}
}

func TestDefaultPipeTopIsFlipped(t *testing.T) {
	a := DefaultAssets()

	// The lip is full width at the pipe opening
	if !a.Pipe.Mask.Get(0, 0) || a.Pipe.Mask.Get(0, 639) {
		t.Error("bottom pipe lip should be at the top rows")
	}
	if !a.PipeTop.Mask.Get(0, 639) || a.PipeTop.Mask.Get(0, 0) {
		t.Error("top pipe lip should be at the bottom rows")
	}
	if a.Pipe.Mask.Count() != a.PipeTop.Mask.Count() {
		t.Error("flipping changed the number of solid pixels")
	}
}

func TestDefaultBirdMaskIsRound(t *testing.T) {
	a := DefaultAssets()
	m := a.Birds[0].Mask

	if m.Get(0, 0) || m.Get(67, 47) {
		t.Error("bird corners should be transparent")
	}
	if !m.Get(34, 24) {
		t.Error("bird center should be solid")
	}
	for i := 1; i < 3; i++ {
		if a.Birds[i].Mask.Count() != m.Count() {
			t.Errorf("frame %d mask differs from frame 1", i+1)
		}
	}
}

func writePNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	// Leave one transparent pixel to check the mask
	img.SetNRGBA(0, 0, color.NRGBA{})

	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAssetsScales(t *testing.T) {
	dir := t.TempDir()
	opaque := color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	for _, name := range []string{BirdFrame1File, BirdFrame2File, BirdFrame3File} {
		writePNG(t, filepath.Join(dir, name), 34, 24, opaque)
	}
	writePNG(t, filepath.Join(dir, PipeFile), 52, 320, opaque)
	writePNG(t, filepath.Join(dir, BaseFile), 336, 112, opaque)
	writePNG(t, filepath.Join(dir, BackgroundFile), 288, 512, opaque)

	a, err := LoadAssets(dir)
	if err != nil {
		t.Fatalf("LoadAssets failed: %v", err)
	}

	if w, h := a.BirdSize(); w != 68 || h != 48 {
		t.Errorf("bird size = %dx%d, want 68x48", w, h)
	}
	if a.Pipe.Width() != 104 || a.Pipe.Height() != 640 {
		t.Errorf("pipe size = %dx%d, want 104x640", a.Pipe.Width(), a.Pipe.Height())
	}

	// The transparent source pixel becomes a transparent 2x2 block
	m := a.Birds[0].Mask
	for _, p := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if m.Get(p[0], p[1]) {
			t.Errorf("pixel %v should be transparent", p)
		}
	}
	if !m.Get(2, 0) || !m.Get(0, 2) {
		t.Error("neighbouring pixels should be solid")
	}
	if got := a.Birds[0].Image.NRGBAAt(5, 5); got != opaque {
		t.Errorf("scaled colour = %v, want %v", got, opaque)
	}

	// Top pipe: transparent pixel moves to the bottom-left corner
	if a.PipeTop.Mask.Get(0, 639) || !a.PipeTop.Mask.Get(0, 0) {
		t.Error("top pipe mask not flipped")
	}
}

func TestLoadAssetsMissingFile(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, BirdFrame1File), 34, 24, color.NRGBA{A: 255})

	if _, err := LoadAssets(dir); err == nil {
		t.Error("expected error for incomplete asset directory")
	}
}

func TestLoadAssetsMismatchedFrames(t *testing.T) {
	dir := t.TempDir()
	opaque := color.NRGBA{A: 255}
	writePNG(t, filepath.Join(dir, BirdFrame1File), 34, 24, opaque)
	writePNG(t, filepath.Join(dir, BirdFrame2File), 30, 24, opaque)
	writePNG(t, filepath.Join(dir, BirdFrame3File), 34, 24, opaque)
	writePNG(t, filepath.Join(dir, PipeFile), 52, 320, opaque)
	writePNG(t, filepath.Join(dir, BaseFile), 336, 112, opaque)
	writePNG(t, filepath.Join(dir, BackgroundFile), 288, 512, opaque)

	if _, err := LoadAssets(dir); err == nil {
		t.Error("expected error for bird frames of different sizes")
	}
}

func TestLoadAssetsEmptyDirUsesDefaults(t *testing.T) {
	a, err := LoadAssets("")
	if err != nil {
		t.Fatal(err)
	}
	if w, h := a.BirdSize(); w != 68 || h != 48 {
		t.Errorf("bird size = %dx%d, want 68x48", w, h)
	}
}
