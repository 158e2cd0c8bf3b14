package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Speed slider bounds (simulation steps per frame).
const (
	MinSpeed = 1
	MaxSpeed = 10
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Generation   int
	Population   int
	Alive        int
	Score        int
	Tick         int32
	Speed        int
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	theme Theme
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		theme: DefaultTheme(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	// Score, top right
	score := fmt.Sprintf("Score: %d", data.Score)
	w := rl.MeasureText(score, 30)
	rl.DrawText(score, data.ScreenWidth-10-w, 10, 30, rl.White)

	rl.DrawText(fmt.Sprintf("Gen: %d", data.Generation), 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Alive: %d/%d", data.Alive, data.Population),
		10, 35, 16, h.theme.LabelColor,
	)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Speed: %dx | FPS: %d", data.Tick, data.Speed, data.FPS),
		10, 55, 16, h.theme.LabelColor,
	)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, h.theme.SectionHeader)
	}
}

// SpeedSlider draws the simulation speed slider above the ground band and
// returns the selected speed.
func (h *HUD) SpeedSlider(speed int, x, y, width float32) int {
	rl.DrawText("Speed", int32(x), int32(y)-16, 14, rl.White)
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: width, Height: 16},
		fmt.Sprint(MinSpeed), fmt.Sprint(MaxSpeed),
		float32(speed), MinSpeed, MaxSpeed,
	)
	return ClampSpeed(int(v + 0.5))
}

// ClampSpeed bounds a speed value to the slider range.
func ClampSpeed(speed int) int {
	if speed < MinSpeed {
		return MinSpeed
	}
	if speed > MaxSpeed {
		return MaxSpeed
	}
	return speed
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-20, 12, rl.Gray)
}
