package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/yaricom/goNEAT/v4/neat/genetics"
)

// Panel dimensions
const (
	PanelWidth   = 240
	PanelHeight  = 200
	PanelPadding = 10
	HeaderHeight = 24
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 220}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
)

// Inspector shows the best genome of the last finished generation.
type Inspector struct {
	genome     *genetics.Genome
	generation int
	fitness    float64
	visible    bool
	panelX     int32
	panelY     int32
}

// NewInspector creates a new inspector anchored to the top-right corner.
func NewInspector(screenWidth int32) *Inspector {
	return &Inspector{
		panelX:  screenWidth - PanelWidth - 10,
		panelY:  50,
		visible: true,
	}
}

// SetGenome replaces the displayed genome.
func (ins *Inspector) SetGenome(generation int, fitness float64, genome *genetics.Genome) {
	ins.generation = generation
	ins.fitness = fitness
	ins.genome = genome
}

// Genome returns the displayed genome, nil before the first generation ends.
func (ins *Inspector) Genome() *genetics.Genome {
	return ins.genome
}

// Toggle shows or hides the panel.
func (ins *Inspector) Toggle() {
	ins.visible = !ins.visible
}

// Visible reports whether the panel is drawn.
func (ins *Inspector) Visible() bool {
	return ins.visible
}

// Draw renders the panel if it is visible and has a genome to show.
func (ins *Inspector) Draw() {
	if !ins.visible || ins.genome == nil {
		return
	}

	x, y := ins.panelX, ins.panelY
	rl.DrawRectangle(x, y, PanelWidth, PanelHeight, ColorPanelBg)
	rl.DrawRectangle(x, y, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawRectangleLines(x, y, PanelWidth, PanelHeight, ColorPanelBorder)

	title := fmt.Sprintf("Best of gen %d (%.1f)", ins.generation, ins.fitness)
	rl.DrawText(title, x+PanelPadding, y+6, 12, ColorHeaderText)

	summary := fmt.Sprintf("%d nodes, %d links", len(ins.genome.Nodes), len(ins.genome.Genes))
	rl.DrawText(summary, x+PanelPadding, y+PanelHeight-18, 10, ColorLabelDim)

	// Leave room on the left for sensor labels
	DrawNetworkDiagram(x+50, y+HeaderHeight, PanelWidth-60, PanelHeight-HeaderHeight-20, ins.genome)
}
