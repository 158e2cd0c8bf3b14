// Package inspector draws the structure of the best evolved brain.
package inspector

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/yaricom/goNEAT/v4/neat/genetics"
	"github.com/yaricom/goNEAT/v4/neat/network"
)

// Input labels for the neural network visualization, bias first.
var InputLabels = []string{"Bias", "Y", "Gap top", "Gap bot"}

// Output labels for the neural network visualization.
var OutputLabels = []string{"Jump"}

// NetworkColors for weight visualization.
var (
	ColorNodeSensor   = rl.Color{R: 90, G: 160, B: 90, A: 255}
	ColorNodeHidden   = rl.Color{R: 90, G: 90, B: 90, A: 255}
	ColorNodeOutput   = rl.Color{R: 220, G: 170, B: 60, A: 255}
	ColorEdgePositive = rl.Color{R: 200, G: 80, B: 80, A: 100}
	ColorEdgeNegative = rl.Color{R: 80, G: 80, B: 200, A: 100}
	ColorEdgeDisabled = rl.Color{R: 120, G: 120, B: 120, A: 50}
	ColorLabelDim     = rl.Color{R: 160, G: 160, B: 160, A: 255}
)

// NodeLayout is a placed network node.
type NodeLayout struct {
	ID   int
	Type network.NodeNeuronType
	Pos  rl.Vector2
}

// EdgeLayout is a placed connection between two nodes.
type EdgeLayout struct {
	From, To rl.Vector2
	Weight   float64
	Enabled  bool
}

// LayoutGenome places sensors in the left column, hidden nodes in the
// middle and outputs on the right, each column spread over the height of
// the box at (x, y). Nodes keep the genome's order within a column.
func LayoutGenome(genome *genetics.Genome, x, y, width, height float32) ([]NodeLayout, []EdgeLayout) {
	if genome == nil {
		return nil, nil
	}

	var columns [3][]*network.NNode
	for _, n := range genome.Nodes {
		switch n.NeuronType {
		case network.InputNeuron, network.BiasNeuron:
			columns[0] = append(columns[0], n)
		case network.OutputNeuron:
			columns[2] = append(columns[2], n)
		default:
			columns[1] = append(columns[1], n)
		}
	}

	colWidth := width / 3
	nodes := make([]NodeLayout, 0, len(genome.Nodes))
	byID := make(map[int]rl.Vector2, len(genome.Nodes))
	for c, col := range columns {
		cx := x + float32(c)*colWidth + colWidth/2
		spacing := height / float32(len(col)+1)
		for i, n := range col {
			pos := rl.Vector2{X: cx, Y: y + float32(i+1)*spacing}
			nodes = append(nodes, NodeLayout{ID: n.Id, Type: n.NeuronType, Pos: pos})
			byID[n.Id] = pos
		}
	}

	edges := make([]EdgeLayout, 0, len(genome.Genes))
	for _, g := range genome.Genes {
		if g.Link == nil || g.Link.InNode == nil || g.Link.OutNode == nil {
			continue
		}
		from, okFrom := byID[g.Link.InNode.Id]
		to, okTo := byID[g.Link.OutNode.Id]
		if !okFrom || !okTo {
			continue
		}
		edges = append(edges, EdgeLayout{
			From:    from,
			To:      to,
			Weight:  g.Link.ConnectionWeight,
			Enabled: g.IsEnabled,
		})
	}

	return nodes, edges
}

// DrawNetworkDiagram renders the genome's nodes and weighted connections.
func DrawNetworkDiagram(x, y, width, height int32, genome *genetics.Genome) {
	if genome == nil {
		rl.DrawText("No network data", x+10, y+10, 14, ColorLabelDim)
		return
	}

	nodes, edges := LayoutGenome(genome, float32(x), float32(y), float32(width), float32(height))
	nodeRadius := float32(6)

	for _, e := range edges {
		drawEdge(e)
	}

	sensor, output := 0, 0
	for _, n := range nodes {
		switch n.Type {
		case network.InputNeuron, network.BiasNeuron:
			drawNode(n.Pos, nodeRadius, ColorNodeSensor)
			if sensor < len(InputLabels) {
				labelWidth := rl.MeasureText(InputLabels[sensor], 10)
				rl.DrawText(InputLabels[sensor], int32(n.Pos.X-nodeRadius)-labelWidth-4, int32(n.Pos.Y)-5, 10, ColorLabelDim)
			}
			sensor++
		case network.OutputNeuron:
			drawNode(n.Pos, nodeRadius+2, ColorNodeOutput)
			if output < len(OutputLabels) {
				rl.DrawText(OutputLabels[output], int32(n.Pos.X+nodeRadius+6), int32(n.Pos.Y)-5, 10, ColorLabelDim)
			}
			output++
		default:
			drawNode(n.Pos, nodeRadius, ColorNodeHidden)
		}
	}
}

// drawNode renders a single neuron node.
func drawNode(pos rl.Vector2, radius float32, color rl.Color) {
	rl.DrawCircleV(pos, radius, color)
	rl.DrawCircleLinesV(pos, radius, rl.Color{R: 100, G: 100, B: 100, A: 255})
}

// drawEdge renders a connection between nodes.
func drawEdge(e EdgeLayout) {
	if !e.Enabled {
		rl.DrawLineEx(e.From, e.To, 0.5, ColorEdgeDisabled)
		return
	}

	rl.DrawLineEx(e.From, e.To, EdgeThickness(e.Weight), EdgeColor(e.Weight))
}

// EdgeThickness scales line width with weight magnitude, within [0.5, 3].
func EdgeThickness(weight float64) float32 {
	thickness := float32(math.Abs(weight)) * 1.5
	if thickness > 3 {
		thickness = 3
	}
	if thickness < 0.5 {
		thickness = 0.5
	}
	return thickness
}

// EdgeColor is red for excitatory and blue for inhibitory weights, more
// opaque as the magnitude grows.
func EdgeColor(weight float64) rl.Color {
	color := ColorEdgePositive
	if weight < 0 {
		color = ColorEdgeNegative
	}
	alpha := 40 + int(math.Abs(weight)*40)
	if alpha > 150 {
		alpha = 150
	}
	color.A = uint8(alpha)
	return color
}
