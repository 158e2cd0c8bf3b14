package inspector

import (
	"math/rand"
	"testing"

	"github.com/yaricom/goNEAT/v4/neat/network"

	"github.com/pthm-cable/flap/neural"
)

func TestLayoutGenomeStartingNetwork(t *testing.T) {
	genome := neural.CreateFlapGenome(1, 1.0, rand.New(rand.NewSource(1)))

	nodes, edges := LayoutGenome(genome, 0, 0, 300, 100)
	if len(nodes) != 5 {
		t.Fatalf("expected 5 nodes, got %d", len(nodes))
	}
	if len(edges) != 4 {
		t.Fatalf("expected 4 edges, got %d", len(edges))
	}

	sensors := 0
	for _, n := range nodes {
		switch n.Type {
		case network.InputNeuron, network.BiasNeuron:
			sensors++
			if n.Pos.X != 50 {
				t.Errorf("sensor %d at x=%v, want 50", n.ID, n.Pos.X)
			}
		case network.OutputNeuron:
			if n.Pos.X != 250 || n.Pos.Y != 50 {
				t.Errorf("output at %v, want (250, 50)", n.Pos)
			}
		default:
			t.Errorf("unexpected hidden node %d", n.ID)
		}
	}
	if sensors != 4 {
		t.Errorf("expected 4 sensors, got %d", sensors)
	}

	for i, e := range edges {
		if !e.Enabled {
			t.Errorf("edge %d disabled", i)
		}
		if e.To.X != 250 {
			t.Errorf("edge %d ends at x=%v, want the output column", i, e.To.X)
		}
	}
}

func TestLayoutGenomeNil(t *testing.T) {
	nodes, edges := LayoutGenome(nil, 0, 0, 100, 100)
	if nodes != nil || edges != nil {
		t.Error("nil genome should produce no layout")
	}
}

func TestEdgeStyle(t *testing.T) {
	tests := []struct {
		weight    float64
		thickness float32
		alpha     uint8
		positive  bool
	}{
		{0.1, 0.5, 44, true},
		{1, 1.5, 80, true},
		{-1, 1.5, 80, false},
		{5, 3, 150, true},
	}

	for _, tt := range tests {
		if got := EdgeThickness(tt.weight); got != tt.thickness {
			t.Errorf("EdgeThickness(%v) = %v, want %v", tt.weight, got, tt.thickness)
		}
		c := EdgeColor(tt.weight)
		if c.A != tt.alpha {
			t.Errorf("EdgeColor(%v).A = %d, want %d", tt.weight, c.A, tt.alpha)
		}
		if (c.R == ColorEdgePositive.R) != tt.positive {
			t.Errorf("EdgeColor(%v) has wrong sign colour %v", tt.weight, c)
		}
	}
}
