package inspector

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/flap/neural"
)

func TestInspectorState(t *testing.T) {
	ins := NewInspector(500)

	if !ins.Visible() {
		t.Error("inspector should start visible")
	}
	if ins.Genome() != nil {
		t.Error("inspector should start without a genome")
	}
	if ins.panelX != 500-PanelWidth-10 {
		t.Errorf("panel x = %d, want %d", ins.panelX, 500-PanelWidth-10)
	}

	genome := neural.CreateFlapGenome(7, 1.0, rand.New(rand.NewSource(7)))
	ins.SetGenome(3, 12.5, genome)
	if ins.Genome() != genome || ins.generation != 3 || ins.fitness != 12.5 {
		t.Error("SetGenome did not store the genome")
	}

	ins.Toggle()
	if ins.Visible() {
		t.Error("Toggle should hide the panel")
	}
	ins.Toggle()
	if !ins.Visible() {
		t.Error("second Toggle should show the panel")
	}
}
