package ui

import (
	"testing"

	"github.com/pthm-cable/flap/telemetry"
)

func TestGenerationSectionsHiddenBeforeFirstGeneration(t *testing.T) {
	r := NewRenderer()
	for _, sd := range GenerationSections(50) {
		if h := r.SectionHeight(sd, telemetry.GenerationStats{}); h != 0 {
			t.Errorf("section %s has height %d before any generation", sd.ID, h)
		}
	}
}

func TestGenerationSectionsValues(t *testing.T) {
	stats := telemetry.GenerationStats{
		Generation:  7,
		Score:       3,
		BestFitness: 21.44,
		MeanFitness: 4.2,
		Species:     5,
		Collisions:  25,
	}

	want := map[string]string{
		"generation":   "7",
		"score":        "3",
		"best_fitness": "21.4",
		"mean_fitness": "4.2",
		"species":      "5",
	}

	sections := GenerationSections(50)
	seen := 0
	for _, sd := range sections {
		for _, fd := range sd.Fields {
			if fd.Widget == WidgetBar {
				if got := BarRatio(fd.Getter(stats), fd.Range); got != 0.5 {
					t.Errorf("%s bar ratio = %v, want 0.5", fd.ID, got)
				}
				continue
			}
			w, ok := want[fd.ID]
			if !ok {
				continue
			}
			seen++
			if got := FieldText(fd, stats); got != w {
				t.Errorf("%s = %q, want %q", fd.ID, got, w)
			}
		}
	}
	if seen != len(want) {
		t.Errorf("checked %d fields, want %d", seen, len(want))
	}
}

func TestBarRatio(t *testing.T) {
	tests := []struct {
		value float32
		rng   FieldRange
		want  float32
	}{
		{0.5, DefaultRange(), 0.5},
		{-1, DefaultRange(), 0},
		{2, DefaultRange(), 1},
		{5, FieldRange{Min: 0, Max: 0}, 0},
		{30, FieldRange{Min: 10, Max: 50}, 0.5},
	}
	for _, tt := range tests {
		if got := BarRatio(tt.value, tt.rng); got != tt.want {
			t.Errorf("BarRatio(%v, %+v) = %v, want %v", tt.value, tt.rng, got, tt.want)
		}
	}
}

func TestClampSpeed(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, MinSpeed},
		{1, 1},
		{5, 5},
		{10, 10},
		{42, MaxSpeed},
	}
	for _, tt := range tests {
		if got := ClampSpeed(tt.in); got != tt.want {
			t.Errorf("ClampSpeed(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
