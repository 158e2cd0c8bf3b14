package ui

import (
	"github.com/pthm-cable/flap/telemetry"
)

// GenerationSections describes the previous-generation panel.
// Getters receive a telemetry.GenerationStats.
func GenerationSections(population int) []SectionDescriptor {
	stats := func(data any) telemetry.GenerationStats {
		s, _ := data.(telemetry.GenerationStats)
		return s
	}

	return []SectionDescriptor{
		{
			ID:    "last_generation",
			Title: "Last Generation",
			Visible: func(data any) bool {
				return stats(data).Generation > 0
			},
			Fields: []FieldDescriptor{
				{ID: "generation", Label: "Gen", Widget: WidgetText, Format: "%.0f",
					Getter: func(d any) float32 { return float32(stats(d).Generation) }},
				{ID: "score", Label: "Score", Widget: WidgetText, Format: "%.0f",
					Getter: func(d any) float32 { return float32(stats(d).Score) }},
				{ID: "best_fitness", Label: "Best fit", Widget: WidgetText, Format: "%.1f",
					Getter: func(d any) float32 { return float32(stats(d).BestFitness) }},
				{ID: "mean_fitness", Label: "Mean fit", Widget: WidgetText, Format: "%.1f",
					Getter: func(d any) float32 { return float32(stats(d).MeanFitness) }},
				{ID: "species", Label: "Species", Widget: WidgetText, Format: "%.0f",
					Getter: func(d any) float32 { return float32(stats(d).Species) }},
				{ID: "collisions", Label: "Pipe deaths", Widget: WidgetBar,
					Range:  FieldRange{Min: 0, Max: float32(population)},
					Getter: func(d any) float32 { return float32(stats(d).Collisions) }},
			},
		},
	}
}

// GenerationPanel renders the previous generation's summary.
type GenerationPanel struct {
	renderer *Renderer
	sections []SectionDescriptor
	x, y     int32
	width    int32
}

// NewGenerationPanel creates a panel for a population of the given size.
func NewGenerationPanel(x, y, width int32, population int) *GenerationPanel {
	return &GenerationPanel{
		renderer: NewRenderer(),
		sections: GenerationSections(population),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the panel; nothing is drawn before the first generation ends.
func (p *GenerationPanel) Draw(stats telemetry.GenerationStats) {
	r := p.renderer
	padding := r.Theme.Padding

	var height int32
	for _, sd := range p.sections {
		height += r.SectionHeight(sd, stats)
	}
	if height == 0 {
		return
	}

	r.DrawPanel(p.x, p.y, p.width, height+padding*2)

	y := p.y + padding
	for _, sd := range p.sections {
		y = r.DrawSection(p.x+padding, y, sd, stats, p.width-padding*2)
	}
}
