package main

import (
	"github.com/pthm-cable/flap/neural"
)

// Observation features are divided by this before weighting so all weights
// share one range.
const featureScale = 100.0

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the weights of the linear jump policy.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the policy parameters. The defaults jump whenever
// the bird is closer to the lower gap edge than to the upper one.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "bias", Min: -5, Max: 5, Default: 0},
			{Name: "w_y", Min: -5, Max: 5, Default: 0},
			{Name: "w_gap_top", Min: -5, Max: 5, Default: 1},
			{Name: "w_gap_bottom", Min: -5, Max: 5, Default: -1},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// Policy returns a controller computing bias + w·observation/featureScale.
// Values must already be clamped.
func (pv *ParamVector) Policy(values []float64) neural.Controller {
	w := make([]float64, len(values))
	copy(w, values)
	return neural.ControllerFunc(func(obs neural.Observation) float64 {
		return w[0] + (w[1]*obs.Y+w[2]*obs.GapTop+w[3]*obs.GapBottom)/featureScale
	})
}
