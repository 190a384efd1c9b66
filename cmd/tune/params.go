package main

import (
	"math"

	"github.com/pthm-cable/numevo/config"
	"github.com/pthm-cable/numevo/evolve"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
// Both are integers in the config; the optimizer works on their continuous relaxation.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the tunable parameters for a base config.
// The cross range bound depends on the bit width of max_number.
func NewParamVector(base *config.Config) *ParamVector {
	ev := base.Evolution
	crossMax := float64(evolve.BitWidth(ev.MaxNumber) / 2)
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "population_size", Path: "evolution.population_size", Min: 2, Max: 64, Default: float64(ev.PopulationSize)},
			{Name: "cross_range", Path: "evolution.cross_range", Min: 0, Max: crossMax, Default: math.Min(float64(ev.CrossRange), crossMax)},
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
// A spec with an empty range maps to 0.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		if spec.Max > spec.Min {
			normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
		}
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

// Round clamps values to their bounds and rounds them to the integers actually used.
func (pv *ParamVector) Round(v []float64) []int {
	rounded := make([]int, len(pv.Specs))
	for i, spec := range pv.Specs {
		rounded[i] = int(math.Round(min(max(v[i], spec.Min), spec.Max)))
	}
	return rounded
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	rounded := pv.Round(values)
	cfg.Evolution.PopulationSize = rounded[0]
	cfg.Evolution.CrossRange = rounded[1]
	cfg.Normalize()
}
