// Package main provides CMA-ES tuning for the evolutionary battle
// parameters: mutation settings and fitness weights.
package main

import (
	"github.com/pthm-cable/skirmish/config"
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
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "mutation_rate", Path: "mutation.rate", Min: 0.01, Max: 0.5, Default: 0.15},
			{Name: "mutation_amount", Path: "mutation.amount", Min: 0.05, Max: 0.6, Default: 0.25},
			{Name: "fitness_survival", Path: "fitness.survival", Min: 20, Max: 200, Default: 100},
			{Name: "fitness_kill", Path: "fitness.kill", Min: 10, Max: 100, Default: 50},
			{Name: "fitness_damage_dealt", Path: "fitness.damage_dealt", Min: 0.1, Max: 2.0, Default: 0.5},
			{Name: "fitness_damage_taken", Path: "fitness.damage_taken", Min: 0.05, Max: 1.0, Default: 0.2},
			{Name: "collision_scale", Path: "battle.collision_scale", Min: 0.1, Max: 1.0, Default: 0.5},
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

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Mutation.Rate = clamped[0]
	cfg.Mutation.Amount = clamped[1]
	cfg.Fitness.Survival = clamped[2]
	cfg.Fitness.Kill = clamped[3]
	cfg.Fitness.DamageDealt = clamped[4]
	cfg.Fitness.DamageTaken = clamped[5]
	cfg.Battle.CollisionScale = clamped[6]
}
