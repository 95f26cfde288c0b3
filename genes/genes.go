// Package genes defines the heritable parameter set that drives agent
// steering and combat behavior, plus random generation and bounded mutation.
package genes

import "math/rand"

// Behavior pairs a steering weight with the sensing radius it applies over.
type Behavior struct {
	Weight float64
	Radius float64
}

// GeneSet holds every heritable parameter of one agent. Values are assigned
// once at spawn and never mutated in place; Mutate returns a fresh copy.
type GeneSet struct {
	Separation Behavior
	Alignment  Behavior
	Cohesion   Behavior
	Charge     Behavior
	Flee       Behavior

	MaxSpeed       float64
	MaxForce       float64
	Health         float64
	Damage         float64
	AttackCooldown float64 // seconds between attacks
	Aggressiveness float64 // scales charge force
	Defensiveness  float64 // health fraction below which the agent flees
	SightRange     float64
}

// Random draws a gene set with every field uniform within its bound.
func Random(rng *rand.Rand) GeneSet {
	var g GeneSet
	for _, f := range Fields() {
		b := f.Bound()
		f.set(&g, b.Min+rng.Float64()*(b.Max-b.Min))
	}
	return g
}

// Mutate returns a copy of g where each field independently, with the given
// probability, is scaled by (1 + u) with u uniform in [-amount, +amount] and
// then clamped back into its bound. The receiver is never modified.
func (g GeneSet) Mutate(rng *rand.Rand, rate, amount float64) GeneSet {
	for _, f := range Fields() {
		if rng.Float64() >= rate {
			continue
		}
		u := (rng.Float64()*2 - 1) * amount
		f.set(&g, f.Bound().Clamp(f.get(&g)*(1+u)))
	}
	return g
}

// InBounds reports whether every field of g lies within its declared bound.
func (g *GeneSet) InBounds() bool {
	for _, f := range Fields() {
		b := f.Bound()
		v := f.get(g)
		if v < b.Min || v > b.Max {
			return false
		}
	}
	return true
}
