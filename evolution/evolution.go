// Package evolution scores battle performance and breeds the next
// generation of a team from its survivors.
package evolution

import (
	"math/rand"

	"github.com/pthm-cable/skirmish/genes"
)

// Weights are the fitness coefficients for each scored quantity.
type Weights struct {
	Survival    float64 `yaml:"survival"`
	Kill        float64 `yaml:"kill"`
	DamageDealt float64 `yaml:"damage_dealt"`
	DamageTaken float64 `yaml:"damage_taken"`
}

// Score pairs a genome with the fitness it earned in the last battle.
type Score struct {
	Genes   genes.GeneSet
	Fitness float64
}

// Fitness scores one agent's battle. Damage taken subtracts from the score,
// but every agent keeps a minimum fitness of 1 so a surviving genome always
// holds at least one roulette slot.
func Fitness(survived bool, kills int, dealt, taken float64, w Weights) float64 {
	f := float64(kills)*w.Kill + dealt*w.DamageDealt - taken*w.DamageTaken
	if survived {
		f += w.Survival
	}
	if f < 1 {
		return 1
	}
	return f
}

// Select picks a parent index by roulette wheel: r must be uniform in
// [0, total fitness). The walk stops at the first survivor whose running
// fitness sum reaches r. Accumulated float error past the last slice falls
// through to the last survivor.
func Select(survivors []Score, r float64) int {
	acc := 0.0
	for i, s := range survivors {
		acc += s.Fitness
		if acc >= r {
			return i
		}
	}
	return len(survivors) - 1
}

// NextGeneration breeds teamSize genomes from the scored survivors. Each
// child is a mutated copy of a roulette-selected parent. A team wiped to
// zero survivors restarts from random genomes.
func NextGeneration(rng *rand.Rand, survivors []Score, teamSize int, rate, amount float64) []genes.GeneSet {
	next := make([]genes.GeneSet, 0, teamSize)
	if len(survivors) == 0 {
		for i := 0; i < teamSize; i++ {
			next = append(next, genes.Random(rng))
		}
		return next
	}

	total := 0.0
	for _, s := range survivors {
		total += s.Fitness
	}
	for i := 0; i < teamSize; i++ {
		parent := survivors[Select(survivors, rng.Float64()*total)]
		next = append(next, parent.Genes.Mutate(rng, rate, amount))
	}
	return next
}
