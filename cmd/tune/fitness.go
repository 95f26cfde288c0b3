package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/game"
)

// Evaluator runs headless battle runs and scores parameter vectors.
// Lower scores are better (gonum optimize minimizes).
type Evaluator struct {
	params      *ParamVector
	generations int
	seeds       []int64
	baseConfig  *config.Config

	mu          sync.Mutex
	lastQuality float64
}

// NewEvaluator creates an evaluator that runs the given number of
// generations per seed.
func NewEvaluator(params *ParamVector, generations int, seeds []int64, baseCfg *config.Config) *Evaluator {
	return &Evaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		baseConfig:  baseCfg,
	}
}

// LastQuality returns the decisiveness score of the most recent evaluation:
// the fraction of battles that produced a winner.
func (ev *Evaluator) LastQuality() float64 {
	ev.mu.Lock()
	defer ev.mu.Unlock()
	return ev.lastQuality
}

// seedResult holds the outcome of one seed's run.
type seedResult struct {
	finalFitness float64 // mean agent fitness in the last battle
	decisiveness float64 // fraction of battles with a winner
}

// Evaluate scores a parameter vector. The score rewards populations whose
// mean fitness grows over the run and whose battles end decisively rather
// than timing out in a stalemate.
func (ev *Evaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(ev.seeds))
	var wg sync.WaitGroup

	for i, seed := range ev.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = ev.runSeed(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.finalFitness
		totalQuality += r.decisiveness
	}
	n := float64(len(ev.seeds))
	avgFitness := totalFitness / n
	avgQuality := totalQuality / n

	ev.mu.Lock()
	ev.lastQuality = avgQuality
	ev.mu.Unlock()

	// Negate so CMA-ES minimization maximizes evolved fitness.
	return -avgFitness * (1 + 0.2*avgQuality)
}

// runSeed runs one headless simulation for the configured number of
// generations and summarizes it.
func (ev *Evaluator) runSeed(x []float64, seed int64) seedResult {
	cfg := *ev.baseConfig
	ev.params.ApplyToConfig(&cfg, x)
	// No real-time pacing between battles during tuning.
	cfg.Battle.TurnoverDelay = 0

	g, err := game.NewGame(&cfg, game.Options{Seed: seed})
	if err != nil {
		return seedResult{finalFitness: math.Inf(-1)}
	}
	defer g.Close()

	for g.History().Len() < ev.generations {
		g.Update(cfg.Physics.DT)
	}

	last, ok := g.History().Last()
	if !ok {
		return seedResult{finalFitness: math.Inf(-1)}
	}

	history := g.History()
	decided := history.Wins(components.TeamRed) + history.Wins(components.TeamBlue)
	return seedResult{
		finalFitness: (last.RedFitnessMean + last.BlueFitnessMean) / 2,
		decisiveness: float64(decided) / float64(history.Len()),
	}
}
