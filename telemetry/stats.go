package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/skirmish/genes"
)

// FitnessStats summarizes one team's fitness distribution after a battle.
type FitnessStats struct {
	Mean float64
	Std  float64
	Min  float64
	P50  float64
	Max  float64
}

// ComputeFitnessStats summarizes a team's fitness values. An empty slice
// (a wiped-out generation scored before respawn) yields zeros.
func ComputeFitnessStats(values []float64) FitnessStats {
	n := len(values)
	if n == 0 {
		return FitnessStats{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	s := FitnessStats{
		Mean: stat.Mean(sorted, nil),
		Min:  sorted[0],
		P50:  stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Max:  sorted[n-1],
	}
	if n > 1 {
		s.Std = stat.StdDev(sorted, nil)
	}
	return s
}

// GeneFieldStats summarizes one gene field's distribution across a team.
// Tracking these per generation shows which traits selection is pushing.
type GeneFieldStats struct {
	Field genes.Field
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
}

// ComputeGeneStats summarizes every gene field across a set of genomes.
func ComputeGeneStats(sets []genes.GeneSet) []GeneFieldStats {
	fields := genes.Fields()
	out := make([]GeneFieldStats, 0, len(fields))
	if len(sets) == 0 {
		return out
	}

	values := make([]float64, len(sets))
	for _, f := range fields {
		for i := range sets {
			values[i] = sets[i].Value(f)
		}
		fs := GeneFieldStats{
			Field: f,
			Mean:  stat.Mean(values, nil),
			Min:   values[0],
			Max:   values[0],
		}
		if len(values) > 1 {
			fs.Std = stat.StdDev(values, nil)
		}
		for _, v := range values {
			if v < fs.Min {
				fs.Min = v
			}
			if v > fs.Max {
				fs.Max = v
			}
		}
		out = append(out, fs)
	}
	return out
}

// LogValue implements slog.LogValuer so fitness summaries nest cleanly in
// structured battle logs.
func (s FitnessStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("min", s.Min),
		slog.Float64("p50", s.P50),
		slog.Float64("max", s.Max),
	)
}
