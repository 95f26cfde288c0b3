package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/skirmish/components"
)

// BattleRecord is one battle's outcome, written as a row of battles.csv.
type BattleRecord struct {
	Generation int     `csv:"generation"`
	Duration   float64 `csv:"duration"`
	Winner     string  `csv:"winner"`

	RedSurvivors  int `csv:"red_survivors"`
	BlueSurvivors int `csv:"blue_survivors"`
	RedKills      int `csv:"red_kills"`
	BlueKills     int `csv:"blue_kills"`

	AttacksAttempted int     `csv:"attacks_attempted"`
	AttacksHit       int     `csv:"attacks_hit"`
	CollisionHits    int     `csv:"collision_hits"`
	HitRate          float64 `csv:"hit_rate"`

	RedFitnessMean  float64 `csv:"red_fitness_mean"`
	RedFitnessMax   float64 `csv:"red_fitness_max"`
	BlueFitnessMean float64 `csv:"blue_fitness_mean"`
	BlueFitnessMax  float64 `csv:"blue_fitness_max"`
}

// DrawWinner is the winner value recorded when a battle times out with both
// teams equally populated.
const DrawWinner = "draw"

// LogValue implements slog.LogValuer for per-battle structured logs.
func (r BattleRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", r.Generation),
		slog.Float64("duration", r.Duration),
		slog.String("winner", r.Winner),
		slog.Int("red_survivors", r.RedSurvivors),
		slog.Int("blue_survivors", r.BlueSurvivors),
		slog.Int("red_kills", r.RedKills),
		slog.Int("blue_kills", r.BlueKills),
		slog.Int("attacks_attempted", r.AttacksAttempted),
		slog.Int("attacks_hit", r.AttacksHit),
		slog.Int("collision_hits", r.CollisionHits),
		slog.Float64("hit_rate", r.HitRate),
		slog.Float64("red_fitness_mean", r.RedFitnessMean),
		slog.Float64("blue_fitness_mean", r.BlueFitnessMean),
	)
}

// History is the append-only record of completed battles with running win
// tallies. Reset clears it along with the rest of the simulation.
type History struct {
	records []BattleRecord
	wins    [2]int
	draws   int
}

// NewHistory creates an empty battle history.
func NewHistory() *History {
	return &History{}
}

// Append records a completed battle and updates the win tallies.
func (h *History) Append(r BattleRecord) {
	h.records = append(h.records, r)
	switch r.Winner {
	case components.TeamRed.String():
		h.wins[components.TeamRed]++
	case components.TeamBlue.String():
		h.wins[components.TeamBlue]++
	default:
		h.draws++
	}
}

// Len returns the number of completed battles.
func (h *History) Len() int {
	return len(h.records)
}

// At returns the record of battle i in completion order.
func (h *History) At(i int) BattleRecord {
	return h.records[i]
}

// Last returns the most recent battle record, false when none exist.
func (h *History) Last() (BattleRecord, bool) {
	if len(h.records) == 0 {
		return BattleRecord{}, false
	}
	return h.records[len(h.records)-1], true
}

// Wins returns a team's running win count.
func (h *History) Wins(team components.Team) int {
	return h.wins[team]
}

// Draws returns the running draw count.
func (h *History) Draws() int {
	return h.draws
}

// Reset discards all records and tallies.
func (h *History) Reset() {
	h.records = h.records[:0]
	h.wins = [2]int{}
	h.draws = 0
}
