// Package systems implements the per-tick simulation systems: the roster
// snapshot with neighbor queries, steering forces, combat resolution, and
// motion integration.
package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/skirmish/components"
)

// AgentSnapshot is one living agent's state captured at tick start. Steering
// and combat scans read these stable values while other agents are being
// updated, so force computation never observes a partially updated tick.
type AgentSnapshot struct {
	Entity    ecs.Entity
	Pos       r3.Vec
	Vel       r3.Vec
	Team      components.Team
	Health    float64
	MaxHealth float64
	Player    bool
	Invisible bool
}

// Neighbor references a roster entry found by a radius query, with the
// offset from the query origin and the distance precomputed.
type Neighbor struct {
	Idx   int
	Delta r3.Vec // query origin -> agent
	Dist  float64
}

// Roster holds the per-tick snapshot of all living agents. Radius queries
// are linear scans over the snapshot; the all-pairs cost is fine at two
// teams of 50.
type Roster struct {
	agents []AgentSnapshot
}

// NewRoster creates a roster with capacity for the expected population.
func NewRoster(capacity int) *Roster {
	return &Roster{agents: make([]AgentSnapshot, 0, capacity)}
}

// Clear empties the roster for the next tick's rebuild.
func (r *Roster) Clear() {
	r.agents = r.agents[:0]
}

// Add appends a living agent's snapshot and returns its roster index.
func (r *Roster) Add(a AgentSnapshot) int {
	r.agents = append(r.agents, a)
	return len(r.agents) - 1
}

// Len returns the number of snapshotted agents.
func (r *Roster) Len() int {
	return len(r.agents)
}

// At returns the snapshot at index i.
func (r *Roster) At(i int) *AgentSnapshot {
	return &r.agents[i]
}

// QueryRadiusInto appends every agent within radius of origin to dst,
// skipping the roster entry at the excluded index (pass a negative index to
// keep all). Returns the updated slice; reuse dst across calls to avoid
// allocations.
func (r *Roster) QueryRadiusInto(dst []Neighbor, origin r3.Vec, radius float64, exclude int) []Neighbor {
	radiusSq := radius * radius
	for i := range r.agents {
		if i == exclude {
			continue
		}
		delta := r3.Sub(r.agents[i].Pos, origin)
		distSq := r3.Norm2(delta)
		if distSq > radiusSq {
			continue
		}
		dst = append(dst, Neighbor{Idx: i, Delta: delta, Dist: r3.Norm(delta)})
	}
	return dst
}
