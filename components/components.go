// Package components defines ECS components for the battle simulation.
package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/skirmish/genes"
)

// Team identifies which side an agent fights for.
type Team uint8

const (
	TeamRed Team = iota
	TeamBlue
)

// String returns the display name of the team.
func (t Team) String() string {
	switch t {
	case TeamRed:
		return "red"
	case TeamBlue:
		return "blue"
	default:
		return "unknown"
	}
}

// Enemy returns the opposing team.
func (t Team) Enemy() Team {
	if t == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

// Position is an entity's world position.
type Position struct {
	Vec r3.Vec
}

// Velocity is an entity's velocity.
type Velocity struct {
	Vec r3.Vec
}

// Acceleration accumulates steering forces within a tick and is zeroed
// after integration.
type Acceleration struct {
	Vec r3.Vec
}

// Health tracks an agent's hit points. Alive flips to false exactly once,
// when Current reaches zero, and never flips back.
type Health struct {
	Current float64
	Max     float64
	Alive   bool
}

// Combat holds attack state and the damage tallies fitness is scored from.
type Combat struct {
	Damage        float64
	CooldownTimer float64 // seconds until the next attack is allowed
	Kills         int
	DamageDealt   float64
	DamageTaken   float64
}

// Ready reports whether the attack cooldown has elapsed.
func (c *Combat) Ready() bool {
	return c.CooldownTimer <= 0
}

// Agent bundles identity and battle-scoped state.
type Agent struct {
	ID        uint32
	Team      Team
	Player    bool
	Invisible bool // player only: suppressed from align/cohere/charge/attack sensing
	Fitness   float64
}

// Genome carries an agent's gene set. Assigned at spawn, read-only afterwards.
type Genome struct {
	Genes genes.GeneSet
}
