// Package telemetry accumulates battle events, summarizes generations, and
// writes structured experiment output as CSV.
package telemetry

import "github.com/pthm-cable/skirmish/components"

// Collector accumulates combat events over one battle. Counters reset at
// the start of the next battle.
type Collector struct {
	attacksAttempted int
	attacksHit       int
	collisionHits    int

	kills  [2]int // indexed by attacker team
	deaths [2]int // indexed by victim team
}

// NewCollector creates an empty battle collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordAttackAttempt records an attack fired, whether or not it landed.
func (c *Collector) RecordAttackAttempt() {
	c.attacksAttempted++
}

// RecordAttackHit records an attack that connected.
func (c *Collector) RecordAttackHit() {
	c.attacksHit++
}

// RecordCollisionHit records contact damage from two agents overlapping.
func (c *Collector) RecordCollisionHit() {
	c.collisionHits++
}

// RecordKill credits a kill to the attacking team.
func (c *Collector) RecordKill(attacker components.Team) {
	c.kills[attacker]++
}

// RecordDeath records a death on the victim's team.
func (c *Collector) RecordDeath(victim components.Team) {
	c.deaths[victim]++
}

// Kills returns the kill count credited to a team this battle.
func (c *Collector) Kills(team components.Team) int {
	return c.kills[team]
}

// Deaths returns the death count suffered by a team this battle.
func (c *Collector) Deaths(team components.Team) int {
	return c.deaths[team]
}

// AttacksAttempted returns how many attacks were fired this battle.
func (c *Collector) AttacksAttempted() int {
	return c.attacksAttempted
}

// AttacksHit returns how many attacks landed this battle.
func (c *Collector) AttacksHit() int {
	return c.attacksHit
}

// CollisionHits returns how many contact hits occurred this battle.
func (c *Collector) CollisionHits() int {
	return c.collisionHits
}

// HitRate returns the fraction of fired attacks that landed, zero when no
// attack was fired.
func (c *Collector) HitRate() float64 {
	if c.attacksAttempted == 0 {
		return 0
	}
	return float64(c.attacksHit) / float64(c.attacksAttempted)
}

// Reset clears all counters for the next battle.
func (c *Collector) Reset() {
	*c = Collector{}
}
