package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/evolution"
	"github.com/pthm-cable/skirmish/genes"
	"github.com/pthm-cable/skirmish/systems"
	"github.com/pthm-cable/skirmish/telemetry"
)

// Update advances the game by one frame. frameDT is real time and drives
// the turnover timer; the simulation itself steps by the configured fixed
// dt scaled by the time scale.
func (g *Game) Update(frameDT float64) {
	g.realClock += frameDT
	if g.turnoverPending && g.realClock >= g.turnoverAt {
		g.applyTurnover()
		return // spawn frame; stepping resumes next update
	}

	if g.paused || g.battleOver {
		return
	}
	g.step(g.cfg.Physics.DT * g.timeScale)
}

// ForceEndBattle ends the current battle immediately, scoring it as if the
// clock had run out.
func (g *Game) ForceEndBattle() {
	if g.battleOver {
		return
	}
	g.endBattle()
}

// step advances the battle by dt simulated seconds.
func (g *Game) step(dt float64) {
	g.rebuildRoster()
	g.updateAgents()
	g.integrate(dt)

	g.battleClock += dt

	red, blue := g.countSurvivors()
	if red == 0 || blue == 0 || g.battleClock >= g.cfg.Battle.Duration {
		g.endBattle()
	}
}

// rebuildRoster snapshots every living agent. Steering and combat scans for
// this tick read the snapshot, so force computation never observes another
// agent mid-update.
func (g *Game) rebuildRoster() {
	g.roster.Clear()

	query := g.entityFilter.Query()
	for query.Next() {
		pos, vel, _, health, _, agent, _ := query.Get()
		if !health.Alive {
			continue
		}
		g.roster.Add(systems.AgentSnapshot{
			Entity:    query.Entity(),
			Pos:       pos.Vec,
			Vel:       vel.Vec,
			Team:      agent.Team,
			Health:    health.Current,
			MaxHealth: health.Max,
			Player:    agent.Player,
			Invisible: agent.Invisible,
		})
	}
}

// updateAgents computes steering forces and resolves contact and attacks
// for every living agent.
func (g *Game) updateAgents() {
	for i := 0; i < g.roster.Len(); i++ {
		self := g.roster.At(i)
		if !g.healthMap.Get(self.Entity).Alive {
			continue // killed earlier this tick
		}

		if self.Player {
			pc := g.cfg.Player
			g.resolveContact(i, pc.Damage, pc.AttackCooldown, 0)
			g.tryAttack(i, pc.Damage, pc.AttackCooldown)
			continue
		}

		gset := &g.genomeMap.Get(self.Entity).Genes
		acc := g.accMap.Get(self.Entity)

		force := g.steering.Separate(i, gset)
		force = r3.Add(force, g.steering.Align(i, gset))
		force = r3.Add(force, g.steering.Cohere(i, gset))
		force = r3.Add(force, g.steering.Charge(i, gset))
		force = r3.Add(force, g.steering.Flee(i, gset))
		force = r3.Add(force, systems.AvoidBounds(self.Pos, gset.MaxForce, g.bounds))
		acc.Vec = r3.Add(acc.Vec, force)

		g.resolveContact(i, gset.Damage, gset.AttackCooldown, gset.MaxForce)
		g.tryAttack(i, gset.Damage, gset.AttackCooldown)
	}
}

// resolveContact handles agents overlapping within the collision distance:
// a repulsion impulse pushes them apart, and contact with an enemy deals
// scaled damage when the attack cooldown is ready. maxForce zero skips the
// impulse (the player moves by intent, not forces).
func (g *Game) resolveContact(idx int, damage, cooldown, maxForce float64) {
	self := g.roster.At(idx)
	g.scratch = g.roster.QueryRadiusInto(g.scratch[:0], self.Pos, g.cfg.Derived.CollisionDistance, idx)
	if len(g.scratch) == 0 {
		return
	}

	combat := g.combatMap.Get(self.Entity)
	acc := g.accMap.Get(self.Entity)
	hit := false

	for _, nb := range g.scratch {
		other := g.roster.At(nb.Idx)
		targetHealth := g.healthMap.Get(other.Entity)
		if !targetHealth.Alive {
			continue // killed earlier this tick; corpses neither push nor bleed
		}

		if nb.Dist > 0 && maxForce > 0 {
			away := r3.Scale(-1/nb.Dist, nb.Delta)
			acc.Vec = r3.Add(acc.Vec, r3.Scale(repulsionFactor*maxForce, away))
		}

		if hit || other.Team == self.Team || !combat.Ready() {
			continue
		}

		targetCombat := g.combatMap.Get(other.Entity)
		g.collector.RecordCollisionHit()
		killed := systems.TakeDamage(targetHealth, targetCombat, combat, damage*g.cfg.Battle.CollisionScale)
		combat.CooldownTimer = cooldown
		hit = true
		if killed {
			g.collector.RecordKill(self.Team)
			g.collector.RecordDeath(other.Team)
		}
	}
}

// tryAttack fires at the first living visible enemy within attack range.
// Cloaked targets cannot be attacked, and an enemy that died earlier in the
// tick is no target at all: the cooldown is only spent on landed damage.
func (g *Game) tryAttack(idx int, damage, cooldown float64) {
	self := g.roster.At(idx)
	combat := g.combatMap.Get(self.Entity)
	if !combat.Ready() {
		return
	}

	g.scratch = g.roster.QueryRadiusInto(g.scratch[:0], self.Pos, g.cfg.Derived.AttackRange, idx)
	for _, nb := range g.scratch {
		other := g.roster.At(nb.Idx)
		if other.Team == self.Team || other.Invisible {
			continue
		}

		targetHealth := g.healthMap.Get(other.Entity)
		if !targetHealth.Alive {
			continue // killed earlier this tick; keep scanning for a live target
		}
		targetCombat := g.combatMap.Get(other.Entity)

		g.collector.RecordAttackAttempt()
		g.collector.RecordAttackHit()
		killed := systems.TakeDamage(targetHealth, targetCombat, combat, damage)
		combat.CooldownTimer = cooldown
		if killed {
			g.collector.RecordKill(self.Team)
			g.collector.RecordDeath(other.Team)
		}
		return
	}
}

// integrate advances motion and cooldowns for every living agent.
func (g *Game) integrate(dt float64) {
	speedMult := g.cfg.Physics.SpeedMultiplier
	radius := g.cfg.Physics.AgentRadius

	query := g.entityFilter.Query()
	for query.Next() {
		pos, vel, acc, health, combat, agent, genome := query.Get()
		if !health.Alive {
			continue
		}

		if combat.CooldownTimer > 0 {
			combat.CooldownTimer -= dt
			if combat.CooldownTimer < 0 {
				combat.CooldownTimer = 0
			}
		}

		if agent.Player {
			g.integratePlayer(pos, vel, dt)
			continue
		}
		systems.Integrate(pos, vel, acc, genome.Genes.MaxSpeed, speedMult, dt, radius, g.bounds)
	}
}

// countSurvivors returns the living evolving agents per team. The player
// never counts toward elimination.
func (g *Game) countSurvivors() (red, blue int) {
	query := g.entityFilter.Query()
	for query.Next() {
		_, _, _, health, _, agent, _ := query.Get()
		if !health.Alive || agent.Player {
			continue
		}
		if agent.Team == components.TeamRed {
			red++
		} else {
			blue++
		}
	}
	return red, blue
}

// endBattle scores the fought generation, records the outcome, breeds the
// next generation, and arms the turnover timer.
func (g *Game) endBattle() {
	g.battleOver = true

	red, blue := g.countSurvivors()
	winner := telemetry.DrawWinner
	switch {
	case red > blue:
		winner = components.TeamRed.String()
	case blue > red:
		winner = components.TeamBlue.String()
	}

	var survivors [2][]evolution.Score
	var fitnessValues [2][]float64
	var genomes [2][]genes.GeneSet

	query := g.entityFilter.Query()
	for query.Next() {
		_, _, _, health, combat, agent, genome := query.Get()
		if agent.Player {
			continue
		}

		f := evolution.Fitness(health.Alive, combat.Kills, combat.DamageDealt, combat.DamageTaken, g.cfg.Fitness)
		agent.Fitness = f

		team := agent.Team
		fitnessValues[team] = append(fitnessValues[team], f)
		genomes[team] = append(genomes[team], genome.Genes)
		if health.Alive {
			survivors[team] = append(survivors[team], evolution.Score{Genes: genome.Genes, Fitness: f})
		}
	}

	for _, team := range []components.Team{components.TeamRed, components.TeamBlue} {
		g.pendingNext[team] = evolution.NextGeneration(
			g.rng, survivors[team], g.cfg.Battle.TeamSize,
			g.cfg.Mutation.Rate, g.cfg.Mutation.Amount,
		)
	}

	redStats := telemetry.ComputeFitnessStats(fitnessValues[components.TeamRed])
	blueStats := telemetry.ComputeFitnessStats(fitnessValues[components.TeamBlue])

	record := telemetry.BattleRecord{
		Generation:       g.generation,
		Duration:         g.battleClock,
		Winner:           winner,
		RedSurvivors:     red,
		BlueSurvivors:    blue,
		RedKills:         g.collector.Kills(components.TeamRed),
		BlueKills:        g.collector.Kills(components.TeamBlue),
		AttacksAttempted: g.collector.AttacksAttempted(),
		AttacksHit:       g.collector.AttacksHit(),
		CollisionHits:    g.collector.CollisionHits(),
		HitRate:          g.collector.HitRate(),
		RedFitnessMean:   redStats.Mean,
		RedFitnessMax:    redStats.Max,
		BlueFitnessMean:  blueStats.Mean,
		BlueFitnessMax:   blueStats.Max,
	}
	g.history.Append(record)

	if err := g.output.WriteBattle(record); err != nil {
		slog.Error("writing battle record", "error", err)
	}
	for _, team := range []components.Team{components.TeamRed, components.TeamBlue} {
		stats := telemetry.ComputeGeneStats(genomes[team])
		if err := g.output.WriteGeneStats(g.generation, team, stats); err != nil {
			slog.Error("writing gene stats", "error", err)
		}
	}

	slog.Info("battle complete", "battle", record)
	if g.logStats {
		slog.Info("fitness",
			"generation", g.generation,
			"red", redStats,
			"blue", blueStats,
		)
	}

	g.scheduleTurnover()
}
