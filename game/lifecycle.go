package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/genes"
)

// spawnInitialTeams creates generation zero from random genomes.
func (g *Game) spawnInitialTeams() {
	size := g.cfg.Battle.TeamSize
	for _, team := range []components.Team{components.TeamRed, components.TeamBlue} {
		for i := 0; i < size; i++ {
			g.spawnAgent(team, genes.Random(g.rng))
		}
	}
}

// spawnPoint returns a jittered position near a team's side of the arena.
// Red holds negative X, blue positive.
func (g *Game) spawnPoint(team components.Team) r3.Vec {
	baseX := g.cfg.World.SpawnXFactor * g.cfg.Derived.Half
	if team == components.TeamRed {
		baseX = -baseX
	}
	spread := g.cfg.World.SpawnSpread
	jitter := func() float64 {
		return (g.rng.Float64()*2 - 1) * spread
	}
	return r3.Vec{X: baseX + jitter(), Y: jitter(), Z: jitter()}
}

// spawnAgent creates one evolving agent with the given genome.
func (g *Game) spawnAgent(team components.Team, genome genes.GeneSet) ecs.Entity {
	id := g.nextID
	g.nextID++

	pos := components.Position{Vec: g.spawnPoint(team)}
	vel := components.Velocity{}
	acc := components.Acceleration{}
	health := components.Health{Current: genome.Health, Max: genome.Health, Alive: true}
	combat := components.Combat{Damage: genome.Damage}
	agent := components.Agent{ID: id, Team: team}
	gen := components.Genome{Genes: genome}

	return g.entityMapper.NewEntity(&pos, &vel, &acc, &health, &combat, &agent, &gen)
}

// spawnPlayer creates the player-controlled agent. Its stats come from the
// player config rather than a genome; the genome it carries is inert.
func (g *Game) spawnPlayer() {
	pc := g.cfg.Player
	team := components.TeamRed
	if pc.Team == components.TeamBlue.String() {
		team = components.TeamBlue
	}

	id := g.nextID
	g.nextID++

	spawn := g.spawnPoint(team)
	pos := components.Position{Vec: spawn}
	vel := components.Velocity{}
	acc := components.Acceleration{}
	health := components.Health{Current: pc.Health, Max: pc.Health, Alive: true}
	combat := components.Combat{Damage: pc.Damage}
	agent := components.Agent{ID: id, Team: team, Player: true}
	gen := components.Genome{}

	g.player = g.entityMapper.NewEntity(&pos, &vel, &acc, &health, &combat, &agent, &gen)
	g.playerActive = true
	g.playerSpawn = spawn
}

// scheduleTurnover arms the generation turnover timer. Reset clears the
// pending flag, cancelling a respawn armed before it.
func (g *Game) scheduleTurnover() {
	g.turnoverPending = true
	g.turnoverAt = g.realClock + g.cfg.Battle.TurnoverDelay
}

// applyTurnover despawns the fought generation and spawns the bred one.
func (g *Game) applyTurnover() {
	g.turnoverPending = false
	g.removeNonPlayerAgents()

	for _, team := range []components.Team{components.TeamRed, components.TeamBlue} {
		for _, genome := range g.pendingNext[team] {
			g.spawnAgent(team, genome)
		}
		g.pendingNext[team] = nil
	}

	if g.playerActive {
		g.resetPlayer()
	}

	g.generation++
	g.battleClock = 0
	g.battleOver = false
	g.collector.Reset()
}

// removeNonPlayerAgents despawns every evolving agent, dead or alive. The
// collect-then-remove split keeps structural changes out of the query.
func (g *Game) removeNonPlayerAgents() {
	var toRemove []ecs.Entity

	query := g.entityFilter.Query()
	for query.Next() {
		_, _, _, _, _, agent, _ := query.Get()
		if !agent.Player {
			toRemove = append(toRemove, query.Entity())
		}
	}

	for _, e := range toRemove {
		g.world.RemoveEntity(e)
	}
}

// resetPlayer returns the player to its original spawn point at full health.
func (g *Game) resetPlayer() {
	pc := g.cfg.Player

	pos := g.posMap.Get(g.player)
	vel := g.velMap.Get(g.player)
	acc := g.accMap.Get(g.player)
	health := g.healthMap.Get(g.player)
	combat := g.combatMap.Get(g.player)

	pos.Vec = g.playerSpawn
	vel.Vec = r3.Vec{}
	acc.Vec = r3.Vec{}
	health.Current = pc.Health
	health.Max = pc.Health
	health.Alive = true
	combat.CooldownTimer = 0
	combat.Kills = 0
	combat.DamageDealt = 0
	combat.DamageTaken = 0

	g.playerIntent = r3.Vec{}
	g.playerBoost = false
}

// Reset discards the entire run: all agents, the battle history, and any
// pending turnover. A fresh generation zero spawns from random genomes.
func (g *Game) Reset() {
	g.turnoverPending = false
	g.pendingNext = [2][]genes.GeneSet{}

	var toRemove []ecs.Entity
	query := g.entityFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		g.world.RemoveEntity(e)
	}

	g.generation = 0
	g.battleClock = 0
	g.battleOver = false
	g.paused = false
	g.collector.Reset()
	g.history.Reset()

	g.spawnInitialTeams()
	g.playerActive = false
	if g.cfg.Player.Enabled {
		g.spawnPlayer()
	}
}
