package game

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/systems"
)

// PlayerActive reports whether a player agent is in the arena.
func (g *Game) PlayerActive() bool {
	return g.playerActive
}

// SetPlayerIntent sets the player's movement direction for subsequent ticks.
// The vector is normalized internally, so callers pass raw input axes; boost
// multiplies the player's speed. A zero vector stops the player.
func (g *Game) SetPlayerIntent(move r3.Vec, boost bool) {
	if !g.playerActive {
		return
	}
	g.playerIntent = move
	g.playerBoost = boost
}

// SetPlayerInvisible cloaks or reveals the player. While cloaked, enemies
// neither charge at nor attack the player, and teammates stop flocking with
// it. Fleeing agents and separation still react to it.
func (g *Game) SetPlayerInvisible(invisible bool) {
	if !g.playerActive {
		return
	}
	g.playerInvisible = invisible
	g.agentMap.Get(g.player).Invisible = invisible
}

// PlayerInvisible reports whether the player is cloaked.
func (g *Game) PlayerInvisible() bool {
	return g.playerInvisible
}

// integratePlayer moves the player by its intent vector. Unlike evolving
// agents the player is not force-driven: velocity follows input directly,
// clamped to the arena.
func (g *Game) integratePlayer(pos *components.Position, vel *components.Velocity, dt float64) {
	pc := g.cfg.Player

	speed := pc.MaxSpeed * g.cfg.Physics.SpeedMultiplier
	if g.playerBoost {
		speed *= pc.BoostFactor
	}
	vel.Vec = r3.Scale(speed, systems.SafeUnit(g.playerIntent))
	pos.Vec = r3.Add(pos.Vec, r3.Scale(dt, vel.Vec))

	g.clampToArena(&pos.Vec)
}

// clampToArena keeps a position inside the walls and above the floor.
func (g *Game) clampToArena(p *r3.Vec) {
	radius := g.cfg.Physics.AgentRadius
	half := g.bounds.Half - radius
	floor := g.bounds.FloorY + radius

	if p.X > half {
		p.X = half
	} else if p.X < -half {
		p.X = -half
	}
	if p.Z > half {
		p.Z = half
	} else if p.Z < -half {
		p.Z = -half
	}
	if p.Y > half {
		p.Y = half
	} else if p.Y < floor {
		p.Y = floor
	}
}
