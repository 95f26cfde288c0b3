package game

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/skirmish/components"
)

// AgentView is one agent's externally visible state.
type AgentView struct {
	ID        uint32
	Team      components.Team
	Pos       r3.Vec
	Vel       r3.Vec
	Health    float64
	MaxHealth float64
	Alive     bool
	Player    bool
	Invisible bool
	Fitness   float64

	Kills       int
	DamageDealt float64
	DamageTaken float64
}

// WorldSnapshot is a read-only copy of the simulation state, safe to hand to
// renderers or controllers without exposing the ECS.
type WorldSnapshot struct {
	Generation  int
	BattleClock float64
	BattleOver  bool
	Paused      bool
	TimeScale   float64

	RedAlive  int
	BlueAlive int
	RedWins   int
	BlueWins  int
	Draws     int

	Agents []AgentView
}

// Snapshot copies the current simulation state. Dead agents stay visible
// until the next generation replaces them.
func (g *Game) Snapshot() WorldSnapshot {
	red, blue := g.countSurvivors()
	snap := WorldSnapshot{
		Generation:  g.generation,
		BattleClock: g.battleClock,
		BattleOver:  g.battleOver,
		Paused:      g.paused,
		TimeScale:   g.timeScale,
		RedAlive:    red,
		BlueAlive:   blue,
		RedWins:     g.history.Wins(components.TeamRed),
		BlueWins:    g.history.Wins(components.TeamBlue),
		Draws:       g.history.Draws(),
	}

	query := g.entityFilter.Query()
	for query.Next() {
		pos, vel, _, health, combat, agent, _ := query.Get()
		snap.Agents = append(snap.Agents, AgentView{
			ID:          agent.ID,
			Team:        agent.Team,
			Pos:         pos.Vec,
			Vel:         vel.Vec,
			Health:      health.Current,
			MaxHealth:   health.Max,
			Alive:       health.Alive,
			Player:      agent.Player,
			Invisible:   agent.Invisible,
			Fitness:     agent.Fitness,
			Kills:       combat.Kills,
			DamageDealt: combat.DamageDealt,
			DamageTaken: combat.DamageTaken,
		})
	}
	return snap
}
