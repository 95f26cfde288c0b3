// Package game runs the battle simulation: two evolving teams fight in a
// bounded arena, survivors breed the next generation, and an optional
// player-controlled agent joins one side.
package game

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/genes"
	"github.com/pthm-cable/skirmish/systems"
	"github.com/pthm-cable/skirmish/telemetry"
)

// repulsionFactor scales the collision pushback impulse relative to an
// agent's max force.
const repulsionFactor = 5.0

// Options configures a new game instance.
type Options struct {
	Seed      int64
	LogStats  bool
	OutputDir string
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config

	// Entity mappers - using the 7 components every agent carries
	entityMapper *ecs.Map7[
		components.Position,
		components.Velocity,
		components.Acceleration,
		components.Health,
		components.Combat,
		components.Agent,
		components.Genome,
	]
	entityFilter *ecs.Filter7[
		components.Position,
		components.Velocity,
		components.Acceleration,
		components.Health,
		components.Combat,
		components.Agent,
		components.Genome,
	]

	// Individual component mappers for lookups
	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	accMap    *ecs.Map1[components.Acceleration]
	healthMap *ecs.Map1[components.Health]
	combatMap *ecs.Map1[components.Combat]
	agentMap  *ecs.Map1[components.Agent]
	genomeMap *ecs.Map1[components.Genome]

	roster   *systems.Roster
	steering *systems.Steering
	bounds   systems.Bounds
	scratch  []systems.Neighbor // reused by contact and attack scans

	// Battle state
	generation  int
	battleClock float64
	battleOver  bool
	nextID      uint32

	// Generation turnover runs on the real clock so the delay between
	// battles is unaffected by pause or time scale.
	realClock       float64
	turnoverAt      float64
	turnoverPending bool
	pendingNext     [2][]genes.GeneSet

	paused    bool
	timeScale float64

	// Player agent
	player          ecs.Entity
	playerActive    bool
	playerSpawn     r3.Vec
	playerIntent    r3.Vec
	playerBoost     bool
	playerInvisible bool

	collector *telemetry.Collector
	history   *telemetry.History
	output    *telemetry.OutputManager
	logStats  bool
}

// NewGame creates a game from the loaded configuration and spawns the first
// generation of both teams.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	world := ecs.NewWorld()
	capacity := cfg.Battle.TeamSize*2 + 1

	g := &Game{
		world: world,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		cfg:   cfg,
		entityMapper: ecs.NewMap7[
			components.Position,
			components.Velocity,
			components.Acceleration,
			components.Health,
			components.Combat,
			components.Agent,
			components.Genome,
		](world),
		entityFilter: ecs.NewFilter7[
			components.Position,
			components.Velocity,
			components.Acceleration,
			components.Health,
			components.Combat,
			components.Agent,
			components.Genome,
		](world),
		posMap:    ecs.NewMap1[components.Position](world),
		velMap:    ecs.NewMap1[components.Velocity](world),
		accMap:    ecs.NewMap1[components.Acceleration](world),
		healthMap: ecs.NewMap1[components.Health](world),
		combatMap: ecs.NewMap1[components.Combat](world),
		agentMap:  ecs.NewMap1[components.Agent](world),
		genomeMap: ecs.NewMap1[components.Genome](world),
		roster:    systems.NewRoster(capacity),
		scratch:   make([]systems.Neighbor, 0, 64),
		bounds: systems.Bounds{
			Half:   cfg.Derived.Half,
			FloorY: cfg.Derived.FloorY,
			Margin: cfg.World.Margin,
		},
		timeScale: 1,
		collector: telemetry.NewCollector(),
		history:   telemetry.NewHistory(),
		output:    output,
		logStats:  opts.LogStats,
	}
	g.steering = systems.NewSteering(g.roster)

	g.spawnInitialTeams()
	if cfg.Player.Enabled {
		g.spawnPlayer()
	}

	return g, nil
}

// Generation returns the current generation number, starting at zero.
func (g *Game) Generation() int {
	return g.generation
}

// BattleClock returns the simulated seconds elapsed in the current battle.
func (g *Game) BattleClock() float64 {
	return g.battleClock
}

// BattleOver reports whether the current battle has ended and the next
// generation is waiting to spawn.
func (g *Game) BattleOver() bool {
	return g.battleOver
}

// History returns the record of completed battles.
func (g *Game) History() *telemetry.History {
	return g.history
}

// SetPaused suspends or resumes simulation stepping. Turnover scheduling
// keeps running while paused.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// Paused reports whether the simulation is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// SetTimeScale adjusts simulation speed. Values at or below zero are
// ignored.
func (g *Game) SetTimeScale(scale float64) {
	if scale <= 0 {
		return
	}
	g.timeScale = scale
}

// TimeScale returns the current simulation speed multiplier.
func (g *Game) TimeScale() float64 {
	return g.timeScale
}

// Close flushes and releases output files.
func (g *Game) Close() error {
	return g.output.Close()
}
