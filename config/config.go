// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/skirmish/evolution"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World    WorldConfig       `yaml:"world"`
	Physics  PhysicsConfig     `yaml:"physics"`
	Battle   BattleConfig      `yaml:"battle"`
	Mutation MutationConfig    `yaml:"mutation"`
	Fitness  evolution.Weights `yaml:"fitness"`
	Player   PlayerConfig      `yaml:"player"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds arena dimensions. Size is the full extent of the cubic
// arena on each axis; walls sit at ±size/2.
type WorldConfig struct {
	Size         float64 `yaml:"size"`
	Margin       float64 `yaml:"margin"`        // boundary avoidance onset distance
	FloorOffset  float64 `yaml:"floor_offset"`  // floor height above the bottom wall
	SpawnSpread  float64 `yaml:"spawn_spread"`  // placement jitter around each team's spawn point
	SpawnXFactor float64 `yaml:"spawn_x_factor"` // team spawn X as a fraction of size/2
}

// PhysicsConfig holds simulation physics parameters.
type PhysicsConfig struct {
	DT              float64 `yaml:"dt"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	AgentRadius     float64 `yaml:"agent_radius"`
	CollisionFactor float64 `yaml:"collision_factor"` // collision distance as a multiple of agent radius
	AttackFactor    float64 `yaml:"attack_factor"`    // attack range as a multiple of agent radius
}

// BattleConfig holds battle lifecycle parameters.
type BattleConfig struct {
	TeamSize       int     `yaml:"team_size"`
	Duration       float64 `yaml:"duration"`        // seconds of simulated time per battle
	TurnoverDelay  float64 `yaml:"turnover_delay"`  // real seconds between battle end and respawn
	CollisionScale float64 `yaml:"collision_scale"` // contact damage as a fraction of attack damage
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Rate   float64 `yaml:"rate"`
	Amount float64 `yaml:"amount"`
}

// PlayerConfig holds the player agent's fixed stats. The player does not
// evolve; its capabilities come from here instead of a genome.
type PlayerConfig struct {
	Enabled        bool    `yaml:"enabled"`
	Team           string  `yaml:"team"`
	MaxSpeed       float64 `yaml:"max_speed"`
	BoostFactor    float64 `yaml:"boost_factor"`
	Health         float64 `yaml:"health"`
	Damage         float64 `yaml:"damage"`
	AttackCooldown float64 `yaml:"attack_cooldown"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Half              float64 // World.Size / 2
	FloorY            float64 // -Half + World.FloorOffset
	CollisionDistance float64 // Physics.AgentRadius * Physics.CollisionFactor
	AttackRange       float64 // Physics.AgentRadius * Physics.AttackFactor
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	if c.World.Size <= 0 {
		return fmt.Errorf("config: world.size must be positive, got %v", c.World.Size)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("config: physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Battle.TeamSize <= 0 {
		return fmt.Errorf("config: battle.team_size must be positive, got %d", c.Battle.TeamSize)
	}
	if c.Battle.Duration <= 0 {
		return fmt.Errorf("config: battle.duration must be positive, got %v", c.Battle.Duration)
	}
	if c.Mutation.Rate < 0 || c.Mutation.Rate > 1 {
		return fmt.Errorf("config: mutation.rate must be in [0, 1], got %v", c.Mutation.Rate)
	}
	if c.Mutation.Amount < 0 {
		return fmt.Errorf("config: mutation.amount must be non-negative, got %v", c.Mutation.Amount)
	}
	if c.Player.Team != "red" && c.Player.Team != "blue" {
		return fmt.Errorf("config: player.team must be red or blue, got %q", c.Player.Team)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Half = c.World.Size / 2
	c.Derived.FloorY = -c.Derived.Half + c.World.FloorOffset
	c.Derived.CollisionDistance = c.Physics.AgentRadius * c.Physics.CollisionFactor
	c.Derived.AttackRange = c.Physics.AgentRadius * c.Physics.AttackFactor
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
