package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.World.Size != 800 {
		t.Errorf("world size = %v, want 800", cfg.World.Size)
	}
	if cfg.Battle.TeamSize != 50 {
		t.Errorf("team size = %d, want 50", cfg.Battle.TeamSize)
	}
	if cfg.Battle.Duration != 90 {
		t.Errorf("battle duration = %v, want 90", cfg.Battle.Duration)
	}
	if cfg.Mutation.Rate != 0.15 || cfg.Mutation.Amount != 0.25 {
		t.Errorf("mutation = %v/%v, want 0.15/0.25", cfg.Mutation.Rate, cfg.Mutation.Amount)
	}
	if cfg.Fitness.Survival != 100 || cfg.Fitness.Kill != 50 {
		t.Errorf("fitness weights = %+v", cfg.Fitness)
	}
}

func TestLoadComputesDerived(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Derived.Half != 400 {
		t.Errorf("half = %v, want 400", cfg.Derived.Half)
	}
	if cfg.Derived.FloorY != -395 {
		t.Errorf("floor = %v, want -395", cfg.Derived.FloorY)
	}
	if math.Abs(cfg.Derived.CollisionDistance-11) > 1e-9 {
		t.Errorf("collision distance = %v, want 11", cfg.Derived.CollisionDistance)
	}
	if math.Abs(cfg.Derived.AttackRange-15) > 1e-9 {
		t.Errorf("attack range = %v, want 15", cfg.Derived.AttackRange)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("battle:\n  team_size: 10\nworld:\n  size: 200\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Battle.TeamSize != 10 {
		t.Errorf("team size = %d, want overridden 10", cfg.Battle.TeamSize)
	}
	if cfg.Derived.Half != 100 {
		t.Errorf("half = %v, want recomputed 100", cfg.Derived.Half)
	}
	// Untouched fields keep their defaults.
	if cfg.Battle.Duration != 90 {
		t.Errorf("battle duration = %v, want default 90", cfg.Battle.Duration)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero team size", "battle:\n  team_size: 0\n"},
		{"negative dt", "physics:\n  dt: -0.1\n"},
		{"mutation rate above one", "mutation:\n  rate: 1.5\n"},
		{"unknown player team", "player:\n  team: green\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load accepted invalid config")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load accepted a missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config: %v", err)
	}
	if loaded.World.Size != cfg.World.Size || loaded.Battle.TeamSize != cfg.Battle.TeamSize {
		t.Errorf("round trip mismatch: %+v vs %+v", loaded.World, cfg.World)
	}
}
