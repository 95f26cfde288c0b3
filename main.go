package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/skirmish/config"
	"github.com/pthm-cable/skirmish/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxGenerations := flag.Int("max-generations", 0, "Stop after N completed battles (0 = unlimited)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logStats := flag.Bool("log-stats", false, "Log per-generation fitness stats via slog")
	timeScale := flag.Float64("time-scale", 1, "Simulation speed multiplier")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGame(cfg, game.Options{
		Seed:      rngSeed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	g.SetTimeScale(*timeScale)

	slog.Info("starting simulation",
		"seed", rngSeed,
		"team_size", cfg.Battle.TeamSize,
		"battle_duration", cfg.Battle.Duration,
		"max_generations", *maxGenerations,
		"time_scale", *timeScale,
	)

	// Fixed-step headless loop. Each update advances the real clock by one
	// step as well, so the turnover delay elapses in simulated frames
	// instead of wall time.
	for {
		g.Update(cfg.Physics.DT)

		if *maxGenerations > 0 && g.History().Len() >= *maxGenerations && g.BattleOver() {
			break
		}
	}

	slog.Info("simulation finished",
		"battles", g.History().Len(),
		"generation", g.Generation(),
	)
}
