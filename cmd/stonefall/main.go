// Command stonefall runs the civilization simulation server.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/talgya/stonefall/internal/api"
	"github.com/talgya/stonefall/internal/chronicle"
	"github.com/talgya/stonefall/internal/config"
	"github.com/talgya/stonefall/internal/game"
	"github.com/talgya/stonefall/internal/narrative"
	"github.com/talgya/stonefall/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	slog.Info("starting stonefall", "seed", seed, "port", cfg.Port)

	// ── Chronicle persistence ─────────────────────────────────────────
	var db *chronicle.DB
	if cfg.DBPath != "" {
		os.MkdirAll(filepath.Dir(cfg.DBPath), 0755)
		db, err = chronicle.Open(cfg.DBPath)
		if err != nil {
			slog.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		slog.Info("chronicle database opened", "path", cfg.DBPath)
	} else {
		slog.Info("no db_path configured, chronicle is in-memory only")
	}

	// ── World generation ──────────────────────────────────────────────
	genCfg := world.DefaultGenConfig()
	genCfg.Seed = seed
	genCfg.Width = cfg.Map.Width
	genCfg.Height = cfg.Map.Height
	genCfg.WaterLevel = cfg.Map.WaterLevel
	genCfg.MountainLvl = cfg.Map.MountainLvl
	genCfg.MinGold = cfg.Map.MinGold

	mapSeed := seed
	mapGen := func() *world.Map {
		c := genCfg
		c.Seed = mapSeed
		mapSeed++ // each reset gets a fresh world
		return world.Generate(c)
	}

	// ── Narrative events ──────────────────────────────────────────────
	client := narrative.NewClient(
		cfg.Narrative.URL,
		time.Duration(cfg.Narrative.TimeoutMS)*time.Millisecond,
		cfg.Narrative.MaxRetries,
	)
	if client != nil {
		slog.Info("narrative service enabled", "url", cfg.Narrative.URL)
	} else {
		slog.Info("no narrative URL configured, using fallback events only")
	}
	fallback := narrative.NewFallback(rand.New(rand.NewSource(seed + 1)))
	source := narrative.NewSource(client, fallback)

	// ── Game ──────────────────────────────────────────────────────────
	opts := game.Options{
		MapGen:    mapGen,
		Rand:      rand.New(rand.NewSource(seed)),
		Generator: source,
	}
	if db != nil {
		opts.Recorder = db
	}
	g := game.New(opts)

	runner := game.NewRunner(g, time.Duration(cfg.TickIntervalMS)*time.Millisecond)

	// ── HTTP API ──────────────────────────────────────────────────────
	apiServer := &api.Server{
		Game: g,
		DB:   db,
		Port: cfg.Port,
	}
	apiServer.Start()

	// ── Start ─────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		runner.Stop()
	}()

	fmt.Printf("\n%s awaits its first command.\n", g.CivilizationName())
	fmt.Printf("API: http://localhost:%d/api/v1/state\n", cfg.Port)
	fmt.Println("Simulation starts paused. POST /api/v1/pause to begin. (Ctrl+C to stop)")

	runner.Run()

	stats := g.Statistics()
	slog.Info("simulation stopped",
		"ticks", g.Tick(),
		"era", g.Era(),
		"max_population", stats.MaxPopulation,
		"battles", stats.TotalBattles,
		"events", stats.EventsEncountered,
	)
}
