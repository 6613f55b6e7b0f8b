package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/kudo/config"
	"github.com/pthm-cable/kudo/game"
	"github.com/pthm-cable/kudo/settings"
)

// scripts are the canned inputs for headless runs.
var scripts = map[string]func(tick int32) game.Intent{
	"idle":  func(int32) game.Intent { return game.Intent{} },
	"right": func(int32) game.Intent { return game.Intent{Right: true} },
	"hop":   func(int32) game.Intent { return game.Intent{Right: true, Up: true} },
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	script := flag.String("script", "right", "Headless input: idle, right or hop")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      rngSeed,
		Config:    config.Cfg(),
		Logger:    logger,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	if *headless {
		s, ok := scripts[*script]
		if !ok {
			slog.Error("unknown script", "script", *script)
			os.Exit(2)
		}
		opts.Script = s
		if err := runHeadless(opts, *maxTicks); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	store, err := settings.Open("kudo")
	if err != nil {
		slog.Warn("settings are memory-only", "error", err)
	}
	prefs := settings.NewManager(store, logger)

	if err := runWindow(opts, prefs, *maxTicks); err != nil {
		slog.Error("game failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless steps one game without raylib until the run ends or maxTicks
// is reached.
func runHeadless(opts game.Options, maxTicks int) error {
	g, err := game.NewGame(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless run",
		"seed", opts.Seed,
		"run_id", g.RunID(),
		"max_ticks", maxTicks,
	)

	for g.State() == game.Playing {
		g.UpdateHeadless()
		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
	slog.Info("headless run finished", "state", g.State().String(), "tick", g.Tick())
	return nil
}

// runWindow opens the raylib window and plays until it is closed.
func runWindow(opts game.Options, prefs *settings.Manager, maxTicks int) error {
	cfg := opts.Config
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	a, err := newApp(opts, prefs)
	if err != nil {
		return err
	}
	defer a.close()

	for !rl.WindowShouldClose() {
		if err := a.update(); err != nil {
			return err
		}
		a.draw()

		if maxTicks > 0 && int(a.game.Tick()) >= maxTicks {
			break
		}
	}
	return nil
}
