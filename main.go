package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/terminal"
)

func main() {
	// CLI flags
	mode := flag.String("mode", "window", "Host: window, terminal or headless")
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	captureDir := flag.String("capture-dir", "", "Directory for per-tick PNG frames (window mode, toggle with C)")
	logFile := flag.String("log-file", "drift.log", "Log file used in terminal mode")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster headless runs)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// The terminal host owns stdout, so logs go to a file there.
	logOut := os.Stdout
	if *mode == "terminal" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			slog.Error("failed to open log file", "path", *logFile, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Build game options
	opts := game.Options{
		Seed:           rngSeed,
		Logger:         logger,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		CaptureDir:     *captureDir,
		StepsPerUpdate: *stepsPerUpdate,
	}

	switch *mode {
	case "headless":
		err = runHeadless(cfg, opts, *maxTicks)
	case "terminal":
		err = runTerminal(cfg, opts, *maxTicks)
	case "window":
		err = runWindow(cfg, opts, *maxTicks)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		slog.Error("run failed", "mode", *mode, "error", err)
		os.Exit(1)
	}
}

// runHeadless is a pure CPU simulation, no raylib needed.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int) error {
	opts.Headless = true
	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"steps_per_update", opts.StepsPerUpdate,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	for ctx.Err() == nil {
		g.UpdateHeadless()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			return nil
		}
	}
	slog.Info("interrupted", "tick", g.Tick())
	return nil
}

func runTerminal(cfg *config.Config, opts game.Options, maxTicks int) error {
	opts.Headless = true
	opts.Audio = true
	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	slog.Info("starting terminal simulation", "seed", opts.Seed)

	host := terminal.NewHost(screen, g, g.Engine().Config(), opts.Seed, maxTicks, slog.Default())
	return host.Run(context.Background())
}

func runWindow(cfg *config.Config, opts game.Options, maxTicks int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Drift")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && g.Tick() >= maxTicks {
			break
		}
	}
	return nil
}
