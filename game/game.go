// Package game hosts the engine in a raylib window or a headless loop and
// wires it to telemetry, frame capture and audio.
package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/audio"
	"github.com/pthm-cable/drift/capture"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/engine"
	"github.com/pthm-cable/drift/input"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/telemetry"
	"github.com/pthm-cable/drift/ui"
)

// Options configures game behavior.
type Options struct {
	Seed           int64
	Logger         *slog.Logger // nil = slog.Default()
	LogStats       bool         // Log window and perf stats via slog
	OutputDir      string       // Directory for CSV logs (empty = disabled)
	CaptureDir     string       // Overrides capture.dir from config when set
	Headless       bool         // Run without raylib graphics or capture
	Audio          bool         // Play the relocation chime even when headless
	StepsPerUpdate int          // Ticks per Update call (default 1)

	// StatsCallback is invoked with each flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game owns the engine and everything around it.
type Game struct {
	cfg    *config.Config
	engine *engine.Engine
	logger *slog.Logger
	frame  *engine.Frame

	// Input
	tracker input.Tracker
	pending []input.Command

	// Rendering (nil when headless)
	builder   *renderer.Builder
	target    rl.RenderTexture2D
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	controls  *ui.ControlsPanel
	registry  *systems.SystemRegistry

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool

	// Capture
	recorder     *capture.Recorder
	capturing    bool
	lastCaptured int

	chime *audio.Chime

	// State
	headless       bool
	paused         bool
	showPerf       bool
	stepsPerUpdate int
	screenWidth    float32
	screenHeight   float32
}

// New creates a game. In windowed mode the raylib window must already be
// open.
func New(cfg *config.Config, opts Options) (*Game, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)

	eo := engine.Options{Seed: opts.Seed, Logger: logger, Perf: perf}
	if !opts.Headless {
		eo.Width = float64(rl.GetScreenWidth())
		eo.Height = float64(rl.GetScreenHeight())
	}
	eng, err := engine.New(cfg, eo)
	if err != nil {
		return nil, err
	}
	cfg = eng.Config()

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	g := &Game{
		cfg:            cfg,
		engine:         eng,
		logger:         logger,
		collector:      telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector:  perf,
		outputManager:  om,
		statsCallback:  opts.StatsCallback,
		logStats:       opts.LogStats,
		chime:          audio.NewChime(cfg.Audio),
		headless:       opts.Headless,
		stepsPerUpdate: max(1, opts.StepsPerUpdate),
		lastCaptured:   -1,
	}

	if opts.Headless {
		if opts.Audio {
			g.chime.Init()
		}
		return g, nil
	}

	captureDir := opts.CaptureDir
	if captureDir == "" {
		captureDir = cfg.Capture.Dir
	}
	if captureDir != "" {
		rec, err := capture.NewRecorder(captureDir)
		if err != nil {
			om.Close()
			return nil, err
		}
		g.recorder = rec
		g.capturing = cfg.Capture.Enabled
	}

	g.chime.Init()

	b := eng.Bounds()
	g.screenWidth, g.screenHeight = float32(b.Width), float32(b.Height)
	g.builder = renderer.NewBuilder(cfg, opts.Seed)
	g.target = rl.LoadRenderTexture(int32(b.Width), int32(b.Height))
	g.registry = systems.NewSystemRegistry()
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, 110)
	g.controls = ui.NewControlsPanel(int32(b.Width)-250, 10, 240)

	return g, nil
}

// Update handles input and advances the simulation for one rendered frame.
// While capturing, exactly one tick runs per frame so every tick is saved.
func (g *Game) Update() {
	g.handleInput()

	if g.paused {
		return
	}

	steps := g.stepsPerUpdate
	if g.capturing {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		g.step(g.pending)
		g.pending = g.pending[:0]
	}
}

// UpdateHeadless advances the simulation without any window or input.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(nil)
	}
}

// Advance runs one update's worth of ticks for an external host. cmds are
// applied on the first tick. It returns the last frame.
func (g *Game) Advance(cmds []input.Command) *engine.Frame {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(cmds)
		cmds = nil
	}
	return g.frame
}

func (g *Game) step(cmds []input.Command) {
	g.frame = g.engine.Step(cmds)
	g.collector.RecordStep(g.frame.Spawned, g.frame.Culled, g.frame.Relocations)
	if g.frame.Relocations > 0 {
		g.chime.Play()
	}
	g.flushTelemetry()
}

// Tick returns the number of completed simulation ticks.
func (g *Game) Tick() int {
	return g.engine.Tick()
}

// Engine returns the hosted engine.
func (g *Game) Engine() *engine.Engine {
	return g.engine
}

// Unload releases resources.
func (g *Game) Unload() {
	if !g.headless {
		rl.UnloadRenderTexture(g.target)
	}
	g.chime.Close()
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			g.logger.Error("failed to close output", "error", err)
		}
	}
	if g.recorder != nil && g.recorder.Count() > 0 {
		g.logger.Info("capture finished", "dir", g.recorder.Dir(), "frames", g.recorder.Count())
	}
}
