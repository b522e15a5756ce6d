// Package engine advances the particle field one tick at a time.
//
// An Engine owns the particle population (as ark ECS entities), the force
// sources and the optional interactive source. Hosts feed it pointer
// commands and draw the Frame it returns; nothing else mutates simulation
// state.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/input"
	"github.com/pthm-cable/drift/systems"
	"github.com/pthm-cable/drift/telemetry"
	"github.com/pthm-cable/drift/vecmath"
)

// Options holds optional engine settings.
type Options struct {
	Seed   int64
	Logger *slog.Logger // nil = slog.Default()

	// Sources replaces the randomized attractor/repulsor set when non-nil.
	Sources []components.Source

	// Width and Height override the screen size from config when positive.
	Width, Height float64

	// Perf receives per-phase timings when set.
	Perf *telemetry.PerfCollector
}

// Engine is the simulation. It is not safe for concurrent use: exactly
// one goroutine calls Step.
type Engine struct {
	cfg    *config.Config
	forces config.ForcesConfig
	logger *slog.Logger
	perf   *telemetry.PerfCollector
	rng    *rand.Rand

	world     *ecs.World
	particles *ecs.Filter2[components.Motion, components.Trail]

	spawn     *systems.SpawnSystem
	force     *systems.ForceSystem
	integrate *systems.IntegrationSystem
	cull      *systems.CullSystem
	sources   *systems.SourceSystem

	interactive components.Interactive

	bounds     systems.Bounds
	center     r3.Vec
	tick       int
	population int

	frame Frame
}

// New validates cfg and builds an engine. The config is copied; later
// changes to cfg do not affect the engine.
func New(cfg *config.Config, opts Options) (*Engine, error) {
	c := cfg.Clone()
	if err := c.Finalize(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	width, height := c.Derived.Width, c.Derived.Height
	if opts.Width > 0 && opts.Height > 0 {
		width, height = opts.Width, opts.Height
	}
	if c.Sources.BoundaryMargin*2 > width || c.Sources.BoundaryMargin*2 > height {
		return nil, fmt.Errorf("sources.boundary_margin %g does not fit %gx%g", c.Sources.BoundaryMargin, width, height)
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	e := &Engine{
		cfg:       c,
		forces:    c.Forces,
		logger:    logger,
		perf:      opts.Perf,
		rng:       rng,
		world:     world,
		particles: ecs.NewFilter2[components.Motion, components.Trail](world),
		spawn:     systems.NewSpawnSystem(world, c),
		force:     systems.NewForceSystem(world),
		integrate: systems.NewIntegrationSystem(world),
		cull:      systems.NewCullSystem(world, systems.Bounds{Width: width, Height: height}),
	}

	if opts.Sources != nil {
		e.sources = systems.NewSourceSystemFrom(opts.Sources, c.Sources.OrbitRadius, c.Sources.AngularStep)
	} else {
		e.sources = systems.NewSourceSystem(c, rng, width, height)
	}

	e.Resize(width, height)

	if c.Particles.Initial > 0 {
		e.population += e.spawn.Spawn(rng, c.Particles.Initial)
	}

	logger.Debug("engine created",
		"seed", opts.Seed,
		"width", width,
		"height", height,
		"spawn_mode", c.Spawn.Mode,
		"sources", len(e.sources.Sources),
		"initial", e.population,
	)
	return e, nil
}

// Resize changes the visible (and culling) rectangle. The spawn origin and
// swirl centre follow the new size.
func (e *Engine) Resize(width, height float64) {
	e.bounds = systems.Bounds{Width: width, Height: height}
	e.cull.SetBounds(e.bounds)
	o := e.cfg.Particles.Origin
	e.spawn.SetOrigin(o.X*width, o.Y*height)
	e.center = r3.Vec{X: width / 2, Y: height / 2}
}

// Step runs one tick: input, spawn, forces, integration, cull, orbit
// advance, then a frame snapshot. The returned frame is reused by the next
// call.
func (e *Engine) Step(cmds []input.Command) *Frame {
	e.startTick()

	e.phase(systems.PhaseInput)
	relocations := 0
	for _, cmd := range cmds {
		if e.apply(cmd) {
			relocations++
		}
	}

	e.phase(systems.PhaseSpawn)
	spawned := 0
	refills := e.spawn.Refills()
	if n := e.spawn.Plan(e.population); n > 0 {
		spawned = e.spawn.Spawn(e.rng, n)
		e.population += spawned
	}
	if e.spawn.Refills() != refills {
		e.logger.Debug("batch refill", "tick", e.tick, "spawned", spawned, "population", e.population)
	}

	e.phase(systems.PhaseForces)
	e.force.Update(e.sources.Sources, e.interactive, e.forces, e.center)

	e.phase(systems.PhaseIntegrate)
	e.integrate.Update()

	e.phase(systems.PhaseCull)
	culled := e.cull.Update(e.world)
	e.population -= culled
	e.spawn.RecordCulled(culled)

	e.phase(systems.PhaseSources)
	e.sources.Update()

	e.tick++

	e.phase(systems.PhaseFrame)
	e.snapshot(spawned, culled, relocations)

	e.endTick()
	return &e.frame
}

// apply runs one input command and reports whether a source was relocated.
func (e *Engine) apply(cmd input.Command) bool {
	switch cmd.Kind {
	case input.PointerDown:
		e.interactive.Press(cmd.X, cmd.Y)
	case input.PointerMove:
		e.interactive.Drag(cmd.X, cmd.Y)
	case input.PointerUp:
		if last, ok := e.interactive.Release(cmd.X, cmd.Y); ok {
			return e.relocate(last.X, last.Y)
		}
	case input.Click:
		return e.relocate(cmd.X, cmd.Y)
	}
	return false
}

func (e *Engine) relocate(x, y float64) bool {
	idx, ok := e.sources.RelocateNearest(x, y)
	if !ok {
		return false
	}
	e.logger.Info("source relocated",
		"tick", e.tick,
		"index", idx,
		"kind", e.sources.Sources[idx].Kind.String(),
		"x", x,
		"y", y,
	)
	return true
}

func (e *Engine) startTick() {
	if e.perf != nil {
		e.perf.StartTick()
	}
}

func (e *Engine) phase(name string) {
	if e.perf != nil {
		e.perf.StartPhase(name)
	}
}

func (e *Engine) endTick() {
	if e.perf != nil {
		e.perf.EndTick()
	}
}

// Tick returns the number of completed steps.
func (e *Engine) Tick() int { return e.tick }

// Population returns the live particle count.
func (e *Engine) Population() int { return e.population }

// Bounds returns the current visible rectangle.
func (e *Engine) Bounds() systems.Bounds { return e.bounds }

// Sources returns the attractors and repulsors. The slice is owned by the
// engine and must not be modified.
func (e *Engine) Sources() []components.Source { return e.sources.Sources }

// Interactive returns the pointer-driven source state.
func (e *Engine) Interactive() components.Interactive { return e.interactive }

// Destroyed returns the culls counted since the last batch refill.
func (e *Engine) Destroyed() int { return e.spawn.Destroyed() }

// Refills returns how many batch refills have fired.
func (e *Engine) Refills() int { return e.spawn.Refills() }

// Forces returns the current force strengths.
func (e *Engine) Forces() config.ForcesConfig { return e.forces }

// SetForces replaces the force strengths from the next Step on.
func (e *Engine) SetForces(f config.ForcesConfig) { e.forces = f }

// AngularStep returns the source orbit speed in radians per tick.
func (e *Engine) AngularStep() float64 { return e.sources.AngularStep() }

// SetAngularStep changes the source orbit speed.
func (e *Engine) SetAngularStep(step float64) { e.sources.SetAngularStep(step) }

// Config returns the engine's private copy of the configuration.
func (e *Engine) Config() *config.Config { return e.cfg }

// Sample reads the population state for a telemetry window.
func (e *Engine) Sample() telemetry.Sample {
	s := telemetry.Sample{
		Population: e.population,
		Sources:    len(e.sources.Sources),
		Refills:    e.spawn.Refills(),
		Speeds:     make([]float64, 0, e.population),
		Depths:     make([]float64, 0, e.population),
	}
	e.Each(func(m components.Motion, _ []r3.Vec) {
		s.Speeds = append(s.Speeds, vecmath.Magnitude(m.Vel))
		s.Depths = append(s.Depths, m.Pos.Z)
	})
	return s
}

// Each calls fn for every live particle. fn must not retain the trail slice.
func (e *Engine) Each(fn func(m components.Motion, trail []r3.Vec)) {
	query := e.particles.Query()
	for query.Next() {
		m, tr := query.Get()
		fn(*m, tr.Points)
	}
}
