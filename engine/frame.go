package engine

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/components"
)

// ParticleView is a particle as the renderer sees it.
// Trail aliases engine storage and is only valid until the next Step.
type ParticleView struct {
	Pos   r3.Vec
	Trail []r3.Vec
}

// SourceView is a force source as the renderer sees it.
type SourceView struct {
	Pos  r3.Vec
	Kind components.SourceKind
}

// Frame is the read-only result of one Step.
type Frame struct {
	Tick          int
	Width, Height float64

	Particles   []ParticleView
	Sources     []SourceView
	Interactive components.Interactive

	// Events during the step
	Spawned     int
	Culled      int
	Relocations int
}

// snapshot refills the reusable frame from the current state.
func (e *Engine) snapshot(spawned, culled, relocations int) {
	f := &e.frame
	f.Tick = e.tick
	f.Width, f.Height = e.bounds.Width, e.bounds.Height
	f.Interactive = e.interactive
	f.Spawned, f.Culled, f.Relocations = spawned, culled, relocations

	f.Particles = f.Particles[:0]
	query := e.particles.Query()
	for query.Next() {
		m, tr := query.Get()
		f.Particles = append(f.Particles, ParticleView{Pos: m.Pos, Trail: tr.Points})
	}

	f.Sources = f.Sources[:0]
	for _, s := range e.sources.Sources {
		f.Sources = append(f.Sources, SourceView{Pos: s.Pos, Kind: s.Kind})
	}
}
