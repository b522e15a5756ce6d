package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/vecmath"
)

// SourceSystem owns the orbiting force sources.
// Order is insertion order: attractors first, then repulsors.
type SourceSystem struct {
	Sources []components.Source
	radius  float64
	step    float64
}

// NewSourceSystem places the configured attractors and repulsors with
// random anchors inside the boundary margin, random depth and orbit angle.
func NewSourceSystem(cfg *config.Config, rng *rand.Rand, width, height float64) *SourceSystem {
	sc := cfg.Sources
	s := &SourceSystem{radius: sc.OrbitRadius, step: sc.AngularStep}

	xr := config.Range{Min: sc.BoundaryMargin, Max: width - sc.BoundaryMargin}
	yr := config.Range{Min: sc.BoundaryMargin, Max: height - sc.BoundaryMargin}
	place := func(kind components.SourceKind) components.Source {
		anchor := r3.Vec{
			X: xr.Uniform(rng),
			Y: yr.Uniform(rng),
			Z: cfg.Particles.Depth.Uniform(rng),
		}
		return components.NewSource(kind, anchor, rng.Float64()*2*math.Pi, s.radius)
	}

	for i := 0; i < sc.Attractors; i++ {
		s.Sources = append(s.Sources, place(components.Attractor))
	}
	for i := 0; i < sc.Repulsors; i++ {
		s.Sources = append(s.Sources, place(components.Repulsor))
	}
	return s
}

// NewSourceSystemFrom wraps an explicit source set. Sources are re-placed
// on their orbits so the radius invariant holds from the first frame.
func NewSourceSystemFrom(sources []components.Source, radius, step float64) *SourceSystem {
	s := &SourceSystem{radius: radius, step: step}
	s.Sources = make([]components.Source, len(sources))
	for i, src := range sources {
		s.Sources[i] = components.NewSource(src.Kind, src.Anchor, src.Angle, radius)
	}
	return s
}

// SetAngularStep changes the orbit speed.
func (s *SourceSystem) SetAngularStep(step float64) {
	s.step = step
}

// AngularStep returns the orbit speed in radians per tick.
func (s *SourceSystem) AngularStep() float64 {
	return s.step
}

// Radius returns the orbit radius.
func (s *SourceSystem) Radius() float64 {
	return s.radius
}

// Update advances every source along its orbit.
func (s *SourceSystem) Update() {
	for i := range s.Sources {
		s.Sources[i].Advance(s.step, s.radius)
	}
}

// Nearest returns the index of the source closest to (x, y) on the XY
// plane. The first source wins ties. ok is false when there are no sources.
func (s *SourceSystem) Nearest(x, y float64) (idx int, ok bool) {
	q := r3.Vec{X: x, Y: y}
	best := math.Inf(1)
	idx = -1
	for i := range s.Sources {
		d := vecmath.PlanarDistance(q, s.Sources[i].Pos)
		if d < best {
			best = d
			idx = i
		}
	}
	return idx, idx >= 0
}

// RelocateNearest moves the nearest source's anchor and position to (x, y).
// It is a no-op when there are no sources.
func (s *SourceSystem) RelocateNearest(x, y float64) (idx int, ok bool) {
	idx, ok = s.Nearest(x, y)
	if ok {
		s.Sources[idx].Relocate(x, y)
	}
	return idx, ok
}
