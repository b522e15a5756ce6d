package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/vecmath"
)

// ForceSystem accumulates source forces into each particle's accumulator.
// Cost is O(particles x sources); there is no broad phase.
type ForceSystem struct {
	filter *ecs.Filter1[components.Motion]
}

// NewForceSystem creates a new force system.
func NewForceSystem(w *ecs.World) *ForceSystem {
	return &ForceSystem{
		filter: ecs.NewFilter1[components.Motion](w),
	}
}

// Update applies every source, the interactive source if Active, and the
// swirl term around center.
func (s *ForceSystem) Update(sources []components.Source, in components.Interactive, f config.ForcesConfig, center r3.Vec) {
	query := s.filter.Query()
	for query.Next() {
		m := query.Get()
		for i := range sources {
			m.ApplyForce(SourceForce(m.Pos, &sources[i], f))
		}
		if in.Active {
			m.ApplyForce(InteractiveForce(m.Pos, in.Pos, f.Interactive))
		}
		if f.Swirl != 0 {
			m.ApplyForce(SwirlForce(m.Pos, center, f.Swirl))
		}
	}
}

// SourceForce returns the force src exerts on a particle at pos.
// Attractors pull with constant strength. Repulsors push with strength/d^2.
// A particle coincident with the source receives nothing.
func SourceForce(pos r3.Vec, src *components.Source, f config.ForcesConfig) r3.Vec {
	delta := vecmath.Sub(src.Pos, pos)
	dir := vecmath.Normalize(delta)

	switch src.Kind {
	case components.Attractor:
		return vecmath.Scale(dir, f.Attraction)
	case components.Repulsor:
		d2 := r3.Norm2(delta)
		if d2 == 0 {
			return vecmath.Zero
		}
		return vecmath.Scale(dir, -f.Repulsion/d2)
	case components.InteractiveKind:
		return vecmath.Scale(dir, f.Interactive)
	}
	return vecmath.Zero
}

// InteractiveForce returns the pull toward the pointer-driven source.
func InteractiveForce(pos, target r3.Vec, strength float64) r3.Vec {
	return vecmath.Scale(vecmath.Normalize(vecmath.Sub(target, pos)), strength)
}

// SwirlForce returns the in-plane rotational drift around center:
// direction (y - cy, -(x - cx)), normalized and scaled.
func SwirlForce(pos, center r3.Vec, strength float64) r3.Vec {
	perp := r3.Vec{X: pos.Y - center.Y, Y: -(pos.X - center.X)}
	return vecmath.Scale(vecmath.Normalize(perp), strength)
}
