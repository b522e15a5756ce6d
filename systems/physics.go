// Package systems contains ECS systems for the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drift/components"
)

// Bounds represents the visible (and culling) rectangle [0,W] x [0,H].
type Bounds struct {
	Width, Height float64
}

// IntegrationSystem advances particle motion and records trails.
type IntegrationSystem struct {
	filter *ecs.Filter2[components.Motion, components.Trail]
}

// NewIntegrationSystem creates a new integration system.
func NewIntegrationSystem(w *ecs.World) *IntegrationSystem {
	return &IntegrationSystem{
		filter: ecs.NewFilter2[components.Motion, components.Trail](w),
	}
}

// Update integrates every particle and appends its new position to the trail.
func (s *IntegrationSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		m, tr := query.Get()
		m.Integrate()
		tr.Push(m.Pos)
	}
}

// CullSystem removes particles that left the visible rectangle.
type CullSystem struct {
	filter  *ecs.Filter1[components.Motion]
	bounds  Bounds
	pending []ecs.Entity
}

// NewCullSystem creates a new cull system.
func NewCullSystem(w *ecs.World, bounds Bounds) *CullSystem {
	return &CullSystem{
		filter: ecs.NewFilter1[components.Motion](w),
		bounds: bounds,
	}
}

// SetBounds changes the culling rectangle (window resize).
func (s *CullSystem) SetBounds(b Bounds) {
	s.bounds = b
}

// Update removes every off-screen particle and returns how many were removed.
// The world is locked while a query is open, so removal is a second pass.
func (s *CullSystem) Update(w *ecs.World) int {
	s.pending = s.pending[:0]

	query := s.filter.Query()
	for query.Next() {
		m := query.Get()
		if !m.OnScreen(s.bounds.Width, s.bounds.Height) {
			s.pending = append(s.pending, query.Entity())
		}
	}

	for _, e := range s.pending {
		w.RemoveEntity(e)
	}
	return len(s.pending)
}
