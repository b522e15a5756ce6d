package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/vecmath"
)

// SpawnSystem decides when particles are created and synthesizes them.
type SpawnSystem struct {
	mapper *ecs.Map2[components.Motion, components.Trail]

	mode       string
	count      int
	limit      int
	threshold  int
	multiplier int
	tail       int

	velocity config.Varied
	angle    config.Varied
	depth    config.Range
	origin   r3.Vec

	destroyed int // culls since the last batch
	refills   int
}

// NewSpawnSystem creates a spawn system from the particle and spawn config.
func NewSpawnSystem(w *ecs.World, cfg *config.Config) *SpawnSystem {
	p := cfg.Particles
	return &SpawnSystem{
		mapper:     ecs.NewMap2[components.Motion, components.Trail](w),
		mode:       cfg.Spawn.Mode,
		count:      p.Count,
		limit:      p.Limit,
		threshold:  cfg.Spawn.DestroyedThreshold,
		multiplier: cfg.Spawn.BatchMultiplier,
		tail:       p.TailLength,
		velocity:   p.Velocity,
		angle:      p.Angle,
		depth:      p.Depth,
		origin:     r3.Vec{X: cfg.Derived.OriginX, Y: cfg.Derived.OriginY},
	}
}

// SetOrigin moves the spawn point (window resize).
func (s *SpawnSystem) SetOrigin(x, y float64) {
	s.origin.X, s.origin.Y = x, y
}

// Plan returns how many particles to add this frame for the given
// population. In batched mode a due batch resets the destroyed counter.
// The result never takes the population above the limit.
func (s *SpawnSystem) Plan(population int) int {
	headroom := s.limit - population
	if headroom <= 0 {
		return 0
	}

	switch s.mode {
	case config.SpawnBatched:
		if population > s.count-s.threshold {
			return 0
		}
		s.destroyed = 0
		s.refills++
		return min(s.multiplier*s.threshold, headroom)
	default:
		return headroom
	}
}

// RecordCulled adds this frame's culls to the destroyed counter.
func (s *SpawnSystem) RecordCulled(n int) {
	s.destroyed += n
}

// Destroyed returns the number of particles culled since the last batch.
func (s *SpawnSystem) Destroyed() int {
	return s.destroyed
}

// Refills returns how many batches have fired.
func (s *SpawnSystem) Refills() int {
	return s.refills
}

// Synthesize draws a new particle's launch state. This is the only random
// step in a particle's life.
func (s *SpawnSystem) Synthesize(rng *rand.Rand) components.Motion {
	theta := s.angle.Sample(rng)
	speed := s.velocity.Sample(rng)
	pos := s.origin
	pos.Z = s.depth.Uniform(rng)
	return components.Motion{
		Pos: pos,
		Vel: vecmath.FromAngle(theta, speed),
	}
}

// Spawn creates n particles and returns how many were created.
func (s *SpawnSystem) Spawn(rng *rand.Rand, n int) int {
	for i := 0; i < n; i++ {
		m := s.Synthesize(rng)
		tr := components.NewTrail(s.tail)
		s.mapper.NewEntity(&m, &tr)
	}
	return n
}
