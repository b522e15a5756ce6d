package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/vecmath"
)

func batchedConfig(t *testing.T, multiplier int) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Spawn.Mode = config.SpawnBatched
	cfg.Particles.Count = 1000
	cfg.Particles.Limit = 10000
	cfg.Spawn.DestroyedThreshold = 100
	cfg.Spawn.BatchMultiplier = multiplier
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestPlanContinuousFillsToLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Particles.Limit = 50
	cfg.Particles.Count = 50
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}
	s := NewSpawnSystem(ecs.NewWorld(), cfg)

	if n := s.Plan(0); n != 50 {
		t.Errorf("Plan(0) = %d, want 50", n)
	}
	if n := s.Plan(48); n != 2 {
		t.Errorf("Plan(48) = %d, want 2", n)
	}
	if n := s.Plan(50); n != 0 {
		t.Errorf("Plan(50) = %d, want 0", n)
	}
}

func TestPlanBatchedRefill(t *testing.T) {
	s := NewSpawnSystem(ecs.NewWorld(), batchedConfig(t, 3))

	// Population at count: nothing due.
	if n := s.Plan(1000); n != 0 {
		t.Fatalf("Plan(1000) = %d, want 0", n)
	}

	// 100 culls bring the population to count - threshold.
	s.RecordCulled(60)
	if n := s.Plan(940); n != 0 {
		t.Fatalf("Plan(940) = %d, want 0", n)
	}
	s.RecordCulled(40)
	if s.Destroyed() != 100 {
		t.Fatalf("Destroyed = %d, want 100", s.Destroyed())
	}

	if n := s.Plan(900); n != 300 {
		t.Errorf("Plan(900) = %d, want 300", n)
	}
	if s.Destroyed() != 0 {
		t.Errorf("destroyed counter not reset, got %d", s.Destroyed())
	}
	if s.Refills() != 1 {
		t.Errorf("Refills = %d, want 1", s.Refills())
	}
}

func TestPlanBatchedMultiplierIsConfigurable(t *testing.T) {
	s := NewSpawnSystem(ecs.NewWorld(), batchedConfig(t, 2))
	if n := s.Plan(900); n != 200 {
		t.Errorf("Plan(900) with x2 = %d, want 200", n)
	}
}

func TestPlanBatchedRespectsLimit(t *testing.T) {
	cfg := batchedConfig(t, 3)
	cfg.Particles.Limit = 1000
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}
	s := NewSpawnSystem(ecs.NewWorld(), cfg)

	if n := s.Plan(850); n != 150 {
		t.Errorf("Plan(850) = %d, want headroom 150", n)
	}
}

func TestSynthesizeRanges(t *testing.T) {
	cfg := config.Default()
	s := NewSpawnSystem(ecs.NewWorld(), cfg)
	rng := rand.New(rand.NewSource(3))
	p := cfg.Particles

	for i := 0; i < 2000; i++ {
		m := s.Synthesize(rng)
		if m.Pos.X != cfg.Derived.OriginX || m.Pos.Y != cfg.Derived.OriginY {
			t.Fatalf("particle not at origin: %v", m.Pos)
		}
		if !p.Depth.Contains(m.Pos.Z) {
			t.Fatalf("depth %f outside %v", m.Pos.Z, p.Depth)
		}
		speed := vecmath.Magnitude(m.Vel)
		lo := math.Max(0, p.Velocity.Min-p.Velocity.Variation)
		hi := p.Velocity.Max + p.Velocity.Variation
		if speed < lo-1e-9 || speed > hi+1e-9 {
			t.Fatalf("speed %f outside [%f, %f]", speed, lo, hi)
		}
		if m.Vel.Z != 0 || m.Acc != vecmath.Zero {
			t.Fatalf("launch must be planar with empty accumulator: %+v", m)
		}
	}
}

func TestSpawnCreatesEntities(t *testing.T) {
	w := ecs.NewWorld()
	cfg := config.Default()
	cfg.Particles.TailLength = 4
	if err := cfg.Finalize(); err != nil {
		t.Fatal(err)
	}
	s := NewSpawnSystem(w, cfg)
	s.Spawn(rand.New(rand.NewSource(1)), 25)

	count := 0
	query := ecs.NewFilter2[components.Motion, components.Trail](w).Query()
	for query.Next() {
		_, tr := query.Get()
		if tr.Limit != 4 || tr.Len() != 0 {
			t.Errorf("new trail = %+v, want empty with limit 4", tr)
		}
		count++
	}
	if count != 25 {
		t.Errorf("spawned %d entities, want 25", count)
	}
}
