package telemetry

import (
	"math"
	"testing"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(10)

	for tick := 1; tick <= 9; tick++ {
		c.RecordStep(5, 2, 0)
		if c.ShouldFlush(tick) {
			t.Fatalf("flush due at tick %d of a 10-tick window", tick)
		}
	}
	c.RecordStep(5, 2, 1)
	if !c.ShouldFlush(10) {
		t.Fatal("flush not due at tick 10")
	}

	stats := c.Flush(10, Sample{
		Population: 30,
		Sources:    5,
		Refills:    2,
		Speeds:     []float64{1, 2, 3},
		Depths:     []float64{-1, 0, 1},
	})

	if stats.Ticks != 10 || stats.Spawned != 50 || stats.Culled != 20 || stats.Relocations != 1 {
		t.Errorf("counters = %+v", stats)
	}
	if math.Abs(stats.CullRate-2) > 1e-12 {
		t.Errorf("cull rate = %v, want 2", stats.CullRate)
	}
	if stats.Refills != 2 || stats.Population != 30 || stats.Sources != 5 {
		t.Errorf("sample fields = %+v", stats)
	}
	if stats.SpeedMean != 2 || stats.DepthP50 != 0 {
		t.Errorf("speed mean %v depth p50 %v", stats.SpeedMean, stats.DepthP50)
	}

	// Counters reset and refills become per-window.
	c.RecordStep(1, 0, 0)
	next := c.Flush(15, Sample{Refills: 3})
	if next.WindowStartTick != 10 || next.Ticks != 5 || next.Spawned != 1 || next.Culled != 0 || next.Refills != 1 {
		t.Errorf("second window = %+v", next)
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0)
	if c.WindowTicks() != 1 {
		t.Errorf("window = %d, want 1", c.WindowTicks())
	}
}
