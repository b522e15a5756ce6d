// Package telemetry collects windowed simulation statistics, per-phase
// timing and CSV output.
package telemetry

// Sample is the population state read at the end of a window.
type Sample struct {
	Population int
	Sources    int
	Refills    int // cumulative since engine start
	Speeds     []float64
	Depths     []float64
}

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowTicks int

	// Current window tracking
	windowStartTick int
	lastRefills     int

	// Event counters for current window
	spawned     int
	culled      int
	relocations int
}

// NewCollector creates a new stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// RecordStep adds one step's events.
func (c *Collector) RecordStep(spawned, culled, relocations int) {
	c.spawned += spawned
	c.culled += culled
	c.relocations += relocations
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int, sample Sample) WindowStats {
	ticks := currentTick - c.windowStartTick
	var cullRate float64
	if ticks > 0 {
		cullRate = float64(c.culled) / float64(ticks)
	}

	speed := Summarize(sample.Speeds)
	depth := Summarize(sample.Depths)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Ticks:           ticks,

		Population: sample.Population,
		Sources:    sample.Sources,

		Spawned:     c.spawned,
		Culled:      c.culled,
		CullRate:    cullRate,
		Refills:     sample.Refills - c.lastRefills,
		Relocations: c.relocations,

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP10:  speed.P10,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,

		DepthMean: depth.Mean,
		DepthStd:  depth.Std,
		DepthP10:  depth.P10,
		DepthP50:  depth.P50,
		DepthP90:  depth.P90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.lastRefills = sample.Refills
	c.spawned = 0
	c.culled = 0
	c.relocations = 0

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}
