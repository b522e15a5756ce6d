package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`
	Ticks           int `csv:"ticks"`

	// Population at window end
	Population int `csv:"population"`
	Sources    int `csv:"sources"`

	// Events during window
	Spawned     int     `csv:"spawned"`
	Culled      int     `csv:"culled"`
	CullRate    float64 `csv:"cull_rate"` // culled per tick
	Refills     int     `csv:"refills"`
	Relocations int     `csv:"relocations"`

	// Speed distribution (sampled at window end)
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`

	// Depth distribution
	DepthMean float64 `csv:"depth_mean"`
	DepthStd  float64 `csv:"depth_std"`
	DepthP10  float64 `csv:"depth_p10"`
	DepthP50  float64 `csv:"depth_p50"`
	DepthP90  float64 `csv:"depth_p90"`
}

// Summary is the mean, population standard deviation and deciles of a sample.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// Summarize computes a Summary. An empty sample yields all zeros.
// Quantiles use the empirical CDF.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return Summary{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("population", s.Population),
		slog.Int("sources", s.Sources),
		slog.Int("spawned", s.Spawned),
		slog.Int("culled", s.Culled),
		slog.Float64("cull_rate", s.CullRate),
		slog.Int("refills", s.Refills),
		slog.Int("relocations", s.Relocations),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("depth_mean", s.DepthMean),
		slog.Float64("depth_p50", s.DepthP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"population", s.Population,
		"spawned", s.Spawned,
		"culled", s.Culled,
		"cull_rate", s.CullRate,
		"refills", s.Refills,
		"relocations", s.Relocations,
		"speed_mean", s.SpeedMean,
		"speed_std", s.SpeedStd,
		"speed_p10", s.SpeedP10,
		"speed_p50", s.SpeedP50,
		"speed_p90", s.SpeedP90,
		"depth_mean", s.DepthMean,
		"depth_std", s.DepthStd,
		"depth_p10", s.DepthP10,
		"depth_p50", s.DepthP50,
		"depth_p90", s.DepthP90,
	)
}
