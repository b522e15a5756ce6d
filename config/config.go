// Package config provides configuration loading and validation for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Spawn policy modes.
const (
	SpawnContinuous = "continuous"
	SpawnBatched    = "batched"
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Particles ParticlesConfig `yaml:"particles"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Forces    ForcesConfig    `yaml:"forces"`
	Sources   SourcesConfig   `yaml:"sources"`
	Render    RenderConfig    `yaml:"render"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Capture   CaptureConfig   `yaml:"capture"`
	Audio     AudioConfig     `yaml:"audio"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. The visible rectangle is also the
// culling rectangle.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ParticlesConfig holds particle population and launch parameters.
type ParticlesConfig struct {
	Count      int       `yaml:"count"`       // Nominal population, used by batched refills
	Limit      int       `yaml:"limit"`       // Hard upper bound on population
	Initial    int       `yaml:"initial"`     // Particles spawned at construction
	Velocity   Varied    `yaml:"velocity"`    // Launch speed range + noise
	Angle      Varied    `yaml:"angle"`       // Launch angle range (radians) + noise
	Depth      Range     `yaml:"depth"`       // Initial Z range
	TailLength int       `yaml:"tail_length"` // Trail bound; 1 = no visible trail
	Origin     Fraction2 `yaml:"origin"`      // Spawn point as a fraction of the screen
}

// SpawnConfig selects the replenishment policy.
type SpawnConfig struct {
	Mode               string `yaml:"mode"`                // continuous | batched
	DestroyedThreshold int    `yaml:"destroyed_threshold"` // Culls that trigger a batch
	BatchMultiplier    int    `yaml:"batch_multiplier"`    // Batch = multiplier * threshold
}

// ForcesConfig holds force strengths. These can be tuned live.
type ForcesConfig struct {
	Attraction  float64 `yaml:"attraction"`  // Constant pull toward each attractor
	Repulsion   float64 `yaml:"repulsion"`   // Repulsor strength, scaled by 1/d^2
	Interactive float64 `yaml:"interactive"` // Pull toward the pointer-driven source
	Swirl       float64 `yaml:"swirl"`       // Rotational drift around the screen centre (0 = off)
}

// SourcesConfig holds force source placement and orbit parameters.
type SourcesConfig struct {
	Attractors     int     `yaml:"attractors"`
	Repulsors      int     `yaml:"repulsors"`
	BoundaryMargin float64 `yaml:"boundary_margin"` // Anchors are placed at least this far from the edges
	OrbitRadius    float64 `yaml:"orbit_radius"`
	AngularStep    float64 `yaml:"angular_step"` // Radians per tick
}

// RenderConfig holds presentation parameters. None of these affect physics.
type RenderConfig struct {
	Background       string  `yaml:"background"`
	NearColor        string  `yaml:"near_color"` // Colour at depth.min
	FarColor         string  `yaml:"far_color"`  // Colour at depth.max
	ClampDepth       bool    `yaml:"clamp_depth"`
	Size             Range   `yaml:"size"` // Point size from depth.min to depth.max
	TrailAlpha       float64 `yaml:"trail_alpha"`
	AttractorColor   string  `yaml:"attractor_color"`
	RepulsorColor    string  `yaml:"repulsor_color"`
	InteractiveColor string  `yaml:"interactive_color"`
	SourceSize       float64 `yaml:"source_size"`
	FlickerInterval  float64 `yaml:"flicker_interval"` // Ticks per flicker radian (0 = off)
	SparkleChance    float64 `yaml:"sparkle_chance"`   // Probability a source is drawn each frame
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // Ticks per stats window
	PerfWindow  int `yaml:"perf_window"`  // Ticks averaged by the perf collector
}

// CaptureConfig holds frame capture parameters.
type CaptureConfig struct {
	Dir     string `yaml:"dir"` // Empty = capture disabled until toggled with a directory set
	Enabled bool   `yaml:"enabled"`
}

// AudioConfig holds relocation chime parameters.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	ToneHz     float64 `yaml:"tone_hz"`
	DurationMs int     `yaml:"duration_ms"`
	Volume     float64 `yaml:"volume"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	Width, Height    float64
	OriginX, OriginY float64
	Background       colorful.Color
	NearColor        colorful.Color
	FarColor         colorful.Color
	AttractorColor   colorful.Color
	RepulsorColor    colorful.Color
	InteractiveColor colorful.Color
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates the config and recomputes derived values.
// Call it after editing a loaded Config in code.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	c.computeDerived()
	return nil
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate reports every configuration violation. Nothing is clamped.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Screen.Width > 0 && c.Screen.Height > 0,
		"screen: width and height must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)

	p := c.Particles
	check(p.Count >= 0, "particles.count must be non-negative, got %d", p.Count)
	check(p.Limit >= 0, "particles.limit must be non-negative, got %d", p.Limit)
	check(p.Count <= p.Limit, "particles.count (%d) exceeds particles.limit (%d)", p.Count, p.Limit)
	check(p.Initial >= 0 && p.Initial <= p.Limit,
		"particles.initial must be within [0, limit], got %d", p.Initial)
	check(p.TailLength >= 1, "particles.tail_length must be at least 1, got %d", p.TailLength)
	errs = append(errs, p.Velocity.validate("particles.velocity")...)
	errs = append(errs, p.Angle.validate("particles.angle")...)
	errs = append(errs, p.Depth.validate("particles.depth")...)
	check(p.Origin.X >= 0 && p.Origin.X <= 1 && p.Origin.Y >= 0 && p.Origin.Y <= 1,
		"particles.origin must be fractions in [0, 1], got (%g, %g)", p.Origin.X, p.Origin.Y)

	switch c.Spawn.Mode {
	case SpawnContinuous:
	case SpawnBatched:
		check(c.Spawn.DestroyedThreshold >= 0 && c.Spawn.DestroyedThreshold <= p.Count,
			"spawn.destroyed_threshold must be within [0, particles.count], got %d", c.Spawn.DestroyedThreshold)
		check(c.Spawn.BatchMultiplier >= 0,
			"spawn.batch_multiplier must be non-negative, got %d", c.Spawn.BatchMultiplier)
	default:
		errs = append(errs, fmt.Errorf("spawn.mode must be %q or %q, got %q", SpawnContinuous, SpawnBatched, c.Spawn.Mode))
	}

	s := c.Sources
	check(s.Attractors >= 0, "sources.attractors must be non-negative, got %d", s.Attractors)
	check(s.Repulsors >= 0, "sources.repulsors must be non-negative, got %d", s.Repulsors)
	check(s.OrbitRadius >= 0, "sources.orbit_radius must be non-negative, got %g", s.OrbitRadius)
	check(s.BoundaryMargin >= 0 &&
		2*s.BoundaryMargin <= float64(c.Screen.Width) &&
		2*s.BoundaryMargin <= float64(c.Screen.Height),
		"sources.boundary_margin %g does not fit the screen", s.BoundaryMargin)

	r := c.Render
	errs = append(errs, r.Size.validate("render.size")...)
	check(r.SparkleChance >= 0 && r.SparkleChance <= 1,
		"render.sparkle_chance must be within [0, 1], got %g", r.SparkleChance)
	check(r.FlickerInterval >= 0, "render.flicker_interval must be non-negative, got %g", r.FlickerInterval)
	for name, hex := range map[string]string{
		"background":        r.Background,
		"near_color":        r.NearColor,
		"far_color":         r.FarColor,
		"attractor_color":   r.AttractorColor,
		"repulsor_color":    r.RepulsorColor,
		"interactive_color": r.InteractiveColor,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			errs = append(errs, fmt.Errorf("render.%s: %w", name, err))
		}
	}

	check(c.Telemetry.StatsWindow >= 0, "telemetry.stats_window must be non-negative, got %d", c.Telemetry.StatsWindow)

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
// Colours were already checked by Validate.
func (c *Config) computeDerived() {
	c.Derived.Width = float64(c.Screen.Width)
	c.Derived.Height = float64(c.Screen.Height)
	c.Derived.OriginX = c.Particles.Origin.X * c.Derived.Width
	c.Derived.OriginY = c.Particles.Origin.Y * c.Derived.Height

	r := c.Render
	c.Derived.Background, _ = colorful.Hex(r.Background)
	c.Derived.NearColor, _ = colorful.Hex(r.NearColor)
	c.Derived.FarColor, _ = colorful.Hex(r.FarColor)
	c.Derived.AttractorColor, _ = colorful.Hex(r.AttractorColor)
	c.Derived.RepulsorColor, _ = colorful.Hex(r.RepulsorColor)
	c.Derived.InteractiveColor, _ = colorful.Hex(r.InteractiveColor)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
