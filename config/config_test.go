package config

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Particles.Limit != 10000 {
		t.Errorf("expected limit 10000, got %d", cfg.Particles.Limit)
	}
	if cfg.Spawn.Mode != SpawnContinuous {
		t.Errorf("expected continuous spawn mode, got %q", cfg.Spawn.Mode)
	}
	if cfg.Derived.OriginX != 640 || cfg.Derived.OriginY != 400 {
		t.Errorf("expected origin at screen centre (640, 400), got (%f, %f)", cfg.Derived.OriginX, cfg.Derived.OriginY)
	}
	if r, g, b := cfg.Derived.AttractorColor.RGB255(); r != 255 || g != 0 || b != 0 {
		t.Errorf("expected red attractor colour, got (%d, %d, %d)", r, g, b)
	}
}

func TestLoadOverlaysUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "user.yaml")
	user := "spawn:\n  mode: batched\n  batch_multiplier: 2\nforces:\n  swirl: 0.02\n"
	if err := os.WriteFile(path, []byte(user), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Spawn.Mode != SpawnBatched || cfg.Spawn.BatchMultiplier != 2 {
		t.Errorf("user spawn settings not applied: %+v", cfg.Spawn)
	}
	if cfg.Spawn.DestroyedThreshold != 100 {
		t.Errorf("unspecified field should keep default 100, got %d", cfg.Spawn.DestroyedThreshold)
	}
	if cfg.Forces.Swirl != 0.02 || cfg.Forces.Attraction != 0.01 {
		t.Errorf("forces not merged correctly: %+v", cfg.Forces)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected wrapped ErrNotExist, got %v", err)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"negative limit", func(c *Config) { c.Particles.Limit = -1 }, "particles.limit"},
		{"count above limit", func(c *Config) { c.Particles.Count = c.Particles.Limit + 1 }, "exceeds particles.limit"},
		{"velocity max below min", func(c *Config) { c.Particles.Velocity.Max = 0.5 }, "particles.velocity"},
		{"angle max below min", func(c *Config) { c.Particles.Angle.Min = 9 }, "particles.angle"},
		{"negative variation", func(c *Config) { c.Particles.Angle.Variation = -0.1 }, "variation"},
		{"depth inverted", func(c *Config) { c.Particles.Depth = Range{Min: 1, Max: -1} }, "particles.depth"},
		{"zero tail", func(c *Config) { c.Particles.TailLength = 0 }, "tail_length"},
		{"unknown mode", func(c *Config) { c.Spawn.Mode = "bursty" }, "spawn.mode"},
		{"threshold above count", func(c *Config) {
			c.Spawn.Mode = SpawnBatched
			c.Spawn.DestroyedThreshold = c.Particles.Count + 1
		}, "destroyed_threshold"},
		{"negative attractors", func(c *Config) { c.Sources.Attractors = -2 }, "sources.attractors"},
		{"margin too wide", func(c *Config) { c.Sources.BoundaryMargin = 5000 }, "boundary_margin"},
		{"bad colour", func(c *Config) { c.Render.AttractorColor = "red" }, "attractor_color"},
		{"sparkle above one", func(c *Config) { c.Render.SparkleChance = 1.5 }, "sparkle_chance"},
		{"zero screen", func(c *Config) { c.Screen.Width = 0 }, "screen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Finalize()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	cfg := Default()
	cfg.Particles.Limit = -1
	cfg.Particles.TailLength = 0
	cfg.Render.SparkleChance = 2

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected errors")
	}
	for _, want := range []string{"particles.limit", "tail_length", "sparkle_chance"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error missing %q: %v", want, err)
		}
	}
}

func TestRangeUniform(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	r := Range{Min: -3, Max: 5}
	for i := 0; i < 1000; i++ {
		v := r.Uniform(rng)
		if !r.Contains(v) {
			t.Fatalf("Uniform produced %f outside [%f, %f]", v, r.Min, r.Max)
		}
	}
}

func TestVariedSampleBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	v := Varied{Min: 1, Max: 4, Variation: 0.5}
	for i := 0; i < 1000; i++ {
		s := v.Sample(rng)
		if s < 0.5 || s > 4.5 {
			t.Fatalf("Sample produced %f outside [0.5, 4.5]", s)
		}
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Forces.Swirl = 0.03
	path := filepath.Join(t.TempDir(), "config.yaml")

	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Forces.Swirl != 0.03 {
		t.Errorf("expected swirl 0.03 after reload, got %f", loaded.Forces.Swirl)
	}
}
