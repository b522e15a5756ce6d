// Package renderer turns engine frames into draw primitives and draws them
// with raylib or tcell.
package renderer

import (
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/engine"
	"github.com/pthm-cable/drift/vecmath"
)

// Shape is the kind of a draw primitive.
type Shape uint8

const (
	ShapePoint Shape = iota
	ShapeLine
)

// Role says what a primitive depicts, so back ends can pick glyphs.
type Role uint8

const (
	RoleParticle Role = iota
	RoleTrail
	RoleSource
)

// Primitive is a single backend-neutral draw call in world coordinates.
// Points use X1/Y1 only.
type Primitive struct {
	Shape          Shape
	Role           Role
	X1, Y1, X2, Y2 float64
	Color          colorful.Color
	Alpha          float64
	Size           float64
}

// Builder converts frames into primitives. It owns its own RNG for the
// sparkle effect so drawing never touches simulation randomness.
type Builder struct {
	cfg   config.RenderConfig
	depth config.Range

	near, far  colorful.Color
	background colorful.Color
	kinds      [3]colorful.Color

	rng   *rand.Rand
	prims []Primitive
}

// NewBuilder creates a builder from a finalized config.
func NewBuilder(cfg *config.Config, seed int64) *Builder {
	d := cfg.Derived
	return &Builder{
		cfg:        cfg.Render,
		depth:      cfg.Particles.Depth,
		near:       d.NearColor,
		far:        d.FarColor,
		background: d.Background,
		kinds: [3]colorful.Color{
			components.Attractor:       d.AttractorColor,
			components.Repulsor:        d.RepulsorColor,
			components.InteractiveKind: d.InteractiveColor,
		},
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Background returns the clear colour.
func (b *Builder) Background() colorful.Color {
	return b.background
}

// Shade maps depth to colour and point size. With clamping off, depths
// outside the configured range extrapolate and the colour is clamped only
// at the gamut edge.
func (b *Builder) Shade(z float64) (colorful.Color, float64) {
	mapf := vecmath.Map
	if b.cfg.ClampDepth {
		mapf = vecmath.MapClamped
	}
	t := mapf(z, b.depth.Min, b.depth.Max, 0, 1)
	size := mapf(z, b.depth.Min, b.depth.Max, b.cfg.Size.Min, b.cfg.Size.Max)
	if size < 0.5 {
		size = 0.5
	}
	return b.near.BlendRgb(b.far, t).Clamped(), size
}

// FlickerAlpha returns the source alpha for tick: 0.5 + 0.5*|sin(tick/interval)|,
// or 1 when flicker is off.
func (b *Builder) FlickerAlpha(tick int) float64 {
	if b.cfg.FlickerInterval <= 0 {
		return 1
	}
	return 0.5 + 0.5*math.Abs(math.Sin(float64(tick)/b.cfg.FlickerInterval))
}

// Build returns the primitives for f: trails, then particle heads, then
// sources. The slice is reused by the next call.
func (b *Builder) Build(f *engine.Frame) []Primitive {
	b.prims = b.prims[:0]

	for i := range f.Particles {
		p := &f.Particles[i]
		col, size := b.Shade(p.Pos.Z)

		// Segments fade in from oldest to newest.
		if n := len(p.Trail); n > 1 {
			for j := 0; j < n-1; j++ {
				from, to := p.Trail[j], p.Trail[j+1]
				b.prims = append(b.prims, Primitive{
					Shape: ShapeLine,
					Role:  RoleTrail,
					X1:    from.X,
					Y1:    from.Y,
					X2:    to.X,
					Y2:    to.Y,
					Color: col,
					Alpha: b.cfg.TrailAlpha * float64(j+1) / float64(n-1),
					Size:  size,
				})
			}
		}

		b.prims = append(b.prims, Primitive{
			Shape: ShapePoint,
			Role:  RoleParticle,
			X1:    p.Pos.X,
			Y1:    p.Pos.Y,
			Color: col,
			Alpha: 1,
			Size:  size,
		})
	}

	alpha := b.FlickerAlpha(f.Tick)
	for _, s := range f.Sources {
		if !b.sparkle() {
			continue
		}
		b.prims = append(b.prims, b.sourcePrim(s.Pos.X, s.Pos.Y, s.Kind, alpha))
	}
	if f.Interactive.Active {
		b.prims = append(b.prims, b.sourcePrim(f.Interactive.Pos.X, f.Interactive.Pos.Y, components.InteractiveKind, 1))
	}

	return b.prims
}

// sparkle decides whether a source is drawn this frame.
func (b *Builder) sparkle() bool {
	if b.cfg.SparkleChance >= 1 {
		return true
	}
	return b.rng.Float64() < b.cfg.SparkleChance
}

func (b *Builder) sourcePrim(x, y float64, kind components.SourceKind, alpha float64) Primitive {
	col := b.kinds[components.Attractor]
	if int(kind) < len(b.kinds) {
		col = b.kinds[kind]
	}
	return Primitive{
		Shape: ShapePoint,
		Role:  RoleSource,
		X1:    x,
		Y1:    y,
		Color: col,
		Alpha: alpha,
		Size:  b.cfg.SourceSize,
	}
}
