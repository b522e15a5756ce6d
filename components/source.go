package components

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// SourceKind identifies how a force source acts on particles.
type SourceKind uint8

const (
	Attractor SourceKind = iota
	Repulsor
	InteractiveKind
)

func (k SourceKind) String() string {
	switch k {
	case Attractor:
		return "attractor"
	case Repulsor:
		return "repulsor"
	case InteractiveKind:
		return "interactive"
	default:
		return "unknown"
	}
}

// Source is a force source orbiting its anchor on the XY plane.
// Z is fixed at creation.
type Source struct {
	Pos    r3.Vec
	Anchor r3.Vec
	Angle  float64 // orbit angle in radians, increases monotonically
	Kind   SourceKind
}

// NewSource creates a source already placed on its orbit.
func NewSource(kind SourceKind, anchor r3.Vec, angle, radius float64) Source {
	s := Source{Anchor: anchor, Angle: angle, Kind: kind, Pos: anchor}
	s.place(radius)
	return s
}

// Advance moves the source along its orbit by step radians.
func (s *Source) Advance(step, radius float64) {
	s.Angle += step
	s.place(radius)
}

// Relocate moves both the anchor and position to (x, y). Kind and Z are kept.
func (s *Source) Relocate(x, y float64) {
	s.Anchor.X, s.Anchor.Y = x, y
	s.Pos.X, s.Pos.Y = x, y
}

func (s *Source) place(radius float64) {
	sin, cos := math.Sincos(s.Angle)
	s.Pos.X = s.Anchor.X + cos*radius
	s.Pos.Y = s.Anchor.Y + sin*radius
}
