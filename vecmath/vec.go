// Package vecmath provides the vector helpers used by the simulation.
// Vectors are gonum r3.Vec values; everything here is pure.
package vecmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Zero is the zero vector.
var Zero = r3.Vec{}

// Add returns a + b.
func Add(a, b r3.Vec) r3.Vec {
	return r3.Add(a, b)
}

// Sub returns a - b.
func Sub(a, b r3.Vec) r3.Vec {
	return r3.Sub(a, b)
}

// Scale returns v * f.
func Scale(v r3.Vec, f float64) r3.Vec {
	return r3.Scale(f, v)
}

// Magnitude returns the Euclidean length of v.
func Magnitude(v r3.Vec) float64 {
	return r3.Norm(v)
}

// Normalize returns v scaled to unit length.
// The zero vector normalizes to the zero vector (r3.Unit would return NaN).
func Normalize(v r3.Vec) r3.Vec {
	m := r3.Norm(v)
	if m == 0 {
		return Zero
	}
	return r3.Scale(1/m, v)
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// PlanarDistance returns the distance between a and b on the XY plane.
func PlanarDistance(a, b r3.Vec) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// FromAngle builds (cos θ, sin θ, 0) * mag.
func FromAngle(theta, mag float64) r3.Vec {
	s, c := math.Sincos(theta)
	return r3.Vec{X: c * mag, Y: s * mag}
}

// IsFinite reports whether every component is neither NaN nor infinite.
func IsFinite(v r3.Vec) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0) &&
		!math.IsNaN(v.Z) && !math.IsInf(v.Z, 0)
}

// Map linearly maps v from [inMin, inMax] to [outMin, outMax] without clamping.
// A degenerate input range maps everything to outMin.
func Map(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return outMin
	}
	return outMin + (v-inMin)*(outMax-outMin)/(inMax-inMin)
}

// MapClamped is Map with the result clamped to the output range.
func MapClamped(v, inMin, inMax, outMin, outMax float64) float64 {
	m := Map(v, inMin, inMax, outMin, outMax)
	lo, hi := outMin, outMax
	if lo > hi {
		lo, hi = hi, lo
	}
	return math.Max(lo, math.Min(hi, m))
}
