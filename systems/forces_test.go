package systems

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/vecmath"
)

func TestSourceForceAttractor(t *testing.T) {
	src := components.Source{Pos: r3.Vec{X: 100, Y: 100}, Kind: components.Attractor}
	f := SourceForce(r3.Vec{X: 0, Y: 100}, &src, config.ForcesConfig{Attraction: 1})

	if math.Abs(f.X-1) > 1e-12 || f.Y != 0 || f.Z != 0 {
		t.Errorf("attractor force = %v, want (1, 0, 0)", f)
	}
}

func TestSourceForceRepulsorInverseSquare(t *testing.T) {
	src := components.Source{Pos: r3.Vec{X: 10}, Kind: components.Repulsor}
	forces := config.ForcesConfig{Repulsion: 50}

	near := SourceForce(r3.Vec{X: 5}, &src, forces) // d = 5
	far := SourceForce(r3.Vec{X: 0}, &src, forces)  // d = 10

	if near.X >= 0 || far.X >= 0 {
		t.Fatalf("repulsor should push away (-X): near=%v far=%v", near, far)
	}
	if math.Abs(near.X-(-2)) > 1e-12 {
		t.Errorf("near force = %f, want -50/25 = -2", near.X)
	}
	if math.Abs(near.X/far.X-4) > 1e-9 {
		t.Errorf("halving distance should quadruple force, ratio %f", near.X/far.X)
	}
}

func TestSourceForceCoincidentIsZero(t *testing.T) {
	pos := r3.Vec{X: 42, Y: 17, Z: 3}
	forces := config.ForcesConfig{Attraction: 1, Repulsion: 100, Interactive: 2}
	for _, kind := range []components.SourceKind{components.Attractor, components.Repulsor, components.InteractiveKind} {
		src := components.Source{Pos: pos, Kind: kind}
		f := SourceForce(pos, &src, forces)
		if f != vecmath.Zero || !vecmath.IsFinite(f) {
			t.Errorf("%s: coincident force = %v, want zero", kind, f)
		}
	}
	if f := InteractiveForce(pos, pos, 5); f != vecmath.Zero {
		t.Errorf("interactive coincident force = %v, want zero", f)
	}
}

func TestSwirlForceIsPerpendicular(t *testing.T) {
	center := r3.Vec{X: 640, Y: 400}
	pos := r3.Vec{X: 740, Y: 400} // right of centre
	f := SwirlForce(pos, center, 0.1)

	// perp = (0, -(100)) -> straight up, scaled to 0.1
	if math.Abs(f.X) > 1e-12 || math.Abs(f.Y+0.1) > 1e-12 {
		t.Errorf("swirl = %v, want (0, -0.1)", f)
	}
	if d := f.X*(pos.X-center.X) + f.Y*(pos.Y-center.Y); math.Abs(d) > 1e-12 {
		t.Errorf("swirl not perpendicular to radius, dot = %f", d)
	}
	if f := SwirlForce(center, center, 0.1); f != vecmath.Zero {
		t.Errorf("swirl at centre = %v, want zero", f)
	}
}

func TestForceSystemAccumulates(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Motion, components.Trail](w)
	m := components.Motion{Pos: r3.Vec{X: 0, Y: 100}}
	tr := components.NewTrail(1)
	e := mapper.NewEntity(&m, &tr)

	sources := []components.Source{
		{Pos: r3.Vec{X: 100, Y: 100}, Kind: components.Attractor},
		{Pos: r3.Vec{X: 0, Y: 200}, Kind: components.Attractor},
	}
	in := components.Interactive{Active: true, Pos: r3.Vec{X: -50, Y: 100}}

	NewForceSystem(w).Update(sources, in, config.ForcesConfig{Attraction: 1, Interactive: 0.5}, r3.Vec{})

	got := ecs.NewMap[components.Motion](w).Get(e)
	want := r3.Vec{X: 1 - 0.5, Y: 1}
	if vecmath.Distance(got.Acc, want) > 1e-12 {
		t.Errorf("accumulated %v, want %v", got.Acc, want)
	}
}
