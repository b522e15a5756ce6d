package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/components"
	"github.com/pthm-cable/drift/vecmath"
)

func newParticle(mapper *ecs.Map2[components.Motion, components.Trail], pos, vel r3.Vec, tail int) ecs.Entity {
	m := components.Motion{Pos: pos, Vel: vel}
	tr := components.NewTrail(tail)
	return mapper.NewEntity(&m, &tr)
}

func TestIntegrationResetsAccumulator(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Motion, components.Trail](w)
	e := newParticle(mapper, r3.Vec{X: 10, Y: 10}, r3.Vec{X: 1}, 3)

	m, _ := mapper.Get(e)
	m.ApplyForce(r3.Vec{Y: 2})

	integ := NewIntegrationSystem(w)
	integ.Update()

	m, tr := mapper.Get(e)
	if m.Acc != vecmath.Zero {
		t.Errorf("Acc = %v after integrate, want zero", m.Acc)
	}
	if m.Vel != (r3.Vec{X: 1, Y: 2}) {
		t.Errorf("Vel = %v, want (1, 2, 0)", m.Vel)
	}
	if m.Pos != (r3.Vec{X: 11, Y: 12}) {
		t.Errorf("Pos = %v, want (11, 12, 0)", m.Pos)
	}
	if latest, ok := tr.Latest(); !ok || latest != m.Pos {
		t.Errorf("trail latest = %v, want %v", latest, m.Pos)
	}
}

func TestIntegrationTrailBounded(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Motion, components.Trail](w)
	e := newParticle(mapper, r3.Vec{}, r3.Vec{X: 1}, 3)

	integ := NewIntegrationSystem(w)
	for i := 0; i < 10; i++ {
		integ.Update()
		_, tr := mapper.Get(e)
		if tr.Len() > 3 {
			t.Fatalf("tick %d: trail length %d exceeds 3", i, tr.Len())
		}
	}

	_, tr := mapper.Get(e)
	if tr.Points[0].X != 8 || tr.Points[2].X != 10 {
		t.Errorf("trail = %v, want x = 8..10 oldest first", tr.Points)
	}
}

func TestCullRemovesExactlyOffScreen(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Motion, components.Trail](w)

	tests := []struct {
		name string
		pos  r3.Vec
		keep bool
	}{
		{"centre", r3.Vec{X: 50, Y: 50}, true},
		{"origin corner", r3.Vec{}, true},
		{"far corner", r3.Vec{X: 100, Y: 100}, true},
		{"deep z", r3.Vec{X: 50, Y: 50, Z: -1000}, true},
		{"left", r3.Vec{X: -0.001, Y: 50}, false},
		{"right", r3.Vec{X: 100.001, Y: 50}, false},
		{"above", r3.Vec{X: 50, Y: -5}, false},
		{"below", r3.Vec{X: 50, Y: 101}, false},
	}

	entities := make([]ecs.Entity, len(tests))
	for i, tt := range tests {
		entities[i] = newParticle(mapper, tt.pos, r3.Vec{}, 1)
	}

	cull := NewCullSystem(w, Bounds{Width: 100, Height: 100})
	if n := cull.Update(w); n != 4 {
		t.Errorf("culled %d, want 4", n)
	}

	for i, tt := range tests {
		if alive := w.Alive(entities[i]); alive != tt.keep {
			t.Errorf("%s: alive = %v, want %v", tt.name, alive, tt.keep)
		}
	}

	// A second pass finds nothing new.
	if n := cull.Update(w); n != 0 {
		t.Errorf("second cull removed %d, want 0", n)
	}
}

func TestCullFollowsBounds(t *testing.T) {
	w := ecs.NewWorld()
	mapper := ecs.NewMap2[components.Motion, components.Trail](w)
	e := newParticle(mapper, r3.Vec{X: 150, Y: 50}, r3.Vec{}, 1)

	cull := NewCullSystem(w, Bounds{Width: 200, Height: 100})
	if n := cull.Update(w); n != 0 {
		t.Fatalf("culled %d inside wide bounds", n)
	}
	cull.SetBounds(Bounds{Width: 100, Height: 100})
	if n := cull.Update(w); n != 1 || w.Alive(e) {
		t.Errorf("culled %d after shrink, alive=%v", n, w.Alive(e))
	}
}
