// Package components defines ECS components and value types for the simulation.
package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/drift/vecmath"
)

// Motion is a particle's kinematic state.
// Acc accumulates forces during a tick and is zero after Integrate.
type Motion struct {
	Pos r3.Vec
	Vel r3.Vec
	Acc r3.Vec
}

// ApplyForce adds f to the accumulator.
func (m *Motion) ApplyForce(f r3.Vec) {
	m.Acc = vecmath.Add(m.Acc, f)
}

// Integrate advances one tick: vel += acc, pos += vel, acc = 0.
func (m *Motion) Integrate() {
	m.Vel = vecmath.Add(m.Vel, m.Acc)
	m.Pos = vecmath.Add(m.Pos, m.Vel)
	m.Acc = vecmath.Zero
}

// OnScreen reports whether the position lies inside [0,w] x [0,h].
// Z is ignored.
func (m *Motion) OnScreen(w, h float64) bool {
	return m.Pos.X >= 0 && m.Pos.X <= w && m.Pos.Y >= 0 && m.Pos.Y <= h
}

// Trail is a bounded position history, oldest first.
type Trail struct {
	Points []r3.Vec
	Limit  int
}

// NewTrail creates an empty trail holding at most limit points.
func NewTrail(limit int) Trail {
	if limit < 1 {
		limit = 1
	}
	return Trail{Points: make([]r3.Vec, 0, limit), Limit: limit}
}

// Push appends p, dropping the oldest point once the limit is exceeded.
func (t *Trail) Push(p r3.Vec) {
	if len(t.Points) < t.Limit {
		t.Points = append(t.Points, p)
		return
	}
	// Shift in place so the backing array never grows past Limit.
	copy(t.Points, t.Points[1:])
	t.Points[len(t.Points)-1] = p
}

// Len returns the number of stored points.
func (t *Trail) Len() int {
	return len(t.Points)
}

// Latest returns the most recent point, or false if the trail is empty.
func (t *Trail) Latest() (r3.Vec, bool) {
	if len(t.Points) == 0 {
		return r3.Vec{}, false
	}
	return t.Points[len(t.Points)-1], true
}
