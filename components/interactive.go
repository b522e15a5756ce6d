package components

import "gonum.org/v1/gonum/spatial/r3"

// Interactive is the optional pointer-driven source.
// Active == false is the Absent state; Pos is then meaningless.
type Interactive struct {
	Active bool
	Pos    r3.Vec
}

// Press makes the source Active at (x, y), replacing any existing one.
func (i *Interactive) Press(x, y float64) {
	i.Active = true
	i.Pos = r3.Vec{X: x, Y: y}
}

// Drag moves an Active source. It is ignored while Absent.
func (i *Interactive) Drag(x, y float64) {
	if !i.Active {
		return
	}
	i.Pos.X, i.Pos.Y = x, y
}

// Release returns the source to Absent. It reports the last position and
// whether the source was Active.
func (i *Interactive) Release(x, y float64) (r3.Vec, bool) {
	if !i.Active {
		return r3.Vec{}, false
	}
	i.Pos.X, i.Pos.Y = x, y
	last := i.Pos
	*i = Interactive{}
	return last, true
}
