package input

// Tracker turns polled pointer state into edge-triggered commands.
// Hosts that only expose "is the button held, where is the cursor" feed it
// once per frame.
type Tracker struct {
	down       bool
	lastX      float64
	lastY      float64
	hasLastPos bool
}

// Update records the current pointer state and returns the commands it
// implies, appending to dst.
func (t *Tracker) Update(dst []Command, down bool, x, y float64) []Command {
	moved := !t.hasLastPos || x != t.lastX || y != t.lastY

	switch {
	case down && !t.down:
		dst = append(dst, Down(x, y))
	case down && t.down && moved:
		dst = append(dst, Move(x, y))
	case !down && t.down:
		dst = append(dst, Up(x, y))
	}

	t.down = down
	t.lastX, t.lastY = x, y
	t.hasLastPos = true
	return dst
}

// Held reports whether the pointer is currently down.
func (t *Tracker) Held() bool {
	return t.down
}

// Scaler maps host coordinates (cells, window pixels) to world coordinates.
type Scaler struct {
	SX, SY float64
}

// NewScaler returns a scaler from a host surface of hostW x hostH units to a
// world of worldW x worldH.
func NewScaler(hostW, hostH, worldW, worldH float64) Scaler {
	s := Scaler{SX: 1, SY: 1}
	if hostW > 0 {
		s.SX = worldW / hostW
	}
	if hostH > 0 {
		s.SY = worldH / hostH
	}
	return s
}

// ToWorld converts a host coordinate to world space.
func (s Scaler) ToWorld(x, y float64) (float64, float64) {
	return x * s.SX, y * s.SY
}

// ToHost converts a world coordinate to host space.
func (s Scaler) ToHost(x, y float64) (float64, float64) {
	return x / s.SX, y / s.SY
}
