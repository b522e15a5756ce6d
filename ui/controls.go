package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/config"
)

// Tunables are the values the control panel edits live.
type Tunables struct {
	Forces      config.ForcesConfig
	AngularStep float64
}

// Slider describes one control panel slider.
type Slider struct {
	Label    string
	Min, Max float32
	Get      func(*Tunables) float64
	Set      func(*Tunables, float64)
}

// Sliders returns the control panel layout in display order.
func Sliders() []Slider {
	return []Slider{
		{
			Label: "Attraction", Min: 0, Max: 0.1,
			Get: func(t *Tunables) float64 { return t.Forces.Attraction },
			Set: func(t *Tunables, v float64) { t.Forces.Attraction = v },
		},
		{
			Label: "Repulsion", Min: 0, Max: 200,
			Get: func(t *Tunables) float64 { return t.Forces.Repulsion },
			Set: func(t *Tunables, v float64) { t.Forces.Repulsion = v },
		},
		{
			Label: "Interactive", Min: 0, Max: 0.5,
			Get: func(t *Tunables) float64 { return t.Forces.Interactive },
			Set: func(t *Tunables, v float64) { t.Forces.Interactive = v },
		},
		{
			Label: "Swirl", Min: -0.1, Max: 0.1,
			Get: func(t *Tunables) float64 { return t.Forces.Swirl },
			Set: func(t *Tunables, v float64) { t.Forces.Swirl = v },
		},
		{
			Label: "Orbit speed", Min: 0, Max: 0.1,
			Get: func(t *Tunables) float64 { return t.AngularStep },
			Set: func(t *Tunables, v float64) { t.AngularStep = v },
		},
	}
}

// ControlsPanel renders the right-side tuning panel.
type ControlsPanel struct {
	renderer *Renderer
	sliders  []Slider
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		sliders:  Sliders(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the visible panel, so
// pointer input there is not forwarded to the simulation.
func (c *ControlsPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return rl.CheckCollisionPointRec(rl.Vector2{X: x, Y: y}, c.bounds())
}

func (c *ControlsPanel) height() int32 {
	th := c.renderer.Theme
	return th.Padding*2 + th.LineHeight + 4 + int32(len(c.sliders))*(th.LineHeight*2+8)
}

func (c *ControlsPanel) bounds() rl.Rectangle {
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height())}
}

// Draw renders the panel and returns the edited values and whether any
// slider moved.
func (c *ControlsPanel) Draw(t Tunables) (Tunables, bool) {
	if !c.visible {
		return t, false
	}

	r := c.renderer
	padding := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.height())

	y := r.DrawSectionHeader(c.x+padding, c.y+padding, "Forces")
	y += 4

	changed := false
	for _, s := range c.sliders {
		cur := float32(s.Get(&t))
		var next float32
		next, y = r.DrawSlider(c.x+padding, y, c.width-padding*2, s.Label, cur, s.Min, s.Max)
		if next != cur {
			s.Set(&t, float64(next))
			changed = true
		}
	}
	return t, changed
}
