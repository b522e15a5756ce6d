package renderer

import (
	"math"

	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Terminal glyphs by role.
const (
	GlyphParticle      = '·'
	GlyphParticleLarge = '•'
	GlyphTrail         = '.'
	GlyphSource        = '●'
)

// largeSize is the point size from which a particle gets the large glyph.
const largeSize = 2.0

// TerminalColor converts a colour to a tcell colour, premultiplied against
// bg by alpha since terminals have no blending.
func TerminalColor(c, bg colorful.Color, alpha float64) tcell.Color {
	if alpha < 1 {
		c = bg.BlendRgb(c, math.Max(alpha, 0))
	}
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// DrawTerminal fills the screen with bg and draws prims scaled from a world
// of worldW x worldH onto the screen's cells. It does not call Show.
func DrawTerminal(s tcell.Screen, bg colorful.Color, prims []Primitive, worldW, worldH float64) {
	cols, rows := s.Size()
	if cols <= 0 || rows <= 0 || worldW <= 0 || worldH <= 0 {
		return
	}
	bgColor := TerminalColor(bg, bg, 1)
	s.Fill(' ', tcell.StyleDefault.Background(bgColor))

	sx := float64(cols) / worldW
	sy := float64(rows) / worldH
	cell := func(x, y float64) (int, int, bool) {
		cx, cy := int(math.Floor(x*sx)), int(math.Floor(y*sy))
		// The far edge is on screen in world space.
		if cx == cols {
			cx--
		}
		if cy == rows {
			cy--
		}
		return cx, cy, cx >= 0 && cx < cols && cy >= 0 && cy < rows
	}

	for i := range prims {
		p := &prims[i]
		style := tcell.StyleDefault.
			Background(bgColor).
			Foreground(TerminalColor(p.Color, bg, p.Alpha))

		switch p.Shape {
		case ShapeLine:
			x0, y0, ok0 := cell(p.X1, p.Y1)
			x1, y1, ok1 := cell(p.X2, p.Y2)
			if !ok0 && !ok1 {
				continue
			}
			plotLine(x0, y0, x1, y1, func(x, y int) {
				if x >= 0 && x < cols && y >= 0 && y < rows {
					s.SetContent(x, y, GlyphTrail, nil, style)
				}
			})
		case ShapePoint:
			x, y, ok := cell(p.X1, p.Y1)
			if !ok {
				continue
			}
			s.SetContent(x, y, glyphFor(p), nil, style)
		}
	}
}

func glyphFor(p *Primitive) rune {
	switch {
	case p.Role == RoleSource:
		return GlyphSource
	case p.Size >= largeSize:
		return GlyphParticleLarge
	default:
		return GlyphParticle
	}
}

// plotLine visits the cells of a Bresenham line from (x0,y0) to (x1,y1).
func plotLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	stepX, stepY := 1, 1
	if x0 > x1 {
		stepX = -1
	}
	if y0 > y1 {
		stepY = -1
	}
	e := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += stepX
		}
		if e2 <= dx {
			e += dx
			y0 += stepY
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
