package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RaylibColor converts a colour and alpha in [0,1] to a raylib colour.
func RaylibColor(c colorful.Color, alpha float64) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, alphaByte(alpha))
}

// DrawRaylib clears to bg and draws prims into the current target, either
// the window or a render texture.
func DrawRaylib(bg colorful.Color, prims []Primitive) {
	rl.ClearBackground(RaylibColor(bg, 1))

	for i := range prims {
		p := &prims[i]
		col := RaylibColor(p.Color, p.Alpha)
		switch p.Shape {
		case ShapeLine:
			rl.DrawLineEx(
				rl.Vector2{X: float32(p.X1), Y: float32(p.Y1)},
				rl.Vector2{X: float32(p.X2), Y: float32(p.Y2)},
				float32(p.Size),
				col,
			)
		case ShapePoint:
			rl.DrawCircleV(rl.Vector2{X: float32(p.X1), Y: float32(p.Y1)}, float32(p.Size)/2, col)
		}
	}
}

func alphaByte(a float64) uint8 {
	switch {
	case a <= 0:
		return 0
	case a >= 1:
		return 255
	}
	return uint8(a*255 + 0.5)
}
