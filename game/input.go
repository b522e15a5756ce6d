package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/input"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.controls.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.toggleCapture()
	}

	g.handlePointer()
}

// handlePointer turns mouse state into engine commands. The left button
// drives the interactive source; the right button relocates the nearest
// source. Presses that start over the control panel belong to raygui.
func (g *Game) handlePointer() {
	mouse := rl.GetMousePosition()
	x, y := float64(mouse.X), float64(mouse.Y)

	overPanel := g.controls.Contains(mouse.X, mouse.Y)
	down := rl.IsMouseButtonDown(rl.MouseButtonLeft) && (g.tracker.Held() || !overPanel)
	g.pending = g.tracker.Update(g.pending, down, x, y)

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) && !overPanel {
		g.pending = append(g.pending, input.ClickAt(x, y))
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.engine.Resize(float64(w), float64(h))

	rl.UnloadRenderTexture(g.target)
	g.target = rl.LoadRenderTexture(int32(w), int32(h))
	g.controls.SetPosition(int32(w)-250, 10)

	// Frame size changed; the next capture starts a new sequence.
	if g.recorder != nil {
		g.recorder.Reset()
	}
	g.logger.Debug("window resized", "width", w, "height", h)
}

func (g *Game) toggleCapture() {
	if g.recorder == nil {
		g.logger.Warn("capture unavailable: no capture directory set")
		return
	}
	g.capturing = !g.capturing
	if g.capturing {
		g.recorder.Reset()
	}
	g.logger.Info("capture toggled", "enabled", g.capturing, "dir", g.recorder.Dir())
}
