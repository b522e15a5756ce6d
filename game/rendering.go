package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/ui"
)

const controlsLegend = "[LMB] drag source  [RMB] move nearest  [Space] pause  [</>] speed  [H] panel  [P] perf  [C] capture"

// Draw renders the particle field, captures it when recording, then draws
// the HUD and control panel on top.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	g.drawField()
	g.captureFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	// Render textures are stored bottom-up.
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(g.target.Texture.Width), Height: -float32(g.target.Texture.Height)}
	rl.DrawTextureRec(g.target.Texture, src, rl.Vector2{}, rl.White)

	g.drawHUD()
	g.drawControls()

	rl.EndDrawing()
}

// drawField renders the current frame into the off-screen target.
func (g *Game) drawField() {
	rl.BeginTextureMode(g.target)
	if g.frame != nil {
		renderer.DrawRaylib(g.builder.Background(), g.builder.Build(g.frame))
	} else {
		rl.ClearBackground(renderer.RaylibColor(g.builder.Background(), 1))
	}
	rl.EndTextureMode()
}

// captureFrame saves the field once per tick while recording.
func (g *Game) captureFrame() {
	if !g.capturing || g.frame == nil || g.frame.Tick == g.lastCaptured {
		return
	}

	err := g.recorder.Capture(g.frame.Tick, func(path string) error {
		img := rl.LoadImageFromTexture(g.target.Texture)
		defer rl.UnloadImage(img)
		rl.ImageFlipVertical(img)
		if !rl.ExportImage(*img, path) {
			return fmt.Errorf("export %s failed", path)
		}
		return nil
	})
	if err != nil {
		g.logger.Error("capture stopped", "tick", g.frame.Tick, "error", err)
		g.capturing = false
		return
	}
	g.lastCaptured = g.frame.Tick
}

func (g *Game) drawHUD() {
	captured := 0
	if g.recorder != nil {
		captured = g.recorder.Count()
	}
	g.hud.Draw(ui.HUDData{
		Title:          "Drift",
		Tick:           g.engine.Tick(),
		Population:     g.engine.Population(),
		Limit:          g.cfg.Particles.Limit,
		Sources:        len(g.engine.Sources()),
		Refills:        g.engine.Refills(),
		Destroyed:      g.engine.Destroyed(),
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Paused:         g.paused,
		Capturing:      g.capturing,
		Captured:       captured,
	})

	if g.showPerf {
		stats := g.perfCollector.Stats()
		g.perfPanel.Draw(ui.PerfPanelData{
			SystemTimes: stats.PhaseAvg,
			Total:       stats.AvgTickDuration,
			Registry:    g.registry,
		})
	}

	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
}

// drawControls draws the tuning panel and pushes edits to the engine.
func (g *Game) drawControls() {
	cur := ui.Tunables{Forces: g.engine.Forces(), AngularStep: g.engine.AngularStep()}
	next, changed := g.controls.Draw(cur)
	if !changed {
		return
	}
	g.engine.SetForces(next.Forces)
	g.engine.SetAngularStep(next.AngularStep)
	g.logger.Debug("forces tuned",
		"attraction", next.Forces.Attraction,
		"repulsion", next.Forces.Repulsion,
		"interactive", next.Forces.Interactive,
		"swirl", next.Forces.Swirl,
		"angular_step", next.AngularStep,
	)
}
