package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/drift/systems"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Tick           int
	Population     int
	Limit          int
	Sources        int
	Refills        int
	Destroyed      int
	StepsPerUpdate int
	FPS            int32
	Paused         bool
	Capturing      bool
	Captured       int
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.DarkGray)

	rl.DrawText(
		fmt.Sprintf("Particles: %d / %d | Sources: %d | Refills: %d (destroyed %d)",
			data.Population, data.Limit, data.Sources, data.Refills, data.Destroyed),
		10, 35, 16, rl.Gray,
	)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Steps: %dx | FPS: %d", data.Tick, data.StepsPerUpdate, data.FPS),
		10, 55, 16, rl.Gray,
	)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	if data.Capturing {
		status += fmt.Sprintf(" | REC %d", data.Captured)
	}
	rl.DrawText(status, 10, 75, 16, rl.Maroon)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	SystemTimes map[string]time.Duration
	Total       time.Duration
	Registry    *systems.SystemRegistry
}

// PerfPanel renders the system performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, one line per phase in step order.
func (p *PerfPanel) Draw(data PerfPanelData) {
	x, y := p.x, p.y
	r := p.renderer

	r.DrawPanel(x-6, y-6, 250, int32(len(data.Registry.All()))*14+48)
	rl.DrawText("Step Phases", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Total: %s", data.Total.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, info := range data.Registry.All() {
		avg := data.SystemTimes[info.ID]
		pct := float64(0)
		if data.Total > 0 {
			pct = float64(avg) / float64(data.Total) * 100
		}

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", info.Name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
