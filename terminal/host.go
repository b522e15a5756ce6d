// Package terminal runs the simulation in a text terminal using tcell.
package terminal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/engine"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/input"
	"github.com/pthm-cable/drift/renderer"
)

// frameInterval is the redraw period (~60 FPS).
const frameInterval = 16 * time.Millisecond

// Host drives a game from terminal events and draws frames as glyphs.
// Cells are mapped onto the engine's world rectangle, so the terminal size
// never changes the physics.
type Host struct {
	screen  tcell.Screen
	game    *game.Game
	builder *renderer.Builder
	logger  *slog.Logger

	scaler    input.Scaler
	tracker   input.Tracker
	rightDown bool
	queue     input.Queue

	frame    *engine.Frame
	paused   bool
	maxTicks int
}

// NewHost wraps an initialised screen. maxTicks > 0 stops the run after
// that many ticks.
func NewHost(screen tcell.Screen, g *game.Game, cfg *config.Config, seed int64, maxTicks int, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Host{
		screen:   screen,
		game:     g,
		builder:  renderer.NewBuilder(cfg, seed),
		logger:   logger,
		maxTicks: maxTicks,
	}
	h.resize()
	return h
}

// Run polls events and redraws until the user quits, ctx is cancelled or
// the tick limit is reached.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	defer h.screen.DisableMouse()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	// PollEvent returns nil once the screen is finalised.
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !h.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			h.Update()
			h.Draw()
			if h.maxTicks > 0 && h.game.Tick() >= h.maxTicks {
				h.logger.Info("max ticks reached", "tick", h.game.Tick())
				return nil
			}
		}
	}
}

// HandleEvent processes one terminal event. It returns false when the user
// asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				h.paused = !h.paused
			}
		}

	case *tcell.EventMouse:
		h.handleMouse(ev)

	case *tcell.EventResize:
		h.resize()
		h.screen.Sync()
	}
	return true
}

// handleMouse converts a mouse event to commands. Button1 drives the
// interactive source; a Button2 press relocates the nearest source.
func (h *Host) handleMouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	// Aim at the cell centre.
	x, y := h.scaler.ToWorld(float64(cx)+0.5, float64(cy)+0.5)
	buttons := ev.Buttons()

	for _, cmd := range h.tracker.Update(nil, buttons&tcell.Button1 != 0, x, y) {
		h.queue.Push(cmd)
	}

	right := buttons&tcell.Button2 != 0
	if right && !h.rightDown {
		h.queue.Push(input.ClickAt(x, y))
	}
	h.rightDown = right
}

// Update advances the game unless paused. Pending commands are kept while
// paused and applied on resume.
func (h *Host) Update() {
	if h.paused {
		return
	}
	h.frame = h.game.Advance(h.queue.Drain())
}

// Draw renders the latest frame and a status line.
func (h *Host) Draw() {
	b := h.game.Engine().Bounds()
	if h.frame != nil {
		renderer.DrawTerminal(h.screen, h.builder.Background(), h.builder.Build(h.frame), b.Width, b.Height)
	} else {
		renderer.DrawTerminal(h.screen, h.builder.Background(), nil, b.Width, b.Height)
	}
	h.drawStatus()
	h.screen.Show()
}

func (h *Host) drawStatus() {
	e := h.game.Engine()
	status := fmt.Sprintf(" tick %d  particles %d  refills %d ", e.Tick(), e.Population(), e.Refills())
	if h.paused {
		status += " PAUSED "
	}
	status += " [space] pause [q] quit "

	style := tcell.StyleDefault.Reverse(true)
	cols, _ := h.screen.Size()
	for i, r := range []rune(status) {
		if i >= cols {
			break
		}
		h.screen.SetContent(i, 0, r, nil, style)
	}
}

// Paused reports whether stepping is suspended.
func (h *Host) Paused() bool {
	return h.paused
}

// Pending returns the number of commands queued for the next update.
func (h *Host) Pending() int {
	return h.queue.Len()
}

func (h *Host) resize() {
	cols, rows := h.screen.Size()
	b := h.game.Engine().Bounds()
	h.scaler = input.NewScaler(float64(cols), float64(rows), b.Width, b.Height)
}
