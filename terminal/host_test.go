package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/input"
)

func newTestHost(t *testing.T, maxTicks int) (*Host, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 40)

	cfg := config.Default()
	cfg.Screen.Width, cfg.Screen.Height = 800, 400
	cfg.Particles.Count, cfg.Particles.Limit = 100, 100
	cfg.Audio.Enabled = false

	g, err := game.New(cfg, game.Options{Seed: 1, Headless: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(g.Unload)

	return NewHost(screen, g, cfg, 1, maxTicks, nil), screen
}

func TestHandleEventQuitKeys(t *testing.T) {
	h, _ := newTestHost(t, 0)

	tests := []struct {
		name string
		ev   tcell.Event
		want bool
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), false},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), false},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone), false},
		{"other rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.HandleEvent(tt.ev); got != tt.want {
				t.Errorf("HandleEvent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpaceTogglesPause(t *testing.T) {
	h, _ := newTestHost(t, 0)
	space := tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)

	h.HandleEvent(space)
	if !h.Paused() {
		t.Fatal("space did not pause")
	}
	h.Update()
	if h.game.Tick() != 0 {
		t.Errorf("paused host advanced to tick %d", h.game.Tick())
	}
	h.HandleEvent(space)
	h.Update()
	if h.game.Tick() != 1 {
		t.Errorf("Tick = %d after resume, want 1", h.game.Tick())
	}
}

func TestMouseMapsCellsToWorld(t *testing.T) {
	h, _ := newTestHost(t, 0)

	// 80x40 cells over an 800x400 world: cell (4, 2) centres at (45, 25).
	h.HandleEvent(tcell.NewEventMouse(4, 2, tcell.Button1, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(6, 2, tcell.Button1, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(6, 2, tcell.ButtonNone, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(10, 10, tcell.Button2, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(10, 10, tcell.Button2, tcell.ModNone))

	want := []input.Command{
		input.Down(45, 25),
		input.Move(65, 25),
		input.Up(65, 25),
		input.ClickAt(105, 105),
	}
	if h.Pending() != len(want) {
		t.Fatalf("Pending = %d, want %d", h.Pending(), len(want))
	}
	got := h.queue.Drain()
	if len(got) != len(want) {
		t.Fatalf("pending = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cmd %d = %v, want %v", i, got[i], want[i])
		}
	}

	h.HandleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	h.HandleEvent(tcell.NewEventMouse(0, 0, tcell.Button2, tcell.ModNone))
	if h.Pending() != 1 {
		t.Fatalf("Pending = %d after a second right press, want 1", h.Pending())
	}
	h.Update()
	if h.Pending() != 0 {
		t.Errorf("Update left %d commands queued", h.Pending())
	}
}

func TestDrawShowsStatusLine(t *testing.T) {
	h, screen := newTestHost(t, 0)
	h.Update()
	h.Draw()

	cells, w, _ := screen.GetContents()
	var line []rune
	for x := 0; x < w; x++ {
		line = append(line, cells[x].Runes...)
	}
	if got := string(line[:7]); got != " tick 1" {
		t.Errorf("status line starts %q, want %q", got, " tick 1")
	}
}

func TestRunStopsAtMaxTicks(t *testing.T) {
	h, _ := newTestHost(t, 3)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if h.game.Tick() < 3 {
		t.Errorf("Tick = %d, want >= 3", h.game.Tick())
	}
}
