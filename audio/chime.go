// Package audio plays a short tone when a force source is relocated.
package audio

import (
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/drift/config"
)

const sampleRate = beep.SampleRate(44100)

// Chime plays the relocation tone. A Chime that failed to initialise, or
// was disabled in config, silently does nothing.
type Chime struct {
	cfg   config.AudioConfig
	ready bool
}

// NewChime returns an uninitialised chime.
func NewChime(cfg config.AudioConfig) *Chime {
	return &Chime{cfg: cfg}
}

// Init opens the speaker. Failure is logged and leaves the chime silent.
func (c *Chime) Init() {
	if !c.cfg.Enabled || c.ready {
		return
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		slog.Warn("audio disabled", "error", err)
		return
	}
	c.ready = true
}

// Ready reports whether sound will be played.
func (c *Chime) Ready() bool {
	return c.ready
}

// Play starts the tone without blocking.
func (c *Chime) Play() {
	if !c.ready {
		return
	}
	s, err := c.Tone()
	if err != nil {
		slog.Warn("chime tone", "error", err)
		return
	}
	speaker.Play(s)
}

// Tone builds the chime streamer: a sine at the configured pitch, cut to
// the configured duration and attenuated by volume.
func (c *Chime) Tone() (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, c.cfg.ToneHz)
	if err != nil {
		return nil, err
	}
	n := sampleRate.N(time.Duration(c.cfg.DurationMs) * time.Millisecond)
	return &effects.Gain{Streamer: beep.Take(n, sine), Gain: c.cfg.Volume - 1}, nil
}

// Close stops playback and releases the device.
func (c *Chime) Close() {
	if c.ready {
		speaker.Close()
		c.ready = false
	}
}
