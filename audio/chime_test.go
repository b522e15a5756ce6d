package audio

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/drift/config"
)

func TestToneLengthAndVolume(t *testing.T) {
	c := NewChime(config.AudioConfig{ToneHz: 440, DurationMs: 50, Volume: 0.25})
	s, err := c.Tone()
	if err != nil {
		t.Fatal(err)
	}

	buf := make([][2]float64, 512)
	total := 0
	peak := 0.0
	for {
		n, ok := s.Stream(buf)
		total += n
		for _, frame := range buf[:n] {
			peak = math.Max(peak, math.Abs(frame[0]))
		}
		if !ok {
			break
		}
	}

	if want := sampleRate.N(50 * time.Millisecond); total != want {
		t.Errorf("tone has %d samples, want %d", total, want)
	}
	if peak > 0.25+1e-9 || peak < 0.2 {
		t.Errorf("peak amplitude %v, want about 0.25", peak)
	}
}

func TestToneRejectsBadPitch(t *testing.T) {
	// Above Nyquist
	c := NewChime(config.AudioConfig{ToneHz: 30000, DurationMs: 10, Volume: 1})
	if _, err := c.Tone(); err == nil {
		t.Error("expected error for a pitch above half the sample rate")
	}
}

func TestDisabledChimeIsSilent(t *testing.T) {
	c := NewChime(config.AudioConfig{Enabled: false, ToneHz: 440, DurationMs: 10})
	c.Init()
	if c.Ready() {
		t.Error("disabled chime became ready")
	}
	c.Play()
	c.Close()
}
