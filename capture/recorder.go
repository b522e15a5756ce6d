// Package capture writes one image per simulation tick for offline video
// assembly.
package capture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrOutOfSequence is returned when a capture would skip or repeat a tick.
var ErrOutOfSequence = errors.New("capture: tick out of sequence")

// WriteFunc writes the current frame image to path.
type WriteFunc func(path string) error

// Recorder enforces that captured ticks are consecutive.
// The first capture fixes the starting tick.
type Recorder struct {
	dir     string
	next    int
	started bool
	count   int
}

// NewRecorder creates the output directory and returns a recorder.
func NewRecorder(dir string) (*Recorder, error) {
	if dir == "" {
		return nil, errors.New("capture: empty directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating capture directory: %w", err)
	}
	return &Recorder{dir: dir}, nil
}

// Path returns the file path for tick.
func (r *Recorder) Path(tick int) string {
	return filepath.Join(r.dir, fmt.Sprintf("frame_%06d.png", tick))
}

// Capture writes the frame for tick. Only the tick after the previous
// capture is accepted; a failed write does not advance the sequence.
func (r *Recorder) Capture(tick int, write WriteFunc) error {
	if r.started && tick != r.next {
		return fmt.Errorf("%w: got %d, want %d", ErrOutOfSequence, tick, r.next)
	}
	if err := write(r.Path(tick)); err != nil {
		return fmt.Errorf("writing frame %d: %w", tick, err)
	}
	r.started = true
	r.next = tick + 1
	r.count++
	return nil
}

// Reset forgets the sequence so recording can resume at any tick.
func (r *Recorder) Reset() {
	r.started = false
}

// Count returns the number of frames written.
func (r *Recorder) Count() int {
	return r.count
}

// Dir returns the output directory.
func (r *Recorder) Dir() string {
	return r.dir
}
