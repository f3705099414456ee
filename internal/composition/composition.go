// Package composition holds top-level scene definitions and the registry
// an external renderer resolves them from.
package composition

import (
	"github.com/san-kum/framekit/internal/display"
	"github.com/san-kum/framekit/internal/motion"
	"github.com/san-kum/framekit/internal/timeline"
)

// Composition is a named scene with a fixed duration, rate and canvas.
type Composition struct {
	ID             string
	Folder         string
	DurationFrames int
	FPS            int
	Width          int
	Height         int
	Root           *timeline.Node
}

func (c Composition) Validate() error {
	switch {
	case c.ID == "":
		return motion.Configf("composition", "id", "must not be empty")
	case c.DurationFrames <= 0:
		return motion.Configf("composition "+c.ID, "durationFrames", "must be positive, got %d", c.DurationFrames)
	case c.FPS <= 0:
		return motion.Configf("composition "+c.ID, "fps", "must be positive, got %d", c.FPS)
	case c.Width <= 0 || c.Height <= 0:
		return motion.Configf("composition "+c.ID, "size", "must be positive, got %dx%d", c.Width, c.Height)
	case c.Root == nil:
		return motion.Configf("composition "+c.ID, "root", "must not be nil")
	}
	return nil
}

// Context returns the evaluation context for a global frame.
func (c Composition) Context(frame int) motion.Context {
	return motion.Context{
		Frame:          frame,
		FPS:            c.FPS,
		Width:          c.Width,
		Height:         c.Height,
		DurationFrames: c.DurationFrames,
	}
}

// Render evaluates the root node at frame. Frames outside
// [0, DurationFrames) fail with a *motion.RangeError; nothing is clamped.
func (c Composition) Render(frame int) (display.Frame, error) {
	if frame < 0 || frame >= c.DurationFrames {
		return display.Frame{}, &motion.RangeError{ID: c.ID, Frame: frame, Duration: c.DurationFrames}
	}
	return display.Frame{
		Composition: c.ID,
		Index:       frame,
		Width:       c.Width,
		Height:      c.Height,
		FPS:         c.FPS,
		Elements:    c.Root.Render(c.Context(frame)),
	}, nil
}

// Seconds returns the composition length in seconds.
func (c Composition) Seconds() float64 {
	return float64(c.DurationFrames) / float64(c.FPS)
}
