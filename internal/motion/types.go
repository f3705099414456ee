package motion

import "math"

// Context carries the explicit inputs of one evaluation. Frame is local to
// whichever timeline node is being evaluated; the rest is composition-wide.
type Context struct {
	Frame          int
	FPS            int
	Width          int
	Height         int
	DurationFrames int
}

// At returns a copy of c evaluated at a different frame.
func (c Context) At(frame int) Context {
	c.Frame = frame
	return c
}

// Seconds converts the context frame to elapsed seconds.
func (c Context) Seconds() float64 {
	if c.FPS <= 0 {
		return 0
	}
	return float64(c.Frame) / float64(c.FPS)
}

// IsFinite reports whether every value is neither NaN nor infinite.
func IsFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
