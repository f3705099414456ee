package scenes

import (
	"github.com/san-kum/framekit/internal/display"
	"github.com/san-kum/framekit/internal/easing"
	"github.com/san-kum/framekit/internal/interp"
	"github.com/san-kum/framekit/internal/spring"
	"github.com/san-kum/framekit/internal/timeline"
)

// builder constructs the tracks and springs of one scene and keeps the
// first error. Scene code checks err once after building; a nil track
// from a failed builder is never evaluated.
type builder struct {
	fps int
	err error
}

func (b *builder) keep(err error) {
	if b.err == nil {
		b.err = err
	}
}

// track builds an arbitrary track.
func (b *builder) track(inputs, outputs []float64, opts interp.Options) *interp.Track {
	t, err := interp.NewTrack(inputs, outputs, opts)
	b.keep(err)
	return t
}

// ramp goes from a to z over [start, start+length), clamped on both sides.
func (b *builder) ramp(start, length, a, z float64, e easing.Func) *interp.Track {
	return b.track([]float64{start, start + length}, []float64{a, z}, interp.Clamped(e))
}

// enter is a ramp clamped only on the right; frames before start extend
// the first segment.
func (b *builder) enter(start, length, a, z float64, e easing.Func) *interp.Track {
	return b.track([]float64{start, start + length}, []float64{a, z}, interp.Options{Right: interp.Clamp, Easing: e})
}

// fade is a clamped 0 → 1 ramp.
func (b *builder) fade(start, length float64) *interp.Track {
	return b.ramp(start, length, 0, 1, nil)
}

func (b *builder) spring(cfg spring.Config, opts ...spring.Option) *spring.Spring {
	s, err := spring.New(b.fps, cfg, opts...)
	b.keep(err)
	return s
}

func (b *builder) colors(inputs []float64, hexes []string, e easing.Func) *interp.ColorTrack {
	c, err := interp.NewColorTrack(inputs, hexes, e)
	b.keep(err)
	return c
}

// series wraps timeline.Series for use inside a builder.
func (b *builder) series(name string, items ...timeline.Spec) timeline.Spec {
	s, err := timeline.Series(name, items...)
	b.keep(err)
	return s
}

// layer returns a node that is visible for the whole scene.
func layer(name string, draw timeline.DrawFunc, children ...timeline.Spec) timeline.Spec {
	return timeline.Seq(name, 0, timeline.Unbounded, draw, children...)
}

// background is the full-canvas fill every scene draws first. Its opacity
// carries the scene-wide fade.
func background(id, color string, w, h int, opacity float64) display.Element {
	return display.Rect(id, 0, 0, float64(w), float64(h)).Fill(color).With("opacity", opacity)
}

// blink toggles between 1 and 0 every period frames.
func blink(frame, period int) float64 {
	q := frame / period
	if frame < 0 && frame%period != 0 {
		q--
	}
	if q%2 == 0 {
		return 1
	}
	return 0
}

// wrap returns frame modulo n in [0, n).
func wrap(frame, n int) int {
	m := frame % n
	if m < 0 {
		m += n
	}
	return m
}

var outCubic = easing.Out(easing.Cubic)
