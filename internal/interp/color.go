package interp

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/framekit/internal/easing"
	"github.com/san-kum/framekit/internal/motion"
)

// ColorTrack maps a frame to a color through color breakpoints. Colors are
// blended in CIE L*a*b* so midpoints keep their perceived brightness.
// Outside the breakpoint domain the track always clamps.
type ColorTrack struct {
	inputs []float64
	colors []colorful.Color
	ease   easing.Func
}

// NewColorTrack parses the hex colors and validates the inputs.
func NewColorTrack(inputs []float64, hexes []string, e easing.Func) (*ColorTrack, error) {
	placeholder := make([]float64, len(hexes))
	if err := Validate(inputs, placeholder); err != nil {
		return nil, err
	}
	colors := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, motion.Configf("interp.NewColorTrack", "colors", "entry %d: %v", i, err)
		}
		colors[i] = c
	}
	return &ColorTrack{
		inputs: append([]float64(nil), inputs...),
		colors: colors,
		ease:   e,
	}, nil
}

// At returns the color at frame.
func (c *ColorTrack) At(frame float64) colorful.Color {
	last := len(c.inputs) - 1
	if frame <= c.inputs[0] {
		return c.colors[0]
	}
	if frame >= c.inputs[last] {
		return c.colors[last]
	}
	i, t := locate(frame, c.inputs)
	switch t {
	case 0:
		return c.colors[i]
	case 1:
		return c.colors[i+1]
	}
	if c.ease != nil {
		t = c.ease(t)
	}
	return c.colors[i].BlendLab(c.colors[i+1], t)
}

// Hex returns the color at frame as #rrggbb.
func (c *ColorTrack) Hex(frame float64) string {
	return c.At(frame).Clamped().Hex()
}
