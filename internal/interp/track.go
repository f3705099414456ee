package interp

import (
	"github.com/san-kum/framekit/internal/easing"
)

// Track is a validated, immutable set of breakpoints with fixed options.
// Scene code builds tracks once at construction so that malformed
// breakpoints surface at registration and per-frame evaluation cannot fail.
type Track struct {
	inputs  []float64
	outputs []float64
	opts    Options
}

// NewTrack validates and copies the breakpoints.
func NewTrack(inputs, outputs []float64, opts Options) (*Track, error) {
	if err := Validate(inputs, outputs); err != nil {
		return nil, err
	}
	return &Track{
		inputs:  append([]float64(nil), inputs...),
		outputs: append([]float64(nil), outputs...),
		opts:    opts,
	}, nil
}

// At evaluates the track at a real-valued frame.
func (t *Track) At(frame float64) float64 {
	return eval(frame, t.inputs, t.outputs, t.opts)
}

// AtFrame evaluates the track at an integer frame.
func (t *Track) AtFrame(frame int) float64 {
	return t.At(float64(frame))
}

// Domain returns the first and last breakpoint inputs.
func (t *Track) Domain() (float64, float64) {
	return t.inputs[0], t.inputs[len(t.inputs)-1]
}

// Sample evaluates the track at every integer frame in [from, to).
func (t *Track) Sample(from, to int) []float64 {
	if to <= from {
		return nil
	}
	out := make([]float64, 0, to-from)
	for f := from; f < to; f++ {
		out = append(out, t.AtFrame(f))
	}
	return out
}

// TrackSpec is the serializable description of a track, as found in
// configuration files.
type TrackSpec struct {
	Inputs  []float64 `yaml:"inputs" json:"inputs"`
	Outputs []float64 `yaml:"outputs" json:"outputs"`
	Left    Policy    `yaml:"left" json:"left"`
	Right   Policy    `yaml:"right" json:"right"`
	Easing  string    `yaml:"easing,omitempty" json:"easing,omitempty"`
}

// Build resolves the easing name and validates the breakpoints.
func (s TrackSpec) Build() (*Track, error) {
	opts := Options{Left: s.Left, Right: s.Right}
	if s.Easing != "" {
		f, err := easing.Parse(s.Easing)
		if err != nil {
			return nil, err
		}
		opts.Easing = f
	}
	return NewTrack(s.Inputs, s.Outputs, opts)
}
