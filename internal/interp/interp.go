// Package interp maps a frame to a value through piecewise breakpoints.
//
// Breakpoints are (input, output) pairs with strictly increasing inputs.
// Inside a segment the normalized progress is optionally eased and then
// blended linearly between the segment's outputs. Outside the breakpoint
// domain each side follows its own extrapolation [Policy].
//
// A frame that lands exactly on a breakpoint returns that breakpoint's
// output exactly; a frame on an interior breakpoint belongs to the segment
// on its left (closed on the right).
package interp

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/framekit/internal/easing"
	"github.com/san-kum/framekit/internal/motion"
)

// Policy selects the behavior outside the breakpoint domain.
type Policy int

const (
	// Extend continues the slope of the outermost segment.
	Extend Policy = iota
	// Clamp holds the outermost output.
	Clamp
	// Identity returns the input frame unchanged.
	Identity
)

func (p Policy) String() string {
	switch p {
	case Extend:
		return "extend"
	case Clamp:
		return "clamp"
	case Identity:
		return "identity"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "extend", "clamp" or "identity".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "extend":
		return Extend, nil
	case "clamp":
		return Clamp, nil
	case "identity":
		return Identity, nil
	}
	return 0, motion.Configf("interp.ParsePolicy", "policy", "unknown extrapolation %q", s)
}

func (p Policy) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

func (p *Policy) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParsePolicy(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Options configures one interpolation. The zero value extends on both
// sides with a linear blend.
type Options struct {
	Left   Policy
	Right  Policy
	Easing easing.Func
}

// Clamped returns options that clamp on both sides with the given easing
// (nil for linear).
func Clamped(e easing.Func) Options {
	return Options{Left: Clamp, Right: Clamp, Easing: e}
}

// Interpolate evaluates frame against the breakpoints described by inputs
// and outputs. It fails with motion.ErrConfiguration when the breakpoints
// are malformed.
func Interpolate(frame float64, inputs, outputs []float64, opts Options) (float64, error) {
	if err := Validate(inputs, outputs); err != nil {
		return 0, err
	}
	return eval(frame, inputs, outputs, opts), nil
}

// Validate checks the breakpoint invariants: at least two pairs, matching
// lengths, finite values and strictly increasing inputs.
func Validate(inputs, outputs []float64) error {
	if len(inputs) != len(outputs) {
		return motion.Configf("interp", "breakpoints", "have %d inputs but %d outputs", len(inputs), len(outputs))
	}
	if len(inputs) < 2 {
		return motion.Configf("interp", "breakpoints", "need at least 2, got %d", len(inputs))
	}
	for i := range inputs {
		if !motion.IsFinite(inputs[i], outputs[i]) {
			return motion.Configf("interp", "breakpoints", "pair %d is not finite", i)
		}
		if i > 0 && inputs[i] <= inputs[i-1] {
			return motion.Configf("interp", "inputs", "must be strictly increasing, got %g after %g", inputs[i], inputs[i-1])
		}
	}
	return nil
}

func eval(frame float64, inputs, outputs []float64, opts Options) float64 {
	last := len(inputs) - 1

	if frame < inputs[0] {
		return extrapolate(opts.Left, frame, inputs[0], outputs[0], inputs[0], inputs[1], outputs[0], outputs[1])
	}
	if frame > inputs[last] {
		return extrapolate(opts.Right, frame, inputs[last], outputs[last], inputs[last-1], inputs[last], outputs[last-1], outputs[last])
	}

	i, t := locate(frame, inputs)
	if t == 0 {
		return outputs[i]
	}
	if t == 1 {
		return outputs[i+1]
	}
	if opts.Easing != nil {
		t = opts.Easing(t)
	}
	return outputs[i] + (outputs[i+1]-outputs[i])*t
}

// locate returns the segment index containing frame and the normalized
// progress within it. frame must lie inside [inputs[0], inputs[last]].
func locate(frame float64, inputs []float64) (int, float64) {
	i := sort.Search(len(inputs)-1, func(i int) bool { return frame <= inputs[i+1] })
	if i >= len(inputs)-1 {
		i = len(inputs) - 2
	}
	lo, hi := inputs[i], inputs[i+1]
	switch frame {
	case lo:
		return i, 0
	case hi:
		return i, 1
	}
	return i, (frame - lo) / (hi - lo)
}

func extrapolate(p Policy, frame, edgeIn, edgeOut, x0, x1, y0, y1 float64) float64 {
	switch p {
	case Clamp:
		return edgeOut
	case Identity:
		return frame
	default:
		slope := (y1 - y0) / (x1 - x0)
		return edgeOut + (frame-edgeIn)*slope
	}
}
