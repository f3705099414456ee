package easing

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fogleman/ease"
	"github.com/san-kum/framekit/internal/motion"
)

// DefaultBackOvershoot is the overshoot used by the unparameterized back curves.
const DefaultBackOvershoot = 1.70158

var named = map[string]Func{
	"linear":       Linear,
	"in-cubic":     InCubic,
	"out-cubic":    OutCubic,
	"in-out-cubic": InOut(Cubic),
	"in-back":      Back(DefaultBackOvershoot),
	"out-back":     Out(Back(DefaultBackOvershoot)),
	"in-out-back":  InOut(Back(DefaultBackOvershoot)),
	"in-bounce":    Out(Bounce),
	"out-bounce":   Bounce,
	"in-sin":       Sin,
	"out-sin":      Out(Sin),

	// Penner curves.
	"in-quad":        ease.InQuad,
	"out-quad":       ease.OutQuad,
	"in-out-quad":    ease.InOutQuad,
	"in-quart":       ease.InQuart,
	"out-quart":      ease.OutQuart,
	"in-out-quart":   ease.InOutQuart,
	"in-quint":       ease.InQuint,
	"out-quint":      ease.OutQuint,
	"in-out-quint":   ease.InOutQuint,
	"in-sine":        ease.InSine,
	"out-sine":       ease.OutSine,
	"in-out-sine":    ease.InOutSine,
	"in-expo":        ease.InExpo,
	"out-expo":       ease.OutExpo,
	"in-out-expo":    ease.InOutExpo,
	"in-circ":        ease.InCirc,
	"out-circ":       ease.OutCirc,
	"in-out-circ":    ease.InOutCirc,
	"in-elastic":     ease.InElastic,
	"out-elastic":    ease.OutElastic,
	"in-out-elastic": ease.InOutElastic,
	"in-out-bounce":  ease.InOutBounce,
}

// ByName looks up a curve by its registry name, e.g. "out-cubic".
func ByName(name string) (Func, bool) {
	f, ok := named[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// Names lists the registered curve names in sorted order.
func Names() []string {
	names := make([]string, 0, len(named))
	for n := range named {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Parse resolves a curve description. Plain names go through ByName; a few
// parameterized forms are accepted after a colon:
//
//	in-back:1.5  out-back:1.5  in-out-back:1.5
//	poly:4  elastic:2  bezier:0.25,0.1,0.25,1
func Parse(spec string) (Func, error) {
	name, arg, hasArg := strings.Cut(strings.ToLower(strings.TrimSpace(spec)), ":")
	if !hasArg {
		if f, ok := named[name]; ok {
			return f, nil
		}
		return nil, motion.Configf("easing.Parse", "name", "unknown curve %q", spec)
	}

	nums, err := parseFloats(arg)
	if err != nil {
		return nil, motion.Configf("easing.Parse", name, "%v", err)
	}

	switch name {
	case "in-back", "out-back", "in-out-back", "poly", "elastic":
		if len(nums) != 1 {
			return nil, motion.Configf("easing.Parse", name, "expects 1 argument, got %d", len(nums))
		}
	case "bezier":
		if len(nums) != 4 {
			return nil, motion.Configf("easing.Parse", name, "expects 4 arguments, got %d", len(nums))
		}
		return Bezier(nums[0], nums[1], nums[2], nums[3])
	default:
		return nil, motion.Configf("easing.Parse", "name", "curve %q takes no arguments", name)
	}

	p := nums[0]
	switch name {
	case "in-back":
		return Back(p), nil
	case "out-back":
		return Out(Back(p)), nil
	case "in-out-back":
		return InOut(Back(p)), nil
	case "poly":
		if p <= 0 {
			return nil, motion.Configf("easing.Parse", name, "exponent must be positive, got %g", p)
		}
		return Poly(p), nil
	default:
		return Elastic(p), nil
	}
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", p)
		}
		if !motion.IsFinite(v) {
			return nil, fmt.Errorf("non-finite number %q", p)
		}
		out = append(out, v)
	}
	return out, nil
}
