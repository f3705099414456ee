package easing

import (
	"math"

	"github.com/san-kum/framekit/internal/motion"
)

const (
	newtonIterations   = 8
	newtonMinSlope     = 1e-3
	subdivisionEpsilon = 1e-7
	subdivisionMaxIter = 40
)

// Bezier returns a cubic Bézier timing curve through (0,0), (x1,y1),
// (x2,y2), (1,1), as used by CSS transitions. x1 and x2 must lie in [0, 1]
// so that the curve is a function of t.
func Bezier(x1, y1, x2, y2 float64) (Func, error) {
	if !motion.IsFinite(x1, y1, x2, y2) {
		return nil, motion.Configf("easing.Bezier", "", "control points must be finite")
	}
	if x1 < 0 || x1 > 1 || x2 < 0 || x2 > 1 {
		return nil, motion.Configf("easing.Bezier", "x", "control points must lie in [0, 1], got %g, %g", x1, x2)
	}
	if x1 == y1 && x2 == y2 {
		return Linear, nil
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return bezierAt(solveBezierX(t, x1, x2), y1, y2)
	}, nil
}

// bezierAt evaluates one coordinate of the curve at parameter u.
func bezierAt(u, p1, p2 float64) float64 {
	a := 1 - 3*p2 + 3*p1
	b := 3*p2 - 6*p1
	c := 3 * p1
	return ((a*u+b)*u + c) * u
}

func bezierSlope(u, p1, p2 float64) float64 {
	a := 1 - 3*p2 + 3*p1
	b := 3*p2 - 6*p1
	c := 3 * p1
	return 3*a*u*u + 2*b*u + c
}

// solveBezierX finds u with x(u) = x. Newton first; bisection when the
// slope is too flat. Both loops are bounded so evaluation is deterministic.
func solveBezierX(x, x1, x2 float64) float64 {
	u := x
	for i := 0; i < newtonIterations; i++ {
		slope := bezierSlope(u, x1, x2)
		if math.Abs(slope) < newtonMinSlope {
			break
		}
		d := bezierAt(u, x1, x2) - x
		if math.Abs(d) < subdivisionEpsilon {
			return u
		}
		u -= d / slope
	}

	lo, hi := 0.0, 1.0
	u = x
	for i := 0; i < subdivisionMaxIter; i++ {
		d := bezierAt(u, x1, x2) - x
		if math.Abs(d) < subdivisionEpsilon {
			break
		}
		if d > 0 {
			hi = u
		} else {
			lo = u
		}
		u = (lo + hi) / 2
	}
	return u
}
