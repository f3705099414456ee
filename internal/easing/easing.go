// Package easing provides named progress-remapping curves.
//
// Every curve is a pure function from normalized progress t ∈ [0, 1] to an
// eased progress value. Curves are expected to satisfy f(0) = 0 and
// f(1) = 1 but need not be monotonic or bounded: Back and Elastic overshoot.
//
// Base curves describe an "in" motion (slow start). The combinators [In],
// [Out] and [InOut] derive the other directions from any base curve:
//
//	easing.Out(easing.Cubic)      // 1 - (1-t)^3
//	easing.Out(easing.Back(1.5))  // overshoots past 1, then settles
package easing

import "math"

// Func maps normalized progress to eased progress.
type Func func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 { return t }

// Quad is t².
func Quad(t float64) float64 { return t * t }

// Cubic is t³.
func Cubic(t float64) float64 { return t * t * t }

// Sin is a quarter cosine ramp.
func Sin(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) }

// Circle is a quarter circle.
func Circle(t float64) float64 { return 1 - math.Sqrt(1-t*t) }

// Exp is an exponential ramp; Exp(0) is exactly 0.
func Exp(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*(t-1))
}

// Bounce bounces off the end like a dropped ball.
func Bounce(t float64) float64 {
	switch {
	case t < 1/2.75:
		return 7.5625 * t * t
	case t < 2/2.75:
		t2 := t - 1.5/2.75
		return 7.5625*t2*t2 + 0.75
	case t < 2.5/2.75:
		t2 := t - 2.25/2.75
		return 7.5625*t2*t2 + 0.9375
	default:
		t2 := t - 2.625/2.75
		return 7.5625*t2*t2 + 0.984375
	}
}

// InCubic is the cubic ease-in, t³.
func InCubic(t float64) float64 { return Cubic(t) }

// OutCubic is the cubic ease-out, 1-(1-t)³.
func OutCubic(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// Poly returns t^n.
func Poly(n float64) Func {
	return func(t float64) float64 { return math.Pow(t, n) }
}

// Back returns an anticipating curve that dips below 0 before rising.
// Wrapped in Out it overshoots past 1 instead. Larger s means a larger
// overshoot; 1.70158 gives the classic 10% overshoot.
func Back(s float64) Func {
	return func(t float64) float64 {
		return t * t * ((s+1)*t - s)
	}
}

// Elastic returns a spring-like curve; bounciness 1 oscillates once.
func Elastic(bounciness float64) Func {
	p := bounciness * math.Pi
	return func(t float64) float64 {
		c := math.Cos(t * math.Pi / 2)
		return 1 - c*c*c*math.Cos(t*p)
	}
}

// In runs f forwards.
func In(f Func) Func { return f }

// Out runs f backwards: 1 - f(1-t).
func Out(f Func) Func {
	return func(t float64) float64 { return 1 - f(1-t) }
}

// InOut runs f forwards for the first half and backwards for the second.
func InOut(f Func) Func {
	return func(t float64) float64 {
		if t < 0.5 {
			return f(t*2) / 2
		}
		return 1 - f((1-t)*2)/2
	}
}

// Compose returns outer(inner(t)).
func Compose(outer, inner Func) Func {
	return func(t float64) float64 { return outer(inner(t)) }
}
