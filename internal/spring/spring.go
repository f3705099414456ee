// Package spring samples a damped harmonic oscillator at arbitrary frames.
//
// The oscillator is released from rest at From and pulled toward To. Its
// position is computed from the closed-form solution keyed only by elapsed
// time, so frame 10,000 costs the same as frame 1 and needs none of the
// frames before it. There is no integration and no carried state.
//
// Three regimes are distinguished by the damping ratio ζ:
//
//	ζ < 1   underdamped: decaying oscillation around To
//	ζ = 1   critically damped: fastest approach without overshoot
//	ζ > 1   overdamped: slow monotone approach
//
// Ratios within criticalBand of 1 use the critical form; the other two
// forms divide by a quantity that vanishes as ζ approaches 1.
package spring

import (
	"math"

	"github.com/san-kum/framekit/internal/motion"
)

const (
	DefaultMass      = 1.0
	DefaultStiffness = 100.0
	DefaultDamping   = 10.0

	// SettleThreshold is the distance from To, as a fraction of |To-From|,
	// at which a spring counts as settled.
	SettleThreshold = 0.005

	criticalBand = 1e-6
)

// Config holds the physical parameters of the spring.
type Config struct {
	Mass              float64 `yaml:"mass" json:"mass"`
	Stiffness         float64 `yaml:"stiffness" json:"stiffness"`
	Damping           float64 `yaml:"damping" json:"damping"`
	OvershootClamping bool    `yaml:"overshoot_clamping,omitempty" json:"overshoot_clamping,omitempty"`
}

// DefaultConfig returns mass 1, stiffness 100, damping 10.
func DefaultConfig() Config {
	return Config{Mass: DefaultMass, Stiffness: DefaultStiffness, Damping: DefaultDamping}
}

// Params returns a unit-mass config.
func Params(damping, stiffness float64) Config {
	return Config{Mass: DefaultMass, Stiffness: stiffness, Damping: damping}
}

// Validate checks mass > 0, stiffness > 0 and damping >= 0.
func (c Config) Validate() error {
	if !motion.IsFinite(c.Mass, c.Stiffness, c.Damping) {
		return motion.Configf("spring", "config", "parameters must be finite")
	}
	if c.Mass <= 0 {
		return motion.Configf("spring", "mass", "must be positive, got %g", c.Mass)
	}
	if c.Stiffness <= 0 {
		return motion.Configf("spring", "stiffness", "must be positive, got %g", c.Stiffness)
	}
	if c.Damping < 0 {
		return motion.Configf("spring", "damping", "must not be negative, got %g", c.Damping)
	}
	return nil
}

// AngularFrequency returns ω = sqrt(stiffness/mass) in rad/s.
func (c Config) AngularFrequency() float64 {
	return math.Sqrt(c.Stiffness / c.Mass)
}

// DampingRatio returns ζ = damping / (2·sqrt(stiffness·mass)).
func (c Config) DampingRatio() float64 {
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// Regime names the response class of a damping ratio.
func Regime(zeta float64) string {
	switch {
	case math.Abs(zeta-1) < criticalBand:
		return "critical"
	case zeta < 1:
		return "underdamped"
	default:
		return "overdamped"
	}
}

// displacement returns the normalized distance from the target at t
// seconds: 1 at t=0, tending to 0, with zero initial velocity.
func displacement(omega, zeta, t float64) float64 {
	switch {
	case math.Abs(zeta-1) < criticalBand:
		return (1 + omega*t) * math.Exp(-omega*t)
	case zeta < 1:
		wd := omega * math.Sqrt(1-zeta*zeta)
		sin, cos := math.Sincos(wd * t)
		return math.Exp(-zeta*omega*t) * (cos + zeta*omega/wd*sin)
	default:
		s := math.Sqrt(zeta*zeta - 1)
		// r1 = -ω(ζ-s) written without the cancellation for large ζ.
		r1 := -omega / (zeta + s)
		r2 := -omega * (zeta + s)
		return (r2*math.Exp(r1*t) - r1*math.Exp(r2*t)) / (r2 - r1)
	}
}

// settleSeconds returns the elapsed time after which the normalized
// displacement stays within SettleThreshold.
func settleSeconds(omega, zeta float64) (float64, error) {
	if zeta == 0 {
		return 0, motion.Configf("spring", "damping", "an undamped spring never settles")
	}

	if zeta < 1 && math.Abs(zeta-1) >= criticalBand {
		// Bound the oscillation by its exponential envelope.
		amp := 1 / math.Sqrt(1-zeta*zeta)
		return math.Log(amp/SettleThreshold) / (zeta * omega), nil
	}

	// Critically and overdamped responses decrease monotonically.
	hi := 1 / omega
	for i := 0; i < 256 && displacement(omega, zeta, hi) >= SettleThreshold; i++ {
		hi *= 2
	}
	lo := 0.0
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2
		if displacement(omega, zeta, mid) >= SettleThreshold {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi, nil
}

// Measure returns the number of frames the spring needs to settle at fps.
func Measure(fps int, cfg Config) (int, error) {
	if fps <= 0 {
		return 0, motion.Configf("spring.Measure", "fps", "must be positive, got %d", fps)
	}
	if err := cfg.Validate(); err != nil {
		return 0, err
	}
	secs, err := settleSeconds(cfg.AngularFrequency(), cfg.DampingRatio())
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(secs * float64(fps))), nil
}
