package spring

import (
	"math"

	"github.com/san-kum/framekit/internal/motion"
)

// Option adjusts a Spring at construction.
type Option func(*Spring)

// Range sets the start and target values; the default is 0 → 1.
func Range(from, to float64) Option {
	return func(s *Spring) {
		s.from, s.to = from, to
	}
}

// Duration stretches or compresses time so the spring settles exactly at
// the given frame. Zero keeps the natural timing.
func Duration(frames int) Option {
	return func(s *Spring) {
		s.duration = frames
	}
}

// Delay holds the spring at From for the given number of frames.
func Delay(frames int) Option {
	return func(s *Spring) {
		s.delay = frames
	}
}

// Spring is a validated, immutable sampler for one spring animation.
type Spring struct {
	cfg      Config
	fps      int
	from, to float64
	duration int
	delay    int

	omega float64
	zeta  float64
	warp  float64
}

// New validates the configuration and precomputes the time warp.
func New(fps int, cfg Config, opts ...Option) (*Spring, error) {
	s := &Spring{cfg: cfg, fps: fps, from: 0, to: 1}
	for _, o := range opts {
		o(s)
	}

	if fps <= 0 {
		return nil, motion.Configf("spring", "fps", "must be positive, got %d", fps)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !motion.IsFinite(s.from, s.to) {
		return nil, motion.Configf("spring", "range", "from and to must be finite")
	}
	if s.duration < 0 {
		return nil, motion.Configf("spring", "durationFrames", "must not be negative, got %d", s.duration)
	}
	if s.delay < 0 {
		return nil, motion.Configf("spring", "delay", "must not be negative, got %d", s.delay)
	}

	s.omega = cfg.AngularFrequency()
	s.zeta = cfg.DampingRatio()
	s.warp = 1

	if s.duration > 0 {
		natural, err := settleSeconds(s.omega, s.zeta)
		if err != nil {
			return nil, err
		}
		s.warp = natural / (float64(s.duration) / float64(fps))
	}
	return s, nil
}

// Value is the one-shot form of New(fps, cfg, opts...).At(frame).
func Value(frame, fps int, cfg Config, opts ...Option) (float64, error) {
	s, err := New(fps, cfg, opts...)
	if err != nil {
		return 0, err
	}
	return s.At(frame), nil
}

// At returns the spring position at an integer frame.
func (s *Spring) At(frame int) float64 {
	return s.AtFrac(float64(frame))
}

// AtFrac returns the spring position at a fractional frame. Frames at or
// before the start (after Delay) return From exactly.
func (s *Spring) AtFrac(frame float64) float64 {
	f := frame - float64(s.delay)
	if f <= 0 {
		return s.from
	}
	t := f / float64(s.fps) * s.warp
	v := s.to + (s.from-s.to)*displacement(s.omega, s.zeta, t)

	if s.cfg.OvershootClamping {
		if s.to >= s.from {
			v = math.Min(v, s.to)
		} else {
			v = math.Max(v, s.to)
		}
	}
	return v
}

// Sample evaluates the spring at every frame in [from, to).
func (s *Spring) Sample(from, to int) []float64 {
	if to <= from {
		return nil
	}
	out := make([]float64, 0, to-from)
	for f := from; f < to; f++ {
		out = append(out, s.At(f))
	}
	return out
}

// DampingRatio returns ζ for the configured parameters.
func (s *Spring) DampingRatio() float64 { return s.zeta }

// AngularFrequency returns ω for the configured parameters.
func (s *Spring) AngularFrequency() float64 { return s.omega }

// DampedFrequency returns the observed oscillation frequency in Hz, after
// any Duration warp, or 0 when the spring does not oscillate.
func (s *Spring) DampedFrequency() float64 {
	if s.zeta >= 1 || math.Abs(s.zeta-1) < criticalBand {
		return 0
	}
	return s.warp * s.omega * math.Sqrt(1-s.zeta*s.zeta) / (2 * math.Pi)
}

// Config returns the physical parameters.
func (s *Spring) Config() Config { return s.cfg }
