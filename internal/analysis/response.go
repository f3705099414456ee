package analysis

import (
	"math"

	"github.com/san-kum/framekit/internal/spring"
)

// SettleFrame returns the first index from which every sample stays
// within tol·|target-samples[0]| of target, or -1 if the curve never
// settles inside the slice.
func SettleFrame(samples []float64, target, tol float64) int {
	if len(samples) == 0 {
		return -1
	}
	band := tol * math.Abs(target-samples[0])
	settled := -1
	for i := len(samples) - 1; i >= 0; i-- {
		if math.Abs(samples[i]-target) > band {
			break
		}
		settled = i
	}
	return settled
}

// Overshoot returns the largest excursion past to, as a fraction of
// |to-from|. Curves that never pass to return 0.
func Overshoot(samples []float64, from, to float64) float64 {
	span := to - from
	if span == 0 {
		return 0
	}
	worst := 0.0
	for _, v := range samples {
		if past := (v - to) / span; past > worst {
			worst = past
		}
	}
	return worst
}

// SpringReport compares a sampled spring against its analytic values.
type SpringReport struct {
	Config         spring.Config
	FPS            int
	Frames         int
	Regime         string
	Zeta           float64
	Omega          float64
	AnalyticHz     float64
	MeasuredHz     float64
	AnalyticSettle int
	MeasuredSettle int
	Overshoot      float64
	Samples        []float64
}

// AnalyzeSpring samples a 0 → 1 spring for frames frames and measures
// it. MeasuredHz is only computed for oscillating springs.
func AnalyzeSpring(fps int, cfg spring.Config, frames int) (*SpringReport, error) {
	s, err := spring.New(fps, cfg)
	if err != nil {
		return nil, err
	}
	samples := s.Sample(0, frames)
	rep := &SpringReport{
		Config:         cfg,
		FPS:            fps,
		Frames:         frames,
		Regime:         spring.Regime(s.DampingRatio()),
		Zeta:           s.DampingRatio(),
		Omega:          s.AngularFrequency(),
		AnalyticHz:     s.DampedFrequency(),
		MeasuredSettle: SettleFrame(samples, 1, spring.SettleThreshold),
		Overshoot:      Overshoot(samples, 0, 1),
		Samples:        samples,
	}
	rep.AnalyticSettle = -1
	if n, err := spring.Measure(fps, cfg); err == nil {
		rep.AnalyticSettle = n
	}
	if rep.AnalyticHz > 0 {
		hz, err := DominantFrequency(samples, fps)
		if err != nil {
			return nil, err
		}
		rep.MeasuredHz = hz
	}
	return rep, nil
}
