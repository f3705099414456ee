package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/framekit/internal/analysis"
	"github.com/san-kum/framekit/internal/spring"
)

// SpringTarget describes the motion a designer wants from a spring.
type SpringTarget struct {
	FPS int
	// SettleFrame is the desired frame at which the spring comes to rest.
	SettleFrame int
	// Overshoot is the desired peak excursion past the target, as a
	// fraction of the travel.
	Overshoot float64
	Mass      float64
}

// SpringFit is the best spring found by TuneSpring.
type SpringFit struct {
	Config      spring.Config
	SettleFrame int
	Overshoot   float64
	Cost        float64
}

const (
	tuneSteps      = 40
	overshootScale = 100
)

// TuneSpring grid-searches stiffness and damping for the spring whose
// measured settle frame and overshoot are closest to target. Settle error
// is counted in frames and overshoot error in percentage points.
func TuneSpring(ctx context.Context, target SpringTarget) (*SpringFit, error) {
	if target.FPS <= 0 || target.SettleFrame <= 0 {
		return nil, fmt.Errorf("tune: fps and settle frame must be positive")
	}
	if target.Overshoot < 0 || target.Overshoot >= 1 {
		return nil, fmt.Errorf("tune: overshoot must be in [0, 1), got %g", target.Overshoot)
	}
	mass := target.Mass
	if mass <= 0 {
		mass = spring.DefaultMass
	}
	horizon := target.SettleFrame * 4

	measure := func(p map[string]float64) (spring.Config, int, float64, error) {
		cfg := spring.Config{Mass: mass, Stiffness: p["stiffness"], Damping: p["damping"]}
		s, err := spring.New(target.FPS, cfg)
		if err != nil {
			return cfg, 0, 0, err
		}
		samples := s.Sample(0, horizon)
		settle := analysis.SettleFrame(samples, 1, spring.SettleThreshold)
		if settle < 0 {
			settle = horizon
		}
		return cfg, settle, analysis.Overshoot(samples, 0, 1), nil
	}
	cost := func(settle int, overshoot float64) float64 {
		return math.Abs(float64(settle-target.SettleFrame)) +
			overshootScale*math.Abs(overshoot-target.Overshoot)
	}

	g := NewGridSearch(
		[]string{"stiffness", "damping"},
		[][]float64{logspace(10, 1000, tuneSteps), logspace(1, 200, tuneSteps)},
	)
	best, score, err := g.Search(ctx, func(p map[string]float64) (float64, error) {
		_, settle, overshoot, err := measure(p)
		if err != nil {
			return 0, err
		}
		return cost(settle, overshoot), nil
	})
	if err != nil {
		return nil, err
	}

	cfg, settle, overshoot, err := measure(best)
	if err != nil {
		return nil, err
	}
	return &SpringFit{Config: cfg, SettleFrame: settle, Overshoot: overshoot, Cost: score}, nil
}

// logspace returns n values spaced evenly in log scale over [lo, hi].
func logspace(lo, hi float64, n int) []float64 {
	exps := Linspace(math.Log(lo), math.Log(hi), n)
	for i, e := range exps {
		exps[i] = math.Exp(e)
	}
	return exps
}
