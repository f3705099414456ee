package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/framekit/internal/spring"
)

func TestDominantFrequencySine(t *testing.T) {
	const fps, hz = 60, 2.5
	samples := make([]float64, 300)
	for i := range samples {
		samples[i] = 3 + math.Sin(2*math.Pi*hz*float64(i)/fps)
	}
	got, err := DominantFrequency(samples, fps)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got-hz) > 0.02 {
		t.Errorf("DominantFrequency = %v, want %v", got, hz)
	}
}

func TestDominantFrequencyErrors(t *testing.T) {
	if _, err := DominantFrequency([]float64{1, 2, 3, 4}, 0); err == nil {
		t.Error("expected error for zero fps")
	}
	if _, err := DominantFrequency([]float64{1, 2}, 30); err == nil {
		t.Error("expected error for short input")
	}
	if hz, err := DominantFrequency([]float64{5, 5, 5, 5, 5}, 30); err != nil || hz != 0 {
		t.Errorf("constant input: %v, %v", hz, err)
	}
}

func TestAnalyzeSpringMatchesAnalytic(t *testing.T) {
	for _, damping := range []float64{1, 2, 4} {
		rep, err := AnalyzeSpring(60, spring.Params(damping, 100), 900)
		if err != nil {
			t.Fatal(err)
		}
		if rep.Regime != "underdamped" {
			t.Errorf("regime = %s", rep.Regime)
		}
		if math.Abs(rep.MeasuredHz-rep.AnalyticHz) > 0.05 {
			t.Errorf("damping %v: measured %v Hz, analytic %v Hz", damping, rep.MeasuredHz, rep.AnalyticHz)
		}
		if rep.Overshoot <= 0 {
			t.Errorf("damping %v: no overshoot", damping)
		}
	}
}

func TestAnalyzeSpringSettle(t *testing.T) {
	rep, err := AnalyzeSpring(30, spring.Params(20, 100), 300)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Regime != "critical" || rep.MeasuredHz != 0 || rep.Overshoot != 0 {
		t.Errorf("report = %+v", rep)
	}
	if rep.MeasuredSettle < 0 || rep.MeasuredSettle > rep.AnalyticSettle {
		t.Errorf("measured settle %d, analytic bound %d", rep.MeasuredSettle, rep.AnalyticSettle)
	}

	if _, err := AnalyzeSpring(30, spring.Config{}, 10); err == nil {
		t.Error("expected error for zero config")
	}
}

func TestSettleFrame(t *testing.T) {
	s := []float64{0, 0.5, 1.2, 0.9, 1.001, 0.999, 1}
	if got := SettleFrame(s, 1, 0.01); got != 4 {
		t.Errorf("SettleFrame = %d, want 4", got)
	}
	if got := SettleFrame([]float64{0, 0.5}, 1, 0.01); got != -1 {
		t.Errorf("unsettled = %d", got)
	}
	if got := SettleFrame(nil, 1, 0.01); got != -1 {
		t.Errorf("empty = %d", got)
	}
}

func TestOvershoot(t *testing.T) {
	if got := Overshoot([]float64{0, 1.2, 1}, 0, 1); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("Overshoot = %v", got)
	}
	if got := Overshoot([]float64{10, 4, 5}, 10, 5); math.Abs(got-0.2) > 1e-12 {
		t.Errorf("downward Overshoot = %v", got)
	}
	if got := Overshoot([]float64{0, 0.5}, 0, 1); got != 0 {
		t.Errorf("no overshoot = %v", got)
	}
}

func TestPortrait(t *testing.T) {
	p := NewPortrait([]float64{0, 1, 4, 9})
	want := []Point{{0, 1}, {1, 2}, {4, 4}, {9, 5}}
	for i, pt := range p.Points {
		if pt != want[i] {
			t.Errorf("point %d = %v, want %v", i, pt, want[i])
		}
	}

	s, _ := spring.New(30, spring.Params(4, 100))
	art := NewPortrait(s.Sample(0, 120)).ASCII(40, 12)
	lines := strings.Split(strings.TrimRight(art, "\n"), "\n")
	if len(lines) != 12 || !strings.Contains(art, "•") {
		t.Errorf("ASCII portrait:\n%s", art)
	}
	if (&Portrait{}).ASCII(10, 10) != "" {
		t.Error("empty portrait should render nothing")
	}
}
