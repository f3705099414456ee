package easing

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/framekit/internal/motion"
)

const tol = 1e-12

func TestEndpoints(t *testing.T) {
	curves := map[string]Func{
		"linear":        Linear,
		"quad":          Quad,
		"cubic":         Cubic,
		"in-cubic":      InCubic,
		"out-cubic":     OutCubic,
		"sin":           Sin,
		"circle":        Circle,
		"exp":           Exp,
		"bounce":        Bounce,
		"poly5":         Poly(5),
		"back":          Back(1.5),
		"out-back":      Out(Back(1.5)),
		"in-out-cubic":  InOut(Cubic),
		"elastic":       Elastic(1),
		"out-elastic":   Out(Elastic(2)),
		"in-out-circle": InOut(Circle),
	}

	for name, f := range curves {
		t.Run(name, func(t *testing.T) {
			if got := f(0); math.Abs(got) > 1e-9 {
				t.Errorf("f(0) = %v, want 0", got)
			}
			if got := f(1); math.Abs(got-1) > 1e-9 {
				t.Errorf("f(1) = %v, want 1", got)
			}
		})
	}
}

func TestOutCubicFormula(t *testing.T) {
	for _, x := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1} {
		want := 1 - math.Pow(1-x, 3)
		if got := OutCubic(x); math.Abs(got-want) > tol {
			t.Errorf("OutCubic(%v) = %v, want %v", x, got, want)
		}
		if got := Out(Cubic)(x); math.Abs(got-want) > tol {
			t.Errorf("Out(Cubic)(%v) = %v, want %v", x, got, want)
		}
		if got := InCubic(x); math.Abs(got-x*x*x) > tol {
			t.Errorf("InCubic(%v) = %v", x, got)
		}
	}
}

func TestBackOvershoot(t *testing.T) {
	f := Out(Back(1.5))
	peak := 0.0
	for i := 0; i <= 100; i++ {
		if v := f(float64(i) / 100); v > peak {
			peak = v
		}
	}
	if peak <= 1 {
		t.Errorf("out-back should overshoot past 1, peak %v", peak)
	}

	small, large := Out(Back(0.5)), Out(Back(3))
	if small(0.7) >= large(0.7) {
		t.Errorf("larger overshoot parameter should overshoot more: %v vs %v", small(0.7), large(0.7))
	}

	if Back(1.5)(0.2) >= 0 {
		t.Error("in-back should dip below zero early")
	}
}

func TestInOutSymmetry(t *testing.T) {
	f := InOut(Cubic)
	for _, x := range []float64{0.1, 0.2, 0.3, 0.4} {
		if math.Abs(f(x)+f(1-x)-1) > tol {
			t.Errorf("InOut not point-symmetric at %v", x)
		}
	}
	if math.Abs(f(0.5)-0.5) > tol {
		t.Errorf("InOut(0.5) = %v", f(0.5))
	}
}

func TestCompose(t *testing.T) {
	f := Compose(Quad, Linear)
	if f(0.5) != 0.25 {
		t.Errorf("Compose(Quad, Linear)(0.5) = %v", f(0.5))
	}
	g := Compose(Out(Cubic), Quad)
	if math.Abs(g(0.5)-OutCubic(0.25)) > tol {
		t.Errorf("composition mismatch")
	}
}

func TestBezier(t *testing.T) {
	f, err := Bezier(0.25, 0.1, 0.25, 1)
	if err != nil {
		t.Fatal(err)
	}
	if f(0) != 0 || f(1) != 1 {
		t.Error("bezier endpoints must be exact")
	}
	prev := 0.0
	for i := 1; i <= 50; i++ {
		v := f(float64(i) / 50)
		if v < prev-1e-9 {
			t.Fatalf("ease bezier should be monotonic, dropped at %d", i)
		}
		prev = v
	}

	lin, err := Bezier(0.3, 0.3, 0.7, 0.7)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(lin(0.42)-0.42) > 1e-9 {
		t.Errorf("diagonal bezier should be linear, got %v", lin(0.42))
	}

	if _, err := Bezier(-0.1, 0, 1, 1); !errors.Is(err, motion.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration, got %v", err)
	}
}

func TestByName(t *testing.T) {
	f, ok := ByName("Out-Cubic")
	if !ok {
		t.Fatal("out-cubic should be registered")
	}
	if f(0.5) != OutCubic(0.5) {
		t.Error("registry returned a different curve")
	}

	for _, n := range Names() {
		g, _ := ByName(n)
		// Penner exponential/elastic curves only reach their endpoints to ~2^-10.
		if math.Abs(g(1)-1) > 1e-2 || math.Abs(g(0)) > 1e-2 {
			t.Errorf("%s: endpoints (%v, %v)", n, g(0), g(1))
		}
	}

	if _, ok := ByName("nope"); ok {
		t.Error("unknown name should not resolve")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec    string
		at      float64
		want    float64
		wantErr bool
	}{
		{spec: "linear", at: 0.3, want: 0.3},
		{spec: "out-back:1.5", at: 0.5, want: Out(Back(1.5))(0.5)},
		{spec: "poly:4", at: 0.5, want: 0.0625},
		{spec: "elastic:1", at: 0.5, want: Elastic(1)(0.5)},
		{spec: "bezier:0,0,1,1", at: 0.5, want: 0.5},
		{spec: "poly:-1", wantErr: true},
		{spec: "poly:a", wantErr: true},
		{spec: "bezier:1,2", wantErr: true},
		{spec: "linear:2", wantErr: true},
		{spec: "wobble", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			f, err := Parse(tt.spec)
			if tt.wantErr {
				if !errors.Is(err, motion.ErrConfiguration) {
					t.Fatalf("expected ErrConfiguration, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := f(tt.at); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Parse(%q)(%v) = %v, want %v", tt.spec, tt.at, got, tt.want)
			}
		})
	}
}
