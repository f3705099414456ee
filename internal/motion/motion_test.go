package motion

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigErrorUnwrap(t *testing.T) {
	err := Configf("spring", "mass", "must be positive, got %g", -1.0)
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatal("expected *ConfigError")
	}
	if ce.Field != "mass" {
		t.Errorf("expected field mass, got %s", ce.Field)
	}
	if !strings.Contains(err.Error(), "must be positive") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestRangeError(t *testing.T) {
	err := &RangeError{ID: "Intro", Frame: 210, Duration: 210}
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatal("expected ErrOutOfRange")
	}
	want := `motion: frame out of range: "Intro" frame 210 not in [0, 210)`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIDError(t *testing.T) {
	err := &IDError{ID: "x", Wrapped: ErrNotFound}
	if !errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateID) {
		t.Errorf("unexpected unwrap chain for %v", err)
	}
}

func TestContextAt(t *testing.T) {
	c := Context{Frame: 10, FPS: 30, Width: 1920, Height: 1080}
	d := c.At(45)
	if c.Frame != 10 {
		t.Error("At must not modify the receiver")
	}
	if d.Frame != 45 || d.FPS != 30 {
		t.Errorf("unexpected context %+v", d)
	}
	if d.Seconds() != 1.5 {
		t.Errorf("expected 1.5s, got %f", d.Seconds())
	}
}

func TestRandomDeterministic(t *testing.T) {
	for _, seed := range []string{"", "a", "particle-3", "countdown"} {
		a, b := Random(seed), Random(seed)
		if a != b {
			t.Errorf("Random(%q) not deterministic: %v != %v", seed, a, b)
		}
		if a < 0 || a >= 1 {
			t.Errorf("Random(%q) = %v out of [0,1)", seed, a)
		}
	}
	if Random("a") == Random("b") {
		t.Error("distinct seeds should give distinct values")
	}
}

func TestRandomNSpread(t *testing.T) {
	var sum float64
	const n = 1000
	for i := int64(0); i < n; i++ {
		v := RandomN(i)
		if v < 0 || v >= 1 {
			t.Fatalf("RandomN(%d) = %v out of range", i, v)
		}
		sum += v
	}
	mean := sum / n
	if mean < 0.4 || mean > 0.6 {
		t.Errorf("mean %f too far from 0.5", mean)
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(0, 1, -3.5) {
		t.Error("expected finite")
	}
	var zero float64
	if IsFinite(1, zero/zero) {
		t.Error("NaN should not be finite")
	}
}
