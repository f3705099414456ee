package display

import "testing"

func TestWithCopies(t *testing.T) {
	a := Rect("bar", 10, 20, 30, 40)
	b := a.With("opacity", 0.5).Fill("#ff0000")

	if v, _ := a.Prop("opacity"); v != 1 {
		t.Errorf("original opacity changed to %v", v)
	}
	if v, _ := b.Prop("opacity"); v != 0.5 {
		t.Errorf("copy opacity = %v", v)
	}
	if a.Color != "" || b.Color != "#ff0000" {
		t.Errorf("colors = %q, %q", a.Color, b.Color)
	}
}

func TestKeysSorted(t *testing.T) {
	got := Text("t", "hi", 1, 2, 3).Keys()
	want := []string{"opacity", "size", "x", "y"}
	if len(got) != len(want) {
		t.Fatalf("keys = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
}

func TestFrameLookup(t *testing.T) {
	f := Frame{Elements: []Element{Circle("dot", 5, 6, 7), Line("l", 0, 0, 1, 1)}}
	if v, ok := f.Value("dot", "radius"); !ok || v != 7 {
		t.Errorf("Value(dot, radius) = %v, %v", v, ok)
	}
	if _, ok := f.Value("dot", "missing"); ok {
		t.Error("missing prop reported present")
	}
	if _, ok := f.Find("nope"); ok {
		t.Error("missing element reported present")
	}
}

func TestHidden(t *testing.T) {
	tests := []struct {
		name string
		e    Element
		want bool
	}{
		{"default", Rect("r", 0, 0, 1, 1), false},
		{"transparent", Rect("r", 0, 0, 1, 1).With("opacity", 0), true},
		{"flagged", Text("t", "x", 0, 0, 1).With("visible", 0), true},
		{"flag set", Text("t", "x", 0, 0, 1).With("visible", 1), false},
		{"no props", Element{ID: "bare"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.Hidden(); got != tt.want {
				t.Errorf("Hidden() = %v, want %v", got, tt.want)
			}
		})
	}
}
