package timeline

import (
	"errors"
	"testing"

	"github.com/san-kum/framekit/internal/motion"
)

func TestSeriesLaysOutEndToEnd(t *testing.T) {
	s, err := Series("steps",
		Seq("a", 0, 30, nil),
		Seq("b", 10, 20, nil),
		Seq("c", -5, Unbounded, nil),
	)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 40, 55}
	for i, c := range s.Children {
		if c.From != want[i] {
			t.Errorf("child %d From = %d, want %d", i, c.From, want[i])
		}
	}
	if Length(s) != Unbounded {
		t.Errorf("Length = %d, want unbounded", Length(s))
	}

	n, err := Build(s)
	if err != nil {
		t.Fatal(err)
	}
	got := n.Visible(40)
	if len(got) != 2 || got[1] != "steps/b" {
		t.Errorf("Visible(40) = %v", got)
	}
}

func TestSeriesLength(t *testing.T) {
	s, err := Series("s", Seq("a", 0, 30, nil), Seq("b", 0, 45, nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := Length(s); got != 75 {
		t.Errorf("Length = %d, want 75", got)
	}
}

func TestSeriesErrors(t *testing.T) {
	cases := map[string][]Spec{
		"unbounded middle": {Seq("a", 0, Unbounded, nil), Seq("b", 0, 10, nil)},
		"before start":     {Seq("a", -1, 10, nil)},
		"negative":         {Seq("a", 0, -10, nil)},
	}
	for name, items := range cases {
		if _, err := Series("s", items...); !errors.Is(err, motion.ErrConfiguration) {
			t.Errorf("%s: err = %v", name, err)
		}
	}
}

func TestEnd(t *testing.T) {
	n, _ := Build(Seq("x", 12, 8, nil))
	if n.End() != 20 {
		t.Errorf("End = %d", n.End())
	}
}
