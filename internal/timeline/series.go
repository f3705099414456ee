package timeline

import (
	"github.com/san-kum/framekit/internal/motion"
)

// Series lays items end to end inside a new unbounded parent. Each item's
// From is read as a gap after the previous item ends; a negative gap
// overlaps the two. Only the last item may be unbounded.
func Series(name string, items ...Spec) (Spec, error) {
	out := Spec{Name: name, Children: make([]Spec, 0, len(items))}
	cursor := 0
	for i, it := range items {
		start := cursor + it.From
		if start < 0 {
			return Spec{}, motion.Configf("timeline.Series", join(name, it.Name, i), "starts before the series at %d", start)
		}
		if it.Duration == Unbounded && i != len(items)-1 {
			return Spec{}, motion.Configf("timeline.Series", join(name, it.Name, i), "only the last item may be unbounded")
		}
		if it.Duration < 0 {
			return Spec{}, motion.Configf("timeline.Series", join(name, it.Name, i), "must be positive or unbounded, got %d", it.Duration)
		}
		it.From = start
		out.Children = append(out.Children, it)
		cursor = start + it.Duration
	}
	return out, nil
}

// Length returns the frame at which the last bounded child of spec ends,
// or Unbounded if any child is unbounded.
func Length(spec Spec) int {
	end := 0
	for _, c := range spec.Children {
		if c.Duration == Unbounded {
			return Unbounded
		}
		if e := c.From + c.Duration; e > end {
			end = e
		}
	}
	return end
}
