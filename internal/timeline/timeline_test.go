package timeline_test

import (
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/framekit/internal/display"
	"github.com/san-kum/framekit/internal/motion"
	"github.com/san-kum/framekit/internal/timeline"
)

func build(spec timeline.Spec) *timeline.Node {
	GinkgoHelper()
	n, err := timeline.Build(spec)
	Expect(err).NotTo(HaveOccurred())
	return n
}

// marker draws one text element carrying the local frame it was given.
func marker(id string) timeline.DrawFunc {
	return func(ctx motion.Context) []display.Element {
		return []display.Element{display.Text(id, id, 0, 0, 1).With("local", float64(ctx.Frame))}
	}
}

var _ = Describe("Node", func() {
	Describe("Evaluate", func() {
		It("maps and clips a parent-less window", func() {
			a := build(timeline.Seq("a", 50, 30, nil))
			for g := 0; g < 120; g++ {
				local, visible := a.Evaluate(g)
				Expect(local).To(Equal(g - 50))
				Expect(visible).To(Equal(g >= 50 && g < 80), "frame %d", g)
			}
		})

		It("keeps unbounded nodes visible forever after start", func() {
			n := build(timeline.Seq("u", 10, timeline.Unbounded, nil))
			_, early := n.Evaluate(9)
			_, late := n.Evaluate(1 << 40)
			Expect(early).To(BeFalse())
			Expect(late).To(BeTrue())
			Expect(n.Bounded()).To(BeFalse())
		})
	})

	Describe("sequential siblings", func() {
		It("hands over exactly at the boundary", func() {
			const d1, d2 = 40, 25
			root := build(timeline.Seq("root", 0, timeline.Unbounded, nil,
				timeline.Seq("one", 0, d1, nil),
				timeline.Seq("two", d1, d2, nil),
			))
			kids := root.Children()

			_, oneVisible := kids[0].Evaluate(d1)
			local, twoVisible := kids[1].Evaluate(d1)
			Expect(oneVisible).To(BeFalse())
			Expect(twoVisible).To(BeTrue())
			Expect(local).To(Equal(0))
		})
	})

	Describe("nesting", func() {
		var root *timeline.Node

		BeforeEach(func() {
			root = build(timeline.Seq("root", 5, timeline.Unbounded, nil,
				timeline.Seq("outer", 20, 100, marker("outer"),
					timeline.Seq("inner", 30, 10, marker("inner")),
				),
			))
		})

		It("composes offsets additively", func() {
			els := root.Render(motion.Context{Frame: 60, FPS: 30})
			frame := display.Frame{Elements: els}

			outer, _ := frame.Value("outer", "local")
			inner, _ := frame.Value("inner", "local")
			Expect(outer).To(Equal(float64(60 - 5 - 20)))
			Expect(inner).To(Equal(float64(60 - 5 - 20 - 30)))
		})

		It("tags elements with their node path", func() {
			els := root.Render(motion.Context{Frame: 60})
			Expect(els).To(HaveLen(2))
			Expect(els[0].Path).To(Equal("root/outer"))
			Expect(els[1].Path).To(Equal("root/outer/inner"))
		})

		It("never evaluates hidden subtrees", func() {
			calls := 0
			spy := timeline.Seq("root", 0, timeline.Unbounded, nil,
				timeline.Seq("hidden", 100, 10, func(motion.Context) []display.Element {
					calls++
					return nil
				}, timeline.Seq("child", 0, 5, func(motion.Context) []display.Element {
					calls++
					return nil
				})),
			)
			n := build(spy)
			for g := 0; g < 100; g++ {
				n.Render(motion.Context{Frame: g})
			}
			Expect(calls).To(BeZero())
			Expect(n.Visible(50)).To(Equal([]string{"root"}))
		})

		It("clips a child to its own window inside the parent", func() {
			Expect(root.Visible(5 + 20 + 29)).To(Equal([]string{"root", "root/outer"}))
			Expect(root.Visible(5 + 20 + 30)).To(Equal([]string{"root", "root/outer", "root/outer/inner"}))
			Expect(root.Visible(5 + 20 + 40)).To(Equal([]string{"root", "root/outer"}))
			Expect(root.Visible(4)).To(BeEmpty())
		})
	})

	Describe("purity", func() {
		It("renders identical lists in any order and from many goroutines", func() {
			root := build(timeline.Seq("root", 0, timeline.Unbounded, nil,
				timeline.Seq("a", 0, 50, marker("a")),
				timeline.Seq("b", 25, 50, marker("b")),
			))
			want := make([][]display.Element, 80)
			for g := range want {
				want[g] = root.Render(motion.Context{Frame: g})
			}

			var wg sync.WaitGroup
			got := make([][]display.Element, 80)
			for g := 79; g >= 0; g-- {
				wg.Add(1)
				go func(g int) {
					defer wg.Done()
					got[g] = root.Render(motion.Context{Frame: g})
				}(g)
			}
			wg.Wait()
			Expect(got).To(Equal(want))
		})
	})

	Describe("Build", func() {
		It("rejects negative starts and durations", func() {
			_, err := timeline.Build(timeline.Seq("root", 0, 0, nil, timeline.Seq("bad", -1, 10, nil)))
			Expect(err).To(MatchError(motion.ErrConfiguration))
			Expect(err.Error()).To(ContainSubstring("root/bad.from"))

			_, err = timeline.Build(timeline.Seq("root", 0, -3, nil))
			Expect(err).To(MatchError(motion.ErrConfiguration))
		})

		It("is not affected by later edits to its Spec value", func() {
			spec := timeline.Seq("root", 0, 10, nil, timeline.Seq("c", 2, 3, nil))
			n := build(spec)
			spec.Children[0].From = 7
			spec.Duration = 99
			Expect(n.Children()[0].From()).To(Equal(2))
			Expect(n.Duration()).To(Equal(10))
		})

		It("names the root and unnamed children", func() {
			n := build(timeline.Spec{Children: []timeline.Spec{{Duration: 4}}})
			Expect(n.Name()).To(Equal("root"))
			Expect(n.Visible(0)).To(Equal([]string{"root", "root/0"}))
			Expect(n.Size()).To(Equal(2))
		})
	})

	It("describes the tree", func() {
		n := build(timeline.Seq("intro", 0, 90, nil, timeline.Seq("title", 10, timeline.Unbounded, nil)))
		Expect(n.Describe()).To(Equal("intro [0, 90)\n  title [10, ∞)\n"))
	})
})
