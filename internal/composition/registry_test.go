package composition_test

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/framekit/internal/composition"
	"github.com/san-kum/framekit/internal/display"
	"github.com/san-kum/framekit/internal/motion"
	"github.com/san-kum/framekit/internal/timeline"
)

func scene(id string, duration int) composition.Composition {
	GinkgoHelper()
	root, err := timeline.Build(timeline.Seq(id, 0, timeline.Unbounded, func(ctx motion.Context) []display.Element {
		return []display.Element{display.Rect("frame", 0, 0, float64(ctx.Width), float64(ctx.Height)).With("f", float64(ctx.Frame))}
	}))
	Expect(err).NotTo(HaveOccurred())
	return composition.Composition{
		ID:             id,
		Folder:         "Test",
		DurationFrames: duration,
		FPS:            30,
		Width:          1920,
		Height:         1080,
		Root:           root,
	}
}

var _ = Describe("Registry", func() {
	var reg *composition.Registry

	BeforeEach(func() {
		reg = composition.NewRegistry()
	})

	It("resolves registered compositions", func() {
		Expect(reg.Register(scene("Intro", 210))).To(Succeed())
		c, err := reg.Resolve("Intro")
		Expect(err).NotTo(HaveOccurred())
		Expect(c.DurationFrames).To(Equal(210))
		Expect(c.Seconds()).To(Equal(7.0))
	})

	It("rejects duplicate ids and keeps the first", func() {
		Expect(reg.Register(scene("Intro", 210))).To(Succeed())
		err := reg.Register(scene("Intro", 99))
		Expect(err).To(MatchError(motion.ErrDuplicateID))

		c, _ := reg.Resolve("Intro")
		Expect(c.DurationFrames).To(Equal(210))
		Expect(reg.Len()).To(Equal(1))
	})

	It("reports unknown ids", func() {
		_, err := reg.Resolve("Missing")
		Expect(err).To(MatchError(motion.ErrNotFound))

		var idErr *motion.IDError
		Expect(errors.As(err, &idErr)).To(BeTrue())
		Expect(idErr.ID).To(Equal("Missing"))
	})

	DescribeTable("rejects invalid compositions",
		func(mutate func(*composition.Composition)) {
			c := scene("Bad", 10)
			mutate(&c)
			Expect(reg.Register(c)).To(MatchError(motion.ErrConfiguration))
			Expect(reg.Len()).To(BeZero())
		},
		Entry("empty id", func(c *composition.Composition) { c.ID = "" }),
		Entry("zero duration", func(c *composition.Composition) { c.DurationFrames = 0 }),
		Entry("zero fps", func(c *composition.Composition) { c.FPS = 0 }),
		Entry("zero width", func(c *composition.Composition) { c.Width = 0 }),
		Entry("negative height", func(c *composition.Composition) { c.Height = -1 }),
		Entry("nil root", func(c *composition.Composition) { c.Root = nil }),
	)

	Describe("RenderFrame", func() {
		BeforeEach(func() {
			Expect(reg.Register(scene("Intro", 210))).To(Succeed())
		})

		It("renders the first and last frames", func() {
			for _, f := range []int{0, 209} {
				fr, err := reg.RenderFrame("Intro", f)
				Expect(err).NotTo(HaveOccurred())
				Expect(fr.Index).To(Equal(f))
				v, ok := fr.Value("frame", "f")
				Expect(ok).To(BeTrue())
				Expect(v).To(BeEquivalentTo(f))
			}
		})

		It("does not clamp out-of-range frames", func() {
			_, err := reg.RenderFrame("Intro", 210)
			Expect(err).To(MatchError(motion.ErrOutOfRange))

			var rangeErr *motion.RangeError
			Expect(errors.As(err, &rangeErr)).To(BeTrue())
			Expect(rangeErr.Frame).To(Equal(210))
			Expect(rangeErr.Duration).To(Equal(210))

			_, err = reg.RenderFrame("Intro", -1)
			Expect(err).To(MatchError(motion.ErrOutOfRange))
		})

		It("passes canvas size through the context", func() {
			fr, err := reg.RenderFrame("Intro", 3)
			Expect(err).NotTo(HaveOccurred())
			w, ok := fr.Value("frame", "width")
			Expect(ok).To(BeTrue())
			Expect(w).To(BeEquivalentTo(1920))
		})
	})

	It("serializes concurrent registration of the same id", func() {
		var wg sync.WaitGroup
		errs := make([]error, 16)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = reg.Register(scene("Race", 10))
			}(i)
		}
		wg.Wait()

		ok := 0
		for _, err := range errs {
			if err == nil {
				ok++
			} else {
				Expect(err).To(MatchError(motion.ErrDuplicateID))
			}
		}
		Expect(ok).To(Equal(1))
		Expect(reg.IDs()).To(Equal([]string{"Race"}))
	})

	Describe("Manifest", func() {
		BeforeEach(func() {
			Expect(reg.RegisterAll(scene("B", 30), scene("A", 60))).To(Succeed())
		})

		It("keeps registration order", func() {
			m := reg.Manifest()
			Expect(m).To(HaveLen(2))
			Expect(m[0].ID).To(Equal("B"))
			Expect(m[1].ID).To(Equal("A"))
			Expect(m.TotalFrames()).To(Equal(90))
			Expect(m.Folders()).To(HaveKeyWithValue("Test", []string{"B", "A"}))
		})

		It("round-trips through yaml and json", func() {
			for _, format := range []string{"yaml", "json"} {
				var buf bytes.Buffer
				Expect(reg.Manifest().Encode(&buf, format)).To(Succeed())
				back, err := composition.DecodeManifest(&buf)
				Expect(err).NotTo(HaveOccurred(), format)
				Expect(back).To(Equal(reg.Manifest()), format)
			}
		})

		It("reports differences against a saved manifest", func() {
			var buf bytes.Buffer
			Expect(reg.Manifest().Encode(&buf, "yaml")).To(Succeed())
			saved, err := composition.DecodeManifest(&buf)
			Expect(err).NotTo(HaveOccurred())
			Expect(reg.Manifest().Diff(saved)).To(BeEmpty())

			saved[0].DurationFrames++
			saved[1].ID = "Gone"
			Expect(reg.Manifest().Diff(saved)).To(ConsistOf(
				"B: durationFrames 30, want 31",
				"Gone: missing",
				"A: not in manifest",
			))
		})

		It("rejects unknown formats", func() {
			Expect(reg.Manifest().Encode(&bytes.Buffer{}, "toml")).To(MatchError(ContainSubstring("unknown manifest format")))
		})

		It("wraps registration failures with the id", func() {
			err := reg.RegisterAll(scene("C", 5), scene("A", 5))
			Expect(err).To(MatchError(motion.ErrDuplicateID))
			Expect(err.Error()).To(ContainSubstring(fmt.Sprintf("register %q", "A")))
		})
	})
})
