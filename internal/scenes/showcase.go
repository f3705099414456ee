package scenes

import (
	"fmt"

	"github.com/san-kum/framekit/internal/display"
	"github.com/san-kum/framekit/internal/interp"
	"github.com/san-kum/framekit/internal/motion"
	"github.com/san-kum/framekit/internal/spring"
	"github.com/san-kum/framekit/internal/timeline"
)

type feature struct {
	title       string
	description string
	color       string
}

var showcaseFeatures = []feature{
	{"Frame-Indexed Sampling", "Any frame, any order, identical output", "#8b5cf6"},
	{"Closed-Form Springs", "Damped oscillators without integration state", "#22c55e"},
	{"Nested Timelines", "Offsets compose, windows clip whole subtrees", "#f59e0b"},
	{"Parallel Rendering", "Workers share nothing but immutable scene trees", "#ec4899"},
	{"Deterministic Noise", "Seeded randomness that never drifts between runs", "#06b6d4"},
}

const showcaseAccent = "#8b5cf6"

// featureItem slides a feature row in, then pops its checkmark 20 frames
// later.
func featureItem(b *builder, i int, ft feature, delay float64) timeline.DrawFunc {
	var (
		slide      = b.ramp(delay, 30, 100, 0, outCubic)
		alpha      = b.fade(delay, 20)
		checkScale = b.spring(spring.Params(10, 150), spring.Delay(int(delay)+20))
		checkAlpha = b.fade(delay+20, 10)
		iconScale  = b.spring(spring.Params(8, 100), spring.Delay(int(delay)))
	)
	y := 400 + float64(i)*90
	id := fmt.Sprintf("feature-%d", i)

	return func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		dx, a := slide.AtFrame(f), alpha.AtFrame(f)
		return []display.Element{
			display.Circle(id+"-check", 540+dx, y, 30).Fill(ft.color).
				With("opacity", a*checkAlpha.AtFrame(f)).With("scale", checkScale.At(f)),
			display.Circle(id+"-icon", 620+dx, y, 24).Fill(ft.color).
				With("opacity", a).With("scale", iconScale.At(f)),
			display.Text(id, ft.title, 680+dx, y-14, 28).Fill("#ffffff").With("opacity", a),
			display.Text(id+"-description", ft.description, 680+dx, y+20, 18).Fill("#ffffff").With("opacity", 0.6*a),
		}
	}
}

// activeFeature is the index of the feature currently being introduced,
// negative before the first.
func activeFeature(frame int) int {
	n := frame - 60
	idx := n / 60
	if n < 0 && n%60 != 0 {
		idx--
	}
	if idx > len(showcaseFeatures)-1 {
		idx = len(showcaseFeatures) - 1
	}
	return idx
}

func showcase(b *builder) timeline.Spec {
	var (
		fadeOut    = b.ramp(420, 30, 1, 0, nil)
		titleScale = b.spring(spring.Params(12, 80))
		titleAlpha = b.enter(0, 30, 0, 1, nil)
		subAlpha   = b.ramp(20, 30, 0, 1, nil)
		subY       = b.ramp(20, 30, 20, 0, outCubic)
		glowY      = b.enter(0, 450, 0, 100, nil)
		ctaAlpha   = b.fade(0, 30)
		ctaScale   = b.spring(spring.Params(10, 100))
	)

	items := make([]timeline.DrawFunc, len(showcaseFeatures))
	for i, ft := range showcaseFeatures {
		items[i] = featureItem(b, i, ft, float64(60+i*60))
	}

	// Pips light up on their own local schedule; which ones may light up
	// follows the root's feature index.
	pips := make([]*pip, len(showcaseFeatures))
	for i := range pips {
		pips[i] = &pip{start: float64(i*60 + 30)}
		pips[i].on = b.ramp(pips[i].start, 20, 0.3, 1, nil)
		pips[i].off = b.ramp(pips[i].start, 20, 0.3, 0.3, nil)
	}

	stage := func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		s, a := titleScale.At(f), titleAlpha.AtFrame(f)
		out := []display.Element{
			background("background", "#0a0a0f", ctx.Width, ctx.Height, fadeOut.AtFrame(f)),
			display.Rect("glow", 560, float64(ctx.Height)*(0.3+glowY.AtFrame(f)*0.003)-200, 800, 400).
				Fill(showcaseAccent).With("opacity", 0.15),
			display.Text("eyebrow", "INTRODUCING", 960, 100, 24).Fill(showcaseAccent).With("opacity", a).With("scale", s),
			display.Text("title", "framekit", 960, 180, 80).Fill("#ffffff").With("opacity", a).With("scale", s),
			display.Text("subtitle", "Motion as a pure function of the frame", 960, 260+subY.AtFrame(f), 28).
				Fill("#ffffff").With("opacity", 0.6*subAlpha.AtFrame(f)),
		}
		for _, draw := range items {
			out = append(out, draw(ctx)...)
		}
		return out
	}

	progress := func(ctx motion.Context) []display.Element {
		current := activeFeature(ctx.Frame + 60)
		out := make([]display.Element, len(pips))
		for i, p := range pips {
			track := p.off
			if i <= current {
				track = p.on
			}
			out[i] = display.Rect(fmt.Sprintf("pip-%d", i), 860+float64(i)*48, 900, 40, 6).
				Fill(showcaseAccent).With("opacity", track.AtFrame(ctx.Frame))
		}
		return out
	}

	cta := func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		return []display.Element{
			display.Rect("cta", 810, 960, 300, 64).Fill(showcaseAccent).
				With("opacity", ctaAlpha.AtFrame(f)).With("scale", ctaScale.At(f)),
			display.Text("cta-label", "Get Started →", 960, 992, 24).Fill("#ffffff").
				With("opacity", ctaAlpha.AtFrame(f)).With("scale", ctaScale.At(f)),
		}
	}

	return layer("ProductShowcase", stage,
		timeline.Seq("progress", 60, timeline.Unbounded, progress),
		timeline.Seq("cta", 380, timeline.Unbounded, cta),
	)
}

type pip struct {
	start   float64
	on, off *interp.Track
}
