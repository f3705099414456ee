package scenes

import (
	"fmt"

	"github.com/san-kum/framekit/internal/display"
	"github.com/san-kum/framekit/internal/motion"
	"github.com/san-kum/framekit/internal/spring"
	"github.com/san-kum/framekit/internal/timeline"
)

type stat struct {
	title string
	value float64
	color string
}

type langShare struct {
	label string
	value float64
	color string
}

var (
	dashboardStats = []stat{
		{"Total Commits", 2847, "#6366f1"},
		{"Pull Requests", 156, "#22c55e"},
		{"Issues Closed", 342, "#f59e0b"},
		{"Code Reviews", 489, "#ec4899"},
	}
	dashboardLanguages = []langShare{
		{"TypeScript", 45, "#3178c6"},
		{"Python", 30, "#3776ab"},
		{"Rust", 15, "#dea584"},
		{"Go", 10, "#00add8"},
	}
)

// statCard animates one card and its counter. delay is in the card
// layer's local frames; the counter starts 10 frames after the card.
func statCard(b *builder, i int, s stat, delay float64) timeline.DrawFunc {
	var (
		cardScale  = b.spring(spring.Params(12, 80), spring.Delay(int(delay)))
		cardAlpha  = b.fade(delay, 20)
		value      = b.ramp(delay+10, float64(2*b.fps), 0, s.value, outCubic)
		valueAlpha = b.fade(delay+10, 15)
		valueScale = b.spring(spring.Params(12, 100), spring.Delay(int(delay)+10))
	)
	x := 180 + float64(i)*400
	id := fmt.Sprintf("stat-%d", i)

	return func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		scale, alpha := cardScale.At(f), cardAlpha.AtFrame(f)
		v := value.AtFrame(f)
		return []display.Element{
			display.Rect(id, x, 300, 280, 200).Fill(s.color).
				With("scale", scale).With("opacity", alpha),
			display.Text(id+"-value", count(v), x+140, 380, 56).Fill(s.color).
				With("value", v).With("scale", scale*valueScale.At(f)).With("opacity", alpha*valueAlpha.AtFrame(f)),
			display.Text(id+"-title", s.title, x+140, 450, 20).Fill("#ffffff").
				With("scale", scale).With("opacity", 0.7*alpha),
		}
	}
}

// languageBar animates one bar of the chart. maxValue is the value that
// fills the whole track.
func languageBar(b *builder, i int, l langShare, delay, maxValue float64) timeline.DrawFunc {
	var (
		width = b.ramp(delay, 1.5*float64(b.fps), 0, l.value/maxValue*100, outCubic)
		alpha = b.fade(delay, 15)
		slide = b.ramp(delay, 20, -50, 0, outCubic)
	)
	y := 640 + float64(i)*70
	id := fmt.Sprintf("bar-%d", i)

	return func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		a, dx, pct := alpha.AtFrame(f), slide.AtFrame(f), width.AtFrame(f)
		return []display.Element{
			display.Text(id+"-label", l.label, 100+dx, y, 24).Fill("#ffffff").With("opacity", a),
			display.Rect(id+"-track", 260+dx, y-20, 600, 40).Fill("#ffffff").With("opacity", 0.1*a),
			display.Rect(id, 260+dx, y-20, 6*pct, 40).Fill(l.color).With("opacity", a).With("percent", pct),
			display.Text(id+"-value", fmt.Sprintf("%.0f%%", l.value), 900+dx, y, 24).Fill(l.color).With("opacity", a),
		}
	}
}

func dashboard(b *builder) timeline.Spec {
	var (
		fadeOut    = b.ramp(330, 30, 1, 0, nil)
		titleAlpha = b.enter(0, 30, 0, 1, nil)
		titleY     = b.enter(0, 30, -30, 0, outCubic)
		chartAlpha = b.fade(0, 20)
		tagAlpha   = b.fade(0, 30)
	)

	cards := make([]timeline.DrawFunc, len(dashboardStats))
	for i, s := range dashboardStats {
		cards[i] = statCard(b, i, s, float64(i*10))
	}
	bars := make([]timeline.DrawFunc, len(dashboardLanguages))
	for i, l := range dashboardLanguages {
		bars[i] = languageBar(b, i, l, float64(140+i*15), 50)
	}

	stage := func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		a, y := titleAlpha.AtFrame(f), titleY.AtFrame(f)
		return []display.Element{
			background("background", "#0f0f1a", ctx.Width, ctx.Height, fadeOut.AtFrame(f)),
			display.Text("title", "2024 Year in Review", 960, 120+y, 64).Fill("#ffffff").With("opacity", a),
			display.Text("subtitle", "Developer Activity Dashboard", 960, 190+y, 24).Fill("#ffffff").With("opacity", 0.5*a),
		}
	}

	chart := func(ctx motion.Context) []display.Element {
		var out []display.Element
		out = append(out, display.Text("chart-heading", "Languages Used", 100, 580, 32).
			Fill("#ffffff").With("opacity", chartAlpha.AtFrame(ctx.Frame)))
		for _, draw := range bars {
			out = append(out, draw(ctx)...)
		}
		return out
	}

	stats := func(ctx motion.Context) []display.Element {
		var out []display.Element
		for _, draw := range cards {
			out = append(out, draw(ctx)...)
		}
		return out
	}

	tagline := func(ctx motion.Context) []display.Element {
		return []display.Element{
			display.Text("tagline", "Powered by framekit", float64(ctx.Width)-80, float64(ctx.Height)-80, 18).
				Fill("#ffffff").With("opacity", 0.5*tagAlpha.AtFrame(ctx.Frame)),
		}
	}

	return layer("DataDashboard", stage,
		timeline.Seq("stats", 30, timeline.Unbounded, stats),
		timeline.Seq("languages", 120, timeline.Unbounded, chart),
		timeline.Seq("tagline", 250, timeline.Unbounded, tagline),
	)
}
