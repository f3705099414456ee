package scenes

import (
	"fmt"
	"math"

	"github.com/san-kum/framekit/internal/display"
	"github.com/san-kum/framekit/internal/easing"
	"github.com/san-kum/framekit/internal/interp"
	"github.com/san-kum/framekit/internal/motion"
	"github.com/san-kum/framekit/internal/spring"
	"github.com/san-kum/framekit/internal/timeline"
)

type effect int

const (
	fadeUp effect = iota
	scaleIn
	slideRight
	rotateIn
	bounceIn
)

type word struct {
	text   string
	delay  float64
	effect effect
	color  string
	size   float64
}

// wordLine lays words out on one centered line. Widths are estimated
// from the glyph count; the real renderer does the final layout.
func wordLine(words []word, y float64) []float64 {
	const gap = 30
	xs := make([]float64, len(words))
	total := 0.0
	for _, w := range words {
		total += float64(len([]rune(w.text)))*w.size*0.6 + gap
	}
	x := 960 - (total-gap)/2
	for i, w := range words {
		width := float64(len([]rune(w.text))) * w.size * 0.6
		xs[i] = x + width/2
		x += width + gap
	}
	return xs
}

// animatedWord returns the draw function for one word with its entrance.
func animatedWord(b *builder, id string, w word, x, y float64) timeline.DrawFunc {
	d := w.delay
	var (
		alpha  *interp.Track
		offset *interp.Track
		turn   *interp.Track
		grow   *interp.Track
		pop    *spring.Spring
	)
	switch w.effect {
	case fadeUp:
		alpha = b.fade(d, 20)
		offset = b.ramp(d, 20, 50, 0, outCubic)
	case scaleIn:
		alpha = b.fade(d, 15)
		pop = b.spring(spring.Params(10, 100), spring.Delay(int(d)))
	case slideRight:
		alpha = b.fade(d, 15)
		offset = b.ramp(d, 25, -200, 0, outCubic)
	case rotateIn:
		alpha = b.fade(d, 20)
		turn = b.ramp(d, 25, -90, 0, easing.Out(easing.Back(1.5)))
		grow = b.ramp(d, 25, 0.5, 1, nil)
	case bounceIn:
		alpha = b.fade(d, 10)
		pop = b.spring(spring.Params(8, 150), spring.Delay(int(d)))
	}

	return func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		e := display.Text(id, w.text, x, y, w.size).Fill(w.color).With("opacity", alpha.AtFrame(f))
		switch w.effect {
		case fadeUp:
			e = e.With("y", y+offset.AtFrame(f))
		case slideRight:
			e = e.With("x", x+offset.AtFrame(f))
		case rotateIn:
			e = e.With("rotation", turn.AtFrame(f)).With("scale", grow.AtFrame(f))
		case scaleIn, bounceIn:
			e = e.With("scale", pop.At(f))
		}
		return []display.Element{e}
	}
}

// characterReveal drops each glyph in turn, charDelay frames apart.
func characterReveal(b *builder, id, text string, start, charDelay float64, color string, size, y float64) timeline.DrawFunc {
	type glyph struct {
		ch    string
		x     float64
		alpha *interp.Track
		drop  *interp.Track
	}
	runes := []rune(text)
	glyphs := make([]glyph, len(runes))
	x := 960 - float64(len(runes))*size*0.6/2
	for i, r := range runes {
		d := start + float64(i)*charDelay
		w := size * 0.6
		if r == ' ' {
			w = size * 0.3
		}
		glyphs[i] = glyph{ch: string(r), x: x + w/2, alpha: b.fade(d, 10), drop: b.ramp(d, 10, 30, 0, outCubic)}
		x += w
	}

	return func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		out := make([]display.Element, len(glyphs))
		for i, g := range glyphs {
			out[i] = display.Text(fmt.Sprintf("%s-%d", id, i), g.ch, g.x, y+g.drop.AtFrame(f), size).
				Fill(color).With("opacity", g.alpha.AtFrame(f))
		}
		return out
	}
}

// words draws each word of a line in order.
func words(b *builder, prefix string, ws []word, y float64) timeline.DrawFunc {
	xs := wordLine(ws, y)
	draws := make([]timeline.DrawFunc, len(ws))
	for i, w := range ws {
		draws[i] = animatedWord(b, fmt.Sprintf("%s-%d", prefix, i), w, xs[i], y)
	}
	return func(ctx motion.Context) []display.Element {
		var out []display.Element
		for _, d := range draws {
			out = append(out, d(ctx)...)
		}
		return out
	}
}

var kineticSymbols = []string{"{", "}", "<", ">", "/", ";", "=", "(", ")"}

func kinetic(b *builder) timeline.Spec {
	var (
		fadeOut  = b.ramp(390, 30, 1, 0, nil)
		pulse    = b.track([]float64{0, 30, 60}, []float64{0.02, 0.05, 0.02}, interp.Options{Right: interp.Clamp})
		rule     = b.fade(0, 30)
		quoteBy  = b.fade(20, 20)
		quoteByY = b.ramp(20, 20, 20, 0, nil)
	)

	talk := words(b, "talk", []word{
		{"Talk", 0, slideRight, "#8b5cf6", 120},
		{"is", 15, fadeUp, "#ffffff", 120},
		{"cheap.", 30, bounceIn, "#f59e0b", 120},
	}, 540)
	show := words(b, "show", []word{
		{"Show", 0, rotateIn, "#22c55e", 140},
		{"me", 20, scaleIn, "#ffffff", 140},
	}, 540)
	the := words(b, "the", []word{{"the", 0, fadeUp, "#6b7280", 80}}, 440)
	code := characterReveal(b, "code", "CODE", 20, 5, "#ec4899", 180, 600)

	stage := func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		out := []display.Element{
			background("background", "#000000", ctx.Width, ctx.Height, fadeOut.AtFrame(f)),
			display.Circle("pulse", 960, 540, 480).Fill("#8b5cf6").With("opacity", pulse.AtFrame(wrap(f, 60))),
		}
		for i, s := range kineticSymbols {
			speed := 0.005
			if i%2 != 0 {
				speed = -speed
			}
			angle := float64(i)/9*2*math.Pi + float64(f)*speed
			radius := 350 + float64(i%3)*50
			out = append(out, display.Text(fmt.Sprintf("symbol-%d", i), s,
				960+math.Cos(angle)*radius, 540+math.Sin(angle)*radius, 40).
				Fill("#8b5cf6").With("opacity", 0.1+float64(i%3)*0.05))
		}
		return out
	}

	attribution := func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		return []display.Element{
			display.Rect("rule", 910, 600, 100, 2).Fill("#4b5563").
				With("opacity", rule.AtFrame(f)).With("scaleX", rule.AtFrame(f)),
			display.Text("attribution", "Linus Torvalds", 960, 660+quoteByY.AtFrame(f), 36).Fill("#9ca3af").
				With("opacity", quoteBy.AtFrame(f)),
		}
	}

	return layer("KineticTypography", stage,
		timeline.Seq("talk", 0, 120, talk),
		timeline.Seq("show", 100, 120, show),
		timeline.Seq("code", 200, 140, nil,
			layer("the", the),
			layer("reveal", code),
		),
		timeline.Seq("attribution", 320, 100, attribution),
	)
}
