package scenes

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/framekit/internal/display"
	"github.com/san-kum/framekit/internal/interp"
	"github.com/san-kum/framekit/internal/motion"
	"github.com/san-kum/framekit/internal/spring"
	"github.com/san-kum/framekit/internal/timeline"
)

type tokenKind string

const (
	tokKeyword  tokenKind = "keyword"
	tokFunction tokenKind = "function"
	tokString   tokenKind = "string"
	tokNumber   tokenKind = "number"
	tokComment  tokenKind = "comment"
	tokVariable tokenKind = "variable"
	tokType     tokenKind = "type"
	tokOperator tokenKind = "operator"
	tokPlain    tokenKind = "plain"
	tokBracket  tokenKind = "bracket"
)

var syntaxColors = map[tokenKind]string{
	tokKeyword:  "#c678dd",
	tokFunction: "#61afef",
	tokString:   "#98c379",
	tokNumber:   "#d19a66",
	tokComment:  "#5c6370",
	tokVariable: "#e06c75",
	tokType:     "#e5c07b",
	tokOperator: "#56b6c2",
	tokPlain:    "#abb2bf",
	tokBracket:  "#abb2bf",
}

type token struct {
	text string
	kind tokenKind
}

type codeLine struct {
	tokens    []token
	highlight bool
}

var walkthroughCode = []codeLine{
	{tokens: []token{{"package", tokKeyword}, {" ", tokPlain}, {"scene", tokPlain}}},
	{},
	{tokens: []token{{"func", tokKeyword}, {" ", tokPlain}, {"Fade", tokFunction}, {"(", tokBracket}, {"ctx", tokVariable}, {" motion.", tokPlain}, {"Context", tokType}, {") ", tokBracket}, {"float64", tokType}, {" {", tokBracket}}},
	{tokens: []token{{"\t", tokPlain}, {"// The frame arrives as an argument", tokComment}}},
	{tokens: []token{{"\t", tokPlain}, {"frame", tokVariable}, {" := ", tokOperator}, {"ctx", tokVariable}, {".", tokPlain}, {"Frame", tokVariable}}, highlight: true},
	{},
	{tokens: []token{{"\t", tokPlain}, {"// Opacity is a pure function of it", tokComment}}},
	{tokens: []token{{"\t", tokPlain}, {"opacity", tokVariable}, {" := ", tokOperator}, {"float64", tokType}, {"(", tokBracket}, {"frame", tokVariable}, {") / ", tokOperator}, {"30", tokNumber}}, highlight: true},
	{},
	{tokens: []token{{"\t", tokPlain}, {"return", tokKeyword}, {" ", tokPlain}, {"math", tokPlain}, {".", tokPlain}, {"Min", tokFunction}, {"(", tokBracket}, {"opacity", tokVariable}, {", ", tokPlain}, {"1", tokNumber}, {")", tokBracket}}},
	{tokens: []token{{"}", tokBracket}}},
}

var terminalLines = []string{
	"$ framekit render Fade",
	"Rendering frames...",
	"Frame 0/30 → opacity: 0.00",
	"Frame 15/30 → opacity: 0.50",
	"Frame 30/30 → opacity: 1.00",
	"✓ Render complete",
}

// typewriter reveals a code line two frames per character with a
// blinking cursor while typing.
func typewriter(b *builder, i int, line codeLine, delay float64, highlightFrom int) timeline.DrawFunc {
	total := 0
	for _, t := range line.tokens {
		total += len([]rune(t.text))
	}
	var reveal *interp.Track
	if total > 0 {
		reveal = b.ramp(delay, math.Max(1, float64(total*2)), 0, float64(total), nil)
	}
	alpha := b.fade(delay, 10)
	glow := b.track([]float64{0, 30, 60}, []float64{0.1, 0.2, 0.1}, interp.Options{Right: interp.Clamp})
	y := 260 + float64(i)*36
	id := fmt.Sprintf("line-%d", i+1)

	return func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		shown := 0
		if reveal != nil {
			shown = int(math.Floor(reveal.AtFrame(f)))
		}
		a := alpha.AtFrame(f)
		var out []display.Element
		if line.highlight && f > highlightFrom {
			out = append(out, display.Rect(id+"-highlight", 100, y-18, 1100, 36).Fill("#61afef").
				With("opacity", glow.AtFrame(wrap(f-int(delay), 60))))
		}
		out = append(out, display.Text(id+"-number", fmt.Sprint(i+1), 120, y, 20).
			Fill(syntaxColors[tokComment]).With("opacity", a))

		x, start := 180.0, 0
		for j, t := range line.tokens {
			runes := []rune(t.text)
			visible := shown - start
			if visible > len(runes) {
				visible = len(runes)
			}
			if visible < 0 {
				visible = 0
			}
			start += len(runes)
			text := string(runes[:visible])
			out = append(out, display.Text(fmt.Sprintf("%s-tok-%d", id, j), text, x, y, 20).
				Fill(syntaxColors[t.kind]).With("opacity", a).With("visible", float64(visible)))
			x += float64(len(runes)) * 12
		}
		if shown > 0 && shown < total {
			cx := 180 + float64(shown)*12
			out = append(out, display.Rect(id+"-cursor", cx, y-12, 2, 24).Fill("#528bff").
				With("opacity", a*blink(f-int(delay), 15)))
		}
		return out
	}
}

// annotation pops a callout bubble with a growing arrow.
func annotation(b *builder, id, text, color string, y float64) timeline.DrawFunc {
	var (
		alpha = b.fade(0, 20)
		slide = b.ramp(0, 20, 20, 0, outCubic)
		scale = b.spring(spring.Params(12, 100))
		arrow = b.ramp(0, 15, 0, 40, nil)
	)
	return func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		a, dx := alpha.AtFrame(f), slide.AtFrame(f)
		return []display.Element{
			display.Line(id+"-arrow", 1260+dx, y, 1260+dx+arrow.AtFrame(f), y).Fill(color).With("opacity", a),
			display.Text(id, text, 1320+dx, y, 18).Fill(color).With("opacity", a).With("scale", scale.At(f)),
		}
	}
}

func terminal(b *builder) timeline.DrawFunc {
	alpha := b.fade(0, 20)
	lines := make([]*interp.Track, len(terminalLines))
	for i := range lines {
		lines[i] = b.fade(float64(20+i*15), 10)
	}
	return func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		a := alpha.AtFrame(f)
		out := []display.Element{display.Rect("terminal", 100, 760, 1100, 280).Fill("#1e1e1e").With("opacity", a)}
		for i, l := range terminalLines {
			color := "#abb2bf"
			if strings.HasPrefix(l, "$") {
				color = "#27ca40"
			}
			out = append(out, display.Text(fmt.Sprintf("terminal-%d", i), l, 130, 820+float64(i)*34, 18).
				Fill(color).With("opacity", a*lines[i].AtFrame(f)))
		}
		return out
	}
}

func walkthrough(b *builder) timeline.Spec {
	var (
		fadeOut    = b.ramp(450, 30, 1, 0, nil)
		titleAlpha = b.enter(0, 30, 0, 1, nil)
		titleY     = b.enter(0, 30, -20, 0, outCubic)
	)

	lines := make([]timeline.DrawFunc, len(walkthroughCode))
	for i, l := range walkthroughCode {
		lines[i] = typewriter(b, i, l, float64(30+i*20), 200)
	}

	stage := func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		a, y := titleAlpha.AtFrame(f), titleY.AtFrame(f)
		return []display.Element{
			background("background", "#282c34", ctx.Width, ctx.Height, fadeOut.AtFrame(f)),
			display.Text("title", "How Frame Sampling Works", 100, 80+y, 48).Fill("#ffffff").With("opacity", a),
			display.Text("subtitle", "Frame-based video programming", 100, 140+y, 22).Fill(syntaxColors[tokComment]).With("opacity", a),
			display.Text("file-tab", "fade.go", 1100, 140+y, 16).Fill("#abb2bf").With("opacity", a),
		}
	}

	code := func(ctx motion.Context) []display.Element {
		var out []display.Element
		for _, draw := range lines {
			out = append(out, draw(ctx)...)
		}
		return out
	}

	return layer("CodeWalkthrough", stage,
		layer("code", code),
		timeline.Seq("note-frame", 150, timeline.Unbounded, annotation(b, "note-frame", "Gets the current frame (0, 1, 2...)", "#61afef", 420)),
		timeline.Seq("note-opacity", 220, timeline.Unbounded, annotation(b, "note-opacity", "Opacity changes every frame!", "#98c379", 510)),
		timeline.Seq("note-result", 280, timeline.Unbounded, annotation(b, "note-result", "At frame 30, opacity = 1.0", "#e5c07b", 600)),
		timeline.Seq("terminal", 340, timeline.Unbounded, terminal(b)),
	)
}
