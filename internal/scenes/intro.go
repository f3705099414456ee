package scenes

import (
	"fmt"
	"math"

	"github.com/san-kum/framekit/internal/display"
	"github.com/san-kum/framekit/internal/interp"
	"github.com/san-kum/framekit/internal/motion"
	"github.com/san-kum/framekit/internal/spring"
	"github.com/san-kum/framekit/internal/timeline"
)

const (
	introAccent = "#da7756"
	introWarm   = "#f4a261"
)

func intro(b *builder) timeline.Spec {
	var (
		fadeOut    = b.ramp(180, 30, 1, 0, nil)
		textScale  = b.spring(spring.Config{Mass: 0.8, Stiffness: 100, Damping: 12}, spring.Duration(60))
		textAlpha  = b.enter(0, 30, 0, 1, nil)
		glow       = b.track([]float64{30, 60, 90, 120, 150}, []float64{0, 1, 0.6, 1, 0.8}, interp.Clamped(nil))
		subAlpha   = b.ramp(45, 30, 0, 1, nil)
		subY       = b.ramp(45, 30, 20, 0, outCubic)
		spread     = b.ramp(20, 30, 0, 60, outCubic)
		bracket    = b.ramp(20, 20, 0, 0.6, nil)
		accentLine = b.ramp(60, 40, 0, 400, outCubic)
	)

	type corner struct {
		name string
		x, y float64
		fade *interp.Track
	}
	corners := []corner{
		{"top-left", 60, 60, b.ramp(30, 20, 0, 1, nil)},
		{"top-right", 1920 - 120, 60, b.ramp(35, 20, 0, 1, nil)},
		{"bottom-left", 60, 1080 - 120, b.ramp(40, 20, 0, 1, nil)},
		{"bottom-right", 1920 - 120, 1080 - 120, b.ramp(45, 20, 0, 1, nil)},
	}

	// Each particle lives in its own window starting at its stagger
	// delay; after 60 frames it has faded out and is clipped.
	particles := make([]timeline.Spec, 12)
	for i := range particles {
		i := i
		angle := float64(i) / 12 * 2 * math.Pi
		radius := b.ramp(0, 60, 50, 200, outCubic)
		alpha := b.track([]float64{0, 20, 60}, []float64{0, 0.8, 0}, interp.Clamped(nil))
		size := float64(4 + (i%3)*2)
		particles[i] = timeline.Seq(fmt.Sprintf("p%02d", i), i*3, 60, func(ctx motion.Context) []display.Element {
			r := radius.AtFrame(ctx.Frame)
			cx, cy := float64(ctx.Width)/2, float64(ctx.Height)/2
			return []display.Element{
				display.Circle(fmt.Sprintf("particle-%d", i), cx+math.Cos(angle)*r, cy+math.Sin(angle)*r, size/2).
					Fill(introAccent).
					With("opacity", alpha.AtFrame(ctx.Frame)),
			}
		})
	}

	stage := func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		g := glow.AtFrame(f)
		return []display.Element{
			background("background", "#1a1a2e", ctx.Width, ctx.Height, fadeOut.AtFrame(f)),
			display.Rect("glow", 660, 440, 600, 200).Fill(introAccent).With("opacity", 0.3*g),
		}
	}

	brackets := func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		half := (400 + 2*spread.AtFrame(f)) / 2
		a := bracket.AtFrame(f)
		return []display.Element{
			display.Text("bracket-open", "<", 960-half, 540, 120).Fill(introWarm).With("opacity", a),
			display.Text("bracket-close", "/>", 960+half, 540, 120).Fill(introWarm).With("opacity", a),
		}
	}

	title := func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		s, a, g := textScale.At(f), textAlpha.AtFrame(f), glow.AtFrame(f)
		return []display.Element{
			display.Text("title-frame", "Frame", 780, 520, 140).Fill("#ffffff").
				With("scale", s).With("opacity", a).With("glow", 30*g),
			display.Text("title-kit", "Kit", 1080, 520, 140).Fill(introAccent).
				With("scale", s).With("opacity", a).With("glow", 40*g),
			display.Rect("cursor", 1190, 470, 8, 100).Fill(introAccent).
				With("scale", s).With("opacity", a*blink(f, 15)),
			display.Text("subtitle", "DETERMINISTIC MOTION", 960, 640+subY.AtFrame(f), 36).Fill("#ffffff").
				With("scale", s).With("opacity", a*0.7*subAlpha.AtFrame(f)),
		}
	}

	accents := func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		w := accentLine.AtFrame(f)
		out := []display.Element{
			display.Rect("accent-line", 960-w/2, float64(ctx.Height)-120, w, 3).Fill(introAccent),
		}
		for _, c := range corners {
			out = append(out, display.Rect("corner-"+c.name, c.x, c.y, 60, 60).
				Fill(introAccent).With("opacity", 0.4*c.fade.AtFrame(f)))
		}
		return out
	}

	return layer("ClaudeCodeIntro", stage,
		layer("particles", nil, particles...),
		layer("brackets", brackets),
		layer("title", title),
		layer("accents", accents),
	)
}
