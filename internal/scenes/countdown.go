package scenes

import (
	"fmt"
	"math"
	"strconv"

	"github.com/san-kum/framekit/internal/display"
	"github.com/san-kum/framekit/internal/easing"
	"github.com/san-kum/framekit/internal/interp"
	"github.com/san-kum/framekit/internal/motion"
	"github.com/san-kum/framekit/internal/spring"
	"github.com/san-kum/framekit/internal/timeline"
)

var countdownColors = map[int]string{3: "#ef4444", 2: "#f59e0b", 1: "#22c55e"}

var goPalette = []string{"#22c55e", "#4ade80", "#86efac"}

// countdownNumber draws one digit with its expanding ring. Inactive
// digits shrink and fade instead of springing in.
func countdownNumber(b *builder, n int, active bool) timeline.DrawFunc {
	var (
		scaleSpring *spring.Spring
		scaleTrack  *interp.Track
		alpha       *interp.Track
		ringScale   = b.enter(0, 30, 0.8, 1.5, outCubic)
		ringAlpha   = b.enter(0, 30, 0.8, 0, nil)
	)
	if active {
		scaleSpring = b.spring(spring.Params(8, 100))
		alpha = b.enter(0, 10, 0, 1, nil)
	} else {
		scaleTrack = b.enter(0, 15, 1, 0.3, easing.In(easing.Cubic))
		alpha = b.enter(0, 15, 1, 0, nil)
	}
	color, ok := countdownColors[n]
	if !ok {
		color = "#ffffff"
	}
	id := "number-" + strconv.Itoa(n)

	return func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		var scale float64
		if active {
			scale = scaleSpring.At(f)
		} else {
			scale = scaleTrack.AtFrame(f)
		}
		var out []display.Element
		if active {
			out = append(out, display.Circle(id+"-ring", 960, 540, 200).Fill(color).
				With("scale", ringScale.AtFrame(f)).With("opacity", ringAlpha.AtFrame(f)))
		}
		return append(out, display.Text(id, strconv.Itoa(n), 960, 540, 300).Fill(color).
			With("scale", scale).With("opacity", alpha.AtFrame(f)))
	}
}

// goText is the finale: staggered letters, a particle burst and burst
// lines. Particle speed, size and color come from seeded noise so every
// frame is reproducible.
func goText(b *builder) timeline.DrawFunc {
	var (
		alpha     = b.enter(0, 15, 0, 1, nil)
		fading    = b.enter(0, 60, 1, 0, nil)
		lineLen   = b.enter(0, 30, 0, 300, outCubic)
		lineAlpha = b.ramp(10, 30, 1, 0, nil)
	)
	letters := []string{"G", "O", "!"}
	letterScale := make([]*spring.Spring, len(letters))
	for i := range letters {
		letterScale[i] = b.spring(spring.Params(8, 150), spring.Delay(i*5))
	}

	type particle struct {
		angle, speed, size float64
		color              string
	}
	particles := make([]particle, 20)
	for i := range particles {
		seed := fmt.Sprintf("go-particle-%d", i)
		particles[i] = particle{
			angle: float64(i) / 20 * 2 * math.Pi,
			speed: 5 + motion.Random(seed+"-speed")*10,
			size:  10 + motion.Random(seed+"-size")*20,
			color: goPalette[int(motion.Random(seed+"-color")*3)],
		}
	}

	return func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		var out []display.Element
		for i, p := range particles {
			d := float64(f) * p.speed
			out = append(out, display.Circle(fmt.Sprintf("particle-%d", i),
				960+math.Cos(p.angle)*d, 540+math.Sin(p.angle)*d, p.size/2).
				Fill(p.color).With("opacity", fading.AtFrame(f)))
		}
		a := alpha.AtFrame(f)
		for i, l := range letters {
			out = append(out, display.Text("go-"+strconv.Itoa(i), l, 820+float64(i)*140, 540, 250).
				Fill("#22c55e").With("opacity", a).With("scale", letterScale[i].At(f)))
		}
		length := lineLen.AtFrame(f)
		for i := 0; i < 12; i++ {
			angle := float64(i) / 12 * 2 * math.Pi
			r := 150.0
			out = append(out, display.Line(fmt.Sprintf("burst-%d", i),
				960+math.Sin(angle)*r, 540-math.Cos(angle)*r,
				960+math.Sin(angle)*(r+length), 540-math.Cos(angle)*(r+length)).
				Fill("#22c55e").With("opacity", lineAlpha.AtFrame(f)).With("rotation", angle*180/math.Pi))
		}
		return out
	}
}

func countdown(b *builder) timeline.Spec {
	numberDuration := b.fps
	var (
		fadeOut    = b.ramp(180, 30, 1, 0, nil)
		titleAlpha = b.enter(0, 20, 0, 1, nil)
		titleY     = b.enter(0, 20, -30, 0, outCubic)
		ringScale  = b.enter(0, 90, 0.5, 2, nil)
		ringAlpha  = b.enter(0, 90, 0.3, 0, nil)
		subAlpha   = b.fade(0, 20)
	)
	// The pulse rings take the color of the digit on screen, blending
	// into the next one over the last five frames of each digit.
	ringTint := b.colors(
		[]float64{0, 30, 55, 60, 85, 90},
		[]string{"#ffffff", countdownColors[3], countdownColors[3], countdownColors[2], countdownColors[2], countdownColors[1]},
		nil,
	)

	stage := func(ctx motion.Context) []display.Element {
		f := ctx.Frame
		out := []display.Element{background("background", "#0a0a0f", ctx.Width, ctx.Height, fadeOut.AtFrame(f))}
		tint := ringTint.Hex(float64(f))
		for i := 0; i < 4; i++ {
			phase := wrap(f+i*20, 90)
			out = append(out, display.Circle(fmt.Sprintf("ring-%d", i), 960, 540, 200).Fill(tint).
				With("scale", ringScale.AtFrame(phase)).With("opacity", ringAlpha.AtFrame(phase)))
		}
		return append(out, display.Text("title", "Get Ready", 960, 100+titleY.AtFrame(f), 48).
			Fill("#ffffff").With("opacity", titleAlpha.AtFrame(f)))
	}

	subtitle := func(ctx motion.Context) []display.Element {
		return []display.Element{
			display.Text("subtitle", "Let's build something amazing", 960, float64(ctx.Height)-100, 32).
				Fill("#ffffff").With("opacity", 0.6*subAlpha.AtFrame(ctx.Frame)),
		}
	}

	numbers := b.series("numbers",
		timeline.Seq("3", 30, numberDuration, countdownNumber(b, 3, true)),
		timeline.Seq("2", 0, numberDuration, countdownNumber(b, 2, true)),
		timeline.Seq("1", 0, numberDuration, countdownNumber(b, 1, true)),
		timeline.Seq("go", 0, timeline.Unbounded, goText(b)),
	)

	return layer("CountdownTimer", stage,
		numbers,
		timeline.Seq("subtitle", 150, timeline.Unbounded, subtitle),
	)
}
