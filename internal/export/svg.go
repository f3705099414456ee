package export

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/san-kum/framekit/internal/analysis"
	"github.com/san-kum/framekit/internal/display"
)

const background = "#0a0a0a"

// FrameToSVG draws a display list as an SVG document the size of the
// composition, scaled by scale. Hidden elements are skipped.
func FrameToSVG(frame display.Frame, scale float64) string {
	if scale <= 0 {
		scale = 1
	}
	w := float64(frame.Width) * scale
	h := float64(frame.Height) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, frame.Width, frame.Height, background)

	for _, e := range frame.Elements {
		if e.Hidden() {
			continue
		}
		writeElement(&sb, e)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func writeElement(sb *strings.Builder, e display.Element) {
	x, _ := e.Prop("x")
	y, _ := e.Prop("y")
	fill := e.Color
	if fill == "" {
		fill = "#ffffff"
	}
	attrs := fmt.Sprintf(`id="%s" opacity="%s"%s`, html.EscapeString(e.ID), num(opacity(e)), transform(e, x, y))

	switch e.Kind {
	case display.KindRect:
		rw, _ := e.Prop("width")
		rh, _ := e.Prop("height")
		fmt.Fprintf(sb, `<rect %s x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			attrs, num(x), num(y), num(math.Max(rw, 0)), num(math.Max(rh, 0)), fill)
	case display.KindCircle:
		r, _ := e.Prop("radius")
		fmt.Fprintf(sb, `<circle %s cx="%s" cy="%s" r="%s" fill="%s"/>`+"\n",
			attrs, num(x), num(y), num(math.Max(r, 0)), fill)
	case display.KindLine:
		x2, _ := e.Prop("x2")
		y2, _ := e.Prop("y2")
		fmt.Fprintf(sb, `<line %s x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="2"/>`+"\n",
			attrs, num(x), num(y), num(x2), num(y2), fill)
	case display.KindText:
		size, _ := e.Prop("size")
		fmt.Fprintf(sb, `<text %s x="%s" y="%s" font-size="%s" text-anchor="middle" fill="%s">%s</text>`+"\n",
			attrs, num(x), num(y), num(size), fill, html.EscapeString(e.Text))
	}
}

func opacity(e display.Element) float64 {
	op, ok := e.Prop("opacity")
	if !ok {
		return 1
	}
	return math.Min(op, 1)
}

// transform applies scale and rotation (degrees) about the element origin.
func transform(e display.Element, x, y float64) string {
	s, hasScale := e.Prop("scale")
	r, hasRot := e.Prop("rotation")
	if (!hasScale || s == 1) && (!hasRot || r == 0) {
		return ""
	}
	var parts []string
	parts = append(parts, fmt.Sprintf("translate(%s %s)", num(x), num(y)))
	if hasRot && r != 0 {
		parts = append(parts, fmt.Sprintf("rotate(%s)", num(r)))
	}
	if hasScale && s != 1 {
		parts = append(parts, fmt.Sprintf("scale(%s)", num(s)))
	}
	parts = append(parts, fmt.Sprintf("translate(%s %s)", num(-x), num(-y)))
	return fmt.Sprintf(` transform="%s"`, strings.Join(parts, " "))
}

func num(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// CurveToSVG plots samples against their index, for eased tracks and
// spring responses.
func CurveToSVG(samples []float64, width, height int, strokeColor string) string {
	points := make([]analysis.Point, len(samples))
	for i, v := range samples {
		points[i] = analysis.Point{X: float64(i), Y: v}
	}
	return PathToSVG(points, width, height, strokeColor)
}

// PathToSVG creates an SVG polyline from points, fitted to the canvas
// with 10% padding.
func PathToSVG(points []analysis.Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i > 0 {
			sb.WriteString(" L")
		}
		fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
