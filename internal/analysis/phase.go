package analysis

import (
	"strings"
)

// Point is one (value, velocity) sample.
type Point struct {
	X, Y float64
}

// Portrait holds the phase-space trajectory of a sampled curve: value on
// X, per-frame change on Y.
type Portrait struct {
	Points []Point
}

// NewPortrait differentiates samples with a central difference; the end
// points use one-sided differences.
func NewPortrait(samples []float64) *Portrait {
	n := len(samples)
	p := &Portrait{Points: make([]Point, 0, n)}
	if n < 2 {
		return p
	}
	for i, v := range samples {
		var d float64
		switch i {
		case 0:
			d = samples[1] - samples[0]
		case n - 1:
			d = samples[n-1] - samples[n-2]
		default:
			d = (samples[i+1] - samples[i-1]) / 2
		}
		p.Points = append(p.Points, Point{X: v, Y: d})
	}
	return p
}

// ASCII plots the portrait on a width×height character grid, with axes
// where they cross the visible range.
func (portrait *Portrait) ASCII(width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
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
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
