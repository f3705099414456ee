package viz

import (
	"strings"

	"github.com/san-kum/framekit/internal/display"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const blank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille dot grid: Width x Height cells, each holding 2x4
// sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in sub-pixels.
func (c *Canvas) Dots() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Set turns on the sub-pixel at (x, y). Out of range points are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// IsSet reports whether the sub-pixel at (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return false
	}
	return c.Grid[y/4][x/2]&pixelMap[y%4][x%2] != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawRect outlines the rectangle with corners (x0, y0) and (x1, y1).
func (c *Canvas) DrawRect(x0, y0, x1, y1 int) {
	c.DrawLine(x0, y0, x1, y0)
	c.DrawLine(x1, y0, x1, y1)
	c.DrawLine(x1, y1, x0, y1)
	c.DrawLine(x0, y1, x0, y0)
}

// DrawCircle outlines a circle with the midpoint algorithm.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r <= 0 {
		c.Set(cx, cy)
		return
	}
	x, y, d := r, 0, 1-r
	for x >= y {
		for _, p := range [8][2]int{
			{x, y}, {y, x}, {-y, x}, {-x, y},
			{-x, -y}, {-y, -x}, {y, -x}, {x, -y},
		} {
			c.Set(cx+p[0], cy+p[1])
		}
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// DrawFrame plots the outline of every visible element of f, scaled
// from composition pixels to the canvas. Text is drawn as a baseline
// spanning its approximate advance width.
func (c *Canvas) DrawFrame(f display.Frame) {
	if f.Width <= 0 || f.Height <= 0 {
		return
	}
	dw, dh := c.Dots()
	sx := float64(dw) / float64(f.Width)
	sy := float64(dh) / float64(f.Height)
	px := func(v float64) int { return int(v * sx) }
	py := func(v float64) int { return int(v * sy) }

	for _, e := range f.Elements {
		if e.Hidden() {
			continue
		}
		x, _ := e.Prop("x")
		y, _ := e.Prop("y")
		scale := 1.0
		if s, ok := e.Prop("scale"); ok {
			scale = s
		}

		switch e.Kind {
		case display.KindRect:
			w, _ := e.Prop("width")
			h, _ := e.Prop("height")
			c.DrawRect(px(x), py(y), px(x+w*scale), py(y+h*scale))
		case display.KindCircle:
			r, _ := e.Prop("radius")
			c.DrawCircle(px(x), py(y), px(r*scale))
		case display.KindLine:
			x2, _ := e.Prop("x2")
			y2, _ := e.Prop("y2")
			c.DrawLine(px(x), py(y), px(x2), py(y2))
		case display.KindText:
			size, _ := e.Prop("size")
			half := float64(len([]rune(e.Text))) * size * scale * 0.3
			c.DrawLine(px(x-half), py(y), px(x+half), py(y))
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
