package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// styles is the set of lipgloss styles derived from a Theme.
type styles struct {
	header, label, value, muted, accent, help, panel lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header: lipgloss.NewStyle().Bold(true).Foreground(t.Primary).
			BorderStyle(lipgloss.NormalBorder()).BorderBottom(true).BorderForeground(t.Muted),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		value:  lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
		muted:  lipgloss.NewStyle().Foreground(t.Muted),
		accent: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		help:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		panel: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).Foreground(t.Text).Padding(0, 1),
	}
}

// GradientText colors each rune of text along a Lab blend from start to
// end. Unparseable colors fall back to plain text.
func GradientText(text string, start, end lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	a, errA := colorful.Hex(string(start))
	b, errB := colorful.Hex(string(end))
	if errA != nil || errB != nil {
		return text
	}

	var out strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := lipgloss.Color(a.BlendLab(b, t).Clamped().Hex())
		out.WriteString(lipgloss.NewStyle().Foreground(c).Render(string(r)))
	}
	return out.String()
}

// ScrubBar renders the playhead position of frame within total frames as
// a bar of the given width. Marks are frames (sequence starts) shown as
// ticks on the track.
func ScrubBar(frame, total, width int, marks []int) string {
	if width < 1 || total < 1 {
		return ""
	}
	cells := []rune(strings.Repeat("─", width))
	cell := func(f int) int {
		c := f * width / total
		if c >= width {
			c = width - 1
		}
		if c < 0 {
			c = 0
		}
		return c
	}
	for _, m := range marks {
		if m > 0 && m < total {
			cells[cell(m)] = '┬'
		}
	}
	cells[cell(frame)] = '●'
	return string(cells)
}

// Sparkline renders values as block characters, resampled to width.
func Sparkline(values []float64, width int) string {
	if width < 1 {
		return ""
	}
	if len(values) == 0 {
		return strings.Repeat("▁", width)
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var out strings.Builder
	for i := 0; i < width; i++ {
		v := values[i*len(values)/width]
		idx := int((v - lo) / rng * float64(len(chars)-1))
		out.WriteRune(chars[max(0, min(idx, len(chars)-1))])
	}
	return out.String()
}
