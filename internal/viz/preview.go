package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/framekit/internal/composition"
	"github.com/san-kum/framekit/internal/timeline"
)

const (
	defaultCanvasWidth  = 64
	defaultCanvasHeight = 18
	sidebarWidth        = 40
	maxTreeRows         = 14
)

// TickMsg advances playback by one frame.
type TickMsg time.Time

// Preview is a bubbletea model that scrubs through a composition. Every
// displayed frame is evaluated directly from the frame number, so jumping
// and stepping backwards cost the same as playing forward.
type Preview struct {
	comp     composition.Composition
	theme    Theme
	styles   styles
	tick     time.Duration
	frame    int
	playing  bool
	showHelp bool
	canvas   *Canvas
	marks    []int
	activity []float64
}

// NewPreview returns a paused preview at frame 0. A non-positive tick
// plays at the composition's own rate.
func NewPreview(comp composition.Composition, theme Theme, tick time.Duration) Preview {
	if tick <= 0 {
		tick = time.Second / time.Duration(max(comp.FPS, 1))
	}
	p := Preview{
		comp:   comp,
		theme:  theme,
		styles: newStyles(theme),
		tick:   tick,
		canvas: NewCanvas(defaultCanvasWidth, defaultCanvasHeight),
	}
	p.marks = sequenceStarts(comp.Root, 0)
	p.activity = make([]float64, comp.DurationFrames)
	for f := range p.activity {
		p.activity[f] = float64(len(comp.Root.Visible(f)))
	}
	return p
}

// sequenceStarts collects the global start frame of every node below n.
func sequenceStarts(n *timeline.Node, offset int) []int {
	seen := map[int]bool{}
	var walk func(n *timeline.Node, offset int)
	walk = func(n *timeline.Node, offset int) {
		for _, c := range n.Children() {
			start := offset + c.From()
			seen[start] = true
			walk(c, start)
		}
	}
	walk(n, offset+n.From())
	out := make([]int, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Ints(out)
	return out
}

func (p Preview) Frame() int { return p.frame }

func (p Preview) Playing() bool { return p.playing }

func (p Preview) Theme() Theme { return p.theme }

func (p Preview) Init() tea.Cmd {
	return p.next()
}

func (p Preview) next() tea.Cmd {
	return tea.Tick(p.tick, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles keys, resizes and playback ticks.
func (p Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return p, tea.Quit
		case " ":
			p.playing = !p.playing
		case "right", "l":
			p.seek(p.frame + 1)
		case "left", "h":
			p.seek(p.frame - 1)
		case "]":
			p.seek(p.frame + p.comp.FPS)
		case "[":
			p.seek(p.frame - p.comp.FPS)
		case "n":
			p.seek(p.nextMark(1))
		case "p":
			p.seek(p.nextMark(-1))
		case "home", "g":
			p.seek(0)
		case "end", "G":
			p.seek(p.comp.DurationFrames - 1)
		case "t":
			p.theme = NextTheme(p.theme)
			p.styles = newStyles(p.theme)
		case "?":
			p.showHelp = !p.showHelp
		}
	case tea.WindowSizeMsg:
		w := msg.Width - sidebarWidth - 4
		h := msg.Height - 6
		if w > 8 && h > 4 {
			p.canvas = NewCanvas(w, h)
		}
	case TickMsg:
		if p.playing {
			p.frame = (p.frame + 1) % p.comp.DurationFrames
		}
		return p, p.next()
	}
	return p, nil
}

// seek clamps frame into the composition.
func (p *Preview) seek(frame int) {
	p.frame = max(0, min(frame, p.comp.DurationFrames-1))
}

func (p Preview) nextMark(dir int) int {
	if dir > 0 {
		for _, m := range p.marks {
			if m > p.frame {
				return m
			}
		}
		return p.comp.DurationFrames - 1
	}
	for i := len(p.marks) - 1; i >= 0; i-- {
		if p.marks[i] < p.frame {
			return p.marks[i]
		}
	}
	return 0
}

func (p Preview) View() string {
	s := p.styles
	frame, err := p.comp.Render(p.frame)
	if err != nil {
		return s.accent.Render(err.Error()) + "\n"
	}

	p.canvas.Clear()
	p.canvas.DrawFrame(frame)
	stage := s.panel.Render(lipgloss.NewStyle().Foreground(p.theme.Secondary).Render(p.canvas.String()))

	var side strings.Builder
	side.WriteString(s.header.Render(GradientText(p.comp.ID, p.theme.Primary, p.theme.Secondary)) + "\n\n")
	status := "PAUSED"
	if p.playing {
		status = "PLAYING"
	}
	side.WriteString(s.accent.Render(status) + "\n\n")
	side.WriteString(s.label.Render("Frame") + s.value.Render(fmt.Sprintf("%d / %d", p.frame, p.comp.DurationFrames-1)) + "\n")
	side.WriteString(s.label.Render("Time") + s.value.Render(fmt.Sprintf("%.2fs", float64(p.frame)/float64(p.comp.FPS))) + "\n")
	side.WriteString(s.label.Render("Elements") + s.value.Render(fmt.Sprint(len(frame.Elements))) + "\n\n")

	side.WriteString(s.muted.Render("ACTIVE SEQUENCES") + "\n")
	rows := 0
	p.comp.Root.Walk(p.frame, func(v timeline.Visit) bool {
		if rows == maxTreeRows {
			return false
		}
		rows++
		name := v.Node.Name()
		if name == "" {
			name = v.Path[strings.LastIndex(v.Path, "/")+1:]
		}
		side.WriteString(fmt.Sprintf("%s%s %s\n", strings.Repeat("  ", v.Depth), name, s.muted.Render(fmt.Sprintf("@%d", v.Local))))
		return true
	})

	if p.showHelp {
		side.WriteString(s.help.Render("\nSPACE play/pause  ←/→ step\n[ ] ±1s  n/p next/prev sequence\ng/G start/end  t theme  q quit"))
	} else {
		side.WriteString(s.help.Render("\n? help"))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, stage, lipgloss.NewStyle().Width(sidebarWidth).Padding(0, 2).Render(side.String()))
	width := p.canvas.Width + 2
	bar := ScrubBar(p.frame, p.comp.DurationFrames, width, p.marks)
	spark := Sparkline(p.activity, width)
	return body + "\n " + s.value.Render(bar) + "\n " + s.muted.Render(spark) + "\n"
}
