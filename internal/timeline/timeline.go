// Package timeline implements nested frame windows.
//
// A Node shifts the frame its subtree sees by its start offset and hides
// the subtree outside [start, start+duration). Offsets compose additively
// down the tree, so a leaf at depth k sees the global frame minus the sum
// of its ancestors' starts. Nodes are built once from a Spec and never
// change; evaluating a different frame only changes the inputs.
package timeline

import (
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/framekit/internal/display"
	"github.com/san-kum/framekit/internal/motion"
)

// Unbounded as a Duration keeps a node visible for every frame at or
// after its start.
const Unbounded = 0

// DrawFunc produces the elements of one node for a node-local frame. It
// must depend only on ctx.
type DrawFunc func(ctx motion.Context) []display.Element

// Spec is the declarative, mutable description of a node tree.
type Spec struct {
	Name     string
	From     int
	Duration int
	Draw     DrawFunc
	Children []Spec
}

// Seq is shorthand for a Spec literal.
func Seq(name string, from, duration int, draw DrawFunc, children ...Spec) Spec {
	return Spec{Name: name, From: from, Duration: duration, Draw: draw, Children: children}
}

// Node is an immutable timeline window.
type Node struct {
	name     string
	from     int
	duration int
	draw     DrawFunc
	children []*Node
}

// Build validates spec and every descendant and returns the frozen tree.
// An unnamed root is called "root".
func Build(spec Spec) (*Node, error) {
	if spec.Name == "" {
		spec.Name = "root"
	}
	return build(spec, "")
}

func build(spec Spec, parent string) (*Node, error) {
	path := join(parent, spec.Name, 0)
	if spec.From < 0 {
		return nil, motion.Configf("timeline", path+".from", "must not be negative, got %d", spec.From)
	}
	if spec.Duration < 0 {
		return nil, motion.Configf("timeline", path+".duration", "must be positive or unbounded, got %d", spec.Duration)
	}

	n := &Node{
		name:     spec.Name,
		from:     spec.From,
		duration: spec.Duration,
		draw:     spec.Draw,
		children: make([]*Node, 0, len(spec.Children)),
	}
	for i, cs := range spec.Children {
		if cs.Name == "" {
			cs.Name = strconv.Itoa(i)
		}
		child, err := build(cs, path)
		if err != nil {
			return nil, err
		}
		n.children = append(n.children, child)
	}
	return n, nil
}

func join(parent, name string, index int) string {
	if name == "" {
		name = strconv.Itoa(index)
	}
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// Evaluate maps a frame in the parent's coordinates to this node's local
// frame and reports whether the node is visible there.
func (n *Node) Evaluate(frame int) (local int, visible bool) {
	local = frame - n.from
	if local < 0 {
		return local, false
	}
	if n.duration != Unbounded && local >= n.duration {
		return local, false
	}
	return local, true
}

// Visit describes one visible node during a walk.
type Visit struct {
	Node  *Node
	Local int
	Depth int
	Path  string
}

// Walk calls fn for every node visible at frame, parents before children,
// siblings in order. Invisible subtrees are skipped entirely. Returning
// false from fn skips the node's children.
func (n *Node) Walk(frame int, fn func(Visit) bool) {
	n.walk(frame, 0, "", 0, fn)
}

func (n *Node) walk(frame, depth int, parent string, index int, fn func(Visit) bool) {
	local, ok := n.Evaluate(frame)
	if !ok {
		return
	}
	path := join(parent, n.name, index)
	if !fn(Visit{Node: n, Local: local, Depth: depth, Path: path}) {
		return
	}
	for i, c := range n.children {
		c.walk(local, depth+1, path, i, fn)
	}
}

// Render returns the display list for ctx.Frame, given in this node's
// parent coordinates. Each DrawFunc receives ctx with Frame replaced by
// its node-local frame. Elements without a Path are tagged with the path
// of the node that drew them.
func (n *Node) Render(ctx motion.Context) []display.Element {
	var out []display.Element
	n.Walk(ctx.Frame, func(v Visit) bool {
		if v.Node.draw == nil {
			return true
		}
		for _, e := range v.Node.draw(ctx.At(v.Local)) {
			if e.Path == "" {
				e.Path = v.Path
			}
			out = append(out, e)
		}
		return true
	})
	return out
}

// Visible returns the paths of every node visible at frame.
func (n *Node) Visible(frame int) []string {
	var paths []string
	n.Walk(frame, func(v Visit) bool {
		paths = append(paths, v.Path)
		return true
	})
	return paths
}

func (n *Node) Name() string { return n.name }

func (n *Node) From() int { return n.from }

// Duration returns the window length, or Unbounded.
func (n *Node) Duration() int { return n.duration }

func (n *Node) Bounded() bool { return n.duration != Unbounded }

// End returns the first frame, in parent coordinates, after the window.
// Unbounded nodes return math.MaxInt.
func (n *Node) End() int {
	if !n.Bounded() {
		return math.MaxInt
	}
	return n.from + n.duration
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Size counts the nodes in the tree rooted at n.
func (n *Node) Size() int {
	total := 1
	for _, c := range n.children {
		total += c.Size()
	}
	return total
}

// Describe renders the tree as an indented outline.
func (n *Node) Describe() string {
	var b strings.Builder
	n.describe(&b, 0, 0)
	return b.String()
}

func (n *Node) describe(b *strings.Builder, depth, index int) {
	b.WriteString(strings.Repeat("  ", depth))
	name := n.name
	if name == "" {
		name = strconv.Itoa(index)
	}
	b.WriteString(name)
	b.WriteString(" [")
	b.WriteString(strconv.Itoa(n.from))
	b.WriteString(", ")
	if n.Bounded() {
		b.WriteString(strconv.Itoa(n.End()))
	} else {
		b.WriteString("∞")
	}
	b.WriteString(")\n")
	for i, c := range n.children {
		c.describe(b, depth+1, i)
	}
}
