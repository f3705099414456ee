// Package display defines the display list a composition hands to an
// external renderer: flat, ordered, plain data with no behavior.
package display

import (
	"sort"
)

type Kind string

const (
	KindRect   Kind = "rect"
	KindCircle Kind = "circle"
	KindText   Kind = "text"
	KindLine   Kind = "line"
)

// Element is one drawable. Props holds the animated numeric values
// (x, y, width, height, opacity, scale, rotation, size ...). Path is the
// slash-joined chain of timeline node names that produced the element.
type Element struct {
	ID    string             `json:"id" yaml:"id"`
	Kind  Kind               `json:"kind" yaml:"kind"`
	Path  string             `json:"path,omitempty" yaml:"path,omitempty"`
	Text  string             `json:"text,omitempty" yaml:"text,omitempty"`
	Color string             `json:"color,omitempty" yaml:"color,omitempty"`
	Props map[string]float64 `json:"props" yaml:"props"`
}

func newElement(kind Kind, id string, props map[string]float64) Element {
	return Element{ID: id, Kind: kind, Props: props}
}

func Rect(id string, x, y, w, h float64) Element {
	return newElement(KindRect, id, map[string]float64{"x": x, "y": y, "width": w, "height": h, "opacity": 1})
}

func Circle(id string, x, y, r float64) Element {
	return newElement(KindCircle, id, map[string]float64{"x": x, "y": y, "radius": r, "opacity": 1})
}

func Text(id, text string, x, y, size float64) Element {
	e := newElement(KindText, id, map[string]float64{"x": x, "y": y, "size": size, "opacity": 1})
	e.Text = text
	return e
}

func Line(id string, x1, y1, x2, y2 float64) Element {
	return newElement(KindLine, id, map[string]float64{"x": x1, "y": y1, "x2": x2, "y2": y2, "opacity": 1})
}

// With returns a copy of e with the property set. The original is not
// modified.
func (e Element) With(key string, v float64) Element {
	props := make(map[string]float64, len(e.Props)+1)
	for k, old := range e.Props {
		props[k] = old
	}
	props[key] = v
	e.Props = props
	return e
}

// Fill returns a copy of e with the color set.
func (e Element) Fill(color string) Element {
	e.Color = color
	return e
}

// Prop returns a property value and whether it is set.
func (e Element) Prop(key string) (float64, bool) {
	v, ok := e.Props[key]
	return v, ok
}

// Hidden reports whether the element draws nothing: zero opacity or a
// zero "visible" flag.
func (e Element) Hidden() bool {
	if v, ok := e.Props["visible"]; ok && v == 0 {
		return true
	}
	op, ok := e.Props["opacity"]
	return ok && op <= 0
}

// Keys returns the property names in sorted order.
func (e Element) Keys() []string {
	keys := make([]string, 0, len(e.Props))
	for k := range e.Props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Frame is the display list for one frame of a composition.
type Frame struct {
	Composition string    `json:"composition" yaml:"composition"`
	Index       int       `json:"frame" yaml:"frame"`
	Width       int       `json:"width" yaml:"width"`
	Height      int       `json:"height" yaml:"height"`
	FPS         int       `json:"fps" yaml:"fps"`
	Elements    []Element `json:"elements" yaml:"elements"`
}

// Find returns the first element with the given id.
func (f Frame) Find(id string) (Element, bool) {
	for _, e := range f.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}

// Value returns an element property, or false if either is missing.
func (f Frame) Value(id, key string) (float64, bool) {
	e, ok := f.Find(id)
	if !ok {
		return 0, false
	}
	return e.Prop(key)
}
