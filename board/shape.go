package board

import (
	"image/color"
	"math"

	"whiteboard/canvas"
)

type Kind int

const (
	KindFreehand Kind = iota
	KindRectangle
	KindEllipse
	KindLine
	KindTriangle
	KindText
)

var kindNames = [...]string{
	KindFreehand:  "freehand",
	KindRectangle: "rectangle",
	KindEllipse:   "ellipse",
	KindLine:      "line",
	KindTriangle:  "triangle",
	KindText:      "text",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// Spanned reports whether shapes of kind k are defined by two corner points.
func (k Kind) Spanned() bool {
	switch k {
	case KindRectangle, KindEllipse, KindLine, KindTriangle:
		return true
	}
	return false
}

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// Style is the stroke applied to a shape. Width is in world units; text uses twice the
// width as its font size.
type Style struct {
	Color color.RGBA
	Width float64
}

// Attrs are the fields every shape carries.
type Attrs struct {
	ID       string
	Style    Style
	Selected bool
}

// Base gives access to the common attributes of any Shape.
func (a *Attrs) Base() *Attrs { return a }

func (*Attrs) sealed() {}

// Shape is one entry in a Board. The set of implementations is closed: *Freehand,
// *Rectangle, *Ellipse, *Line, *Triangle and *Text.
type Shape interface {
	Kind() Kind
	Base() *Attrs
	// Anchor is the first recorded point; hit testing uses it.
	Anchor() canvas.Point
	// Points returns a copy of the geometry in recording order.
	Points() []canvas.Point
	Bounds() canvas.Rect
	Translate(dx, dy float64)

	clone() Shape
	sealed()
}

// Freehand is a pen or eraser stroke.
type Freehand struct {
	Attrs
	Path []canvas.Point
}

func (f *Freehand) Kind() Kind { return KindFreehand }

func (f *Freehand) Anchor() canvas.Point {
	if len(f.Path) == 0 {
		return canvas.Point{}
	}
	return f.Path[0]
}

func (f *Freehand) Points() []canvas.Point {
	return append([]canvas.Point(nil), f.Path...)
}

func (f *Freehand) Bounds() canvas.Rect {
	r, _ := canvas.BoundsOf(f.Path)
	return r
}

func (f *Freehand) Translate(dx, dy float64) {
	for i := range f.Path {
		f.Path[i].X += dx
		f.Path[i].Y += dy
	}
}

func (f *Freehand) clone() Shape {
	c := *f
	c.Path = f.Points()
	return &c
}

// Span is the two-corner geometry of rectangles, ellipses, lines and triangles.
type Span struct {
	From, To canvas.Point
}

func (s *Span) Anchor() canvas.Point { return s.From }

func (s *Span) Points() []canvas.Point {
	return []canvas.Point{s.From, s.To}
}

func (s *Span) Translate(dx, dy float64) {
	s.From.X += dx
	s.From.Y += dy
	s.To.X += dx
	s.To.Y += dy
}

// Box returns the normalised rectangle between the corners.
func (s *Span) Box() canvas.Rect {
	return canvas.RectFromCorners(s.From, s.To)
}

// Degenerate reports whether the corners are closer than limit on both axes.
func (s *Span) Degenerate(limit float64) bool {
	return math.Abs(s.To.X-s.From.X) < limit && math.Abs(s.To.Y-s.From.Y) < limit
}

type Rectangle struct {
	Attrs
	Span
}

func (r *Rectangle) Kind() Kind          { return KindRectangle }
func (r *Rectangle) Bounds() canvas.Rect { return r.Box() }
func (r *Rectangle) clone() Shape        { c := *r; return &c }

type Ellipse struct {
	Attrs
	Span
}

func (e *Ellipse) Kind() Kind          { return KindEllipse }
func (e *Ellipse) Bounds() canvas.Rect { return e.Box() }
func (e *Ellipse) clone() Shape        { c := *e; return &c }

type Line struct {
	Attrs
	Span
}

func (l *Line) Kind() Kind          { return KindLine }
func (l *Line) Bounds() canvas.Rect { return l.Box() }
func (l *Line) clone() Shape        { c := *l; return &c }

// Triangle is isosceles: From is the apex and the base runs through To, mirrored about
// the apex's x.
type Triangle struct {
	Attrs
	Span
}

func (t *Triangle) Kind() Kind   { return KindTriangle }
func (t *Triangle) clone() Shape { c := *t; return &c }

// Vertices returns apex, base corner at To, and the mirrored base corner.
func (t *Triangle) Vertices() [3]canvas.Point {
	return [3]canvas.Point{
		t.From,
		t.To,
		{X: 2*t.From.X - t.To.X, Y: t.To.Y},
	}
}

func (t *Triangle) Bounds() canvas.Rect {
	v := t.Vertices()
	r, _ := canvas.BoundsOf(v[:])
	return r
}

// Text is a single line anchored at its baseline start.
type Text struct {
	Attrs
	At   canvas.Point
	Body string
}

func (t *Text) Kind() Kind             { return KindText }
func (t *Text) Anchor() canvas.Point   { return t.At }
func (t *Text) Points() []canvas.Point { return []canvas.Point{t.At} }
func (t *Text) clone() Shape           { c := *t; return &c }

func (t *Text) Translate(dx, dy float64) {
	t.At.X += dx
	t.At.Y += dy
}

func (t *Text) FontSize() float64 {
	return t.Style.Width * 2
}

// Bounds estimates the text box without a font; renderers measure the real width.
func (t *Text) Bounds() canvas.Rect {
	size := t.FontSize()
	w := float64(len([]rune(t.Body))) * size * 0.6
	return canvas.Rect{
		Min: canvas.Point{X: t.At.X, Y: t.At.Y - size},
		Max: canvas.Point{X: t.At.X + w, Y: t.At.Y + size*0.25},
	}
}
