// Package board is the ordered drawing list behind the whiteboard. Insertion order is
// z-order: later shapes paint over earlier ones.
package board

import (
	"strings"

	"github.com/google/uuid"

	"whiteboard/canvas"
)

const (
	// MinSpan is the size below which a two-corner shape is discarded on StopDrawing.
	MinSpan = 5.0
	// HitRadius is the default hit-test distance from a shape's anchor.
	HitRadius = 20.0
)

// TextRequest asks the caller to collect text for a new Text shape at At.
type TextRequest struct {
	At    canvas.Point
	Style Style
}

// Board owns the drawing list and at most one in-progress shape.
type Board struct {
	shapes []Shape
	active string

	newID func() string
}

func New() *Board {
	return &Board{newID: NewID}
}

// NewID returns a time-ordered unique id.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// StartDrawing begins a shape of the given kind at p and returns its id. For KindText
// nothing is appended and a TextRequest is returned instead. Unknown kinds do nothing.
func (b *Board) StartDrawing(kind Kind, p canvas.Point, style Style) (string, *TextRequest) {
	var s Shape
	switch kind {
	case KindFreehand:
		s = &Freehand{Path: []canvas.Point{p}}
	case KindRectangle:
		s = &Rectangle{Span: Span{From: p, To: p}}
	case KindEllipse:
		s = &Ellipse{Span: Span{From: p, To: p}}
	case KindLine:
		s = &Line{Span: Span{From: p, To: p}}
	case KindTriangle:
		s = &Triangle{Span: Span{From: p, To: p}}
	case KindText:
		return "", &TextRequest{At: p, Style: style}
	default:
		return "", nil
	}

	a := s.Base()
	a.ID = b.nextID()
	a.Style = style
	b.shapes = append(b.shapes, s)
	b.active = a.ID
	return a.ID, nil
}

// UpdateDrawing extends the in-progress shape. Ids other than the in-progress one are
// ignored.
func (b *Board) UpdateDrawing(id string, p canvas.Point) {
	s := b.inProgress(id)
	if s == nil {
		return
	}
	switch s := s.(type) {
	case *Freehand:
		s.Path = append(s.Path, p)
	case *Rectangle:
		s.To = p
	case *Ellipse:
		s.To = p
	case *Line:
		s.To = p
	case *Triangle:
		s.To = p
	}
}

// StopDrawing freezes the in-progress shape. Two-corner shapes smaller than MinSpan on
// both axes are dropped.
func (b *Board) StopDrawing(id string) {
	s := b.inProgress(id)
	if s == nil {
		return
	}
	b.active = ""

	if sp := spanOf(s); sp != nil && sp.Degenerate(MinSpan) {
		b.remove(id)
	}
}

// Drawing returns the in-progress shape id, or "".
func (b *Board) Drawing() string {
	return b.active
}

// AddText appends a Text shape and returns its id. Blank text is ignored.
func (b *Board) AddText(p canvas.Point, text string, style Style) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	t := &Text{At: p, Body: text}
	t.ID = b.nextID()
	t.Style = style
	b.shapes = append(b.shapes, t)
	return t.ID
}

// Add appends a finished shape, assigning an id when it has none.
func (b *Board) Add(s Shape) string {
	if s == nil {
		return ""
	}
	a := s.Base()
	if a.ID == "" {
		a.ID = b.nextID()
	}
	b.shapes = append(b.shapes, s)
	return a.ID
}

// Replace swaps the whole list, dropping any in-progress handle.
func (b *Board) Replace(shapes []Shape) {
	b.shapes = b.shapes[:0]
	b.active = ""
	for _, s := range shapes {
		b.Add(s)
	}
}

func (b *Board) Clear() {
	b.shapes = nil
	b.active = ""
}

// Undo removes the most recent shape.
func (b *Board) Undo() {
	n := len(b.shapes)
	if n == 0 {
		return
	}
	if b.shapes[n-1].Base().ID == b.active {
		b.active = ""
	}
	b.shapes[n-1] = nil
	b.shapes = b.shapes[:n-1]
}

// Shapes returns the list in z-order. The slice is a copy; the shapes are not.
func (b *Board) Shapes() []Shape {
	return append([]Shape(nil), b.shapes...)
}

func (b *Board) Len() int {
	return len(b.shapes)
}

func (b *Board) Find(id string) Shape {
	if i := b.index(id); i >= 0 {
		return b.shapes[i]
	}
	return nil
}

// Bounds returns the world rectangle covering every shape. ok is false when empty.
func (b *Board) Bounds() (r canvas.Rect, ok bool) {
	for _, s := range b.shapes {
		sb := s.Bounds()
		if !ok {
			r, ok = sb, true
			continue
		}
		r = r.Union(sb)
	}
	return r, ok
}

// Clone deep-copies the list.
func (b *Board) Clone() *Board {
	c := &Board{active: b.active, newID: b.newID, shapes: make([]Shape, len(b.shapes))}
	for i, s := range b.shapes {
		c.shapes[i] = s.clone()
	}
	return c
}

// CloneShape deep-copies s, keeping its id.
func CloneShape(s Shape) Shape {
	if s == nil {
		return nil
	}
	return s.clone()
}

func (b *Board) nextID() string {
	if b.newID == nil {
		b.newID = NewID
	}
	return b.newID()
}

func (b *Board) index(id string) int {
	if id == "" {
		return -1
	}
	for i := len(b.shapes) - 1; i >= 0; i-- {
		if b.shapes[i].Base().ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) inProgress(id string) Shape {
	if id == "" || id != b.active {
		return nil
	}
	return b.Find(id)
}

func (b *Board) remove(id string) {
	i := b.index(id)
	if i < 0 {
		return
	}
	b.shapes = append(b.shapes[:i], b.shapes[i+1:]...)
}

func spanOf(s Shape) *Span {
	switch s := s.(type) {
	case *Rectangle:
		return &s.Span
	case *Ellipse:
		return &s.Span
	case *Line:
		return &s.Span
	case *Triangle:
		return &s.Span
	}
	return nil
}
