package board

import "whiteboard/canvas"

const selectionPadding = 5.0

var selectionDash = []float64{5, 5}

// Layer paints beneath the shapes, e.g. a background grid.
type Layer func(s canvas.Surface, v *canvas.ViewState)

// Render clears s and repaints every shape in z-order through v. It reads the board
// only, so calling it twice produces the same output.
func (b *Board) Render(s canvas.Surface, v *canvas.ViewState, underlays ...Layer) {
	s.Clear()
	for _, l := range underlays {
		if l != nil {
			l(s, v)
		}
	}
	for _, sh := range b.shapes {
		drawShape(s, v, sh)
		if sh.Base().Selected {
			drawSelection(s, v, sh)
		}
	}
}

func drawShape(s canvas.Surface, v *canvas.ViewState, sh Shape) {
	st := sh.Base().Style
	s.SetStroke(st.Color, st.Width*v.Scale)

	switch sh := sh.(type) {
	case *Freehand:
		if len(sh.Path) < 2 {
			return
		}
		s.Polyline(toScreen(v, sh.Path))
	case *Rectangle:
		s.StrokeRect(screenBox(v, &sh.Span))
	case *Ellipse:
		r := screenBox(v, &sh.Span)
		s.StrokeEllipse(r.Center(), r.Dx()/2, r.Dy()/2)
	case *Line:
		s.Polyline([]canvas.Point{v.ToScreen(sh.From), v.ToScreen(sh.To)})
	case *Triangle:
		vs := sh.Vertices()
		s.Polyline(closed(toScreen(v, vs[:])))
	case *Text:
		if sh.Body == "" {
			return
		}
		s.Text(sh.Body, v.ToScreen(sh.At), sh.FontSize()*v.Scale)
	}
}

// drawSelection outlines sh with a dashed highlight padded in screen pixels.
func drawSelection(s canvas.Surface, v *canvas.ViewState, sh Shape) {
	s.Save()
	defer s.Restore()
	s.SetStroke(Highlight, 1)
	s.SetDash(selectionDash)

	const pad = selectionPadding
	switch sh := sh.(type) {
	case *Line:
		s.Polyline([]canvas.Point{v.ToScreen(sh.From), v.ToScreen(sh.To)})
	case *Rectangle:
		s.StrokeRect(screenBox(v, &sh.Span).Inset(-pad))
	case *Ellipse:
		r := screenBox(v, &sh.Span)
		s.StrokeEllipse(r.Center(), r.Dx()/2+pad, r.Dy()/2+pad)
	case *Triangle:
		vs := sh.Vertices()
		apex, base, mirror := v.ToScreen(vs[0]), v.ToScreen(vs[1]), v.ToScreen(vs[2])
		s.Polyline(closed([]canvas.Point{
			{X: apex.X, Y: apex.Y - pad},
			{X: base.X + pad, Y: base.Y + pad},
			{X: mirror.X - pad, Y: mirror.Y + pad},
		}))
	case *Text:
		size := sh.FontSize() * v.Scale
		at := v.ToScreen(sh.At)
		w := s.MeasureText(sh.Body, size)
		s.StrokeRect(canvas.Rect{
			Min: canvas.Point{X: at.X - pad, Y: at.Y - size - pad},
			Max: canvas.Point{X: at.X + w + pad, Y: at.Y + pad},
		})
	case *Freehand:
		r, ok := canvas.BoundsOf(toScreen(v, sh.Path))
		if !ok {
			return
		}
		s.StrokeRect(r.Inset(-pad))
	}
}

func screenBox(v *canvas.ViewState, sp *Span) canvas.Rect {
	return canvas.RectFromCorners(v.ToScreen(sp.From), v.ToScreen(sp.To))
}

func toScreen(v *canvas.ViewState, pts []canvas.Point) []canvas.Point {
	out := make([]canvas.Point, len(pts))
	for i, p := range pts {
		out[i] = v.ToScreen(p)
	}
	return out
}

func closed(pts []canvas.Point) []canvas.Point {
	if len(pts) == 0 {
		return pts
	}
	return append(pts, pts[0])
}
