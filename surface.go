package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"whiteboard/canvas"
	"whiteboard/surface"
)

type strokeState struct {
	color color.Color
	width float64
	dash  []float64
}

// ebitenSurface draws board shapes onto an ebiten image. Shapes are stroked as line
// segments; dashes and ellipses are flattened by the surface package.
type ebitenSurface struct {
	dst        *ebiten.Image
	faces      *faceCache
	background color.Color

	state strokeState
	stack []strokeState
}

var _ canvas.Surface = (*ebitenSurface)(nil)

func newEbitenSurface(faces *faceCache, background color.Color) *ebitenSurface {
	return &ebitenSurface{
		faces:      faces,
		background: background,
		state:      strokeState{color: color.Black, width: 1},
	}
}

// Target points the surface at the frame being drawn.
func (s *ebitenSurface) Target(dst *ebiten.Image) {
	s.dst = dst
	s.stack = s.stack[:0]
}

func (s *ebitenSurface) Size() (float64, float64) {
	b := s.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *ebitenSurface) Clear() {
	s.dst.Fill(s.background)
}

func (s *ebitenSurface) SetStroke(c color.Color, width float64) {
	s.state.color = c
	s.state.width = width
}

func (s *ebitenSurface) SetDash(pattern []float64) {
	s.state.dash = append([]float64(nil), pattern...)
}

func (s *ebitenSurface) Polyline(pts []canvas.Point) {
	if len(pts) < 2 {
		return
	}
	runs := [][]canvas.Point{pts}
	if len(s.state.dash) > 0 {
		runs = surface.DashPolyline(pts, s.state.dash)
	}
	w := float32(max(s.state.width, 1))
	for _, run := range runs {
		for i := 1; i < len(run); i++ {
			a, b := run[i-1], run[i]
			vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), w, s.state.color, true)
		}
		// Round the joints of thick strokes.
		if w > 2 && len(s.state.dash) == 0 {
			for _, p := range run {
				vector.DrawFilledCircle(s.dst, float32(p.X), float32(p.Y), w/2, s.state.color, true)
			}
		}
	}
}

func (s *ebitenSurface) StrokeRect(r canvas.Rect) {
	s.Polyline(surface.RectPolyline(r))
}

func (s *ebitenSurface) StrokeEllipse(c canvas.Point, rx, ry float64) {
	s.Polyline(surface.EllipsePolyline(c, rx, ry, surface.EllipseSegments(rx, ry)))
}

func (s *ebitenSurface) Text(str string, at canvas.Point, size float64) {
	if size <= 0 || str == "" {
		return
	}
	text.Draw(s.dst, str, s.faces.Face(size), int(at.X), int(at.Y), s.state.color)
}

func (s *ebitenSurface) MeasureText(str string, size float64) float64 {
	if size <= 0 {
		return 0
	}
	adv := font.MeasureString(s.faces.Face(size), str)
	return float64(adv) / 64
}

func (s *ebitenSurface) Save() {
	st := s.state
	st.dash = append([]float64(nil), s.state.dash...)
	s.stack = append(s.stack, st)
}

func (s *ebitenSurface) Restore() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	s.state = s.stack[n-1]
	s.stack = s.stack[:n-1]
}
