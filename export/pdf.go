// Package export renders boards to PDF.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"whiteboard/board"
	"whiteboard/canvas"
)

// Margin is the blank border around the drawing, in points.
const Margin = 20.0

type pdfState struct {
	stroke color.Color
	width  float64
	dash   []float64
}

// Surface is a canvas.Surface over a single gofpdf page. Units are points.
type Surface struct {
	pdf        *gofpdf.Fpdf
	w, h       float64
	background color.Color
	tr         func(string) string

	state pdfState
	stack []pdfState
}

var _ canvas.Surface = (*Surface)(nil)

// NewSurface starts a document with one w x h page.
func NewSurface(w, h float64, background color.Color) *Surface {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)

	s := &Surface{
		pdf:        pdf,
		w:          w,
		h:          h,
		background: background,
		tr:         pdf.UnicodeTranslatorFromDescriptor(""),
	}
	s.SetStroke(color.Black, 1)
	return s
}

func (s *Surface) Size() (float64, float64) { return s.w, s.h }

func (s *Surface) Clear() {
	r, g, b := rgb(s.background)
	s.pdf.SetFillColor(r, g, b)
	s.pdf.Rect(0, 0, s.w, s.h, "F")
}

func (s *Surface) SetStroke(c color.Color, width float64) {
	s.state.stroke = c
	s.state.width = width
	r, g, b := rgb(c)
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetTextColor(r, g, b)
	s.pdf.SetLineWidth(width)
}

func (s *Surface) SetDash(pattern []float64) {
	s.state.dash = append([]float64(nil), pattern...)
	s.pdf.SetDashPattern(s.state.dash, 0)
}

func (s *Surface) Polyline(pts []canvas.Point) {
	if len(pts) < 2 {
		return
	}
	s.pdf.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.pdf.LineTo(p.X, p.Y)
	}
	s.pdf.DrawPath("D")
}

func (s *Surface) StrokeRect(r canvas.Rect) {
	s.pdf.Rect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), "D")
}

func (s *Surface) StrokeEllipse(c canvas.Point, rx, ry float64) {
	s.pdf.Ellipse(c.X, c.Y, rx, ry, 0, "D")
}

func (s *Surface) Text(str string, at canvas.Point, size float64) {
	if size <= 0 {
		return
	}
	s.pdf.SetFontSize(size)
	s.pdf.Text(at.X, at.Y, s.tr(str))
}

func (s *Surface) MeasureText(str string, size float64) float64 {
	if size <= 0 {
		return 0
	}
	s.pdf.SetFontSize(size)
	return s.pdf.GetStringWidth(s.tr(str))
}

func (s *Surface) Save() {
	s.stack = append(s.stack, s.state)
}

func (s *Surface) Restore() {
	n := len(s.stack)
	if n == 0 {
		return
	}
	st := s.stack[n-1]
	s.stack = s.stack[:n-1]
	s.SetStroke(st.stroke, st.width)
	s.SetDash(st.dash)
}

// Output finishes the document and writes it to w.
func (s *Surface) Output(w io.Writer) error {
	return s.pdf.Output(w)
}

// Write renders b onto a page sized to its drawing and writes the PDF to w. Selection
// highlights are left out.
func Write(w io.Writer, b *board.Board, background color.Color) error {
	snapshot := b.Clone()
	snapshot.ClearSelection()

	bounds, ok := snapshot.Bounds()
	if !ok {
		bounds = canvas.Rect{Max: canvas.Point{X: 200, Y: 200}}
	}
	pad := Margin + maxWidth(snapshot)
	view := &canvas.ViewState{X: bounds.Min.X - pad, Y: bounds.Min.Y - pad, Scale: 1}

	s := NewSurface(bounds.Dx()+2*pad, bounds.Dy()+2*pad, background)
	snapshot.Render(s, view)
	if err := s.Output(w); err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return nil
}

// PDF writes b to path.
func PDF(b *board.Board, path string, background color.Color) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export pdf: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	if err := Write(f, b, background); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func maxWidth(b *board.Board) float64 {
	w := 0.0
	for _, s := range b.Shapes() {
		w = max(w, s.Base().Style.Width)
	}
	return w
}

func rgb(c color.Color) (int, int, int) {
	if c == nil {
		return 0, 0, 0
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return int(rgba.R), int(rgba.G), int(rgba.B)
}
