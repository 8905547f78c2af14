// Package surface holds canvas.Surface helpers that do not depend on a window:
// a recording surface and the geometry raster backends share.
package surface

import (
	"fmt"
	"image/color"
	"strings"

	"whiteboard/canvas"
)

// Recorder is a canvas.Surface that logs every call as a line of text.
type Recorder struct {
	W, H float64

	ops   []string
	stack []string
	state string
}

var _ canvas.Surface = (*Recorder)(nil)

func NewRecorder(w, h float64) *Recorder {
	return &Recorder{W: w, H: h}
}

func (r *Recorder) Size() (float64, float64) { return r.W, r.H }

func (r *Recorder) Clear() {
	r.record("clear")
}

func (r *Recorder) SetStroke(c color.Color, width float64) {
	r.record("stroke %s %s", hex(c), num(width))
}

func (r *Recorder) SetDash(pattern []float64) {
	if len(pattern) == 0 {
		r.record("dash none")
		return
	}
	parts := make([]string, len(pattern))
	for i, d := range pattern {
		parts[i] = num(d)
	}
	r.record("dash %s", strings.Join(parts, ","))
}

func (r *Recorder) Polyline(pts []canvas.Point) {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = pt(p)
	}
	r.record("polyline %s", strings.Join(parts, " "))
}

func (r *Recorder) StrokeRect(rc canvas.Rect) {
	r.record("rect %s %s", pt(rc.Min), pt(rc.Max))
}

func (r *Recorder) StrokeEllipse(c canvas.Point, rx, ry float64) {
	r.record("ellipse %s %s %s", pt(c), num(rx), num(ry))
}

func (r *Recorder) Text(s string, at canvas.Point, size float64) {
	r.record("text %q %s %s", s, pt(at), num(size))
}

// MeasureText approximates glyphs as half an em wide.
func (r *Recorder) MeasureText(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.5
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.state)
	r.record("save")
}

func (r *Recorder) Restore() {
	if n := len(r.stack); n > 0 {
		r.state = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
	r.record("restore")
}

// Ops returns a copy of the recorded calls.
func (r *Recorder) Ops() []string {
	return append([]string(nil), r.ops...)
}

// Count returns how many recorded calls start with prefix.
func (r *Recorder) Count(prefix string) int {
	n := 0
	for _, op := range r.ops {
		if strings.HasPrefix(op, prefix) {
			n++
		}
	}
	return n
}

// Depth is the number of unmatched Save calls.
func (r *Recorder) Depth() int {
	return len(r.stack)
}

func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
	r.stack = r.stack[:0]
	r.state = ""
}

func (r *Recorder) record(format string, args ...any) {
	op := fmt.Sprintf(format, args...)
	if strings.HasPrefix(op, "stroke ") || strings.HasPrefix(op, "dash ") {
		r.state = op
	}
	r.ops = append(r.ops, op)
}

func hex(c color.Color) string {
	if c == nil {
		return "none"
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

func num(f float64) string {
	return fmt.Sprintf("%.4g", f)
}

func pt(p canvas.Point) string {
	return num(p.X) + "," + num(p.Y)
}
