package canvas

import "image/color"

// Surface is an immediate-mode 2D target. All coordinates are screen pixels.
type Surface interface {
	Size() (w, h float64)
	Clear()

	SetStroke(c color.Color, width float64)
	// SetDash sets an on/off dash pattern; nil restores solid strokes.
	SetDash(pattern []float64)

	Polyline(pts []Point)
	StrokeRect(r Rect)
	StrokeEllipse(center Point, rx, ry float64)
	// Text draws s with its baseline starting at at.
	Text(s string, at Point, size float64)
	MeasureText(s string, size float64) float64

	Save()
	Restore()
}
