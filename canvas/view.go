package canvas

import "math"

const (
	MinScale         = 0.1
	MaxScale         = 10.0
	ZoomSensitivity  = 0.1
	PanSensitivity   = 1.5
	DefaultViewScale = 1.0
)

// ViewState maps world coordinates onto the screen: X/Y is the world point shown at the
// top-left pixel and Scale is the zoom factor.
type ViewState struct {
	X, Y  float64
	Scale float64

	panning bool
	last    Point
}

func NewViewState() *ViewState {
	return &ViewState{Scale: DefaultViewScale}
}

func (v *ViewState) ToScreen(world Point) Point {
	return Point{
		X: (world.X - v.X) * v.Scale,
		Y: (world.Y - v.Y) * v.Scale,
	}
}

func (v *ViewState) ToCanvas(screen Point) Point {
	return Point{
		X: screen.X/v.Scale + v.X,
		Y: screen.Y/v.Scale + v.Y,
	}
}

// Zoom rescales by exp(delta*ZoomSensitivity) keeping the world point under anchor fixed.
// A zoom that would leave [MinScale, MaxScale] is rejected and reported as false.
func (v *ViewState) Zoom(delta float64, anchor Point) bool {
	newScale := v.Scale * math.Exp(delta*ZoomSensitivity)
	if newScale < MinScale || newScale > MaxScale {
		return false
	}

	world := v.ToCanvas(anchor)
	v.X = world.X - anchor.X/newScale
	v.Y = world.Y - anchor.Y/newScale
	v.Scale = newScale
	return true
}

func (v *ViewState) StartPan(screen Point) {
	v.panning = true
	v.last = screen
}

func (v *ViewState) UpdatePan(screen Point) {
	if !v.panning {
		return
	}

	dx := (screen.X - v.last.X) / v.Scale
	dy := (screen.Y - v.last.Y) / v.Scale
	v.X -= dx * PanSensitivity
	v.Y -= dy * PanSensitivity

	v.last = screen
}

func (v *ViewState) StopPan() {
	v.panning = false
}

func (v *ViewState) Panning() bool {
	return v.panning
}

func (v *ViewState) Reset() {
	*v = ViewState{Scale: DefaultViewScale}
}

// Valid reports whether Scale is inside the zoom bounds. A restored view that fails this
// check should be Reset.
func (v *ViewState) Valid() bool {
	return v.Scale >= MinScale && v.Scale <= MaxScale
}

// Visible returns the world rectangle covered by a w x h screen.
func (v *ViewState) Visible(w, h float64) Rect {
	return Rect{Min: v.ToCanvas(Point{}), Max: v.ToCanvas(Point{X: w, Y: h})}
}
