package canvas

import (
	"image/color"
	"math"
)

// minGridPixels is the closest two grid lines may be on screen before the grid is
// thinned by doubling its spacing.
const minGridPixels = 8

// DrawGrid renders the infinite world grid for the visible area of s plus a cross at the
// world origin. It returns the number of grid lines drawn.
func DrawGrid(s Surface, v *ViewState, spacing float64, gridColor, originCross color.Color) int {
	if spacing <= 0 || v.Scale <= 0 {
		return 0
	}
	for spacing*v.Scale < minGridPixels {
		spacing *= 2
	}

	w, h := s.Size()
	area := v.Visible(w, h)

	s.Save()
	defer s.Restore()
	s.SetStroke(gridColor, 1)

	lines := 0
	for wx := math.Ceil(area.Min.X/spacing) * spacing; wx <= area.Max.X; wx += spacing {
		sx := v.ToScreen(Point{X: wx}).X
		s.Polyline([]Point{{X: sx, Y: 0}, {X: sx, Y: h}})
		lines++
	}
	for wy := math.Ceil(area.Min.Y/spacing) * spacing; wy <= area.Max.Y; wy += spacing {
		sy := v.ToScreen(Point{Y: wy}).Y
		s.Polyline([]Point{{X: 0, Y: sy}, {X: w, Y: sy}})
		lines++
	}

	o := v.ToScreen(Point{})
	s.SetStroke(originCross, 2)
	s.Polyline([]Point{{X: o.X - 15, Y: o.Y}, {X: o.X + 15, Y: o.Y}})
	s.Polyline([]Point{{X: o.X, Y: o.Y - 15}, {X: o.X, Y: o.Y + 15}})

	return lines
}
