package surface

import (
	"math"

	"whiteboard/canvas"
)

// DashPolyline splits a polyline into the "on" runs of an on/off dash pattern. An empty
// pattern returns the input as a single run. The pattern phase carries across vertices.
func DashPolyline(pts []canvas.Point, pattern []float64) [][]canvas.Point {
	if len(pts) < 2 {
		return nil
	}
	total := 0.0
	for _, d := range pattern {
		if d < 0 {
			return [][]canvas.Point{pts}
		}
		total += d
	}
	if len(pattern) == 0 || total == 0 {
		return [][]canvas.Point{pts}
	}

	var (
		runs [][]canvas.Point
		cur  = []canvas.Point{pts[0]}
		idx  int
		left = pattern[0]
		on   = true
	)

	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := a.Dist(b)
		pos := 0.0
		for seg-pos > left {
			pos += left
			p := lerp(a, b, pos/seg)
			if on {
				cur = append(cur, p)
				runs = append(runs, cur)
				cur = nil
			} else {
				cur = []canvas.Point{p}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			left = pattern[idx]
		}
		left -= seg - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) >= 2 {
		runs = append(runs, cur)
	}
	return runs
}

// EllipsePolyline samples a closed ellipse outline. The first and last points coincide.
func EllipsePolyline(c canvas.Point, rx, ry float64, segments int) []canvas.Point {
	if segments < 3 {
		segments = 3
	}
	pts := make([]canvas.Point, 0, segments+1)
	for i := 0; i <= segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		pts = append(pts, canvas.Point{X: c.X + rx*math.Cos(a), Y: c.Y + ry*math.Sin(a)})
	}
	return pts
}

// EllipseSegments picks a sample count that keeps chords a few pixels long.
func EllipseSegments(rx, ry float64) int {
	n := int(math.Ceil(math.Max(math.Abs(rx), math.Abs(ry)) * math.Pi / 3))
	return max(16, min(n, 256))
}

// RectPolyline returns the closed outline of r starting at its top-left corner.
func RectPolyline(r canvas.Rect) []canvas.Point {
	return []canvas.Point{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
		r.Min,
	}
}

func lerp(a, b canvas.Point, t float64) canvas.Point {
	return canvas.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
