package surface

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"whiteboard/canvas"
)

func TestDashPolylineStraight(t *testing.T) {
	runs := DashPolyline([]canvas.Point{{X: 0, Y: 0}, {X: 20, Y: 0}}, []float64{5, 5})
	require.Len(t, runs, 2)
	require.Equal(t, []canvas.Point{{X: 0, Y: 0}, {X: 5, Y: 0}}, runs[0])
	require.Equal(t, []canvas.Point{{X: 10, Y: 0}, {X: 15, Y: 0}}, runs[1])
}

func TestDashPolylineAcrossCorner(t *testing.T) {
	// The first dash turns the corner at (3,0).
	runs := DashPolyline([]canvas.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 10}}, []float64{5, 5})
	require.Len(t, runs, 2)
	require.Equal(t, []canvas.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 2}}, runs[0])
	require.Equal(t, []canvas.Point{{X: 3, Y: 7}, {X: 3, Y: 10}}, runs[1])
}

func TestDashPolylineSolid(t *testing.T) {
	pts := []canvas.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}
	require.Equal(t, [][]canvas.Point{pts}, DashPolyline(pts, nil))
	require.Nil(t, DashPolyline(pts[:1], []float64{5, 5}))
}

func TestEllipsePolyline(t *testing.T) {
	pts := EllipsePolyline(canvas.Point{X: 10, Y: 10}, 4, 2, 8)
	require.Len(t, pts, 9)
	require.InDelta(t, 14, pts[0].X, 1e-9)
	require.InDelta(t, 10, pts[0].Y, 1e-9)
	require.InDelta(t, pts[0].X, pts[8].X, 1e-9)
	require.InDelta(t, 12, pts[2].Y, 1e-9)

	require.Equal(t, 16, EllipseSegments(1, 1))
	require.Equal(t, 256, EllipseSegments(1e4, 1))
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(100, 50)
	r.Clear()
	r.Save()
	r.SetStroke(color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}, 1)
	r.SetDash([]float64{5, 5})
	r.StrokeRect(canvas.Rect{Max: canvas.Point{X: 10, Y: 10}})
	r.Restore()

	require.Equal(t, []string{
		"clear",
		"save",
		"stroke #3b82f6 1",
		"dash 5,5",
		"rect 0,0 10,10",
		"restore",
	}, r.Ops())
	require.Equal(t, 0, r.Depth())
	require.Equal(t, 1, r.Count("rect"))
	require.Equal(t, 20.0, r.MeasureText("abcd", 10))

	r.Reset()
	require.Empty(t, r.Ops())
}
