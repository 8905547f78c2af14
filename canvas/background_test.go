package canvas_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"whiteboard/canvas"
	"whiteboard/surface"
)

func TestDrawGridCountsLines(t *testing.T) {
	rec := surface.NewRecorder(100, 60)
	v := canvas.NewViewState()

	n := canvas.DrawGrid(rec, v, 20, color.Gray{Y: 200}, color.Black)
	// x: 0,20,...,100 and y: 0,20,40,60
	require.Equal(t, 10, n)
	require.Equal(t, n+2, rec.Count("polyline"))
	require.Equal(t, 0, rec.Depth())
}

func TestDrawGridThinsWhenZoomedOut(t *testing.T) {
	rec := surface.NewRecorder(100, 100)
	v := &canvas.ViewState{Scale: 0.1}

	n := canvas.DrawGrid(rec, v, 20, color.Gray{Y: 200}, color.Black)
	// 20 world units is 2px at this scale; spacing doubles until it reaches 8px (80 units).
	// Visible world is 0..1000: 13 lines per axis.
	require.Equal(t, 26, n)
}

func TestDrawGridIgnoresBadSpacing(t *testing.T) {
	rec := surface.NewRecorder(100, 100)
	require.Zero(t, canvas.DrawGrid(rec, canvas.NewViewState(), 0, color.White, color.Black))
	require.Empty(t, rec.Ops())
}
