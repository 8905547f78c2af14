package board

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"whiteboard/canvas"
	"whiteboard/surface"
)

func TestRenderEmptyClears(t *testing.T) {
	rec := surface.NewRecorder(200, 100)
	newTestBoard().Render(rec, canvas.NewViewState())
	require.Equal(t, []string{"clear"}, rec.Ops())
}

func TestRenderShapes(t *testing.T) {
	b := newTestBoard()
	id, _ := b.StartDrawing(KindRectangle, pt(30, 40), pen)
	b.UpdateDrawing(id, pt(10, 20))
	id, _ = b.StartDrawing(KindEllipse, pt(0, 0), pen)
	b.UpdateDrawing(id, pt(20, 10))
	id, _ = b.StartDrawing(KindLine, pt(0, 0), pen)
	b.UpdateDrawing(id, pt(5, 5))
	id, _ = b.StartDrawing(KindTriangle, pt(10, 0), pen)
	b.UpdateDrawing(id, pt(15, 10))
	b.AddText(pt(1, 2), "hi", pen)

	v := &canvas.ViewState{Scale: 2}
	rec := surface.NewRecorder(200, 100)
	b.Render(rec, v)

	require.Equal(t, []string{
		"clear",
		"stroke #000000 4",
		"rect 20,40 60,80",
		"stroke #000000 4",
		"ellipse 20,10 20 10",
		"stroke #000000 4",
		"polyline 0,0 10,10",
		"stroke #000000 4",
		"polyline 20,0 30,20 10,20 20,0",
		"stroke #000000 4",
		`text "hi" 2,4 8`,
	}, rec.Ops())
}

func TestRenderSkipsSinglePointStroke(t *testing.T) {
	b := newTestBoard()
	b.StartDrawing(KindFreehand, pt(5, 5), pen)

	rec := surface.NewRecorder(100, 100)
	b.Render(rec, canvas.NewViewState())
	require.Zero(t, rec.Count("polyline"))

	b.UpdateDrawing(b.Drawing(), pt(6, 6))
	rec.Reset()
	b.Render(rec, canvas.NewViewState())
	require.Equal(t, 1, rec.Count("polyline"))
}

func TestRenderIsIdempotent(t *testing.T) {
	b := newTestBoard()
	id, _ := b.StartDrawing(KindFreehand, pt(0, 0), pen)
	for i := 1; i < 20; i++ {
		b.UpdateDrawing(id, pt(float64(i), float64(i*i)))
	}
	b.StopDrawing(id)
	b.AddText(pt(3, 3), "x", pen)
	b.Toggle(id)

	v := &canvas.ViewState{X: -10, Y: 4, Scale: 1.5}
	grid := func(s canvas.Surface, v *canvas.ViewState) {
		canvas.DrawGrid(s, v, 25, color.Gray{Y: 230}, color.Black)
	}

	first := surface.NewRecorder(300, 200)
	b.Render(first, v, grid)
	second := surface.NewRecorder(300, 200)
	b.Render(second, v, grid)
	b.Render(second, v, grid)

	ops := second.Ops()
	require.Equal(t, first.Ops(), ops[len(ops)/2:])
	require.Equal(t, first.Ops(), ops[:len(ops)/2])
}

func TestRenderSelectionOverlay(t *testing.T) {
	b := newTestBoard()
	id, _ := b.StartDrawing(KindRectangle, pt(10, 10), pen)
	b.UpdateDrawing(id, pt(20, 30))
	b.StopDrawing(id)
	b.Toggle(id)

	rec := surface.NewRecorder(100, 100)
	b.Render(rec, canvas.NewViewState())

	require.Equal(t, []string{
		"clear",
		"stroke #000000 2",
		"rect 10,10 20,30",
		"save",
		"stroke #3b82f6 1",
		"dash 5,5",
		"rect 5,5 25,35",
		"restore",
	}, rec.Ops())
	require.Zero(t, rec.Depth())
}

func TestRenderSelectionPerKind(t *testing.T) {
	b := newTestBoard()
	id, _ := b.StartDrawing(KindFreehand, pt(0, 0), pen)
	b.UpdateDrawing(id, pt(10, 20))
	b.Toggle(id)
	id, _ = b.StartDrawing(KindLine, pt(0, 0), pen)
	b.UpdateDrawing(id, pt(40, 0))
	b.Toggle(id)
	id, _ = b.StartDrawing(KindEllipse, pt(0, 0), pen)
	b.UpdateDrawing(id, pt(20, 10))
	b.Toggle(id)
	b.Toggle(b.AddText(pt(10, 50), "abcd", Style{Color: Black, Width: 5}))

	rec := surface.NewRecorder(100, 100)
	b.Render(rec, canvas.NewViewState())
	ops := rec.Ops()

	require.Contains(t, ops, "rect -5,-5 15,25")
	require.Equal(t, 2, rec.Count("polyline 0,0 40,0"))
	require.Contains(t, ops, "ellipse 10,5 15 10")
	// "abcd" at size 10 measures 20 on the recorder.
	require.Contains(t, ops, "rect 5,35 35,55")
	require.Equal(t, 4, rec.Count("save"))
	require.Equal(t, 4, rec.Count("restore"))
}

func TestRenderUnderlaysBeforeShapes(t *testing.T) {
	b := newTestBoard()
	b.AddText(pt(0, 10), "t", pen)

	rec := surface.NewRecorder(10, 10)
	b.Render(rec, canvas.NewViewState(), nil, func(s canvas.Surface, _ *canvas.ViewState) {
		s.Polyline([]canvas.Point{pt(0, 0), pt(1, 1)})
	})
	ops := rec.Ops()
	require.Equal(t, "clear", ops[0])
	require.Equal(t, "polyline 0,0 1,1", ops[1])
	require.Equal(t, `text "t" 0,10 4`, ops[len(ops)-1])
}
