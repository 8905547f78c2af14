package input

import (
	"testing"

	"github.com/stretchr/testify/require"

	"whiteboard/board"
	"whiteboard/canvas"
	"whiteboard/surface"
)

var pen = board.Style{Color: board.Black, Width: 3}

func newTestSession() *Session {
	s := NewSession(nil, nil, pen, board.White)
	s.TakeDirty()
	return s
}

func pt(x, y float64) canvas.Point { return canvas.Point{X: x, Y: y} }

func TestPenStroke(t *testing.T) {
	s := newTestSession()
	s.PointerDown(pt(10, 10), ButtonLeft)
	s.PointerMove(pt(20, 15))
	s.PointerMove(pt(30, 25))
	s.PointerUp(pt(30, 25), ButtonLeft)

	require.True(t, s.TakeDirty())
	require.False(t, s.TakeDirty())
	require.Equal(t, 1, s.Board.Len())
	require.Empty(t, s.Drawing())
	f := s.Board.Shapes()[0].(*board.Freehand)
	require.Equal(t, []canvas.Point{pt(10, 10), pt(20, 15), pt(30, 25)}, f.Path)
	require.Equal(t, pen, f.Style)
}

func TestDrawingUsesWorldCoordinates(t *testing.T) {
	s := newTestSession()
	s.View.X, s.View.Y, s.View.Scale = 100, 50, 2
	s.SetTool(ToolRectangle)

	s.PointerDown(pt(0, 0), ButtonLeft)
	s.PointerMove(pt(40, 20))
	s.PointerUp(pt(40, 20), ButtonLeft)

	r := s.Board.Shapes()[0].(*board.Rectangle)
	require.Equal(t, pt(100, 50), r.From)
	require.Equal(t, pt(120, 60), r.To)
}

func TestTinyShapeDiscarded(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolEllipse)
	s.PointerDown(pt(10, 10), ButtonLeft)
	s.PointerMove(pt(12, 13))
	s.PointerUp(pt(12, 13), ButtonLeft)
	require.Zero(t, s.Board.Len())
}

func TestEraserPaintsBackground(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolEraser)
	s.PointerDown(pt(0, 0), ButtonLeft)
	s.PointerMove(pt(5, 5))
	s.PointerUp(pt(5, 5), ButtonLeft)

	st := s.Board.Shapes()[0].Base().Style
	require.Equal(t, board.White, st.Color)
	require.Equal(t, EraserWidth, st.Width)
	require.Equal(t, pen, s.Style)
}

func TestHandToolPans(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolHand)
	s.PointerDown(pt(100, 100), ButtonLeft)
	s.PointerMove(pt(110, 100))
	s.PointerUp(pt(110, 100), ButtonLeft)

	require.InDelta(t, -15, s.View.X, 1e-9)
	require.False(t, s.View.Panning())
	require.Zero(t, s.Board.Len())
}

func TestMiddleButtonPansWithAnyTool(t *testing.T) {
	s := newTestSession()
	s.PointerDown(pt(0, 0), ButtonMiddle)
	s.PointerMove(pt(0, -20))
	s.PointerUp(pt(0, -20), ButtonMiddle)

	require.InDelta(t, 30, s.View.Y, 1e-9)
	require.Zero(t, s.Board.Len())
}

func TestWheelZoomsTowardCursor(t *testing.T) {
	s := newTestSession()
	anchor := pt(300, 200)
	before := s.View.ToCanvas(anchor)

	require.True(t, s.Wheel(2, anchor))
	after := s.View.ToCanvas(anchor)
	require.InDelta(t, before.X, after.X, 1e-9)
	require.InDelta(t, before.Y, after.Y, 1e-9)
	require.True(t, s.TakeDirty())

	require.False(t, s.Wheel(0, anchor))
	s.View.Scale = 9.99
	require.False(t, s.Wheel(5, anchor))
	require.False(t, s.TakeDirty())
}

func TestSelectToggleDragDelete(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolLine)
	s.PointerDown(pt(100, 100), ButtonLeft)
	s.PointerMove(pt(200, 100))
	s.PointerUp(pt(200, 100), ButtonLeft)
	id := s.Board.Shapes()[0].Base().ID

	s.SetTool(ToolSelect)
	s.PointerDown(pt(105, 104), ButtonLeft)
	require.True(t, s.Board.Find(id).Base().Selected)
	require.True(t, s.Dragging())

	s.PointerMove(pt(115, 124))
	s.PointerUp(pt(115, 124), ButtonLeft)
	require.False(t, s.Dragging())
	require.Equal(t, pt(110, 120), s.Board.Find(id).Anchor())

	s.KeyDown(KeyEscape)
	require.Empty(t, s.Board.Selected())

	s.PointerDown(pt(110, 120), ButtonLeft)
	s.PointerUp(pt(110, 120), ButtonLeft)
	s.KeyDown(KeyDelete)
	require.Zero(t, s.Board.Len())
}

func TestSelectMissDoesNothing(t *testing.T) {
	s := newTestSession()
	s.Board.AddText(pt(0, 0), "x", pen)
	s.SetTool(ToolSelect)
	s.TakeDirty()

	s.PointerDown(pt(500, 500), ButtonLeft)
	require.False(t, s.Dragging())
	require.False(t, s.TakeDirty())
	require.Equal(t, 1, s.Board.Len())
}

func TestSelectRadiusIsScreenPixels(t *testing.T) {
	s := newTestSession()
	s.Board.AddText(pt(0, 0), "x", pen)
	s.SetTool(ToolSelect)
	s.View.Scale = 4

	// 15 screen px = 3.75 world units: a hit at this zoom.
	s.PointerDown(pt(15, 0), ButtonLeft)
	require.Len(t, s.Board.Selected(), 1)
	s.PointerUp(pt(15, 0), ButtonLeft)

	// 25 screen px is outside the radius.
	s.PointerDown(pt(25, 0), ButtonLeft)
	require.Len(t, s.Board.Selected(), 1)
}

func TestTextEntry(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolText)
	s.PointerDown(pt(40, 60), ButtonLeft)

	e, ok := s.Entry()
	require.True(t, ok)
	require.Equal(t, pt(40, 60), e.At)

	s.TypeRunes([]rune("héllo\x07!"))
	s.KeyDown(KeyBackspace)
	s.KeyDown(KeyDelete)
	e, _ = s.Entry()
	require.Equal(t, "héllo", e.Text)
	require.Zero(t, s.Board.Len())

	s.KeyDown(KeyEnter)
	_, ok = s.Entry()
	require.False(t, ok)
	require.Equal(t, 1, s.Board.Len())
	txt := s.Board.Shapes()[0].(*board.Text)
	require.Equal(t, "héllo", txt.Body)
	require.Equal(t, pt(40, 60), txt.At)
}

func TestTextEntryCommittedByClick(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolText)
	s.PointerDown(pt(0, 0), ButtonLeft)
	s.TypeRunes([]rune("first"))
	s.PointerDown(pt(100, 100), ButtonLeft)

	require.Equal(t, 1, s.Board.Len())
	e, ok := s.Entry()
	require.True(t, ok)
	require.Equal(t, pt(100, 100), e.At)

	s.KeyDown(KeyEscape)
	_, ok = s.Entry()
	require.False(t, ok)
	require.Equal(t, 1, s.Board.Len())
}

func TestBlankTextDiscarded(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolText)
	s.PointerDown(pt(0, 0), ButtonLeft)
	s.TypeRunes([]rune("   "))
	require.Empty(t, s.CommitText())
	require.Zero(t, s.Board.Len())
}

func TestUndoDuringStroke(t *testing.T) {
	s := newTestSession()
	s.PointerDown(pt(0, 0), ButtonLeft)
	s.PointerMove(pt(5, 5))
	s.Undo()
	require.Empty(t, s.Drawing())
	require.Zero(t, s.Board.Len())

	// Further movement and release are harmless.
	s.PointerMove(pt(9, 9))
	s.PointerUp(pt(9, 9), ButtonLeft)
	require.Zero(t, s.Board.Len())
}

func TestClearAndResetView(t *testing.T) {
	s := newTestSession()
	s.PointerDown(pt(0, 0), ButtonLeft)
	s.PointerMove(pt(5, 5))
	s.Clear()
	require.Zero(t, s.Board.Len())
	require.Empty(t, s.Drawing())

	s.Wheel(3, pt(10, 10))
	s.ResetView()
	require.Equal(t, 1.0, s.View.Scale)
	require.Zero(t, s.View.X)
}

func TestStyleControls(t *testing.T) {
	s := newTestSession()
	s.AdjustWidth(100)
	require.Equal(t, MaxWidth, s.Style.Width)
	s.AdjustWidth(-1000)
	require.Equal(t, MinWidth, s.Style.Width)

	red := board.MustParseColor("#ef4444")
	s.SetColor(red)
	s.PointerDown(pt(0, 0), ButtonLeft)
	s.PointerUp(pt(0, 0), ButtonLeft)
	require.Equal(t, red, s.Board.Shapes()[0].Base().Style.Color)
}

func TestRenderShowsTextEntry(t *testing.T) {
	s := newTestSession()
	s.SetTool(ToolText)
	s.PointerDown(pt(10, 20), ButtonLeft)
	s.TypeRunes([]rune("ab"))

	rec := surface.NewRecorder(100, 100)
	s.Render(rec)
	ops := rec.Ops()
	require.Equal(t, "clear", ops[0])
	require.Contains(t, ops, `text "ab" 10,20 6`)
	require.Equal(t, 1, rec.Count("polyline"))
}

func TestLoadReplacesBoard(t *testing.T) {
	s := newTestSession()
	s.PointerDown(pt(0, 0), ButtonLeft)

	b := board.New()
	b.AddText(pt(1, 1), "loaded", pen)
	s.Load(b, &canvas.ViewState{Scale: 99})

	require.Empty(t, s.Drawing())
	require.Equal(t, 1, s.Board.Len())
	require.Equal(t, 1.0, s.View.Scale)
	require.True(t, s.TakeDirty())
}

func TestToolNames(t *testing.T) {
	for _, tool := range Tools {
		got, ok := ParseTool(tool.String())
		require.True(t, ok)
		require.Equal(t, tool, got)
	}
	_, ok := ToolSelect.Kind()
	require.False(t, ok)
	k, ok := ToolEraser.Kind()
	require.True(t, ok)
	require.Equal(t, board.KindFreehand, k)
}
