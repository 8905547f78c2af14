package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"whiteboard/canvas"
)

var pen = Style{Color: Black, Width: 2}

func newTestBoard() *Board {
	n := 0
	return &Board{newID: func() string {
		n++
		return fmt.Sprintf("s%d", n)
	}}
}

func pt(x, y float64) canvas.Point { return canvas.Point{X: x, Y: y} }

func TestStartDrawingAppends(t *testing.T) {
	b := newTestBoard()

	id, req := b.StartDrawing(KindFreehand, pt(1, 2), pen)
	require.Nil(t, req)
	require.Equal(t, "s1", id)
	require.Equal(t, id, b.Drawing())
	require.Equal(t, 1, b.Len())

	f := b.Find(id).(*Freehand)
	require.Equal(t, []canvas.Point{pt(1, 2)}, f.Path)
	require.Equal(t, pen, f.Style)

	id, _ = b.StartDrawing(KindRectangle, pt(5, 5), pen)
	r := b.Find(id).(*Rectangle)
	require.Equal(t, r.From, r.To)
	require.Equal(t, 2, b.Len())
}

func TestStartDrawingText(t *testing.T) {
	b := newTestBoard()
	id, req := b.StartDrawing(KindText, pt(10, 20), pen)
	require.Empty(t, id)
	require.NotNil(t, req)
	require.Equal(t, pt(10, 20), req.At)
	require.Equal(t, pen, req.Style)
	require.Zero(t, b.Len())
}

func TestStartDrawingUnknownKind(t *testing.T) {
	b := newTestBoard()
	id, req := b.StartDrawing(Kind(42), pt(0, 0), pen)
	require.Empty(t, id)
	require.Nil(t, req)
	require.Zero(t, b.Len())
}

func TestUpdateDrawing(t *testing.T) {
	b := newTestBoard()
	id, _ := b.StartDrawing(KindFreehand, pt(0, 0), pen)
	b.UpdateDrawing(id, pt(1, 1))
	b.UpdateDrawing(id, pt(2, 3))
	b.UpdateDrawing("nope", pt(9, 9))
	b.UpdateDrawing("", pt(9, 9))
	require.Equal(t, []canvas.Point{pt(0, 0), pt(1, 1), pt(2, 3)}, b.Find(id).Points())

	b.StopDrawing(id)
	b.UpdateDrawing(id, pt(7, 7))
	require.Len(t, b.Find(id).Points(), 3)
}

func TestUpdateDrawingSpanReplacesCorner(t *testing.T) {
	for _, k := range []Kind{KindRectangle, KindEllipse, KindLine, KindTriangle} {
		t.Run(k.String(), func(t *testing.T) {
			b := newTestBoard()
			id, _ := b.StartDrawing(k, pt(0, 0), pen)
			b.UpdateDrawing(id, pt(10, 10))
			b.UpdateDrawing(id, pt(30, 40))
			require.Equal(t, []canvas.Point{pt(0, 0), pt(30, 40)}, b.Find(id).Points())
		})
	}
}

func TestStopDrawingDropsDegenerate(t *testing.T) {
	b := newTestBoard()
	id, _ := b.StartDrawing(KindRectangle, pt(0, 0), pen)
	b.UpdateDrawing(id, pt(3, 4))
	b.StopDrawing(id)
	require.Zero(t, b.Len())
	require.Empty(t, b.Drawing())

	// Only one axis needs to reach the minimum.
	id, _ = b.StartDrawing(KindLine, pt(0, 0), pen)
	b.UpdateDrawing(id, pt(10, 1))
	b.StopDrawing(id)
	require.Equal(t, 1, b.Len())

	// A click without movement leaves a freehand dot in place.
	id, _ = b.StartDrawing(KindFreehand, pt(0, 0), pen)
	b.StopDrawing(id)
	require.Equal(t, 2, b.Len())
}

func TestStopDrawingUnknownID(t *testing.T) {
	b := newTestBoard()
	id, _ := b.StartDrawing(KindEllipse, pt(0, 0), pen)
	b.StopDrawing("other")
	require.Equal(t, id, b.Drawing())
	require.Equal(t, 1, b.Len())
}

func TestAddText(t *testing.T) {
	b := newTestBoard()
	require.Empty(t, b.AddText(pt(0, 0), "   \t", pen))
	require.Zero(t, b.Len())

	id := b.AddText(pt(4, 5), "hello", pen)
	require.NotEmpty(t, id)
	txt := b.Find(id).(*Text)
	require.Equal(t, "hello", txt.Body)
	require.Equal(t, pt(4, 5), txt.At)
	require.Equal(t, 4.0, txt.FontSize())
}

func TestUndoAndClear(t *testing.T) {
	b := newTestBoard()
	b.Undo()
	require.Zero(t, b.Len())

	b.AddText(pt(0, 0), "a", pen)
	id, _ := b.StartDrawing(KindFreehand, pt(0, 0), pen)
	b.Undo()
	require.Equal(t, 1, b.Len())
	require.Empty(t, b.Drawing())
	require.Nil(t, b.Find(id))

	b.StartDrawing(KindLine, pt(0, 0), pen)
	b.Clear()
	require.Zero(t, b.Len())
	require.Empty(t, b.Drawing())
}

func TestHitTest(t *testing.T) {
	b := newTestBoard()
	older := b.AddText(pt(100, 100), "old", pen)
	newer := b.AddText(pt(105, 100), "new", pen)

	require.Equal(t, newer, b.HitTest(pt(102, 100)).Base().ID)
	require.Equal(t, older, b.HitTest(pt(85, 100)).Base().ID)
	require.Nil(t, b.HitTest(pt(200, 200)))

	// Strictly inside the radius.
	require.Nil(t, b.HitTest(pt(125, 100)))
	require.NotNil(t, b.HitTest(pt(124.9, 100)))
}

func TestHitTestUsesFirstPointOnly(t *testing.T) {
	b := newTestBoard()
	id, _ := b.StartDrawing(KindFreehand, pt(0, 0), pen)
	b.UpdateDrawing(id, pt(500, 500))
	b.StopDrawing(id)

	require.Nil(t, b.HitTest(pt(500, 500)))
	require.NotNil(t, b.HitTest(pt(1, 1)))
	require.Nil(t, b.HitTestRadius(pt(1, 1), 1))
}

func TestSelection(t *testing.T) {
	b := newTestBoard()
	a := b.AddText(pt(0, 0), "a", pen)
	c := b.AddText(pt(50, 50), "c", pen)

	require.True(t, b.Toggle(a))
	require.True(t, b.Toggle(c))
	require.False(t, b.Toggle(c))
	require.False(t, b.Toggle("missing"))
	require.Len(t, b.Selected(), 1)

	b.MoveSelected(10, -5)
	require.Equal(t, pt(10, -5), b.Find(a).Anchor())
	require.Equal(t, pt(50, 50), b.Find(c).Anchor())

	b.Toggle(c)
	require.Equal(t, 2, b.DeleteSelected())
	require.Zero(t, b.Len())
	require.Zero(t, b.DeleteSelected())
}

func TestClearSelection(t *testing.T) {
	b := newTestBoard()
	a := b.AddText(pt(0, 0), "a", pen)
	b.Toggle(a)
	b.ClearSelection()
	require.Empty(t, b.Selected())
}

func TestTranslateEveryKind(t *testing.T) {
	b := newTestBoard()
	id, _ := b.StartDrawing(KindFreehand, pt(0, 0), pen)
	b.UpdateDrawing(id, pt(1, 1))
	b.StopDrawing(id)
	for _, k := range []Kind{KindRectangle, KindEllipse, KindLine, KindTriangle} {
		id, _ := b.StartDrawing(k, pt(0, 0), pen)
		b.UpdateDrawing(id, pt(10, 10))
		b.StopDrawing(id)
	}
	b.AddText(pt(0, 0), "t", pen)

	for _, s := range b.Shapes() {
		b.Toggle(s.Base().ID)
	}
	b.MoveSelected(3, 4)
	for _, s := range b.Shapes() {
		require.Equal(t, pt(3, 4), s.Anchor(), s.Kind().String())
	}
}

func TestCloneIsDeep(t *testing.T) {
	b := newTestBoard()
	id, _ := b.StartDrawing(KindFreehand, pt(0, 0), pen)
	b.UpdateDrawing(id, pt(5, 5))
	c := b.Clone()

	c.Find(id).Translate(100, 100)
	c.Find(id).Base().Selected = true

	require.Equal(t, pt(0, 0), b.Find(id).Anchor())
	require.False(t, b.Find(id).Base().Selected)
	require.Equal(t, 1, c.Len())
}

func TestBounds(t *testing.T) {
	b := newTestBoard()
	_, ok := b.Bounds()
	require.False(t, ok)

	id, _ := b.StartDrawing(KindRectangle, pt(10, 10), pen)
	b.UpdateDrawing(id, pt(-10, 30))
	id, _ = b.StartDrawing(KindTriangle, pt(50, 0), pen)
	b.UpdateDrawing(id, pt(60, 20))

	r, ok := b.Bounds()
	require.True(t, ok)
	require.Equal(t, canvas.Rect{Min: pt(-10, 0), Max: pt(60, 30)}, r)
}

func TestReplaceAssignsIDs(t *testing.T) {
	b := newTestBoard()
	b.StartDrawing(KindLine, pt(0, 0), pen)
	b.Replace([]Shape{
		&Line{Span: Span{From: pt(0, 0), To: pt(9, 9)}},
		&Text{Attrs: Attrs{ID: "keep"}, Body: "x"},
	})
	require.Equal(t, 2, b.Len())
	require.Empty(t, b.Drawing())
	require.NotEmpty(t, b.Shapes()[0].Base().ID)
	require.Equal(t, "keep", b.Shapes()[1].Base().ID)
}

func TestNewIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewID()
		require.False(t, seen[id])
		seen[id] = true
	}
}

func TestKindNames(t *testing.T) {
	for k := KindFreehand; k <= KindText; k++ {
		got, ok := ParseKind(k.String())
		require.True(t, ok)
		require.Equal(t, k, got)
	}
	_, ok := ParseKind("circle")
	require.False(t, ok)
	require.Equal(t, "unknown", Kind(-1).String())
	require.True(t, KindTriangle.Spanned())
	require.False(t, KindText.Spanned())
}

func TestColors(t *testing.T) {
	c, err := ParseColor("#3b82f6")
	require.NoError(t, err)
	require.Equal(t, Highlight, c)
	require.Equal(t, "#3b82f6", FormatColor(c))

	c, err = ParseColor("#fff")
	require.NoError(t, err)
	require.Equal(t, White, c)

	_, err = ParseColor("blue")
	require.Error(t, err)
}
