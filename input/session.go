// Package input turns pointer and keyboard events into view and board changes. It has
// no window dependency: the game loop polls the device and calls a Session.
package input

import (
	"image/color"
	"unicode"
	"unicode/utf8"

	"whiteboard/board"
	"whiteboard/canvas"
)

const (
	EraserWidth = 20.0
	MinWidth    = 1.0
	MaxWidth    = 50.0
)

// TextEntry is text being typed before it becomes a board.Text.
type TextEntry struct {
	At    canvas.Point
	Style board.Style
	Text  string
}

// Session is the state of one whiteboard: view, drawing list, active tool and the
// in-flight gesture. It is not safe for concurrent use.
type Session struct {
	View       *canvas.ViewState
	Board      *board.Board
	Tool       Tool
	Style      board.Style
	Background color.RGBA

	entry    *TextEntry
	drawing  string
	dragging bool
	dragLast canvas.Point
	dirty    bool
}

func NewSession(b *board.Board, v *canvas.ViewState, style board.Style, background color.RGBA) *Session {
	if b == nil {
		b = board.New()
	}
	if v == nil {
		v = canvas.NewViewState()
	}
	return &Session{
		View:       v,
		Board:      b,
		Tool:       ToolPen,
		Style:      style,
		Background: background,
		dirty:      true,
	}
}

// Load swaps in another board and view, dropping any gesture in progress.
func (s *Session) Load(b *board.Board, v *canvas.ViewState) {
	if b == nil {
		b = board.New()
	}
	s.Board = b
	if v == nil || !v.Valid() {
		v = canvas.NewViewState()
	}
	s.View = v
	s.reset()
}

func (s *Session) PointerDown(p canvas.Point, btn Button) {
	if s.entry != nil {
		s.CommitText()
	}

	if btn == ButtonMiddle || (btn == ButtonLeft && s.Tool == ToolHand) {
		s.View.StartPan(p)
		return
	}
	if btn != ButtonLeft {
		return
	}

	world := s.View.ToCanvas(p)
	switch s.Tool {
	case ToolSelect:
		hit := s.Board.HitTestRadius(world, board.HitRadius/s.View.Scale)
		if hit == nil {
			return
		}
		s.Board.Toggle(hit.Base().ID)
		s.dragging = true
		s.dragLast = world
		s.dirty = true
	case ToolText:
		s.entry = &TextEntry{At: world, Style: s.Style}
		s.dirty = true
	default:
		kind, ok := s.Tool.Kind()
		if !ok {
			return
		}
		style := s.Style
		if s.Tool == ToolEraser {
			style = board.Style{Color: s.Background, Width: EraserWidth}
		}
		s.drawing, _ = s.Board.StartDrawing(kind, world, style)
		s.dirty = true
	}
}

func (s *Session) PointerMove(p canvas.Point) {
	switch {
	case s.View.Panning():
		s.View.UpdatePan(p)
		s.dirty = true
	case s.dragging:
		world := s.View.ToCanvas(p)
		s.Board.MoveSelected(world.X-s.dragLast.X, world.Y-s.dragLast.Y)
		s.dragLast = world
		s.dirty = true
	case s.drawing != "":
		s.Board.UpdateDrawing(s.drawing, s.View.ToCanvas(p))
		s.dirty = true
	}
}

func (s *Session) PointerUp(p canvas.Point, btn Button) {
	if s.View.Panning() && (btn == ButtonMiddle || btn == ButtonLeft) {
		s.View.StopPan()
		return
	}
	if btn != ButtonLeft {
		return
	}
	s.dragging = false
	if s.drawing != "" {
		s.Board.StopDrawing(s.drawing)
		s.drawing = ""
		s.dirty = true
	}
}

// Wheel zooms toward p. It reports whether the zoom was applied.
func (s *Session) Wheel(delta float64, p canvas.Point) bool {
	if delta == 0 || !s.View.Zoom(delta, p) {
		return false
	}
	s.dirty = true
	return true
}

func (s *Session) KeyDown(k Key) {
	if s.entry != nil {
		switch k {
		case KeyBackspace:
			if _, size := utf8.DecodeLastRuneInString(s.entry.Text); size > 0 {
				s.entry.Text = s.entry.Text[:len(s.entry.Text)-size]
				s.dirty = true
			}
		case KeyEnter:
			s.CommitText()
		case KeyEscape:
			s.CancelText()
		}
		return
	}

	switch k {
	case KeyDelete, KeyBackspace:
		if s.Board.DeleteSelected() > 0 {
			s.dirty = true
		}
	case KeyEscape:
		if len(s.Board.Selected()) > 0 {
			s.Board.ClearSelection()
			s.dirty = true
		}
	}
}

// TypeRunes appends printable runes to the open text entry.
func (s *Session) TypeRunes(rs []rune) {
	if s.entry == nil {
		return
	}
	for _, r := range rs {
		if unicode.IsPrint(r) {
			s.entry.Text += string(r)
			s.dirty = true
		}
	}
}

// CommitText turns the open entry into a Text shape and returns its id. Blank entries
// are discarded.
func (s *Session) CommitText() string {
	if s.entry == nil {
		return ""
	}
	e := s.entry
	s.entry = nil
	s.dirty = true
	return s.Board.AddText(e.At, e.Text, e.Style)
}

func (s *Session) CancelText() {
	if s.entry != nil {
		s.entry = nil
		s.dirty = true
	}
}

// Entry returns a copy of the open text entry.
func (s *Session) Entry() (TextEntry, bool) {
	if s.entry == nil {
		return TextEntry{}, false
	}
	return *s.entry, true
}

func (s *Session) Drawing() string { return s.drawing }
func (s *Session) Dragging() bool  { return s.dragging }
func (s *Session) MarkDirty()      { s.dirty = true }

func (s *Session) Undo() {
	s.Board.Undo()
	if s.Board.Drawing() == "" {
		s.drawing = ""
	}
	s.dirty = true
}

func (s *Session) Clear() {
	s.Board.Clear()
	s.reset()
}

func (s *Session) ResetView() {
	s.View.Reset()
	s.dirty = true
}

// SetTool switches tools, committing any open text and finishing any stroke.
func (s *Session) SetTool(t Tool) {
	if t == s.Tool {
		return
	}
	s.CommitText()
	if s.drawing != "" {
		s.Board.StopDrawing(s.drawing)
		s.drawing = ""
	}
	s.dragging = false
	s.Tool = t
	s.dirty = true
}

func (s *Session) SetColor(c color.RGBA) {
	s.Style.Color = c
	if s.entry != nil {
		s.entry.Style.Color = c
	}
	s.dirty = true
}

// AdjustWidth changes the stroke width by d, clamped to [MinWidth, MaxWidth].
func (s *Session) AdjustWidth(d float64) {
	s.Style.Width = min(MaxWidth, max(MinWidth, s.Style.Width+d))
	if s.entry != nil {
		s.entry.Style.Width = s.Style.Width
	}
	s.dirty = true
}

// Render repaints the board and the open text entry with a caret.
func (s *Session) Render(surf canvas.Surface, underlays ...board.Layer) {
	s.Board.Render(surf, s.View, underlays...)
	if s.entry == nil {
		return
	}

	size := s.entry.Style.Width * 2 * s.View.Scale
	at := s.View.ToScreen(s.entry.At)
	surf.SetStroke(s.entry.Style.Color, 1)
	if s.entry.Text != "" {
		surf.Text(s.entry.Text, at, size)
	}
	x := at.X + surf.MeasureText(s.entry.Text, size) + 1
	surf.Polyline([]canvas.Point{{X: x, Y: at.Y - size}, {X: x, Y: at.Y + 2}})
}

// TakeDirty reports whether anything changed since the last call and clears the flag.
func (s *Session) TakeDirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

func (s *Session) reset() {
	s.entry = nil
	s.drawing = ""
	s.dragging = false
	if s.View.Panning() {
		s.View.StopPan()
	}
	s.dirty = true
}
