package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"whiteboard/canvas"
	"whiteboard/input"
)

var toolKeys = map[ebiten.Key]input.Tool{
	ebiten.KeyV: input.ToolSelect,
	ebiten.KeyH: input.ToolHand,
	ebiten.KeyP: input.ToolPen,
	ebiten.KeyE: input.ToolEraser,
	ebiten.KeyL: input.ToolLine,
	ebiten.KeyR: input.ToolRectangle,
	ebiten.KeyO: input.ToolEllipse,
	ebiten.KeyY: input.ToolTriangle,
	ebiten.KeyT: input.ToolText,
}

var paletteKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
}

var mouseButtons = map[ebiten.MouseButton]input.Button{
	ebiten.MouseButtonLeft:   input.ButtonLeft,
	ebiten.MouseButtonMiddle: input.ButtonMiddle,
	ebiten.MouseButtonRight:  input.ButtonRight,
}

// InputSystem polls ebiten once per tick and forwards events to the session.
type InputSystem struct {
	game *Game

	held  map[ebiten.MouseButton]bool
	last  canvas.Point
	chars []rune
}

func NewInputSystem(g *Game) *InputSystem {
	return &InputSystem{
		game: g,
		held: make(map[ebiten.MouseButton]bool),
	}
}

// Update handles this tick's input. clickConsumed is set when the toolbar took the click.
func (is *InputSystem) Update(clickConsumed bool) {
	mx, my := ebiten.CursorPosition()
	p := canvas.Point{X: float64(mx), Y: float64(my)}

	if !is.handleControlKeys() {
		if _, editing := is.game.session.Entry(); editing {
			is.handleTextEntry()
		} else {
			is.handleToolKeys()
		}
	}
	is.handleZoom(p)
	is.handlePointer(p, clickConsumed)
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

// repeating reports a key press, repeating while the key is held.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 30 && d%3 == 0)
}

func (is *InputSystem) handleControlKeys() bool {
	g := is.game

	// --- Screenshot ---
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.screenshotRequested = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.runScripts()
		return true
	}
	if !ctrlPressed() {
		return false
	}

	switch {
	case repeating(ebiten.KeyZ):
		g.session.Undo()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.saveBoard()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.exportPDF()
	default:
		return false
	}
	return true
}

func (is *InputSystem) handleTextEntry() {
	s := is.game.session
	is.chars = ebiten.AppendInputChars(is.chars[:0])
	s.TypeRunes(is.chars)

	switch {
	case repeating(ebiten.KeyBackspace):
		s.KeyDown(input.KeyBackspace)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		s.KeyDown(input.KeyEnter)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.KeyDown(input.KeyEscape)
	}
}

func (is *InputSystem) handleToolKeys() {
	g := is.game
	s := g.session

	for k, tool := range toolKeys {
		if inpututil.IsKeyJustPressed(k) {
			s.SetTool(tool)
		}
	}
	for i, k := range paletteKeys {
		if i < len(g.palette) && inpututil.IsKeyJustPressed(k) {
			s.SetColor(g.palette[i])
		}
	}

	if repeating(ebiten.KeyBracketLeft) {
		s.AdjustWidth(-WidthStep)
	}
	if repeating(ebiten.KeyBracketRight) {
		s.AdjustWidth(WidthStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit0) {
		s.ResetView()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.toggleGrid()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		s.KeyDown(input.KeyDelete)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.KeyDown(input.KeyEscape)
	}
}

func (is *InputSystem) handleZoom(p canvas.Point) {
	g := is.game
	_, dy := ebiten.Wheel()
	if dy != 0 {
		g.session.Wheel(dy*WheelScale, p)
	}

	if _, editing := g.session.Entry(); editing {
		return
	}
	// Keyboard zoom anchors at the screen centre.
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd) {
		g.zoom(KeyZoomStep, g.center())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract) {
		g.zoom(-KeyZoomStep, g.center())
	}
}

func (is *InputSystem) handlePointer(p canvas.Point, clickConsumed bool) {
	s := is.game.session

	for mb, btn := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb) {
			if clickConsumed && mb == ebiten.MouseButtonLeft {
				continue
			}
			is.held[mb] = true
			s.PointerDown(p, btn)
		}
	}

	if p != is.last && len(is.held) > 0 {
		s.PointerMove(p)
	}
	is.last = p

	for mb, btn := range mouseButtons {
		if is.held[mb] && inpututil.IsMouseButtonJustReleased(mb) {
			delete(is.held, mb)
			s.PointerUp(p, btn)
		}
	}
}
