// Package ui draws the toolbar and status line over the board.
package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
)

const (
	ButtonSize = 28
	ButtonGap  = 4
	Margin     = 8
	GroupGap   = 12
)

// UISystem lays buttons out left to right along the top edge, wrapping at the window
// width. A nil entry in the button list starts a new group.
type UISystem struct {
	buttons       []*Button
	getFontFace   func() font.Face
	getScreenSize func() (int, int)
	drawText      DrawTextFunc
	laidOutFor    int
	Status        *StatusPanel
}

func NewUISystem(getFontFace func() font.Face, getScreenSize func() (int, int), drawText DrawTextFunc) *UISystem {
	return &UISystem{
		getFontFace:   getFontFace,
		getScreenSize: getScreenSize,
		drawText:      drawText,
		laidOutFor:    -1,
		Status:        NewStatusPanel(),
	}
}

// AddButton appends a labelled button. active may be nil.
func (ui *UISystem) AddButton(label string, active func() bool, onClick func()) *Button {
	b := &Button{Label: label, W: ButtonSize, H: ButtonSize, Active: active, OnClick: onClick}
	if len(label) > 2 {
		b.W = float32(ButtonSize + 8*(len(label)-2))
	}
	ui.add(b)
	return b
}

// AddSwatch appends a colour button.
func (ui *UISystem) AddSwatch(c color.Color, active func() bool, onClick func()) *Button {
	b := &Button{Swatch: c, W: ButtonSize - 6, H: ButtonSize - 6, Active: active, OnClick: onClick}
	ui.add(b)
	return b
}

// Group starts a new visual group of buttons.
func (ui *UISystem) Group() {
	ui.buttons = append(ui.buttons, nil)
	ui.laidOutFor = -1
}

func (ui *UISystem) add(b *Button) {
	ui.buttons = append(ui.buttons, b)
	ui.laidOutFor = -1
}

func (ui *UISystem) updateButtonPositions() {
	w, _ := ui.getScreenSize()
	if w == ui.laidOutFor {
		return
	}
	ui.laidOutFor = w

	x, y := float32(Margin), float32(Margin)
	for _, b := range ui.buttons {
		if b == nil {
			x += GroupGap
			continue
		}
		if x+b.W > float32(w-Margin) && x > Margin {
			x = Margin
			y += ButtonSize + ButtonGap
		}
		b.X = x
		b.Y = y + (ButtonSize-b.H)/2
		x += b.W + ButtonGap
	}
}

func (ui *UISystem) IsMouseOver(mx, my int) bool {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b != nil && b.IsMouseOver(mx, my) {
			return true
		}
	}
	return false
}

// Update fires the clicked button, if any, and reports whether the click was consumed.
func (ui *UISystem) Update() bool {
	ui.updateButtonPositions()
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return false
	}
	mx, my := ebiten.CursorPosition()
	for _, b := range ui.buttons {
		if b != nil && b.IsMouseOver(mx, my) {
			if b.OnClick != nil {
				b.OnClick()
			}
			return true
		}
	}
	return false
}

func (ui *UISystem) Draw(screen *ebiten.Image) {
	ui.updateButtonPositions()
	for _, b := range ui.buttons {
		if b != nil {
			b.Draw(screen, ui.getFontFace, ui.drawText)
		}
	}
	if ui.Status != nil {
		ui.Status.Draw(screen, ui.getScreenSize, ui.getFontFace, ui.drawText)
	}
}
