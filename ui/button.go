package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

var (
	ColorButton       = color.RGBA{60, 60, 70, 200}
	ColorButtonActive = color.RGBA{59, 130, 246, 230}
	ColorButtonLabel  = color.RGBA{255, 255, 255, 255}
	ColorSwatchRing   = color.RGBA{255, 255, 255, 255}
)

// DrawTextFunc draws s with its top-left corner at (x, y).
type DrawTextFunc func(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color)

// Button is a toolbar entry. A Swatch button is filled with its colour instead of a label.
type Button struct {
	Label   string
	Swatch  color.Color
	X, Y    float32
	W, H    float32
	Active  func() bool
	OnClick func()
}

func (b *Button) IsMouseOver(mx, my int) bool {
	return float32(mx) >= b.X && float32(mx) <= b.X+b.W &&
		float32(my) >= b.Y && float32(my) <= b.Y+b.H
}

func (b *Button) active() bool {
	return b.Active != nil && b.Active()
}

func (b *Button) Draw(screen *ebiten.Image, getFace func() font.Face, drawText DrawTextFunc) {
	if b.Swatch != nil {
		vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, b.Swatch, false)
		if b.active() {
			vector.StrokeRect(screen, b.X+1, b.Y+1, b.W-2, b.H-2, 2, ColorSwatchRing, false)
			vector.StrokeRect(screen, b.X-1, b.Y-1, b.W+2, b.H+2, 1, ColorButton, false)
		}
		return
	}

	fill := ColorButton
	if b.active() {
		fill = ColorButtonActive
	}
	vector.DrawFilledRect(screen, b.X, b.Y, b.W, b.H, fill, false)
	if getFace == nil || drawText == nil || b.Label == "" {
		return
	}
	face := getFace()
	if face == nil {
		return
	}
	w := font.MeasureString(face, b.Label).Ceil()
	h := face.Metrics().Height.Ceil()
	x := int(b.X) + (int(b.W)-w)/2
	y := int(b.Y) + (int(b.H)-h)/2
	drawText(screen, face, b.Label, x, y, ColorButtonLabel)
}
