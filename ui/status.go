package ui

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// MessageDuration is how long a status message stays on screen.
const MessageDuration = 3 * time.Second

var (
	ColorStatusBackground = color.RGBA{40, 40, 40, 220}
	ColorStatusText       = color.RGBA{230, 230, 230, 255}
	ColorStatusError      = color.RGBA{255, 200, 50, 255}
)

// StatusPanel is the bottom strip: a permanent hint on the left and a short-lived
// message on the right.
type StatusPanel struct {
	Hint string

	message string
	isError bool
	until   time.Time
	now     func() time.Time
}

func NewStatusPanel() *StatusPanel {
	return &StatusPanel{now: time.Now}
}

func (p *StatusPanel) SetMessage(msg string) {
	p.set(msg, false)
}

func (p *StatusPanel) SetError(msg string) {
	p.set(msg, true)
}

func (p *StatusPanel) set(msg string, isError bool) {
	p.message = msg
	p.isError = isError
	p.until = p.now().Add(MessageDuration)
}

func (p *StatusPanel) Clear() {
	p.message = ""
}

// Message returns the current message. It is cleared by Expire or Clear.
func (p *StatusPanel) Message() string {
	return p.message
}

// Expire drops a timed-out message and reports whether it did, so the caller can repaint.
func (p *StatusPanel) Expire() bool {
	if p.message == "" || p.now().Before(p.until) {
		return false
	}
	p.message = ""
	return true
}

func (p *StatusPanel) Draw(screen *ebiten.Image, getScreenSize func() (int, int), getFace func() font.Face, drawText DrawTextFunc) {
	if p == nil || (p.Hint == "" && p.message == "") {
		return
	}
	if getFace == nil || drawText == nil {
		return
	}
	face := getFace()
	if face == nil {
		return
	}
	w, h := getScreenSize()
	ph := face.Metrics().Height.Ceil() + 8
	y := h - ph
	vector.DrawFilledRect(screen, 0, float32(y), float32(w), float32(ph), ColorStatusBackground, false)

	if p.Hint != "" {
		drawText(screen, face, p.Hint, Margin, y+4, ColorStatusText)
	}
	if p.message != "" {
		clr := ColorStatusText
		if p.isError {
			clr = ColorStatusError
		}
		mw := font.MeasureString(face, p.message).Ceil()
		drawText(screen, face, p.message, w-mw-Margin, y+4, clr)
	}
}
