package main

import (
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceCache hands out Go Regular faces by pixel size. Sizes are rounded to half pixels
// so zooming does not create a face per frame.
type faceCache struct {
	font  *opentype.Font
	faces map[float64]font.Face
}

func newFaceCache() *faceCache {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Println("LoadUIFont: parse error, using basic font:", err)
	}
	return &faceCache{font: f, faces: make(map[float64]font.Face)}
}

func (c *faceCache) Face(size float64) font.Face {
	size = math.Round(min(MaxFontSize, max(MinFontSize, size))*2) / 2
	if face, ok := c.faces[size]; ok {
		return face
	}
	if c.font == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Println("LoadUIFont: new face error, using basic font:", err)
		return basicfont.Face7x13
	}
	c.faces[size] = face
	return face
}

// DrawTextLines draws multiline text with the provided font.Face and color starting at (x,y).
func DrawTextLines(screen *ebiten.Image, face font.Face, s string, x, y int, clr color.Color) {
	if face == nil {
		face = basicfont.Face7x13
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := metrics.Height.Ceil()
	if lineHeight <= 0 {
		lineHeight = 16
		ascent = 12
	}
	// y is the top of the first line; text.Draw wants the baseline.
	baseY := y + ascent
	for i, line := range splitLines(s) {
		text.Draw(screen, line, face, x, baseY+i*lineHeight, clr)
	}
}

func splitLines(s string) []string {
	var out []string
	cur := []rune{}
	for _, r := range s {
		if r == '\n' {
			out = append(out, string(cur))
			cur = cur[:0]
			continue
		}
		cur = append(cur, r)
	}
	return append(out, string(cur))
}
