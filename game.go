package main

import (
	"context"
	"fmt"
	"image/color"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"

	"whiteboard/board"
	"whiteboard/canvas"
	"whiteboard/config"
	"whiteboard/input"
	"whiteboard/persist"
	"whiteboard/script"
	"whiteboard/ui"
)

type Game struct {
	ctx     context.Context
	cfg     *config.Config
	session *input.Session
	store   *persist.Store
	scripts *script.Library
	name    string

	palette  []color.RGBA
	showGrid bool

	screenWidth  int
	screenHeight int

	// Sub-systems
	input   *InputSystem
	ui      *ui.UISystem
	faces   *faceCache
	uiFace  font.Face
	surface *ebitenSurface

	repaint             bool
	screenshotRequested bool
}

func NewGame(ctx context.Context, cfg *config.Config, store *persist.Store, scripts *script.Library, name string, b *board.Board, v *canvas.ViewState) *Game {
	g := &Game{
		ctx:          ctx,
		cfg:          cfg,
		store:        store,
		scripts:      scripts,
		name:         name,
		palette:      cfg.Palette(),
		showGrid:     cfg.Board.Grid,
		screenWidth:  cfg.Window.Width,
		screenHeight: cfg.Window.Height,
		faces:        newFaceCache(),
		repaint:      true,
	}
	g.session = input.NewSession(b, v, cfg.Style(), cfg.BackgroundColor())
	g.uiFace = g.faces.Face(UIFontSize)
	g.surface = newEbitenSurface(g.faces, cfg.BackgroundColor())
	g.input = NewInputSystem(g)
	g.ui = ui.NewUISystem(
		func() font.Face { return g.uiFace },
		func() (int, int) { return g.screenWidth, g.screenHeight },
		DrawTextLines,
	)
	g.initToolbar()
	return g
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		g.autosave()
		return ebiten.Termination
	}

	consumed := g.ui.Update()
	if consumed {
		g.repaint = true
	}
	g.input.Update(consumed)
	g.drainScriptChanges()
	if g.ui.Status.Expire() {
		g.repaint = true
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	dirty := g.session.TakeDirty()
	if !dirty && !g.repaint && !g.screenshotRequested {
		return
	}
	g.repaint = false

	g.surface.Target(screen)
	if g.showGrid {
		g.session.Render(g.surface, g.drawGrid)
	} else {
		g.session.Render(g.surface)
	}

	s := g.session
	g.ui.Status.Hint = fmt.Sprintf("%s  width %.0f  zoom %.0f%%  %d shapes",
		s.Tool, s.Style.Width, s.View.Scale*100, s.Board.Len())
	g.ui.Draw(screen)

	// --- Save Screenshot ---
	if g.screenshotRequested {
		g.screenshotRequested = false
		if err := g.saveScreenshot(screen); err != nil {
			log.Println("screenshot error:", err)
			g.ui.Status.SetError(err.Error())
		} else {
			log.Println("Screenshot saved as", g.cfg.Files.Screenshot)
			g.ui.Status.SetMessage("saved " + g.cfg.Files.Screenshot)
		}
		g.repaint = true
	}
}

func (g *Game) drawGrid(s canvas.Surface, v *canvas.ViewState) {
	canvas.DrawGrid(s, v, g.cfg.Board.GridSize, ColorGrid, ColorOriginCross)
}

func (g *Game) saveScreenshot(screen *ebiten.Image) error {
	path := g.cfg.Files.Screenshot
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, screen); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.screenWidth || outsideHeight != g.screenHeight {
		g.repaint = true
	}
	g.screenWidth = outsideWidth
	g.screenHeight = outsideHeight
	return outsideWidth, outsideHeight
}

func (g *Game) zoom(delta float64, anchor canvas.Point) {
	if !g.session.Wheel(delta, anchor) {
		g.ui.Status.SetMessage(fmt.Sprintf("zoom limit %.0f%%", g.session.View.Scale*100))
		g.repaint = true
	}
}

func (g *Game) toggleGrid() {
	g.showGrid = !g.showGrid
	g.repaint = true
}

func (g *Game) center() canvas.Point {
	return canvas.Point{X: float64(g.screenWidth) / 2, Y: float64(g.screenHeight) / 2}
}
