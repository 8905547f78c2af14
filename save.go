package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"whiteboard/board"
	"whiteboard/canvas"
	"whiteboard/export"
	"whiteboard/persist"
)

// openBoard loads the board to start with: the YAML file at path when one is given,
// otherwise the board stored under name. A name with nothing stored yields an empty board.
func openBoard(ctx context.Context, store *persist.Store, name, path string) (*board.Board, *canvas.ViewState, error) {
	if path != "" {
		b, v, err := persist.LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Open: %s (%d shapes)", path, b.Len())
		return b, v, nil
	}

	b, v, err := store.LoadBoard(ctx, name)
	if errors.Is(err, persist.ErrNotFound) {
		log.Printf("Open: new board %q", name)
		return board.New(), canvas.NewViewState(), nil
	}
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Open: board %q (%d shapes)", name, b.Len())
	return b, v, nil
}

func (g *Game) saveBoard() {
	s := g.session
	s.CommitText()
	path := g.cfg.Files.Board
	if err := persist.SaveFile(path, s.Board, s.View); err != nil {
		g.fail("Save", err)
		return
	}
	g.notify("Save", "saved "+path)
}

func (g *Game) exportPDF() {
	s := g.session
	s.CommitText()
	path := g.cfg.Files.PDF
	if err := export.PDF(s.Board, path, g.cfg.BackgroundColor()); err != nil {
		g.fail("Export", err)
		return
	}
	g.notify("Export", "exported "+path)
}

// autosave stores the board under the session name. It runs when the window closes.
func (g *Game) autosave() {
	if g.store == nil {
		return
	}
	s := g.session
	s.CommitText()
	s.Board.StopDrawing(s.Board.Drawing())
	if err := g.store.SaveBoard(g.ctx, g.name, s.Board, s.View); err != nil {
		log.Printf("Autosave: %v", err)
		return
	}
	log.Printf("Autosave: board %q (%d shapes)", g.name, s.Board.Len())
}

func (g *Game) notify(subsystem, msg string) {
	log.Printf("%s: %s", subsystem, msg)
	g.ui.Status.SetMessage(msg)
	g.repaint = true
}

func (g *Game) fail(subsystem string, err error) {
	log.Printf("%s: %v", subsystem, err)
	g.ui.Status.SetError(fmt.Sprintf("%s failed: %v", subsystem, err))
	g.repaint = true
}
