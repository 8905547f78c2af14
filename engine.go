package main

import (
	"fmt"
	"log"

	"whiteboard/script"
)

// scriptEnv exposes the current pen and the visible area to scripts.
func (g *Game) scriptEnv() script.Env {
	s := g.session
	c := s.View.ToCanvas(g.center())
	vis := s.View.Visible(float64(g.screenWidth), float64(g.screenHeight))
	return script.Env{
		Style: s.Style,
		Vars: map[string]any{
			"cx":     c.X,
			"cy":     c.Y,
			"left":   vis.Min.X,
			"top":    vis.Min.Y,
			"right":  vis.Max.X,
			"bottom": vis.Max.Y,
			"scale":  s.View.Scale,
		},
	}
}

// runScripts appends the output of every script in the library to the board.
func (g *Game) runScripts() {
	if g.scripts == nil {
		return
	}
	s := g.session
	s.CommitText()

	shapes, err := g.scripts.RunAll(g.ctx, g.scriptEnv())
	for _, sh := range shapes {
		s.Board.Add(sh)
	}
	s.MarkDirty()

	if err != nil {
		g.fail("Script", err)
		return
	}
	g.notify("Script", fmt.Sprintf("%d scripts drew %d shapes", len(g.scripts.Names()), len(shapes)))
}

// drainScriptChanges reports scripts reloaded by the watcher.
func (g *Game) drainScriptChanges() {
	if g.scripts == nil {
		return
	}
	for {
		select {
		case name := <-g.scripts.Changes():
			log.Printf("Script %s: reloaded", name)
			g.ui.Status.SetMessage(name + " reloaded, F5 to run")
			g.repaint = true
		default:
			return
		}
	}
}
