package main

import "whiteboard/input"

var toolLabels = map[input.Tool]string{
	input.ToolSelect:    "V",
	input.ToolHand:      "H",
	input.ToolPen:       "P",
	input.ToolEraser:    "E",
	input.ToolLine:      "/",
	input.ToolRectangle: "[]",
	input.ToolEllipse:   "O",
	input.ToolTriangle:  "^",
	input.ToolText:      "T",
}

// initToolbar builds the toolbar: tools, palette, width, zoom and board actions.
func (g *Game) initToolbar() {
	s := g.session

	for _, tool := range input.Tools {
		g.ui.AddButton(toolLabels[tool],
			func() bool { return s.Tool == tool },
			func() { s.SetTool(tool) })
	}

	g.ui.Group()
	for _, c := range g.palette {
		g.ui.AddSwatch(c,
			func() bool { return s.Style.Color == c },
			func() { s.SetColor(c) })
	}

	g.ui.Group()
	g.ui.AddButton("w-", nil, func() { s.AdjustWidth(-WidthStep) })
	g.ui.AddButton("w+", nil, func() { s.AdjustWidth(WidthStep) })

	g.ui.Group()
	g.ui.AddButton("-", nil, func() { g.zoom(-KeyZoomStep, g.center()) })
	g.ui.AddButton("+", nil, func() { g.zoom(KeyZoomStep, g.center()) })
	g.ui.AddButton("1:1", nil, s.ResetView)
	g.ui.AddButton("#", func() bool { return g.showGrid }, g.toggleGrid)

	g.ui.Group()
	g.ui.AddButton("undo", nil, s.Undo)
	g.ui.AddButton("clear", nil, s.Clear)
	g.ui.AddButton("save", nil, g.saveBoard)
	g.ui.AddButton("pdf", nil, g.exportPDF)
	g.ui.AddButton("run", nil, g.runScripts)
}
