package input

import "whiteboard/board"

type Tool int

const (
	ToolSelect Tool = iota
	ToolHand
	ToolPen
	ToolEraser
	ToolLine
	ToolRectangle
	ToolEllipse
	ToolTriangle
	ToolText
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{
	ToolSelect, ToolHand, ToolPen, ToolEraser, ToolLine,
	ToolRectangle, ToolEllipse, ToolTriangle, ToolText,
}

var toolNames = map[Tool]string{
	ToolSelect:    "select",
	ToolHand:      "hand",
	ToolPen:       "pen",
	ToolEraser:    "eraser",
	ToolLine:      "line",
	ToolRectangle: "rectangle",
	ToolEllipse:   "ellipse",
	ToolTriangle:  "triangle",
	ToolText:      "text",
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return "unknown"
}

func ParseTool(s string) (Tool, bool) {
	for t, name := range toolNames {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// Kind is the shape kind a tool draws. Select and hand draw nothing.
func (t Tool) Kind() (board.Kind, bool) {
	switch t {
	case ToolPen, ToolEraser:
		return board.KindFreehand, true
	case ToolLine:
		return board.KindLine, true
	case ToolRectangle:
		return board.KindRectangle, true
	case ToolEllipse:
		return board.KindEllipse, true
	case ToolTriangle:
		return board.KindTriangle, true
	case ToolText:
		return board.KindText, true
	}
	return 0, false
}

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

type Key int

const (
	KeyDelete Key = iota
	KeyBackspace
	KeyEnter
	KeyEscape
)
