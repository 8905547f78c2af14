package main

import "image/color"

const (
	// --- View ---
	KeyZoomStep   = 1.0 // wheel notches per +/- key press
	WheelScale    = 1.0
	WidthStep     = 1.0

	// --- Text ---
	UIFontSize  = 13.0
	MinFontSize = 4.0
	MaxFontSize = 400.0

	// --- Files ---
	AutosaveName = "autosave"
)

var (
	// --- Colors ---
	ColorGrid        = color.RGBA{229, 231, 235, 255}
	ColorOriginCross = color.RGBA{255, 100, 100, 150}
)
