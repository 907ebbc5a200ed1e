package main

import "image/color"

const (
	// --- Window ---
	DefaultWindowWidth  = 1280
	DefaultWindowHeight = 800
	WindowTitle         = "Battle Map"

	// --- Files ---
	DefaultSettingsFile = "battlemap.yaml"
	ScreenshotFile      = "screenshot.png"
	FontRegular         = "fonts/Roboto-Regular.ttf"
	FontBold            = "fonts/Roboto-Bold.ttf"

	// --- Input ---
	DoubleClickThreshold = 500 // ms
	DoubleClickDistance  = 25  // px squared (5px)
	KeyboardZoomStep     = 1.0 // notches per key press
	WheelPanStep         = 40.0

	// --- Map ---
	EmptyMapSize = 2048.0 // drawing size until a background is loaded

	// --- Grid ---
	GridCellStep = 8.0
	MinGridCell  = 8.0

	// --- Tokens ---
	NewTokenName  = "Token"
	DroppedPrefix = "dropped:"
	FontSizeMinPx = 4
	FontSizeMaxPx = 200
)

var (
	// --- Colors ---
	ColorBackground = color.RGBA{20, 20, 25, 255}
)
