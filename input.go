package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"battle-map/canvas"
	"battle-map/input"
)

// InputSystem translates ebiten's polled input state into the engine's
// abstract events and handles the application shortcuts.
type InputSystem struct {
	game *Game

	cursor       canvas.Vec
	leftConsumed bool

	// Double-click detection
	lastClickTime int64
	lastClickPos  [2]int
}

func NewInputSystem(g *Game) *InputSystem {
	return &InputSystem{game: g}
}

func (is *InputSystem) Update() {
	mx, my := ebiten.CursorPosition()
	pos := canvas.Vec{X: float64(mx), Y: float64(my)}
	mods := pointerMods()
	eng := is.game.engine

	is.handleControlKeys()
	is.handleMeasureKeys()
	is.handleWheel(pos)

	if pos != is.cursor {
		is.cursor = pos
		eng.HandlePointer(input.PointerEvent{Kind: input.Move, Pos: pos, Mods: mods})
	}

	is.handleLeftButton(mx, my, pos, mods)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle) {
		eng.HandlePointer(input.PointerEvent{Kind: input.Press, Pos: pos, Button: input.ButtonMiddle, Mods: mods})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonMiddle) {
		eng.HandlePointer(input.PointerEvent{Kind: input.Release, Pos: pos, Button: input.ButtonMiddle, Mods: mods})
	}

	if files := ebiten.DroppedFiles(); files != nil {
		is.game.ImportDropped(files)
	}
}

func (is *InputSystem) handleLeftButton(mx, my int, pos canvas.Vec, mods input.Modifiers) {
	eng := is.game.engine

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if is.game.ui.Click(pos) {
			is.leftConsumed = true
			return
		}
		eng.HandlePointer(input.PointerEvent{Kind: input.Press, Pos: pos, Button: input.ButtonLeft, Mods: mods})
		if is.isDoubleClick(mx, my) {
			eng.HandlePointer(input.PointerEvent{Kind: input.DoubleClick, Pos: pos, Button: input.ButtonLeft, Mods: mods})
		}
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if is.leftConsumed {
			is.leftConsumed = false
			return
		}
		eng.HandlePointer(input.PointerEvent{Kind: input.Release, Pos: pos, Button: input.ButtonLeft, Mods: mods})
	}
}

func (is *InputSystem) isDoubleClick(mx, my int) bool {
	now := time.Now().UnixMilli()
	double := false
	if now-is.lastClickTime < DoubleClickThreshold {
		dx := mx - is.lastClickPos[0]
		dy := my - is.lastClickPos[1]
		if dx*dx+dy*dy < DoubleClickDistance {
			double = true
		}
	}
	if double {
		// A third click starts a new pair.
		is.lastClickTime = 0
	} else {
		is.lastClickTime = now
	}
	is.lastClickPos = [2]int{mx, my}
	return double
}

func (is *InputSystem) handleWheel(pos canvas.Vec) {
	dx, dy := ebiten.Wheel()
	if dx == 0 && dy == 0 || is.game.ui.IsMouseOver(pos) {
		return
	}
	var mods input.Modifiers
	if ctrlPressed() {
		mods |= input.ModZoom
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= input.ModHorizontal
	}
	is.game.engine.HandleWheel(input.WheelEvent{Pos: pos, DX: dx, DY: dy, Mods: mods})
}

func (is *InputSystem) handleControlKeys() {
	g := is.game
	ctrl := ctrlPressed()

	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.engine.HandleKey(input.KeyEvent{Key: input.KeyDelete})
	}

	// --- Screenshot ---
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.screenshotRequested = true
	}

	// --- Save Settings ---
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.SaveSettings()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.ToggleDebug()
	}
	if ctrl {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		g.ToggleGrid()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		g.ResizeGrid(-GridCellStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		g.ResizeGrid(GridCellStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.CreateTokenAtPointer()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.CycleFaction()
	}

	// Keyboard Zooming
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.ZoomIn()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.ZoomOut()
	}
}

// handleMeasureKeys keeps the ruler shape in sync with the held modifiers:
// Alt alone measures a line, Alt+Shift a cone and Alt+Ctrl a circle.
func (is *InputSystem) handleMeasureKeys() {
	is.game.engine.SetMeasureMode(measureMode(
		ebiten.IsKeyPressed(ebiten.KeyAlt),
		ebiten.IsKeyPressed(ebiten.KeyShift),
		ctrlPressed(),
	))
}

func measureMode(alt, shift, ctrl bool) canvas.MeasureMode {
	switch {
	case !alt:
		return canvas.MeasureNone
	case shift:
		return canvas.MeasureCone
	case ctrl:
		return canvas.MeasureCircle
	default:
		return canvas.MeasureLine
	}
}

func ctrlPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
}

// pointerMods maps Ctrl/Cmd to multi-select and Shift to grid snapping.
func pointerMods() input.Modifiers {
	var m input.Modifiers
	if ctrlPressed() {
		m |= input.ModMulti
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		m |= input.ModSnap
	}
	return m
}
