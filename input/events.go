package input

import "battle-map/canvas"

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Modifiers are the abstract modifier flags the engine understands. The
// host adapter decides which physical keys map to which flag.
type Modifiers uint8

const (
	// ModMulti adds to or toggles the selection instead of replacing it.
	ModMulti Modifiers = 1 << iota
	// ModSnap snaps dragged tokens to the grid.
	ModSnap
	// ModZoom turns wheel rotation into zoom.
	ModZoom
	// ModHorizontal turns vertical wheel rotation into horizontal panning.
	ModHorizontal
)

func (m Modifiers) Has(f Modifiers) bool { return m&f != 0 }

type PointerKind int

const (
	Press PointerKind = iota
	Move
	Release
	DoubleClick
)

func (k PointerKind) String() string {
	switch k {
	case Press:
		return "press"
	case Move:
		return "move"
	case Release:
		return "release"
	case DoubleClick:
		return "double-click"
	}
	return "unknown"
}

// PointerEvent is a pointer action at a UI-space position.
type PointerEvent struct {
	Kind   PointerKind
	Pos    canvas.Vec
	Button Button
	Mods   Modifiers
}

// WheelEvent carries wheel rotation in notches. Positive DY means the wheel
// was turned away from the user.
type WheelEvent struct {
	Pos    canvas.Vec
	DX, DY float64
	Mods   Modifiers
}

type Key int

const (
	KeyDelete Key = iota
)

type KeyEvent struct {
	Key Key
}
