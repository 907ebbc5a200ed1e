package canvas

import "math"

const (
	// ZoomFactor is the multiplicative scale change per wheel notch.
	ZoomFactor = 1.3
	// EaseFactor is the fraction of the remaining distance covered per tick
	// while animating.
	EaseFactor = 0.1
	// MaxScale caps zooming in.
	MaxScale = 10.0

	settleEpsilon = 1e-4
)

// Viewport maps between UI space and world space:
//
//	ui = world*Scale + Offset
//
// Scale and Offset are the values in use for drawing. TargetScale and
// TargetOffset are where user input wants the view to be; Tick moves the
// current values toward the target. Both pairs are kept clamped so the
// drawing area always covers the whole screen.
type Viewport struct {
	Scale        float64
	TargetScale  float64
	Offset       Vec
	TargetOffset Vec

	// Animate enables eased interpolation toward the target. When false,
	// every mutation is applied immediately.
	Animate bool

	screen  Size
	drawing Size
}

// NewViewport returns a viewport at scale 1 showing the top-left corner of
// the drawing area.
func NewViewport(screen, drawing Size) *Viewport {
	v := &Viewport{
		Scale:       1,
		TargetScale: 1,
		screen:      screen,
		drawing:     drawing,
	}
	v.TargetScale, v.TargetOffset = v.clamp(v.TargetScale, v.TargetOffset)
	v.settle()
	return v
}

func (v *Viewport) ScreenSize() Size  { return v.screen }
func (v *Viewport) DrawingSize() Size { return v.drawing }

func (v *Viewport) WorldToUI(p Vec) Vec {
	return p.Scale(v.Scale).Add(v.Offset)
}

func (v *Viewport) UIToWorld(p Vec) Vec {
	return p.Sub(v.Offset).Scale(1 / v.Scale)
}

// VisibleWorld returns the part of world space currently on screen.
func (v *Viewport) VisibleWorld() Rect {
	return RectFromPoints(v.UIToWorld(Vec{}), v.UIToWorld(Vec{v.screen.W, v.screen.H}))
}

// ZoomAt zooms in (direction > 0) or out (direction < 0) by ZoomFactor per
// unit of direction, keeping the world point under anchor fixed on screen.
func (v *Viewport) ZoomAt(anchor Vec, direction float64) {
	if direction == 0 {
		return
	}
	// The anchor is resolved against the target so that several notches
	// during one animation compose instead of fighting each other.
	anchorWorld := anchor.Sub(v.TargetOffset).Scale(1 / v.TargetScale)

	scale := v.TargetScale * math.Pow(ZoomFactor, direction)
	v.TargetScale, _ = v.clamp(scale, v.TargetOffset)
	v.TargetOffset = anchor.Sub(anchorWorld.Scale(v.TargetScale))
	v.retarget()
}

// PanBy shifts the view by a UI-space delta.
func (v *Viewport) PanBy(delta Vec) {
	v.TargetOffset = v.TargetOffset.Add(delta)
	v.retarget()
}

// Resize updates the screen size. The target offset is rescaled by the size
// ratio so the view keeps roughly the same region in frame.
func (v *Viewport) Resize(screen Size) {
	if screen == v.screen {
		return
	}
	if v.screen.W > 0 && screen.W > 0 {
		v.TargetOffset.X *= screen.W / v.screen.W
	}
	if v.screen.H > 0 && screen.H > 0 {
		v.TargetOffset.Y *= screen.H / v.screen.H
	}
	v.screen = screen
	v.retarget()
	v.Scale, v.Offset = v.clamp(v.Scale, v.Offset)
}

// SetDrawingSize updates the extent of the world (usually the background
// image size) and re-clamps.
func (v *Viewport) SetDrawingSize(drawing Size) {
	if drawing == v.drawing {
		return
	}
	v.drawing = drawing
	v.retarget()
	v.Scale, v.Offset = v.clamp(v.Scale, v.Offset)
}

// Tick advances the animation by one step and reports whether the current
// transform changed.
func (v *Viewport) Tick() bool {
	prevScale, prevOffset := v.Scale, v.Offset

	v.TargetScale, v.TargetOffset = v.clamp(v.TargetScale, v.TargetOffset)
	if v.Animate {
		v.Scale += (v.TargetScale - v.Scale) * EaseFactor
		v.Offset = v.Offset.Add(v.TargetOffset.Sub(v.Offset).Scale(EaseFactor))
		if v.closeToTarget() {
			v.settle()
		}
	} else {
		v.settle()
	}
	v.Scale, v.Offset = v.clamp(v.Scale, v.Offset)

	return v.Scale != prevScale || v.Offset != prevOffset
}

// Settled reports whether the current transform has reached the target.
func (v *Viewport) Settled() bool {
	return v.Scale == v.TargetScale && v.Offset == v.TargetOffset
}

// MinScale returns the smallest scale at which the drawing area covers the
// screen on every non-degenerate axis. ok is false when both axes are
// degenerate.
func (v *Viewport) MinScale() (scale float64, ok bool) {
	if v.screen.W > 0 && v.drawing.W > 0 {
		scale, ok = v.screen.W/v.drawing.W, true
	}
	if v.screen.H > 0 && v.drawing.H > 0 {
		scale, ok = math.Max(scale, v.screen.H/v.drawing.H), true
	}
	return scale, ok
}

func (v *Viewport) retarget() {
	v.TargetScale, v.TargetOffset = v.clamp(v.TargetScale, v.TargetOffset)
	if !v.Animate {
		v.settle()
	}
}

func (v *Viewport) settle() {
	v.Scale, v.Offset = v.TargetScale, v.TargetOffset
}

func (v *Viewport) closeToTarget() bool {
	return math.Abs(v.TargetScale-v.Scale) < settleEpsilon*v.TargetScale &&
		math.Abs(v.TargetOffset.X-v.Offset.X) < settleEpsilon*100 &&
		math.Abs(v.TargetOffset.Y-v.Offset.Y) < settleEpsilon*100
}

// clamp applies the covering rule: scale no smaller than MinScale, and the
// offset pinned to [screen - drawing*scale, 0] on each axis.
func (v *Viewport) clamp(scale float64, offset Vec) (float64, Vec) {
	if scale > MaxScale {
		scale = MaxScale
	}
	if floor, ok := v.MinScale(); ok && scale < floor {
		scale = floor
	}
	offset.X = clampAxis(offset.X, v.screen.W, v.drawing.W*scale)
	offset.Y = clampAxis(offset.Y, v.screen.H, v.drawing.H*scale)
	return scale, offset
}

func clampAxis(offset, screen, content float64) float64 {
	if screen <= 0 || content <= 0 {
		return offset
	}
	lo := screen - content
	if lo > 0 {
		lo = 0
	}
	return clamp(offset, lo, 0)
}
