package input

import (
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"battle-map/canvas"
	"battle-map/settings"
	"battle-map/tokens"
)

func inLog() *zerolog.Logger {
	l := log.With().Str("module", "input").Logger()
	return &l
}

// Host defines the callbacks the engine needs from the application.
type Host interface {
	RequestRedraw()
	OpenTokenEditor(t *tokens.Token)
}

type Options struct {
	// NarrowOnModifierClick makes a multi-select click on an already
	// selected token behave like a plain click: if the pointer does not move
	// before release, the selection narrows to that token. When false the
	// click toggles the token out of the selection.
	NarrowOnModifierClick bool
	// PanStep is the UI distance panned per wheel notch.
	PanStep float64
}

func DefaultOptions() Options {
	return Options{PanStep: 40}
}

type gestureState int

const (
	stateIdle gestureState = iota
	statePending
	stateDragging
	stateMarquee
	statePanning
)

func (s gestureState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case statePending:
		return "pending"
	case stateDragging:
		return "dragging"
	case stateMarquee:
		return "marquee"
	case statePanning:
		return "panning"
	}
	return "unknown"
}

// Engine turns abstract pointer, wheel and key events into token, selection
// and viewport changes. It must only be used from the game loop.
type Engine struct {
	reg      *tokens.Registry
	view     *canvas.Viewport
	settings *settings.Store
	host     Host
	opts     Options

	sel   *Selection
	state gestureState

	pressToken   *tokens.Token
	pressUI      canvas.Vec
	narrowOnDrop bool
	panFrom      canvas.Vec

	pointer canvas.Vec
	hovered *tokens.Token
	measure canvas.Measure
}

func NewEngine(reg *tokens.Registry, view *canvas.Viewport, store *settings.Store, host Host, opts Options) *Engine {
	e := &Engine{
		reg:      reg,
		view:     view,
		settings: store,
		host:     host,
		opts:     opts,
		sel:      NewSelection(),
	}
	view.Animate = store.Get().View.SmoothScrolling

	reg.Subscribe(func() {
		e.sel.Prune(reg)
		if e.hovered != nil && !reg.Has(e.hovered.ID) {
			e.hovered = nil
		}
		e.host.RequestRedraw()
	})
	store.Subscribe(func(k settings.Key) {
		if k == settings.SmoothScrolling {
			e.view.Animate = e.settings.Get().View.SmoothScrolling
		}
		e.host.RequestRedraw()
	})
	return e
}

func (e *Engine) Selection() *Selection { return e.sel }

func (e *Engine) IsSelected(id uuid.UUID) bool { return e.sel.Has(id) }

// Hovered returns the token under the pointer while no gesture is active.
func (e *Engine) Hovered() *tokens.Token { return e.hovered }

// Pointer returns the last known pointer position in UI space.
func (e *Engine) Pointer() canvas.Vec { return e.pointer }

// PointerWorld returns the last known pointer position in world space.
func (e *Engine) PointerWorld() canvas.Vec { return e.view.UIToWorld(e.pointer) }

// Marquee returns the active marquee rectangle in world space.
func (e *Engine) Marquee() (canvas.Rect, bool) {
	if e.sel.Marquee == nil || e.state != stateMarquee {
		return canvas.Rect{}, false
	}
	return e.sel.Marquee.Rect(), true
}

// Measure returns the active ruler, if any.
func (e *Engine) Measure() (canvas.Measure, bool) {
	return e.measure, e.measure.Mode != canvas.MeasureNone
}

// SetMeasureMode starts, reshapes or ends the ruler. A ruler starts at the
// pointer's current world position and keeps that start while its shape
// changes.
func (e *Engine) SetMeasureMode(mode canvas.MeasureMode) {
	if mode == e.measure.Mode {
		return
	}
	if mode == canvas.MeasureNone {
		e.measure = canvas.Measure{}
	} else {
		if e.measure.Mode == canvas.MeasureNone {
			start := e.PointerWorld()
			e.measure.Start, e.measure.End = start, start
		}
		e.measure.Mode = mode
	}
	e.host.RequestRedraw()
}

func (e *Engine) iconSize() float64 { return e.settings.Get().Token.IconSize }

func (e *Engine) HandlePointer(ev PointerEvent) {
	e.pointer = ev.Pos
	if e.measure.Mode != canvas.MeasureNone {
		e.measure.End = e.view.UIToWorld(ev.Pos)
		e.host.RequestRedraw()
	}

	switch ev.Kind {
	case Press:
		e.press(ev)
	case Move:
		e.move(ev)
	case Release:
		e.release(ev)
	case DoubleClick:
		e.doubleClick(ev)
	}
}

func (e *Engine) press(ev PointerEvent) {
	if e.state != stateIdle {
		return
	}
	e.hovered = nil

	if ev.Button == ButtonMiddle {
		e.state = statePanning
		e.panFrom = ev.Pos
		return
	}
	if ev.Button != ButtonLeft {
		return
	}

	world := e.view.UIToWorld(ev.Pos)
	e.pressUI = ev.Pos
	e.narrowOnDrop = false
	e.state = statePending

	hit := e.reg.TopmostAt(world, e.iconSize())
	e.pressToken = hit
	if hit == nil {
		if !ev.Mods.Has(ModMulti) {
			e.sel.Clear()
		}
		e.sel.Marquee = &Marquee{Start: world, End: world}
		e.host.RequestRedraw()
		return
	}

	selected := e.sel.Has(hit.ID)
	switch {
	case ev.Mods.Has(ModMulti) && selected && e.opts.NarrowOnModifierClick:
		e.narrowOnDrop = true
	case ev.Mods.Has(ModMulti):
		e.sel.Toggle(hit.ID)
	case selected:
		e.narrowOnDrop = true
	default:
		e.sel.Only(hit.ID)
	}

	e.reg.BringToFront(hit.ID)
	e.sel.BeginDrag(e.reg, world)
	e.host.RequestRedraw()
}

func (e *Engine) move(ev PointerEvent) {
	switch e.state {
	case stateIdle:
		e.updateHover(ev.Pos)
	case statePanning:
		e.view.PanBy(ev.Pos.Sub(e.panFrom))
		e.panFrom = ev.Pos
		e.host.RequestRedraw()
	case statePending:
		if e.pressToken != nil {
			e.state = stateDragging
		} else {
			e.state = stateMarquee
		}
		e.move(ev)
	case stateDragging:
		e.dragTo(e.view.UIToWorld(ev.Pos), ev.Mods.Has(ModSnap))
	case stateMarquee:
		e.sel.Marquee.End = e.view.UIToWorld(ev.Pos)
		e.host.RequestRedraw()
	}
}

func (e *Engine) dragTo(world canvas.Vec, snap bool) {
	icon := e.iconSize()
	grid := e.settings.Get().GridSettings()
	drawing := e.view.DrawingSize()

	for _, d := range e.sel.Drag {
		t, ok := e.reg.Get(d.ID)
		if !ok {
			continue
		}
		side := t.Side(icon)
		p := world.Add(d.Offset)
		if snap {
			p = grid.SnapCentered(p, side)
		}
		p.X = clampToDrawing(p.X, drawing.W, side)
		p.Y = clampToDrawing(p.Y, drawing.H, side)
		t.SetPosition(p)
	}
}

// clampToDrawing keeps a token of the given side inside [0, extent]. A
// degenerate extent only enforces the lower bound, and a token larger than
// the drawing is pinned to 0.
func clampToDrawing(v, extent, side float64) float64 {
	if extent > 0 {
		v = math.Min(v, extent-side)
	}
	return math.Max(v, 0)
}

func (e *Engine) release(ev PointerEvent) {
	switch e.state {
	case statePanning:
		if ev.Button == ButtonMiddle {
			e.state = stateIdle
		}
		return
	case statePending, stateDragging:
		if ev.Button != ButtonLeft {
			return
		}
		if e.pressToken != nil {
			if e.narrowOnDrop && ev.Pos == e.pressUI && e.reg.Has(e.pressToken.ID) {
				e.sel.Only(e.pressToken.ID)
			}
		} else {
			// Pending without a token is a click on empty space.
			e.finishMarquee(ev)
		}
	case stateMarquee:
		if ev.Button != ButtonLeft {
			return
		}
		e.sel.Marquee.End = e.view.UIToWorld(ev.Pos)
		e.finishMarquee(ev)
	default:
		return
	}

	e.sel.EndGesture()
	e.pressToken = nil
	e.narrowOnDrop = false
	e.state = stateIdle
	e.updateHover(ev.Pos)
	e.host.RequestRedraw()
}

func (e *Engine) finishMarquee(ev PointerEvent) {
	if e.sel.Marquee == nil {
		return
	}
	r := e.sel.Marquee.Rect()
	if r.Width() == 0 || r.Height() == 0 {
		return
	}
	found := e.reg.InArea(r, e.iconSize())
	e.sel.Merge(found, ev.Mods.Has(ModMulti))
	inLog().Debug().Int("found", len(found)).Int("selected", e.sel.Len()).Msg("marquee selection")
}

func (e *Engine) doubleClick(ev PointerEvent) {
	if ev.Button != ButtonLeft {
		return
	}
	hit := e.reg.TopmostAt(e.view.UIToWorld(ev.Pos), e.iconSize())
	if hit == nil {
		return
	}
	inLog().Info().Str("token", hit.Name).Msg("open token editor")
	e.host.OpenTokenEditor(hit)
}

func (e *Engine) updateHover(pos canvas.Vec) {
	hit := e.reg.TopmostAt(e.view.UIToWorld(pos), e.iconSize())
	if hit != e.hovered {
		e.hovered = hit
		e.host.RequestRedraw()
	}
}

// HandleWheel zooms around the pointer when ModZoom is held and pans
// otherwise.
func (e *Engine) HandleWheel(ev WheelEvent) {
	e.pointer = ev.Pos
	switch {
	case ev.Mods.Has(ModZoom):
		if ev.DY == 0 {
			return
		}
		e.view.ZoomAt(ev.Pos, ev.DY)
	case ev.Mods.Has(ModHorizontal):
		e.view.PanBy(canvas.Vec{X: (ev.DY + ev.DX) * e.opts.PanStep})
	default:
		e.view.PanBy(canvas.Vec{X: ev.DX * e.opts.PanStep, Y: ev.DY * e.opts.PanStep})
	}
	e.RefreshHover()
	e.host.RequestRedraw()
}

// RefreshHover recomputes the hovered token under the last pointer position.
// Call it whenever the view moves under a still pointer.
func (e *Engine) RefreshHover() {
	if e.state == stateIdle {
		e.updateHover(e.pointer)
	}
}

func (e *Engine) HandleKey(ev KeyEvent) {
	switch ev.Key {
	case KeyDelete:
		e.DeleteSelected()
	}
}

// DeleteSelected removes every selected token from the registry.
func (e *Engine) DeleteSelected() {
	ids := e.sel.IDs()
	if len(ids) == 0 {
		return
	}
	if e.state == stateDragging || e.state == statePending {
		e.sel.EndGesture()
		e.pressToken = nil
		e.state = stateIdle
	}
	for _, id := range ids {
		e.reg.Remove(id)
	}
	e.sel.Clear()
	inLog().Info().Int("count", len(ids)).Msg("deleted selected tokens")
}
