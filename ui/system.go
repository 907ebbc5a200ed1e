package ui

import (
	"battle-map/canvas"
	"battle-map/render"
)

// UISystem holds the screen-space widgets and draws them as the UI pass.
type UISystem struct {
	buttons []*Button
	screen  canvas.Size

	Tooltip *Tooltip
	Debug   *DebugPanel
}

func NewUISystem(onZoomIn, onZoomOut func(), tooltip *Tooltip, debug *DebugPanel) *UISystem {
	ui := &UISystem{
		Tooltip: tooltip,
		Debug:   debug,
	}
	ui.buttons = []*Button{
		{Label: "+", W: 30, H: 30, OnClick: onZoomIn},
		{Label: "-", W: 30, H: 30, OnClick: onZoomOut},
	}
	return ui
}

// Layout positions the buttons along the top-right edge of the screen.
func (ui *UISystem) Layout(screen canvas.Size) {
	ui.screen = screen
	x := screen.W - 10
	for _, b := range ui.buttons {
		x -= b.W
		b.X, b.Y = x, 10
		x -= 10
	}
}

func (ui *UISystem) Buttons() []*Button { return ui.buttons }

func (ui *UISystem) IsMouseOver(p canvas.Vec) bool {
	for _, b := range ui.buttons {
		if b.IsMouseOver(p) {
			return true
		}
	}
	return false
}

// Click runs the handler of the button under p and reports whether a button
// consumed the click.
func (ui *UISystem) Click(p canvas.Vec) bool {
	for _, b := range ui.buttons {
		if b.IsMouseOver(p) {
			if b.OnClick != nil {
				b.OnClick()
			}
			return true
		}
	}
	return false
}

// Draw implements render.Overlay.
func (ui *UISystem) Draw(s render.Surface, screen canvas.Size) {
	if screen != ui.screen {
		ui.Layout(screen)
	}
	if ui.Tooltip != nil {
		ui.Tooltip.Draw(s, screen)
	}
	for _, b := range ui.buttons {
		b.Draw(s)
	}
	if ui.Debug != nil {
		ui.Debug.Draw(s, screen)
	}
}
