package ui

import (
	"fmt"
	"image/color"

	"battle-map/canvas"
	"battle-map/render"
	"battle-map/tokens"
)

var (
	ColorPanel      = color.RGBA{40, 40, 40, 220}
	ColorDebugText  = color.RGBA{255, 255, 255, 255}
	ColorErrorText  = color.RGBA{255, 200, 50, 255}
	debugFont       = render.Font{Size: 14}
	debugLineHeight = 20.0
)

// DebugPanel shows viewport diagnostics in the top-left corner when Visible
// and the last reported error in the bottom-right corner.
type DebugPanel struct {
	View    *canvas.Viewport
	Tokens  *tokens.Registry
	Visible func() bool

	Error string
}

func (d *DebugPanel) SetError(msg string) {
	d.Error = msg
}

func (d *DebugPanel) Clear() {
	d.Error = ""
}

// Lines returns the diagnostic text, one entry per line.
func (d *DebugPanel) Lines() []string {
	if d.View == nil {
		return nil
	}
	dr, sc := d.View.DrawingSize(), d.View.ScreenSize()
	lines := []string{
		fmt.Sprintf("Drawing Dimensions: %dx%d", int(dr.W), int(dr.H)),
		fmt.Sprintf("Screen Size: %dx%d", int(sc.W), int(sc.H)),
		fmt.Sprintf("Scale: %.3f (target %.3f)", d.View.Scale, d.View.TargetScale),
		fmt.Sprintf("Offset: %.1f, %.1f", d.View.Offset.X, d.View.Offset.Y),
	}
	if d.Tokens != nil {
		lines = append(lines, fmt.Sprintf("Tokens: %d", d.Tokens.Len()))
	}
	return lines
}

func (d *DebugPanel) Draw(s render.Surface, screen canvas.Size) {
	if d == nil {
		return
	}
	if d.Visible != nil && d.Visible() {
		for i, line := range d.Lines() {
			s.DrawText(line, canvas.Vec{X: 10, Y: 10 + float64(i)*debugLineHeight}, debugFont, ColorDebugText)
		}
	}
	if d.Error == "" {
		return
	}
	pw, ph := 300.0, 80.0
	x := screen.W - pw - 10
	y := screen.H - ph - 10
	s.FillRect(canvas.RectAt(canvas.Vec{X: x, Y: y}, pw, ph), ColorPanel)
	s.DrawText(d.Error, canvas.Vec{X: x + 8, Y: y + 8}, debugFont, ColorErrorText)
}
