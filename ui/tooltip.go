package ui

import (
	"image/color"

	"battle-map/canvas"
	"battle-map/render"
	"battle-map/tokens"
)

var (
	ColorTooltip     = color.RGBA{192, 192, 192, 255}
	ColorTooltipText = color.RGBA{0, 0, 0, 255}
)

const (
	tooltipPadding  = 4.0
	tooltipLineGap  = 3.0
	tooltipTokenGap = 10.0
	tooltipFontSize = 15.0
)

// Tooltip describes the hovered token next to it on screen.
type Tooltip struct {
	View     *canvas.Viewport
	Hovered  func() *tokens.Token
	IconSize func() float64
}

func tooltipLines(t *tokens.Token) []string {
	return []string{t.Name, t.Faction.String(), t.Movement}
}

// Placement returns the tooltip box for t on a screen of the given size. The
// box sits to the right of the token, flips to the left when it would run
// past the right edge, and is pulled up when it would run past the bottom.
func (tt *Tooltip) Placement(t *tokens.Token, screen canvas.Size, measure func(string) canvas.Size) canvas.Rect {
	var w, h float64
	for _, line := range tooltipLines(t) {
		size := measure(line)
		if size.W > w {
			w = size.W
		}
		h += size.H + tooltipLineGap
	}
	w += 2 * tooltipPadding
	h += 2 * tooltipPadding

	b := t.Bounds(tt.IconSize())
	topLeft := tt.View.WorldToUI(b.Min)
	bottomRight := tt.View.WorldToUI(b.Max)

	x := bottomRight.X + tooltipTokenGap
	y := topLeft.Y
	if x+w > screen.W {
		x = topLeft.X - tooltipTokenGap - w
	}
	if y+h > screen.H {
		y = screen.H - h
	}
	return canvas.RectAt(canvas.Vec{X: x, Y: y}, w, h)
}

func (tt *Tooltip) Draw(s render.Surface, screen canvas.Size) {
	if tt.Hovered == nil {
		return
	}
	t := tt.Hovered()
	if t == nil {
		return
	}
	f := render.Font{Size: tooltipFontSize, Bold: true}
	measure := func(line string) canvas.Size { return s.MeasureText(line, f) }

	box := tt.Placement(t, screen, measure)
	s.FillRect(box, ColorTooltip)

	y := box.Min.Y + tooltipPadding
	for _, line := range tooltipLines(t) {
		s.DrawText(line, canvas.Vec{X: box.Min.X + tooltipPadding, Y: y}, f, ColorTooltipText)
		y += measure(line).H + tooltipLineGap
	}
}
