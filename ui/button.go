package ui

import (
	"image/color"

	"battle-map/canvas"
	"battle-map/render"
)

var (
	ColorButton      = color.RGBA{60, 60, 70, 200}
	ColorButtonLabel = color.RGBA{255, 255, 255, 255}
)

type Button struct {
	Label   string
	X, Y    float64
	W, H    float64
	OnClick func()
}

func (b *Button) Bounds() canvas.Rect { return canvas.RectAt(canvas.Vec{X: b.X, Y: b.Y}, b.W, b.H) }

func (b *Button) IsMouseOver(p canvas.Vec) bool {
	return p.X >= b.X && p.X <= b.X+b.W &&
		p.Y >= b.Y && p.Y <= b.Y+b.H
}

// Draw renders the button with its label centred.
func (b *Button) Draw(s render.Surface) {
	s.FillRect(b.Bounds(), ColorButton)
	f := render.Font{Size: 16, Bold: true}
	size := s.MeasureText(b.Label, f)
	s.DrawText(b.Label, canvas.Vec{X: b.X + (b.W-size.W)/2, Y: b.Y + (b.H-size.H)/2}, f, ColorButtonLabel)
}
