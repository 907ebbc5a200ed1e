package render

import (
	"image"
	"image/color"

	"battle-map/canvas"
)

// Bitmap is anything drawable with known pixel bounds. Both image.Image and
// *ebiten.Image satisfy it.
type Bitmap interface {
	Bounds() image.Rectangle
}

// Font selects a text size in the units of the current transform.
type Font struct {
	Size float64
	Bold bool
}

// Surface is an immediate-mode 2D canvas. Every coordinate and length passed
// to it is mapped through the current transform:
//
//	ui = p*scale + offset
type Surface interface {
	SetTransform(scale float64, offset canvas.Vec)
	DrawImage(img Bitmap, dst canvas.Rect)
	FillRect(r canvas.Rect, c color.Color)
	DrawRect(r canvas.Rect, stroke float64, c color.Color)
	DrawLine(a, b canvas.Vec, stroke float64, c color.Color)
	DrawCircle(center canvas.Vec, radius, stroke float64, c color.Color)
	// DrawText draws s with its top-left corner at p.
	DrawText(s string, p canvas.Vec, f Font, c color.Color)
	MeasureText(s string, f Font) canvas.Size
}

// ImageSource resolves image paths to bitmaps. It never fails: unknown or
// broken paths resolve to a placeholder.
type ImageSource interface {
	Image(path string) Bitmap
}

// Overlay draws in UI space after the world pass.
type Overlay interface {
	Draw(s Surface, screen canvas.Size)
}

// Identity resets s to draw in UI space.
func Identity(s Surface) { s.SetTransform(1, canvas.Vec{}) }
