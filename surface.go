package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"battle-map/canvas"
	"battle-map/render"
)

// ebitenSurface implements render.Surface on top of an ebiten image. World
// coordinates are mapped to screen pixels before drawing so strokes and text
// stay crisp at any zoom.
type ebitenSurface struct {
	dst    *ebiten.Image
	fonts  *FontCache
	scale  float64
	offset canvas.Vec
}

func newSurface(dst *ebiten.Image, fonts *FontCache) *ebitenSurface {
	return &ebitenSurface{dst: dst, fonts: fonts, scale: 1}
}

func (s *ebitenSurface) SetTransform(scale float64, offset canvas.Vec) {
	s.scale, s.offset = scale, offset
}

func (s *ebitenSurface) toUI(p canvas.Vec) canvas.Vec {
	return p.Scale(s.scale).Add(s.offset)
}

func (s *ebitenSurface) uiRect(r canvas.Rect) (x, y, w, h float32) {
	tl := s.toUI(r.Min)
	return float32(tl.X), float32(tl.Y), float32(r.Width() * s.scale), float32(r.Height() * s.scale)
}

func (s *ebitenSurface) DrawImage(bm render.Bitmap, dst canvas.Rect) {
	img, ok := bm.(*ebiten.Image)
	if !ok {
		src, isImage := bm.(image.Image)
		if !isImage {
			return
		}
		img = ebiten.NewImageFromImage(src)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	x, y, w, h := s.uiRect(dst)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(img, op)
}

func (s *ebitenSurface) FillRect(r canvas.Rect, c color.Color) {
	x, y, w, h := s.uiRect(r)
	vector.DrawFilledRect(s.dst, x, y, w, h, c, false)
}

func (s *ebitenSurface) DrawRect(r canvas.Rect, stroke float64, c color.Color) {
	x, y, w, h := s.uiRect(r)
	vector.StrokeRect(s.dst, x, y, w, h, float32(stroke*s.scale), c, true)
}

func (s *ebitenSurface) DrawLine(a, b canvas.Vec, stroke float64, c color.Color) {
	ua, ub := s.toUI(a), s.toUI(b)
	vector.StrokeLine(s.dst, float32(ua.X), float32(ua.Y), float32(ub.X), float32(ub.Y), float32(stroke*s.scale), c, true)
}

func (s *ebitenSurface) DrawCircle(center canvas.Vec, radius, stroke float64, c color.Color) {
	uc := s.toUI(center)
	vector.StrokeCircle(s.dst, float32(uc.X), float32(uc.Y), float32(radius*s.scale), float32(stroke*s.scale), c, true)
}

func (s *ebitenSurface) DrawText(str string, p canvas.Vec, f render.Font, c color.Color) {
	face := s.fonts.Face(f.Size*s.scale, f.Bold)
	up := s.toUI(p)
	DrawTextLines(s.dst, face, str, int(up.X), int(up.Y), c)
}

func (s *ebitenSurface) MeasureText(str string, f render.Font) canvas.Size {
	face := s.fonts.Face(f.Size*s.scale, f.Bold)
	w, h := MeasureTextLines(face, str)
	return canvas.Size{W: float64(w) / s.scale, H: float64(h) / s.scale}
}
