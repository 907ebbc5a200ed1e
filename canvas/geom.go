package canvas

import "math"

// Vec is a 2D point or displacement. Depending on context it lives in world
// space (map units) or UI space (viewport pixels).
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

func (v Vec) Scale(f float64) Vec { return Vec{v.X * f, v.Y * f} }

// Dist returns the euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

// Size is a width/height pair. A zero or negative component marks that axis
// as degenerate.
type Size struct {
	W, H float64
}

func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Rect is an axis aligned rectangle. Min is inclusive, Max is exclusive.
type Rect struct {
	Min, Max Vec
}

// RectFromPoints builds the normalized rectangle spanned by two corners in
// any order.
func RectFromPoints(a, b Vec) Rect {
	return Rect{
		Min: Vec{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Vec{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

// RectAt returns the rectangle with top-left corner p and the given size.
func RectAt(p Vec, w, h float64) Rect {
	return Rect{Min: p, Max: Vec{p.X + w, p.Y + h}}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Min.X && p.X < r.Max.X &&
		p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Intersects reports whether r and o overlap. Touching edges count, so a
// zero-area marquee dropped onto a token still picks it up.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
