package canvas

import "math"

// Grid describes the overlay grid in world units. It is a plain value copied
// out of the live settings whenever it is needed.
type Grid struct {
	Enabled   bool
	CellSize  float64
	Thickness float64
	Offset    Vec
}

// Valid reports whether the grid has a usable cell size. An invalid grid
// never snaps and is never drawn.
func (g Grid) Valid() bool {
	return g.CellSize > 0 && !math.IsInf(g.CellSize, 0)
}

// CellOrigin returns the top-left corner of the cell containing p.
func (g Grid) CellOrigin(p Vec) (Vec, bool) {
	if !g.Valid() {
		return p, false
	}
	return Vec{
		X: math.Floor((p.X-g.Offset.X)/g.CellSize)*g.CellSize + g.Offset.X,
		Y: math.Floor((p.Y-g.Offset.Y)/g.CellSize)*g.CellSize + g.Offset.Y,
	}, true
}

// SnapCentered returns the top-left position that centres a square of side
// size in the cell containing the square's current centre.
func (g Grid) SnapCentered(topLeft Vec, size float64) Vec {
	half := size / 2
	origin, ok := g.CellOrigin(topLeft.Add(Vec{half, half}))
	if !ok {
		return topLeft
	}
	c := g.CellSize / 2
	return origin.Add(Vec{c - half, c - half})
}

// Lines returns the world x coordinates of vertical grid lines and the y
// coordinates of horizontal ones that fall inside area.
func (g Grid) Lines(area Rect) (xs, ys []float64) {
	if !g.Valid() {
		return nil, nil
	}
	return axisLines(area.Min.X, area.Max.X, g.Offset.X, g.CellSize),
		axisLines(area.Min.Y, area.Max.Y, g.Offset.Y, g.CellSize)
}

const maxGridLines = 4096

func axisLines(lo, hi, offset, cell float64) []float64 {
	first := math.Ceil((lo-offset)/cell)*cell + offset
	var out []float64
	for v := first; v <= hi && len(out) < maxGridLines; v += cell {
		out = append(out, v)
	}
	return out
}
