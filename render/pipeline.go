package render

import (
	"image/color"
	"math"
	"strconv"

	"github.com/google/uuid"

	"battle-map/canvas"
	"battle-map/settings"
	"battle-map/tokens"
)

var (
	ColorEmptyMap     = color.RGBA{30, 30, 35, 255}
	ColorGrid         = color.RGBA{0, 0, 0, 160}
	ColorLabel        = color.RGBA{255, 255, 255, 255}
	ColorLabelShadow  = color.RGBA{0, 0, 0, 200}
	ColorMarqueeFill  = color.RGBA{100, 150, 255, 50}
	ColorMarqueeEdge  = color.RGBA{100, 150, 255, 220}
	ColorMeasure      = color.RGBA{255, 220, 40, 255}
	ColorMeasureLabel = color.RGBA{0, 0, 0, 255}
)

const (
	LabelSize       = 20.0
	LabelGap        = 2.0
	MarqueeStroke   = 1.0
	MeasureStroke   = 2.0
	MeasureTextSize = 16.0
	coneDash        = 6.0
)

// Interaction is the gesture state the pipeline needs to draw.
type Interaction interface {
	IsSelected(id uuid.UUID) bool
	Marquee() (canvas.Rect, bool)
	Measure() (canvas.Measure, bool)
}

// Pipeline draws one frame: a world pass under the viewport transform and a
// UI pass under the identity transform.
type Pipeline struct {
	View       *canvas.Viewport
	Tokens     *tokens.Registry
	Settings   *settings.Store
	Images     ImageSource
	State      Interaction
	Background string
	Overlays   []Overlay
}

func (p *Pipeline) Render(s Surface) {
	s.SetTransform(p.View.Scale, p.View.Offset)
	p.drawWorld(s)

	Identity(s)
	for _, o := range p.Overlays {
		o.Draw(s, p.View.ScreenSize())
	}
}

func (p *Pipeline) drawWorld(s Surface) {
	vals := p.Settings.Get()
	scale := p.View.Scale
	visible := p.View.VisibleWorld()

	p.drawBackground(s)
	p.drawGrid(s, vals.GridSettings(), visible, scale)
	p.drawTokens(s, vals, visible, scale)

	if p.State == nil {
		return
	}
	if r, ok := p.State.Marquee(); ok {
		s.FillRect(r, ColorMarqueeFill)
		s.DrawRect(r, MarqueeStroke/scale, ColorMarqueeEdge)
	}
	if m, ok := p.State.Measure(); ok {
		drawMeasure(s, m, scale)
	}
}

func (p *Pipeline) drawBackground(s Surface) {
	d := p.View.DrawingSize()
	area := canvas.RectAt(canvas.Vec{}, d.W, d.H)
	if p.Background == "" || p.Images == nil {
		s.FillRect(area, ColorEmptyMap)
		return
	}
	s.DrawImage(p.Images.Image(p.Background), area)
}

func (p *Pipeline) drawGrid(s Surface, g canvas.Grid, visible canvas.Rect, scale float64) {
	if !g.Enabled || !g.Valid() || g.Thickness <= 0 {
		return
	}
	d := p.View.DrawingSize()
	area := visible
	if !d.Empty() {
		area = intersect(visible, canvas.RectAt(canvas.Vec{}, d.W, d.H))
	}
	stroke := g.Thickness / scale
	xs, ys := g.Lines(area)
	for _, x := range xs {
		s.DrawLine(canvas.Vec{X: x, Y: area.Min.Y}, canvas.Vec{X: x, Y: area.Max.Y}, stroke, ColorGrid)
	}
	for _, y := range ys {
		s.DrawLine(canvas.Vec{X: area.Min.X, Y: y}, canvas.Vec{X: area.Max.X, Y: y}, stroke, ColorGrid)
	}
}

func (p *Pipeline) drawTokens(s Surface, vals settings.Values, visible canvas.Rect, scale float64) {
	icon := vals.Token.IconSize
	outline := vals.Token.Outline / scale
	label := Font{Size: LabelSize / scale, Bold: true}

	for _, t := range p.Tokens.All() {
		b := t.Bounds(icon)
		if !b.Intersects(visible) {
			continue
		}
		if p.Images != nil {
			s.DrawImage(p.Images.Image(t.ImagePath), b)
		}

		c := t.Faction.Outline()
		if p.State != nil && p.State.IsSelected(t.ID) {
			c = t.Faction.Highlight()
		}
		if c.A > 0 && outline > 0 {
			half := outline / 2
			s.DrawRect(canvas.Rect{
				Min: b.Min.Sub(canvas.Vec{X: half, Y: half}),
				Max: b.Max.Add(canvas.Vec{X: half, Y: half}),
			}, outline, c)
		}

		if t.Name == "" {
			continue
		}
		size := s.MeasureText(t.Name, label)
		at := canvas.Vec{
			X: b.Min.X + (b.Width()-size.W)/2,
			Y: b.Max.Y + outline + LabelGap/scale,
		}
		s.DrawText(t.Name, at.Add(canvas.Vec{X: 1 / scale, Y: 1 / scale}), label, ColorLabelShadow)
		s.DrawText(t.Name, at, label, ColorLabel)
	}
}

func drawMeasure(s Surface, m canvas.Measure, scale float64) {
	stroke := MeasureStroke / scale
	switch m.Mode {
	case canvas.MeasureLine:
		s.DrawLine(m.Start, m.End, stroke, ColorMeasure)
	case canvas.MeasureCircle:
		s.DrawCircle(m.Start, m.Length(), stroke, ColorMeasure)
		s.DrawLine(m.Start, m.End, stroke, ColorMeasure)
	case canvas.MeasureCone:
		a, b := m.ConeEdges()
		s.DrawLine(m.Start, a, stroke, ColorMeasure)
		s.DrawLine(m.Start, b, stroke, ColorMeasure)
		drawDashed(s, a, b, coneDash/scale, stroke, ColorMeasure)
	default:
		return
	}

	f := Font{Size: MeasureTextSize / scale, Bold: true}
	text := strconv.Itoa(int(m.Length()))
	size := s.MeasureText(text, f)
	mid := m.Start.Add(m.End).Scale(0.5)
	s.DrawText(text, mid.Sub(canvas.Vec{X: size.W / 2, Y: size.H / 2}), f, ColorMeasureLabel)
}

func drawDashed(s Surface, a, b canvas.Vec, dash, stroke float64, c color.Color) {
	length := a.Dist(b)
	if length == 0 || dash <= 0 {
		return
	}
	dir := b.Sub(a).Scale(1 / length)
	for d := 0.0; d < length; d += 2 * dash {
		end := math.Min(d+dash, length)
		s.DrawLine(a.Add(dir.Scale(d)), a.Add(dir.Scale(end)), stroke, c)
	}
}

func intersect(a, b canvas.Rect) canvas.Rect {
	r := canvas.Rect{
		Min: canvas.Vec{X: math.Max(a.Min.X, b.Min.X), Y: math.Max(a.Min.Y, b.Min.Y)},
		Max: canvas.Vec{X: math.Min(a.Max.X, b.Max.X), Y: math.Min(a.Max.Y, b.Max.Y)},
	}
	if r.Max.X < r.Min.X {
		r.Max.X = r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Max.Y = r.Min.Y
	}
	return r
}
