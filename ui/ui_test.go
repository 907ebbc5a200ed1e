package ui

import (
	"image/color"
	"strings"
	"testing"

	"battle-map/canvas"
	"battle-map/render"
	"battle-map/tokens"
)

// textSurface records text and filled rectangles. Every glyph is 8 wide and
// every line is 10 high.
type textSurface struct {
	texts []string
	fills []canvas.Rect
}

func (s *textSurface) SetTransform(float64, canvas.Vec) {}
func (s *textSurface) DrawImage(render.Bitmap, canvas.Rect) {}
func (s *textSurface) DrawRect(canvas.Rect, float64, color.Color) {}
func (s *textSurface) DrawLine(canvas.Vec, canvas.Vec, float64, color.Color) {}
func (s *textSurface) DrawCircle(canvas.Vec, float64, float64, color.Color) {}
func (s *textSurface) FillRect(r canvas.Rect, _ color.Color) { s.fills = append(s.fills, r) }
func (s *textSurface) DrawText(t string, _ canvas.Vec, _ render.Font, _ color.Color) {
	s.texts = append(s.texts, t)
}
func (s *textSurface) MeasureText(t string, _ render.Font) canvas.Size {
	return canvas.Size{W: float64(len(t)) * 8, H: 10}
}

func fixedMeasure(t string) canvas.Size { return canvas.Size{W: float64(len(t)) * 8, H: 10} }

func newTooltip(t *tokens.Token) *Tooltip {
	view := canvas.NewViewport(canvas.Size{W: 800, H: 600}, canvas.Size{W: 1600, H: 1200})
	return &Tooltip{
		View:     view,
		Hovered:  func() *tokens.Token { return t },
		IconSize: func() float64 { return 64 },
	}
}

func TestTooltip_Placement(t *testing.T) {
	tok := tokens.New("Goblin")
	tok.SetSizeClass(tokens.Medium)
	tok.Movement = "30ft"
	tip := newTooltip(tok)
	screen := canvas.Size{W: 800, H: 600}

	// Widest line is "Neutral" or "Goblin": 7*8 = 56, plus padding 8.
	tests := []struct {
		name string
		pos  canvas.Vec
		want canvas.Vec
	}{
		{"right of token", canvas.Vec{X: 100, Y: 100}, canvas.Vec{X: 174, Y: 100}},
		{"flipped left", canvas.Vec{X: 700, Y: 100}, canvas.Vec{X: 700 - 10 - 64, Y: 100}},
		{"pulled up", canvas.Vec{X: 100, Y: 580}, canvas.Vec{X: 174, Y: 600 - (3*13 + 8)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok.SetPosition(tt.pos)
			box := tip.Placement(tok, screen, fixedMeasure)
			if box.Min != tt.want {
				t.Errorf("tooltip at %v, want %v", box.Min, tt.want)
			}
			if box.Width() != 64 {
				t.Errorf("tooltip width %v, want 64", box.Width())
			}
		})
	}
}

func TestTooltip_DrawsNameFactionMovement(t *testing.T) {
	tok := tokens.New("Goblin")
	tok.Faction = tokens.Enemy
	tok.Movement = "30ft"
	tip := newTooltip(tok)

	s := &textSurface{}
	tip.Draw(s, canvas.Size{W: 800, H: 600})

	if strings.Join(s.texts, "|") != "Goblin|Enemy|30ft" {
		t.Errorf("unexpected tooltip text %v", s.texts)
	}

	tip.Hovered = func() *tokens.Token { return nil }
	s = &textSurface{}
	tip.Draw(s, canvas.Size{W: 800, H: 600})
	if len(s.texts) != 0 || len(s.fills) != 0 {
		t.Error("no hovered token should draw nothing")
	}
}

func TestUISystem_LayoutAndClick(t *testing.T) {
	var zoomedIn, zoomedOut int
	ui := NewUISystem(func() { zoomedIn++ }, func() { zoomedOut++ }, nil, nil)
	ui.Layout(canvas.Size{W: 800, H: 600})

	plus, minus := ui.Buttons()[0], ui.Buttons()[1]
	if plus.X != 760 || minus.X != 720 || plus.Y != 10 {
		t.Errorf("unexpected layout: + at %v, - at %v", plus.X, minus.X)
	}

	if !ui.Click(canvas.Vec{X: 770, Y: 20}) || zoomedIn != 1 {
		t.Error("clicking + should zoom in")
	}
	if !ui.Click(canvas.Vec{X: 730, Y: 20}) || zoomedOut != 1 {
		t.Error("clicking - should zoom out")
	}
	if ui.Click(canvas.Vec{X: 400, Y: 300}) {
		t.Error("a click away from the buttons should not be consumed")
	}
	if ui.IsMouseOver(canvas.Vec{X: 400, Y: 300}) {
		t.Error("pointer is not over any button")
	}
}

func TestDebugPanel(t *testing.T) {
	view := canvas.NewViewport(canvas.Size{W: 800, H: 600}, canvas.Size{W: 1600, H: 1200})
	reg := tokens.NewRegistry()
	reg.Add(tokens.New("A"))
	visible := false
	d := &DebugPanel{View: view, Tokens: reg, Visible: func() bool { return visible }}

	lines := d.Lines()
	if lines[0] != "Drawing Dimensions: 1600x1200" || lines[1] != "Screen Size: 800x600" {
		t.Errorf("unexpected lines %v", lines)
	}
	if lines[len(lines)-1] != "Tokens: 1" {
		t.Errorf("expected token count, got %q", lines[len(lines)-1])
	}

	s := &textSurface{}
	d.Draw(s, view.ScreenSize())
	if len(s.texts) != 0 {
		t.Error("hidden panel should draw nothing")
	}

	visible = true
	d.SetError("scenario: boom")
	s = &textSurface{}
	d.Draw(s, view.ScreenSize())
	if len(s.texts) != len(lines)+1 || s.texts[len(s.texts)-1] != "scenario: boom" {
		t.Errorf("unexpected output %v", s.texts)
	}
	d.Clear()
	if d.Error != "" {
		t.Error("Clear should reset the error")
	}
}
