package canvas

import (
	"math"
	"testing"
)

func TestGrid_CellOrigin(t *testing.T) {
	tests := []struct {
		name string
		grid Grid
		in   Vec
		want Vec
	}{
		{"inside cell", Grid{CellSize: 64}, Vec{70, 130}, Vec{64, 128}},
		{"on line", Grid{CellSize: 64}, Vec{128, 64}, Vec{128, 64}},
		{"origin", Grid{CellSize: 64}, Vec{0, 0}, Vec{0, 0}},
		{"with offset", Grid{CellSize: 50, Offset: Vec{10, 20}}, Vec{70, 130}, Vec{60, 120}},
		{"before offset", Grid{CellSize: 64, Offset: Vec{10, 10}}, Vec{5, 5}, Vec{-54, -54}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.grid.CellOrigin(tt.in)
			if !ok {
				t.Fatal("expected a valid grid")
			}
			if !nearVec(got, tt.want) {
				t.Errorf("CellOrigin(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGrid_InvalidCellSizeDisablesSnapping(t *testing.T) {
	for _, size := range []float64{0, -64, math.Inf(1), math.NaN()} {
		g := Grid{CellSize: size}
		if _, ok := g.CellOrigin(Vec{70, 130}); ok {
			t.Errorf("cell size %v should not produce an origin", size)
		}
		p := Vec{70, 130}
		if got := g.SnapCentered(p, 32); got != p {
			t.Errorf("cell size %v: SnapCentered moved the point to %v", size, got)
		}
		if xs, ys := g.Lines(Rect{Max: Vec{100, 100}}); xs != nil || ys != nil {
			t.Errorf("cell size %v should not produce grid lines", size)
		}
	}
}

func TestGrid_SnapCentered(t *testing.T) {
	g := Grid{CellSize: 64}

	tests := []struct {
		name    string
		topLeft Vec
		size    float64
		want    Vec
	}{
		{"cell sized token", Vec{70, 130}, 64, Vec{64, 128}},
		{"half cell token", Vec{70, 130}, 32, Vec{80, 144}},
		{"double cell token", Vec{10, 10}, 128, Vec{32, 32}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.SnapCentered(tt.topLeft, tt.size); !nearVec(got, tt.want) {
				t.Errorf("SnapCentered(%v, %v) = %v, want %v", tt.topLeft, tt.size, got, tt.want)
			}
		})
	}
}

func TestGrid_Lines(t *testing.T) {
	g := Grid{CellSize: 64}
	xs, ys := g.Lines(Rect{Max: Vec{200, 100}})

	wantXs := []float64{0, 64, 128, 192}
	wantYs := []float64{0, 64}
	if len(xs) != len(wantXs) || len(ys) != len(wantYs) {
		t.Fatalf("got xs=%v ys=%v", xs, ys)
	}
	for i := range wantXs {
		if !near(xs[i], wantXs[i]) {
			t.Errorf("xs[%d] = %v, want %v", i, xs[i], wantXs[i])
		}
	}
	for i := range wantYs {
		if !near(ys[i], wantYs[i]) {
			t.Errorf("ys[%d] = %v, want %v", i, ys[i], wantYs[i])
		}
	}
}
