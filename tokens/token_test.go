package tokens

import (
	"testing"

	"battle-map/canvas"
)

func TestToken_PositionIsNeverNegative(t *testing.T) {
	tok := New("Orc")
	tok.SetPosition(canvas.Vec{X: -20, Y: 15})

	if got := tok.Position(); got != (canvas.Vec{X: 0, Y: 15}) {
		t.Errorf("expected (0,15), got %v", got)
	}
}

func TestToken_Defaults(t *testing.T) {
	tok := New("Orc")
	if tok.SizeClass() != Large {
		t.Errorf("expected Large default, got %v", tok.SizeClass())
	}
	if tok.Faction != Neutral {
		t.Errorf("expected Neutral default, got %v", tok.Faction)
	}
	if New("Orc").ID == tok.ID {
		t.Error("tokens should get distinct IDs")
	}
}

func TestNearestSizeClass(t *testing.T) {
	tests := []struct {
		in   float64
		want SizeClass
	}{
		{0.5, Tiny},
		{0.6, Tiny},
		{1.4, Medium},
		{1.5, Large},
		{3.0, Giant},
		{100, Gargantuan},
		{0, Tiny},
		{-2, Tiny},
	}
	for _, tt := range tests {
		if got := NearestSizeClass(tt.in); got != tt.want {
			t.Errorf("NearestSizeClass(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToken_ScaleAndClassStayInSync(t *testing.T) {
	tok := New("Ogre")
	tok.SetSizeClass(Giant)
	if tok.Scale() != 4 {
		t.Errorf("expected scale 4, got %v", tok.Scale())
	}

	tok.SetScale(0.7)
	if tok.SizeClass() != Tiny {
		t.Errorf("expected Tiny for 0.7, got %v", tok.SizeClass())
	}

	tok.SetScale(-1)
	if tok.Scale() != 0.7 {
		t.Errorf("invalid scale should be ignored, got %v", tok.Scale())
	}

	if got := tok.Bounds(64); got.Width() != 0.7*64 {
		t.Errorf("expected bounds width %v, got %v", 0.7*64, got.Width())
	}
}

func TestParseFactionAndSize(t *testing.T) {
	f, err := ParseFaction("enemy")
	if err != nil || f != Enemy {
		t.Errorf("ParseFaction(enemy) = %v, %v", f, err)
	}
	if _, err := ParseFaction("pirate"); err == nil {
		t.Error("expected an error for an unknown faction")
	}

	s, err := ParseSizeClass("Gargantuan")
	if err != nil || s != Gargantuan {
		t.Errorf("ParseSizeClass(Gargantuan) = %v, %v", s, err)
	}
	if Hidden.Outline().A != 0 {
		t.Error("hidden tokens should have a transparent outline")
	}
}

func TestFaction_Next(t *testing.T) {
	want := []Faction{Friend, Neutral, Enemy, Hidden}
	f := Hidden
	for i, w := range want {
		f = f.Next()
		if f != w {
			t.Errorf("step %d: got %v, want %v", i, f, w)
		}
	}
}

func TestToken_UpdateNotifiesOnce(t *testing.T) {
	reg := NewRegistry()
	tok := New("Bard")
	reg.Add(tok)
	calls := 0
	reg.Subscribe(func() { calls++ })

	tok.Update(func(t *Token) {
		t.Faction = Friend
		t.Movement = "30ft"
	})
	if calls != 1 {
		t.Errorf("got %d notifications, want 1", calls)
	}
	if tok.Faction != Friend || tok.Movement != "30ft" {
		t.Errorf("update not applied: %v %q", tok.Faction, tok.Movement)
	}
}
