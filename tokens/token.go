package tokens

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/google/uuid"

	"battle-map/canvas"
)

// SizeClass is a creature size category. Its value is the token's side
// length in icon-size units.
type SizeClass float64

const (
	Tiny       SizeClass = 0.5
	Medium     SizeClass = 1.0
	Large      SizeClass = 2.0
	Giant      SizeClass = 4.0
	Gargantuan SizeClass = 8.0
)

// SizeClasses lists every class from smallest to largest.
var SizeClasses = []SizeClass{Tiny, Medium, Large, Giant, Gargantuan}

func (s SizeClass) String() string {
	switch s {
	case Tiny:
		return "tiny"
	case Medium:
		return "medium"
	case Large:
		return "large"
	case Giant:
		return "giant"
	case Gargantuan:
		return "gargantuan"
	}
	return fmt.Sprintf("%gx", float64(s))
}

// NearestSizeClass returns the class closest to a continuous scale,
// comparing on a log scale so 3.0 rounds to Giant and 1.4 to Medium.
func NearestSizeClass(scale float64) SizeClass {
	if scale <= 0 || math.IsNaN(scale) {
		return Tiny
	}
	best := SizeClasses[0]
	bestDist := math.Inf(1)
	for _, c := range SizeClasses {
		d := math.Abs(math.Log2(scale) - math.Log2(float64(c)))
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func ParseSizeClass(s string) (SizeClass, error) {
	for _, c := range SizeClasses {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown size class %q", s)
}

// Faction tags how a token relates to the party.
type Faction int

const (
	Hidden Faction = iota
	Friend
	Neutral
	Enemy
)

var factionColors = map[Faction][2]color.RGBA{
	Hidden:  {{0, 0, 0, 0}, {0, 0, 0, 50}},
	Friend:  {{30, 160, 30, 255}, {30, 200, 30, 255}},
	Neutral: {{0, 130, 150, 255}, {0, 220, 220, 255}},
	Enemy:   {{180, 10, 10, 255}, {255, 80, 10, 255}},
}

// Next cycles Hidden, Friend, Neutral, Enemy and back to Hidden.
func (f Faction) Next() Faction { return (f + 1) % (Enemy + 1) }

func (f Faction) Outline() color.RGBA   { return factionColors[f][0] }
func (f Faction) Highlight() color.RGBA { return factionColors[f][1] }

func (f Faction) String() string {
	switch f {
	case Hidden:
		return "Hidden"
	case Friend:
		return "Friend"
	case Neutral:
		return "Neutral"
	case Enemy:
		return "Enemy"
	}
	return "Unknown"
}

func ParseFaction(s string) (Faction, error) {
	for _, f := range []Faction{Hidden, Friend, Neutral, Enemy} {
		if strings.EqualFold(s, f.String()) {
			return f, nil
		}
	}
	return Neutral, fmt.Errorf("unknown faction %q", s)
}

// Owner is notified whenever a token it holds is mutated.
type Owner interface {
	TokenChanged(t *Token)
}

// Token is a labelled marker on the map. Two tokens are the same token when
// their IDs match; attribute values play no part in identity.
type Token struct {
	ID          uuid.UUID
	Name        string
	Description string
	Movement    string
	Initiative  int
	Faction     Faction
	ImagePath   string

	scale    float64
	position canvas.Vec
	owner    Owner
}

// New returns a Large, Neutral token with a fresh ID at the world origin.
func New(name string) *Token {
	return &Token{
		ID:      uuid.New(),
		Name:    name,
		Faction: Neutral,
		scale:   float64(Large),
	}
}

// Position is the world-space top-left corner.
func (t *Token) Position() canvas.Vec { return t.position }

// SetPosition moves the token. Negative coordinates are clamped to zero.
func (t *Token) SetPosition(p canvas.Vec) {
	p.X = math.Max(p.X, 0)
	p.Y = math.Max(p.Y, 0)
	if p == t.position {
		return
	}
	t.position = p
	t.changed()
}

// Scale is the continuous size multiplier.
func (t *Token) Scale() float64 { return t.scale }

func (t *Token) SetScale(s float64) {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) || s == t.scale {
		return
	}
	t.scale = s
	t.changed()
}

func (t *Token) SizeClass() SizeClass { return NearestSizeClass(t.scale) }

func (t *Token) SetSizeClass(c SizeClass) { t.SetScale(float64(c)) }

// Side returns the token's side length in world units for the given icon
// size.
func (t *Token) Side(iconSize float64) float64 {
	return t.scale * iconSize
}

func (t *Token) Bounds(iconSize float64) canvas.Rect {
	side := t.Side(iconSize)
	return canvas.RectAt(t.position, side, side)
}

// Update applies fn to the token's editable attributes and notifies the
// owner once.
func (t *Token) Update(fn func(t *Token)) {
	fn(t)
	t.changed()
}

func (t *Token) String() string {
	return fmt.Sprintf("Token %q (%s)", t.Name, t.ID)
}

func (t *Token) changed() {
	if t.owner != nil {
		t.owner.TokenChanged(t)
	}
}
