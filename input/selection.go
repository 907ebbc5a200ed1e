package input

import (
	"sort"

	"github.com/google/uuid"

	"battle-map/canvas"
	"battle-map/tokens"
)

// DragElement pins a token to the pointer: while dragging, the token's
// position is the pointer's world position plus Offset.
type DragElement struct {
	ID     uuid.UUID
	Offset canvas.Vec
}

// Marquee is a rubber-band rectangle in world space.
type Marquee struct {
	Start, End canvas.Vec
}

func (m Marquee) Rect() canvas.Rect { return canvas.RectFromPoints(m.Start, m.End) }

// Selection is the set of highlighted tokens plus the transient state of the
// gesture in progress.
type Selection struct {
	ids map[uuid.UUID]struct{}

	Drag    []DragElement
	Marquee *Marquee
}

func NewSelection() *Selection {
	return &Selection{ids: make(map[uuid.UUID]struct{})}
}

func (s *Selection) Has(id uuid.UUID) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int { return len(s.ids) }

func (s *Selection) Add(id uuid.UUID)    { s.ids[id] = struct{}{} }
func (s *Selection) Remove(id uuid.UUID) { delete(s.ids, id) }

func (s *Selection) Toggle(id uuid.UUID) {
	if s.Has(id) {
		s.Remove(id)
	} else {
		s.Add(id)
	}
}

func (s *Selection) Clear() {
	clear(s.ids)
}

// Only replaces the selection with the single given token.
func (s *Selection) Only(id uuid.UUID) {
	s.Clear()
	s.Add(id)
}

// IDs returns the selected ids in a stable order.
func (s *Selection) IDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Merge folds the tokens found by a marquee into the selection. Without
// toggle every token is added. With toggle, tokens that were already
// selected are removed and the rest are added.
func (s *Selection) Merge(found []*tokens.Token, toggle bool) {
	for _, t := range found {
		if toggle && s.Has(t.ID) {
			s.Remove(t.ID)
		} else {
			s.Add(t.ID)
		}
	}
}

// BeginDrag records, for every selected token still in reg, its offset from
// anchor.
func (s *Selection) BeginDrag(reg *tokens.Registry, anchor canvas.Vec) {
	s.Drag = s.Drag[:0]
	for _, t := range reg.All() {
		if s.Has(t.ID) {
			s.Drag = append(s.Drag, DragElement{ID: t.ID, Offset: t.Position().Sub(anchor)})
		}
	}
}

func (s *Selection) EndGesture() {
	s.Drag = nil
	s.Marquee = nil
}

// Prune drops ids that are no longer in reg.
func (s *Selection) Prune(reg *tokens.Registry) {
	for id := range s.ids {
		if !reg.Has(id) {
			delete(s.ids, id)
		}
	}
}
