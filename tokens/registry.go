package tokens

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"battle-map/canvas"
)

func regLog() *zerolog.Logger {
	l := log.With().Str("module", "tokens").Logger()
	return &l
}

// Registry holds the tokens on the map in paint order: the last token is
// drawn on top and wins hit tests.
type Registry struct {
	tokens    []*Token
	observers []func()
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Subscribe registers fn to run after any change to the registry or to a
// token it holds.
func (r *Registry) Subscribe(fn func()) {
	r.observers = append(r.observers, fn)
}

// Add appends t to the top of the paint order. Adding nil or a token whose
// ID is already present does nothing.
func (r *Registry) Add(t *Token) bool {
	if t == nil || r.indexOf(t.ID) >= 0 {
		return false
	}
	t.owner = r
	r.tokens = append(r.tokens, t)
	regLog().Debug().Str("id", t.ID.String()).Str("name", t.Name).Msg("token added")
	r.notify()
	return true
}

// Remove deletes the token with the given ID. Unknown IDs are ignored.
func (r *Registry) Remove(id uuid.UUID) bool {
	i := r.indexOf(id)
	if i < 0 {
		return false
	}
	t := r.tokens[i]
	copy(r.tokens[i:], r.tokens[i+1:])
	r.tokens[len(r.tokens)-1] = nil
	r.tokens = r.tokens[:len(r.tokens)-1]
	t.owner = nil
	regLog().Debug().Str("id", id.String()).Str("name", t.Name).Msg("token removed")
	r.notify()
	return true
}

func (r *Registry) Get(id uuid.UUID) (*Token, bool) {
	if i := r.indexOf(id); i >= 0 {
		return r.tokens[i], true
	}
	return nil, false
}

func (r *Registry) Has(id uuid.UUID) bool { return r.indexOf(id) >= 0 }

func (r *Registry) Len() int { return len(r.tokens) }

// All returns a copy of the tokens in paint order.
func (r *Registry) All() []*Token {
	out := make([]*Token, len(r.tokens))
	copy(out, r.tokens)
	return out
}

// BringToFront moves the token to the end of the paint order.
func (r *Registry) BringToFront(id uuid.UUID) {
	i := r.indexOf(id)
	if i < 0 || i == len(r.tokens)-1 {
		return
	}
	t := r.tokens[i]
	copy(r.tokens[i:], r.tokens[i+1:])
	r.tokens[len(r.tokens)-1] = t
	r.notify()
}

// TopmostAt returns the last painted token whose bounds contain p, or nil.
func (r *Registry) TopmostAt(p canvas.Vec, iconSize float64) *Token {
	for i := len(r.tokens) - 1; i >= 0; i-- {
		if r.tokens[i].Bounds(iconSize).Contains(p) {
			return r.tokens[i]
		}
	}
	return nil
}

// InArea returns every token whose bounds intersect area, in paint order.
func (r *Registry) InArea(area canvas.Rect, iconSize float64) []*Token {
	var out []*Token
	for _, t := range r.tokens {
		if t.Bounds(iconSize).Intersects(area) {
			out = append(out, t)
		}
	}
	return out
}

// TokenChanged implements Owner.
func (r *Registry) TokenChanged(*Token) { r.notify() }

func (r *Registry) indexOf(id uuid.UUID) int {
	for i, t := range r.tokens {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) notify() {
	for _, fn := range r.observers {
		fn()
	}
}
