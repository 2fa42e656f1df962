// Package pile implements the cursor-addressable card container used for every
// pile on a Solitaire table.
//
// A Pile keeps its cards in storage order (bottom first) and a single cursor.
// Storage below the cursor is the active region and the card just below the
// cursor is the top. Storage at or above the cursor has been walked past by
// Next and is kept, not removed. The cursor serves as top of stack, selection
// depth, and insertion point all at once: PlaceTop and PlaceBottom insert
// relative to the current cursor, never relative to the storage end.
package pile

import (
	"fmt"
	"math/rand"

	"github.com/fadedpez/termitaire/internal/types"
	"github.com/fadedpez/termitaire/pkg/cards"
)

// Pile is an ordered, cursor-addressable container of cards
type Pile struct {
	cards    []cards.Card
	index    int
	renderer Renderer
}

// New creates an empty pile
func New() *Pile {
	return &Pile{}
}

// From creates a pile holding cs in the given order, bottom first.
// The whole sequence starts out active.
func From(cs ...cards.Card) *Pile {
	stored := make([]cards.Card, len(cs))
	copy(stored, cs)
	return &Pile{
		cards: stored,
		index: len(stored),
	}
}

// FromPairs creates a pile from numeric (rank, suit) pairs
func FromPairs(pairs ...[2]uint8) (*Pile, error) {
	cs := make([]cards.Card, 0, len(pairs))
	for i, p := range pairs {
		c, err := cards.FromPair(p[0], p[1])
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", i, err)
		}
		cs = append(cs, c)
	}
	return From(cs...), nil
}

// Deck52 creates the full 52-card deck. Suits run in declaration order and
// ranks run King down to Ace within each suit, so the top card is the Ace
// of Clubs.
func Deck52() *Pile {
	cs := make([]cards.Card, 0, 52)
	for _, suit := range cards.Suits {
		for v := cards.King; v >= cards.Ace; v-- {
			cs = append(cs, cards.New(v, suit))
		}
	}
	return From(cs...)
}

// RenderAs attaches the render strategy and returns the pile
func (p *Pile) RenderAs(r Renderer) *Pile {
	p.renderer = r
	return p
}

// Renderer returns the attached render strategy, or nil
func (p *Pile) Renderer() Renderer {
	return p.renderer
}

// Len returns the number of cards stored, including the walked-past tail
func (p *Pile) Len() int {
	return len(p.cards)
}

// Active returns the number of cards in the active region
func (p *Pile) Active() int {
	return p.index
}

// Cursor returns the cursor position; it equals Active
func (p *Pile) Cursor() int {
	return p.index
}

// Empty reports whether the active region holds no cards
func (p *Pile) Empty() bool {
	return p.index == 0
}

// Cards returns a copy of the storage, bottom first
func (p *Pile) Cards() []cards.Card {
	out := make([]cards.Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// PlaceTop inserts c at the cursor and advances the cursor past it, so c is
// the new top. Walked-past cards shift one slot further back.
func (p *Pile) PlaceTop(c cards.Card) {
	p.insert(p.index, c)
	p.index++
}

// PlaceBottom inserts c under every other card. The current top is unchanged.
func (p *Pile) PlaceBottom(c cards.Card) {
	p.insert(0, c)
	p.index++
}

// Draw removes and returns the top card. Only Draw shrinks the pile.
// It panics if the active region is empty.
func (p *Pile) Draw() cards.Card {
	if p.index == 0 {
		panic(types.NewGameError(types.ErrEmptyPile, "draw from empty pile"))
	}
	p.index--
	c := p.cards[p.index]
	p.cards = append(p.cards[:p.index], p.cards[p.index+1:]...)
	return c
}

// Top returns the top card without removing it.
// It panics if the active region is empty.
func (p *Pile) Top() cards.Card {
	if p.index == 0 {
		panic(types.NewGameError(types.ErrEmptyPile, "top of empty pile"))
	}
	return p.cards[p.index-1]
}

// Next advances the selection one card deeper and returns the card it passed.
// Nothing is removed. It returns false once the active region is exhausted.
func (p *Pile) Next() (cards.Card, bool) {
	if p.index <= 0 {
		return cards.Card{}, false
	}
	p.index--
	return p.cards[p.index], true
}

// Reset returns the cursor to the end of storage, making every card active again
func (p *Pile) Reset() {
	p.index = len(p.cards)
}

// At returns the i-th card relative to the current top: At(0) is the top and
// higher indices wrap through the walked-past tail and back to the bottom.
// It panics unless 0 <= i < Len.
func (p *Pile) At(i int) cards.Card {
	n := len(p.cards)
	if i < 0 || i >= n {
		panic(types.NewGameError(types.ErrIndexOutOfRange, fmt.Sprintf("index %d out of range for pile of %d", i, n)))
	}
	return p.cards[((p.index-1+i)%n+n)%n]
}

// Shuffle permutes the storage with r and makes every card active
func (p *Pile) Shuffle(r *rand.Rand) {
	r.Shuffle(len(p.cards), func(i, j int) {
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	})
	p.index = len(p.cards)
}

// Render dispatches to the attached strategy; it does nothing without one
func (p *Pile) Render(area Region, s Surface) {
	if p.renderer == nil {
		return
	}
	p.renderer.Render(p, area, s)
}

// String returns the storage with the cursor marked as "|"
func (p *Pile) String() string {
	s := "["
	for i, c := range p.cards {
		if i == p.index {
			s += "| "
		}
		s += c.String() + " "
	}
	if p.index == len(p.cards) {
		s += "|"
	}
	return s + "]"
}

func (p *Pile) insert(at int, c cards.Card) {
	p.cards = append(p.cards, cards.Card{})
	copy(p.cards[at+1:], p.cards[at:])
	p.cards[at] = c
}
