package pile

import "github.com/fadedpez/termitaire/pkg/cards"

//go:generate mockgen -destination=mock/surface.go -package=mock github.com/fadedpez/termitaire/pkg/pile Surface

// Region is a rectangular area of the drawing surface, in cells
type Region struct {
	X, Y          int
	Width, Height int
}

// Surface is the drawing backend a strategy lays cards out on. Turning a
// card into glyphs is the backend's business.
type Surface interface {
	// DrawCard draws a single card with its top-left corner at (x, y)
	DrawCard(x, y int, card cards.Card, faceUp bool)
	// DrawEmpty draws the placeholder for a pile with nothing to show
	DrawEmpty(area Region)
}

// View is the read-only side of a Pile handed to a strategy
type View interface {
	Len() int
	Active() int
	Cards() []cards.Card
	At(i int) cards.Card
}

// Renderer lays out a pile within an area. The set of strategies is closed:
// Straight, Cascade and Flippable.
type Renderer interface {
	Render(v View, area Region, s Surface)
	strategy()
}

// Straight shows only the top card, face up. Used for foundations.
type Straight struct{}

func (Straight) strategy() {}

// Render implements Renderer
func (Straight) Render(v View, area Region, s Surface) {
	if v.Active() == 0 {
		s.DrawEmpty(area)
		return
	}
	s.DrawCard(area.X, area.Y, v.At(0), true)
}

// Cascade fans the active region downward, one row per card. The bottom
// Hidden cards are face down, but the top card is always shown, even when
// the area is too short for the whole fan.
type Cascade struct {
	Hidden int
}

func (Cascade) strategy() {}

// Render implements Renderer
func (c Cascade) Render(v View, area Region, s Surface) {
	active := v.Active()
	if active == 0 {
		s.DrawEmpty(area)
		return
	}

	hidden := c.Hidden
	if hidden > active-1 {
		hidden = active - 1
	}

	// A fan taller than the area loses rows from the bottom of the pile
	first := 0
	if active > area.Height {
		first = active - area.Height
	}

	stored := v.Cards()
	for i := first; i < active; i++ {
		s.DrawCard(area.X, area.Y+i-first, stored[i], i >= hidden)
	}
}

// Flippable shows the stock as a face-down card and, beside it, the card
// most recently flipped off the stock by advancing the selection.
type Flippable struct{}

func (Flippable) strategy() {}

// Render implements Renderer
func (Flippable) Render(v View, area Region, s Surface) {
	active := v.Active()
	stored := v.Cards()

	if active == 0 {
		s.DrawEmpty(Region{X: area.X, Y: area.Y, Width: area.Width / 2, Height: area.Height})
	} else {
		s.DrawCard(area.X, area.Y, stored[active-1], false)
	}

	if active < len(stored) {
		s.DrawCard(area.X+area.Width/2, area.Y, stored[active], true)
	}
}
