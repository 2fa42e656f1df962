package table

import (
	"fmt"

	"github.com/fadedpez/termitaire/internal/types"
	"github.com/fadedpez/termitaire/pkg/cards"
	"github.com/fadedpez/termitaire/pkg/pile"
)

const (
	// TableauSize is the number of general play piles
	TableauSize = 7
	// FoundationSize is the number of foundation piles
	FoundationSize = 4
	// DeckSize is the number of cards in play
	DeckSize = 52
)

// Table is one game of Klondike: seven tableau piles, four foundations and
// the draw pile. It owns every pile; nothing is shared between tables.
type Table struct {
	tableau     [TableauSize]*pile.Pile
	foundations [FoundationSize]*pile.Pile
	stock       *pile.Pile
}

// New deals a fresh, unshuffled deck
func New() *Table {
	t, err := Deal(pile.Deck52())
	if err != nil {
		// Deck52 is always a complete deck
		panic(err)
	}
	return t
}

// Deal distributes deck into the Klondike layout: tableau pile j receives j+1
// cards, dealt row by row, and whatever is left becomes the draw pile in its
// original order. The deck must be one complete 52-card deck.
func Deal(deck *pile.Pile) (*Table, error) {
	if err := auditCards(deck.Cards()); err != nil {
		return nil, err
	}
	deck.Reset()

	t := &Table{
		tableau:     newTableau(),
		foundations: newFoundations(),
	}

	for i := 0; i < TableauSize; i++ {
		for j := i; j < TableauSize; j++ {
			t.tableau[j].PlaceTop(deck.Draw())
		}
	}

	t.stock = deck.RenderAs(pile.Flippable{})
	return t, nil
}

func newTableau() [TableauSize]*pile.Pile {
	var piles [TableauSize]*pile.Pile
	for i := range piles {
		piles[i] = pile.New().RenderAs(pile.Cascade{Hidden: i})
	}
	return piles
}

func newFoundations() [FoundationSize]*pile.Pile {
	var piles [FoundationSize]*pile.Pile
	for i := range piles {
		piles[i] = pile.New().RenderAs(pile.Straight{})
	}
	return piles
}

// Tableau returns tableau pile i, 0-based from the left
func (t *Table) Tableau(i int) *pile.Pile {
	return t.tableau[i]
}

// Foundation returns foundation pile i
func (t *Table) Foundation(i int) *pile.Pile {
	return t.foundations[i]
}

// Stock returns the draw pile
func (t *Table) Stock() *pile.Pile {
	return t.stock
}

// Piles returns all twelve piles: the draw pile, the foundations, then the tableau
func (t *Table) Piles() []*pile.Pile {
	piles := make([]*pile.Pile, 0, 1+FoundationSize+TableauSize)
	piles = append(piles, t.stock)
	piles = append(piles, t.foundations[:]...)
	piles = append(piles, t.tableau[:]...)
	return piles
}

// Count returns the number of cards stored across all piles
func (t *Table) Count() int {
	n := 0
	for _, p := range t.Piles() {
		n += p.Len()
	}
	return n
}

// Audit checks that the piles together hold exactly one deck
func (t *Table) Audit() error {
	var all []cards.Card
	for _, p := range t.Piles() {
		all = append(all, p.Cards()...)
	}
	return auditCards(all)
}

func auditCards(all []cards.Card) error {
	if len(all) != DeckSize {
		return types.NewGameError(types.ErrInvalidState, fmt.Sprintf("expected %d cards, found %d", DeckSize, len(all)))
	}

	seen := make(map[cards.Card]bool, DeckSize)
	for _, c := range all {
		if c.Value < cards.Ace || c.Value > cards.King || c.Suit > cards.Clubs {
			return types.NewGameError(types.ErrInvalidState, fmt.Sprintf("unknown card %s", c))
		}
		if seen[c] {
			return types.NewGameError(types.ErrInvalidState, fmt.Sprintf("duplicate card %s", c))
		}
		seen[c] = true
	}
	return nil
}
