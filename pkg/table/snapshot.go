package table

import (
	"fmt"

	"github.com/fadedpez/termitaire/internal/types"
	"github.com/fadedpez/termitaire/pkg/cards"
	"github.com/fadedpez/termitaire/pkg/pile"
)

// PileState is the saved form of one pile: its storage as (rank, suit) pairs,
// bottom first, and its cursor
type PileState struct {
	Cards  [][2]uint8 `json:"cards"`
	Cursor int        `json:"cursor"`
}

// Snapshot is the saved form of a whole table
type Snapshot struct {
	Stock       PileState                 `json:"stock"`
	Foundations [FoundationSize]PileState `json:"foundations"`
	Tableau     [TableauSize]PileState    `json:"tableau"`
}

// Snapshot captures every pile, cursors included
func (t *Table) Snapshot() Snapshot {
	var snap Snapshot
	snap.Stock = pileState(t.stock)
	for i, p := range t.foundations {
		snap.Foundations[i] = pileState(p)
	}
	for i, p := range t.tableau {
		snap.Tableau[i] = pileState(p)
	}
	return snap
}

func pileState(p *pile.Pile) PileState {
	stored := p.Cards()
	pairs := make([][2]uint8, len(stored))
	for i, c := range stored {
		r, s := c.Pair()
		pairs[i] = [2]uint8{r, s}
	}
	return PileState{Cards: pairs, Cursor: p.Cursor()}
}

// Restore rebuilds a table from a snapshot. Malformed cards are rejected with
// the card construction error, and the result must hold exactly one deck.
func Restore(snap Snapshot) (*Table, error) {
	t := &Table{}

	stock, err := restorePile(snap.Stock)
	if err != nil {
		return nil, fmt.Errorf("stock: %w", err)
	}
	t.stock = stock.RenderAs(pile.Flippable{})

	for i, ps := range snap.Foundations {
		p, err := restorePile(ps)
		if err != nil {
			return nil, fmt.Errorf("foundation %d: %w", i, err)
		}
		t.foundations[i] = p.RenderAs(pile.Straight{})
	}

	for i, ps := range snap.Tableau {
		p, err := restorePile(ps)
		if err != nil {
			return nil, fmt.Errorf("tableau %d: %w", i, err)
		}
		t.tableau[i] = p.RenderAs(pile.Cascade{Hidden: i})
	}

	if err := t.Audit(); err != nil {
		return nil, err
	}
	return t, nil
}

func restorePile(ps PileState) (*pile.Pile, error) {
	if ps.Cursor < 0 || ps.Cursor > len(ps.Cards) {
		return nil, types.NewGameError(types.ErrInvalidState, fmt.Sprintf("cursor %d out of range for %d cards", ps.Cursor, len(ps.Cards)))
	}

	p, err := pile.FromPairs(ps.Cards...)
	if err != nil {
		return nil, err
	}

	// walk the cursor back to where it was saved
	for p.Cursor() > ps.Cursor {
		p.Next()
	}
	return p, nil
}

// TopCards returns the top card of each non-empty pile, keyed by pile name
func (t *Table) TopCards() map[string]cards.Card {
	tops := make(map[string]cards.Card)
	if !t.stock.Empty() {
		tops["stock"] = t.stock.Top()
	}
	for i, p := range t.foundations {
		if !p.Empty() {
			tops[fmt.Sprintf("foundation_%d", i)] = p.Top()
		}
	}
	for i, p := range t.tableau {
		if !p.Empty() {
			tops[fmt.Sprintf("tableau_%d", i)] = p.Top()
		}
	}
	return tops
}
