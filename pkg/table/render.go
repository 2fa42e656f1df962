package table

import "github.com/fadedpez/termitaire/pkg/pile"

// Render splits area into seven columns. The top quarter holds the draw pile
// in column 0 and the foundations in columns 3 to 6, and the tableau fills the
// rest. Every pile is drawn by its own strategy.
func (t *Table) Render(area pile.Region, s pile.Surface) {
	colWidth := area.Width / TableauSize
	topHeight := area.Height / 4
	if topHeight < 1 {
		topHeight = 1
	}

	column := func(i, y, height int) pile.Region {
		return pile.Region{X: area.X + i*colWidth, Y: y, Width: colWidth, Height: height}
	}

	t.stock.Render(column(0, area.Y, topHeight), s)
	for i, f := range t.foundations {
		f.Render(column(TableauSize-FoundationSize+i, area.Y, topHeight), s)
	}

	tableauY := area.Y + topHeight
	for i, p := range t.tableau {
		p.Render(column(i, tableauY, area.Height-topHeight), s)
	}
}
