package main

import (
	"strings"

	"github.com/fadedpez/termitaire/pkg/cards"
	"github.com/fadedpez/termitaire/pkg/pile"
)

// textSurface is a plain character grid used to preview a table on stdout
type textSurface struct {
	rows [][]rune
}

func newTextSurface(width, height int) *textSurface {
	rows := make([][]rune, height)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(" ", width))
	}
	return &textSurface{rows: rows}
}

func (s *textSurface) DrawCard(x, y int, card cards.Card, faceUp bool) {
	label := "[##]"
	if faceUp {
		label = "[" + card.String() + "]"
	}
	s.write(x, y, label)
}

func (s *textSurface) DrawEmpty(area pile.Region) {
	s.write(area.X, area.Y, "[  ]")
}

func (s *textSurface) write(x, y int, text string) {
	if y < 0 || y >= len(s.rows) {
		return
	}
	row := s.rows[y]
	for i, r := range []rune(text) {
		if x+i >= 0 && x+i < len(row) {
			row[x+i] = r
		}
	}
}

func (s *textSurface) String() string {
	var b strings.Builder
	for _, row := range s.rows {
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
