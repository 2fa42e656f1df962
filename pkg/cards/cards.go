package cards

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fadedpez/termitaire/internal/types"
)

// Suit represents a card suit. The declaration order is the suit tie-break
// order used by Compare and by Deck52.
type Suit uint8

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists every suit in declaration order
var Suits = [4]Suit{Spades, Hearts, Diamonds, Clubs}

// Color represents the color of a suit
type Color uint8

const (
	Black Color = iota
	Red
)

// Color returns the intrinsic color of the suit
func (s Suit) Color() Color {
	switch s {
	case Diamonds, Hearts:
		return Red
	default:
		return Black
	}
}

// String returns the suit symbol
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	}
	return "?"
}

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Value represents a card value. The numeric value of a Value is its rank.
type Value uint8

const (
	Ace   Value = 1
	Two   Value = 2
	Three Value = 3
	Four  Value = 4
	Five  Value = 5
	Six   Value = 6
	Seven Value = 7
	Eight Value = 8
	Nine  Value = 9
	Ten   Value = 10
	Jack  Value = 11
	Queen Value = 12
	King  Value = 13
)

// Number returns the numbered value n. It is only meaningful for 2..10.
func Number(n uint8) Value {
	return Value(n)
}

// Rank returns the game rank of the value, Ace low: Ace=1 through King=13.
func (v Value) Rank() int {
	return int(v)
}

// IsFace reports whether the value is a Jack, Queen or King
func (v Value) IsFace() bool {
	return v >= Jack && v <= King
}

// String returns the short name of the value
func (v Value) String() string {
	switch v {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if v >= Two && v <= Ten {
		return fmt.Sprintf("%d", v)
	}
	return "?"
}

// Card represents a playing card
type Card struct {
	Value Value
	Suit  Suit
}

// New creates a card. It does not validate; use FromPair for untrusted input.
func New(value Value, suit Suit) Card {
	return Card{Value: value, Suit: suit}
}

// pairSuits maps the numeric suit of a (rank, suit) pair to a Suit
var pairSuits = map[uint8]Suit{
	1: Clubs,
	2: Diamonds,
	3: Hearts,
	4: Spades,
}

// FromPair converts a numeric (rank, suit) pair into a Card.
// Rank must be 1..13 and suit 1..4 (1 Clubs, 2 Diamonds, 3 Hearts, 4 Spades).
func FromPair(rank, suit uint8) (Card, error) {
	if rank < uint8(Ace) || rank > uint8(King) {
		return Card{}, types.NewGameError(types.ErrInvalidValue, fmt.Sprintf("invalid card value %d", rank))
	}

	s, ok := pairSuits[suit]
	if !ok {
		return Card{}, types.NewGameError(types.ErrInvalidSuit, fmt.Sprintf("invalid card suit %d", suit))
	}

	return Card{Value: Value(rank), Suit: s}, nil
}

// Pair returns the numeric (rank, suit) pair accepted by FromPair
func (c Card) Pair() (uint8, uint8) {
	for n, s := range pairSuits {
		if s == c.Suit {
			return uint8(c.Value), n
		}
	}
	return uint8(c.Value), 0
}

// Color returns the color of the card's suit
func (c Card) Color() Color {
	return c.Suit.Color()
}

// String returns a string representation of the card, e.g. "10♦"
func (c Card) String() string {
	return c.Value.String() + c.Suit.String()
}

// Compare orders cards by rank first and suit second.
// It returns -1, 0 or +1.
func Compare(a, b Card) int {
	switch {
	case a.Value.Rank() < b.Value.Rank():
		return -1
	case a.Value.Rank() > b.Value.Rank():
		return 1
	case a.Suit < b.Suit:
		return -1
	case a.Suit > b.Suit:
		return 1
	}
	return 0
}

// Less reports whether a sorts before b
func Less(a, b Card) bool {
	return Compare(a, b) < 0
}

// Equal reports whether a and b are the same card
func Equal(a, b Card) bool {
	return Compare(a, b) == 0
}

// RankOrder compares only the game rank of two values, ignoring suits
func RankOrder(a, b Value) int {
	switch {
	case a.Rank() < b.Rank():
		return -1
	case a.Rank() > b.Rank():
		return 1
	}
	return 0
}

// Parse creates a card from its shorthand, e.g. "10♦", "Qs" or "AH"
func Parse(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, types.NewGameError(types.ErrInvalidArgument, fmt.Sprintf("invalid card shorthand: %q", s))
	}

	var suit Suit
	var rest string
	switch {
	case strings.HasSuffix(s, "♠"):
		suit, rest = Spades, strings.TrimSuffix(s, "♠")
	case strings.HasSuffix(s, "♥"):
		suit, rest = Hearts, strings.TrimSuffix(s, "♥")
	case strings.HasSuffix(s, "♦"):
		suit, rest = Diamonds, strings.TrimSuffix(s, "♦")
	case strings.HasSuffix(s, "♣"):
		suit, rest = Clubs, strings.TrimSuffix(s, "♣")
	default:
		rest = s[:len(s)-1]
		switch strings.ToLower(s[len(s)-1:]) {
		case "s":
			suit = Spades
		case "h":
			suit = Hearts
		case "d":
			suit = Diamonds
		case "c":
			suit = Clubs
		default:
			return Card{}, types.NewGameError(types.ErrInvalidSuit, fmt.Sprintf("invalid card suit: %q", s[len(s)-1:]))
		}
	}

	var value Value
	switch strings.ToUpper(rest) {
	case "A":
		value = Ace
	case "J":
		value = Jack
	case "Q":
		value = Queen
	case "K":
		value = King
	case "2", "3", "4", "5", "6", "7", "8", "9", "10":
		n, _ := strconv.Atoi(rest)
		value = Number(uint8(n))
	default:
		return Card{}, types.NewGameError(types.ErrInvalidValue, fmt.Sprintf("invalid card value: %q", rest))
	}

	return Card{Value: value, Suit: suit}, nil
}

// MustParse is like Parse but panics on malformed input
func MustParse(s string) Card {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}
