package deck

import "fmt"

// Position is where the presentation layer draws a card.
// The engine stores it but never reasons about it.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Card is a playing card with an identity.
// Two cards with the same rank and suit are still different cards.
type Card struct {
	ID       int
	Rank     Rank
	Suit     Suit
	Position Position
}

// NewCard constructs a card, rejecting ranks and suits outside the deck
func NewCard(id, rank, suit int, pos Position) (Card, error) {
	r, s := Rank(rank), Suit(suit)
	if !r.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrRankOutOfRange, rank)
	}
	if !s.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrSuitOutOfRange, suit)
	}
	return Card{ID: id, Rank: r, Suit: s, Position: pos}, nil
}

// Value returns the card's numeric value, 1 to 13
func (c Card) Value() int {
	return c.Rank.Value()
}

// Matches reports whether the two cards are adjacent in value.
// A card never matches itself.
func (c Card) Matches(other Card) bool {
	if c.ID == other.ID {
		return false
	}
	return Adjacent(c.Rank, other.Rank)
}

// Adjacent reports whether two ranks differ in value by exactly one
func Adjacent(a, b Rank) bool {
	diff := a.Value() - b.Value()
	return diff == 1 || diff == -1
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Short renders the card as a face label and suit symbol, e.g. "10♥"
func (c Card) Short() string {
	return c.Rank.Label() + c.Suit.Symbol()
}
