package deck

import (
	"errors"
	"fmt"
	"strings"
)

// Rank represents a rank in a deck of cards
type Rank int

var rankNames = []string{"Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}

var rankLabels = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Suit represents a suit in a deck of cards
type Suit int

var suitNames = []string{"Clubs", "Diamonds", "Hearts", "Spades"}

var suitSymbols = []string{"♣", "♦", "♥", "♠"}

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var (
	ErrRankOutOfRange = errors.New("rank out of range")
	ErrSuitOutOfRange = errors.New("suit out of range")
)

// Valid reports whether r is one of Ace..King
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Value is the numeric value used for matching, 1 (Ace) to 13 (King)
func (r Rank) Value() int {
	return int(r) + 1
}

func (r Rank) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Rank(%d)", int(r))
	}
	return rankNames[r]
}

// Label is the short face label printed on a card
func (r Rank) Label() string {
	if !r.Valid() {
		return "?"
	}
	return rankLabels[r]
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s >= Clubs && s <= Spades
}

func (s Suit) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Suit(%d)", int(s))
	}
	return suitNames[s]
}

func (s Suit) Symbol() string {
	if !s.Valid() {
		return "?"
	}
	return suitSymbols[s]
}

// Red reports whether the suit is printed in red
func (s Suit) Red() bool {
	return s == Diamonds || s == Hearts
}

// ParseRank accepts a rank name ("six") or a face label ("6", "J")
func ParseRank(str string) (Rank, error) {
	str = strings.TrimSpace(str)
	for i := range rankNames {
		if strings.EqualFold(str, rankNames[i]) || strings.EqualFold(str, rankLabels[i]) {
			return Rank(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrRankOutOfRange, str)
}

// ParseSuit accepts a suit name, its singular form or its symbol
func ParseSuit(str string) (Suit, error) {
	str = strings.TrimSpace(str)
	for i := range suitNames {
		name := suitNames[i]
		if strings.EqualFold(str, name) ||
			strings.EqualFold(str, strings.TrimSuffix(name, "s")) ||
			str == suitSymbols[i] {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrSuitOutOfRange, str)
}
