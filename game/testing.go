package game

import (
	"testing"

	"github.com/minaorangina/tray/deck"
)

// MustCard builds a card for tests, failing on a bad rank or suit
func MustCard(t *testing.T, id int, rank deck.Rank, suit deck.Suit) deck.Card {
	t.Helper()

	c, err := deck.NewCard(id, int(rank), int(suit), deck.Position{X: float64(id) * 10, Y: 100})
	if err != nil {
		t.Fatalf("could not build card %d: %v", id, err)
	}
	return c
}

// MustState builds a State for tests
func MustState(t *testing.T, playfield, stack []deck.Card) *State {
	t.Helper()

	s, err := New(playfield, stack)
	if err != nil {
		t.Fatalf("could not build state: %v", err)
	}
	return s
}
