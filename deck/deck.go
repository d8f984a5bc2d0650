package deck

import "math/rand"

// Deck represents a deck of cards
type Deck []Card

// New creates a full deck of 52 cards with ids starting at firstID
func New(firstID int) Deck {
	cards := make(Deck, 0, len(suitNames)*len(rankNames))
	id := firstID
	for suit := range suitNames {
		for rank := range rankNames {
			cards = append(cards, Card{ID: id, Rank: Rank(rank), Suit: Suit(suit)})
			id++
		}
	}
	return cards
}

// Shuffle shuffles the deck of cards using r
func (d *Deck) Shuffle(r *rand.Rand) {
	actualDeck := (*d)
	r.Shuffle(len(actualDeck), func(i, j int) {
		actualDeck[i], actualDeck[j] = actualDeck[j], actualDeck[i]
	})
}

// Deal deals n number of cards from the top of the deck, until it is empty
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 || n > numCardsInDeck {
		return []Card{}
	}
	startingIndex := numCardsInDeck - n
	subSlice := make([]Card, n)
	copy(subSlice, (*d)[startingIndex:numCardsInDeck])
	*d = (*d)[:startingIndex]
	return subSlice
}
