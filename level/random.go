package level

import (
	"math/rand"

	"github.com/minaorangina/tray/deck"
)

const (
	columns       = 4
	columnSpacing = 200
	rowSpacing    = 200
	originX       = 240
	originY       = 1000
)

// Random deals a layout from a shuffled deck. Playfield cards are laid out
// in rows of four from the top of the screen down. A size larger than
// what is left in the deck deals nothing for that zone.
func Random(rng *rand.Rand, playfieldSize, stackSize int) Layout {
	d := deck.New(0)
	d.Shuffle(rng)

	layout := Layout{Playfield: []Entry{}, Stack: []Entry{}}
	for i, c := range d.Deal(playfieldSize) {
		layout.Playfield = append(layout.Playfield, Entry{
			Face: c.Rank,
			Suit: c.Suit,
			Position: deck.Position{
				X: float64(originX + (i%columns)*columnSpacing),
				Y: float64(originY - (i/columns)*rowSpacing),
			},
		})
	}
	for _, c := range d.Deal(stackSize) {
		layout.Stack = append(layout.Stack, Entry{Face: c.Rank, Suit: c.Suit})
	}
	return layout
}
