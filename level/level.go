package level

import (
	"errors"
	"fmt"

	"github.com/minaorangina/tray/deck"
)

// StackIDOffset is the first id given to stack cards. Playfield cards are
// numbered from zero, so a layout may hold at most this many playfield cards.
const StackIDOffset = 100

var (
	ErrNotFound     = errors.New("level not found")
	ErrTooManyCards = fmt.Errorf("playfield holds more than %d cards", StackIDOffset)
	ErrMalformed    = errors.New("level file is malformed")
)

// Entry is one card in a level layout
type Entry struct {
	Face     deck.Rank
	Suit     deck.Suit
	Position deck.Position
}

// Layout is the starting arrangement of a level
type Layout struct {
	Playfield []Entry
	Stack     []Entry
}

// Provider looks up level layouts by number
type Provider interface {
	Level(id int) (Layout, error)
}

// Defaulter is a Provider with its own fallback layout
type Defaulter interface {
	Default() (Layout, error)
}

// Load returns the layout for a level, or the default layout if the level
// does not exist
func Load(p Provider, id int) (Layout, error) {
	layout, err := p.Level(id)
	if err == nil {
		return layout, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Layout{}, err
	}

	if d, ok := p.(Defaulter); ok {
		return d.Default()
	}
	return Default(), nil
}

// Build turns a layout into cards, giving every card its id.
// Stack cards have no position of their own.
func Build(layout Layout) (playfield, stack []deck.Card, err error) {
	if len(layout.Playfield) > StackIDOffset {
		return nil, nil, ErrTooManyCards
	}

	playfield = make([]deck.Card, 0, len(layout.Playfield))
	for i, e := range layout.Playfield {
		c, err := deck.NewCard(i, int(e.Face), int(e.Suit), e.Position)
		if err != nil {
			return nil, nil, err
		}
		playfield = append(playfield, c)
	}

	stack = make([]deck.Card, 0, len(layout.Stack))
	for i, e := range layout.Stack {
		c, err := deck.NewCard(StackIDOffset+i, int(e.Face), int(e.Suit), deck.Position{})
		if err != nil {
			return nil, nil, err
		}
		stack = append(stack, c)
	}

	return playfield, stack, nil
}
