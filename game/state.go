package game

import (
	"fmt"
	"sort"

	"github.com/minaorangina/tray/deck"
)

// State owns every card in a session and the zones they sit in.
// Zones hold card ids; the cards themselves live in one arena keyed by id,
// so moving a card never copies it.
type State struct {
	cards     map[int]deck.Card
	playfield map[int]struct{}
	stack     []int // top is the last element
	tray      int
	covered   []int // cards displaced from the tray, most recent last
	trayPos   deck.Position
}

// Option configures a State
type Option func(*State)

// WithTrayPosition sets the position given to playfield cards landing on the tray
func WithTrayPosition(p deck.Position) Option {
	return func(s *State) {
		s.trayPos = p
	}
}

// New sets up a game from a playfield and a stack.
// Both must hold at least one card. The top of the stack starts on the tray.
func New(playfieldCards, stackCards []deck.Card, opts ...Option) (*State, error) {
	if len(playfieldCards) == 0 || len(stackCards) == 0 {
		return nil, ErrEmptyLevel
	}

	s := &State{
		cards:     make(map[int]deck.Card, len(playfieldCards)+len(stackCards)),
		playfield: make(map[int]struct{}, len(playfieldCards)),
		stack:     make([]int, 0, len(stackCards)),
		tray:      NoCard,
		covered:   []int{},
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, c := range playfieldCards {
		if err := s.adopt(c); err != nil {
			return nil, err
		}
		s.playfield[c.ID] = struct{}{}
	}
	for _, c := range stackCards {
		if err := s.adopt(c); err != nil {
			return nil, err
		}
		s.stack = append(s.stack, c.ID)
	}

	// the tray is empty, so nothing is covered
	s.tray = s.popStack()

	return s, nil
}

func (s *State) adopt(c deck.Card) error {
	if c.ID < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCardID, c.ID)
	}
	if _, exists := s.cards[c.ID]; exists {
		return fmt.Errorf("%w: %d", ErrDuplicateCard, c.ID)
	}
	s.cards[c.ID] = c
	return nil
}

// Card returns the card with the given id, wherever it is
func (s *State) Card(id int) (deck.Card, bool) {
	c, ok := s.cards[id]
	return c, ok
}

// InPlayfield reports whether the card is waiting in the playfield
func (s *State) InPlayfield(id int) bool {
	_, ok := s.playfield[id]
	return ok
}

// Playfield returns the playfield cards ordered by id
func (s *State) Playfield() []deck.Card {
	ids := make([]int, 0, len(s.playfield))
	for id := range s.playfield {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return s.lookup(ids)
}

// Stack returns the stack from bottom to top
func (s *State) Stack() []deck.Card {
	return s.lookup(s.stack)
}

func (s *State) StackSize() int {
	return len(s.stack)
}

// Tray returns the card on the tray, if any
func (s *State) Tray() (deck.Card, bool) {
	if s.tray == NoCard {
		return deck.Card{}, false
	}
	return s.cards[s.tray], true
}

// TrayID returns the id of the card on the tray, or NoCard
func (s *State) TrayID() int {
	return s.tray
}

// Covered returns the cards displaced from the tray, oldest first
func (s *State) Covered() []deck.Card {
	return s.lookup(s.covered)
}

// IDs returns every card id held in any zone, sorted.
// An id appearing twice means a card was duplicated.
func (s *State) IDs() []int {
	ids := make([]int, 0, len(s.cards))
	for id := range s.playfield {
		ids = append(ids, id)
	}
	ids = append(ids, s.stack...)
	if s.tray != NoCard {
		ids = append(ids, s.tray)
	}
	ids = append(ids, s.covered...)
	sort.Ints(ids)
	return ids
}

// Zones is a copy of every zone, taken at one moment
type Zones struct {
	Playfield []deck.Card
	Stack     []deck.Card
	Tray      int
	Covered   []deck.Card
}

// Zones copies out the current contents of every zone
func (s *State) Zones() Zones {
	return Zones{
		Playfield: s.Playfield(),
		Stack:     s.Stack(),
		Tray:      s.tray,
		Covered:   s.Covered(),
	}
}

func (s *State) lookup(ids []int) []deck.Card {
	cards := make([]deck.Card, 0, len(ids))
	for _, id := range ids {
		cards = append(cards, s.cards[id])
	}
	return cards
}

// MoveToTray moves a playfield card onto the tray.
// The card must match the tray card if there is one. Nothing changes on failure.
func (s *State) MoveToTray(id int) (PlayfieldToTray, error) {
	if !s.InPlayfield(id) {
		return PlayfieldToTray{}, fmt.Errorf("%w: %d", ErrUnknownCard, id)
	}

	card := s.cards[id]
	if top, ok := s.Tray(); ok && !card.Matches(top) {
		return PlayfieldToTray{}, fmt.Errorf("%w: %s on %s", ErrIllegalMove, card, top)
	}

	rec := PlayfieldToTray{
		Card:           card,
		From:           card.Position,
		To:             s.trayPos,
		PreviousTrayID: s.tray,
	}

	delete(s.playfield, id)
	card.Position = s.trayPos
	s.cards[id] = card
	s.place(id)

	return rec, nil
}

// Draw moves the top of the stack onto the tray. Draws are never gated by
// the tray card.
func (s *State) Draw() (StackToTray, error) {
	if len(s.stack) == 0 {
		return StackToTray{}, ErrStackEmpty
	}

	rec := StackToTray{PreviousTrayID: s.tray}
	rec.ID = s.popStack()
	s.place(rec.ID)

	return rec, nil
}

// place puts a card on the tray, covering the current one
func (s *State) place(id int) {
	if s.tray != NoCard {
		s.covered = append(s.covered, s.tray)
	}
	s.tray = id
}

func (s *State) popStack() int {
	last := len(s.stack) - 1
	id := s.stack[last]
	s.stack = s.stack[:last]
	return id
}

// IsOver reports whether both the playfield and the stack are empty
func (s *State) IsOver() bool {
	return len(s.playfield) == 0 && len(s.stack) == 0
}

// IsWon reports whether the playfield has been cleared
func (s *State) IsWon() bool {
	return len(s.playfield) == 0
}

// LegalMoves returns the ids of playfield cards that may move to the tray
func (s *State) LegalMoves() []int {
	top, occupied := s.Tray()
	moves := []int{}
	for id := range s.playfield {
		if !occupied || s.cards[id].Matches(top) {
			moves = append(moves, id)
		}
	}
	sort.Ints(moves)
	return moves
}

// Stuck reports a playfield that can no longer be cleared: cards remain,
// none match the tray and there is nothing left to draw.
// IsOver stays false in this state.
func (s *State) Stuck() bool {
	return len(s.playfield) > 0 && len(s.stack) == 0 && len(s.LegalMoves()) == 0
}
