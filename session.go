package tray

import (
	"log"
	"sync"

	"github.com/minaorangina/tray/deck"
	"github.com/minaorangina/tray/game"
	"github.com/minaorangina/tray/level"
	"github.com/minaorangina/tray/protocol"
	"github.com/minaorangina/tray/undo"
)

// SessionOpts configures a new Session
type SessionOpts struct {
	ID           string
	LevelID      int
	Layout       level.Layout
	AwaitSettle  bool
	TrayPosition deck.Position
	Logger       *log.Logger
}

// Session is one game being played. It is what a front end talks to:
// commands change the game, queries read it back. Calls are serialised.
type Session struct {
	mu    sync.Mutex
	opts  SessionOpts
	state *game.State
	undo  *undo.Coordinator
}

// NewSession deals the layout and starts the game
func NewSession(opts SessionOpts) (*Session, error) {
	state, err := deal(opts)
	if err != nil {
		return nil, err
	}

	return &Session{
		opts:  opts,
		state: state,
		undo: undo.NewCoordinator(state,
			undo.WithAwaitSettle(opts.AwaitSettle),
			undo.WithLogger(opts.Logger),
		),
	}, nil
}

func deal(opts SessionOpts) (*game.State, error) {
	playfield, stack, err := level.Build(opts.Layout)
	if err != nil {
		return nil, err
	}
	return game.New(playfield, stack, game.WithTrayPosition(opts.TrayPosition))
}

func (s *Session) ID() string {
	return s.opts.ID
}

func (s *Session) LevelID() int {
	return s.opts.LevelID
}

func (s *Session) PlayfieldCards() []deck.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Playfield()
}

func (s *Session) StackCards() []deck.Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Stack()
}

func (s *Session) TrayTopCard() (deck.Card, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Tray()
}

func (s *Session) IsOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsOver()
}

func (s *Session) IsWon() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsWon()
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo.CanUndo()
}

func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo.Busy()
}

// AttemptPlayfieldMove moves a playfield card onto the tray
func (s *Session) AttemptPlayfieldMove(cardID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo.AttemptPlayfieldMove(cardID)
}

// AttemptDraw draws the top of the stack onto the tray
func (s *Session) AttemptDraw() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.undo.AttemptDraw()
}

// Undo reverses the last move
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.undo.Undo()
	return err
}

// Settle tells the session an undo has finished animating
func (s *Session) Settle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undo.Settle()
}

// Restart deals the level again and forgets every move
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := deal(s.opts)
	if err != nil {
		return err
	}
	s.state = state
	s.undo.Reset(state)
	return nil
}

// Snapshot copies out everything needed to draw the game
func (s *Session) Snapshot() protocol.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := protocol.Snapshot{
		Playfield:  []protocol.CardView{},
		StackCount: s.state.StackSize(),
		Moves:      s.state.LegalMoves(),
		CanUndo:    s.undo.CanUndo(),
		Busy:       s.undo.Busy(),
		Over:       s.state.IsOver(),
		Won:        s.state.IsWon(),
		Stuck:      s.state.Stuck(),
	}
	for _, c := range s.state.Playfield() {
		snap.Playfield = append(snap.Playfield, cardView(c))
	}
	if top, ok := s.state.Tray(); ok {
		view := cardView(top)
		snap.Tray = &view
	}
	return snap
}

func cardView(c deck.Card) protocol.CardView {
	return protocol.CardView{
		ID:    c.ID,
		Rank:  c.Rank.String(),
		Suit:  c.Suit.String(),
		Label: c.Short(),
		Value: c.Value(),
		Red:   c.Suit.Red(),
		X:     c.Position.X,
		Y:     c.Position.Y,
	}
}
