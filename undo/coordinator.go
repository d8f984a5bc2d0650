package undo

import (
	"errors"
	"fmt"
	"io/ioutil"
	"log"

	"github.com/minaorangina/tray/game"
)

var (
	ErrBusy          = errors.New("an undo is still settling")
	ErrNothingToUndo = fmt.Errorf("nothing to undo: %w", game.ErrEmptySource)
	ErrUndoMismatch  = fmt.Errorf("undo refused: %w", game.ErrStateMismatch)
)

// State is the coordinator's single-flight guard
// Idle -> accepting moves and undos
// Busy -> an undo has been applied but the presentation has not settled
type State int

const (
	Idle State = iota
	Busy
)

func (s State) String() string {
	if s == Idle {
		return "idle"
	} else if s == Busy {
		return "busy"
	}
	return ""
}

// Coordinator applies moves to a game and keeps the log needed to undo them
type Coordinator struct {
	game        *game.State
	log         *Log
	state       State
	awaitSettle bool
	logger      *log.Logger
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithAwaitSettle keeps the coordinator Busy after each undo until Settle
// is called, for callers that animate the reversal.
func WithAwaitSettle(await bool) Option {
	return func(c *Coordinator) {
		c.awaitSettle = await
	}
}

// WithLogger sets where recorded and undone moves are logged
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCoordinator constructs a Coordinator for a game
func NewCoordinator(g *game.State, opts ...Option) *Coordinator {
	c := &Coordinator{
		game:   g,
		log:    NewLog(),
		state:  Idle,
		logger: log.New(ioutil.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns Idle or Busy
func (c *Coordinator) State() State {
	return c.state
}

func (c *Coordinator) Busy() bool {
	return c.state == Busy
}

func (c *Coordinator) CanUndo() bool {
	return c.log.CanUndo()
}

// Records returns the log, oldest first
func (c *Coordinator) Records() []game.Record {
	return c.log.Records()
}

// AttemptPlayfieldMove moves a playfield card to the tray and records it
func (c *Coordinator) AttemptPlayfieldMove(cardID int) error {
	if c.Busy() {
		return ErrBusy
	}

	rec, err := c.game.MoveToTray(cardID)
	if err != nil {
		return err
	}

	return c.RecordPlayfieldToTray(rec)
}

// AttemptDraw draws from the stack and records it
func (c *Coordinator) AttemptDraw() error {
	if c.Busy() {
		return ErrBusy
	}

	rec, err := c.game.Draw()
	if err != nil {
		return err
	}

	return c.RecordStackToTray(rec)
}

// RecordPlayfieldToTray logs a move already applied to the game
func (c *Coordinator) RecordPlayfieldToTray(rec game.PlayfieldToTray) error {
	return c.record(rec)
}

// RecordStackToTray logs a draw already applied to the game
func (c *Coordinator) RecordStackToTray(rec game.StackToTray) error {
	return c.record(rec)
}

func (c *Coordinator) record(rec game.Record) error {
	if c.Busy() {
		return ErrBusy
	}
	c.log.Record(rec)
	c.logger.Printf("recorded %s card=%d previous=%d", rec.Kind(), rec.CardID(), rec.PreviousTray())
	return nil
}

// Undo reverses the most recent move.
// A record that no longer matches the tray stays in the log.
func (c *Coordinator) Undo() (game.Record, error) {
	if c.Busy() {
		return nil, ErrBusy
	}

	rec, err := c.log.Last()
	if err != nil {
		return nil, ErrNothingToUndo
	}

	c.state = Busy

	if err := c.game.Reverse(rec); err != nil {
		c.state = Idle
		c.logger.Printf("undo of %s card=%d failed: %v", rec.Kind(), rec.CardID(), err)
		if errors.Is(err, game.ErrStateMismatch) {
			return rec, fmt.Errorf("%w (%s)", ErrUndoMismatch, err)
		}
		return rec, err
	}

	if _, err := c.log.Pop(); err != nil {
		// Last succeeded above, so the log cannot be empty here
		panic(err)
	}
	c.logger.Printf("undid %s card=%d", rec.Kind(), rec.CardID())

	if !c.awaitSettle {
		c.state = Idle
	}
	return rec, nil
}

// Settle marks the last undo as finished on screen
func (c *Coordinator) Settle() {
	c.state = Idle
}

// Reset forgets every record. Only for starting a session over.
func (c *Coordinator) Reset(g *game.State) {
	c.game = g
	c.log.Clear()
	c.state = Idle
}
