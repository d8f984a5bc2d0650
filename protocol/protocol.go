package protocol

import (
	"encoding/json"
	"fmt"
)

// Cmd represents a command
type Cmd int

const (
	Null Cmd = iota
	NewGame
	State
	PlayCard // move a playfield card to the tray
	Draw     // draw from the stack to the tray
	Undo
	Settle // the presentation has finished animating an undo
	Restart
	Error
	GameOver
)

var CmdNames = map[Cmd]string{
	Null:     "Null",
	NewGame:  "NewGame",
	State:    "State",
	PlayCard: "PlayCard",
	Draw:     "Draw",
	Undo:     "Undo",
	Settle:   "Settle",
	Restart:  "Restart",
	Error:    "Error",
	GameOver: "GameOver",
}

var NameToCmd = map[string]Cmd{
	"Null":     Null,
	"NewGame":  NewGame,
	"State":    State,
	"PlayCard": PlayCard,
	"Draw":     Draw,
	"Undo":     Undo,
	"Settle":   Settle,
	"Restart":  Restart,
	"Error":    Error,
	"GameOver": GameOver,
}

func (c Cmd) String() string {
	return CmdNames[c]
}

// MarshalJSON writes a command by name
func (c Cmd) MarshalJSON() ([]byte, error) {
	name, ok := CmdNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown command %d", int(c))
	}
	return json.Marshal(name)
}

// UnmarshalJSON reads a command by name
func (c *Cmd) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	cmd, ok := NameToCmd[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}
	*c = cmd
	return nil
}

// InboundMessage is a message from a client to a game
type InboundMessage struct {
	Command Cmd `json:"command"`
	CardID  int `json:"card_id,omitempty"`
}

// OutboundMessage is a message from a game to a client
type OutboundMessage struct {
	GameID  string    `json:"game_id"`
	Command Cmd       `json:"command"`
	State   *Snapshot `json:"state,omitempty"`
	Message string    `json:"message,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// CardView is a card as clients see it
type CardView struct {
	ID    int     `json:"id"`
	Rank  string  `json:"rank"`
	Suit  string  `json:"suit"`
	Label string  `json:"label"`
	Value int     `json:"value"`
	Red   bool    `json:"red"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Snapshot is everything a client needs to draw a game
type Snapshot struct {
	Playfield  []CardView `json:"playfield"`
	StackCount int        `json:"stack_count"`
	Tray       *CardView  `json:"tray,omitempty"`
	Moves      []int      `json:"moves"`
	CanUndo    bool       `json:"can_undo"`
	Busy       bool       `json:"busy"`
	Over       bool       `json:"over"`
	Won        bool       `json:"won"`
	Stuck      bool       `json:"stuck"`
}
