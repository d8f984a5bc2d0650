package game

import "github.com/minaorangina/tray/deck"

// NoCard is the id used when a zone holds no card
const NoCard = -1

// RecordKind tells the two reversible moves apart
type RecordKind int

const (
	KindPlayfieldToTray RecordKind = iota + 1
	KindStackToTray
)

var recordKindNames = map[RecordKind]string{
	KindPlayfieldToTray: "PlayfieldToTray",
	KindStackToTray:     "StackToTray",
}

func (k RecordKind) String() string {
	if name, ok := recordKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Record is a move that can be reversed.
// The only implementations are PlayfieldToTray and StackToTray.
type Record interface {
	Kind() RecordKind
	CardID() int
	PreviousTray() int
}

// PlayfieldToTray records a card moved from the playfield onto the tray.
// Card carries the rank and suit so the card can be rebuilt exactly on undo.
type PlayfieldToTray struct {
	Card           deck.Card
	From, To       deck.Position
	PreviousTrayID int
}

func (r PlayfieldToTray) Kind() RecordKind  { return KindPlayfieldToTray }
func (r PlayfieldToTray) CardID() int       { return r.Card.ID }
func (r PlayfieldToTray) PreviousTray() int { return r.PreviousTrayID }

// StackToTray records a card drawn from the stack onto the tray
type StackToTray struct {
	ID             int
	PreviousTrayID int
}

func (r StackToTray) Kind() RecordKind  { return KindStackToTray }
func (r StackToTray) CardID() int       { return r.ID }
func (r StackToTray) PreviousTray() int { return r.PreviousTrayID }
