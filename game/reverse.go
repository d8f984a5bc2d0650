package game

import "fmt"

// Reverse undoes a recorded move. The record must describe the card
// currently on the tray.
func (s *State) Reverse(rec Record) error {
	switch r := rec.(type) {
	case PlayfieldToTray:
		return s.ReversePlayfieldToTray(r)
	case *PlayfieldToTray:
		return s.ReversePlayfieldToTray(*r)
	case StackToTray:
		return s.ReverseStackToTray(r)
	case *StackToTray:
		return s.ReverseStackToTray(*r)
	}
	return fmt.Errorf("%w: %T", ErrUnknownRecord, rec)
}

// ReversePlayfieldToTray puts the tray card back in the playfield at the
// position it was moved from, then uncovers the previous tray card.
func (s *State) ReversePlayfieldToTray(rec PlayfieldToTray) error {
	if s.tray != rec.Card.ID {
		return ErrFnMismatch(rec.Card.ID, s.tray)
	}

	card := rec.Card
	card.Position = rec.From
	s.cards[card.ID] = card
	s.playfield[card.ID] = struct{}{}
	s.tray = NoCard

	s.uncover(rec.PreviousTrayID)
	return nil
}

// ReverseStackToTray puts the tray card back on top of the stack, then
// uncovers the previous tray card.
func (s *State) ReverseStackToTray(rec StackToTray) error {
	if s.tray != rec.ID {
		return ErrFnMismatch(rec.ID, s.tray)
	}

	s.stack = append(s.stack, rec.ID)
	s.tray = NoCard

	s.uncover(rec.PreviousTrayID)
	return nil
}

// uncover restores the card covered most recently. The covered history is
// authoritative because draws may have happened since the record was made.
// Logs written before the history existed only carry previousID, so when
// the history is exhausted the stack is searched for it instead.
func (s *State) uncover(previousID int) {
	if n := len(s.covered); n > 0 {
		s.tray = s.covered[n-1]
		s.covered = s.covered[:n-1]
		return
	}

	if previousID == NoCard {
		return
	}
	for i, id := range s.stack {
		if id == previousID {
			s.stack = append(s.stack[:i], s.stack[i+1:]...)
			s.tray = id
			return
		}
	}
}
