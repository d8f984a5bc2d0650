package game

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyLevel    = errors.New("level needs cards in both the playfield and the stack")
	ErrDuplicateCard = errors.New("card id used more than once")
	ErrInvalidCardID = errors.New("card ids must not be negative")
	ErrUnknownCard   = errors.New("card is not in the playfield")
	ErrIllegalMove   = errors.New("card does not match the tray")
	ErrEmptySource   = errors.New("nothing to take from")
	ErrStackEmpty    = fmt.Errorf("stack is empty: %w", ErrEmptySource)
	ErrStateMismatch = errors.New("record does not match the tray")
	ErrUnknownRecord = errors.New("unknown record kind")
)

// ErrFnMismatch describes a record whose card is no longer on the tray
var ErrFnMismatch = func(want, got int) error {
	return fmt.Errorf("%w: want card %d on tray, found %d", ErrStateMismatch, want, got)
}
