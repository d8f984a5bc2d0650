package undo

import (
	"fmt"

	"github.com/minaorangina/tray/game"
)

// ErrEmptyLog is returned when reading from a log with no records
var ErrEmptyLog = fmt.Errorf("operation log is empty: %w", game.ErrEmptySource)

// Log is the ordered list of reversible moves made in a session.
// Records are only ever removed from the end.
type Log struct {
	records []game.Record
}

// NewLog constructs an empty Log
func NewLog() *Log {
	return &Log{records: []game.Record{}}
}

// Record appends a move to the log
func (l *Log) Record(rec game.Record) {
	l.records = append(l.records, rec)
}

// Last returns the most recent record without removing it
func (l *Log) Last() (game.Record, error) {
	if len(l.records) == 0 {
		return nil, ErrEmptyLog
	}
	return l.records[len(l.records)-1], nil
}

// Pop removes and returns the most recent record
func (l *Log) Pop() (game.Record, error) {
	rec, err := l.Last()
	if err != nil {
		return nil, err
	}
	l.records = l.records[:len(l.records)-1]
	return rec, nil
}

func (l *Log) CanUndo() bool {
	return len(l.records) > 0
}

func (l *Log) Len() int {
	return len(l.records)
}

// Clear drops every record. Only for resetting a session.
func (l *Log) Clear() {
	l.records = []game.Record{}
}

// Records returns a copy of the log, oldest first
func (l *Log) Records() []game.Record {
	out := make([]game.Record, len(l.records))
	copy(out, l.records)
	return out
}
