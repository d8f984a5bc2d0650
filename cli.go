package tray

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/minaorangina/tray/game"
	"github.com/minaorangina/tray/undo"
)

var ErrQuit = errors.New("player quit")

// Play runs a session in a terminal, reading one command per line from in.
// It returns nil when the game is over, ErrQuit if the player quits and
// io.EOF if input runs out first.
func Play(s *Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	SendText(out, welcomeText)
	SendText(out, helpText)

	for {
		snap := s.Snapshot()
		SendText(out, buildSnapshotText(snap))

		if snap.Over {
			if snap.Won {
				SendText(out, wonText)
			} else {
				SendText(out, gameOverText)
			}
			return nil
		}
		if snap.Stuck {
			SendText(out, stuckText)
		}

		SendText(out, promptText)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return io.EOF
		}

		err := runCommand(s, scanner.Text())
		if errors.Is(err, ErrQuit) {
			return err
		}
		if err != nil {
			SendText(out, "%s\n", describeError(err))
		}
	}
}

func runCommand(s *Session, line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "m", "move":
		if len(fields) != 2 {
			return fmt.Errorf("usage: m <card id>")
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("%q is not a card id", fields[1])
		}
		return s.AttemptPlayfieldMove(id)

	case "d", "draw":
		return s.AttemptDraw()

	case "u", "undo":
		if err := s.Undo(); err != nil {
			return err
		}
		// nothing is animated in a terminal
		s.Settle()
		return nil

	case "r", "restart":
		return s.Restart()

	case "q", "quit":
		return ErrQuit
	}

	return fmt.Errorf("unknown command %q", fields[0])
}

func describeError(err error) string {
	switch {
	case errors.Is(err, game.ErrIllegalMove):
		return "That card is not one away from the tray."
	case errors.Is(err, game.ErrUnknownCard):
		return "There is no such card in the playfield."
	case errors.Is(err, game.ErrStackEmpty):
		return "The stack is empty."
	case errors.Is(err, undo.ErrNothingToUndo):
		return "Nothing to undo."
	case errors.Is(err, undo.ErrBusy):
		return "Wait for the last undo to finish."
	}
	return err.Error()
}
