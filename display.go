package tray

import (
	"fmt"
	"io"
	"strings"

	"github.com/minaorangina/tray/protocol"
)

const (
	welcomeText   = "Move cards onto the tray when they are one above or below it.\n"
	helpText      = "Commands: m <id> (move card), d (draw), u (undo), r (restart), q (quit)\n"
	promptText    = "> "
	wonText       = "\nYou win!\n"
	gameOverText  = "\nGame over!\n"
	stuckText     = "No moves left and nothing to draw. Undo or restart.\n"
	emptyTrayText = "(empty)"
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

func buildSnapshotText(snap protocol.Snapshot) string {
	var b strings.Builder

	tray := emptyTrayText
	if snap.Tray != nil {
		tray = snap.Tray.Label
	}
	fmt.Fprintf(&b, "\nTray: %s    Stack: %d card(s)\n", tray, snap.StackCount)

	legal := map[int]bool{}
	for _, id := range snap.Moves {
		legal[id] = true
	}

	b.WriteString("Playfield:\n")
	if len(snap.Playfield) == 0 {
		b.WriteString("  (cleared)\n")
	}
	for _, c := range snap.Playfield {
		marker := " "
		if legal[c.ID] {
			marker = "*"
		}
		fmt.Fprintf(&b, " %s%3d: %s\n", marker, c.ID, c.Label)
	}

	return b.String()
}
