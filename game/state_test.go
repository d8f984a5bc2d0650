package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/minaorangina/tray/deck"
	utils "github.com/minaorangina/tray/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("needs cards in both zones", func(t *testing.T) {
		six := MustCard(t, 0, deck.Six, deck.Hearts)
		seven := MustCard(t, 100, deck.Seven, deck.Clubs)

		_, err := New(nil, []deck.Card{seven})
		assert.True(t, errors.Is(err, ErrEmptyLevel))

		_, err = New([]deck.Card{six}, []deck.Card{})
		assert.True(t, errors.Is(err, ErrEmptyLevel))
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		_, err := New(
			[]deck.Card{MustCard(t, 0, deck.Six, deck.Hearts)},
			[]deck.Card{MustCard(t, 0, deck.Two, deck.Clubs), MustCard(t, 100, deck.Three, deck.Clubs)},
		)
		assert.True(t, errors.Is(err, ErrDuplicateCard))
	})

	t.Run("rejects negative ids", func(t *testing.T) {
		_, err := New(
			[]deck.Card{{ID: -1, Rank: deck.Six}},
			[]deck.Card{MustCard(t, 100, deck.Three, deck.Clubs)},
		)
		assert.True(t, errors.Is(err, ErrInvalidCardID))
	})

	t.Run("top of the stack starts on the tray", func(t *testing.T) {
		s := MustState(t,
			[]deck.Card{MustCard(t, 0, deck.Six, deck.Hearts)},
			[]deck.Card{
				MustCard(t, 100, deck.Two, deck.Clubs),
				MustCard(t, 101, deck.Seven, deck.Clubs),
			},
		)

		top, ok := s.Tray()
		require.True(t, ok)
		utils.AssertEqual(t, top.ID, 101)
		utils.AssertEqual(t, s.StackSize(), 1)
		assert.Empty(t, s.Covered())
		assert.Equal(t, []int{0, 100, 101}, s.IDs())
	})
}

func TestMoveToTray(t *testing.T) {
	t.Run("adjacent card moves and covers the tray", func(t *testing.T) {
		s := MustState(t,
			[]deck.Card{MustCard(t, 0, deck.Six, deck.Hearts)},
			[]deck.Card{MustCard(t, 100, deck.Seven, deck.Clubs)},
		)

		rec, err := s.MoveToTray(0)
		require.NoError(t, err)

		utils.AssertEqual(t, rec.CardID(), 0)
		utils.AssertEqual(t, rec.PreviousTrayID, 100)
		utils.AssertEqual(t, rec.From, deck.Position{X: 0, Y: 100})
		utils.AssertEqual(t, s.TrayID(), 0)
		assert.False(t, s.InPlayfield(0))
		require.Len(t, s.Covered(), 1)
		utils.AssertEqual(t, s.Covered()[0].ID, 100)
	})

	t.Run("non-adjacent card is rejected without changes", func(t *testing.T) {
		s := MustState(t,
			[]deck.Card{MustCard(t, 0, deck.Ace, deck.Hearts)},
			[]deck.Card{MustCard(t, 100, deck.Five, deck.Clubs)},
		)
		before := s.Zones()

		_, err := s.MoveToTray(0)
		assert.True(t, errors.Is(err, ErrIllegalMove))
		assert.Equal(t, before, s.Zones())
	})

	t.Run("unknown card is rejected", func(t *testing.T) {
		s := MustState(t,
			[]deck.Card{MustCard(t, 0, deck.Six, deck.Hearts)},
			[]deck.Card{MustCard(t, 100, deck.Seven, deck.Clubs)},
		)

		_, err := s.MoveToTray(42)
		assert.True(t, errors.Is(err, ErrUnknownCard))

		// the tray card is not in the playfield either
		_, err = s.MoveToTray(100)
		assert.True(t, errors.Is(err, ErrUnknownCard))
	})

	t.Run("moved card takes the tray position", func(t *testing.T) {
		trayPos := deck.Position{X: 540, Y: 300}
		s, err := New(
			[]deck.Card{MustCard(t, 0, deck.Six, deck.Hearts)},
			[]deck.Card{MustCard(t, 100, deck.Seven, deck.Clubs)},
			WithTrayPosition(trayPos),
		)
		require.NoError(t, err)

		rec, err := s.MoveToTray(0)
		require.NoError(t, err)
		utils.AssertEqual(t, rec.To, trayPos)

		top, _ := s.Tray()
		utils.AssertEqual(t, top.Position, trayPos)
	})
}

func TestDraw(t *testing.T) {
	t.Run("draws regardless of rank", func(t *testing.T) {
		s := MustState(t,
			[]deck.Card{MustCard(t, 0, deck.Six, deck.Hearts)},
			[]deck.Card{
				MustCard(t, 100, deck.King, deck.Clubs),
				MustCard(t, 101, deck.Two, deck.Clubs),
			},
		)

		rec, err := s.Draw()
		require.NoError(t, err)
		utils.AssertEqual(t, rec.ID, 100)
		utils.AssertEqual(t, rec.PreviousTrayID, 101)
		utils.AssertEqual(t, s.TrayID(), 100)
		utils.AssertEqual(t, s.StackSize(), 0)
	})

	t.Run("empty stack", func(t *testing.T) {
		s := MustState(t,
			[]deck.Card{MustCard(t, 0, deck.Six, deck.Hearts)},
			[]deck.Card{MustCard(t, 100, deck.Seven, deck.Clubs)},
		)

		_, err := s.Draw()
		assert.True(t, errors.Is(err, ErrStackEmpty))
		assert.True(t, errors.Is(err, ErrEmptySource))
		utils.AssertEqual(t, s.TrayID(), 100)
	})
}

func TestReverse(t *testing.T) {
	newState := func(t *testing.T) *State {
		return MustState(t,
			[]deck.Card{
				MustCard(t, 0, deck.Six, deck.Hearts),
				MustCard(t, 1, deck.Five, deck.Spades),
				MustCard(t, 2, deck.Nine, deck.Diamonds),
			},
			[]deck.Card{
				MustCard(t, 100, deck.Eight, deck.Clubs),
				MustCard(t, 101, deck.Ten, deck.Clubs),
				MustCard(t, 102, deck.Seven, deck.Clubs),
			},
		)
	}

	t.Run("playfield move then reverse restores every zone", func(t *testing.T) {
		s := newState(t)
		before := s.Zones()

		rec, err := s.MoveToTray(0)
		require.NoError(t, err)
		require.NoError(t, s.Reverse(rec))

		assert.Equal(t, before, s.Zones())
	})

	t.Run("draw then reverse restores every zone", func(t *testing.T) {
		s := newState(t)
		before := s.Zones()

		rec, err := s.Draw()
		require.NoError(t, err)
		require.NoError(t, s.Reverse(rec))

		assert.Equal(t, before, s.Zones())
	})

	t.Run("nested covers unwind one at a time", func(t *testing.T) {
		s := newState(t)
		// tray: 102 (Seven)
		first := s.Zones()
		recA, err := s.MoveToTray(0) // Six covers Seven
		require.NoError(t, err)
		second := s.Zones()
		recB, err := s.MoveToTray(1) // Five covers Six
		require.NoError(t, err)
		third := s.Zones()
		recC, err := s.Draw() // Ten covers Five
		require.NoError(t, err)

		require.NoError(t, s.Reverse(recC))
		assert.Equal(t, third, s.Zones())
		require.NoError(t, s.Reverse(recB))
		assert.Equal(t, second, s.Zones())
		require.NoError(t, s.Reverse(recA))
		assert.Equal(t, first, s.Zones())
	})

	t.Run("stale record is refused", func(t *testing.T) {
		s := newState(t)

		recA, err := s.MoveToTray(0)
		require.NoError(t, err)
		_, err = s.Draw()
		require.NoError(t, err)
		before := s.Zones()

		err = s.Reverse(recA)
		assert.True(t, errors.Is(err, ErrStateMismatch))
		assert.Equal(t, before, s.Zones())
	})

	t.Run("unknown record kind", func(t *testing.T) {
		s := newState(t)
		err := s.Reverse(nil)
		assert.True(t, errors.Is(err, ErrUnknownRecord))
	})

	t.Run("rebuilt card keeps recorded rank, suit and position", func(t *testing.T) {
		s := newState(t)
		rec, err := s.MoveToTray(0)
		require.NoError(t, err)
		require.NoError(t, s.ReversePlayfieldToTray(rec))

		c, ok := s.Card(0)
		require.True(t, ok)
		utils.AssertEqual(t, c.Rank, deck.Six)
		utils.AssertEqual(t, c.Suit, deck.Hearts)
		utils.AssertEqual(t, c.Position, rec.From)
		assert.True(t, s.InPlayfield(0))
	})
}

func TestReverseWithoutHistory(t *testing.T) {
	// Logs recorded before the covered history existed only know the
	// previous tray id. The card is found in the stack instead.
	build := func(t *testing.T) *State {
		s := MustState(t,
			[]deck.Card{MustCard(t, 0, deck.Six, deck.Hearts)},
			[]deck.Card{
				MustCard(t, 100, deck.Eight, deck.Clubs),
				MustCard(t, 101, deck.Seven, deck.Clubs),
			},
		)
		return s
	}

	t.Run("stack record", func(t *testing.T) {
		s := build(t)
		// simulate a tray whose history was lost: 101 is back in the stack
		s.stack = []int{101}
		s.tray = 100

		err := s.ReverseStackToTray(StackToTray{ID: 100, PreviousTrayID: 101})
		require.NoError(t, err)

		utils.AssertEqual(t, s.TrayID(), 101)
		utils.AssertDeepEqual(t, s.stack, []int{100})
		assert.Equal(t, []int{0, 100, 101}, s.IDs())
	})

	t.Run("playfield record", func(t *testing.T) {
		s := build(t)
		card, _ := s.Card(0)
		delete(s.playfield, 0)
		s.stack = []int{100, 101}
		s.tray = 0

		err := s.ReversePlayfieldToTray(PlayfieldToTray{Card: card, From: card.Position, PreviousTrayID: 101})
		require.NoError(t, err)

		utils.AssertEqual(t, s.TrayID(), 101)
		utils.AssertDeepEqual(t, s.stack, []int{100})
		assert.True(t, s.InPlayfield(0))
		assert.Equal(t, []int{0, 100, 101}, s.IDs())
	})

	t.Run("no previous card leaves the tray empty", func(t *testing.T) {
		s := build(t)
		s.stack = []int{101}
		s.tray = 100

		err := s.ReverseStackToTray(StackToTray{ID: 100, PreviousTrayID: NoCard})
		require.NoError(t, err)

		_, ok := s.Tray()
		assert.False(t, ok)
		utils.AssertDeepEqual(t, s.stack, []int{101, 100})
	})
}

func TestGameOver(t *testing.T) {
	t.Run("empty playfield with cards to draw is won but not over", func(t *testing.T) {
		s := MustState(t,
			[]deck.Card{MustCard(t, 0, deck.Six, deck.Hearts)},
			[]deck.Card{
				MustCard(t, 100, deck.Two, deck.Clubs),
				MustCard(t, 101, deck.Seven, deck.Clubs),
			},
		)
		_, err := s.MoveToTray(0)
		require.NoError(t, err)

		assert.True(t, s.IsWon())
		assert.False(t, s.IsOver())
	})

	t.Run("everything cleared is over and won", func(t *testing.T) {
		s := MustState(t,
			[]deck.Card{MustCard(t, 0, deck.Six, deck.Hearts)},
			[]deck.Card{MustCard(t, 100, deck.Seven, deck.Clubs)},
		)
		_, err := s.MoveToTray(0)
		require.NoError(t, err)

		assert.True(t, s.IsOver())
		assert.True(t, s.IsWon())
	})

	t.Run("stuck playfield is not over", func(t *testing.T) {
		s := MustState(t,
			[]deck.Card{MustCard(t, 0, deck.Ace, deck.Hearts)},
			[]deck.Card{MustCard(t, 100, deck.Five, deck.Clubs)},
		)

		assert.False(t, s.IsOver())
		assert.False(t, s.IsWon())
		assert.True(t, s.Stuck())
		assert.Empty(t, s.LegalMoves())
	})
}

func TestLegalMoves(t *testing.T) {
	s := MustState(t,
		[]deck.Card{
			MustCard(t, 0, deck.Six, deck.Hearts),
			MustCard(t, 1, deck.Eight, deck.Spades),
			MustCard(t, 2, deck.Nine, deck.Diamonds),
			MustCard(t, 3, deck.Seven, deck.Diamonds),
		},
		[]deck.Card{MustCard(t, 100, deck.Seven, deck.Clubs)},
	)

	utils.AssertDeepEqual(t, s.LegalMoves(), []int{0, 1})
	assert.False(t, s.Stuck())
}

func TestConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 20; round++ {
		d := deck.New(0)
		d.Shuffle(rng)
		playfield := d.Deal(12)
		for i := range playfield {
			playfield[i].ID = i
		}
		stack := d.Deal(10)
		for i := range stack {
			stack[i].ID = 100 + i
		}

		s := MustState(t, playfield, stack)
		want := s.IDs()
		history := []Record{}
		snapshots := []Zones{}

		for step := 0; step < 60; step++ {
			switch rng.Intn(3) {
			case 0:
				moves := s.LegalMoves()
				if len(moves) == 0 {
					continue
				}
				before := s.Zones()
				rec, err := s.MoveToTray(moves[rng.Intn(len(moves))])
				require.NoError(t, err)
				history = append(history, rec)
				snapshots = append(snapshots, before)
			case 1:
				before := s.Zones()
				rec, err := s.Draw()
				if errors.Is(err, ErrStackEmpty) {
					continue
				}
				require.NoError(t, err)
				history = append(history, rec)
				snapshots = append(snapshots, before)
			case 2:
				if len(history) == 0 {
					continue
				}
				last := len(history) - 1
				require.NoError(t, s.Reverse(history[last]))
				require.Equal(t, snapshots[last], s.Zones())
				history, snapshots = history[:last], snapshots[:last]
			}
			require.Equal(t, want, s.IDs(), "round %d step %d", round, step)
		}
	}
}
