package presenter

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
)

func newPlainTerminal() (*Terminal, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewTerminal(&buf, termenv.WithProfile(termenv.Ascii)), &buf
}

func TestTerminal_Render(t *testing.T) {
	// Given: a snapshot with X in the corner and O in the center
	term, buf := newPlainTerminal()

	snapshot := entity.Snapshot{
		Board:   entity.Grid{entity.SymbolA.Cell(), entity.Empty, entity.Empty, entity.Empty, entity.SymbolB.Cell()},
		Message: "Player X's turn",
		Score:   "Score: X - 2 | O - 1",
	}

	// When: rendering it
	term.Render(snapshot)

	// Then: the grid shows marks and free cell numbers, followed by status and score
	expected := strings.Join([]string{
		" X | 1 | 2 ",
		"---+---+---",
		" 3 | O | 5 ",
		"---+---+---",
		" 6 | 7 | 8 ",
		"",
		"Player X's turn",
		"Score: X - 2 | O - 1",
		"",
	}, "\n")

	assert.Equal(t, expected, buf.String())
}

func TestTerminal_Play(t *testing.T) {
	t.Run("Plays a full round from the keyboard", func(t *testing.T) {
		// Given: a session rendered to a plain terminal
		term, buf := newPlainTerminal()

		session := tictactoe.NewGameSession(slog.New(slog.NewTextHandler(io.Discard, nil)), "local")
		session.Subscribe(term.Render)

		// When: X takes the top row while O plays below, with noise in between
		input := strings.NewReader("0\n3\n0\nabc\n1\n4\n2\n5\nq\n7\n")
		require.NoError(t, term.Play(input, session))

		// Then: X won, commands after q were not read
		snapshot := session.Snapshot()
		assert.Equal(t, entity.StatusWin, snapshot.Status)
		assert.Equal(t, entity.SymbolA, snapshot.Winner)
		assert.True(t, snapshot.Board[5].IsEmpty())
		assert.True(t, snapshot.Board[7].IsEmpty())

		assert.Contains(t, buf.String(), "Player X wins!")
		assert.Contains(t, buf.String(), "0-8 to play a cell")
	})

	t.Run("Round and match restarts", func(t *testing.T) {
		term, _ := newPlainTerminal()

		session := tictactoe.NewGameSession(slog.New(slog.NewTextHandler(io.Discard, nil)), "local")

		// When: X wins, a new round starts, X wins again, then a new match starts
		input := strings.NewReader("0\n3\n1\n4\n2\nr\n0\n3\n1\n4\n2\n")
		require.NoError(t, term.Play(input, session))
		require.Equal(t, 2, session.Snapshot().Scores.Of(entity.SymbolA).Wins)

		require.NoError(t, term.Play(strings.NewReader("m\n"), session))

		// Then: the score is cleared
		assert.Equal(t, tictactoe.NewScoreboard(), session.Snapshot().Scores)
	})
}
