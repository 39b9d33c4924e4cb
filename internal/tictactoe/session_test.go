package tictactoe

import (
	"io"
	"log/slog"
	"testing"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T) *GameSession {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewGameSession(logger, "session-1")
}

func play(t *testing.T, session *GameSession, cells ...int) entity.Snapshot {
	t.Helper()

	var snapshot entity.Snapshot
	for _, cell := range cells {
		var err error
		snapshot, err = session.SelectCell(cell)
		require.NoError(t, err, "cell %d", cell)
	}

	return snapshot
}

func TestNewGameSession(t *testing.T) {
	// When: a new session is created
	session := newTestSession(t)

	// Then: the board is empty, X moves first and nothing is frozen
	expected := entity.Snapshot{
		SessionID: "session-1",
		Board:     entity.Grid{},
		Turn:      entity.SymbolA,
		Status:    entity.StatusInProgress,
		Message:   "Player X's turn",
		Score:     "Score: X - 0 | O - 0",
		Scores:    NewScoreboard(),
		Frozen:    false,
	}

	require.Equal(t, expected, session.Snapshot())
}

func TestGameSession_SelectCell(t *testing.T) {
	t.Run("Turn alternates after valid moves", func(t *testing.T) {
		// Given: a new session
		session := newTestSession(t)

		// When: X and O take turns
		first := play(t, session, 0)
		second := play(t, session, 4)

		// Then: the turn switches each time
		assert.Equal(t, entity.SymbolB, first.Turn)
		assert.Equal(t, "Player O's turn", first.Message)
		assert.Equal(t, entity.SymbolA, second.Turn)
		assert.Equal(t, entity.Grid{x, e, e, e, o, e, e, e, e}, second.Board)
	})

	t.Run("Vertical win for X", func(t *testing.T) {
		// Given: a new session
		session := newTestSession(t)

		// When: X plays 0, 3, 6 while O plays 1, 4
		snapshot := play(t, session, 0, 1, 3, 4, 6)

		// Then: X wins, scores once and the board is frozen
		assert.Equal(t, entity.StatusWin, snapshot.Status)
		assert.Equal(t, entity.SymbolA, snapshot.Winner)
		assert.Equal(t, "Player X wins!", snapshot.Message)
		assert.Equal(t, 1, snapshot.Scores.Of(entity.SymbolA).Wins)
		assert.Equal(t, 0, snapshot.Scores.Of(entity.SymbolB).Wins)
		assert.Equal(t, "Score: X - 1 | O - 0", snapshot.Score)
		assert.True(t, snapshot.Frozen)
	})

	t.Run("Draw leaves the score alone", func(t *testing.T) {
		// Given: a new session
		session := newTestSession(t)

		// When: all nine cells are filled without a line
		snapshot := play(t, session, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		// Then: the round is a draw and nobody scores
		assert.Equal(t, entity.StatusDraw, snapshot.Status)
		assert.Equal(t, "It's a draw!", snapshot.Message)
		assert.Equal(t, NewScoreboard(), snapshot.Scores)
		assert.True(t, snapshot.Frozen)
		assert.True(t, IsFull(snapshot.Board))
	})

	t.Run("Selecting an occupied cell is a no-op", func(t *testing.T) {
		// Given: X took cell 2
		session := newTestSession(t)
		before := play(t, session, 2)

		// When: O selects cell 2 again
		after, err := session.SelectCell(2)

		// Then: the move is rejected and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, before, after)
		assert.Equal(t, x, after.Board[2])
		assert.Equal(t, entity.SymbolB, after.Turn)
	})

	t.Run("Occupied cells never change state", func(t *testing.T) {
		// Given: a board with some taken cells
		session := newTestSession(t)
		before := play(t, session, 0, 4, 8, 2)

		for cell, value := range before.Board {
			if value.IsEmpty() {
				continue
			}

			// When: an occupied cell is selected
			after, err := session.SelectCell(cell)

			// Then: board and turn stay the same
			require.ErrorIs(t, err, apperror.ErrCellOccupied)
			assert.Equal(t, before, after)
		}
	})

	t.Run("Out of range index is rejected", func(t *testing.T) {
		session := newTestSession(t)
		before := session.Snapshot()

		after, err := session.SelectCell(9)

		require.ErrorIs(t, err, apperror.ErrIndexOutOfRange)
		assert.Equal(t, before, after)
	})

	t.Run("Finished round accepts no moves", func(t *testing.T) {
		// Given: X has won
		session := newTestSession(t)
		won := play(t, session, 0, 1, 3, 4, 6)

		// When: trying to keep playing
		after, err := session.SelectCell(8)

		// Then: ErrRoundOver is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrRoundOver)
		assert.Equal(t, won, after)
	})
}

func TestGameSession_NewRound(t *testing.T) {
	// Given: X has won a round
	session := newTestSession(t)
	play(t, session, 0, 1, 3, 4, 6)

	// When: the session is restarted
	snapshot, err := session.Restart()
	require.NoError(t, err)

	// Then: the board is empty, X moves and the score survives
	assert.Equal(t, entity.Grid{}, snapshot.Board)
	assert.Equal(t, entity.SymbolA, snapshot.Turn)
	assert.Equal(t, entity.StatusInProgress, snapshot.Status)
	assert.False(t, snapshot.Frozen)
	assert.Equal(t, 1, snapshot.Scores.Of(entity.SymbolA).Wins)

	// Then: moves are accepted again
	next := play(t, session, 4)
	assert.Equal(t, x, next.Board[4])
}

func TestGameSession_NewMatch(t *testing.T) {
	// Given: O has won a round
	session := newTestSession(t)
	play(t, session, 0, 3, 1, 4, 8, 5)
	require.Equal(t, 1, session.Snapshot().Scores.Of(entity.SymbolB).Wins)

	// When: a new match is started
	snapshot, err := session.NewMatch()
	require.NoError(t, err)

	// Then: scores are reset along with the board
	assert.Equal(t, NewScoreboard(), snapshot.Scores)
	assert.Equal(t, entity.Grid{}, snapshot.Board)
	assert.Equal(t, entity.SymbolA, snapshot.Turn)
}

func TestGameSession_Subscribe(t *testing.T) {
	t.Run("Listeners receive snapshots after each transition", func(t *testing.T) {
		// Given: a session with a listener
		session := newTestSession(t)

		var received []entity.Snapshot
		session.Subscribe(func(snapshot entity.Snapshot) {
			received = append(received, snapshot)
		})

		// When: one valid and one rejected move happen
		play(t, session, 0)
		_, err := session.SelectCell(0)
		require.Error(t, err)

		// Then: only the valid move is delivered
		require.Len(t, received, 1)
		assert.Equal(t, x, received[0].Board[0])
	})

	t.Run("Reentrant events are rejected", func(t *testing.T) {
		// Given: a listener that tries to move from inside a notification
		session := newTestSession(t)

		var nestedErr error
		session.Subscribe(func(entity.Snapshot) {
			if nestedErr == nil {
				_, nestedErr = session.SelectCell(8)
			}
		})

		// When: a move triggers the listener
		snapshot := play(t, session, 0)

		// Then: the nested event is refused and cell 8 stays empty
		require.ErrorIs(t, nestedErr, apperror.ErrTransitionInFlight)
		assert.True(t, snapshot.Board[8].IsEmpty())
		assert.True(t, session.Snapshot().Board[8].IsEmpty())
	})
}

func TestRestoreGameSession(t *testing.T) {
	// Given: a session in the middle of a round with some score
	session := newTestSession(t)
	play(t, session, 0, 1, 3, 4, 6)
	_, err := session.NewRound()
	require.NoError(t, err)
	play(t, session, 4, 0)

	// When: its state is stored and restored
	restored := RestoreGameSession(slog.New(slog.NewTextHandler(io.Discard, nil)), session.State())

	// Then: both sessions look the same and keep playing the same way
	require.Equal(t, session.Snapshot(), restored.Snapshot())

	next := play(t, restored, 8)
	assert.Equal(t, x, next.Board[8])
	assert.Equal(t, entity.SymbolB, next.Turn)
}
