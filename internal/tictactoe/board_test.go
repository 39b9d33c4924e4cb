package tictactoe

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	x = entity.Cell(entity.SymbolA)
	o = entity.Cell(entity.SymbolB)
	e = entity.Empty
)

func TestApplyMove(t *testing.T) {
	t.Run("ApplyMove", func(t *testing.T) {
		// Given: an empty grid
		grid := ResetGrid()

		// When: X takes cell 4
		updated, err := ApplyMove(grid, 4, entity.SymbolA)
		require.NoError(t, err)

		// Then: only cell 4 is taken in the returned grid
		require.Equal(t, entity.Grid{e, e, e, e, x, e, e, e, e}, updated)

		// Then: the original grid is left untouched
		require.Equal(t, entity.Grid{}, grid)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a grid where X holds cell 0
		grid := entity.Grid{x}

		// When: O tries to take the same cell
		updated, err := ApplyMove(grid, 0, entity.SymbolB)

		// Then: ErrCellOccupied must be returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.Equal(t, grid, updated)
	})

	t.Run("Error on index out of range", func(t *testing.T) {
		for _, cell := range []int{-1, 9, 20} {
			// When: a cell outside the board is requested
			_, err := ApplyMove(ResetGrid(), cell, entity.SymbolA)

			// Then: ErrIndexOutOfRange must be returned
			assert.ErrorIs(t, err, apperror.ErrIndexOutOfRange, "cell %d", cell)
		}
	})
}

func TestCheckWin(t *testing.T) {
	t.Run("Every win pattern is detected", func(t *testing.T) {
		for _, combo := range WinCombos {
			// Given: a grid where O holds exactly one winning line
			var grid entity.Grid
			for _, cell := range combo {
				grid[cell] = o
			}

			// Then: O wins and X does not
			assert.True(t, CheckWin(grid, entity.SymbolB), "combo %v", combo)
			assert.False(t, CheckWin(grid, entity.SymbolA), "combo %v", combo)
		}
	})

	t.Run("Empty grid has no winner", func(t *testing.T) {
		assert.False(t, CheckWin(ResetGrid(), entity.SymbolA))
		assert.False(t, CheckWin(ResetGrid(), entity.SymbolB))
	})

	t.Run("Mixed line is not a win", func(t *testing.T) {
		// Given: a full grid without any line of one symbol
		grid := entity.Grid{
			x, o, x,
			x, o, o,
			o, x, x,
		}

		// Then: nobody wins
		assert.False(t, CheckWin(grid, entity.SymbolA))
		assert.False(t, CheckWin(grid, entity.SymbolB))
	})
}

func TestIsFull(t *testing.T) {
	t.Run("Full grid", func(t *testing.T) {
		grid := entity.Grid{x, o, x, x, o, o, o, x, x}

		assert.True(t, IsFull(grid))
	})

	t.Run("Any empty cell means not full", func(t *testing.T) {
		for cell := range entity.BoardSize {
			// Given: a full grid with one cell cleared
			grid := entity.Grid{x, o, x, x, o, o, o, x, x}
			grid[cell] = e

			// Then: the grid is not full
			assert.False(t, IsFull(grid), "cell %d", cell)
		}
	})

	t.Run("Empty grid", func(t *testing.T) {
		assert.False(t, IsFull(ResetGrid()))
	})
}

func TestTurnState(t *testing.T) {
	// Given: a fresh turn state
	turn := NewTurnState()
	require.Equal(t, entity.SymbolA, turn.Current())

	// When: advancing repeatedly
	// Then: the turn alternates strictly X, O, X, O
	for i := range 6 {
		expected := entity.SymbolA
		if i%2 == 1 {
			expected = entity.SymbolB
		}

		assert.Equal(t, expected, turn.Current(), "step %d", i)
		turn = turn.Advance()
	}

	// Then: the zero value starts with X as well
	assert.Equal(t, entity.SymbolA, TurnState{}.Current())
}

func TestScoreboard(t *testing.T) {
	t.Run("RecordWin increments only the winner", func(t *testing.T) {
		// Given: a fresh scoreboard
		scores := NewScoreboard()

		// When: X wins twice and O once
		scores = RecordWin(scores, entity.SymbolA)
		scores = RecordWin(scores, entity.SymbolA)
		scores = RecordWin(scores, entity.SymbolB)

		// Then: counters are 2 and 1
		assert.Equal(t, 2, scores.Of(entity.SymbolA).Wins)
		assert.Equal(t, 1, scores.Of(entity.SymbolB).Wins)
	})

	t.Run("RecordWin does not modify its argument", func(t *testing.T) {
		scores := NewScoreboard()

		_ = RecordWin(scores, entity.SymbolB)

		assert.Equal(t, NewScoreboard(), scores)
	})

	t.Run("FormatScore", func(t *testing.T) {
		scores := RecordWin(NewScoreboard(), entity.SymbolB)

		assert.Equal(t, "Score: X - 0 | O - 1", FormatScore(scores))
	})
}
