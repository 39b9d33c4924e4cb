package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

// WinCombos - rows, columns and diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// ApplyMove - places symbol on the cell and returns the updated grid. The given grid is not modified.
func ApplyMove(grid entity.Grid, cell int, symbol entity.Symbol) (entity.Grid, error) {
	if err := validateMove(grid, cell); err != nil {
		return grid, fmt.Errorf("invalid move: %w", err)
	}

	grid[cell] = symbol.Cell()

	return grid, nil
}

// validateMove - checks if the cell can be taken.
func validateMove(grid entity.Grid, cell int) error {
	if cell < 0 || cell >= len(grid) {
		return fmt.Errorf("%w: cell %d", apperror.ErrIndexOutOfRange, cell)
	}

	if !grid[cell].IsEmpty() {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

// CheckWin - reports whether symbol holds any of the winning lines.
func CheckWin(grid entity.Grid, symbol entity.Symbol) bool {
	mark := symbol.Cell()

	for _, combo := range WinCombos {
		if grid[combo[0]] == mark && grid[combo[1]] == mark && grid[combo[2]] == mark {
			return true
		}
	}

	return false
}

// IsFull - reports whether no empty cell is left.
func IsFull(grid entity.Grid) bool {
	for _, cell := range grid {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}

func ResetGrid() entity.Grid {
	return entity.Grid{}
}
