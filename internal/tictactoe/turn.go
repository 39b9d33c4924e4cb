package tictactoe

import "github.com/rocketscienceinc/tictactoe-session/internal/entity"

// TurnState - which of the two symbols moves next.
type TurnState struct {
	active entity.Symbol
}

// NewTurnState - X always opens a round.
func NewTurnState() TurnState {
	return TurnState{active: entity.SymbolA}
}

func (that TurnState) Current() entity.Symbol {
	if that.active == 0 {
		return entity.SymbolA
	}
	return that.active
}

// Advance - hands the move to the other symbol.
func (that TurnState) Advance() TurnState {
	return TurnState{active: that.Current().Other()}
}
