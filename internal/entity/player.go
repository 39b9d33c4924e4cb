package entity

type Player struct {
	Symbol Symbol `json:"symbol"`
	Wins   int    `json:"wins"`
}

// Scoreboard - both players of a session; index 0 plays X, index 1 plays O.
type Scoreboard [2]Player

// Of - returns the player holding the given symbol.
func (that Scoreboard) Of(symbol Symbol) Player {
	if symbol == SymbolB {
		return that[1]
	}
	return that[0]
}
