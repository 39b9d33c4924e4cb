package entity

import (
	"errors"
	"fmt"
	"time"
)

const (
	MarkX = "X"
	MarkO = "O"

	EmptyCell = ""
)

// BoardSize - number of cells on the board.
const BoardSize = 9

var ErrUnknownMark = errors.New("unknown mark")

// Symbol - one of the two marks a player places.
type Symbol uint8

const (
	SymbolA Symbol = iota + 1
	SymbolB
)

func (that Symbol) String() string {
	switch that {
	case SymbolA:
		return MarkX
	case SymbolB:
		return MarkO
	default:
		return EmptyCell
	}
}

// Other - returns the opposing symbol.
func (that Symbol) Other() Symbol {
	if that == SymbolA {
		return SymbolB
	}
	return SymbolA
}

// Cell - returns the board cell occupied by this symbol.
func (that Symbol) Cell() Cell {
	return Cell(that)
}

func (that Symbol) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Symbol) UnmarshalText(text []byte) error {
	switch string(text) {
	case MarkX:
		*that = SymbolA
	case MarkO:
		*that = SymbolB
	case EmptyCell:
		*that = 0
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMark, text)
	}

	return nil
}

// Cell - a single board position: empty or holding a symbol.
type Cell uint8

const Empty Cell = 0

func (that Cell) IsEmpty() bool {
	return that == Empty
}

func (that Cell) String() string {
	return Symbol(that).String()
}

func (that Cell) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Cell) UnmarshalText(text []byte) error {
	var symbol Symbol
	if err := symbol.UnmarshalText(text); err != nil {
		return err
	}

	*that = Cell(symbol)

	return nil
}

// Grid - the nine cells, indexed 0-8 row-major.
type Grid [BoardSize]Cell

type RoundStatus string

const (
	StatusInProgress RoundStatus = "in_progress"
	StatusWin        RoundStatus = "win"
	StatusDraw       RoundStatus = "draw"
)

// Round - one playthrough from an empty board to a win or a draw.
type Round struct {
	Grid   Grid        `json:"board"`
	Turn   Symbol      `json:"turn"`
	Status RoundStatus `json:"status"`
	Winner Symbol      `json:"winner,omitempty"`
}

func (that *Round) IsOver() bool {
	return that.Status == StatusWin || that.Status == StatusDraw
}

// SessionState - everything a session owns, in the form the storage layer keeps it.
type SessionState struct {
	ID        string     `json:"id"`
	Round     Round      `json:"round"`
	Players   Scoreboard `json:"players"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Snapshot - what a presentation layer needs to draw the session.
type Snapshot struct {
	SessionID string      `json:"session_id,omitempty"`
	Board     Grid        `json:"board"`
	Turn      Symbol      `json:"turn"`
	Status    RoundStatus `json:"status"`
	Winner    Symbol      `json:"winner,omitempty"`
	Message   string      `json:"message"`
	Score     string      `json:"score"`
	Scores    Scoreboard  `json:"scores"`
	Frozen    bool        `json:"frozen"`
}
