package presenter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

const (
	colorX     = "#E06C75"
	colorO     = "#61AFEF"
	colorEmpty = "#5C6370"

	rowSeparator = "---+---+---"
)

type gameSession interface {
	SelectCell(cell int) (entity.Snapshot, error)
	NewRound() (entity.Snapshot, error)
	NewMatch() (entity.Snapshot, error)
	Snapshot() entity.Snapshot
}

// Terminal - draws snapshots on a terminal and reads moves from the keyboard.
type Terminal struct {
	out *termenv.Output
}

func NewTerminal(w io.Writer, opts ...termenv.OutputOption) *Terminal {
	return &Terminal{out: termenv.NewOutput(w, opts...)}
}

// Render - prints the board, the status line and the score.
func (that *Terminal) Render(snapshot entity.Snapshot) {
	var b strings.Builder

	for row := range 3 {
		if row > 0 {
			b.WriteString(rowSeparator + "\n")
		}

		cells := make([]string, 3)
		for col := range 3 {
			index := row*3 + col
			cells[col] = " " + that.cell(index, snapshot.Board[index]) + " "
		}

		b.WriteString(strings.Join(cells, "|") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(that.out.String(snapshot.Message).Bold().String() + "\n")
	b.WriteString(snapshot.Score + "\n")

	_, _ = io.WriteString(that.out, b.String())
}

func (that *Terminal) cell(index int, cell entity.Cell) string {
	switch entity.Symbol(cell) {
	case entity.SymbolA:
		return that.out.String(cell.String()).Foreground(that.out.Color(colorX)).Bold().String()
	case entity.SymbolB:
		return that.out.String(cell.String()).Foreground(that.out.Color(colorO)).Bold().String()
	default:
		return that.out.String(strconv.Itoa(index)).Foreground(that.out.Color(colorEmpty)).Faint().String()
	}
}

// Play - reads commands line by line until q or end of input:
// 0-8 selects a cell, r starts a new round, m starts a new match.
func (that *Terminal) Play(in io.Reader, session gameSession) error {
	that.Render(session.Snapshot())
	that.prompt()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		command := strings.TrimSpace(scanner.Text())

		switch command {
		case "q":
			return nil
		case "r":
			_, _ = session.NewRound()
		case "m":
			_, _ = session.NewMatch()
		case "":
		default:
			cell, err := strconv.Atoi(command)
			if err != nil {
				that.help()
				break
			}

			// occupied and out of range cells are silently ignored
			_, _ = session.SelectCell(cell)
		}

		that.prompt()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func (that *Terminal) prompt() {
	_, _ = io.WriteString(that.out, "> ")
}

func (that *Terminal) help() {
	_, _ = io.WriteString(that.out, "0-8 to play a cell, r new round, m new match, q quit\n")
}
