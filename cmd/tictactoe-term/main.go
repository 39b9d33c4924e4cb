package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rocketscienceinc/tictactoe-session/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-session/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
)

// main - hot-seat game in the terminal, two players share the keyboard.
func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	term := presenter.NewTerminal(os.Stdout)

	session := tictactoe.NewGameSession(logger, pkg.GenerateNewSessionID())
	session.Subscribe(term.Render)

	if err := term.Play(os.Stdin, session); err != nil {
		fmt.Fprintf(os.Stderr, "game aborted: %v\n", err)
		os.Exit(1)
	}
}
