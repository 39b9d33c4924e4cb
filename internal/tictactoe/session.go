package tictactoe

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
)

// SnapshotListener - receives a snapshot after every completed transition.
type SnapshotListener func(snapshot entity.Snapshot)

// GameSession - composes board, turn and score into the round lifecycle.
// It is the only thing a presentation layer talks to.
type GameSession struct {
	logger *slog.Logger

	id        string
	round     entity.Round
	turn      TurnState
	players   entity.Scoreboard
	updatedAt time.Time

	inFlight  bool
	listeners []SnapshotListener
}

func NewGameSession(logger *slog.Logger, id string) *GameSession {
	session := &GameSession{
		logger:  logger.With("component", "game_session", "session_id", id),
		id:      id,
		players: NewScoreboard(),
	}
	session.startRound()

	return session
}

// RestoreGameSession - rebuilds a session from its stored state.
func RestoreGameSession(logger *slog.Logger, state *entity.SessionState) *GameSession {
	session := &GameSession{
		logger:    logger.With("component", "game_session", "session_id", state.ID),
		id:        state.ID,
		round:     state.Round,
		turn:      TurnState{active: state.Round.Turn},
		players:   state.Players,
		updatedAt: state.UpdatedAt,
	}

	if session.round.Status == "" {
		session.round.Status = entity.StatusInProgress
	}

	session.players[0].Symbol = entity.SymbolA
	session.players[1].Symbol = entity.SymbolB

	return session
}

func (that *GameSession) ID() string {
	return that.id
}

// Subscribe - registers a listener for snapshots emitted after each event.
func (that *GameSession) Subscribe(listener SnapshotListener) {
	that.listeners = append(that.listeners, listener)
}

// SelectCell - tries to put the current symbol on the cell.
// A rejected move leaves the session untouched, the error only says why.
func (that *GameSession) SelectCell(cell int) (entity.Snapshot, error) {
	return that.dispatch("select_cell", func() error {
		return that.selectCell(cell)
	})
}

// Restart - same as NewRound.
func (that *GameSession) Restart() (entity.Snapshot, error) {
	return that.NewRound()
}

// NewRound - clears the board and gives the move to X. Scores are kept.
func (that *GameSession) NewRound() (entity.Snapshot, error) {
	return that.dispatch("new_round", func() error {
		that.startRound()
		return nil
	})
}

// NewMatch - starts a new round and resets both scores.
func (that *GameSession) NewMatch() (entity.Snapshot, error) {
	return that.dispatch("new_match", func() error {
		that.players = NewScoreboard()
		that.startRound()
		return nil
	})
}

func (that *GameSession) dispatch(event string, transition func() error) (entity.Snapshot, error) {
	log := that.logger.With("method", "dispatch", "event", event)

	if that.inFlight {
		log.Warn("event rejected, transition in flight")
		return that.Snapshot(), apperror.ErrTransitionInFlight
	}

	that.inFlight = true
	defer func() { that.inFlight = false }()

	if err := transition(); err != nil {
		log.Debug("event ignored", "error", err)
		return that.Snapshot(), err
	}

	that.updatedAt = time.Now().UTC()

	snapshot := that.Snapshot()
	for _, listener := range that.listeners {
		listener(snapshot)
	}

	return snapshot, nil
}

func (that *GameSession) selectCell(cell int) error {
	if that.round.IsOver() {
		return apperror.ErrRoundOver
	}

	symbol := that.turn.Current()

	grid, err := ApplyMove(that.round.Grid, cell, symbol)
	if err != nil {
		return err
	}

	that.round.Grid = grid

	switch {
	case CheckWin(grid, symbol):
		that.round.Status = entity.StatusWin
		that.round.Winner = symbol
		that.players = RecordWin(that.players, symbol)
		that.logger.Info("round won", "winner", symbol.String())
	case IsFull(grid):
		that.round.Status = entity.StatusDraw
		that.logger.Info("round drawn")
	default:
		that.turn = that.turn.Advance()
	}

	that.round.Turn = that.turn.Current()

	return nil
}

func (that *GameSession) startRound() {
	that.turn = NewTurnState()
	that.round = entity.Round{
		Grid:   ResetGrid(),
		Turn:   that.turn.Current(),
		Status: entity.StatusInProgress,
	}
}

// Snapshot - returns an immutable copy of what is on screen.
func (that *GameSession) Snapshot() entity.Snapshot {
	return entity.Snapshot{
		SessionID: that.id,
		Board:     that.round.Grid,
		Turn:      that.turn.Current(),
		Status:    that.round.Status,
		Winner:    that.round.Winner,
		Message:   statusMessage(that.round, that.turn.Current()),
		Score:     FormatScore(that.players),
		Scores:    that.players,
		Frozen:    that.round.IsOver(),
	}
}

// State - the session in its storable form.
func (that *GameSession) State() *entity.SessionState {
	round := that.round
	round.Turn = that.turn.Current()

	return &entity.SessionState{
		ID:        that.id,
		Round:     round,
		Players:   that.players,
		UpdatedAt: that.updatedAt,
	}
}

func statusMessage(round entity.Round, turn entity.Symbol) string {
	switch round.Status {
	case entity.StatusWin:
		return fmt.Sprintf("Player %s wins!", round.Winner)
	case entity.StatusDraw:
		return "It's a draw!"
	default:
		return fmt.Sprintf("Player %s's turn", turn)
	}
}
