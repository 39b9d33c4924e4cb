package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-session/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, state *entity.SessionState) error
	GetByID(ctx context.Context, id string) (*entity.SessionState, error)
	DeleteByID(ctx context.Context, id string) error
}

type SessionManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo

	locks *sessionLocks
}

func NewSessionManager(logger *slog.Logger, sessionRepo sessionRepo) *SessionManager {
	return &SessionManager{
		logger:      logger.With("component", "session_manager"),
		sessionRepo: sessionRepo,
		locks:       newSessionLocks(),
	}
}

// Connect - returns the snapshot of an existing session or starts a new one.
// An unknown but well-formed id is kept, so a browser cookie survives an expired session.
func (that *SessionManager) Connect(ctx context.Context, id string) (entity.Snapshot, error) {
	log := that.logger.With("method", "Connect")

	if !pkg.IsValidSessionID(id) {
		id = pkg.GenerateNewSessionID()
	}

	unlock := that.locks.lock(id)
	defer unlock()

	state, err := that.sessionRepo.GetByID(ctx, id)
	if err == nil {
		return tictactoe.RestoreGameSession(that.logger, state).Snapshot(), nil
	}

	if !errors.Is(err, apperror.ErrSessionNotFound) {
		return entity.Snapshot{}, fmt.Errorf("failed to get session: %w", err)
	}

	session := tictactoe.NewGameSession(that.logger, id)
	if err = that.sessionRepo.CreateOrUpdate(ctx, session.State()); err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info("session created", "session_id", id)

	return session.Snapshot(), nil
}

func (that *SessionManager) GetSnapshot(ctx context.Context, id string) (entity.Snapshot, error) {
	state, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to get session: %w", err)
	}

	return tictactoe.RestoreGameSession(that.logger, state).Snapshot(), nil
}

// SelectCell - plays the current symbol on the cell. Rejected moves are not errors:
// the unchanged snapshot comes back.
func (that *SessionManager) SelectCell(ctx context.Context, id string, cell int) (entity.Snapshot, error) {
	return that.apply(ctx, id, func(session *tictactoe.GameSession) (entity.Snapshot, error) {
		return session.SelectCell(cell)
	})
}

// NewRound - clears the board, keeps the score.
func (that *SessionManager) NewRound(ctx context.Context, id string) (entity.Snapshot, error) {
	return that.apply(ctx, id, (*tictactoe.GameSession).NewRound)
}

// NewMatch - clears the board and the score.
func (that *SessionManager) NewMatch(ctx context.Context, id string) (entity.Snapshot, error) {
	return that.apply(ctx, id, (*tictactoe.GameSession).NewMatch)
}

func (that *SessionManager) EndSession(ctx context.Context, id string) error {
	unlock := that.locks.lock(id)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session ended", "session_id", id)

	return nil
}

func (that *SessionManager) apply(
	ctx context.Context,
	id string,
	event func(session *tictactoe.GameSession) (entity.Snapshot, error),
) (entity.Snapshot, error) {
	log := that.logger.With("method", "apply", "session_id", id)

	unlock := that.locks.lock(id)
	defer unlock()

	state, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to get session: %w", err)
	}

	session := tictactoe.RestoreGameSession(that.logger, state)

	snapshot, err := event(session)
	if err != nil {
		if isRejectedEvent(err) {
			log.Debug("event ignored", "error", err)
			return snapshot, nil
		}

		return entity.Snapshot{}, fmt.Errorf("failed to apply event: %w", err)
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session.State()); err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to update session: %w", err)
	}

	return snapshot, nil
}

func isRejectedEvent(err error) bool {
	return errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrIndexOutOfRange) ||
		errors.Is(err, apperror.ErrRoundOver) ||
		errors.Is(err, apperror.ErrTransitionInFlight)
}

// sessionLocks - one mutex per session id, dropped once nobody waits on it.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	sync.Mutex
	refs int
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sessionLock)}
}

func (that *sessionLocks) lock(id string) func() {
	that.mu.Lock()
	entry, ok := that.locks[id]
	if !ok {
		entry = &sessionLock{}
		that.locks[id] = entry
	}
	entry.refs++
	that.mu.Unlock()

	entry.Lock()

	return func() {
		entry.Unlock()

		that.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(that.locks, id)
		}
		that.mu.Unlock()
	}
}
