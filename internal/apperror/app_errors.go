package apperror

import "errors"

var (
	ErrCellOccupied       = errors.New("cell is already occupied")
	ErrIndexOutOfRange    = errors.New("cell index out of range")
	ErrRoundOver          = errors.New("round is already over")
	ErrTransitionInFlight = errors.New("another event is still being processed")
	ErrSessionNotFound    = errors.New("session not found")
)
