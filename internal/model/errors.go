package model

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedMove means the move text could not be read as two squares.
	ErrMalformedMove = errors.New("malformed move")

	// ErrIllegalMove matches every *RuleError.
	ErrIllegalMove = errors.New("illegal move")

	ErrOutOfBounds      = errors.New("coordinates out of bounds")
	ErrWrongColor       = errors.New("piece does not belong to the player")
	ErrSameSquare       = errors.New("origin and destination are the same square")
	ErrFriendlyOccupied = errors.New("destination occupied by own piece")
	ErrPathBlocked      = errors.New("path is blocked")
	ErrInvalidPattern   = errors.New("piece cannot move that way")

	ErrNotYourTurn   = errors.New("not your turn")
	ErrNotInGame     = errors.New("player not in game")
	ErrGameFull      = errors.New("game is full")
	ErrGameOver      = errors.New("game is over")
	ErrGameNotOver   = errors.New("game is still in progress")
	ErrPlayerInQueue = errors.New("player already in queue")
)

// RuleError explains why the legality checker rejected a move. Reason is the
// message shown to the player; Err is one of the sentinel errors above.
type RuleError struct {
	Move   Move
	Piece  Piece
	Reason string
	Err    error
}

func (e *RuleError) Error() string {
	return e.Reason
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

func (e *RuleError) Is(target error) bool {
	return target == ErrIllegalMove
}

func reject(move Move, piece Piece, err error, format string, args ...interface{}) *RuleError {
	return &RuleError{
		Move:   move,
		Piece:  piece,
		Reason: fmt.Sprintf(format, args...),
		Err:    err,
	}
}
