package position

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidFEN indicates a FEN string that could not be decoded into a playable position.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrIllegalMove indicates a move that is not in the position's legal move list.
	ErrIllegalMove = errors.New("illegal move")
)

// MoveError carries the offending move and the position it was applied to.
type MoveError struct {
	Err  error
	Move Move
	FEN  string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%v: %s in %q", e.Err, e.Move, e.FEN)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}
