package bots

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSideToMove is returned when a bot is asked to move for the side that is not to move.
	ErrNotSideToMove = errors.New("bot color is not the side to move")

	// ErrUnknownResult indicates a terminal signal the search cannot score.
	ErrUnknownResult = errors.New("unrecognized terminal result")

	// ErrInvalidConfig indicates configuration values that cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// InvariantError reports a broken internal-consistency guarantee. It is
// raised with panic, never returned: the search cannot continue past it.
type InvariantError struct {
	Op     string
	Err    error
	Detail string
}

func (e *InvariantError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
}

func (e *InvariantError) Unwrap() error {
	return e.Err
}
