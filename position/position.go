// Package position defines the rules contract consumed by the search engine
// and a dragontoothmg-backed implementation of it.
package position

import "fmt"

// Result is the terminal verdict reported by GameOver.
type Result uint8

const (
	Ongoing Result = iota
	WhiteWins
	BlackWins
	Draw
)

func (r Result) String() string {
	switch r {
	case Ongoing:
		return "ongoing"
	case WhiteWins:
		return "white wins"
	case BlackWins:
		return "black wins"
	case Draw:
		return "draw"
	default:
		return fmt.Sprintf("Result(%d)", uint8(r))
	}
}

// Winner returns the winning color of a decisive result.
func (r Result) Winner() (Color, bool) {
	switch r {
	case WhiteWins:
		return White, true
	case BlackWins:
		return Black, true
	default:
		return White, false
	}
}

// Position is everything the search needs from a rules engine. Legality is
// entirely the implementation's responsibility; callers trust LegalMoves.
type Position interface {
	PieceAt(sq Square) (Piece, bool)
	SideToMove() Color

	// LegalMoves lists the legal moves for c. When c is not to move the
	// answer is computed as if it were, without touching shared state.
	LegalMoves(c Color) []Move
	LegalMoveCount(c Color) int
	InCheck(c Color) bool
	GameOver() (bool, Result)

	// Apply plays m in place and returns the closure restoring the previous
	// position. m must come from the most recent LegalMoves query.
	Apply(m Move) (undo func())

	Clone() Position
	FEN() string
}
