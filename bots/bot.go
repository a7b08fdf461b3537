// Package bots implements the move-choosing players: a minimax engine with
// alpha-beta pruning and two baseline bots.
package bots

import "chessbot/position"

// ChessBot is the interface for all bots. BestMove returns nil when the
// side to move has no legal moves.
type ChessBot interface {
	BestMove(pos position.Position) (*position.Move, error)
	Name() string
}

// PositionEvaluator scores a static position from a fixed side's point of view.
type PositionEvaluator interface {
	Evaluate(pos position.Position) int
}
