package bots

import "chessbot/position"

const (
	MobilityWeight   = 10
	KingSafetyWeight = 50
)

// Evaluator scores a position from one color's point of view. It holds no
// state besides that color, so equal positions always get equal scores.
type Evaluator struct {
	color position.Color
}

func NewEvaluator(color position.Color) *Evaluator {
	return &Evaluator{color: color}
}

func (e *Evaluator) Evaluate(pos position.Position) int {
	return e.materialScore(pos) + e.mobilityScore(pos) + e.kingSafety(pos)
}

func (e *Evaluator) materialScore(pos position.Position) int {
	var score int
	for sq := position.Square(0); sq < 64; sq++ {
		piece, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		value := PieceSquareValue(piece, sq)
		if piece.Color == e.color {
			score += value
		} else {
			score -= value
		}
	}
	return score
}

func (e *Evaluator) mobilityScore(pos position.Position) int {
	own := pos.LegalMoveCount(e.color)
	opponent := pos.LegalMoveCount(e.color.Other())
	return MobilityWeight * (own - opponent)
}

func (e *Evaluator) kingSafety(pos position.Position) int {
	var score int
	if pos.InCheck(e.color) {
		score -= KingSafetyWeight
	}
	if pos.InCheck(e.color.Other()) {
		score += KingSafetyWeight
	}
	return score
}
