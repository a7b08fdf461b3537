package bots

import (
	"cmp"

	"golang.org/x/exp/slices"

	"chessbot/position"
)

// CheckBonus is added to moves that leave the orderer's opponent in check.
const CheckBonus = 100

type scoredMove struct {
	move  position.Move
	score int
}

// MoveOrderer ranks moves so that alpha-beta sees likely refutations first.
// It never changes a minimax value, only the order siblings are visited in
// and, through that, which of several equally scored root moves is kept.
//
// Color is the side the search plays for. Only that side's checking moves
// earn CheckBonus, so replies of the opponent are ranked on material alone.
type MoveOrderer struct {
	Color position.Color
}

// Order returns moves sorted by descending priority. Equal priorities keep
// their input order. The input slice is left untouched.
func (o MoveOrderer) Order(pos position.Position, moves []position.Move) []position.Move {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: o.Priority(pos, m)}
	}
	slices.SortStableFunc(scored, func(a, b scoredMove) int {
		return cmp.Compare(b.score, a.score)
	})

	ordered := make([]position.Move, len(scored))
	for i, sm := range scored {
		ordered[i] = sm.move
	}
	return ordered
}

// Priority scores m: captured value plus an MVV-LVA refinement, promotion
// value, and CheckBonus when the move leaves o.Color's opponent in check.
// m must be legal in pos.
func (o MoveOrderer) Priority(pos position.Position, m position.Move) int {
	var score int

	if victim, ok := pos.PieceAt(m.To); ok {
		score += victim.Type.Value()
		if attacker, ok := pos.PieceAt(m.From); ok {
			score += victim.Type.Value() - attacker.Type.Value()
		}
	}

	if m.Promotion != position.NoPieceType {
		score += m.Promotion.Value()
	}

	undo := pos.Apply(m)
	if pos.InCheck(o.Color.Other()) {
		score += CheckBonus
	}
	undo()

	return score
}
