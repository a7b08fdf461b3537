package bots

import "chessbot/position"

// NewbornBot always plays the first legal move it is given.
type NewbornBot struct{}

func NewNewbornBot() *NewbornBot {
	return &NewbornBot{}
}

func (b *NewbornBot) BestMove(pos position.Position) (*position.Move, error) {
	moves := pos.LegalMoves(pos.SideToMove())
	if len(moves) > 0 {
		return &moves[0], nil
	}
	return nil, nil
}

func (b *NewbornBot) Name() string {
	return "Newborn"
}
