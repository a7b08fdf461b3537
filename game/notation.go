package game

import (
	"fmt"

	"github.com/notnil/chess"

	"chessbot/position"
)

// FromChessMove converts a notnil/chess move into the engine's move type.
// Both libraries number squares from a1 = 0.
func FromChessMove(m *chess.Move) position.Move {
	return position.Move{
		From:      position.Square(m.S1()),
		To:        position.Square(m.S2()),
		Promotion: promotionFromChess(m.Promo()),
	}
}

// ToChessMove finds the valid move in pos that matches m.
func ToChessMove(pos *chess.Position, m position.Move) (*chess.Move, error) {
	for _, cm := range pos.ValidMoves() {
		if FromChessMove(cm) == m {
			return cm, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", position.ErrIllegalMove, m)
}

// ParseMove reads long algebraic text such as "e2e4" or "e7e8q" and
// resolves it against the legal moves of pos.
func ParseMove(pos *chess.Position, s string) (*chess.Move, error) {
	decoded, err := chess.UCINotation{}.Decode(pos, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", position.ErrIllegalMove, s, err)
	}
	return ToChessMove(pos, FromChessMove(decoded))
}

func promotionFromChess(p chess.PieceType) position.PieceType {
	switch p {
	case chess.Knight:
		return position.Knight
	case chess.Bishop:
		return position.Bishop
	case chess.Rook:
		return position.Rook
	case chess.Queen:
		return position.Queen
	}
	return position.NoPieceType
}
