package position

import (
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Start returns the standard initial position.
func Start() *Board {
	return newBoard(dragontoothmg.ParseFen(StartFEN))
}

// FromFEN decodes fen into a Board. The string is validated by notnil/chess
// before it reaches the move generator, which does not report errors.
// Castling rights without the king and rook on their home squares are
// dropped.
func FromFEN(fen string) (*Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	pos := chess.NewGame(opt).Position()
	if err := checkKings(pos.Board()); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFEN, fen, err)
	}
	return newBoard(dragontoothmg.ParseFen(withCastlingRights(pos))), nil
}

// MustFEN is FromFEN for literals known to be valid.
func MustFEN(fen string) *Board {
	b, err := FromFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

func checkKings(board *chess.Board) error {
	white, black := 0, 0
	for sq := chess.A1; sq <= chess.H8; sq++ {
		switch board.Piece(sq) {
		case chess.WhiteKing:
			white++
		case chess.BlackKing:
			black++
		}
	}
	if white != 1 || black != 1 {
		return fmt.Errorf("want one king per side, have %d white and %d black", white, black)
	}
	return nil
}

var castlingHomes = []struct {
	right      byte
	king, rook chess.Square
	kingPiece  chess.Piece
	rookPiece  chess.Piece
}{
	{'K', chess.E1, chess.H1, chess.WhiteKing, chess.WhiteRook},
	{'Q', chess.E1, chess.A1, chess.WhiteKing, chess.WhiteRook},
	{'k', chess.E8, chess.H8, chess.BlackKing, chess.BlackRook},
	{'q', chess.E8, chess.A8, chess.BlackKing, chess.BlackRook},
}

// withCastlingRights returns the FEN of pos keeping only the castling
// rights its pieces can still use.
func withCastlingRights(pos *chess.Position) string {
	fields := strings.Fields(pos.String())
	if len(fields) < 3 {
		return pos.String()
	}
	board := pos.Board()

	var rights []byte
	for _, h := range castlingHomes {
		if strings.IndexByte(fields[2], h.right) >= 0 &&
			board.Piece(h.king) == h.kingPiece && board.Piece(h.rook) == h.rookPiece {
			rights = append(rights, h.right)
		}
	}
	fields[2] = "-"
	if len(rights) > 0 {
		fields[2] = string(rights)
	}
	return strings.Join(fields, " ")
}
