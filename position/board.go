package position

import (
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// fiftyMovePlies is the half-move clock value at which the game is drawn.
const fiftyMovePlies = 100

// nodeCache holds queries answered for the current node. It is saved on
// Apply and restored by the matching undo, so it never outlives the node.
type nodeCache struct {
	legal     []dragontoothmg.Move
	generated bool
	flipped   *dragontoothmg.Board
}

// Board is a Position backed by dragontoothmg bitboards. Moves are applied
// in place; a Board must not be shared between goroutines, use Clone.
type Board struct {
	b     dragontoothmg.Board
	cache nodeCache
	saved []nodeCache
}

var _ Position = (*Board)(nil)

func newBoard(b dragontoothmg.Board) *Board {
	return &Board{b: b}
}

func (p *Board) SideToMove() Color {
	if p.b.Wtomove {
		return White
	}
	return Black
}

func (p *Board) PieceAt(sq Square) (Piece, bool) {
	if sq < 0 || sq > 63 {
		return Piece{}, false
	}
	mask := uint64(1) << uint(sq)
	if p.b.White.All&mask != 0 {
		return Piece{Type: pieceTypeAt(&p.b.White, mask), Color: White}, true
	}
	if p.b.Black.All&mask != 0 {
		return Piece{Type: pieceTypeAt(&p.b.Black, mask), Color: Black}, true
	}
	return Piece{}, false
}

func pieceTypeAt(bb *dragontoothmg.Bitboards, mask uint64) PieceType {
	switch {
	case bb.Pawns&mask != 0:
		return Pawn
	case bb.Knights&mask != 0:
		return Knight
	case bb.Bishops&mask != 0:
		return Bishop
	case bb.Rooks&mask != 0:
		return Rook
	case bb.Queens&mask != 0:
		return Queen
	case bb.Kings&mask != 0:
		return King
	}
	return NoPieceType
}

func (p *Board) LegalMoves(c Color) []Move {
	raw := p.rawMoves(c)
	moves := make([]Move, len(raw))
	for i, dm := range raw {
		moves[i] = fromDragon(dm)
	}
	return moves
}

func (p *Board) LegalMoveCount(c Color) int {
	return len(p.rawMoves(c))
}

func (p *Board) InCheck(c Color) bool {
	if c == p.SideToMove() {
		return p.b.OurKingInCheck()
	}
	return p.flipped().OurKingInCheck()
}

func (p *Board) GameOver() (bool, Result) {
	if len(p.legal()) == 0 {
		if !p.b.OurKingInCheck() {
			return true, Draw
		}
		if p.b.Wtomove {
			return true, BlackWins
		}
		return true, WhiteWins
	}
	if p.b.Halfmoveclock >= fiftyMovePlies {
		return true, Draw
	}
	return false, Ongoing
}

// Apply panics with a *MoveError if m is not legal here.
func (p *Board) Apply(m Move) func() {
	dm, ok := p.find(m)
	if !ok {
		panic(&MoveError{Err: ErrIllegalMove, Move: m, FEN: p.FEN()})
	}
	p.saved = append(p.saved, p.cache)
	p.cache = nodeCache{}
	unapply := p.b.Apply(dm)
	return func() {
		unapply()
		last := len(p.saved) - 1
		p.cache = p.saved[last]
		p.saved = p.saved[:last]
	}
}

func (p *Board) Clone() Position {
	return newBoard(p.b)
}

func (p *Board) FEN() string {
	return p.b.ToFen()
}

func (p *Board) String() string {
	return p.FEN()
}

func (p *Board) legal() []dragontoothmg.Move {
	if !p.cache.generated {
		p.cache.legal = p.b.GenerateLegalMoves()
		p.cache.generated = true
	}
	return p.cache.legal
}

func (p *Board) rawMoves(c Color) []dragontoothmg.Move {
	if c == p.SideToMove() {
		return p.legal()
	}
	return p.flipped().GenerateLegalMoves()
}

// flipped returns a private copy of the position with the other side to
// move and no en-passant target, for as-if queries about the side not to move.
func (p *Board) flipped() *dragontoothmg.Board {
	if p.cache.flipped != nil {
		return p.cache.flipped
	}
	fields := strings.Fields(p.b.ToFen())
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[3] = "-"
	fb := dragontoothmg.ParseFen(strings.Join(fields, " "))
	p.cache.flipped = &fb
	return p.cache.flipped
}

func (p *Board) find(m Move) (dragontoothmg.Move, bool) {
	for _, dm := range p.legal() {
		if fromDragon(dm) == m {
			return dm, true
		}
	}
	return 0, false
}

func fromDragon(dm dragontoothmg.Move) Move {
	return Move{
		From:      Square(dm.From()),
		To:        Square(dm.To()),
		Promotion: promotionFromDragon(dm.Promote()),
	}
}

func promotionFromDragon(p dragontoothmg.Piece) PieceType {
	switch p {
	case dragontoothmg.Knight:
		return Knight
	case dragontoothmg.Bishop:
		return Bishop
	case dragontoothmg.Rook:
		return Rook
	case dragontoothmg.Queen:
		return Queen
	}
	return NoPieceType
}
