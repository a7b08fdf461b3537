package bots

import "chessbot/position"

// fakePosition answers every query from fixed tables so evaluator and
// orderer arithmetic can be checked without a move generator.
type fakePosition struct {
	pieces     map[position.Square]position.Piece
	side       position.Color
	moves      []position.Move
	moveCounts map[position.Color]int
	check      map[position.Color]bool
	// givesCheck lists moves after which the side that moved has the
	// opponent in check.
	givesCheck map[position.Move]bool
	over       bool
	result     position.Result

	applied int
}

var _ position.Position = (*fakePosition)(nil)

func (f *fakePosition) PieceAt(sq position.Square) (position.Piece, bool) {
	p, ok := f.pieces[sq]
	return p, ok
}

func (f *fakePosition) SideToMove() position.Color { return f.side }

func (f *fakePosition) LegalMoves(c position.Color) []position.Move {
	if c != f.side {
		return nil
	}
	return append([]position.Move(nil), f.moves...)
}

func (f *fakePosition) LegalMoveCount(c position.Color) int {
	if n, ok := f.moveCounts[c]; ok {
		return n
	}
	if c == f.side {
		return len(f.moves)
	}
	return 0
}

func (f *fakePosition) InCheck(c position.Color) bool { return f.check[c] }

func (f *fakePosition) GameOver() (bool, position.Result) { return f.over, f.result }

func (f *fakePosition) Apply(m position.Move) func() {
	f.applied++
	mover := f.side
	prevCheck := f.check
	f.check = map[position.Color]bool{mover.Other(): f.givesCheck[m]}
	f.side = mover.Other()
	return func() {
		f.side = mover
		f.check = prevCheck
	}
}

func (f *fakePosition) Clone() position.Position {
	c := *f
	return &c
}

func (f *fakePosition) FEN() string { return "fake" }

func sq(name string) position.Square {
	s, err := position.ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return s
}

func mv(s string) position.Move {
	m, err := position.ParseMove(s)
	if err != nil {
		panic(err)
	}
	return m
}

func moveStrings(moves []position.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}
