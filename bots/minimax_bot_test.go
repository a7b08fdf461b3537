package bots

import (
	"errors"
	"math/rand"
	"sync/atomic"
	"testing"

	"chessbot/position"
	"chessbot/testutil"
)

const (
	mateInOneFEN  = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"
	freeQueenFEN  = "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1"
	foolsMateFEN  = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	stalemateFEN  = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	middlegameFEN = "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4"
)

func seededBot(color position.Color, depth int, opts ...Option) *MinimaxBot {
	opts = append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	return NewMinimaxBot(color, depth, opts...)
}

func TestNewMinimaxBotClampsDepth(t *testing.T) {
	tests := []struct {
		depth int
		want  int
	}{
		{-3, MinDepth},
		{0, MinDepth},
		{1, 1},
		{4, 4},
		{6, 6},
		{10, MaxDepth},
	}

	for _, tt := range tests {
		b := NewMinimaxBot(position.White, tt.depth)
		testutil.AssertEqualf(t, b.Depth(), tt.want, "depth %d", tt.depth)
	}
}

func TestBestMoveOpening(t *testing.T) {
	pos := position.Start()
	before := pos.FEN()
	legal := map[position.Move]bool{}
	for _, m := range pos.LegalMoves(position.White) {
		legal[m] = true
	}

	for depth := MinDepth; depth <= 3; depth++ {
		b := seededBot(position.White, depth)
		m, err := b.BestMove(pos)
		testutil.AssertNoError(t, err)
		if m == nil || !legal[*m] {
			t.Fatalf("depth %d: BestMove = %v, want one of the 20 opening moves", depth, m)
		}
		testutil.AssertEqualf(t, pos.FEN(), before, "caller's position changed at depth %d", depth)
	}
}

func TestBestMoveCapturesFreeQueen(t *testing.T) {
	for _, depth := range []int{2, 3} {
		b := seededBot(position.White, depth)
		m, err := b.BestMove(position.MustFEN(freeQueenFEN))
		testutil.AssertNoError(t, err)
		testutil.AssertEqualf(t, m.String(), "d1d5", "depth %d", depth)
	}
}

func TestBestMoveFindsMateInOne(t *testing.T) {
	for _, depth := range []int{2, 3, 4} {
		b := seededBot(position.White, depth)
		m, err := b.BestMove(position.MustFEN(mateInOneFEN))
		testutil.AssertNoError(t, err)
		testutil.AssertEqualf(t, m.String(), "a1a8", "depth %d", depth)
		testutil.AssertEqualf(t, b.Stats().BestScore, MateScore+depth-1, "score at depth %d", depth)
	}
}

func TestBestMoveWithoutLegalMoves(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		color position.Color
	}{
		{"checkmated", foolsMateFEN, position.White},
		{"stalemated", stalemateFEN, position.Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, depth := range []int{1, 3} {
				m, err := seededBot(tt.color, depth).BestMove(position.MustFEN(tt.fen))
				testutil.AssertNoError(t, err)
				if m != nil {
					t.Errorf("depth %d: BestMove = %v, want nil", depth, m)
				}
			}
		})
	}
}

func TestBestMoveRejectsWrongSide(t *testing.T) {
	b := seededBot(position.Black, 3)
	_, err := b.BestMove(position.Start())
	if !errors.Is(err, ErrNotSideToMove) {
		t.Fatalf("BestMove error = %v, want ErrNotSideToMove", err)
	}
}

func TestDepthOneIsUniformlyRandom(t *testing.T) {
	pos := position.Start()
	b := seededBot(position.White, 1)

	seen := map[string]int{}
	for i := 0; i < 2000; i++ {
		m, err := b.BestMove(pos)
		testutil.AssertNoError(t, err)
		seen[m.String()]++
	}

	testutil.AssertEqualf(t, len(seen), 20, "distinct moves chosen")
	testutil.AssertEqualf(t, b.Stats().Nodes, uint64(0), "depth 1 searched nodes")
}

func TestTerminalScore(t *testing.T) {
	white := seededBot(position.White, 3)
	black := seededBot(position.Black, 3)

	testutil.AssertEqual(t, white.terminalScore(position.Draw, 2), 0)
	testutil.AssertEqual(t, white.terminalScore(position.WhiteWins, 2), MateScore+2)
	testutil.AssertEqual(t, white.terminalScore(position.BlackWins, 2), -MateScore-2)
	testutil.AssertEqual(t, black.terminalScore(position.WhiteWins, 0), -MateScore)
	testutil.AssertEqual(t, black.terminalScore(position.BlackWins, 1), MateScore+1)
}

func TestStalemateLeafScoresZero(t *testing.T) {
	b := seededBot(position.White, 3)
	testutil.AssertEqual(t, b.minimax(position.MustFEN(stalemateFEN), 2, scoreNegInfinity, scoreInfinity, false), 0)
}

func TestUnknownResultPanics(t *testing.T) {
	child := &fakePosition{side: position.Black, over: true, result: position.Result(42)}
	b := seededBot(position.White, 2)

	recovered := testutil.AssertPanics(t, func() {
		b.minimax(child, 1, scoreNegInfinity, scoreInfinity, false)
	})
	err, ok := recovered.(error)
	if !ok || !errors.Is(err, ErrUnknownResult) {
		t.Fatalf("panic value = %v, want ErrUnknownResult", recovered)
	}
	var inv *InvariantError
	if !errors.As(err, &inv) {
		t.Fatalf("panic value %T is not an *InvariantError", recovered)
	}
}

func TestNodeCounterResets(t *testing.T) {
	b := seededBot(position.White, 3)
	pos := position.MustFEN(freeQueenFEN)

	_, err := b.BestMove(pos)
	testutil.AssertNoError(t, err)
	first := b.Stats().Nodes
	if first == 0 {
		t.Fatal("no nodes counted")
	}

	_, err = b.BestMove(pos)
	testutil.AssertNoError(t, err)
	testutil.AssertEqualf(t, b.Stats().Nodes, first, "second identical search")
}

// exhaustive is minimax without pruning; it counts every node it visits.
func exhaustive(b *MinimaxBot, pos position.Position, depth int, maximizing bool, nodes *uint64) int {
	*nodes++
	if over, result := pos.GameOver(); over {
		return b.terminalScore(result, depth)
	}
	if depth == 0 {
		return b.evaluator.Evaluate(pos)
	}
	moves := pos.LegalMoves(pos.SideToMove())
	if len(moves) == 0 {
		return 0
	}
	best := scoreInfinity
	if maximizing {
		best = scoreNegInfinity
	}
	for _, m := range moves {
		undo := pos.Apply(m)
		score := exhaustive(b, pos, depth-1, !maximizing, nodes)
		undo()
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

func TestPruningMatchesExhaustiveSearch(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		color position.Color
		depth int
	}{
		{"free queen", freeQueenFEN, position.White, 3},
		{"mate in one", mateInOneFEN, position.White, 3},
		{"middlegame", middlegameFEN, position.White, 2},
		{"middlegame black", "r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 4 4", position.Black, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := seededBot(tt.color, tt.depth)
			pos := position.MustFEN(tt.fen)

			var nodes uint64
			var want position.Move
			wantScore := scoreNegInfinity
			for _, m := range b.orderer.Order(pos, pos.LegalMoves(tt.color)) {
				undo := pos.Apply(m)
				score := exhaustive(b, pos, tt.depth-1, false, &nodes)
				undo()
				if score > wantScore {
					want, wantScore = m, score
				}
			}

			got, err := b.BestMove(pos)
			testutil.AssertNoError(t, err)
			testutil.AssertEqualf(t, *got, want, "move")
			testutil.AssertEqualf(t, b.Stats().BestScore, wantScore, "score")
			if b.Stats().Nodes > nodes {
				t.Errorf("pruned search visited %d nodes, exhaustive %d", b.Stats().Nodes, nodes)
			}
		})
	}
}

func TestParallelRootMatchesSequential(t *testing.T) {
	for _, fen := range []string{freeQueenFEN, mateInOneFEN, middlegameFEN, position.StartFEN} {
		seq := seededBot(position.White, 3)
		par := seededBot(position.White, 3, WithWorkers(4))

		want, err := seq.BestMove(position.MustFEN(fen))
		testutil.AssertNoError(t, err)
		got, err := par.BestMove(position.MustFEN(fen))
		testutil.AssertNoError(t, err)

		testutil.AssertEqualf(t, *got, *want, "move for %s", fen)
		testutil.AssertEqualf(t, par.Stats().BestScore, seq.Stats().BestScore, "score for %s", fen)
	}
}

func TestNameReportsDepth(t *testing.T) {
	testutil.AssertEqual(t, NewMinimaxBot(position.Black, 4).Name(), "Minimax Bot (depth 4)")
}

func TestBaselineBots(t *testing.T) {
	pos := position.Start()
	first := pos.LegalMoves(position.White)[0]

	m, err := NewNewbornBot().BestMove(pos)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, *m, first)

	r := NewRandomBot(rand.New(rand.NewSource(7)))
	m, err = r.BestMove(pos)
	testutil.AssertNoError(t, err)
	if m == nil {
		t.Fatal("RandomBot returned nil in the initial position")
	}

	none, err := r.BestMove(position.MustFEN(stalemateFEN))
	testutil.AssertNoError(t, err)
	if none != nil {
		t.Errorf("RandomBot in stalemate = %v, want nil", none)
	}
}

// countingEvaluator scores every position 0. It counts calls atomically
// so it can serve a parallel root search.
type countingEvaluator struct{ calls atomic.Int64 }

func (e *countingEvaluator) Evaluate(position.Position) int {
	e.calls.Add(1)
	return 0
}

func TestWithEvaluator(t *testing.T) {
	for _, workers := range []int{1, 4} {
		eval := &countingEvaluator{}
		b := seededBot(position.White, 2, WithEvaluator(eval), WithWorkers(workers))

		m, err := b.BestMove(position.Start())
		testutil.AssertNoError(t, err)

		// Every leaf scores 0, so the first move in search order is kept.
		first := b.orderer.Order(position.Start(), position.Start().LegalMoves(position.White))[0]
		testutil.AssertEqualf(t, *m, first, "workers %d", workers)
		testutil.AssertEqualf(t, b.Stats().BestScore, 0, "workers %d", workers)
		if eval.calls.Load() == 0 {
			t.Errorf("workers %d: custom evaluator was never called", workers)
		}
	}
}
