package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"chessbot/bots"
	"chessbot/position"
	"chessbot/testutil"
)

func TestRunBestMove(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, options{fen: "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", depth: 2, workers: 1, seed: 1}, zerolog.Nop())
	testutil.AssertNoError(t, err)

	if !strings.HasPrefix(out.String(), "bestmove a1a8\n") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestRunNoLegalMoves(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, options{fen: "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", depth: 3, seed: 1}, zerolog.Nop())
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, out.String(), "no legal moves (draw)\n")
}

func TestRunRejectsInvalidFEN(t *testing.T) {
	err := run(&bytes.Buffer{}, options{fen: "8/8/8/8/8/8/8/8 w - - 0 1", depth: 2}, zerolog.Nop())
	if !errors.Is(err, position.ErrInvalidFEN) {
		t.Fatalf("run error = %v, want ErrInvalidFEN", err)
	}
}

func TestRunColor(t *testing.T) {
	err := run(&bytes.Buffer{}, options{color: "black", depth: 2}, zerolog.Nop())
	if !errors.Is(err, bots.ErrNotSideToMove) {
		t.Fatalf("run error = %v, want ErrNotSideToMove", err)
	}

	err = run(&bytes.Buffer{}, options{color: "purple", depth: 2}, zerolog.Nop())
	if !errors.Is(err, bots.ErrInvalidConfig) {
		t.Fatalf("run error = %v, want ErrInvalidConfig", err)
	}

	var out bytes.Buffer
	err = run(&out, options{color: "w", depth: 2, seed: 1}, zerolog.Nop())
	testutil.AssertNoError(t, err)
	if !strings.HasPrefix(out.String(), "bestmove ") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestStartPositionPlaysMoves(t *testing.T) {
	fen, err := startPosition("", []string{"e2e4", "e7e5", "g1f3"})
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, fen, "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2")

	_, err = startPosition("", []string{"e2e5"})
	if !errors.Is(err, position.ErrIllegalMove) {
		t.Fatalf("startPosition error = %v, want ErrIllegalMove", err)
	}
}

func TestRunSelfPlay(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, options{depth: 2, seed: 3, selfPlay: true, maxPlies: 6, workers: 1}, zerolog.Nop())
	testutil.AssertNoError(t, err)

	if !strings.Contains(out.String(), "[MatchID ") {
		t.Errorf("PGN has no MatchID tag:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "result *") {
		t.Errorf("expected an unfinished game after 6 plies:\n%s", out.String())
	}
}
