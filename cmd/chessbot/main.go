// chessbot prints the engine's best move for a position, or plays the
// engine against itself and prints the game as PGN.
package main

import (
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"chessbot/bots"
	"chessbot/game"
	"chessbot/position"
)

func main() {
	flag.Parse()

	log := newLogger(os.Stderr, *logLevelFlag)
	opts := options{
		fen:        *fenFlag,
		moves:      strings.Fields(*movesFlag),
		color:      *colorFlag,
		depth:      *depthFlag,
		workers:    *workersFlag,
		seed:       *seedFlag,
		selfPlay:   *selfPlayFlag,
		whiteDepth: *whiteDepthFlag,
		blackDepth: *blackDepthFlag,
		maxPlies:   *maxPliesFlag,
	}

	if err := run(os.Stdout, opts, log); err != nil {
		log.Error().Err(err).Msg("chessbot failed")
		os.Exit(1)
	}
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}

func run(w io.Writer, opts options, log zerolog.Logger) error {
	start, err := startPosition(opts.fen, opts.moves)
	if err != nil {
		return err
	}

	if opts.selfPlay {
		return selfPlay(w, start, opts, log)
	}

	board, err := position.FromFEN(start)
	if err != nil {
		return err
	}
	color := board.SideToMove()
	if opts.color != "" {
		if color, err = bots.ParseColor(opts.color); err != nil {
			return err
		}
	}
	bot := bots.New(bots.Config{
		Color:   color,
		Depth:   opts.depth,
		Workers: opts.workers,
	}, bots.WithLogger(log), bots.WithRand(newRand(opts.seed)))

	move, err := bot.BestMove(board)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if move == nil {
		_, result := board.GameOver()
		fmt.Fprintf(w, "no legal moves (%s)\n", result)
		return nil
	}

	stats := bot.Stats()
	fmt.Fprintf(w, "bestmove %s\n", move)
	fmt.Fprintf(w, "depth %d nodes %d score %d time %s\n", bot.Depth(), stats.Nodes, stats.BestScore, stats.Elapsed.Round(time.Millisecond))
	return nil
}

// startPosition plays moves from fen (or the initial position) through the
// notnil/chess referee and returns the resulting FEN.
func startPosition(fen string, moves []string) (string, error) {
	if fen == "" {
		fen = position.StartFEN
	}
	if _, err := position.FromFEN(fen); err != nil {
		return "", err
	}
	if len(moves) == 0 {
		return fen, nil
	}

	opt, err := chess.FEN(fen)
	if err != nil {
		return "", fmt.Errorf("%w: %v", position.ErrInvalidFEN, err)
	}
	g := chess.NewGame(opt)
	for _, s := range moves {
		m, err := game.ParseMove(g.Position(), s)
		if err != nil {
			return "", err
		}
		if err := g.Move(m); err != nil {
			return "", fmt.Errorf("play %s: %w", s, err)
		}
	}
	return g.Position().String(), nil
}

func selfPlay(w io.Writer, fen string, opts options, log zerolog.Logger) error {
	whiteDepth, blackDepth := opts.whiteDepth, opts.blackDepth
	if whiteDepth == 0 {
		whiteDepth = opts.depth
	}
	if blackDepth == 0 {
		blackDepth = opts.depth
	}

	rng := newRand(opts.seed)
	newBot := func(c position.Color, depth int) *bots.MinimaxBot {
		return bots.New(bots.Config{Color: c, Depth: depth, Workers: opts.workers},
			bots.WithLogger(log), bots.WithRand(rand.New(rand.NewSource(rng.Int63()))))
	}

	match := game.NewMatch(
		newBot(position.White, whiteDepth),
		newBot(position.Black, blackDepth),
		game.WithStartFEN(fen),
		game.WithMaxPlies(opts.maxPlies),
		game.WithMatchLogger(log),
	)
	g, err := match.Play()
	if err != nil {
		return fmt.Errorf("match %s: %w", match.ID, err)
	}

	fmt.Fprintln(w, g.String())
	fmt.Fprintf(w, "result %s (%s)\n", g.Outcome(), g.Method())
	return nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
