package main

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"chessbot/bots"
	"chessbot/game"
)

func main() {
	depth := flag.Int("depth", bots.DefaultDepth, "initial minimax depth of the opponent (1-6)")
	workers := flag.Int("workers", 1, "goroutines used to search root moves")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	level, err := zerolog.ParseLevel(strings.ToLower(*logLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Str("component", "gui").Logger()

	opponents := game.DefaultOpponents(*workers, log)
	g := NewGame(Config{
		Opponents: opponents,
		Selected:  opponentIndex(opponents, *depth),
		Logger:    log,
	})

	width, height := g.ScreenSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("chessbot")
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("gui stopped")
	}
}

// opponentIndex selects the minimax entry for depth, clamped to the
// supported range.
func opponentIndex(opponents []game.Opponent, depth int) int {
	depth = bots.Config{Depth: depth}.Normalize().Depth
	return max(game.MinimaxOpponent(opponents, depth), 0)
}
