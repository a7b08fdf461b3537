package game

import (
	"fmt"

	"github.com/rs/zerolog"

	"chessbot/bots"
	"chessbot/position"
)

// Opponent is one entry of the engine menu cycled with the B key.
type Opponent struct {
	Name string
	New  func(c position.Color) bots.ChessBot
}

// DefaultOpponents lists the baseline bots followed by the minimax engine at
// every supported depth.
func DefaultOpponents(workers int, log zerolog.Logger) []Opponent {
	opponents := []Opponent{
		{Name: "Newborn", New: func(position.Color) bots.ChessBot { return bots.NewNewbornBot() }},
		{Name: "Random Bot", New: func(position.Color) bots.ChessBot { return bots.NewRandomBot(nil) }},
	}
	for depth := bots.MinDepth; depth <= bots.MaxDepth; depth++ {
		depth := depth
		opponents = append(opponents, Opponent{
			Name: fmt.Sprintf("Minimax Bot (depth %d)", depth),
			New: func(c position.Color) bots.ChessBot {
				return bots.New(bots.Config{Color: c, Depth: depth, Workers: workers}, bots.WithLogger(log))
			},
		})
	}
	return opponents
}

// MinimaxOpponent returns the index of the minimax entry for depth, or -1.
func MinimaxOpponent(opponents []Opponent, depth int) int {
	want := fmt.Sprintf("Minimax Bot (depth %d)", depth)
	for i, o := range opponents {
		if o.Name == want {
			return i
		}
	}
	return -1
}
