package main

import "flag"

var (
	fenFlag      = flag.String("fen", "", "position to search (empty = initial position)")
	movesFlag    = flag.String("moves", "", "space-separated moves in long algebraic form (e2e4 e7e8q) played before searching")
	colorFlag    = flag.String("color", "", "side the engine plays: white or black (empty = side to move)")
	depthFlag    = flag.Int("depth", 3, "search depth in plies (1-6)")
	workersFlag  = flag.Int("workers", 1, "goroutines used to search root moves")
	seedFlag     = flag.Int64("seed", 0, "seed for the depth-1 random policy (0 = time based)")
	logLevelFlag = flag.String("log-level", "info", "log level (debug, info, warn, error)")

	selfPlayFlag   = flag.Bool("selfplay", false, "play the engine against itself and print the PGN")
	whiteDepthFlag = flag.Int("white-depth", 0, "white depth in self-play (0 = -depth)")
	blackDepthFlag = flag.Int("black-depth", 0, "black depth in self-play (0 = -depth)")
	maxPliesFlag   = flag.Int("max-plies", 200, "stop self-play after this many half-moves (0 = no limit)")
)

// options is the parsed command line.
type options struct {
	fen        string
	moves      []string
	color      string
	depth      int
	workers    int
	seed       int64
	selfPlay   bool
	whiteDepth int
	blackDepth int
	maxPlies   int
}
