package bots

import (
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"chessbot/position"
)

// MateScore is the base score of a decided game. The remaining depth is
// added for wins and subtracted for losses, so a mate reached with more of
// the search budget left scores further from zero.
const MateScore = 10000

const (
	scoreInfinity    = math.MaxInt
	scoreNegInfinity = math.MinInt
)

// MinimaxBot searches a fixed number of plies with alpha-beta pruning. It
// plays one color for its whole life; BestMove must not be called
// concurrently on the same bot.
type MinimaxBot struct {
	cfg       Config
	evaluator PositionEvaluator
	orderer   MoveOrderer
	random    *RandomBot
	log       zerolog.Logger

	nodes atomic.Uint64
	stats SearchStats
}

type Option func(*MinimaxBot)

func WithLogger(l zerolog.Logger) Option {
	return func(b *MinimaxBot) { b.log = l }
}

// WithRand seeds the depth-1 random policy.
func WithRand(rng *rand.Rand) Option {
	return func(b *MinimaxBot) { b.random = NewRandomBot(rng) }
}

// WithWorkers searches root moves on up to n goroutines.
func WithWorkers(n int) Option {
	return func(b *MinimaxBot) { b.cfg.Workers = max(n, 1) }
}

// WithEvaluator replaces the default Evaluator. With more than one worker e
// is called from several goroutines at once and must be safe for that.
func WithEvaluator(e PositionEvaluator) Option {
	return func(b *MinimaxBot) { b.evaluator = e }
}

func NewMinimaxBot(color position.Color, depth int, opts ...Option) *MinimaxBot {
	return New(Config{Color: color, Depth: depth}, opts...)
}

// New builds a bot from cfg after clamping it with Normalize.
func New(cfg Config, opts ...Option) *MinimaxBot {
	cfg = cfg.Normalize()
	b := &MinimaxBot{
		cfg:       cfg,
		evaluator: NewEvaluator(cfg.Color),
		orderer:   MoveOrderer{Color: cfg.Color},
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.random == nil {
		b.random = NewRandomBot(nil)
	}
	return b
}

func (b *MinimaxBot) Name() string {
	return fmt.Sprintf("Minimax Bot (depth %d)", b.cfg.Depth)
}

func (b *MinimaxBot) Color() position.Color { return b.cfg.Color }
func (b *MinimaxBot) Depth() int            { return b.cfg.Depth }

// Stats reports on the most recent BestMove call.
func (b *MinimaxBot) Stats() SearchStats { return b.stats }

// BestMove returns the move with the highest minimax score for the bot's
// color, or nil when that side has no legal moves. pos must have the bot's
// color to move and is not modified.
func (b *MinimaxBot) BestMove(pos position.Position) (*position.Move, error) {
	if side := pos.SideToMove(); side != b.cfg.Color {
		return nil, fmt.Errorf("%w: bot plays %s but %s is to move", ErrNotSideToMove, b.cfg.Color, side)
	}

	b.nodes.Store(0)
	b.stats = SearchStats{}
	start := time.Now()

	moves := pos.LegalMoves(b.cfg.Color)
	if len(moves) == 0 {
		b.log.Debug().Stringer("color", b.cfg.Color).Msg("no legal moves")
		return nil, nil
	}

	if b.cfg.Depth == MinDepth {
		m := b.random.pick(moves)
		b.stats.Elapsed = time.Since(start)
		return &m, nil
	}

	root := pos.Clone()
	ordered := b.orderer.Order(root, moves)

	var best position.Move
	var bestScore int
	if b.cfg.Workers > 1 {
		best, bestScore = b.searchRootParallel(root, ordered)
	} else {
		best, bestScore = b.searchRoot(root, ordered)
	}

	b.stats = SearchStats{
		Nodes:     b.nodes.Load(),
		BestScore: bestScore,
		Elapsed:   time.Since(start),
	}
	b.log.Info().
		Stringer("color", b.cfg.Color).
		Int("depth", b.cfg.Depth).
		Uint64("nodes", b.stats.Nodes).
		Int("score", bestScore).
		Dur("elapsed", b.stats.Elapsed).
		Stringer("move", best).
		Msg("search complete")

	return &best, nil
}

// searchRoot explores moves in order, keeping the first strictly best one.
func (b *MinimaxBot) searchRoot(root position.Position, moves []position.Move) (position.Move, int) {
	best := moves[0]
	bestScore := scoreNegInfinity
	alpha, beta := scoreNegInfinity, scoreInfinity

	for _, m := range moves {
		undo := root.Apply(m)
		score := b.minimax(root, b.cfg.Depth-1, alpha, beta, false)
		undo()

		if score > bestScore {
			best, bestScore = m, score
		}
		alpha = max(alpha, score)
		if beta <= alpha {
			break
		}
	}
	return best, bestScore
}

// searchRootParallel gives every root move its own board and a full window.
// Reducing in move order with the same strictly-greater rule picks the same
// move and score as searchRoot.
func (b *MinimaxBot) searchRootParallel(root position.Position, moves []position.Move) (position.Move, int) {
	scores := make([]int, len(moves))

	var g errgroup.Group
	g.SetLimit(b.cfg.Workers)
	for i, m := range moves {
		i, board := i, root.Clone()
		board.Apply(m)
		g.Go(func() error {
			scores[i] = b.minimax(board, b.cfg.Depth-1, scoreNegInfinity, scoreInfinity, false)
			return nil
		})
	}
	_ = g.Wait()

	best, bestScore := moves[0], scores[0]
	for i := 1; i < len(moves); i++ {
		if scores[i] > bestScore {
			best, bestScore = moves[i], scores[i]
		}
	}
	return best, bestScore
}

func (b *MinimaxBot) minimax(pos position.Position, depth, alpha, beta int, maximizing bool) int {
	b.nodes.Add(1)

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
	moves = b.orderer.Order(pos, moves)

	if maximizing {
		best := scoreNegInfinity
		for _, m := range moves {
			undo := pos.Apply(m)
			score := b.minimax(pos, depth-1, alpha, beta, false)
			undo()

			best = max(best, score)
			alpha = max(alpha, score)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := scoreInfinity
	for _, m := range moves {
		undo := pos.Apply(m)
		score := b.minimax(pos, depth-1, alpha, beta, true)
		undo()

		best = min(best, score)
		beta = min(beta, score)
		if beta <= alpha {
			break
		}
	}
	return best
}

func (b *MinimaxBot) terminalScore(result position.Result, depth int) int {
	switch result {
	case position.Draw:
		return 0
	case position.WhiteWins, position.BlackWins:
		if winner, _ := result.Winner(); winner == b.cfg.Color {
			return MateScore + depth
		}
		return -MateScore - depth
	default:
		panic(&InvariantError{Op: "minimax", Err: ErrUnknownResult, Detail: result.String()})
	}
}
