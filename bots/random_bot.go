package bots

import (
	"math/rand"
	"sync"
	"time"

	"chessbot/position"
)

// RandomBot picks uniformly among the legal moves.
type RandomBot struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomBot uses rng, or a time-seeded source when rng is nil.
func NewRandomBot(rng *rand.Rand) *RandomBot {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomBot{rng: rng}
}

func (b *RandomBot) BestMove(pos position.Position) (*position.Move, error) {
	moves := pos.LegalMoves(pos.SideToMove())
	if len(moves) == 0 {
		return nil, nil
	}
	m := b.pick(moves)
	return &m, nil
}

func (b *RandomBot) pick(moves []position.Move) position.Move {
	b.mu.Lock()
	defer b.mu.Unlock()
	return moves[b.rng.Intn(len(moves))]
}

func (b *RandomBot) Name() string {
	return "Random Bot"
}
