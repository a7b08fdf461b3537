// Package game referees bot games on notnil/chess and converts moves
// between its notation and the engine's.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"chessbot/bots"
	"chessbot/position"
)

// ErrNoMove is returned when a bot has no answer although the referee
// still considers the game open.
var ErrNoMove = errors.New("bot returned no move")

// Match pits two bots against each other. The referee, not the bots,
// decides legality and the outcome.
type Match struct {
	ID       uuid.UUID
	White    bots.ChessBot
	Black    bots.ChessBot
	StartFEN string
	// MaxPlies stops an undecided game after that many half-moves; 0 means
	// play to the end.
	MaxPlies int

	log zerolog.Logger
}

type MatchOption func(*Match)

func WithMatchLogger(l zerolog.Logger) MatchOption {
	return func(m *Match) { m.log = l }
}

func WithStartFEN(fen string) MatchOption {
	return func(m *Match) { m.StartFEN = fen }
}

func WithMaxPlies(n int) MatchOption {
	return func(m *Match) { m.MaxPlies = n }
}

func NewMatch(white, black bots.ChessBot, opts ...MatchOption) *Match {
	m := &Match{
		ID:       uuid.New(),
		White:    white,
		Black:    black,
		StartFEN: position.StartFEN,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Play runs the match and returns the finished game. A game cut off by
// MaxPlies keeps the NoOutcome result.
func (m *Match) Play() (*chess.Game, error) {
	fen, err := chess.FEN(m.StartFEN)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", position.ErrInvalidFEN, err)
	}
	g := chess.NewGame(fen)
	g.AddTagPair("Event", "chessbot match")
	g.AddTagPair("White", m.White.Name())
	g.AddTagPair("Black", m.Black.Name())
	g.AddTagPair("MatchID", m.ID.String())

	log := m.log.With().Str("match", m.ID.String()).Logger()

	for ply := 0; g.Outcome() == chess.NoOutcome; ply++ {
		if m.MaxPlies > 0 && ply >= m.MaxPlies {
			log.Info().Int("plies", ply).Msg("ply limit reached")
			break
		}

		board, err := position.FromFEN(g.Position().String())
		if err != nil {
			return g, err
		}
		claimed, err := ClaimFiftyMoveDraw(g, board)
		if err != nil {
			return g, err
		}
		if claimed {
			break
		}

		bot := m.White
		if g.Position().Turn() == chess.Black {
			bot = m.Black
		}
		move, err := bot.BestMove(board)
		if err != nil {
			return g, fmt.Errorf("%s: %w", bot.Name(), err)
		}
		if move == nil {
			return g, fmt.Errorf("%s at %q: %w", bot.Name(), board.FEN(), ErrNoMove)
		}

		cm, err := ToChessMove(g.Position(), *move)
		if err != nil {
			return g, fmt.Errorf("%s: %w", bot.Name(), err)
		}
		if err := g.Move(cm); err != nil {
			return g, fmt.Errorf("%s: %w", bot.Name(), err)
		}
		log.Debug().Int("ply", ply).Str("bot", bot.Name()).Stringer("move", move).Msg("move played")
	}

	log.Info().
		Str("outcome", g.Outcome().String()).
		Str("method", g.Method().String()).
		Msg("match finished")
	return g, nil
}

// ClaimFiftyMoveDraw ends g when board is drawn by the fifty-move rule.
// notnil/chess only offers that draw as a claim, while the search treats it
// as terminal.
func ClaimFiftyMoveDraw(g *chess.Game, board *position.Board) (bool, error) {
	over, result := board.GameOver()
	if !over || result != position.Draw || board.LegalMoveCount(board.SideToMove()) == 0 {
		return false, nil
	}
	if err := g.Draw(chess.FiftyMoveRule); err != nil {
		return false, fmt.Errorf("claim fifty-move draw: %w", err)
	}
	return true, nil
}
