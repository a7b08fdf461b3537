package main

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/notnil/chess"
	"github.com/rs/zerolog"

	"chessbot/bots"
	"chessbot/game"
	"chessbot/position"
)

const (
	buttonWidth  = 200
	buttonHeight = 60
	headerHeight = 80
)

var (
	lightSquare = color.RGBA{240, 217, 181, 255}
	darkSquare  = color.RGBA{181, 136, 99, 255}
	whiteFill   = color.RGBA{250, 250, 250, 255}
	blackFill   = color.RGBA{40, 40, 40, 255}
)

type Config struct {
	Opponents []game.Opponent
	// Selected is the index into Opponents used when a game starts.
	Selected int
	Logger   zerolog.Logger
}

// Game is the ebiten game: the human picks a color and drags pieces, the
// selected opponent answers from a goroutine.
type Game struct {
	mu sync.Mutex

	chessGame    *chess.Game
	pieces       map[chess.Piece]*ebiten.Image
	light, dark  *ebiten.Image
	whiteButton  *ebiten.Image
	blackButton  *ebiten.Image
	selected     chess.Square
	dragging     *chess.Piece
	dragX, dragY int
	playerColor  chess.Color
	gameStarted  bool
	botThinking  bool
	lastSearch   string

	opponents []game.Opponent
	current   int
	bot       bots.ChessBot

	screenWidth  int
	screenHeight int
	squareSize   int
	boardOffsetX int
	boardOffsetY int

	log zerolog.Logger
}

func NewGame(cfg Config) *Game {
	screenWidth, screenHeight := ebiten.ScreenSizeInFullscreen()

	boardHeight := screenHeight - headerHeight
	squareSize := min(boardHeight/8, screenWidth/8)
	boardWidth := squareSize * 8

	g := &Game{
		pieces:       make(map[chess.Piece]*ebiten.Image),
		opponents:    cfg.Opponents,
		current:      cfg.Selected,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		squareSize:   squareSize,
		boardOffsetX: (screenWidth - boardWidth) / 2,
		boardOffsetY: (screenHeight - boardHeight) / 2,
		log:          cfg.Logger,
	}
	if len(g.opponents) == 0 {
		g.opponents = game.DefaultOpponents(1, cfg.Logger)
	}
	if g.current < 0 || g.current >= len(g.opponents) {
		g.current = 0
	}
	g.loadPieceImages()
	return g
}

func (g *Game) ScreenSize() (int, int) {
	return g.screenWidth, g.screenHeight
}

// loadPieceImages builds the board tiles, the menu buttons and a filled
// square with its FEN letter for each piece.
func (g *Game) loadPieceImages() {
	g.light = ebiten.NewImage(g.squareSize, g.squareSize)
	g.light.Fill(lightSquare)
	g.dark = ebiten.NewImage(g.squareSize, g.squareSize)
	g.dark.Fill(darkSquare)

	g.whiteButton = ebiten.NewImage(buttonWidth, buttonHeight)
	g.whiteButton.Fill(color.RGBA{200, 200, 200, 255})
	ebitenutil.DebugPrintAt(g.whiteButton, "Play white", 65, 20)
	g.blackButton = ebiten.NewImage(buttonWidth, buttonHeight)
	g.blackButton.Fill(color.RGBA{50, 50, 50, 255})
	ebitenutil.DebugPrintAt(g.blackButton, "Play black", 65, 20)

	inset := g.squareSize / 5
	for _, piece := range []chess.Piece{
		chess.WhiteKing, chess.WhiteQueen, chess.WhiteRook, chess.WhiteBishop, chess.WhiteKnight, chess.WhitePawn,
		chess.BlackKing, chess.BlackQueen, chess.BlackRook, chess.BlackBishop, chess.BlackKnight, chess.BlackPawn,
	} {
		p := pieceFromChess(piece)

		body := ebiten.NewImage(g.squareSize-2*inset, g.squareSize-2*inset)
		if p.Color == position.White {
			body.Fill(whiteFill)
		} else {
			body.Fill(blackFill)
		}

		img := ebiten.NewImage(g.squareSize, g.squareSize)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(inset), float64(inset))
		img.DrawImage(body, op)
		ebitenutil.DebugPrintAt(img, p.String(), g.squareSize/2-3, g.squareSize/2-8)
		g.pieces[piece] = img
	}
}

func (g *Game) Update() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.gameStarted {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			btnY := g.screenHeight/2 + 100

			if y > btnY && y < btnY+buttonHeight {
				if x > g.screenWidth/2-buttonWidth-20 && x < g.screenWidth/2-20 {
					g.startGame(chess.White)
				} else if x > g.screenWidth/2+20 && x < g.screenWidth/2+20+buttonWidth {
					g.startGame(chess.Black)
				}
			}
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyB) && !g.botThinking {
		g.current = (g.current + 1) % len(g.opponents)
		g.bot = g.opponents[g.current].New(colorFromChess(g.playerColor.Other()))
		g.log.Info().Str("opponent", g.bot.Name()).Msg("opponent changed")
	}

	if g.chessGame.Outcome() != chess.NoOutcome || g.botThinking || g.chessGame.Position().Turn() != g.playerColor {
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if sq, ok := g.squareAtCursor(); ok {
			piece := g.chessGame.Position().Board().Piece(sq)
			if piece != chess.NoPiece && piece.Color() == g.playerColor {
				g.selected = sq
				g.dragging = &piece
			}
		}
	}
	if g.dragging != nil {
		g.dragX, g.dragY = ebiten.CursorPosition()
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.dragging != nil {
		if target, ok := g.squareAtCursor(); ok {
			if move := findMove(g.chessGame, g.selected, target); move != nil {
				if err := g.chessGame.Move(move); err != nil {
					g.log.Error().Err(err).Msg("player move rejected")
				} else {
					g.afterMove()
				}
			}
		}
		g.selected = 0
		g.dragging = nil
	}

	return nil
}

func (g *Game) squareAtCursor() (chess.Square, bool) {
	x, y := ebiten.CursorPosition()
	x -= g.boardOffsetX
	y -= g.boardOffsetY
	if x < 0 || x >= g.squareSize*8 || y < 0 || y >= g.squareSize*8 {
		return 0, false
	}
	file := x / g.squareSize
	rank := 7 - y/g.squareSize
	return chess.Square(file + rank*8), true
}

// startGame must be called with g.mu held.
func (g *Game) startGame(player chess.Color) {
	g.chessGame = chess.NewGame()
	g.playerColor = player
	g.gameStarted = true
	g.bot = g.opponents[g.current].New(colorFromChess(player.Other()))
	g.log.Info().Stringer("player", colorFromChess(player)).Str("opponent", g.bot.Name()).Msg("game started")
	if player == chess.Black {
		g.botThinking = true
		go g.makeBotMove()
	}
}

// afterMove claims a fifty-move draw if due and hands the turn to the bot.
// It must be called with g.mu held.
func (g *Game) afterMove() {
	if g.chessGame.Outcome() != chess.NoOutcome {
		g.log.Info().Str("outcome", g.chessGame.Outcome().String()).Msg("game over")
		return
	}
	if board, err := position.FromFEN(g.chessGame.Position().String()); err == nil {
		if claimed, err := game.ClaimFiftyMoveDraw(g.chessGame, board); err != nil {
			g.log.Error().Err(err).Msg("fifty-move claim failed")
		} else if claimed {
			return
		}
	}
	if g.chessGame.Position().Turn() != g.playerColor {
		g.botThinking = true
		go g.makeBotMove()
	}
}

func (g *Game) makeBotMove() {
	g.mu.Lock()
	fen := g.chessGame.Position().String()
	bot := g.bot
	g.mu.Unlock()

	move, err := g.searchMove(bot, fen)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.botThinking = false
	if err != nil {
		g.log.Error().Err(err).Str("bot", bot.Name()).Msg("bot move failed")
		return
	}
	if move == nil {
		return
	}
	if err := g.chessGame.Move(move); err != nil {
		g.log.Error().Err(err).Str("bot", bot.Name()).Msg("bot move rejected")
		return
	}
	if mb, ok := bot.(*bots.MinimaxBot); ok {
		s := mb.Stats()
		g.lastSearch = fmt.Sprintf("%s: %d nodes, score %d, %s", move, s.Nodes, s.BestScore, s.Elapsed.Round(time.Millisecond))
	}
	g.afterMove()
}

func (g *Game) searchMove(bot bots.ChessBot, fen string) (*chess.Move, error) {
	board, err := position.FromFEN(fen)
	if err != nil {
		return nil, err
	}
	m, err := bot.BestMove(board)
	if err != nil || m == nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	return game.ToChessMove(g.chessGame.Position(), *m)
}

func findMove(cg *chess.Game, from, to chess.Square) *chess.Move {
	for _, m := range cg.ValidMoves() {
		if m.S1() == from && m.S2() == to && (m.Promo() == chess.NoPieceType || m.Promo() == chess.Queen) {
			return m
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.gameStarted {
		g.drawMenu(screen)
		return
	}

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			tile := g.light
			if (x+y)%2 == 1 {
				tile = g.dark
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x*g.squareSize+g.boardOffsetX), float64(y*g.squareSize+g.boardOffsetY))
			screen.DrawImage(tile, op)
		}
	}

	board := g.chessGame.Position().Board()
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			sq := chess.Square(x + (7-y)*8)
			piece := board.Piece(sq)
			if piece == chess.NoPiece || (g.dragging != nil && sq == g.selected) {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Translate(float64(x*g.squareSize+g.boardOffsetX), float64(y*g.squareSize+g.boardOffsetY))
			screen.DrawImage(g.pieces[piece], op)
		}
	}

	if g.dragging != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(g.dragX)-float64(g.squareSize)/2, float64(g.dragY)-float64(g.squareSize)/2)
		screen.DrawImage(g.pieces[*g.dragging], op)
	}

	status := "Your move"
	if g.botThinking {
		status = "Bot is thinking..."
	} else if g.chessGame.Position().Turn() != g.playerColor {
		status = "Bot to move"
	}
	ebitenutil.DebugPrintAt(screen, status, 20, 20)
	ebitenutil.DebugPrintAt(screen, "Opponent: "+g.bot.Name()+" (B to change)", g.screenWidth-320, 20)
	if g.lastSearch != "" {
		ebitenutil.DebugPrintAt(screen, g.lastSearch, 20, g.screenHeight-40)
	}

	if outcome := g.chessGame.Outcome(); outcome != chess.NoOutcome {
		ebitenutil.DebugPrintAt(screen, "Result: "+outcome.String()+" ("+g.chessGame.Method().String()+")", g.screenWidth/2-80, 20)
	}
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "Chess in Go", g.screenWidth/2-40, g.screenHeight/2-50)
	ebitenutil.DebugPrintAt(screen, "Choose your color:", g.screenWidth/2-60, g.screenHeight/2)
	ebitenutil.DebugPrintAt(screen, "Opponent: "+g.opponents[g.current].Name, g.screenWidth/2-60, g.screenHeight/2+30)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.screenWidth/2-buttonWidth-20), float64(g.screenHeight/2+100))
	screen.DrawImage(g.whiteButton, op)

	op = &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.screenWidth/2+20), float64(g.screenHeight/2+100))
	screen.DrawImage(g.blackButton, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenWidth, g.screenHeight
}

func colorFromChess(c chess.Color) position.Color {
	if c == chess.Black {
		return position.Black
	}
	return position.White
}

func pieceFromChess(p chess.Piece) position.Piece {
	var t position.PieceType
	switch p.Type() {
	case chess.King:
		t = position.King
	case chess.Queen:
		t = position.Queen
	case chess.Rook:
		t = position.Rook
	case chess.Bishop:
		t = position.Bishop
	case chess.Knight:
		t = position.Knight
	case chess.Pawn:
		t = position.Pawn
	}
	return position.Piece{Type: t, Color: colorFromChess(p.Color())}
}
