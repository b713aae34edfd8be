package model

import "fmt"

// Position bundles a board with the auxiliary state needed to generate moves
// from it. It is used to start a Game from an arbitrary set-up.
type Position struct {
	Board      Board
	SideToMove Color
	LastMove   *Move
	Castling   CastlingRights
}

// Game owns one session's board and auxiliary state and is the only thing
// that mutates that board. It is not safe for concurrent use: callers that
// share a Game across goroutines must serialise MakeMove themselves.
type Game struct {
	board      Board
	rules      Rules
	sideToMove Color
	lastMove   *Move
	castling   CastlingRights
}

func NewGame() *Game {
	g := &Game{}
	g.Reset()
	return g
}

// NewGameFromPosition starts a game from p. An empty side to move defaults to
// White.
func NewGameFromPosition(p Position) *Game {
	g := &Game{
		board:      p.Board,
		sideToMove: p.SideToMove,
		castling:   p.Castling,
	}
	if g.sideToMove == "" {
		g.sideToMove = White
	}
	if p.LastMove != nil {
		last := *p.LastMove
		g.lastMove = &last
	}
	return g
}

// Reset restores the starting position with White to move and every
// castling right held.
func (g *Game) Reset() {
	g.board.Reset()
	g.sideToMove = White
	g.lastMove = nil
	g.castling = AllCastlingRights()
}

// MakeMove applies candidate if it matches a legal move by origin and
// destination and reports whether it did. A rejected move leaves the game
// untouched.
func (g *Game) MakeMove(candidate Move) bool {
	_, ok := g.Play(candidate)
	return ok
}

// Play is MakeMove that also returns a record of what happened.
//
// The generated move is what gets applied, so its flags win over whatever
// the caller set. The one exception is the promotion piece: a caller asking
// for a knight, bishop or rook gets it, anything else promotes to a queen.
func (g *Game) Play(candidate Move) (Ply, bool) {
	var (
		move  Move
		found bool
	)
	for _, m := range g.LegalMoves() {
		if m.Equal(candidate) {
			move, found = m, true
			break
		}
	}
	if !found {
		return Ply{}, false
	}
	if move.IsPromotion() && candidate.Promotion.IsPromotionTarget() {
		move.Promotion = candidate.Promotion
	}

	ply := g.recordPly(move)
	applyMove(&g.board, move)
	g.updateCastlingRights(move, ply.Piece)

	g.lastMove = &move
	g.sideToMove = g.sideToMove.Opponent()
	return ply, true
}

func (g *Game) updateCastlingRights(move Move, moved Piece) {
	if moved.Type == King {
		g.castling.revokeColor(moved.Color)
	}
	g.castling.revokeRookSquare(move.From)
	g.castling.revokeRookSquare(move.To)
}

func (g *Game) recordPly(move Move) Ply {
	piece, _ := g.board.At(move.From)
	ply := Ply{Move: move, Piece: piece}
	victim := move.To
	if move.EnPassant {
		victim = Square{Rank: move.From.Rank, File: move.To.File}
	}
	if captured, ok := g.board.At(victim); ok {
		ply.Captured = &captured
	}
	ply.Notation = notation(ply)
	return ply
}

// notation renders a short algebraic form for move lists. It does not mark
// check or disambiguate between identical pieces.
func notation(ply Ply) string {
	m := ply.Move
	if m.Castling {
		if m.To.File == 6 {
			return "O-O"
		}
		return "O-O-O"
	}
	prefix := ""
	if ply.Piece.Type != Pawn {
		prefix = string(ply.Piece.Type.Letter())
	}
	capture := ""
	if ply.Captured != nil {
		capture = "x"
		if ply.Piece.Type == Pawn {
			prefix = m.From.String()[:1]
		}
	}
	suffix := ""
	if m.IsPromotion() {
		suffix = "=" + string(m.Promotion.Letter())
	}
	return fmt.Sprintf("%s%s%s%s", prefix, capture, m.To, suffix)
}

// Board returns a copy of the current board.
func (g *Game) Board() Board {
	return g.board
}

func (g *Game) SideToMove() Color {
	return g.sideToMove
}

// LastMove returns the previous ply's move, if any.
func (g *Game) LastMove() (Move, bool) {
	if g.lastMove == nil {
		return Move{}, false
	}
	return *g.lastMove, true
}

func (g *Game) CastlingRights() CastlingRights {
	return g.castling
}

func (g *Game) LegalMoves() []Move {
	return g.rules.LegalMoves(&g.board, g.sideToMove, g.lastMove, g.castling)
}

// LegalMovesFrom lists the legal moves of the piece on from.
func (g *Game) LegalMovesFrom(from Square) []Move {
	return g.rules.LegalMovesFrom(&g.board, g.sideToMove, g.lastMove, g.castling, from)
}

func (g *Game) IsCheck() bool {
	return g.rules.IsCheck(&g.board, g.sideToMove)
}

func (g *Game) IsCheckmate() bool {
	return g.rules.IsCheckmate(&g.board, g.sideToMove, g.lastMove, g.castling)
}

func (g *Game) IsStalemate() bool {
	return g.rules.IsStalemate(&g.board, g.sideToMove, g.lastMove, g.castling)
}

func (g *Game) IsGameOver() bool {
	return g.IsCheckmate() || g.IsStalemate()
}

func (g *Game) Status() Status {
	return g.rules.Status(&g.board, g.sideToMove, g.lastMove, g.castling)
}
