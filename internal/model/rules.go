package model

// Status classifies a position for the side to move.
type Status string

const (
	Ongoing   Status = "ongoing"
	Check     Status = "check"
	Checkmate Status = "checkmate"
	Stalemate Status = "stalemate"
)

// Rules derives legality from a board plus auxiliary state. It holds no
// state and never mutates the boards it is given; speculative moves are
// played on copies.
type Rules struct{}

// LegalMoves generates every legal move for side. lastMove may be nil.
func (Rules) LegalMoves(board *Board, side Color, lastMove *Move, rights CastlingRights) []Move {
	pseudo := make([]Move, 0, 64)
	for r := 0; r < BoardSize; r++ {
		for f := 0; f < BoardSize; f++ {
			from := Square{Rank: r, File: f}
			piece, ok := board.At(from)
			if !ok || piece.Color != side {
				continue
			}
			switch piece.Type {
			case Pawn:
				pseudo = append(pseudo, pseudoPawnMoves(board, from, side, lastMove)...)
			case Knight:
				pseudo = append(pseudo, pseudoKnightMoves(board, from, side)...)
			case Bishop:
				pseudo = append(pseudo, pseudoSlidingMoves(board, from, side, bishopDirs)...)
			case Rook:
				pseudo = append(pseudo, pseudoSlidingMoves(board, from, side, rookDirs)...)
			case Queen:
				pseudo = append(pseudo, pseudoSlidingMoves(board, from, side, queenDirs)...)
			case King:
				pseudo = append(pseudo, pseudoKingMoves(board, from, side, rights)...)
			}
		}
	}
	return filterLegalMoves(board, pseudo, side)
}

// LegalMovesFrom narrows LegalMoves to moves starting on from.
func (r Rules) LegalMovesFrom(board *Board, side Color, lastMove *Move, rights CastlingRights, from Square) []Move {
	moves := []Move{}
	for _, m := range r.LegalMoves(board, side, lastMove, rights) {
		if m.From == from {
			moves = append(moves, m)
		}
	}
	return moves
}

// IsMoveLegal plays move on a scratch copy of board and reports whether
// side's king is safe afterwards. A side without a king never has a legal
// move.
func (Rules) IsMoveLegal(board *Board, move Move, side Color) bool {
	return isMoveLegal(board, move, side)
}

// IsCheck reports whether side's king is attacked. A missing king is not in
// check.
func (Rules) IsCheck(board *Board, side Color) bool {
	king, ok := board.FindKing(side)
	return ok && IsSquareAttacked(board, king, side.Opponent())
}

func (r Rules) IsCheckmate(board *Board, side Color, lastMove *Move, rights CastlingRights) bool {
	return r.IsCheck(board, side) && len(r.LegalMoves(board, side, lastMove, rights)) == 0
}

func (r Rules) IsStalemate(board *Board, side Color, lastMove *Move, rights CastlingRights) bool {
	return !r.IsCheck(board, side) && len(r.LegalMoves(board, side, lastMove, rights)) == 0
}

// Status combines the check and mate queries with a single generation pass.
func (r Rules) Status(board *Board, side Color, lastMove *Move, rights CastlingRights) Status {
	return StatusOf(r.IsCheck(board, side), len(r.LegalMoves(board, side, lastMove, rights)) > 0)
}

// StatusOf classifies a position from whether the side to move is in check
// and whether it has any legal move.
func StatusOf(inCheck, hasMoves bool) Status {
	switch {
	case inCheck && !hasMoves:
		return Checkmate
	case !hasMoves:
		return Stalemate
	case inCheck:
		return Check
	}
	return Ongoing
}

func filterLegalMoves(board *Board, pseudo []Move, side Color) []Move {
	legal := pseudo[:0]
	for _, m := range pseudo {
		if isMoveLegal(board, m, side) {
			legal = append(legal, m)
		}
	}
	return legal
}

func isMoveLegal(board *Board, move Move, side Color) bool {
	scratch := *board
	applyMove(&scratch, move)
	king, ok := scratch.FindKing(side)
	if !ok {
		return false
	}
	return !IsSquareAttacked(&scratch, king, side.Opponent())
}

// applyMove performs every board change a generated move implies: the
// en-passant victim, the relocation itself, the castling rook and the
// promoted piece. It does not touch auxiliary state.
func applyMove(board *Board, move Move) {
	if move.EnPassant {
		board.ClearSquare(Square{Rank: move.From.Rank, File: move.To.File})
	}
	board.MovePiece(move)
	if move.Castling {
		if rook, ok := castleRookMove(move); ok {
			board.MovePiece(rook)
		}
	}
	if move.IsPromotion() {
		if p, ok := board.At(move.To); ok {
			board.SetPiece(move.To, Piece{Type: move.Promotion, Color: p.Color})
		}
	}
}

func pseudoPawnMoves(board *Board, from Square, side Color, lastMove *Move) []Move {
	moves := []Move{}
	forward := pawnForward(side)
	startRank := homeRank(side) + forward
	lastRank := homeRank(side.Opponent())

	push := func(to Square) Move {
		m := Move{From: from, To: to}
		if to.Rank == lastRank {
			m.Promotion = Queen
		}
		return m
	}

	one := from.Offset(forward, 0)
	if one.Valid() && !board.HasPieceAt(one) {
		moves = append(moves, push(one))
		two := from.Offset(2*forward, 0)
		if from.Rank == startRank && two.Valid() && !board.HasPieceAt(two) {
			moves = append(moves, push(two))
		}
	}

	for _, df := range []int{-1, 1} {
		target := from.Offset(forward, df)
		if board.HasPieceOf(target, side.Opponent()) {
			moves = append(moves, push(target))
		}
	}

	if ep, ok := enPassantMove(board, from, side, lastMove); ok {
		moves = append(moves, ep)
	}
	return moves
}

// enPassantMove returns the en-passant capture available to the pawn on from,
// which exists only straight after an enemy double push that landed beside it.
func enPassantMove(board *Board, from Square, side Color, lastMove *Move) (Move, bool) {
	if lastMove == nil {
		return Move{}, false
	}
	moved, ok := board.At(lastMove.To)
	if !ok || moved.Type != Pawn || moved.Color != side.Opponent() {
		return Move{}, false
	}
	if abs(lastMove.From.Rank-lastMove.To.Rank) != 2 || lastMove.From.File != lastMove.To.File {
		return Move{}, false
	}
	if from.Rank != lastMove.To.Rank || abs(from.File-lastMove.To.File) != 1 {
		return Move{}, false
	}
	passed := (lastMove.From.Rank + lastMove.To.Rank) / 2
	return Move{
		From:      from,
		To:        Square{Rank: passed, File: lastMove.To.File},
		EnPassant: true,
	}, true
}

func pseudoKnightMoves(board *Board, from Square, side Color) []Move {
	moves := []Move{}
	for _, o := range knightOffsets {
		to := from.Offset(o.dr, o.df)
		if to.Valid() && !board.HasPieceOf(to, side) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func pseudoSlidingMoves(board *Board, from Square, side Color, dirs []offset) []Move {
	moves := []Move{}
	for _, o := range dirs {
		for to := from.Offset(o.dr, o.df); to.Valid(); to = to.Offset(o.dr, o.df) {
			p, occupied := board.At(to)
			if occupied {
				if p.Color != side {
					moves = append(moves, Move{From: from, To: to})
				}
				break
			}
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func pseudoKingMoves(board *Board, from Square, side Color, rights CastlingRights) []Move {
	moves := []Move{}
	for _, o := range queenDirs {
		to := from.Offset(o.dr, o.df)
		if to.Valid() && !board.HasPieceOf(to, side) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return append(moves, pseudoCastlingMoves(board, from, side, rights)...)
}

// pseudoCastlingMoves checks every castling precondition except the final
// king-safety filter, which castling shares with all other moves.
func pseudoCastlingMoves(board *Board, from Square, side Color, rights CastlingRights) []Move {
	rank := homeRank(side)
	enemy := side.Opponent()
	if from != (Square{Rank: rank, File: kingHomeFile}) || IsSquareAttacked(board, from, enemy) {
		return nil
	}

	var moves []Move
	try := func(held bool, rookFile int, between []int, transit []int, kingTo int) {
		if !held {
			return
		}
		rook, ok := board.At(Square{Rank: rank, File: rookFile})
		if !ok || rook.Type != Rook || rook.Color != side {
			return
		}
		for _, f := range between {
			if board.HasPieceAt(Square{Rank: rank, File: f}) {
				return
			}
		}
		for _, f := range transit {
			if IsSquareAttacked(board, Square{Rank: rank, File: f}, enemy) {
				return
			}
		}
		moves = append(moves, Move{From: from, To: Square{Rank: rank, File: kingTo}, Castling: true})
	}

	try(rights.Kingside(side), kingsideRookFile, []int{5, 6}, []int{5, 6}, 6)
	try(rights.Queenside(side), queensideRookFile, []int{1, 2, 3}, []int{3, 2}, 2)
	return moves
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
