package model

// CastlingRights holds the four independent castling permissions. Rights are
// only ever cleared during a game.
type CastlingRights struct {
	WhiteKingside  bool `json:"whiteKingside"`
	WhiteQueenside bool `json:"whiteQueenside"`
	BlackKingside  bool `json:"blackKingside"`
	BlackQueenside bool `json:"blackQueenside"`
}

func AllCastlingRights() CastlingRights {
	return CastlingRights{true, true, true, true}
}

const (
	kingHomeFile      = 4
	kingsideRookFile  = 7
	queensideRookFile = 0
)

// homeRank is the back rank of the given side.
func homeRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}

func (cr CastlingRights) Kingside(c Color) bool {
	if c == White {
		return cr.WhiteKingside
	}
	return cr.BlackKingside
}

func (cr CastlingRights) Queenside(c Color) bool {
	if c == White {
		return cr.WhiteQueenside
	}
	return cr.BlackQueenside
}

// revokeColor clears both rights of c, used after a king move.
func (cr *CastlingRights) revokeColor(c Color) {
	if c == White {
		cr.WhiteKingside = false
		cr.WhiteQueenside = false
	} else {
		cr.BlackKingside = false
		cr.BlackQueenside = false
	}
}

// revokeRookSquare clears the right anchored on a rook home square. It is
// called for both the origin and the destination of every move, so a rook
// leaving home and a rook captured at home are handled alike.
func (cr *CastlingRights) revokeRookSquare(sq Square) {
	switch sq {
	case Square{Rank: 7, File: queensideRookFile}:
		cr.WhiteQueenside = false
	case Square{Rank: 7, File: kingsideRookFile}:
		cr.WhiteKingside = false
	case Square{Rank: 0, File: queensideRookFile}:
		cr.BlackQueenside = false
	case Square{Rank: 0, File: kingsideRookFile}:
		cr.BlackKingside = false
	}
}

// castleRookMove returns the rook relocation that accompanies a castling king
// move, keyed on the king's destination file.
func castleRookMove(king Move) (Move, bool) {
	r := king.From.Rank
	switch king.To.File {
	case 6:
		return Move{From: Square{Rank: r, File: kingsideRookFile}, To: Square{Rank: r, File: 5}}, true
	case 2:
		return Move{From: Square{Rank: r, File: queensideRookFile}, To: Square{Rank: r, File: 3}}, true
	}
	return Move{}, false
}
