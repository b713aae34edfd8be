package model

type offset struct{ dr, df int }

var (
	knightOffsets = []offset{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	rookDirs      = []offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirs    = []offset{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	// queenDirs lists the orthogonal directions first; isAttackedBySlider
	// relies on that order.
	queenDirs = append(append([]offset{}, rookDirs...), bishopDirs...)
)

// pawnForward is the rank step a pawn of color c advances by.
func pawnForward(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

// IsSquareAttacked reports whether any piece of attacker could capture on
// target given the current occupancy.
func IsSquareAttacked(board *Board, target Square, attacker Color) bool {
	return isAttackedByPawn(board, target, attacker) ||
		isAttackedByKnight(board, target, attacker) ||
		isAttackedBySlider(board, target, attacker)
}

func isAttackedByPawn(board *Board, target Square, attacker Color) bool {
	// an attacking pawn stands one step behind target from its own point of view
	dr := -pawnForward(attacker)
	for _, df := range []int{-1, 1} {
		p, ok := board.At(target.Offset(dr, df))
		if ok && p.Type == Pawn && p.Color == attacker {
			return true
		}
	}
	return false
}

func isAttackedByKnight(board *Board, target Square, attacker Color) bool {
	for _, o := range knightOffsets {
		p, ok := board.At(target.Offset(o.dr, o.df))
		if ok && p.Type == Knight && p.Color == attacker {
			return true
		}
	}
	return false
}

// isAttackedBySlider walks every queen direction out from target. The first
// piece met blocks the ray; it attacks if it is the attacker's king at
// distance one, or a rook/queen on an orthogonal ray, or a bishop/queen on a
// diagonal one.
func isAttackedBySlider(board *Board, target Square, attacker Color) bool {
	for i, o := range queenDirs {
		diagonal := i >= len(rookDirs)
		sq := target.Offset(o.dr, o.df)
		for distance := 1; sq.Valid(); distance++ {
			p, ok := board.At(sq)
			if ok {
				if p.Color == attacker {
					switch {
					case p.Type == King && distance == 1:
						return true
					case p.Type == Queen:
						return true
					case p.Type == Rook && !diagonal:
						return true
					case p.Type == Bishop && diagonal:
						return true
					}
				}
				break
			}
			sq = sq.Offset(o.dr, o.df)
		}
	}
	return false
}
