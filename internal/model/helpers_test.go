package model

import (
	"sort"
	"testing"
)

var (
	wK = Piece{Type: King, Color: White}
	wQ = Piece{Type: Queen, Color: White}
	wR = Piece{Type: Rook, Color: White}
	wB = Piece{Type: Bishop, Color: White}
	wN = Piece{Type: Knight, Color: White}
	wP = Piece{Type: Pawn, Color: White}
	bK = Piece{Type: King, Color: Black}
	bQ = Piece{Type: Queen, Color: Black}
	bR = Piece{Type: Rook, Color: Black}
	bB = Piece{Type: Bishop, Color: Black}
	bN = Piece{Type: Knight, Color: Black}
	bP = Piece{Type: Pawn, Color: Black}
)

// boardWith builds a board holding exactly the given pieces.
func boardWith(pieces map[string]Piece) Board {
	b := EmptyBoard()
	for sq, p := range pieces {
		b.SetPiece(MustSquare(sq), p)
	}
	return *b
}

// mv parses coordinate notation such as "e2e4" or "e7e8n".
func mv(s string) Move {
	m := Move{From: MustSquare(s[0:2]), To: MustSquare(s[2:4])}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			m.Promotion = Queen
		case 'r':
			m.Promotion = Rook
		case 'b':
			m.Promotion = Bishop
		case 'n':
			m.Promotion = Knight
		}
	}
	return m
}

// playMoves applies each move and fails the test on the first rejection.
func playMoves(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, s := range moves {
		if !g.MakeMove(mv(s)) {
			t.Fatalf("MakeMove(%s) = false, want true", s)
		}
	}
}

// moveKeys returns the sorted from-to strings of moves.
func moveKeys(moves []Move) []string {
	keys := make([]string, 0, len(moves))
	for _, m := range moves {
		keys = append(keys, m.From.String()+m.To.String())
	}
	sort.Strings(keys)
	return keys
}

func hasMove(moves []Move, s string) (Move, bool) {
	want := mv(s)
	for _, m := range moves {
		if m.Equal(want) {
			return m, true
		}
	}
	return Move{}, false
}
