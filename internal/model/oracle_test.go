package model

import (
	"math/rand"
	"sort"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/google/go-cmp/cmp"
	nchess "github.com/notnil/chess"
)

// dtSquare converts a dragontoothmg square index (a1 = 0) to ours.
func dtSquare(i uint8) Square {
	return Square{Rank: 7 - int(i)/8, File: int(i) % 8}
}

func uniqueKeys(keys []string) []string {
	sort.Strings(keys)
	out := keys[:0]
	for i, k := range keys {
		if i == 0 || k != keys[i-1] {
			out = append(out, k)
		}
	}
	return out
}

func dtKeys(b *dragontoothmg.Board) []string {
	moves := b.GenerateLegalMoves()
	keys := make([]string, 0, len(moves))
	for _, m := range moves {
		keys = append(keys, dtSquare(m.From()).String()+dtSquare(m.To()).String())
	}
	return uniqueKeys(keys)
}

// perft walks both engines in lockstep and fails on the first node whose
// move sets differ. Promotions are compared by squares only.
func perft(t *testing.T, g *Game, dt *dragontoothmg.Board, depth int, path []string) int {
	t.Helper()

	ours := uniqueKeys(moveKeys(g.LegalMoves()))
	if diff := cmp.Diff(dtKeys(dt), ours); diff != "" {
		t.Fatalf("move sets differ after %q (-dragontoothmg +ours):\n%s", strings.Join(path, " "), diff)
	}
	if depth == 1 {
		return len(ours)
	}

	nodes := 0
	for _, m := range dt.GenerateLegalMoves() {
		if p := m.Promote(); p != dragontoothmg.Nothing && p != dragontoothmg.Queen {
			continue
		}
		key := dtSquare(m.From()).String() + dtSquare(m.To()).String()

		child := *g
		if !child.MakeMove(mv(key)) {
			t.Fatalf("MakeMove(%s) rejected after %q", key, strings.Join(path, " "))
		}
		unapply := dt.Apply(m)
		nodes += perft(t, &child, dt, depth-1, append(path, key))
		unapply()
	}
	return nodes
}

func TestPerft_StartingPosition(t *testing.T) {
	tests := []struct {
		depth int
		want  int
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
	}

	for _, tt := range tests {
		g := NewGame()
		dt := dragontoothmg.ParseFen(dragontoothmg.Startpos)

		if got := perft(t, g, &dt, tt.depth, nil); got != tt.want {
			t.Errorf("perft(%d) = %d, want %d", tt.depth, got, tt.want)
		}
	}
}

func TestPerft_AfterOpenings(t *testing.T) {
	tests := []struct {
		name  string
		moves []string
	}{
		{"en-passant available", []string{"e2e4", "a7a6", "e4e5", "d7d5"}},
		{"both sides ready to castle", []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6", "d2d3", "f8c5"}},
		{"queens out", []string{"d2d4", "d7d5", "c1f4", "c8f5", "d1d3", "d8d6", "b1c3", "b8c6"}},
		{"pinned pieces", []string{"e2e4", "e7e5", "d2d4", "f8b4", "c2c3", "d8h4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame()
			dt := dragontoothmg.ParseFen(dragontoothmg.Startpos)
			for _, s := range tt.moves {
				var found bool
				for _, m := range dt.GenerateLegalMoves() {
					if dtSquare(m.From()).String()+dtSquare(m.To()).String() == s {
						dt.Apply(m)
						found = true
						break
					}
				}
				if !found {
					t.Fatalf("dragontoothmg rejected %s", s)
				}
			}
			playMoves(t, g, tt.moves...)

			perft(t, g, &dt, 3, tt.moves)
		})
	}
}

func nchessKeys(moves []*nchess.Move) []string {
	keys := make([]string, 0, len(moves))
	for _, m := range moves {
		keys = append(keys, m.S1().String()+m.S2().String())
	}
	return uniqueKeys(keys)
}

func TestRandomPlayouts_MatchNotnilChess(t *testing.T) {
	const (
		games    = 25
		maxPlies = 300
	)
	rng := rand.New(rand.NewSource(20240611))

	for i := 0; i < games; i++ {
		g := NewGame()
		ref := nchess.NewGame()
		var played []string

		for ply := 0; ply < maxPlies; ply++ {
			ours := uniqueKeys(moveKeys(g.LegalMoves()))
			valid := ref.ValidMoves()
			if diff := cmp.Diff(nchessKeys(valid), ours); diff != "" {
				t.Fatalf("game %d: move sets differ after %q (-notnil +ours):\n%s", i, strings.Join(played, " "), diff)
			}

			if len(ours) == 0 {
				switch g.Status() {
				case Checkmate:
					if ref.Method() != nchess.Checkmate {
						t.Errorf("game %d: ours is checkmate, notnil says %s", i, ref.Method())
					}
				case Stalemate:
					if ref.Method() != nchess.Stalemate {
						t.Errorf("game %d: ours is stalemate, notnil says %s", i, ref.Method())
					}
				default:
					t.Errorf("game %d: no legal moves but status %s", i, g.Status())
				}
				break
			}
			// notnil ends games on its own draw rules, which we do not track
			if ref.Outcome() != nchess.NoOutcome {
				break
			}

			m := valid[rng.Intn(len(valid))]
			uci := m.String()
			if err := ref.Move(m); err != nil {
				t.Fatalf("game %d: notnil rejected its own move %s: %v", i, uci, err)
			}
			if !g.MakeMove(mv(uci)) {
				t.Fatalf("game %d: MakeMove(%s) rejected after %q", i, uci, strings.Join(played, " "))
			}
			played = append(played, uci)

			if m.Promo() != nchess.NoPieceType {
				board := g.Board()
				if p, _ := board.At(mv(uci).To); p.Type != mv(uci).Promotion {
					t.Fatalf("game %d: promotion %s produced %v", i, uci, p)
				}
			}
		}
	}
}
