package model

import (
	"encoding/json"
	"fmt"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

// Letter returns the upper-case piece letter, or 0 for an unknown type.
func (p PieceType) Letter() byte {
	switch p {
	case King:
		return 'K'
	case Queen:
		return 'Q'
	case Rook:
		return 'R'
	case Bishop:
		return 'B'
	case Knight:
		return 'N'
	case Pawn:
		return 'P'
	}
	return 0
}

// IsPromotionTarget reports whether a pawn may promote to p.
func (p PieceType) IsPromotionTarget() bool {
	return p == Queen || p == Rook || p == Bishop || p == Knight
}

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// Piece is an immutable value. The zero Piece means "no piece".
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) IsZero() bool {
	return p.Type == ""
}

func (p Piece) String() string {
	if p.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%s %s", p.Color, p.Type)
}

const BoardSize = 8

var backRank = [BoardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// Board is an 8x8 grid of optional pieces with no rule knowledge.
//
// Board is a plain value: assigning it copies the whole grid, which is how
// scratch positions are made. Reads of off-board squares report an empty
// square and writes to off-board squares are dropped, so no method panics.
type Board struct {
	grid [BoardSize][BoardSize]Piece
}

// NewBoard returns a board set up in the standard starting position.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// EmptyBoard returns a board with no pieces on it.
func EmptyBoard() *Board {
	return &Board{}
}

func (b *Board) At(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return Piece{}, false
	}
	p := b.grid[sq.Rank][sq.File]
	return p, !p.IsZero()
}

func (b *Board) HasPieceAt(sq Square) bool {
	_, ok := b.At(sq)
	return ok
}

func (b *Board) HasPieceOf(sq Square, color Color) bool {
	p, ok := b.At(sq)
	return ok && p.Color == color
}

// MovePiece relocates whatever stands on m.From to m.To, overwriting the
// destination. En-passant captures and castling rooks are not handled here.
func (b *Board) MovePiece(m Move) {
	if !m.From.Valid() || !m.To.Valid() {
		return
	}
	b.grid[m.To.Rank][m.To.File] = b.grid[m.From.Rank][m.From.File]
	b.grid[m.From.Rank][m.From.File] = Piece{}
}

func (b *Board) SetPiece(sq Square, p Piece) {
	if sq.Valid() {
		b.grid[sq.Rank][sq.File] = p
	}
}

func (b *Board) ClearSquare(sq Square) {
	b.SetPiece(sq, Piece{})
}

func (b *Board) Clear() {
	b.grid = [BoardSize][BoardSize]Piece{}
}

// Reset restores the standard starting position.
func (b *Board) Reset() {
	b.Clear()
	for file := 0; file < BoardSize; file++ {
		b.grid[0][file] = Piece{Type: backRank[file], Color: Black}
		b.grid[1][file] = Piece{Type: Pawn, Color: Black}
		b.grid[6][file] = Piece{Type: Pawn, Color: White}
		b.grid[7][file] = Piece{Type: backRank[file], Color: White}
	}
}

// Rank returns a copy of row r. An out-of-range row is all empty.
func (b *Board) Rank(r int) [BoardSize]Piece {
	if r < 0 || r >= BoardSize {
		return [BoardSize]Piece{}
	}
	return b.grid[r]
}

func (b *Board) FindKing(color Color) (Square, bool) {
	for r := 0; r < BoardSize; r++ {
		for f := 0; f < BoardSize; f++ {
			p := b.grid[r][f]
			if p.Type == King && p.Color == color {
				return Square{Rank: r, File: f}, true
			}
		}
	}
	return Square{}, false
}

// MarshalJSON renders the grid as 8 rows of piece-or-null, rank 0 first.
func (b *Board) MarshalJSON() ([]byte, error) {
	rows := make([][]*Piece, BoardSize)
	for r := 0; r < BoardSize; r++ {
		rows[r] = make([]*Piece, BoardSize)
		for f := 0; f < BoardSize; f++ {
			if p := b.grid[r][f]; !p.IsZero() {
				rows[r][f] = &p
			}
		}
	}
	return json.Marshal(rows)
}
