package model

import "strings"

// Move is a relocation from one square to another. Only From and To identify
// a move; the flags are filled in by the generator so that a caller can submit
// just an origin and destination.
type Move struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
	EnPassant bool      `json:"enPassant,omitempty"`
	Castling  bool      `json:"castling,omitempty"`
}

func (m Move) Equal(other Move) bool {
	return m.From == other.From && m.To == other.To
}

func (m Move) IsPromotion() bool {
	return m.Promotion != ""
}

func (m Move) IsSpecial() bool {
	return m.Castling || m.EnPassant || m.IsPromotion()
}

// String formats the move in coordinate form, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.IsPromotion() {
		s += strings.ToLower(string(m.Promotion.Letter()))
	}
	return s
}

// Ply records one applied move together with what it displaced. It is kept by
// the host layer for move lists and captured-piece trays.
type Ply struct {
	Move     Move   `json:"move"`
	Piece    Piece  `json:"piece"`
	Captured *Piece `json:"captured"`
	Notation string `json:"notation"`
}
