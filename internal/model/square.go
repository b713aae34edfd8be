package model

import "fmt"

// Square is a (rank, file) pair. Rank 0 is Black's back rank, rank 7 is
// White's; file 0 is the a-file. Out-of-range squares are allowed as
// intermediate values while stepping along offsets.
type Square struct {
	Rank int `json:"rank"`
	File int `json:"file"`
}

func (s Square) Valid() bool {
	return s.Rank >= 0 && s.Rank < BoardSize && s.File >= 0 && s.File < BoardSize
}

func (s Square) Offset(dr, df int) Square {
	return Square{Rank: s.Rank + dr, File: s.File + df}
}

// String returns algebraic notation such as "e4".
func (s Square) String() string {
	if !s.Valid() {
		return "??"
	}
	return fmt.Sprintf("%c%c", 'a'+s.File, '8'-s.Rank)
}

// ParseSquare parses algebraic notation such as "e4".
func ParseSquare(v string) (Square, error) {
	if len(v) != 2 || v[0] < 'a' || v[0] > 'h' || v[1] < '1' || v[1] > '8' {
		return Square{}, fmt.Errorf("invalid square %q", v)
	}
	return Square{Rank: int('8' - v[1]), File: int(v[0] - 'a')}, nil
}

// MustSquare is ParseSquare for literals known to be valid.
func MustSquare(v string) Square {
	sq, err := ParseSquare(v)
	if err != nil {
		panic(err)
	}
	return sq
}
