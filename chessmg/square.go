package chessmg

import (
	"errors"
	"fmt"
)

// Square is a board index: a1 = 0, h1 = 7, a8 = 56, h8 = 63.
type Square uint8

// NoSquare marks an absent square, e.g. no en-passant target.
const NoSquare Square = 64

// Named squares used by castling and tests.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
)

const (
	A8 Square = iota + 56
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

var ErrInvalidSquare = errors.New("invalid square")

// NewSquare builds a square from zero-based file and rank.
func NewSquare(file, rank int) Square { return Square(rank*8 + file) }

// File returns the zero-based file (a = 0).
func (s Square) File() int { return int(s) % 8 }

// Rank returns the zero-based rank (rank 1 = 0).
func (s Square) Rank() int { return int(s) / 8 }

// Bitboard returns the single-bit set for the square.
func (s Square) Bitboard() Bitboard {
	if s >= NoSquare {
		return Empty
	}
	return Bitboard(1) << s
}

// Valid reports whether s is on the board.
func (s Square) Valid() bool { return s < NoSquare }

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + s.File()), byte('1' + s.Rank())})
}

// ParseSquare converts "e4" (file letter case-insensitive) into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q: want file letter and rank digit", ErrInvalidSquare, s)
	}
	f := s[0]
	if f >= 'A' && f <= 'H' {
		f += 'a' - 'A'
	}
	if f < 'a' || f > 'h' {
		return NoSquare, fmt.Errorf("%w: %q: file out of range", ErrInvalidSquare, s)
	}
	r := s[1]
	if r < '1' || r > '8' {
		return NoSquare, fmt.Errorf("%w: %q: rank out of range", ErrInvalidSquare, s)
	}
	return NewSquare(int(f-'a'), int(r-'1')), nil
}
