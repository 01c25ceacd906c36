package chessmg

import (
	"fmt"
	"math/bits"
)

// Color is the side owning a piece.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Kind is a colorless piece type. The values index Position's bitboard arrays.
type Kind uint8

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// KindCount is the number of piece kinds.
const KindCount = 6

// Kinds lists every kind in index order.
var Kinds = [KindCount]Kind{Pawn, Knight, Bishop, Rook, Queen, King}

// PromotionKinds lists the kinds a pawn may promote to.
var PromotionKinds = [4]Kind{Knight, Bishop, Rook, Queen}

func (k Kind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Piece is an immutable (color, kind) pair.
type Piece struct {
	Color Color
	Kind  Kind
}

// NewPiece combines a side and a kind.
func NewPiece(c Color, k Kind) Piece { return Piece{Color: c, Kind: k} }

// Char returns the FEN letter of the piece: uppercase for White, lowercase for Black.
func (p Piece) Char() byte {
	c := "pnbrqk"[p.Kind]
	if p.Color == White {
		c -= 'a' - 'A'
	}
	return c
}

func (p Piece) String() string { return p.Color.String() + " " + p.Kind.String() }

// pieceFromChar converts a FEN letter into a Piece.
func pieceFromChar(ch byte) (Piece, bool) {
	switch ch {
	case 'P':
		return Piece{White, Pawn}, true
	case 'N':
		return Piece{White, Knight}, true
	case 'B':
		return Piece{White, Bishop}, true
	case 'R':
		return Piece{White, Rook}, true
	case 'Q':
		return Piece{White, Queen}, true
	case 'K':
		return Piece{White, King}, true
	case 'p':
		return Piece{Black, Pawn}, true
	case 'n':
		return Piece{Black, Knight}, true
	case 'b':
		return Piece{Black, Bishop}, true
	case 'r':
		return Piece{Black, Rook}, true
	case 'q':
		return Piece{Black, Queen}, true
	case 'k':
		return Piece{Black, King}, true
	}
	return Piece{}, false
}

// Bitboard is a 64-bit square set; bit i is square i.
type Bitboard uint64

// Empty is the bitboard with no squares set.
const Empty Bitboard = 0

// Has reports whether sq is set.
func (b Bitboard) Has(sq Square) bool { return b&sq.Bitboard() != 0 }

// Count returns the number of set squares.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// LSB returns the lowest set square. The bitboard must not be empty.
func (b Bitboard) LSB() Square { return Square(bits.TrailingZeros64(uint64(b))) }

// MSB returns the highest set square. The bitboard must not be empty.
func (b Bitboard) MSB() Square { return Square(63 - bits.LeadingZeros64(uint64(b))) }

// PopLSB removes the lowest set square and returns it.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// Squares lists the set squares in ascending order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	for b != 0 {
		out = append(out, b.PopLSB())
	}
	return out
}

// String draws the bitboard rank 8 first, as the board is printed.
func (b Bitboard) String() string {
	buf := make([]byte, 0, 8*17)
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.Has(NewSquare(file, rank)) {
				buf = append(buf, '1')
			} else {
				buf = append(buf, '.')
			}
			if file < 7 {
				buf = append(buf, ' ')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

// File and rank masks.
const (
	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = FileA << 1
	FileG Bitboard = FileA << 6
	FileH Bitboard = FileA << 7

	Rank1 Bitboard = 0xFF
	Rank2 Bitboard = Rank1 << 8
	Rank4 Bitboard = Rank1 << 24
	Rank5 Bitboard = Rank1 << 32
	Rank7 Bitboard = Rank1 << 48
	Rank8 Bitboard = Rank1 << 56

	notFileA  = ^FileA
	notFileH  = ^FileH
	notFileAB = ^(FileA | FileB)
	notFileGH = ^(FileG | FileH)
)

// CastleRights is one side's castling permission.
type CastleRights uint8

const (
	CastleNone CastleRights = iota
	CastleKingside
	CastleQueenside
	CastleBoth
)

// Allows reports whether the rights include the given side.
func (r CastleRights) Allows(side CastleSide) bool {
	switch side {
	case Kingside:
		return r == CastleKingside || r == CastleBoth
	case Queenside:
		return r == CastleQueenside || r == CastleBoth
	}
	return false
}

// Without removes one side from the rights.
func (r CastleRights) Without(side CastleSide) CastleRights {
	switch {
	case side == Kingside && r == CastleBoth:
		return CastleQueenside
	case side == Kingside && r == CastleKingside:
		return CastleNone
	case side == Queenside && r == CastleBoth:
		return CastleKingside
	case side == Queenside && r == CastleQueenside:
		return CastleNone
	}
	return r
}

func (r CastleRights) String() string {
	switch r {
	case CastleKingside:
		return "KingsideOnly"
	case CastleQueenside:
		return "QueensideOnly"
	case CastleBoth:
		return "Both"
	}
	return "None"
}

// CastleSide selects the king or queen wing.
type CastleSide uint8

const (
	Kingside CastleSide = iota
	Queenside
)

func (s CastleSide) String() string {
	if s == Kingside {
		return "O-O"
	}
	return "O-O-O"
}
