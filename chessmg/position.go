package chessmg

import (
	"fmt"
	"strings"
)

// Position holds one bitboard per color and piece kind.
type Position struct {
	pieces [2][KindCount]Bitboard
}

// Pieces returns the bitboard of pieces of color c and kind k.
func (p *Position) Pieces(c Color, k Kind) Bitboard { return p.pieces[c][k] }

// PieceBoard returns the bitboard for p.
func (p *Position) PieceBoard(pc Piece) Bitboard { return p.pieces[pc.Color][pc.Kind] }

// Occupied returns every square held by color c.
func (p *Position) Occupied(c Color) Bitboard {
	b := p.pieces[c]
	return b[Pawn] | b[Knight] | b[Bishop] | b[Rook] | b[Queen] | b[King]
}

// AllOccupied returns every occupied square.
func (p *Position) AllOccupied() Bitboard { return p.Occupied(White) | p.Occupied(Black) }

// PieceAt returns the piece on sq, if any.
func (p *Position) PieceAt(sq Square) (Piece, bool) {
	bb := sq.Bitboard()
	for c := White; c <= Black; c++ {
		for _, k := range Kinds {
			if p.pieces[c][k]&bb != 0 {
				return Piece{c, k}, true
			}
		}
	}
	return Piece{}, false
}

// MustPieceAt is PieceAt for squares bookkeeping guarantees are occupied.
func (p *Position) MustPieceAt(sq Square) Piece {
	pc, ok := p.PieceAt(sq)
	if !ok {
		panic(fmt.Sprintf("chessmg: no piece on %s\n%s", sq, p))
	}
	return pc
}

// KingSquare returns the square of color c's king, or NoSquare if it is missing.
func (p *Position) KingSquare(c Color) Square {
	k := p.pieces[c][King]
	if k == 0 {
		return NoSquare
	}
	return k.LSB()
}

// Put places pc on sq. The square must be empty.
func (p *Position) Put(pc Piece, sq Square) { p.pieces[pc.Color][pc.Kind] |= sq.Bitboard() }

// Remove clears sq on every bitboard.
func (p *Position) Remove(sq Square) {
	mask := ^sq.Bitboard()
	for c := range p.pieces {
		for k := range p.pieces[c] {
			p.pieces[c][k] &= mask
		}
	}
}

// removeColor clears sq on color c's bitboards and reports whether anything was there.
func (p *Position) removeColor(c Color, sq Square) bool {
	bb := sq.Bitboard()
	hit := false
	for k := range p.pieces[c] {
		if p.pieces[c][k]&bb != 0 {
			hit = true
			p.pieces[c][k] &^= bb
		}
	}
	return hit
}

// AttackedSquares returns every square color c covers, own pieces included.
func (p *Position) AttackedSquares(c Color) Bitboard {
	occ := p.AllOccupied()
	var out Bitboard
	for _, k := range Kinds {
		out |= Attacks(k, c, p.pieces[c][k], occ)
	}
	return out
}

// IsAttacked reports whether color by attacks sq.
func (p *Position) IsAttacked(sq Square, by Color) bool {
	bb := sq.Bitboard()
	occ := p.AllOccupied()
	b := &p.pieces[by]
	if PawnAttacks(by.Other(), bb)&b[Pawn] != 0 {
		return true
	}
	if KnightAttacks(bb)&b[Knight] != 0 {
		return true
	}
	if KingAttacks(bb)&b[King] != 0 {
		return true
	}
	if BishopAttacks(sq, occ)&(b[Bishop]|b[Queen]) != 0 {
		return true
	}
	return RookAttacks(sq, occ)&(b[Rook]|b[Queen]) != 0
}

// AttackersOf returns the pieces of color by attacking sq.
func (p *Position) AttackersOf(sq Square, by Color) Bitboard {
	bb := sq.Bitboard()
	occ := p.AllOccupied()
	b := &p.pieces[by]
	return PawnAttacks(by.Other(), bb)&b[Pawn] |
		KnightAttacks(bb)&b[Knight] |
		KingAttacks(bb)&b[King] |
		BishopAttacks(sq, occ)&(b[Bishop]|b[Queen]) |
		RookAttacks(sq, occ)&(b[Rook]|b[Queen])
}

// DefendedSquares returns own pieces of color c that another own piece covers.
func (p *Position) DefendedSquares(c Color) Bitboard {
	return p.AttackedSquares(c) & p.Occupied(c)
}

// InCheck reports whether color c's king is attacked.
func (p *Position) InCheck(c Color) bool {
	k := p.KingSquare(c)
	if k == NoSquare {
		return false
	}
	return p.IsAttacked(k, c.Other())
}

// Validate reports overlapping bitboards or a missing or duplicated king.
func (p *Position) Validate() error {
	var seen Bitboard
	for c := White; c <= Black; c++ {
		for _, k := range Kinds {
			bb := p.pieces[c][k]
			if seen&bb != 0 {
				return fmt.Errorf("overlapping pieces on %v", (seen & bb).Squares())
			}
			seen |= bb
		}
		if n := p.pieces[c][King].Count(); n != 1 {
			return fmt.Errorf("%s has %d kings", c, n)
		}
	}
	return nil
}

// Placement returns the FEN piece-placement field.
func (p *Position) Placement() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc, ok := p.PieceAt(NewSquare(file, rank))
			if !ok {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// String prints the board rank 8 first with file and rank labels.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			if pc, ok := p.PieceAt(NewSquare(file, rank)); ok {
				sb.WriteByte(pc.Char())
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
