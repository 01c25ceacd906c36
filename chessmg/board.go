package chessmg

import (
	"fmt"
)

// StartFEN is the standard initial position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Board is a complete game state. It is a value: Apply returns a new Board
// and never touches the receiver, so sibling search branches can share a parent.
type Board struct {
	Position
	Turn      Color
	Castling  [2]CastleRights
	EnPassant Square
	// HalfMoves counts plies since the last pawn move or capture.
	HalfMoves int
	// FullMoves is the FEN move number, incremented after Black moves.
	FullMoves int
	// Plies counts every applied move.
	Plies int
}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	b, err := ParseFEN(StartFEN)
	if err != nil {
		panic(err)
	}
	return b
}

// InCheck reports whether the side to move is in check.
func (b Board) InCheck() bool { return b.Position.InCheck(b.Turn) }

// Apply plays m and returns the resulting board. It trusts that m is at
// least pseudo-legal for the side to move.
func (b Board) Apply(m Move) Board {
	us, them := m.Piece.Color, m.Piece.Color.Other()
	next := b
	captured := false

	switch m.Kind {
	case MoveCastle:
		cs := castleSquares[us][m.Side]
		next.move(Piece{us, King}, cs.kingFrom, cs.kingTo)
		next.move(Piece{us, Rook}, cs.rookFrom, cs.rookTo)
	case MovePromote:
		captured = next.removeColor(them, m.To)
		next.lift(m.Piece, m.From)
		next.Put(Piece{us, m.Promotion}, m.To)
	default:
		captured = next.removeColor(them, m.To)
		if !captured && m.Piece.Kind == Pawn && m.To == b.EnPassant && m.From.File() != m.To.File() {
			victim := epVictim(us, m.To)
			if !next.removeColor(them, victim) {
				panic(fmt.Sprintf("chessmg: en passant %s without a pawn on %s", m, victim))
			}
			captured = true
		}
		next.move(m.Piece, m.From, m.To)
	}

	next.Turn = them
	next.EnPassant = next.enPassantTarget(m)
	next.Castling = updateCastling(b.Castling, m)

	if m.Piece.Kind == Pawn || captured {
		next.HalfMoves = 0
	} else {
		next.HalfMoves++
	}
	next.Plies++
	if us == Black {
		next.FullMoves++
	}
	return next
}

func (b *Board) lift(pc Piece, from Square) {
	bb := from.Bitboard()
	if b.pieces[pc.Color][pc.Kind]&bb == 0 {
		panic(fmt.Sprintf("chessmg: no %s on %s\n%s", pc, from, &b.Position))
	}
	b.pieces[pc.Color][pc.Kind] &^= bb
}

func (b *Board) move(pc Piece, from, to Square) {
	b.lift(pc, from)
	b.Put(pc, to)
}

// epVictim is the square of the pawn removed by an en-passant capture landing on to.
func epVictim(us Color, to Square) Square {
	if us == White {
		return to - 8
	}
	return to + 8
}

// enPassantTarget is set only after a double push that lands beside an enemy pawn.
func (b *Board) enPassantTarget(m Move) Square {
	if m.Kind != MoveStandard || m.Piece.Kind != Pawn {
		return NoSquare
	}
	diff := int(m.To) - int(m.From)
	if diff != 16 && diff != -16 {
		return NoSquare
	}
	landing := m.To.Bitboard()
	adjacent := (landing<<1)&notFileA | (landing>>1)&notFileH
	if adjacent&b.pieces[m.Piece.Color.Other()][Pawn] == 0 {
		return NoSquare
	}
	return Square((int(m.From) + int(m.To)) / 2)
}

func updateCastling(rights [2]CastleRights, m Move) [2]CastleRights {
	us, them := m.Piece.Color, m.Piece.Color.Other()
	switch m.Piece.Kind {
	case King:
		rights[us] = CastleNone
	case Rook:
		for _, side := range [2]CastleSide{Kingside, Queenside} {
			if m.From == RookHome(us, side) {
				rights[us] = rights[us].Without(side)
			}
		}
	}
	if m.Kind != MoveCastle {
		for _, side := range [2]CastleSide{Kingside, Queenside} {
			if m.To == RookHome(them, side) {
				rights[them] = rights[them].Without(side)
			}
		}
	}
	return rights
}

// IsDrawBy50 reports whether the fifty-move limit has been reached.
// The search does not act on it.
func (b Board) IsDrawBy50() bool { return b.HalfMoves >= 100 }

// String prints the board followed by the state fields.
func (b Board) String() string {
	return fmt.Sprintf("%s\nfen: %s\n", &b.Position, b.FEN())
}
