package engine

import (
	gm "github.com/Aprax14/bitchess/chessmg"
)

// Evaluation holds independent tallies for both sides.
type Evaluation struct {
	White int32
	Black int32
}

// Value is the position score from White's point of view.
func (e Evaluation) Value() Score { return e.White - e.Black }

func (e *Evaluation) add(c gm.Color, v int32) {
	if c == gm.White {
		e.White += v
	} else {
		e.Black += v
	}
}

// Evaluate scores material, covered squares and central occupancy for both sides.
func Evaluate(b gm.Board) Evaluation {
	var eval Evaluation
	for c := gm.White; c <= gm.Black; c++ {
		for _, k := range gm.Kinds {
			bb := b.Pieces(c, k)
			if bb == 0 {
				continue
			}
			pc := gm.NewPiece(c, k)
			eval.add(c, int32(bb.Count())*PieceValue[k])
			eval.add(c, attackedSquaresScore(&b.Position, pc, bb))

			central := bb & CentralMask
			for central != 0 {
				eval.add(c, SquareValue[central.PopLSB()])
			}
		}
	}
	return eval
}

// coverage returns the empty or enemy squares pieces of pc on origin reach.
// Pawns count their diagonals only.
func coverage(p *gm.Position, pc gm.Piece, origin gm.Bitboard) gm.Bitboard {
	own := p.Occupied(pc.Color)
	if pc.Kind == gm.Pawn {
		return gm.PawnAttacks(pc.Color, origin) &^ own
	}
	return gm.Generate(pc.Kind, pc.Color, origin, own, p.Occupied(pc.Color.Other()))
}

// attackedSquaresScore sums the value of every square pc on origin covers:
// a constant per empty square, the attacked value of an enemy piece otherwise.
// origin may hold several pieces of the same kind.
func attackedSquaresScore(p *gm.Position, pc gm.Piece, origin gm.Bitboard) int32 {
	covered := coverage(p, pc, origin)
	enemy := p.Occupied(pc.Color.Other())

	score := int32((covered &^ enemy).Count()) * AttackedEmptySquareValue
	for _, k := range gm.Kinds {
		if n := (covered & p.Pieces(pc.Color.Other(), k)).Count(); n > 0 {
			score += int32(n) * AttackedValue[k]
		}
	}
	return score
}
