package engine

import (
	"sort"

	gm "github.com/Aprax14/bitchess/chessmg"
)

// MoveClass is the ordering bucket of a move; higher classes are searched first.
type MoveClass uint8

const (
	ClassQuiet MoveClass = iota
	ClassCapture
	ClassCheck
	ClassPromotion
	ClassEvasion
	ClassPV
)

func (c MoveClass) String() string {
	switch c {
	case ClassPV:
		return "pv"
	case ClassEvasion:
		return "evasion"
	case ClassPromotion:
		return "promotion"
	case ClassCheck:
		return "check"
	case ClassCapture:
		return "capture"
	}
	return "quiet"
}

// Critical reports whether quiescence search follows moves of this class.
func (c MoveClass) Critical() bool { return c >= ClassCapture }

// classStride keeps every in-class score below the next class.
const classStride int64 = 1 << 36

// ScoredMove is a legal move with its ordering data.
type ScoredMove struct {
	Move  gm.Move
	Class MoveClass
	Score int64
	Next  gm.Board
}

func (sm ScoredMove) key() int64 { return int64(sm.Class)*classStride + sm.Score }

// OrderedMoves returns the legal moves of b, best-first. With onlyCritical set
// only evasions, promotions, checks and captures remain. pvHint, when legal and
// kept, comes first.
func OrderedMoves(b gm.Board, onlyCritical bool, pvHint gm.Move) []gm.Move {
	scored, _ := scoreMoves(b, onlyCritical, pvHint)
	out := make([]gm.Move, len(scored))
	for i, sm := range scored {
		out[i] = sm.Move
	}
	return out
}

// ScoreMoves is OrderedMoves keeping classes, scores and resulting boards.
func ScoreMoves(b gm.Board, onlyCritical bool, pvHint gm.Move) []ScoredMove {
	scored, _ := scoreMoves(b, onlyCritical, pvHint)
	return scored
}

// scoreMoves also reports whether b has any legal move, which the filtered
// list alone cannot tell.
func scoreMoves(b gm.Board, onlyCritical bool, pvHint gm.Move) ([]ScoredMove, bool) {
	us, them := b.Turn, b.Turn.Other()
	inCheck := b.InCheck()
	defended := b.DefendedSquares(them)

	pseudo := b.PseudoLegalMoves()
	scored := make([]ScoredMove, 0, len(pseudo))
	anyLegal := false
	for _, m := range pseudo {
		next := b.Apply(m)
		if next.Position.InCheck(us) {
			continue
		}
		anyLegal = true

		sm := ScoredMove{Move: m, Next: next, Score: moveScore(&b, m, defended)}
		switch {
		case inCheck:
			sm.Class = ClassEvasion
		case m.Kind == gm.MovePromote:
			sm.Class = ClassPromotion
		case next.Position.InCheck(them):
			sm.Class = ClassCheck
		case b.IsCapture(m):
			sm.Class = ClassCapture
		default:
			sm.Class = ClassQuiet
		}
		if onlyCritical && !sm.Class.Critical() {
			continue
		}
		if m == pvHint {
			sm.Class = ClassPV
		}
		scored = append(scored, sm)
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].key() > scored[j].key() })
	return scored, anyLegal
}

// moveScore is the in-class ordering score. defended holds the opponent's
// pieces that another opponent piece covers.
func moveScore(b *gm.Board, m gm.Move, defended gm.Bitboard) int64 {
	switch m.Kind {
	case gm.MoveCastle:
		return int64(CastlingValue)
	case gm.MovePromote:
		base := standardScore(b, gm.NewStandard(m.Piece, m.From, m.To), defended)
		if !b.IsAttacked(m.To, m.Piece.Color.Other()) {
			base += int64(PieceValue[m.Promotion] - PieceValue[gm.Pawn])
		}
		return base
	}
	return standardScore(b, m, defended)
}

func standardScore(b *gm.Board, m gm.Move, defended gm.Bitboard) int64 {
	victim, ok := b.Captured(m)
	if !ok {
		return quietScore(b, m)
	}
	return mvvLva(victim, m.Piece.Kind, defended.Has(m.To))
}

// mvvLva is victim minus attacker; losing trades are penalised further when
// the victim is defended and replaced by the victim's value when it is not.
func mvvLva(victim, attacker gm.Kind, victimDefended bool) int64 {
	v := int64(PieceValue[victim]) - int64(PieceValue[attacker])
	if v >= 0 {
		return v
	}
	if victimDefended {
		return v * 3 / 2
	}
	return int64(PieceValue[victim])
}

// quietScore is how much the moved piece's square coverage improves.
func quietScore(b *gm.Board, m gm.Move) int64 {
	before := attackedSquaresScore(&b.Position, m.Piece, m.From.Bitboard())
	after := attackedSquaresScore(&b.Position, m.Piece, m.To.Bitboard())
	return int64(after - before)
}
