package chessmg

// PseudoLegalMoves lists the side to move's moves that follow piece patterns
// and blocking rules, without checking king safety. Castling is included only
// when it is fully legal.
func (b Board) PseudoLegalMoves() []Move {
	return b.pseudoLegalInto(make([]Move, 0, 64))
}

func (b Board) pseudoLegalInto(dst []Move) []Move {
	us := b.Turn
	own, enemy := b.Occupied(us), b.Occupied(us.Other())
	lastRank := Rank8
	if us == Black {
		lastRank = Rank1
	}

	for _, k := range Kinds {
		pieces := b.pieces[us][k]
		for pieces != 0 {
			from := pieces.PopLSB()
			targets := Generate(k, us, from.Bitboard(), own, enemy)
			if k == Pawn && b.EnPassant.Valid() {
				targets |= PawnAttacks(us, from.Bitboard()) & b.EnPassant.Bitboard() &^ (own | enemy)
			}
			pc := Piece{us, k}
			for targets != 0 {
				to := targets.PopLSB()
				if k == Pawn && lastRank.Has(to) {
					for _, promo := range PromotionKinds {
						dst = append(dst, NewPromotion(us, from, to, promo))
					}
					continue
				}
				dst = append(dst, NewStandard(pc, from, to))
			}
		}
	}
	return b.castlingInto(dst)
}

func (b Board) castlingInto(dst []Move) []Move {
	us := b.Turn
	occ := b.AllOccupied()
	for _, side := range [2]CastleSide{Kingside, Queenside} {
		if !b.Castling[us].Allows(side) {
			continue
		}
		cs := castleSquares[us][side]
		if occ&cs.empty != 0 {
			continue
		}
		if !b.pieces[us][King].Has(cs.kingFrom) || !b.pieces[us][Rook].Has(cs.rookFrom) {
			continue
		}
		if b.anyAttacked(cs.safe, us.Other()) {
			continue
		}
		dst = append(dst, NewCastle(us, side))
	}
	return dst
}

func (b Board) anyAttacked(squares Bitboard, by Color) bool {
	for squares != 0 {
		if b.IsAttacked(squares.PopLSB(), by) {
			return true
		}
	}
	return false
}

// LegalMoves lists every legal move for the side to move. A move is legal when
// applying it leaves the mover's king unattacked.
func (b Board) LegalMoves() []Move {
	moves := b.pseudoLegalInto(make([]Move, 0, 64))
	legal := moves[:0]
	for _, m := range moves {
		if b.IsLegal(m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// IsLegal reports whether a pseudo-legal move keeps the mover's king safe.
func (b Board) IsLegal(m Move) bool {
	next := b.Apply(m)
	return !next.Position.InCheck(m.Piece.Color)
}

// HasLegalMoves reports whether the side to move can move at all.
func (b Board) HasLegalMoves() bool {
	for _, m := range b.pseudoLegalInto(make([]Move, 0, 64)) {
		if b.IsLegal(m) {
			return true
		}
	}
	return false
}

// InCheckmate reports whether the side to move is mated.
func (b Board) InCheckmate() bool { return b.InCheck() && !b.HasLegalMoves() }

// InStalemate reports whether the side to move has no moves and is not in check.
func (b Board) InStalemate() bool { return !b.InCheck() && !b.HasLegalMoves() }

// GivesCheck reports whether m leaves the opponent's king attacked.
func (b Board) GivesCheck(m Move) bool {
	next := b.Apply(m)
	return next.Position.InCheck(m.Piece.Color.Other())
}

// IsCapture reports whether m takes a piece, en passant included.
func (b Board) IsCapture(m Move) bool {
	if m.Kind == MoveCastle {
		return false
	}
	if b.Occupied(m.Piece.Color.Other()).Has(m.To) {
		return true
	}
	return m.Piece.Kind == Pawn && m.To == b.EnPassant && m.From.File() != m.To.File()
}

// Captured returns the kind taken by m, if any.
func (b Board) Captured(m Move) (Kind, bool) {
	if !b.IsCapture(m) {
		return 0, false
	}
	if pc, ok := b.PieceAt(m.To); ok {
		return pc.Kind, true
	}
	return Pawn, true
}
