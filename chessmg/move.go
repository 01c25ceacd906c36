package chessmg

// MoveKind tags the Move variant.
type MoveKind uint8

const (
	MoveStandard MoveKind = iota
	MoveCastle
	MovePromote
)

// Move is a comparable tagged variant. Build it with NewStandard, NewCastle
// or NewPromotion so that fields unused by the variant stay zero.
// Castle moves carry the king's origin and destination in From and To.
type Move struct {
	Piece     Piece
	Kind      MoveKind
	From      Square
	To        Square
	Side      CastleSide
	Promotion Kind
}

// NoMove is the zero Move, used as an absent PV hint.
var NoMove Move

// NewStandard builds a plain move or capture, including en passant.
func NewStandard(pc Piece, from, to Square) Move {
	return Move{Piece: pc, Kind: MoveStandard, From: from, To: to}
}

// NewCastle builds a castling move for color c.
func NewCastle(c Color, side CastleSide) Move {
	cs := castleSquares[c][side]
	return Move{Piece: Piece{c, King}, Kind: MoveCastle, From: cs.kingFrom, To: cs.kingTo, Side: side}
}

// NewPromotion builds a pawn move onto the last rank promoting to kind.
func NewPromotion(c Color, from, to Square, kind Kind) Move {
	return Move{Piece: Piece{c, Pawn}, Kind: MovePromote, From: from, To: to, Promotion: kind}
}

// IsZero reports whether m is NoMove.
func (m Move) IsZero() bool { return m == NoMove }

// String returns coordinate notation: "e2e4", "e7e8q", "e1g1".
func (m Move) String() string {
	if m.IsZero() {
		return "0000"
	}
	s := m.From.String() + m.To.String()
	if m.Kind == MovePromote {
		s += string("pnbrqk"[m.Promotion])
	}
	return s
}

type castleLayout struct {
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	// empty must be vacant; safe must not be attacked (king start included).
	empty, safe Bitboard
}

var castleSquares = [2][2]castleLayout{
	White: {
		Kingside: {
			kingFrom: E1, kingTo: G1, rookFrom: H1, rookTo: F1,
			empty: F1.Bitboard() | G1.Bitboard(),
			safe:  E1.Bitboard() | F1.Bitboard() | G1.Bitboard(),
		},
		Queenside: {
			kingFrom: E1, kingTo: C1, rookFrom: A1, rookTo: D1,
			empty: B1.Bitboard() | C1.Bitboard() | D1.Bitboard(),
			safe:  E1.Bitboard() | D1.Bitboard() | C1.Bitboard(),
		},
	},
	Black: {
		Kingside: {
			kingFrom: E8, kingTo: G8, rookFrom: H8, rookTo: F8,
			empty: F8.Bitboard() | G8.Bitboard(),
			safe:  E8.Bitboard() | F8.Bitboard() | G8.Bitboard(),
		},
		Queenside: {
			kingFrom: E8, kingTo: C8, rookFrom: A8, rookTo: D8,
			empty: B8.Bitboard() | C8.Bitboard() | D8.Bitboard(),
			safe:  E8.Bitboard() | D8.Bitboard() | C8.Bitboard(),
		},
	},
}

// RookHome returns the original rook square for color c on the given wing.
func RookHome(c Color, side CastleSide) Square { return castleSquares[c][side].rookFrom }
