package chessmg

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMove = errors.New("invalid move")
	ErrIllegalMove = errors.New("illegal move")
)

// ParseMove resolves coordinate notation ("e2e4", "e7e8q", "e1g1") against
// the legal moves of b.
func (b Board) ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q: want from, to and optional promotion", ErrInvalidMove, s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrInvalidMove, s, err)
	}
	promo := Kind(0)
	if len(s) == 5 {
		pc, ok := pieceFromChar(s[4] | 0x20)
		if !ok || pc.Kind == Pawn || pc.Kind == King {
			return NoMove, fmt.Errorf("%w: %q: bad promotion piece", ErrInvalidMove, s)
		}
		promo = pc.Kind
	}

	pc, ok := b.PieceAt(from)
	if !ok {
		return NoMove, fmt.Errorf("%w: %s: no piece on %s", ErrIllegalMove, s, from)
	}
	if pc.Color != b.Turn {
		return NoMove, fmt.Errorf("%w: %s: %s to move", ErrIllegalMove, s, b.Turn)
	}

	var m Move
	switch {
	case promo != 0:
		m = NewPromotion(pc.Color, from, to, promo)
	case pc.Kind == King && from == castleSquares[pc.Color][Kingside].kingFrom && to == castleSquares[pc.Color][Kingside].kingTo:
		m = NewCastle(pc.Color, Kingside)
	case pc.Kind == King && from == castleSquares[pc.Color][Queenside].kingFrom && to == castleSquares[pc.Color][Queenside].kingTo:
		m = NewCastle(pc.Color, Queenside)
	default:
		m = NewStandard(pc, from, to)
	}
	return m, nil
}

// MakeManualMove validates m fully and applies it. Rejections wrap ErrIllegalMove.
func (b Board) MakeManualMove(m Move) (Board, error) {
	if m.Piece.Color != b.Turn {
		return b, fmt.Errorf("%w: %s: %s to move", ErrIllegalMove, m, b.Turn)
	}
	if b.IsDrawBy50() {
		return b, fmt.Errorf("%w: %s: fifty-move limit reached", ErrIllegalMove, m)
	}
	if !b.PieceBoard(m.Piece).Has(m.From) {
		return b, fmt.Errorf("%w: %s: no %s on %s", ErrIllegalMove, m, m.Piece, m.From)
	}
	for _, legal := range b.LegalMoves() {
		if legal == m {
			return b.Apply(m), nil
		}
	}
	return b, fmt.Errorf("%w: %s", ErrIllegalMove, m)
}

// Play parses and applies a coordinate-notation move.
func (b Board) Play(s string) (Board, error) {
	m, err := b.ParseMove(s)
	if err != nil {
		return b, err
	}
	return b.MakeManualMove(m)
}
