package chessmg

import (
	"errors"
	"testing"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R b Kq - 12 40",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		if got := b.FEN(); got != fen {
			t.Fatalf("round trip: got %q want %q", got, fen)
		}
	}
}

func TestParseFENStartPosition(t *testing.T) {
	b := NewBoard()
	if b.Turn != White {
		t.Fatalf("turn: got %s want White", b.Turn)
	}
	if b.Castling != [2]CastleRights{CastleBoth, CastleBoth} {
		t.Fatalf("castling: got %v", b.Castling)
	}
	if b.EnPassant != NoSquare {
		t.Fatalf("en passant: got %s", b.EnPassant)
	}
	if got := b.AllOccupied().Count(); got != 32 {
		t.Fatalf("occupied: got %d want 32", got)
	}
	if pc := b.MustPieceAt(sq("d8")); pc != NewPiece(Black, Queen) {
		t.Fatalf("d8: got %s", pc)
	}
	if pc := b.MustPieceAt(E1); pc != NewPiece(White, King) {
		t.Fatalf("e1: got %s", pc)
	}
	if _, ok := b.PieceAt(sq("e4")); ok {
		t.Fatalf("e4 should be empty")
	}
}

func TestParseFENRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		field string
	}{
		{"too few fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -", "record"},
		{"too many fields", StartFEN + " 7", "record"},
		{"unknown piece", "rnbqkbnr/ppppxppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", "placement"},
		{"no black king", "rnbq1bnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQ - 0 1", "placement"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1", "side to move"},
		{"bad castling token", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KX - 0 1", "castling"},
		{"repeated castling token", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KK - 0 1", "castling"},
		{"bad en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e9 0 1", "en passant"},
		{"en passant on wrong rank", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1", "en passant"},
		{"non-numeric halfmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1", "halfmove clock"},
		{"negative halfmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1", "halfmove clock"},
		{"zero fullmove", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0", "fullmove number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, ErrInvalidFEN) {
				t.Fatalf("error %v does not match ErrInvalidFEN", err)
			}
			var fe *FENError
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a *FENError", err)
			}
			if fe.Field != tc.field {
				t.Fatalf("field: got %q want %q", fe.Field, tc.field)
			}
		})
	}
}

func TestParseCastling(t *testing.T) {
	got, err := ParseCastling("Kq")
	if err != nil {
		t.Fatalf("ParseCastling: %v", err)
	}
	if got != [2]CastleRights{CastleKingside, CastleQueenside} {
		t.Fatalf("Kq: got %v", got)
	}
	if _, err := ParseCastling("KQkqK"); !errors.Is(err, ErrInvalidCastling) {
		t.Fatalf("repeated token: got %v", err)
	}
	_, err = ParseFEN("4k3/8/8/8/8/8/8/4K3 w Z - 0 1")
	if !errors.Is(err, ErrInvalidCastling) {
		t.Fatalf("FEN castling error should unwrap to ErrInvalidCastling, got %v", err)
	}
}
