package chessmg

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidFEN      = errors.New("invalid FEN")
	ErrInvalidCastling = errors.New("invalid castling rights")
)

// FENError describes which FEN field failed to parse.
type FENError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *FENError) Error() string {
	msg := fmt.Sprintf("invalid FEN: %s %q: %s", e.Field, e.Value, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes every FENError match ErrInvalidFEN.
func (e *FENError) Is(target error) bool { return target == ErrInvalidFEN }

func (e *FENError) Unwrap() error { return e.Err }

// ParseFEN parses the six FEN fields into a Board.
func ParseFEN(fen string) (Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return Board{}, &FENError{Field: "record", Value: fen, Reason: fmt.Sprintf("want 6 fields, got %d", len(fields))}
	}

	var b Board
	if err := parsePlacement(&b.Position, fields[0]); err != nil {
		return Board{}, err
	}
	if err := b.Position.Validate(); err != nil {
		return Board{}, &FENError{Field: "placement", Value: fields[0], Reason: "inconsistent position", Err: err}
	}

	switch fields[1] {
	case "w":
		b.Turn = White
	case "b":
		b.Turn = Black
	default:
		return Board{}, &FENError{Field: "side to move", Value: fields[1], Reason: "want w or b"}
	}

	castling, err := ParseCastling(fields[2])
	if err != nil {
		return Board{}, &FENError{Field: "castling", Value: fields[2], Reason: "bad token", Err: err}
	}
	b.Castling = castling

	b.EnPassant = NoSquare
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return Board{}, &FENError{Field: "en passant", Value: fields[3], Reason: "bad square", Err: err}
		}
		if sq.Rank() != 2 && sq.Rank() != 5 {
			return Board{}, &FENError{Field: "en passant", Value: fields[3], Reason: "target must be on rank 3 or 6"}
		}
		b.EnPassant = sq
	}

	half, err := strconv.Atoi(fields[4])
	if err != nil || half < 0 {
		return Board{}, &FENError{Field: "halfmove clock", Value: fields[4], Reason: "want a non-negative integer"}
	}
	full, err := strconv.Atoi(fields[5])
	if err != nil || full < 1 {
		return Board{}, &FENError{Field: "fullmove number", Value: fields[5], Reason: "want a positive integer"}
	}
	b.HalfMoves = half
	b.FullMoves = full
	return b, nil
}

// MustParseFEN is ParseFEN for literals known to be valid.
func MustParseFEN(fen string) Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

func parsePlacement(p *Position, field string) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return &FENError{Field: "placement", Value: field, Reason: fmt.Sprintf("want 8 ranks, got %d", len(ranks))}
	}
	for i, row := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			pc, ok := pieceFromChar(ch)
			if !ok {
				return &FENError{Field: "placement", Value: field, Reason: fmt.Sprintf("unknown piece %q", ch)}
			}
			if file >= 8 {
				return &FENError{Field: "placement", Value: field, Reason: fmt.Sprintf("rank %d overflows", rank+1)}
			}
			p.Put(pc, NewSquare(file, rank))
			file++
		}
		if file != 8 {
			return &FENError{Field: "placement", Value: field, Reason: fmt.Sprintf("rank %d has %d squares", rank+1, file)}
		}
	}
	return nil
}

// ParseCastling parses "-" or a non-repeating subset of "KQkq".
func ParseCastling(s string) ([2]CastleRights, error) {
	var rights [2]CastleRights
	if s == "-" {
		return rights, nil
	}
	if s == "" {
		return rights, fmt.Errorf("%w: empty", ErrInvalidCastling)
	}
	seen := map[rune]bool{}
	for _, ch := range s {
		if seen[ch] {
			return rights, fmt.Errorf("%w: %q repeats %q", ErrInvalidCastling, s, ch)
		}
		seen[ch] = true
		switch ch {
		case 'K':
			rights[White] = grant(rights[White], Kingside)
		case 'Q':
			rights[White] = grant(rights[White], Queenside)
		case 'k':
			rights[Black] = grant(rights[Black], Kingside)
		case 'q':
			rights[Black] = grant(rights[Black], Queenside)
		default:
			return rights, fmt.Errorf("%w: %q has unknown token %q", ErrInvalidCastling, s, ch)
		}
	}
	return rights, nil
}

func grant(r CastleRights, side CastleSide) CastleRights {
	switch {
	case r == CastleNone && side == Kingside:
		return CastleKingside
	case r == CastleNone && side == Queenside:
		return CastleQueenside
	case r != CastleNone && !r.Allows(side):
		return CastleBoth
	}
	return r
}

func castlingString(rights [2]CastleRights) string {
	var sb strings.Builder
	if rights[White].Allows(Kingside) {
		sb.WriteByte('K')
	}
	if rights[White].Allows(Queenside) {
		sb.WriteByte('Q')
	}
	if rights[Black].Allows(Kingside) {
		sb.WriteByte('k')
	}
	if rights[Black].Allows(Queenside) {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// FEN serializes the board.
func (b Board) FEN() string {
	var sb strings.Builder
	sb.WriteString(b.Placement())
	if b.Turn == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}
	sb.WriteString(castlingString(b.Castling))
	sb.WriteByte(' ')
	sb.WriteString(b.EnPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.HalfMoves))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.FullMoves))
	return sb.String()
}
