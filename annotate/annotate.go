// Package annotate renders engine move lines in standard algebraic notation.
package annotate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/corentings/chess/v2"

	gm "github.com/Aprax14/bitchess/chessmg"
)

var ErrIllegalLine = errors.New("illegal move in line")

// SAN converts line, played from b, to standard algebraic notation.
func SAN(b gm.Board, line []gm.Move) ([]string, error) {
	fen, err := chess.FEN(b.FEN())
	if err != nil {
		return nil, fmt.Errorf("annotate: %w", err)
	}
	pos := chess.NewGame(fen).Position()

	out := make([]string, 0, len(line))
	for i, m := range line {
		if !b.IsLegal(m) {
			return out, fmt.Errorf("%w: %s at ply %d", ErrIllegalLine, m, i)
		}
		cm, err := chess.UCINotation{}.Decode(pos, m.String())
		if err != nil {
			return out, fmt.Errorf("annotate %s: %w", m, err)
		}
		out = append(out, chess.AlgebraicNotation{}.Encode(pos, cm))
		pos = pos.Update(cm)
		b = b.Apply(m)
	}
	return out, nil
}

// Line formats line with move numbers, e.g. "3. Bc4 Nf6 4. d3" or "2... Qh4#".
func Line(b gm.Board, line []gm.Move) (string, error) {
	san, err := SAN(b, line)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	number, turn := b.FullMoves, b.Turn
	for i, s := range san {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch {
		case turn == gm.White:
			sb.WriteString(strconv.Itoa(number) + ". ")
		case i == 0:
			sb.WriteString(strconv.Itoa(number) + "... ")
		}
		sb.WriteString(s)
		if turn == gm.Black {
			number++
		}
		turn = turn.Other()
	}
	return sb.String(), nil
}
