package engine

import (
	"strings"

	"golang.org/x/exp/slices"

	gm "github.com/Aprax14/bitchess/chessmg"
)

// PVLine is a principal variation, root move first.
type PVLine struct {
	Moves []gm.Move
}

// Update sets the line to move followed by the child's line.
func (pv *PVLine) Update(move gm.Move, child PVLine) {
	pv.Moves = append(pv.Moves[:0], move)
	pv.Moves = append(pv.Moves, child.Moves...)
}

func (pv *PVLine) Clear() { pv.Moves = pv.Moves[:0] }

func (pv PVLine) Clone() PVLine { return PVLine{Moves: slices.Clone(pv.Moves)} }

// GetPVMove returns the first move of the line, or NoMove.
func (pv PVLine) GetPVMove() gm.Move {
	if len(pv.Moves) == 0 {
		return gm.NoMove
	}
	return pv.Moves[0]
}

func (pv PVLine) String() string {
	parts := make([]string, len(pv.Moves))
	for i, m := range pv.Moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// hintAfter returns the remainder of a suggested line once move has been played,
// or nil when the search left that line.
func hintAfter(hint []gm.Move, move gm.Move) []gm.Move {
	if len(hint) == 0 || hint[0] != move {
		return nil
	}
	return hint[1:]
}

func firstHint(hint []gm.Move) gm.Move {
	if len(hint) == 0 {
		return gm.NoMove
	}
	return hint[0]
}

// ValidLine reports whether every move of line is legal when played in order from b.
func ValidLine(b gm.Board, line []gm.Move) bool {
	for _, m := range line {
		if !slices.Contains(b.LegalMoves(), m) {
			return false
		}
		b = b.Apply(m)
	}
	return true
}
