// Package perftcheck cross-checks chessmg move generation against
// dragontoothmg, an independent generator.
package perftcheck

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dylhunn/dragontoothmg"

	gm "github.com/Aprax14/bitchess/chessmg"
)

// Diff is the first position where the two generators disagree.
type Diff struct {
	FEN string
	// Path is the line from the checked position to FEN.
	Path []string
	// Missing holds moves only the reference generates; Extra moves only chessmg does.
	Missing []string
	Extra   []string
}

func (d *Diff) String() string {
	return fmt.Sprintf("after [%s] at %s: missing [%s] extra [%s]",
		strings.Join(d.Path, " "), d.FEN, strings.Join(d.Missing, " "), strings.Join(d.Extra, " "))
}

// Perft counts leaf nodes with the reference generator.
func Perft(fen string, depth int) uint64 {
	b := dragontoothmg.ParseFen(fen)
	return perft(&b, depth)
}

func perft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += perft(b, depth-1)
		unapply()
	}
	return nodes
}

// Divide is the reference per-move breakdown, keyed by coordinate notation.
func Divide(fen string, depth int) map[string]uint64 {
	b := dragontoothmg.ParseFen(fen)
	out := make(map[string]uint64)
	for _, m := range b.GenerateLegalMoves() {
		unapply := b.Apply(m)
		out[m.String()] = perft(&b, depth-1)
		unapply()
	}
	return out
}

// Check walks the tree from b to depth and returns the first disagreement,
// or nil when both generators agree on every node.
func Check(b gm.Board, depth int) *Diff {
	return check(b, depth, nil)
}

func check(b gm.Board, depth int, path []string) *Diff {
	fen := b.FEN()
	ours := moveStrings(b.LegalMoves())
	ref := dragontoothmg.ParseFen(fen)
	var theirs []string
	for _, m := range ref.GenerateLegalMoves() {
		theirs = append(theirs, m.String())
	}
	if missing, extra := diffMoves(ours, theirs); len(missing)+len(extra) > 0 {
		return &Diff{FEN: fen, Path: path, Missing: missing, Extra: extra}
	}
	if depth <= 1 {
		return nil
	}

	want := Divide(fen, depth)
	for _, m := range b.LegalMoves() {
		next := b.Apply(m)
		if gm.Perft(next, depth-1) == want[m.String()] {
			continue
		}
		line := append(append([]string(nil), path...), m.String())
		if d := check(next, depth-1, line); d != nil {
			return d
		}
	}
	return nil
}

func moveStrings(moves []gm.Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	return out
}

// diffMoves returns the sorted moves only in theirs and only in ours.
func diffMoves(ours, theirs []string) (missing, extra []string) {
	have := make(map[string]bool, len(ours))
	for _, m := range ours {
		have[m] = true
	}
	for _, m := range theirs {
		if !have[m] {
			missing = append(missing, m)
		}
		delete(have, m)
	}
	for m := range have {
		extra = append(extra, m)
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return missing, extra
}
