package engine

import (
	"context"
	"errors"
	"testing"

	gm "github.com/Aprax14/bitchess/chessmg"
)

func TestParallelMatchesSequential(t *testing.T) {
	fens := []string{italianFEN, tacticalFEN, blackToMove, endgameFEN, hangingPawnFEN, gm.StartFEN}
	for _, fen := range fens {
		b := gm.MustParseFEN(fen)
		seq, err := NewSearcher(WithDepth(3), WithQuiescenceDepth(1)).Search(b)
		if err != nil {
			t.Fatalf("sequential %q: %v", fen, err)
		}
		for _, workers := range []int{1, 2, 8} {
			s := NewSearcher(WithDepth(3), WithQuiescenceDepth(1), WithWorkers(workers))
			par, err := s.SearchParallel(context.Background(), b)
			if err != nil {
				t.Fatalf("parallel %q: %v", fen, err)
			}
			if par.Score != seq.Score {
				t.Fatalf("%q with %d workers: parallel %d, sequential %d", fen, workers, par.Score, seq.Score)
			}
			// The chosen move must really be worth the reported score.
			child := b.Apply(par.Move)
			var got Score
			if child.HasLegalMoves() {
				r, err := NewSearcher(WithDepth(2), WithQuiescenceDepth(1)).Search(child)
				if err != nil {
					t.Fatalf("verify %q: %v", fen, err)
				}
				got = r.Score
			} else {
				got = sideSign(child.Turn) * NewScenario(child).terminalScore()
			}
			if got != par.Score {
				t.Fatalf("%q with %d workers: %s scores %d, reported %d", fen, workers, par.Move, got, par.Score)
			}
			if len(par.PV) == 0 || par.PV[0] != par.Move || !ValidLine(b, par.PV) {
				t.Fatalf("%q: bad pv %v for %s", fen, par.PV, par.Move)
			}
		}
	}
}

func TestParallelStopsOnMate(t *testing.T) {
	b := gm.MustParseFEN(mateInOneFEN)
	res, err := NewSearcher(WithDepth(2), WithQuiescenceDepth(1), WithWorkers(1)).SearchParallel(context.Background(), b)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Score != MateScore {
		t.Fatalf("score %d want %d", res.Score, MateScore)
	}
	if next := b.Apply(res.Move); !next.InCheckmate() {
		t.Fatalf("%s does not mate", res.Move)
	}
	if res.Stats.RootMovesSkipped == 0 {
		t.Fatalf("expected remaining root moves to be skipped after mate")
	}
}

func TestParallelStopsWhenWindowCloses(t *testing.T) {
	b := gm.MustParseFEN(queenUpFEN)
	s := NewSearcher(WithDepth(2), WithQuiescenceDepth(1), WithWorkers(1), WithWindow(-Infinity, 0))
	results, wait := s.Stream(context.Background(), b)
	n := 0
	for r := range results {
		n++
		if r.Score < 0 {
			t.Fatalf("white two queens up scored %d for %s", r.Score, r.Move)
		}
	}
	res, err := wait()
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected the first result to close the window, got %d results", n)
	}
	if res.Stats.RootMovesSkipped == 0 {
		t.Fatalf("no root moves skipped")
	}
}

func TestStreamDeliversEveryRootMove(t *testing.T) {
	b := gm.MustParseFEN(italianFEN)
	s := NewSearcher(WithDepth(2), WithQuiescenceDepth(0), WithWorkers(4))
	results, wait := s.Stream(context.Background(), b)

	collector := NewCollector(b.Turn)
	seen := map[gm.Move]bool{}
	for r := range results {
		if seen[r.Move] {
			t.Fatalf("%s reported twice", r.Move)
		}
		seen[r.Move] = true
		if len(r.PV) == 0 || r.PV[0] != r.Move {
			t.Fatalf("pv %v does not start with %s", r.PV, r.Move)
		}
		collector.Add(r)
	}
	res, err := wait()
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(seen) != len(b.LegalMoves()) {
		t.Fatalf("got %d root results want %d", len(seen), len(b.LegalMoves()))
	}
	best, ok := collector.Best()
	if !ok || best.Score != res.Score {
		t.Fatalf("consumer best %d, search result %d", best.Score, res.Score)
	}
}

func TestStreamTerminalAndInvalid(t *testing.T) {
	results, wait := NewSearcher().Stream(context.Background(), gm.MustParseFEN(stalemateFEN))
	for range results {
		t.Fatalf("stalemate produced a root result")
	}
	res, err := wait()
	if err != nil || res.Score != 0 || !res.Move.IsZero() {
		t.Fatalf("stalemate: %+v %v", res, err)
	}

	_, err = NewSearcher(WithWorkers(0)).SearchParallel(context.Background(), gm.NewBoard())
	if !errors.Is(err, ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestParallelHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSearcher(WithDepth(2)).SearchParallel(ctx, gm.NewBoard())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCollectorTieBreak(t *testing.T) {
	white := NewCollector(gm.White)
	white.Add(RootResult{Score: 10, Index: 3, Exact: true})
	if white.Add(RootResult{Score: 10, Index: 5, Exact: true}) {
		t.Fatalf("later index should not win a tie")
	}
	if !white.Add(RootResult{Score: 10, Index: 1, Exact: true}) {
		t.Fatalf("earlier index should win a tie")
	}
	if white.Add(RootResult{Score: 10, Index: 0, Exact: false}) {
		t.Fatalf("bound should not beat an exact score")
	}
	if !white.Add(RootResult{Score: 11, Index: 9}) {
		t.Fatalf("higher score should win for white")
	}

	black := NewCollector(gm.Black)
	black.Add(RootResult{Score: 10, Index: 0, Exact: true})
	if !black.Add(RootResult{Score: -5, Index: 1, Exact: true}) {
		t.Fatalf("lower score should win for black")
	}
	if best, _ := black.Best(); best.Score != -5 || black.Count() != 2 {
		t.Fatalf("black best %d count %d", best.Score, black.Count())
	}
}

func TestSharedBoundsMergeMonotonically(t *testing.T) {
	sb := newSharedBounds(-Infinity, Infinity)
	sb.tighten(gm.White, 50)
	sb.tighten(gm.White, 20)
	if a, _ := sb.window(gm.White); a != 50 {
		t.Fatalf("alpha %d want 50", a)
	}
	sb.tighten(gm.Black, 30) // black-relative 30 is -30 for white
	sb.tighten(gm.Black, 10)
	if _, beta := sb.window(gm.White); beta != -30 {
		t.Fatalf("beta %d want -30", beta)
	}
	if !sb.crossed() {
		t.Fatalf("alpha 50 >= beta -30 should be crossed")
	}
	if a, beta := sb.window(gm.Black); a != 30 || beta != -50 {
		t.Fatalf("black window [%d, %d]", a, beta)
	}
}
