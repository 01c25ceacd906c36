package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	gm "github.com/Aprax14/bitchess/chessmg"
)

// RootResult is one finished root move. Score is from White's point of view.
// Exact is false when the move was searched against a bound it failed to beat,
// so Score is only a limit on its true value.
type RootResult struct {
	Move  gm.Move
	Score Score
	PV    []gm.Move
	Index int
	Exact bool
}

// Collector keeps the best root result seen so far. Results may arrive in any
// order; ties go to exact scores, then to the move generated first.
type Collector struct {
	mu    sync.Mutex
	turn  gm.Color
	best  RootResult
	have  bool
	count int
}

// NewCollector returns a collector for a root position with turn to move.
func NewCollector(turn gm.Color) *Collector { return &Collector{turn: turn} }

// Add records r and reports whether it became the best result.
func (c *Collector) Add(r RootResult) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	if c.have && !c.better(r, c.best) {
		return false
	}
	c.best, c.have = r, true
	return true
}

// Best returns the current best result.
func (c *Collector) Best() (RootResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.best, c.have
}

// Count returns how many results were added.
func (c *Collector) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func (c *Collector) better(a, b RootResult) bool {
	sa, sb := sideSign(c.turn)*a.Score, sideSign(c.turn)*b.Score
	if sa != sb {
		return sa > sb
	}
	if a.Exact != b.Exact {
		return a.Exact
	}
	return a.Index < b.Index
}

// sharedBounds is the root window shared by all workers, from White's point of
// view. White's results only raise alpha and Black's only lower beta.
type sharedBounds struct {
	alpha atomic.Int32
	beta  atomic.Int32
}

func newSharedBounds(alpha, beta Score) *sharedBounds {
	sb := &sharedBounds{}
	sb.alpha.Store(alpha)
	sb.beta.Store(beta)
	return sb
}

// window returns the current bounds relative to turn.
func (sb *sharedBounds) window(turn gm.Color) (alpha, beta Score) {
	a, b := sb.alpha.Load(), sb.beta.Load()
	if turn == gm.White {
		return a, b
	}
	return -b, -a
}

// tighten merges a root score that is relative to turn.
func (sb *sharedBounds) tighten(turn gm.Color, score Score) {
	if turn == gm.White {
		fetchMax(&sb.alpha, score)
	} else {
		fetchMin(&sb.beta, -score)
	}
}

func (sb *sharedBounds) crossed() bool { return sb.alpha.Load() >= sb.beta.Load() }

func fetchMax(v *atomic.Int32, x int32) {
	for {
		cur := v.Load()
		if x <= cur || v.CompareAndSwap(cur, x) {
			return
		}
	}
}

func fetchMin(v *atomic.Int32, x int32) {
	for {
		cur := v.Load()
		if x >= cur || v.CompareAndSwap(cur, x) {
			return
		}
	}
}

// SearchParallel searches the root moves concurrently and returns the best one.
func (s *Searcher) SearchParallel(ctx context.Context, b gm.Board) (Result, error) {
	results, wait := s.Stream(ctx, b)
	for range results {
	}
	return wait()
}

// Stream starts a parallel root search. Root results are delivered on the
// channel in completion order; it is closed when the search ends. wait blocks
// until then and returns the final result.
func (s *Searcher) Stream(ctx context.Context, b gm.Board) (<-chan RootResult, func() (Result, error)) {
	if err := s.opts.validate(); err != nil {
		out := make(chan RootResult)
		close(out)
		return out, func() (Result, error) { return Result{}, err }
	}

	start := time.Now()
	turn := b.Turn
	hint := s.opts.PrincipalVariation
	moves, anyLegal := scoreMoves(b, false, firstHint(hint))
	out := make(chan RootResult, len(moves))
	if !anyLegal {
		close(out)
		score := sideSign(turn) * NewScenario(b).terminalScore()
		return out, func() (Result, error) { return Result{Score: score}, nil }
	}

	stats := &cutStatistics{}
	collector := NewCollector(turn)
	bounds := newSharedBounds(s.opts.Alpha, s.opts.Beta)
	var stop atomic.Bool

	s.log.Debug().
		Str("fen", b.FEN()).
		Int("moves", len(moves)).
		Int("workers", s.opts.Workers).
		Int("depth", s.opts.Depth).
		Msg("parallel search started")

	done := make(chan struct{})
	var runErr error
	go func() {
		defer close(done)
		defer close(out)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.opts.Workers)
		for i, sm := range moves {
			if stop.Load() || gctx.Err() != nil {
				stats.rootMovesSkipped.Add(uint64(len(moves) - i))
				break
			}
			g.Go(func() error {
				if stop.Load() {
					stats.rootMovesSkipped.Add(1)
					return nil
				}
				if err := gctx.Err(); err != nil {
					return err
				}
				r := s.searchRootMove(sm, i, turn, bounds, stats, hint)
				if bounds.crossed() || sideSign(turn)*r.Score == MateScore {
					stop.Store(true)
				}
				collector.Add(r)
				out <- r
				s.log.Debug().
					Str("move", r.Move.String()).
					Int32("score", r.Score).
					Int("index", r.Index).
					Bool("exact", r.Exact).
					Msg("root-result")
				return nil
			})
		}
		runErr = g.Wait()
		if runErr == nil && !stop.Load() && collector.Count() < len(moves) {
			runErr = ctx.Err()
		}
	}()

	wait := func() (Result, error) {
		<-done
		if runErr != nil {
			return Result{}, runErr
		}
		best, _ := collector.Best()
		res := Result{Move: best.Move, Score: best.Score, PV: best.PV, Stats: stats.snapshot()}
		s.log.Debug().
			Str("move", res.Move.String()).
			Int32("score", res.Score).
			Dur("took", time.Since(start)).
			Object("stats", res.Stats).
			Msg("parallel search finished")
		return res, nil
	}
	return out, wait
}

// searchRootMove searches one root move against the current shared window and
// merges its score back when it improves on it.
func (s *Searcher) searchRootMove(sm ScoredMove, index int, turn gm.Color, bounds *sharedBounds, stats *cutStatistics, hint []gm.Move) RootResult {
	alpha, beta := bounds.window(turn)
	w := s.newWorker(stats)
	var pvLine PVLine
	score := -w.alphaBeta(Scenario{Board: sm.Next}, s.opts.Depth-1, -beta, -alpha, &pvLine, hintAfter(hint, sm.Move))
	if score > alpha {
		bounds.tighten(turn, score)
	}
	line := make([]gm.Move, 0, len(pvLine.Moves)+1)
	line = append(line, sm.Move)
	line = append(line, pvLine.Moves...)
	return RootResult{
		Move:  sm.Move,
		Score: sideSign(turn) * score,
		PV:    line,
		Index: index,
		Exact: score > alpha && score < beta,
	}
}
